package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type StorageType string

const (
	PostgresStorage StorageType = "postgres"
	MemoryStorage   StorageType = "memory"
)

type Application struct {
	Host       string     `koanf:"host"`
	Listen     string     `koanf:"listen"`
	Storage    Storage    `koanf:"storage"`
	Database   Database   `koanf:"db"`
	Google     Google     `koanf:"google"`
	Formatting Formatting `koanf:"formatting"`
}

type Storage struct {
	Type StorageType `koanf:"type"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Formatting selects the textual convention of relative date labels.
type Formatting struct {
	// DayCountLabels appends the raw number of days to every relative label, e.g. "in 1 month 15 days (45 days)".
	DayCountLabels bool `koanf:"daycountlabels"`
}

func defaults() Application {
	return Application{
		Host:   "http://localhost:8181",
		Listen: ":8181",
		Storage: Storage{
			Type: PostgresStorage,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "occasions",
			Pass:   "",
			Name:   "occasions",
			Schema: "occasions",
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "OCCASIONS_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "OCCASIONS_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	switch app.Storage.Type {
	case PostgresStorage, MemoryStorage:
	default:
		log.Warnf("unknown storage type %q, falling back to %s", app.Storage.Type, PostgresStorage)
		app.Storage.Type = PostgresStorage
	}

	return app, nil
}
