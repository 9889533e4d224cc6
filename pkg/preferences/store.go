package preferences

import (
	"context"
	"strconv"

	"github.com/klokku/occasions/pkg/kv_store"
	log "github.com/sirupsen/logrus"
)

// Store reads and writes single preference values. Getters return def when the key is not set.
type Store interface {
	GetBool(ctx context.Context, key string, def bool) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
	GetString(ctx context.Context, key string, def string) (string, error)
	SetString(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}

type StoreImpl struct {
	kv kv_store.Store
}

func NewStore(kv kv_store.Store) *StoreImpl {
	return &StoreImpl{kv: kv}
}

// GetBool returns def for missing keys and for stored values that are not booleans.
func (s *StoreImpl) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	value, found, err := s.kv.Get(ctx, key)
	if err != nil {
		log.Errorf("failed to read preference %s: %v", key, err)
		return def, err
	}
	if !found {
		return def, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Warnf("preference %s holds %q which is not a boolean, using %t", key, value, def)
		return def, nil
	}
	return parsed, nil
}

func (s *StoreImpl) SetBool(ctx context.Context, key string, value bool) error {
	return s.SetString(ctx, key, strconv.FormatBool(value))
}

func (s *StoreImpl) GetString(ctx context.Context, key string, def string) (string, error) {
	value, found, err := s.kv.Get(ctx, key)
	if err != nil {
		log.Errorf("failed to read preference %s: %v", key, err)
		return def, err
	}
	if !found {
		return def, nil
	}
	return value, nil
}

func (s *StoreImpl) SetString(ctx context.Context, key string, value string) error {
	if err := s.kv.Set(ctx, key, value); err != nil {
		log.Errorf("failed to store preference %s: %v", key, err)
		return err
	}
	return nil
}

func (s *StoreImpl) Remove(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil {
		log.Errorf("failed to remove preference %s: %v", key, err)
		return err
	}
	return nil
}
