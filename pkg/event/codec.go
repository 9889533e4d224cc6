package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/klokku/occasions/pkg/date"
)

var ErrMalformedEvents = errors.New("malformed events data")

type eventRecord struct {
	Id        string           `json:"id"`
	Name      string           `json:"name"`
	Instances []instanceRecord `json:"instances"`
}

type instanceRecord struct {
	Date date.Date `json:"date"`
	Note string    `json:"note,omitempty"`
}

// recordFields holds the raw top-level fields of a single persisted event.
type recordFields map[string]json.RawMessage

func (f recordFields) has(name string) bool {
	_, ok := f[name]
	return ok
}

// recordShape is one generation of the persisted event format.
type recordShape struct {
	name    string
	matches func(recordFields) bool
	decode  func(recordFields) (Event, error)
}

// recordShapes are checked in order, the first matching shape decodes the record.
var recordShapes = []recordShape{
	{
		name:    "instances",
		matches: func(f recordFields) bool { return f.has("instances") },
		decode:  decodeInstancesShape,
	},
	{
		name:    "dates",
		matches: func(f recordFields) bool { return f.has("dates") },
		decode:  decodeDatesShape,
	},
	{
		name:    "single date",
		matches: func(f recordFields) bool { return f.has("date") },
		decode:  decodeSingleDateShape,
	},
}

// Encode serializes events in the current format. Blank notes are omitted.
func Encode(events []Event) (string, error) {
	records := make([]eventRecord, 0, len(events))
	for _, e := range events {
		instances := make([]instanceRecord, 0, len(e.Instances))
		for _, instance := range e.Instances {
			instances = append(instances, instanceRecord{Date: instance.Date, Note: normalizeNote(instance.Note)})
		}
		records = append(records, eventRecord{Id: e.Id, Name: e.Name, Instances: instances})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("could not encode events: %w", err)
	}
	return string(data), nil
}

// Decode reads events written in the current format or in any of the legacy formats.
// Errors wrap ErrMalformedEvents.
func Decode(text string) ([]Event, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", ErrMalformedEvents)
	}

	var rawRecords []json.RawMessage
	if err := json.Unmarshal([]byte(text), &rawRecords); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvents, err)
	}

	events := make([]Event, 0, len(rawRecords))
	for i, raw := range rawRecords {
		e, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedEvents, i, err)
		}
		events = append(events, e.normalized())
	}
	return events, nil
}

func decodeRecord(raw json.RawMessage) (Event, error) {
	var fields recordFields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Event{}, err
	}
	if fields == nil {
		return Event{}, errors.New("record is null")
	}

	for _, shape := range recordShapes {
		if shape.matches(fields) {
			e, err := shape.decode(fields)
			if err != nil {
				return Event{}, fmt.Errorf("%s shape: %w", shape.name, err)
			}
			// null dates leave the zero value behind, UnmarshalText is never called for them
			for _, instance := range e.Instances {
				if instance.Date.IsZero() {
					return Event{}, fmt.Errorf("%s shape: missing instance date", shape.name)
				}
			}
			return e, nil
		}
	}
	return Event{}, errors.New("unknown record shape")
}

func decodeInstancesShape(f recordFields) (Event, error) {
	var record eventRecord
	if err := decodeHeader(f, &record); err != nil {
		return Event{}, err
	}
	if err := decodeField(f, "instances", &record.Instances); err != nil {
		return Event{}, err
	}

	e := Event{Id: record.Id, Name: record.Name, Instances: make([]Instance, 0, len(record.Instances))}
	for _, instance := range record.Instances {
		e.Instances = append(e.Instances, Instance{Date: instance.Date, Note: instance.Note})
	}
	return e, nil
}

func decodeDatesShape(f recordFields) (Event, error) {
	var record eventRecord
	if err := decodeHeader(f, &record); err != nil {
		return Event{}, err
	}
	var dates []date.Date
	if err := decodeField(f, "dates", &dates); err != nil {
		return Event{}, err
	}

	e := Event{Id: record.Id, Name: record.Name, Instances: make([]Instance, 0, len(dates))}
	for _, d := range dates {
		e.Instances = append(e.Instances, Instance{Date: d})
	}
	return e, nil
}

func decodeSingleDateShape(f recordFields) (Event, error) {
	var record eventRecord
	if err := decodeHeader(f, &record); err != nil {
		return Event{}, err
	}
	var current date.Date
	if err := decodeField(f, "date", &current); err != nil {
		return Event{}, err
	}
	var previous *date.Date
	if f.has("previousDate") {
		if err := decodeField(f, "previousDate", &previous); err != nil {
			return Event{}, err
		}
	}

	e := Event{Id: record.Id, Name: record.Name}
	if previous != nil {
		e.Instances = append(e.Instances, Instance{Date: *previous})
	}
	e.Instances = append(e.Instances, Instance{Date: current})
	return e, nil
}

func decodeHeader(f recordFields, record *eventRecord) error {
	if f.has("id") {
		if err := decodeField(f, "id", &record.Id); err != nil {
			return err
		}
	}
	return decodeField(f, "name", &record.Name)
}

func decodeField(f recordFields, name string, target any) error {
	raw, ok := f[name]
	if !ok {
		return fmt.Errorf("missing field %q", name)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	return nil
}
