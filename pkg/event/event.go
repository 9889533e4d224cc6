package event

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/klokku/occasions/pkg/date"
)

const (
	// MaxEvents is the maximum number of events kept in the collection.
	MaxEvents = 1000
	// MaxInstances is the maximum number of instances kept per event.
	MaxInstances = 50
)

type Event struct {
	Id   string
	Name string // stored trimmed, title-cased only for display
	// Instances are kept in insertion order and never share a date.
	Instances []Instance
}

type Instance struct {
	Date date.Date
	Note string // empty when absent, never blank
}

func NewEvent(name string, instances ...Instance) Event {
	e := Event{Id: uuid.NewString(), Name: strings.TrimSpace(name)}
	for _, instance := range instances {
		e = e.WithInstance(instance)
	}
	return e
}

func NewInstance(d date.Date, note string) Instance {
	return Instance{Date: d, Note: normalizeNote(note)}
}

// LatestDate returns the most recent instance date, or the zero date when there are no instances.
func (e Event) LatestDate() date.Date {
	var latest date.Date
	for _, instance := range e.Instances {
		if instance.Date.After(latest) {
			latest = instance.Date
		}
	}
	return latest
}

// Dates returns the instance dates in insertion order.
func (e Event) Dates() []date.Date {
	dates := make([]date.Date, 0, len(e.Instances))
	for _, instance := range e.Instances {
		dates = append(dates, instance.Date)
	}
	return dates
}

func (e Event) HasDate(d date.Date) bool {
	return e.instanceIndex(d) != -1
}

// WithInstance returns a copy of the event with the instance added:
//   - an instance with the same date already exists: instances are unchanged,
//   - the event already holds MaxInstances: the oldest instance is replaced in place,
//   - otherwise the instance is appended.
func (e Event) WithInstance(instance Instance) Event {
	instance.Note = normalizeNote(instance.Note)
	if e.HasDate(instance.Date) {
		return e
	}

	instances := slices.Clone(e.Instances)
	if len(instances) >= MaxInstances {
		oldest := e.oldestIndex()
		instances[oldest] = instance
		// an event that somehow holds more than the limit is shrunk back to it
		for len(instances) > MaxInstances {
			idx := oldestIndexOf(instances)
			instances = slices.Delete(instances, idx, idx+1)
		}
	} else {
		instances = append(instances, instance)
	}
	e.Instances = instances
	return e
}

func (e Event) WithoutInstance(d date.Date) Event {
	e.Instances = slices.DeleteFunc(slices.Clone(e.Instances), func(instance Instance) bool {
		return instance.Date == d
	})
	return e
}

// WithNote returns a copy of the event with the note of the instance on date d replaced.
// A blank note clears it.
func (e Event) WithNote(d date.Date, note string) Event {
	idx := e.instanceIndex(d)
	if idx == -1 {
		return e
	}
	e.Instances = slices.Clone(e.Instances)
	e.Instances[idx].Note = normalizeNote(note)
	return e
}

// normalized returns the event with a trimmed name, blank notes removed, duplicate dates dropped
// (the first one wins) and at most MaxInstances instances.
func (e Event) normalized() Event {
	if e.Id == "" {
		e.Id = uuid.NewString()
	}
	instances := e.Instances
	e.Name = strings.TrimSpace(e.Name)
	e.Instances = make([]Instance, 0, len(instances))
	for _, instance := range instances {
		e = e.WithInstance(instance)
	}
	return e
}

func (e Event) instanceIndex(d date.Date) int {
	return slices.IndexFunc(e.Instances, func(instance Instance) bool {
		return instance.Date == d
	})
}

func (e Event) oldestIndex() int {
	return oldestIndexOf(e.Instances)
}

func oldestIndexOf(instances []Instance) int {
	oldest := -1
	for i, instance := range instances {
		if oldest == -1 || instance.Date.Before(instances[oldest].Date) {
			oldest = i
		}
	}
	return oldest
}

func normalizeNote(note string) string {
	if strings.TrimSpace(note) == "" {
		return ""
	}
	return note
}
