package event_report

import (
	"bytes"
	"encoding/csv"
	"slices"

	"github.com/klokku/occasions/pkg/date"
	"github.com/klokku/occasions/pkg/event"
	"github.com/klokku/occasions/pkg/relative_date"
	log "github.com/sirupsen/logrus"
)

var csvHeader = []string{"Name", "Date", "Note", "Relative"}

type Renderer interface {
	Render(events []event.Event, today date.Date) (string, error)
}

type CsvRendererImpl struct {
	variant relative_date.Variant
}

func NewCsvRenderer(variant relative_date.Variant) *CsvRendererImpl {
	return &CsvRendererImpl{variant: variant}
}

// Render writes one row per instance. Events keep the given order, their instances are listed
// newest first. Events without instances get a single row with empty date columns.
func (r *CsvRendererImpl) Render(events []event.Event, today date.Date) (string, error) {
	data := make([][]string, 0, len(events)+1)
	data = append(data, csvHeader)
	for _, e := range events {
		data = append(data, r.eventRows(e, today)...)
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func (r *CsvRendererImpl) eventRows(e event.Event, today date.Date) [][]string {
	name := relative_date.TitleCase(e.Name)
	if len(e.Instances) == 0 {
		return [][]string{{name, "", "", ""}}
	}

	instances := slices.Clone(e.Instances)
	slices.SortStableFunc(instances, func(a, b event.Instance) int {
		return b.Date.Compare(a.Date)
	})
	rows := make([][]string, 0, len(instances))
	for _, instance := range instances {
		rows = append(rows, []string{
			name,
			instance.Date.String(),
			instance.Note,
			relative_date.RelativeLabel(instance.Date, today, r.variant),
		})
	}
	return rows
}
