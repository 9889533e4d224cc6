package event

import (
	"github.com/klokku/occasions/pkg/date"
	"github.com/klokku/occasions/pkg/relative_date"
)

// Summary is the derived, display-ready view of a single event.
type Summary struct {
	Id          string
	DisplayName string
	LatestDate  date.Date
	// Label is empty for events without instances.
	Label            string
	DaysCount        int
	IsToday          bool
	AverageFrequency float64
	HasFrequency     bool
	AtLeastOneMonth  bool
	Instances        []Instance
}

func Summarize(e Event, today date.Date, variant relative_date.Variant) Summary {
	summary := Summary{
		Id:          e.Id,
		DisplayName: relative_date.TitleCase(e.Name),
		Instances:   e.Instances,
	}
	summary.AverageFrequency, summary.HasFrequency = relative_date.AverageFrequency(e.Dates())

	if len(e.Instances) == 0 {
		return summary
	}
	latest := e.LatestDate()
	summary.LatestDate = latest
	summary.Label = relative_date.RelativeLabel(latest, today, variant)
	summary.DaysCount, summary.IsToday = relative_date.DaysCount(latest, today)
	summary.AtLeastOneMonth = relative_date.IsAtLeastOneMonth(latest, today)
	return summary
}
