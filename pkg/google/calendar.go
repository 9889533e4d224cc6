package google

import (
	"github.com/klokku/occasions/pkg/event"
	"github.com/klokku/occasions/pkg/relative_date"
	gcal "google.golang.org/api/calendar/v3"
)

// eventIdProperty links exported calendar entries back to the event they came from.
const eventIdProperty = "occasionsEventId"

// toGoogleEvents converts every instance into an all-day calendar entry. The end date of an
// all-day entry is exclusive.
func toGoogleEvents(e event.Event) []*gcal.Event {
	summary := relative_date.TitleCase(e.Name)
	result := make([]*gcal.Event, 0, len(e.Instances))
	for _, instance := range e.Instances {
		result = append(result, &gcal.Event{
			Summary:      summary,
			Description:  instance.Note,
			Start:        &gcal.EventDateTime{Date: instance.Date.String()},
			End:          &gcal.EventDateTime{Date: instance.Date.AddDays(1).String()},
			Transparency: "transparent",
			ExtendedProperties: &gcal.EventExtendedProperties{
				Private: map[string]string{eventIdProperty: e.Id},
			},
		})
	}
	return result
}
