package widget

import (
	"regexp"

	"github.com/klokku/occasions/pkg/date"
)

// Configuration is what a single home-screen widget shows.
type Configuration struct {
	WidgetId string
	// EventId is empty while no event is selected.
	EventId string
	// DaysOnly shows the plain number of days instead of a period label.
	DaysOnly bool
}

// View is the rendered content of a widget.
type View struct {
	WidgetId    string
	Configured  bool
	EventId     string
	DisplayName string
	LatestDate  date.Date
	DaysCount   int
	IsToday     bool
	Label       string
}

var widgetIdPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func IsValidWidgetId(id string) bool {
	return widgetIdPattern.MatchString(id)
}
