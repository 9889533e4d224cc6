package app

import (
	"github.com/klokku/occasions/internal/config"
	"github.com/klokku/occasions/internal/event_bus"
	"github.com/klokku/occasions/internal/utils"
	"github.com/klokku/occasions/pkg/event"
	"github.com/klokku/occasions/pkg/event_report"
	"github.com/klokku/occasions/pkg/google"
	"github.com/klokku/occasions/pkg/kv_store"
	"github.com/klokku/occasions/pkg/preferences"
	"github.com/klokku/occasions/pkg/relative_date"
	"github.com/klokku/occasions/pkg/widget"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	PreferencesStore   *preferences.StoreImpl
	PreferencesService *preferences.ServiceImpl
	PreferencesHandler *preferences.Handler

	EventRepository *event.RepositoryImpl
	EventService    *event.ServiceImpl
	EventHandler    *event.Handler

	WidgetService *widget.ServiceImpl
	WidgetHandler *widget.Handler

	CsvRenderer   *event_report.CsvRendererImpl
	ReportHandler *event_report.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service
	GoogleHandler *google.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(store kv_store.Store, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	variant := relative_date.Standard
	if cfg.Formatting.DayCountLabels {
		variant = relative_date.WithDayCount
	}

	deps.PreferencesStore = preferences.NewStore(store)
	deps.PreferencesService = preferences.NewService(deps.PreferencesStore, deps.EventBus)
	deps.PreferencesHandler = preferences.NewHandler(deps.PreferencesService)

	deps.EventRepository = event.NewRepository(store)
	deps.EventService = event.NewEventService(deps.EventRepository, deps.EventBus)
	deps.EventHandler = event.NewHandler(deps.EventService, deps.PreferencesService.ActiveSortOption, deps.Clock, variant)

	deps.WidgetService = widget.NewService(widget.NewRepository(deps.PreferencesStore), deps.EventService, deps.Clock, deps.EventBus)
	deps.WidgetHandler = widget.NewHandler(deps.WidgetService)

	deps.CsvRenderer = event_report.NewCsvRenderer(variant)
	deps.ReportHandler = event_report.NewHandler(deps.EventService, deps.CsvRenderer, deps.Clock)

	deps.GoogleAuth = google.NewGoogleAuth(store, cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth, deps.EventService)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService)

	return deps
}
