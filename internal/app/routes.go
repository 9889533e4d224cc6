package app

import (
	"github.com/gorilla/mux"
	"github.com/klokku/occasions/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Events, the order route has to come before the {eventId} ones
	r.HandleFunc("/api/event", deps.EventHandler.ListEvents).Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event/order", deps.EventHandler.ReorderEvents).Methods("PUT")
	r.HandleFunc("/api/event/{eventId}/summary", deps.EventHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/event/{eventId}/instance/{date}", deps.EventHandler.DeleteInstance).Methods("DELETE")
	r.HandleFunc("/api/event/{eventId}/instance/{date}/note", deps.EventHandler.UpdateInstanceNote).Methods("PUT")

	// Backup
	r.HandleFunc("/api/backup", deps.EventHandler.ExportBackup).Methods("GET")
	r.HandleFunc("/api/backup", deps.EventHandler.ImportBackup).Methods("POST")

	// Report
	r.HandleFunc("/api/report/csv", deps.ReportHandler.GetCsvReport).Methods("GET")

	// Preferences
	r.HandleFunc("/api/preferences/font-size", deps.PreferencesHandler.GetFontSize).Methods("GET")
	r.HandleFunc("/api/preferences/font-size", deps.PreferencesHandler.SetFontSize).Methods("PUT")
	r.HandleFunc("/api/preferences/sort", deps.PreferencesHandler.GetSortOption).Methods("GET")
	r.HandleFunc("/api/preferences/sort", deps.PreferencesHandler.SetSortOption).Methods("PUT")
	r.HandleFunc("/api/preferences/hint/{hint}", deps.PreferencesHandler.GetHint).Methods("GET")
	r.HandleFunc("/api/preferences/hint/{hint}", deps.PreferencesHandler.SetHint).Methods("PUT")

	// Widget
	r.HandleFunc("/api/widget/{widgetId}", deps.WidgetHandler.GetWidget).Methods("GET")
	r.HandleFunc("/api/widget/{widgetId}/configuration", deps.WidgetHandler.GetConfiguration).Methods("GET")
	r.HandleFunc("/api/widget/{widgetId}/configuration", deps.WidgetHandler.StoreConfiguration).Methods("PUT")
	r.HandleFunc("/api/widget/{widgetId}/configuration", deps.WidgetHandler.DeleteConfiguration).Methods("DELETE")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth", deps.GoogleAuth.IsAuthenticated).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendars/{calendarId}/export/{eventId}", deps.GoogleHandler.ExportEvent).Methods("POST")
}
