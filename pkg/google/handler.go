package google

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/occasions/internal/rest"
	"github.com/klokku/occasions/pkg/event"
)

type CalendarItemDto struct {
	Id      string `json:"id"`
	Summary string `json:"summary"`
}

type ExportResultDto struct {
	CalendarId string `json:"calendarId"`
	EventId    string `json:"eventId"`
	Exported   int    `json:"exported"`
}

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{s}
}

func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	calendars, err := h.service.ListCalendars(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	calendarItems := make([]CalendarItemDto, 0, len(calendars))
	for _, c := range calendars {
		calendarItems = append(calendarItems, toCalendarItemDto(c))
	}
	rest.WriteJSON(w, http.StatusOK, calendarItems)
}

func (h *Handler) ExportEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	calendarId := vars["calendarId"]
	eventId := vars["eventId"]

	exported, err := h.service.ExportEvent(r.Context(), calendarId, eventId)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ExportResultDto{CalendarId: calendarId, EventId: eventId, Exported: exported})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		rest.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, event.ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, err.Error())
	default:
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func toCalendarItemDto(ci CalendarItem) CalendarItemDto {
	return CalendarItemDto{
		Id:      ci.ID,
		Summary: ci.Summary,
	}
}
