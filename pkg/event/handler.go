package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/occasions/internal/rest"
	"github.com/klokku/occasions/internal/utils"
	"github.com/klokku/occasions/pkg/date"
	"github.com/klokku/occasions/pkg/relative_date"
	log "github.com/sirupsen/logrus"
)

// maxBackupSize limits the body of an imported backup.
const maxBackupSize = 10 << 20

type InstanceDTO struct {
	Date date.Date `json:"date"`
	Note string    `json:"note,omitempty"`
}

type EventDTO struct {
	Id          string        `json:"id"`
	Name        string        `json:"name"`
	DisplayName string        `json:"displayName"`
	Label       string        `json:"label,omitempty"`
	Instances   []InstanceDTO `json:"instances"`
}

type SummaryDTO struct {
	Id               string        `json:"id"`
	DisplayName      string        `json:"displayName"`
	LatestDate       *date.Date    `json:"latestDate,omitempty"`
	Label            string        `json:"label,omitempty"`
	DaysCount        int           `json:"daysCount"`
	IsToday          bool          `json:"isToday"`
	AverageFrequency *float64      `json:"averageFrequency,omitempty"`
	AtLeastOneMonth  bool          `json:"atLeastOneMonth"`
	Instances        []InstanceDTO `json:"instances"`
}

type UpdateEventDTO struct {
	Name     string      `json:"name"`
	Instance InstanceDTO `json:"instance"`
}

type NoteDTO struct {
	Note string `json:"note"`
}

type OrderDTO struct {
	Ids []string `json:"ids"`
}

// SortOptionProvider returns the sort option currently chosen by the user.
type SortOptionProvider func(ctx context.Context) SortOption

type Handler struct {
	service    Service
	sortOption SortOptionProvider
	clock      utils.Clock
	variant    relative_date.Variant
}

func NewHandler(service Service, sortOption SortOptionProvider, clock utils.Clock, variant relative_date.Variant) *Handler {
	return &Handler{service: service, sortOption: sortOption, clock: clock, variant: variant}
}

// ListEvents godoc
// @Summary List events
// @Description Get all events sorted by the active sort option
// @Tags Event
// @Produce json
// @Success 200 {array} EventDTO
// @Router /api/event [get]
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing events")
	events, err := h.service.GetEvents(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeEvents(w, r.Context(), http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Create an event
// @Tags Event
// @Accept json
// @Produce json
// @Param event body EventDTO true "Event"
// @Success 201 {array} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/event [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating event")
	var eventDTO EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	for _, instance := range eventDTO.Instances {
		if instance.Date.IsZero() {
			rest.WriteError(w, http.StatusBadRequest, "Instance date is required")
			return
		}
	}
	e := dtoToEvent(eventDTO)
	if e.Name == "" {
		rest.WriteError(w, http.StatusBadRequest, "Event name is required")
		return
	}

	events, err := h.service.AddEvent(r.Context(), e)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeEvents(w, r.Context(), http.StatusCreated, events)
}

// GetSummary godoc
// @Summary Get event summary
// @Description Relative label, day count and average frequency of a single event
// @Tags Event
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} SummaryDTO
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Router /api/event/{eventId}/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	e, err := h.service.GetEvent(r.Context(), eventId)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			rest.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summary := Summarize(e, utils.Today(h.clock), h.variant)
	rest.WriteJSON(w, http.StatusOK, summaryToDTO(summary))
}

// UpdateEvent godoc
// @Summary Rename an event and add an instance
// @Description Unknown event ids and duplicate instance dates leave the collection unchanged
// @Tags Event
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param event body UpdateEventDTO true "New name and instance"
// @Success 200 {array} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/event/{eventId} [put]
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	var updateDTO UpdateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if updateDTO.Instance.Date.IsZero() {
		rest.WriteError(w, http.StatusBadRequest, "Instance date is required")
		return
	}

	instance := NewInstance(updateDTO.Instance.Date, updateDTO.Instance.Note)
	events, err := h.service.UpdateEvent(r.Context(), eventId, updateDTO.Name, instance)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeEvents(w, r.Context(), http.StatusOK, events)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags Event
// @Param eventId path string true "Event ID"
// @Success 200 {array} EventDTO
// @Router /api/event/{eventId} [delete]
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	log.Debugf("Deleting event %s", eventId)
	events, err := h.service.RemoveEvent(r.Context(), eventId)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeEvents(w, r.Context(), http.StatusOK, events)
}

// ReorderEvents godoc
// @Summary Store a manual order of events
// @Description Switches the active sort option to custom
// @Tags Event
// @Accept json
// @Produce json
// @Param order body OrderDTO true "Event ids in the new order"
// @Success 200 {array} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/event/order [put]
func (h *Handler) ReorderEvents(w http.ResponseWriter, r *http.Request) {
	var orderDTO OrderDTO
	if err := json.NewDecoder(r.Body).Decode(&orderDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	events, err := h.service.Reorder(r.Context(), orderDTO.Ids)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeEvents(w, r.Context(), http.StatusOK, events)
}

// DeleteInstance godoc
// @Summary Delete an instance of an event
// @Tags Event
// @Param eventId path string true "Event ID"
// @Param date path string true "Instance date (YYYY-MM-DD)"
// @Success 200 {array} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date"
// @Router /api/event/{eventId}/instance/{date} [delete]
func (h *Handler) DeleteInstance(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	d, err := date.Parse(vars["date"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	events, err := h.service.DeleteInstance(r.Context(), vars["eventId"], d)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeEvents(w, r.Context(), http.StatusOK, events)
}

// UpdateInstanceNote godoc
// @Summary Set or clear the note of an instance
// @Tags Event
// @Accept json
// @Param eventId path string true "Event ID"
// @Param date path string true "Instance date (YYYY-MM-DD)"
// @Param note body NoteDTO true "Note, blank clears it"
// @Success 200 {array} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/event/{eventId}/instance/{date}/note [put]
func (h *Handler) UpdateInstanceNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	d, err := date.Parse(vars["date"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	var noteDTO NoteDTO
	if err := json.NewDecoder(r.Body).Decode(&noteDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	events, err := h.service.UpdateInstanceNote(r.Context(), vars["eventId"], d, noteDTO.Note)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeEvents(w, r.Context(), http.StatusOK, events)
}

// ExportBackup godoc
// @Summary Export all events
// @Description The backup has the same format as the stored collection
// @Tags Backup
// @Produce json
// @Success 200 {string} string "Backup"
// @Router /api/backup [get]
func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	text, err := h.service.ExportAll(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=occasions-backup.json")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, text); err != nil {
		log.Errorf("failed to write backup: %v", err)
	}
}

// ImportBackup godoc
// @Summary Replace all events with a backup
// @Tags Backup
// @Accept json
// @Success 204 "No Content"
// @Failure 400 {object} rest.ErrorResponse "Malformed backup"
// @Router /api/backup [post]
func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBackupSize))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	imported, err := h.service.ImportAll(r.Context(), string(body))
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !imported {
		rest.WriteError(w, http.StatusBadRequest, "Backup could not be read")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeEvents(w http.ResponseWriter, ctx context.Context, status int, events []Event) {
	option := DefaultSortOption
	if h.sortOption != nil {
		option = h.sortOption(ctx)
	}
	today := utils.Today(h.clock)

	sorted := Sort(events, option)
	eventsDTO := make([]EventDTO, 0, len(sorted))
	for _, e := range sorted {
		eventsDTO = append(eventsDTO, eventToDTO(e, today, h.variant))
	}
	rest.WriteJSON(w, status, eventsDTO)
}

func eventToDTO(e Event, today date.Date, variant relative_date.Variant) EventDTO {
	dto := EventDTO{
		Id:          e.Id,
		Name:        e.Name,
		DisplayName: relative_date.TitleCase(e.Name),
		Instances:   instancesToDTO(e.Instances),
	}
	if len(e.Instances) > 0 {
		dto.Label = relative_date.RelativeLabel(e.LatestDate(), today, variant)
	}
	return dto
}

func dtoToEvent(dto EventDTO) Event {
	instances := make([]Instance, 0, len(dto.Instances))
	for _, instance := range dto.Instances {
		instances = append(instances, NewInstance(instance.Date, instance.Note))
	}
	return Event{Id: dto.Id, Name: dto.Name, Instances: instances}.normalized()
}

func summaryToDTO(summary Summary) SummaryDTO {
	dto := SummaryDTO{
		Id:              summary.Id,
		DisplayName:     summary.DisplayName,
		Label:           summary.Label,
		DaysCount:       summary.DaysCount,
		IsToday:         summary.IsToday,
		AtLeastOneMonth: summary.AtLeastOneMonth,
		Instances:       instancesToDTO(summary.Instances),
	}
	if summary.Label != "" {
		latest := summary.LatestDate
		dto.LatestDate = &latest
	}
	if summary.HasFrequency {
		frequency := summary.AverageFrequency
		dto.AverageFrequency = &frequency
	}
	return dto
}

func instancesToDTO(instances []Instance) []InstanceDTO {
	result := make([]InstanceDTO, 0, len(instances))
	for _, instance := range instances {
		result = append(result, InstanceDTO{Date: instance.Date, Note: instance.Note})
	}
	return result
}
