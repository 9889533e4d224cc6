package widget

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/occasions/internal/rest"
	"github.com/klokku/occasions/pkg/date"
	log "github.com/sirupsen/logrus"
)

type ConfigurationDTO struct {
	EventId  string `json:"eventId"`
	DaysOnly bool   `json:"daysOnly"`
}

type ViewDTO struct {
	WidgetId    string     `json:"widgetId"`
	Configured  bool       `json:"configured"`
	EventId     string     `json:"eventId,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
	LatestDate  *date.Date `json:"latestDate,omitempty"`
	DaysCount   int        `json:"daysCount"`
	IsToday     bool       `json:"isToday"`
	Label       string     `json:"label,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetWidget godoc
// @Summary Render a widget
// @Tags Widget
// @Produce json
// @Param widgetId path string true "Widget ID"
// @Success 200 {object} ViewDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid widget id"
// @Router /api/widget/{widgetId} [get]
func (h *Handler) GetWidget(w http.ResponseWriter, r *http.Request) {
	widgetId := mux.Vars(r)["widgetId"]
	view, err := h.service.Render(r.Context(), widgetId)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, viewToDTO(view))
}

// GetConfiguration godoc
// @Summary Get the configuration of a widget
// @Tags Widget
// @Produce json
// @Param widgetId path string true "Widget ID"
// @Success 200 {object} ConfigurationDTO
// @Router /api/widget/{widgetId}/configuration [get]
func (h *Handler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	widgetId := mux.Vars(r)["widgetId"]
	config, err := h.service.GetConfiguration(r.Context(), widgetId)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ConfigurationDTO{EventId: config.EventId, DaysOnly: config.DaysOnly})
}

// StoreConfiguration godoc
// @Summary Configure a widget
// @Tags Widget
// @Accept json
// @Produce json
// @Param widgetId path string true "Widget ID"
// @Param configuration body ConfigurationDTO true "Widget configuration"
// @Success 200 {object} ViewDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/widget/{widgetId}/configuration [put]
func (h *Handler) StoreConfiguration(w http.ResponseWriter, r *http.Request) {
	widgetId := mux.Vars(r)["widgetId"]
	var dto ConfigurationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	log.Debugf("Configuring widget %s", widgetId)

	config := Configuration{WidgetId: widgetId, EventId: dto.EventId, DaysOnly: dto.DaysOnly}
	if err := h.service.Configure(r.Context(), config); err != nil {
		writeError(w, err)
		return
	}
	view, err := h.service.Render(r.Context(), widgetId)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, viewToDTO(view))
}

// DeleteConfiguration godoc
// @Summary Forget a widget
// @Tags Widget
// @Param widgetId path string true "Widget ID"
// @Success 204 "No Content"
// @Router /api/widget/{widgetId}/configuration [delete]
func (h *Handler) DeleteConfiguration(w http.ResponseWriter, r *http.Request) {
	widgetId := mux.Vars(r)["widgetId"]
	if err := h.service.RemoveConfiguration(r.Context(), widgetId); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidWidgetId) {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	rest.WriteError(w, http.StatusInternalServerError, err.Error())
}

func viewToDTO(view View) ViewDTO {
	dto := ViewDTO{
		WidgetId:    view.WidgetId,
		Configured:  view.Configured,
		EventId:     view.EventId,
		DisplayName: view.DisplayName,
		DaysCount:   view.DaysCount,
		IsToday:     view.IsToday,
		Label:       view.Label,
	}
	if !view.LatestDate.IsZero() {
		latest := view.LatestDate
		dto.LatestDate = &latest
	}
	return dto
}
