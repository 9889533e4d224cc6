package event_report

import (
	"context"
	"io"
	"net/http"

	"github.com/klokku/occasions/internal/rest"
	"github.com/klokku/occasions/internal/utils"
	"github.com/klokku/occasions/pkg/event"
	log "github.com/sirupsen/logrus"
)

type EventReader interface {
	GetEvents(ctx context.Context) ([]event.Event, error)
}

type Handler struct {
	events   EventReader
	renderer Renderer
	clock    utils.Clock
}

func NewHandler(events EventReader, renderer Renderer, clock utils.Clock) *Handler {
	return &Handler{events: events, renderer: renderer, clock: clock}
}

// GetCsvReport godoc
// @Summary Download all event instances as CSV
// @Tags Report
// @Produce text/csv
// @Success 200 {string} string "CSV report"
// @Router /api/report/csv [get]
func (h *Handler) GetCsvReport(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.GetEvents(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	report, err := h.renderer.Render(events, utils.Today(h.clock))
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=occasions.csv")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, report); err != nil {
		log.Errorf("failed to write report: %v", err)
	}
}
