package preferences

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/occasions/internal/rest"
	"github.com/klokku/occasions/pkg/event"
	log "github.com/sirupsen/logrus"
)

type FontSizeDTO struct {
	FontSize string `json:"fontSize"`
}

type SortOptionDTO struct {
	SortOption string `json:"sortOption"`
}

type HintDTO struct {
	Hint string `json:"hint"`
	Seen bool   `json:"seen"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetFontSize godoc
// @Summary Get the font size
// @Tags Preferences
// @Produce json
// @Success 200 {object} FontSizeDTO
// @Router /api/preferences/font-size [get]
func (h *Handler) GetFontSize(w http.ResponseWriter, r *http.Request) {
	size, err := h.service.FontSize(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, FontSizeDTO{FontSize: string(size)})
}

// SetFontSize godoc
// @Summary Set the font size
// @Tags Preferences
// @Accept json
// @Produce json
// @Param fontSize body FontSizeDTO true "SMALL, MEDIUM or LARGE"
// @Success 200 {object} FontSizeDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid font size"
// @Router /api/preferences/font-size [put]
func (h *Handler) SetFontSize(w http.ResponseWriter, r *http.Request) {
	var dto FontSizeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if err := h.service.SetFontSize(r.Context(), FontSize(dto.FontSize)); err != nil {
		if errors.Is(err, ErrInvalidFontSize) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	log.Debugf("Font size set to %s", dto.FontSize)
	rest.WriteJSON(w, http.StatusOK, dto)
}

// GetSortOption godoc
// @Summary Get the sort option of the event list
// @Tags Preferences
// @Produce json
// @Success 200 {object} SortOptionDTO
// @Router /api/preferences/sort [get]
func (h *Handler) GetSortOption(w http.ResponseWriter, r *http.Request) {
	option, err := h.service.SortOption(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, SortOptionDTO{SortOption: string(option)})
}

// SetSortOption godoc
// @Summary Set the sort option of the event list
// @Tags Preferences
// @Accept json
// @Produce json
// @Param sortOption body SortOptionDTO true "date_asc, date_desc, alphabetical or custom"
// @Success 200 {object} SortOptionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid sort option"
// @Router /api/preferences/sort [put]
func (h *Handler) SetSortOption(w http.ResponseWriter, r *http.Request) {
	var dto SortOptionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if err := h.service.SetSortOption(r.Context(), event.SortOption(dto.SortOption)); err != nil {
		if errors.Is(err, ErrInvalidSortOption) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

// GetHint godoc
// @Summary Check whether a hint was seen
// @Tags Preferences
// @Produce json
// @Param hint path string true "Hint name"
// @Success 200 {object} HintDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid hint name"
// @Router /api/preferences/hint/{hint} [get]
func (h *Handler) GetHint(w http.ResponseWriter, r *http.Request) {
	hint := mux.Vars(r)["hint"]
	seen, err := h.service.IsHintSeen(r.Context(), hint)
	if err != nil {
		h.writeHintError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, HintDTO{Hint: hint, Seen: seen})
}

// SetHint godoc
// @Summary Mark a hint as seen or unseen
// @Tags Preferences
// @Accept json
// @Produce json
// @Param hint path string true "Hint name"
// @Param seen body HintDTO true "Seen flag"
// @Success 200 {object} HintDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid hint name"
// @Router /api/preferences/hint/{hint} [put]
func (h *Handler) SetHint(w http.ResponseWriter, r *http.Request) {
	hint := mux.Vars(r)["hint"]
	var dto HintDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if err := h.service.MarkHintSeen(r.Context(), hint, dto.Seen); err != nil {
		h.writeHintError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, HintDTO{Hint: hint, Seen: dto.Seen})
}

func (h *Handler) writeHintError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidHint) {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	rest.WriteError(w, http.StatusInternalServerError, err.Error())
}
