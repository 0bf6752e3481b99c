package place

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hanoivivu/assistant/internal/model/place"
	"github.com/hanoivivu/assistant/pkg/utils"
)

// Handler serves the place catalog backing suggestion cards.
type Handler struct {
	places place.Store
}

// New creates a place handler.
func New(places place.Store) *Handler {
	return &Handler{places: places}
}

// RegisterRoutes registers place routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/places", h.handleListPlaces)
	r.Get("/places/{placeID}", h.handleGetPlace)
}

func (h *Handler) handleListPlaces(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.places.List())
}

func (h *Handler) handleGetPlace(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "placeID"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "placeID must be numeric")
		return
	}

	found, ok := h.places.FindByID(id)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "place not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, found)
}
