package api

import (
	"net/http"

	"github.com/leodovqa/palworld-data-tool/internal/domain/passives"
)

// FacetsHandler serves the column list and the filter choices.
type FacetsHandler struct {
	deps Dependencies
}

// NewFacetsHandler creates a new facets handler.
func NewFacetsHandler(deps Dependencies) *FacetsHandler {
	return &FacetsHandler{deps: deps}
}

type levelsResponse struct {
	Mastery string `json:"mastery"`
	Levels  []int  `json:"levels"`
}

// HandleColumns handles GET /api/columns.
func (h *FacetsHandler) HandleColumns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Columns(r.Context()))
}

// HandleFacets handles GET /api/facets.
func (h *FacetsHandler) HandleFacets(w http.ResponseWriter, r *http.Request) {
	index, err := h.deps.Facets(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, index)
}

// HandleLevels handles GET /api/facets/levels?mastery=<type>.
func (h *FacetsHandler) HandleLevels(w http.ResponseWriter, r *http.Request) {
	mastery := r.URL.Query().Get(paramMastery)
	levels, err := h.deps.Levels(r.Context(), mastery)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if levels == nil {
		levels = []int{}
	}
	writeJSON(w, http.StatusOK, levelsResponse{Mastery: mastery, Levels: levels})
}

// HandlePassives handles GET /api/passives: the passive catalog the
// attack and move columns draw from.
func (h *FacetsHandler) HandlePassives(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, passives.Catalog())
}
