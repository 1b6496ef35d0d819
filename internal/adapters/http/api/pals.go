package api

import (
	"encoding/csv"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leodovqa/palworld-data-tool/internal/domain/detail"
	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
	"github.com/leodovqa/palworld-data-tool/internal/domain/sorting"
	"github.com/leodovqa/palworld-data-tool/internal/domain/suggest"
	"github.com/leodovqa/palworld-data-tool/pkg/logger"
	"github.com/leodovqa/palworld-data-tool/pkg/metrics"
)

// PalsHandler serves the table, its CSV export and the detail view.
type PalsHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewPalsHandler creates a new pals handler.
func NewPalsHandler(deps Dependencies, log logger.Logger) *PalsHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &PalsHandler{deps: deps, logger: log}
}

type rowResponse struct {
	Record       pal.FlatRecord   `json:"record"`
	MasteryLevel *int             `json:"masteryLevel,omitempty"`
	ElementIcons []detail.Element `json:"elementIcons"`
}

type tableResponse struct {
	Rows        []rowResponse        `json:"rows"`
	Total       int                  `json:"total"`
	Shown       int                  `json:"shown"`
	Sort        sorting.State        `json:"sort"`
	Levels      []int                `json:"levels"`
	Suggestions []suggest.Suggestion `json:"suggestions,omitempty"`
}

// HandleTable handles GET /api/pals.
func (h *PalsHandler) HandleTable(w http.ResponseWriter, r *http.Request) {
	req, err := parseTableRequest(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	table, err := h.deps.Table(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := tableResponse{
		Rows:        make([]rowResponse, 0, len(table.Rows)),
		Total:       table.Total,
		Shown:       table.Shown,
		Sort:        table.Sort,
		Levels:      table.Levels,
		Suggestions: table.Suggestions,
	}
	if resp.Levels == nil {
		resp.Levels = []int{}
	}
	for _, row := range table.Rows {
		resp.Rows = append(resp.Rows, rowResponse{
			Record:       row.Record,
			MasteryLevel: row.MasteryLevel,
			ElementIcons: h.deps.ElementIcons(r.Context(), row.Record.Elements()),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleCSV handles GET /api/pals.csv: the same rows as /api/pals, one
// CSV column per table column.
func (h *PalsHandler) HandleCSV(w http.ResponseWriter, r *http.Request) {
	req, err := parseTableRequest(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	table, err := h.deps.Table(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	columns := h.deps.Columns(r.Context())
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Label
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="pals.csv"`)
	w.WriteHeader(http.StatusOK)

	records := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		records[i] = row.Record.Values()
	}
	if err := writeCSV(w, header, records); err != nil {
		// Headers are already out; the client sees a truncated body.
		metrics.RecordErrorByEndpoint("pals_csv", r.Method, "write_error")
		h.logger.Warn(r.Context(), "csv export failed", logger.Error(err))
	}
}

// writeCSV writes header and records, reporting the first write error.
func writeCSV(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// HandleDetail handles GET /api/pals/{id}. Unknown ids still return 200
// with found=false and fallback values.
func (h *PalsHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.deps.Detail(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
