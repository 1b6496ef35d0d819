// Package service provides the table service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/leodovqa/palworld-data-tool/internal/adapters/loader"
	"github.com/leodovqa/palworld-data-tool/internal/domain/detail"
	"github.com/leodovqa/palworld-data-tool/internal/domain/facet"
	"github.com/leodovqa/palworld-data-tool/internal/domain/filter"
	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
	"github.com/leodovqa/palworld-data-tool/internal/domain/sorting"
	"github.com/leodovqa/palworld-data-tool/internal/domain/suggest"
	"github.com/leodovqa/palworld-data-tool/pkg/logger"
	"github.com/leodovqa/palworld-data-tool/pkg/metrics"
)

const (
	defaultLoadTimeout  = 10 * time.Second
	defaultSuggestLimit = 5
	microsPerMilli      = 1000
)

// Service owns the loaded dataset and answers table queries over it.
// After Start the dataset and facet index are read-only.
type Service struct {
	mu sync.RWMutex

	// Configuration
	source       loader.Source
	loadTimeout  time.Duration
	suggestLimit int

	// State
	started  bool
	dataset  pal.Dataset
	ordered  []pal.FlatRecord // dataset.Flat in the initial id-desc order
	index    facet.Index
	report   loader.Report
	loadedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets where the dataset is loaded from.
func WithSource(src loader.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithLoadTimeout bounds the dataset load in Start.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// WithSuggestLimit caps name suggestions. Zero disables them.
func WithSuggestLimit(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.suggestLimit = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		loadTimeout:  defaultLoadTimeout,
		suggestLimit: defaultSuggestLimit,
		logger:       nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset and builds the facet index. A missing or
// unreadable pals.json fails the start; optional inputs only degrade.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.source == nil {
		return ErrNoSource
	}

	s.logger.Info(ctx, "starting table service...", logger.String("source", s.source.String()))

	loadCtx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()

	ds, report, err := loader.Load(loadCtx, s.source, loader.WithLogger(s.logger.Named("loader")))
	if err != nil {
		return errors.Wrap(err, "load dataset")
	}

	s.dataset = ds
	s.ordered = sorting.Default(ds.Flat)
	s.index = facet.Build(ds)
	s.report = report
	s.loadedAt = time.Now()
	s.started = true

	s.updateDatasetMetrics()
	s.logger.Info(ctx, "table service started",
		logger.Int("pals", len(ds.Flat)),
		logger.Int("details", len(ds.RawByID)),
		logger.Int("masteries", len(s.index.Masteries)),
		logger.Bool("degraded", !report.OK()),
	)

	return nil
}

// Stop releases the dataset.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.dataset = pal.Dataset{}
	s.ordered = nil
	s.index = facet.Index{}
	s.started = false
	s.logger.Info(context.Background(), "table service stopped")
}

func (s *Service) snapshot() (pal.Dataset, facet.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return pal.Dataset{}, facet.Index{}, ErrNotStarted
	}
	return s.dataset, s.index, nil
}

// orderedSnapshot is snapshot plus the records in initial order. Every
// sort starts from that order, so ties under any key fall back to id
// descending.
func (s *Service) orderedSnapshot() (pal.Dataset, []pal.FlatRecord, facet.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return pal.Dataset{}, nil, facet.Index{}, ErrNotStarted
	}
	return s.dataset, s.ordered, s.index, nil
}

// TableRequest is one render of the table: the filters, the current sort
// state and, optionally, the column header just clicked.
type TableRequest struct {
	Query    filter.Query
	Sort     sorting.State
	Activate string
}

// Table is one rendered table view.
type Table struct {
	Rows        []filter.Row         `json:"rows"`
	Total       int                  `json:"total"`
	Shown       int                  `json:"shown"`
	Sort        sorting.State        `json:"sort"`
	Levels      []int                `json:"levels"`
	Suggestions []suggest.Suggestion `json:"suggestions,omitempty"`
}

// Table sorts the whole dataset by the request's sort state, after
// applying a header click when present, and then filters it.
func (s *Service) Table(ctx context.Context, req TableRequest) (Table, error) {
	ds, ordered, index, err := s.orderedSnapshot()
	if err != nil {
		return Table{}, err
	}
	start := time.Now()

	state := req.Sort
	if state.Key == "" {
		state = sorting.Initial()
	}
	if state.Dir == "" {
		state.Dir = sorting.Asc
	}
	state.Key = pal.CanonicalKey(state.Key)
	if req.Activate != "" {
		state = state.Activate(req.Activate)
	}

	sorted, err := state.Apply(ordered)
	if err != nil {
		return Table{}, err
	}
	metrics.RecordSort(state.Key, string(state.Dir))

	rows := filter.Apply(ds, sorted, req.Query)
	out := Table{
		Rows:   rows,
		Total:  len(ds.Flat),
		Shown:  len(rows),
		Sort:   state,
		Levels: index.LevelOptions(req.Query.Mastery),
	}
	if len(rows) == 0 && s.suggestLimit > 0 && req.Query.Text != "" {
		out.Suggestions = suggest.Names(ds.Flat, req.Query.Text, s.suggestLimit)
		if len(out.Suggestions) > 0 {
			metrics.RecordSuggestion()
		}
	}

	metrics.RecordFilterEvaluation(float64(time.Since(start).Microseconds())/microsPerMilli, len(rows))
	s.logger.Debug(ctx, "table rendered",
		logger.String("sort", state.Key),
		logger.String("dir", string(state.Dir)),
		logger.Int("shown", out.Shown),
	)
	return out, nil
}

// Detail resolves the detail view of one Pal. Unknown ids are not an
// error: the view carries fallbacks and Found is false.
func (s *Service) Detail(ctx context.Context, id string) (detail.View, error) {
	ds, _, err := s.snapshot()
	if err != nil {
		return detail.View{}, err
	}
	v := detail.Resolve(ds, id)
	if v.Found {
		metrics.RecordDetailLookup("found")
	} else {
		metrics.RecordDetailLookup("fallback")
		s.logger.Debug(ctx, "detail lookup fell back", logger.String("id", id))
	}
	return v, nil
}

// Facets returns the selectable filter values.
func (s *Service) Facets(_ context.Context) (facet.Index, error) {
	_, index, err := s.snapshot()
	return index, err
}

// Levels returns the mastery level options for a work type.
func (s *Service) Levels(_ context.Context, mastery string) ([]int, error) {
	_, index, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return index.LevelOptions(mastery), nil
}

// ElementIcons pairs element names with their icon paths.
func (s *Service) ElementIcons(_ context.Context, names []string) []detail.Element {
	ds, _, err := s.snapshot()
	if err != nil {
		return detail.ElementIcons(nil, names)
	}
	return detail.ElementIcons(ds.ElementIcons, names)
}

// Columns returns the declared table columns.
func (s *Service) Columns(_ context.Context) []pal.Column {
	return pal.Columns
}

// Report returns the outcome of the last load.
func (s *Service) Report() loader.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"suggestLimit": s.suggestLimit,
	}
	if s.source != nil {
		stats["source"] = s.source.String()
	}

	if s.started {
		stats["pals"] = len(s.dataset.Flat)
		stats["details"] = len(s.dataset.RawByID)
		stats["palIcons"] = len(s.dataset.PalIcons)
		stats["workIcons"] = len(s.dataset.WorkIcons)
		stats["elementIcons"] = len(s.dataset.ElementIcons)
		stats["masteries"] = len(s.index.Masteries)
		stats["degraded"] = s.report.Degraded
		stats["loadedAt"] = s.loadedAt.UTC().Format(time.RFC3339)
		stats["loadDurationMs"] = s.report.Duration.Milliseconds()
	}

	return stats
}

// updateDatasetMetrics publishes the snapshot gauges. Callers hold mu.
func (s *Service) updateDatasetMetrics() {
	metrics.UpdateDatasetSize(len(s.dataset.Flat), len(s.dataset.RawByID))
	metrics.UpdateDatasetIcons("pals", len(s.dataset.PalIcons))
	metrics.UpdateDatasetIcons("work", len(s.dataset.WorkIcons))
	metrics.UpdateDatasetIcons("element", len(s.dataset.ElementIcons))
	metrics.UpdateFacetValues("element", len(s.index.Elements))
	metrics.UpdateFacetValues("mountType", len(s.index.MountTypes))
	metrics.UpdateFacetValues("attack", len(s.index.Attacks))
	metrics.UpdateFacetValues("move", len(s.index.Moves))
	metrics.UpdateFacetValues("mastery", len(s.index.Masteries))
}
