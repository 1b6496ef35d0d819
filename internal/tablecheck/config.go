package tablecheck

import (
	"net/url"
	"time"

	"github.com/leodovqa/palworld-data-tool/internal/domain/detail"
	"github.com/leodovqa/palworld-data-tool/internal/domain/facet"
	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
	"github.com/leodovqa/palworld-data-tool/internal/domain/sorting"
)

// Config holds configuration for a check run.
type Config struct {
	BaseURL string        // Base URL of the service
	Queries int           // Number of table queries to issue
	Workers int           // Number of concurrent workers
	Timeout time.Duration // HTTP request timeout
	Seed    uint64        // Seed for query generation; equal seeds give equal runs
	Verbose bool          // Log every query
}

// Query is one generated table request and the sort state it was built from.
type Query struct {
	Params url.Values
	Sort   sorting.State // state sent as sort/dir
	Expect sorting.State // state the response must report
}

// Row mirrors one row of GET /api/pals.
type Row struct {
	Record       pal.FlatRecord   `json:"record"`
	MasteryLevel *int             `json:"masteryLevel,omitempty"`
	ElementIcons []detail.Element `json:"elementIcons"`
}

// Table mirrors the GET /api/pals response.
type Table struct {
	Rows   []Row         `json:"rows"`
	Total  int           `json:"total"`
	Shown  int           `json:"shown"`
	Sort   sorting.State `json:"sort"`
	Levels []int         `json:"levels"`
}

// Catalog is what the generator draws queries from.
type Catalog struct {
	Facets  facet.Index
	Columns []pal.Column
	Pals    []pal.FlatRecord
}

// Stats holds run statistics.
type Stats struct {
	Queries    int
	Succeeded  int
	Failed     int
	Violations int
	Details    int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	MaxLatency time.Duration
}
