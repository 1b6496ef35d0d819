// Package tablecheck drives a running table service with generated
// queries and verifies every response against the table invariants.
package tablecheck

import (
	"context"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/leodovqa/palworld-data-tool/internal/domain/detail"
	"github.com/leodovqa/palworld-data-tool/pkg/logger"
)

// Worker configuration constants.
const (
	workerChannelMultiplier = 2
	maxLoggedViolations     = 20
)

// Run executes a complete check: health, catalog, generated queries and
// detail lookups. It returns ErrMismatch when any response broke an
// invariant.
func Run(ctx context.Context, cfg *Config, log logger.Logger) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	c := newClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting table check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("queries", cfg.Queries),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Any("seed", cfg.Seed))

	// Step 1: Check service health
	if err := c.get(ctx, "/healthz", nil, nil); err != nil {
		return stats, errors.Wrapf(ErrUnhealthy, "%v", err)
	}

	// Step 2: Fetch what queries are generated from
	cat, err := fetchCatalog(ctx, c)
	if err != nil {
		return stats, err
	}
	log.Info(ctx, "catalog fetched",
		logger.Int("pals", len(cat.Pals)),
		logger.Int("elements", len(cat.Facets.Elements)),
		logger.Int("masteries", len(cat.Facets.Masteries)))

	// Step 3: Issue queries concurrently and verify each response
	queries := Generate(cat, cfg.Queries, cfg.Seed)
	violations := runQueries(ctx, c, cfg, queries, len(cat.Pals), stats, log)

	// Step 4: Resolve details for a sample of ids, including an unknown one
	violations = append(violations, checkDetails(ctx, c, cat, stats)...)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	stats.Violations = len(violations)

	for i, v := range violations {
		if i == maxLoggedViolations {
			log.Warn(ctx, "further violations omitted", logger.Int("omitted", len(violations)-i))
			break
		}
		log.Warn(ctx, "violation", logger.Error(v))
	}
	logFinalStats(ctx, log, stats)

	if ctx.Err() != nil {
		return stats, ctx.Err()
	}
	if stats.Violations > 0 {
		return stats, errors.Wrapf(ErrMismatch, "%d violations", stats.Violations)
	}
	if stats.Failed > 0 {
		return stats, errors.Wrapf(ErrStatus, "%d failed queries", stats.Failed)
	}
	return stats, nil
}

func fetchCatalog(ctx context.Context, c *client) (Catalog, error) {
	var cat Catalog
	if err := c.get(ctx, "/api/facets", nil, &cat.Facets); err != nil {
		return cat, err
	}
	if err := c.get(ctx, "/api/columns", nil, &cat.Columns); err != nil {
		return cat, err
	}
	var t Table
	if err := c.get(ctx, "/api/pals", nil, &t); err != nil {
		return cat, err
	}
	if len(t.Rows) == 0 {
		return cat, ErrNoPals
	}
	for _, r := range t.Rows {
		cat.Pals = append(cat.Pals, r.Record)
	}
	return cat, nil
}

// runQueries fans queries out to cfg.Workers goroutines.
func runQueries(ctx context.Context, c *client, cfg *Config, queries []Query, total int, stats *Stats, log logger.Logger) []error {
	workers := max(cfg.Workers, 1)

	var (
		succeeded  int64
		failed     int64
		maxLatency int64
		mu         sync.Mutex
		violations []error
	)

	queryChan := make(chan Query, workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q := range queryChan {
				start := time.Now()
				var t Table
				err := c.get(ctx, "/api/pals", q.Params, &t)
				latency := int64(time.Since(start))
				for {
					cur := atomic.LoadInt64(&maxLatency)
					if latency <= cur || atomic.CompareAndSwapInt64(&maxLatency, cur, latency) {
						break
					}
				}
				if err != nil {
					atomic.AddInt64(&failed, 1)
					log.Warn(ctx, "query failed", logger.String("query", q.Params.Encode()), logger.Error(err))
					continue
				}
				atomic.AddInt64(&succeeded, 1)
				if cfg.Verbose {
					log.Info(ctx, "query", logger.String("query", q.Params.Encode()), logger.Int("shown", t.Shown))
				}
				if errs := Verify(q, t, total); len(errs) > 0 {
					mu.Lock()
					for _, e := range errs {
						violations = append(violations, errors.Wrapf(e, "query %s", q.Params.Encode()))
					}
					mu.Unlock()
				}
			}
		}()
	}

	go func() {
		defer close(queryChan)
		for _, q := range queries {
			select {
			case <-ctx.Done():
				return
			case queryChan <- q:
			}
		}
	}()

	wg.Wait()

	stats.Queries = len(queries)
	stats.Succeeded = int(atomic.LoadInt64(&succeeded))
	stats.Failed = int(atomic.LoadInt64(&failed))
	stats.MaxLatency = time.Duration(atomic.LoadInt64(&maxLatency))
	return violations
}

// unknownID never names a Pal; its detail view must come back with
// found=false.
const unknownID = "__tablecheck_unknown__"

func checkDetails(ctx context.Context, c *client, cat Catalog, stats *Stats) []error {
	var errs []error
	ids := []string{cat.Pals[0].ID, cat.Pals[len(cat.Pals)-1].ID}
	for _, id := range ids {
		if id == "" {
			continue
		}
		var v detail.View
		if err := c.get(ctx, "/api/pals/"+url.PathEscape(id), nil, &v); err != nil {
			errs = append(errs, err)
			continue
		}
		stats.Details++
		if !v.Found || v.ID == "" {
			errs = append(errs, errors.Wrapf(ErrMismatch, "detail %s: found=%t id=%q", id, v.Found, v.ID))
		}
	}

	var v detail.View
	if err := c.get(ctx, "/api/pals/"+unknownID, nil, &v); err != nil {
		return append(errs, err)
	}
	stats.Details++
	if v.Found {
		errs = append(errs, errors.Wrapf(ErrMismatch, "detail %s: unknown id reported found", unknownID))
	}
	return errs
}

func logFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var qps float64
	if stats.Duration > 0 {
		qps = float64(stats.Queries) / stats.Duration.Seconds()
	}
	log.Info(ctx, "final statistics",
		logger.Int("queries", stats.Queries),
		logger.Int("succeeded", stats.Succeeded),
		logger.Int("failed", stats.Failed),
		logger.Int("violations", stats.Violations),
		logger.Int("details", stats.Details),
		logger.String("duration", stats.Duration.String()),
		logger.String("maxLatency", stats.MaxLatency.String()),
		logger.Float64("queriesPerSecond", qps))
}
