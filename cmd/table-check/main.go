// Command table-check drives a running table service with generated
// queries and verifies filtering, ordering and detail lookups.
package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/leodovqa/palworld-data-tool/internal/tablecheck"
	"github.com/leodovqa/palworld-data-tool/pkg/logger"
)

// Default configuration constants.
const (
	defaultQueries     = 1000
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 10 * time.Second
	defaultTestTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		queries  = flag.Int("queries", defaultQueries, "Number of table queries to issue")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed     = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for query generation")
		logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
		verbose  = flag.Bool("verbose", false, "Log every query")
	)
	flag.Parse()

	if err := logger.InitWithWriter(os.Stderr); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Named("table-check")
	if err := logger.SetLevelString(*logLevel); err != nil {
		log.Warn(context.Background(), "invalid log level; using info", logger.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	cfg := &tablecheck.Config{
		BaseURL: *baseURL,
		Queries: *queries,
		Workers: *workers,
		Timeout: *timeout,
		Seed:    *seed,
		Verbose: *verbose,
	}
	if _, err := tablecheck.Run(ctx, cfg, log); err != nil {
		log.Error(ctx, "check failed", logger.Error(err), logger.Any("seed", *seed))
		os.Exit(1)
	}
}
