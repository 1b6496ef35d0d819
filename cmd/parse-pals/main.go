// Command parse-pals converts the tab-separated Pal sheet export into
// pals.json, pals_raw.json and pals_flat.csv.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/leodovqa/palworld-data-tool/internal/adapters/tsvparse"
	"github.com/leodovqa/palworld-data-tool/pkg/logger"
)

// Output file names, written under -out.
const (
	flatFile = "pals.json"
	rawFile  = "pals_raw.json"
	csvFile  = "pals_flat.csv"
)

type options struct {
	in    string
	types string
	out   string
}

func main() {
	var opts options
	flag.StringVar(&opts.in, "in", "pals_data.tsv", "Tab-separated sheet export")
	flag.StringVar(&opts.types, "types", "pal_types.json", "Pal type table (optional)")
	flag.StringVar(&opts.out, "out", ".", "Output directory")
	level := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	if err := logger.InitWithWriter(os.Stderr); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Named("parse-pals")
	ctx := context.Background()
	if err := logger.SetLevelString(*level); err != nil {
		log.Warn(ctx, "invalid log level; falling back to info", logger.Error(err))
	}

	if err := run(ctx, log, opts); err != nil {
		log.Fatal(ctx, "parse failed", logger.Error(err))
	}
}

func run(ctx context.Context, log logger.Logger, opts options) error {
	types, err := readTypes(ctx, log, opts.types)
	if err != nil {
		return err
	}

	in, err := os.Open(opts.in)
	if err != nil {
		return errors.Wrap(err, "open sheet")
	}
	defer func() { _ = in.Close() }()

	flat, raw, err := tsvparse.Parse(in, types)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	if err := writeFile(filepath.Join(opts.out, flatFile), func(f *os.File) error { return tsvparse.WriteJSON(f, flat) }); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(opts.out, rawFile), func(f *os.File) error { return tsvparse.WriteJSON(f, raw) }); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(opts.out, csvFile), func(f *os.File) error { return tsvparse.WriteCSV(f, flat) }); err != nil {
		return err
	}

	log.Info(ctx, "parsed pal sheet",
		logger.String("in", opts.in),
		logger.String("out", opts.out),
		logger.Int("pals", len(flat)))
	return nil
}

// readTypes treats a missing type table as empty: every Pal is a fighter.
func readTypes(ctx context.Context, log logger.Logger, path string) (tsvparse.TypeTable, error) {
	if path == "" {
		return tsvparse.TypeTable{}, nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		log.Warn(ctx, "type table not found; all pals default to fighter", logger.String("path", path))
		return tsvparse.TypeTable{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "open type table")
	}
	defer func() { _ = f.Close() }()
	return tsvparse.ReadTypeTable(f)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
