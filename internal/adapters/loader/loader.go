// Package loader fetches the Pal dataset from a Source and assembles the
// read-only snapshot served by the table engine.
package loader

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/dimchansky/utfbom"
	"github.com/pkg/errors"

	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
	"github.com/leodovqa/palworld-data-tool/pkg/logger"
	"github.com/leodovqa/palworld-data-tool/pkg/metrics"
)

// Input names, relative to the source root.
const (
	FlatInput         = "pals.json"
	RawInput          = "pals_raw.json"
	PalIconsInput     = "assets/pals_icons/manifest.json"
	WorkIconsInput    = "assets/work_icons/manifest.json"
	ElementIconsInput = "assets/element_icons/manifest.json"
)

// Input outcomes recorded in metrics.
const (
	outcomeOK       = "ok"
	outcomeDegraded = "degraded"
	outcomeFailed   = "failed"
)

// Report describes how a load went.
type Report struct {
	Source   string            `json:"source"`
	Degraded map[string]string `json:"degraded,omitempty"`
	Flat     int               `json:"flat"`
	Raw      int               `json:"raw"`
	Duration time.Duration     `json:"duration"`
}

// OK reports whether every optional input loaded.
func (r Report) OK() bool { return len(r.Degraded) == 0 }

type loader struct {
	src    Source
	logger logger.Logger
}

// Load fetches all five inputs concurrently. A failing optional input
// degrades to empty data and never affects the others; a failing
// pals.json yields ErrFlatRecords and no dataset.
func Load(ctx context.Context, src Source, opts ...Option) (pal.Dataset, Report, error) {
	if src == nil {
		return pal.Dataset{}, Report{}, ErrNilSource
	}
	ld := &loader{src: src, logger: logger.Nop()}
	for _, opt := range opts {
		opt(ld)
	}

	start := time.Now()
	report := Report{Source: src.String()}

	var (
		wg        sync.WaitGroup
		flat      []pal.FlatRecord
		raw       map[string]pal.RawRecord
		palIcons  pal.IconManifest
		workIcons pal.IconManifest
		elemIcons pal.IconManifest
		errs      [5]error
	)

	fetches := []func() error{
		func() (err error) { flat, err = ld.flat(ctx); return err },
		func() (err error) { raw, err = ld.raw(ctx); return err },
		func() (err error) { palIcons, err = ld.manifest(ctx, PalIconsInput); return err },
		func() (err error) { workIcons, err = ld.manifest(ctx, WorkIconsInput); return err },
		func() (err error) { elemIcons, err = ld.manifest(ctx, ElementIconsInput); return err },
	}
	names := [5]string{FlatInput, RawInput, PalIconsInput, WorkIconsInput, ElementIconsInput}

	wg.Add(len(fetches))
	for i, fetch := range fetches {
		go func() {
			defer wg.Done()
			errs[i] = fetch()
		}()
	}
	wg.Wait()

	if errs[0] != nil {
		metrics.RecordLoaderInput(FlatInput, outcomeFailed)
		metrics.RecordErrorByComponent("loader", "flat_records")
		return pal.Dataset{}, report, errors.Wrapf(ErrFlatRecords, "%s from %s: %v", FlatInput, src, errs[0])
	}
	metrics.RecordLoaderInput(FlatInput, outcomeOK)

	for i := 1; i < len(names); i++ {
		if errs[i] == nil {
			metrics.RecordLoaderInput(names[i], outcomeOK)
			continue
		}
		if report.Degraded == nil {
			report.Degraded = make(map[string]string)
		}
		report.Degraded[names[i]] = errs[i].Error()
		metrics.RecordLoaderInput(names[i], outcomeDegraded)
		ld.logger.Warn(ctx, "optional input unavailable, continuing without it",
			logger.String("input", names[i]),
			logger.String("source", src.String()),
			logger.Error(errs[i]))
	}

	ds := pal.Dataset{
		Flat:         flat,
		RawByID:      nonNilRaw(raw),
		PalIcons:     nonNilManifest(palIcons),
		WorkIcons:    nonNilManifest(workIcons),
		ElementIcons: nonNilManifest(elemIcons),
	}

	report.Flat = len(ds.Flat)
	report.Raw = len(ds.RawByID)
	report.Duration = time.Since(start)
	metrics.RecordLoadDuration(float64(report.Duration.Microseconds()) / 1000)

	ld.logger.Info(ctx, "dataset loaded",
		logger.String("source", src.String()),
		logger.Int("flat", report.Flat),
		logger.Int("raw", report.Raw),
		logger.Int("degraded", len(report.Degraded)))

	return ds, report, nil
}

func (ld *loader) flat(ctx context.Context) ([]pal.FlatRecord, error) {
	var wire []wireFlat
	if err := ld.decode(ctx, FlatInput, &wire); err != nil {
		return nil, err
	}
	out := make([]pal.FlatRecord, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.record())
	}
	return out, nil
}

// raw keys records by number. A later duplicate replaces an earlier one.
func (ld *loader) raw(ctx context.Context) (map[string]pal.RawRecord, error) {
	var wire []wireRaw
	if err := ld.decode(ctx, RawInput, &wire); err != nil {
		return nil, err
	}
	out := make(map[string]pal.RawRecord, len(wire))
	for _, w := range wire {
		r := w.record()
		if r.Number == "" {
			ld.logger.Debug(ctx, "raw record without number skipped", logger.String("name", r.Name))
			continue
		}
		out[r.Number] = r
	}
	return out, nil
}

func (ld *loader) manifest(ctx context.Context, name string) (pal.IconManifest, error) {
	var wire map[string]wireIcon
	if err := ld.decode(ctx, name, &wire); err != nil {
		return nil, err
	}
	out := make(pal.IconManifest, len(wire))
	for k, w := range wire {
		out[k] = pal.IconEntry{Filename: string(w.Filename), URL: string(w.URL)}
	}
	return out, nil
}

func (ld *loader) decode(ctx context.Context, name string, v any) error {
	rc, err := ld.src.Open(ctx, name)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	if err := Decode(rc, v); err != nil {
		return errors.Wrapf(err, "decode %s", name)
	}
	return nil
}

// Decode reads one JSON document from r, skipping a UTF-8 byte-order mark.
func Decode(r io.Reader, v any) error {
	return json.NewDecoder(utfbom.SkipOnly(r)).Decode(v)
}

func nonNilRaw(m map[string]pal.RawRecord) map[string]pal.RawRecord {
	if m == nil {
		return map[string]pal.RawRecord{}
	}
	return m
}

func nonNilManifest(m pal.IconManifest) pal.IconManifest {
	if m == nil {
		return pal.IconManifest{}
	}
	return m
}
