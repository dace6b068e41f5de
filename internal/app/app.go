// Package app wires dump loading, aggregation, reconciliation and reporting
// into the popcompare commands.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"popcompare/internal/aggregate"
	"popcompare/internal/compare"
	"popcompare/internal/config"
	"popcompare/internal/dumpfile"
	"popcompare/internal/logger"
	"popcompare/internal/models"
	"popcompare/internal/parser"
	"popcompare/internal/report"
	"popcompare/internal/storage"
)

// Result describes a finished comparison
type Result struct {
	Rows       []models.ComparisonRow
	ReportPath string
}

// stage runs fn and logs how long it took
func stage(name string, fn func() error, attrs ...any) error {
	start := time.Now()
	if err := fn(); err != nil {
		logger.L().Error("stage_failed", append([]any{"stage", name, "err", err}, attrs...)...)
		return err
	}
	logger.L().Info("stage_done", append([]any{"stage", name, "elapsed", time.Since(start)}, attrs...)...)
	return nil
}

// step runs an in-memory stage that cannot fail and logs how long it took
func step(name string, fn func(), attrs ...any) {
	start := time.Now()
	fn()
	logger.L().Info("stage_done", append([]any{"stage", name, "elapsed", time.Since(start)}, attrs...)...)
}

// LoadSnapshot reads and parses both dumps of one snapshot source
func LoadSnapshot(ctx context.Context, files *dumpfile.Manager, src models.SnapshotSource) (models.Snapshot, error) {
	if err := src.Validate(); err != nil {
		return models.Snapshot{}, err
	}

	texts := make(map[models.DumpKind]string, 2)
	for _, kind := range []models.DumpKind{models.DumpKindRegions, models.DumpKindNations} {
		path, err := dumpfile.Path(src.Dir, src.Label, kind, src.Ext)
		if err != nil {
			return models.Snapshot{}, err
		}
		text, err := files.ReadText(ctx, path)
		if err != nil {
			return models.Snapshot{}, err
		}
		texts[kind] = text
	}

	return parser.ParseSnapshot(src.Label, texts[models.DumpKindRegions], texts[models.DumpKindNations])
}

// loadPair loads the two snapshots concurrently. Both must succeed before
// either is returned.
func loadPair(ctx context.Context, files *dumpfile.Manager, before, after models.SnapshotSource) (models.Snapshot, models.Snapshot, error) {
	var b, a models.Snapshot
	var g errgroup.Group
	g.Go(func() error {
		var err error
		b, err = LoadSnapshot(ctx, files, before)
		return err
	})
	g.Go(func() error {
		var err error
		a, err = LoadSnapshot(ctx, files, after)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Snapshot{}, models.Snapshot{}, err
	}
	return b, a, nil
}

// Compare loads both snapshots and reconciles them into rows without writing anything
func Compare(ctx context.Context, files *dumpfile.Manager, before, after models.SnapshotSource) ([]models.ComparisonRow, error) {
	var snapBefore, snapAfter models.Snapshot
	err := stage("load", func() error {
		var err error
		snapBefore, snapAfter, err = loadPair(ctx, files, before, after)
		return err
	}, "before", before.Label, "after", after.Label)
	if err != nil {
		return nil, err
	}
	logger.L().Info("snapshots_loaded",
		"before_regions", len(snapBefore.Regions), "before_nations", len(snapBefore.Nations),
		"after_regions", len(snapAfter.Regions), "after_nations", len(snapAfter.Nations))

	var sumBefore, sumAfter aggregate.Summary
	step("aggregate", func() {
		sumBefore = aggregate.Summarize(snapBefore)
		sumAfter = aggregate.Summarize(snapAfter)
	})

	var rows []models.ComparisonRow
	step("reconcile", func() {
		rows = compare.Rows(sumBefore, sumAfter)
	})

	total := compare.Totals(rows)
	logger.L().Info("world_totals",
		"rows", len(rows),
		"pop_before", total.Before.Population, "pop_after", total.After.Population, "pop_change", total.PopulationChange.String(),
		"wa_before", total.Before.WAMembers, "wa_after", total.After.WAMembers, "wa_change", total.WAChange.String())
	return rows, nil
}

// Run executes the compare command: load, reconcile, render and optionally store
func Run(ctx context.Context, cfg config.Config, out io.Writer) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	renderer, err := report.ForFormat(cfg.Format)
	if err != nil {
		return Result{}, err
	}
	if x, ok := renderer.(*report.XLSX); ok {
		x.Formulas = cfg.Formulas
	}

	files := dumpfile.NewManager()
	// reject unsupported extensions before any file is touched
	if _, err := files.GetReader(cfg.DumpExt); err != nil {
		return Result{}, err
	}

	before := models.SnapshotSource{Label: cfg.Before, Dir: cfg.DumpDir, Ext: cfg.DumpExt}
	after := models.SnapshotSource{Label: cfg.After, Dir: cfg.DumpDir, Ext: cfg.DumpExt}
	rows, err := Compare(ctx, files, before, after)
	if err != nil {
		return Result{}, err
	}

	var path string
	err = stage("render", func() error {
		var err error
		path, err = report.WriteFile(cfg.OutDir, report.FileName(cfg.Before, cfg.After, renderer.Extension()), renderer, cfg.Title, rows)
		return err
	}, "format", renderer.Format())
	if err != nil {
		return Result{}, err
	}

	if cfg.StoreDir != "" {
		err = stage("store", func() error {
			store, err := storage.OpenReportStore(cfg.StoreDir)
			if err != nil {
				return err
			}
			defer store.Close()
			return store.SaveReport(cfg.Before, cfg.After, rows)
		}, "dir", cfg.StoreDir)
		if err != nil {
			return Result{}, err
		}
	}

	if _, err := fmt.Fprintf(out, "compared %d region(s), report written to %s\n", len(rows), path); err != nil {
		return Result{}, err
	}
	return Result{Rows: rows, ReportPath: path}, nil
}

// Show prints a stored report as a text table
func Show(cfg config.Config, out io.Writer) error {
	if cfg.StoreDir == "" {
		return fmt.Errorf("store-dir is required to show a stored report")
	}
	store, err := storage.OpenReportStore(cfg.StoreDir)
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.ReportRows(cfg.Before, cfg.After, cfg.Region)
	if err != nil {
		return err
	}
	return report.Text{}.Render(out, cfg.Title, rows)
}
