package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/BartekS5/uni-etl/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pipeline runs extract, transform and load in sequence. A failed stage
// halts the run; later stages never see a missing result.
type Pipeline struct {
	Extractor   Extractor
	Transformer *Transformer
	Loader      Loader
	DryRun      bool
	Log         *zap.Logger
}

func NewPipeline(ext Extractor, tr *Transformer, loader Loader, dryRun bool, log *zap.Logger) *Pipeline {
	return &Pipeline{
		Extractor:   ext,
		Transformer: tr,
		Loader:      loader,
		DryRun:      dryRun,
		Log:         log,
	}
}

// Run executes one pass. The transformed table is returned whenever the
// transform stage succeeded, even if loading failed afterwards.
func (p *Pipeline) Run(ctx context.Context) (*models.RunReport, *models.Table, error) {
	start := time.Now()
	report := &models.RunReport{RunID: uuid.NewString(), DryRun: p.DryRun}
	log := p.Log.With(zap.String("run_id", report.RunID))

	log.Info("Starting ETL process", zap.Bool("dry_run", p.DryRun))

	fail := func(stage string, err error) error {
		report.Status = models.StatusError
		report.Stage = stage
		report.Error = err.Error()
		report.Duration = time.Since(start)
		log.Error(fmt.Sprintf("ETL process aborted at %s stage", stage))
		return &StageError{Stage: stage, Err: err}
	}

	// 1. Extract
	data, err := p.Extractor.Extract(ctx)
	if err != nil {
		return report, nil, fail(StageExtract, err)
	}
	report.RowsRead = len(data)

	// 2. Transform
	table, err := p.Transformer.Transform(data)
	if err != nil {
		return report, nil, fail(StageTransform, err)
	}
	report.RowsKept = table.Len()

	// 3. Load (skip if DryRun)
	if p.DryRun {
		log.Info(fmt.Sprintf("[DRY RUN] Would load %d rows", table.Len()))
	} else {
		written, err := p.Loader.Load(ctx, table)
		if err != nil {
			return report, table, fail(StageLoad, err)
		}
		report.RowsWritten = written
	}

	report.Status = models.StatusSuccess
	report.Duration = time.Since(start)
	log.Info("ETL process completed",
		zap.Int("rows_read", report.RowsRead),
		zap.Int("rows_kept", report.RowsKept),
		zap.Int("rows_written", report.RowsWritten),
		zap.Duration("duration", report.Duration))
	return report, table, nil
}
