package etl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/BartekS5/uni-etl/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	data models.RawDataset
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context) (models.RawDataset, error) {
	return f.data, f.err
}

func TestPipeline_EndToEnd(t *testing.T) {
	ctx := context.Background()
	srv := jsonServer(t, http.StatusOK, sampleBody)
	store := tempStore(t)
	log, logs := observedLogger()

	p := NewPipeline(
		NewHTTPExtractor(srv.URL, 5*time.Second, log),
		NewTransformer("California", log),
		NewSQLLoader(store, "cal_uni", log),
		false,
		log,
	)

	report, table, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, report.Status)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.RowsRead)
	assert.Equal(t, 1, report.RowsKept)
	assert.Equal(t, 1, report.RowsWritten)
	require.Equal(t, 1, table.Len())

	rows, err := NewSQLReader(store, "cal_uni").ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.University{{
		Index:    0,
		Domains:  "uc.edu",
		Country:  "USA",
		WebPages: "http://uc.edu",
		Name:     "University of California",
	}}, rows)

	completed := logs.FilterMessage("ETL process completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, report.RunID, completed[0].ContextMap()["run_id"])
}

func TestPipeline_ExtractionFailureHaltsBeforeLoad(t *testing.T) {
	ctx := context.Background()
	closed := httptest.NewServer(http.NotFoundHandler())
	url := closed.URL
	closed.Close()

	store := tempStore(t)
	log, logs := observedLogger()
	loader := &fakeLoader{}

	p := NewPipeline(NewHTTPExtractor(url, time.Second, log), NewTransformer("California", log), loader, false, log)

	report, table, err := p.Run(ctx)
	require.Error(t, err)
	assert.Nil(t, table)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageExtract, stageErr.Stage)
	assert.Equal(t, models.StatusError, report.Status)
	assert.Equal(t, StageExtract, report.Stage)

	assert.Equal(t, 0, loader.calls)
	assert.Equal(t, 1, logs.FilterMessageSnippet("Error extracting data: ").Len())
	assert.Equal(t, 0, logs.FilterMessageSnippet("Error transforming data").Len())
	assert.Equal(t, 1, logs.FilterMessage("ETL process aborted at extract stage").Len())

	_, statErr := os.Stat(store.DSN)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPipeline_TransformFailureKeepsPreviousTable(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)
	log, _ := observedLogger()
	loader := NewSQLLoader(store, "cal_uni", log)

	_, err := loader.Load(ctx, tableOf("Previous California"))
	require.NoError(t, err)

	p := NewPipeline(
		&fakeExtractor{data: models.RawDataset{{"country": "USA"}}},
		NewTransformer("California", log),
		loader,
		false,
		log,
	)
	report, _, err := p.Run(ctx)
	require.Error(t, err)
	assert.Equal(t, StageTransform, report.Stage)

	rows, err := NewSQLReader(store, "cal_uni").ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Previous California", rows[0].Name)
}

func TestPipeline_LoadFailureReturnsTable(t *testing.T) {
	boom := errors.New("disk full")
	log, _ := observedLogger()

	p := NewPipeline(
		&fakeExtractor{data: models.RawDataset{uni("University of California", nil, nil)}},
		NewTransformer("California", log),
		&fakeLoader{err: boom},
		false,
		log,
	)
	report, table, err := p.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StageLoad, report.Stage)
	assert.Equal(t, "disk full", report.Error)
	require.NotNil(t, table)
	assert.Equal(t, 1, table.Len())
}

func TestPipeline_DryRunSkipsLoad(t *testing.T) {
	log, logs := observedLogger()
	loader := &fakeLoader{}

	p := NewPipeline(
		&fakeExtractor{data: models.RawDataset{uni("University of California", nil, nil), uni("MIT", nil, nil)}},
		NewTransformer("California", log),
		loader,
		true,
		log,
	)
	report, table, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 0, loader.calls)
	assert.Equal(t, 0, report.RowsWritten)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, 1, logs.FilterMessage("[DRY RUN] Would load 1 rows").Len())
}

func TestPipeline_RunIDsAreUnique(t *testing.T) {
	log, _ := observedLogger()
	p := NewPipeline(&fakeExtractor{data: models.RawDataset{}}, NewTransformer("California", log), &fakeLoader{}, false, log)

	first, _, err := p.Run(context.Background())
	require.NoError(t, err)
	second, _, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)
}
