package etl

import (
	"context"

	"github.com/BartekS5/uni-etl/pkg/models"
)

type Extractor interface {
	Extract(ctx context.Context) (models.RawDataset, error)
}

// Loader writes a transformed table and returns the number of rows written.
type Loader interface {
	Load(ctx context.Context, table *models.Table) (int, error)
}

// Reader reads a loaded table back in index order.
type Reader interface {
	ReadAll(ctx context.Context) ([]models.University, error)
}
