package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/BartekS5/uni-etl/pkg/database"
	"github.com/BartekS5/uni-etl/pkg/models"
	"go.uber.org/zap"
)

// MongoLoader mirrors the table into a MongoDB collection with the same
// replace semantics: the collection is dropped and refilled.
type MongoLoader struct {
	URI        string
	Database   string
	Collection string
	Log        *zap.Logger
}

func NewMongoLoader(uri, database, collection string, log *zap.Logger) *MongoLoader {
	return &MongoLoader{
		URI:        uri,
		Database:   database,
		Collection: collection,
		Log:        log,
	}
}

func (m *MongoLoader) Load(ctx context.Context, table *models.Table) (int, error) {
	written, err := m.replace(ctx, table)
	if err != nil {
		m.Log.Error("Error mirroring data to MongoDB: " + err.Error())
		return 0, err
	}
	m.Log.Info("Data mirrored to MongoDB",
		zap.String("collection", m.Database+"."+m.Collection),
		zap.Int("rows", written))
	return written, nil
}

func (m *MongoLoader) replace(ctx context.Context, table *models.Table) (int, error) {
	if table == nil {
		return 0, fmt.Errorf("nothing to load: %w", ErrNoData)
	}

	client, err := database.ConnectMongo(ctx, m.URI)
	if err != nil {
		return 0, err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	coll := client.Database(m.Database).Collection(m.Collection)
	if err := coll.Drop(ctx); err != nil {
		return 0, fmt.Errorf("drop collection %s: %w", m.Collection, err)
	}
	if table.Len() == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(table.Rows))
	for i, row := range table.Rows {
		docs[i] = row
	}
	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert documents: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// MultiLoader runs loaders in order and stops at the first failure. The
// reported row count is the first loader's.
type MultiLoader []Loader

func (ml MultiLoader) Load(ctx context.Context, table *models.Table) (int, error) {
	written := 0
	for i, l := range ml {
		n, err := l.Load(ctx, table)
		if err != nil {
			return 0, err
		}
		if i == 0 {
			written = n
		}
	}
	return written, nil
}
