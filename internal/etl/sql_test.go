package etl

import (
	"context"
	"testing"

	"github.com/BartekS5/uni-etl/pkg/database"
	"github.com/BartekS5/uni-etl/pkg/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableOf(names ...string) *models.Table {
	table := &models.Table{}
	for i, name := range names {
		table.Rows = append(table.Rows, models.University{
			Index:    i,
			Domains:  "a.edu,b.edu",
			Country:  "United States",
			WebPages: "http://a.edu",
			Name:     name,
		})
	}
	return table
}

func TestSQLLoader_LoadAndReadBack(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)
	log, logs := observedLogger()

	table := tableOf("University of California", "California State University")
	written, err := NewSQLLoader(store, "cal_uni", log).Load(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, 2, written)
	assert.Equal(t, 1, logs.FilterMessage("Data loaded successfully").Len())

	rows, err := NewSQLReader(store, "cal_uni").ReadAll(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(table.Rows, rows); diff != "" {
		t.Errorf("read-back mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLLoader_ReplacesPreviousContents(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)
	log, _ := observedLogger()
	loader := NewSQLLoader(store, "cal_uni", log)

	_, err := loader.Load(ctx, tableOf("Old A", "Old B", "Old C"))
	require.NoError(t, err)
	_, err = loader.Load(ctx, tableOf("New California"))
	require.NoError(t, err)

	rows, err := NewSQLReader(store, "cal_uni").ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "New California", rows[0].Name)
	assert.Equal(t, 0, rows[0].Index)
}

func TestSQLLoader_EmptyTable(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)
	log, _ := observedLogger()

	_, err := NewSQLLoader(store, "cal_uni", log).Load(ctx, tableOf("Something"))
	require.NoError(t, err)

	written, err := NewSQLLoader(store, "cal_uni", log).Load(ctx, &models.Table{})
	require.NoError(t, err)
	assert.Equal(t, 0, written)

	rows, err := NewSQLReader(store, "cal_uni").ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSQLLoader_TableSchema(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)
	log, _ := observedLogger()

	_, err := NewSQLLoader(store, "cal_uni", log).Load(ctx, tableOf("University of California"))
	require.NoError(t, err)

	db, err := database.ConnectSQL(ctx, store.Driver, store.DSN)
	require.NoError(t, err)
	defer db.Close()

	var cols []struct {
		CID     int     `db:"cid"`
		Name    string  `db:"name"`
		Type    string  `db:"type"`
		NotNull int     `db:"notnull"`
		Default *string `db:"dflt_value"`
		PK      int     `db:"pk"`
	}
	require.NoError(t, db.Select(&cols, `PRAGMA table_info("cal_uni")`))

	got := make([]string, len(cols))
	for i, c := range cols {
		got[i] = c.Name + " " + c.Type
	}
	assert.Equal(t, []string{
		"index INTEGER",
		"domains TEXT",
		"country TEXT",
		"web_pages TEXT",
		"name TEXT",
	}, got)
}

func TestSQLLoader_NilTable(t *testing.T) {
	log, logs := observedLogger()
	_, err := NewSQLLoader(tempStore(t), "cal_uni", log).Load(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Equal(t, 1, logs.FilterMessageSnippet("Error loading data: ").Len())
}

func TestSQLLoader_BadStore(t *testing.T) {
	log, logs := observedLogger()
	_, err := NewSQLLoader(Store{Driver: "oracle", DSN: "x"}, "cal_uni", log).Load(context.Background(), tableOf("A"))
	assert.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessageSnippet("Error loading data: ").Len())
}

func TestSQLReader_MissingTable(t *testing.T) {
	_, err := NewSQLReader(tempStore(t), "cal_uni").ReadAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read table cal_uni")
}
