package etl

import (
	"context"
	"fmt"

	"github.com/BartekS5/uni-etl/pkg/database"
	"github.com/BartekS5/uni-etl/pkg/models"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Store names a relational store. Each operation opens its own connection
// and closes it when done.
type Store struct {
	Driver string
	DSN    string
}

func (s Store) open(ctx context.Context) (*sqlx.DB, database.Dialect, error) {
	dialect, err := database.DialectFor(s.Driver)
	if err != nil {
		return nil, database.Dialect{}, err
	}
	db, err := database.ConnectSQL(ctx, s.Driver, s.DSN)
	if err != nil {
		return nil, database.Dialect{}, err
	}
	return db, dialect, nil
}

// SQLLoader replaces a table with the transformed rows. The drop, create and
// inserts run in one transaction, so a failed load keeps the previous table.
type SQLLoader struct {
	Store Store
	Table string
	Log   *zap.Logger
}

func NewSQLLoader(store Store, table string, log *zap.Logger) *SQLLoader {
	return &SQLLoader{Store: store, Table: table, Log: log}
}

func (l *SQLLoader) Load(ctx context.Context, table *models.Table) (int, error) {
	written, err := l.replace(ctx, table)
	if err != nil {
		l.Log.Error("Error loading data: " + err.Error())
		return 0, err
	}
	l.Log.Info("Data loaded successfully", zap.String("table", l.Table), zap.Int("rows", written))
	return written, nil
}

func (l *SQLLoader) replace(ctx context.Context, table *models.Table) (int, error) {
	if table == nil {
		return 0, fmt.Errorf("nothing to load: %w", ErrNoData)
	}

	db, dialect, err := l.Store.open(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, dialect.DropTable(l.Table)); err != nil {
		return 0, fmt.Errorf("drop table %s: %w", l.Table, err)
	}
	if _, err := tx.ExecContext(ctx, dialect.CreateTable(l.Table, models.IndexColumn, models.ColumnNames())); err != nil {
		return 0, fmt.Errorf("create table %s: %w", l.Table, err)
	}

	columns := append([]string{models.IndexColumn}, models.ColumnNames()...)
	stmt, err := tx.PreparexContext(ctx, tx.Rebind(dialect.Insert(l.Table, columns)))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range table.Rows {
		args := append([]interface{}{row.Index}, row.Values()...)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", row.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(table.Rows), nil
}

// SQLReader reads a loaded table back over a fresh connection.
type SQLReader struct {
	Store Store
	Table string
}

func NewSQLReader(store Store, table string) *SQLReader {
	return &SQLReader{Store: store, Table: table}
}

func (r *SQLReader) ReadAll(ctx context.Context) ([]models.University, error) {
	db, dialect, err := r.Store.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	columns := append([]string{models.IndexColumn}, models.ColumnNames()...)
	rows := []models.University{}
	if err := db.SelectContext(ctx, &rows, dialect.SelectAll(r.Table, columns, models.IndexColumn)); err != nil {
		return nil, fmt.Errorf("read table %s: %w", r.Table, err)
	}
	return rows, nil
}
