package models

import "time"

// RawRecord is one university object as returned by the API. The service
// owns the schema, so fields are read by name and validated by the transformer.
type RawRecord map[string]interface{}

// RawDataset holds the records in API response order.
type RawDataset []RawRecord

// University is one row of the transformed table.
type University struct {
	Index    int    `db:"index" json:"index" bson:"index"`
	Domains  string `db:"domains" json:"domains" bson:"domains"`
	Country  string `db:"country" json:"country" bson:"country"`
	WebPages string `db:"web_pages" json:"web_pages" bson:"web_pages"`
	Name     string `db:"name" json:"name" bson:"name"`
}

// Table is the transformed table. Row indices are contiguous from zero.
type Table struct {
	Rows []University
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Columns returns the projected column names in output order.
func (t *Table) Columns() []string {
	return ColumnNames()
}

// Run statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RunReport is the outcome of one pipeline run.
type RunReport struct {
	RunID       string        `json:"runId"`
	Status      string        `json:"status"`
	Stage       string        `json:"stage,omitempty"`
	RowsRead    int           `json:"rowsRead"`
	RowsKept    int           `json:"rowsKept"`
	RowsWritten int           `json:"rowsWritten"`
	DryRun      bool          `json:"dryRun"`
	Duration    time.Duration `json:"duration"`
	Error       string        `json:"error,omitempty"`
}
