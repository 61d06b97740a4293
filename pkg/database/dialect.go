package database

import (
	"fmt"
	"strings"
)

// Dialect holds the SQL differences between the supported stores.
type Dialect struct {
	Driver   string
	IntType  string
	TextType string
}

var dialects = map[string]Dialect{
	"sqlite":    {Driver: "sqlite", IntType: "INTEGER", TextType: "TEXT"},
	"postgres":  {Driver: "postgres", IntType: "BIGINT", TextType: "TEXT"},
	"sqlserver": {Driver: "sqlserver", IntType: "BIGINT", TextType: "NVARCHAR(MAX)"},
}

func DialectFor(driver string) (Dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
	return d, nil
}

// Quote quotes an identifier. "index" is reserved everywhere.
func (d Dialect) Quote(ident string) string {
	if d.Driver == "sqlserver" {
		return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
	}
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func (d Dialect) DropTable(table string) string {
	return "DROP TABLE IF EXISTS " + d.Quote(table)
}

// CreateTable builds the DDL for a table with one integer key column
// followed by text columns.
func (d Dialect) CreateTable(table, intColumn string, textColumns []string) string {
	defs := make([]string, 0, len(textColumns)+1)
	defs = append(defs, d.Quote(intColumn)+" "+d.IntType)
	for _, col := range textColumns {
		defs = append(defs, d.Quote(col)+" "+d.TextType)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.Quote(table), strings.Join(defs, ", "))
}

// Insert builds a parameterised insert with "?" placeholders; rebind it
// for the target driver before use.
func (d Dialect) Insert(table string, columns []string) string {
	quoted := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = d.Quote(col)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.Quote(table), strings.Join(quoted, ", "), strings.Join(marks, ", "))
}

// SelectAll builds an ordered select of the given columns.
func (d Dialect) SelectAll(table string, columns []string, orderBy string) string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = d.Quote(col)
	}
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(quoted, ", "), d.Quote(table), d.Quote(orderBy))
}
