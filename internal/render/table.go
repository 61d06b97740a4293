// Package render prints university tables to the console.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/BartekS5/uni-etl/pkg/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table writes rows as a bordered text table with the index column first.
func Table(w io.Writer, rows []models.University) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(no rows)")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(append([]string{models.IndexColumn}, models.ColumnNames()...)...)

	for _, row := range rows {
		t.Row(strconv.Itoa(row.Index), row.Domains, row.Country, row.WebPages, row.Name)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
