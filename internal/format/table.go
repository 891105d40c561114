package format

import (
        "fmt"
        "io"

        "github.com/charmbracelet/lipgloss"
        "github.com/charmbracelet/lipgloss/table"
)

// Table is plain tabular data for the text format.
type Table struct {
        Headers []string
        Rows    [][]string
}

// Tabular values know how to present themselves as a Table.
type Tabular interface {
        Table() Table
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// WriteTable renders t with a rounded border. Empty tables print just the headers.
func WriteTable(w io.Writer, t Table) error {
        tbl := table.New().
                Border(lipgloss.RoundedBorder()).
                Headers(t.Headers...).
                Rows(t.Rows...).
                StyleFunc(func(row, col int) lipgloss.Style {
                        if row == table.HeaderRow {
                                return headerStyle
                        }
                        return cellStyle
                })
        _, err := fmt.Fprintln(w, tbl.Render())
        return err
}
