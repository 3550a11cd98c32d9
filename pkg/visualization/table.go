package visualization

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// Table holds rows of already formatted cells under a header row, ready to
// be drawn on a terminal.
type Table struct {
	headers []string
	data    [][]string
}

// NewTable returns a table model over the given header and data rows.
func NewTable(headers []string, data [][]string) *Table {
	return &Table{
		headers: headers,
		data:    data,
	}
}

// DrawTable renders the table to the writer in ASCII box style.
func DrawTable(writer io.Writer, table *Table) error {
	output := tablewriter.NewWriter(writer)
	output.SetHeader(table.headers)
	for _, row := range table.data {
		output.Append(row)
	}
	output.Render()
	return nil
}
