// Package table renders the company grid: fixed-width columns with render
// callbacks, a header row whose cells can be clicked, and a row cursor.
//
// The table holds no domain knowledge. Callers build the columns (one per
// enrichment record, for example) and pass rows as opaque values:
//
//	cfg := table.Config{
//	    Columns: []table.ColumnConfig{
//	        {Key: "name", Header: "Company Name", Width: 16, Render: func(row any, _ string, w int, _ bool) string {
//	            return row.(Company).Name
//	        }},
//	    },
//	}
//	view := table.New(cfg).SetRows(rows).SetSize(80, 10).View()
package table

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ColumnConfig defines a single column.
type ColumnConfig struct {
	Key    string
	Header string
	Width  int // cells; minimum 1
	Align  lipgloss.Position

	// Render returns the cell text for row. Output wider than width is
	// truncated.
	Render func(row any, key string, width int, selected bool) string
}

// Config defines the table.
type Config struct {
	Columns      []ColumnConfig
	ShowHeader   bool
	EmptyMessage string

	// HeaderZoneID, when set, marks header cells with bubblezone so clicks
	// can be mapped back to a column.
	HeaderZoneID func(col int, c ColumnConfig) string
}

// ErrNoColumns is returned by Validate for an empty column list.
var ErrNoColumns = errors.New("table config: at least one column is required")

// Validate checks that every column can render.
func (c Config) Validate() error {
	if len(c.Columns) == 0 {
		return ErrNoColumns
	}
	for i, col := range c.Columns {
		if col.Render == nil {
			return fmt.Errorf("table config: column %d (%q) has nil Render callback", i, col.Key)
		}
	}
	return nil
}
