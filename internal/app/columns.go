package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zjrosen/enrich/internal/ui/table"
)

const (
	recordKeyPrefix  = "record-"
	checkboxWidth    = 3
	companyWidth     = 16
	recordWidth      = 22
	trailingColWidth = 14
)

// companyRow is one table row. Index 0 is the sample company whose record
// cells show a placeholder value.
type companyRow struct {
	index int
	name  string
}

func (m Model) companyRows() []any {
	rows := make([]any, len(m.cfg.Enrichment.Companies))
	for i, name := range m.cfg.Enrichment.Companies {
		rows[i] = companyRow{index: i, name: name}
	}
	return rows
}

// tableConfig builds the columns: checkbox, company, one per record in
// creation order, then CFO Name.
func (m Model) tableConfig() table.Config {
	cols := []table.ColumnConfig{
		{Key: "check", Header: "[ ]", Width: checkboxWidth, Render: m.renderCheckbox},
		{Key: "company", Header: "Company Name", Width: companyWidth, Render: renderCompany},
	}
	for i, rec := range m.session.Records() {
		cols = append(cols, table.ColumnConfig{
			Key:    recordKey(i),
			Header: rec.Icon() + " " + rec.EnrichmentName,
			Width:  recordWidth,
			Render: renderRecordCell,
		})
	}
	cols = append(cols, table.ColumnConfig{
		Key: "cfo", Header: "CFO Name", Width: trailingColWidth,
		Render: func(any, string, int, bool) string { return "" },
	})

	return table.Config{
		Columns:    cols,
		ShowHeader: true,
		HeaderZoneID: func(i int, _ table.ColumnConfig) string {
			return fmt.Sprintf("%sheader-%d", m.zonePrefix, i)
		},
	}
}

func (m Model) renderCheckbox(row any, _ string, _ int, _ bool) string {
	if m.checked[row.(companyRow).index] {
		return "[x]"
	}
	return "[ ]"
}

func renderCompany(row any, _ string, _ int, _ bool) string {
	return row.(companyRow).name
}

func renderRecordCell(row any, _ string, _ int, _ bool) string {
	if row.(companyRow).index == 0 {
		return "{}"
	}
	return ""
}

func recordKey(i int) string {
	return recordKeyPrefix + strconv.Itoa(i)
}

// recordIndex parses a column key produced by recordKey.
func recordIndex(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, recordKeyPrefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return i, true
}
