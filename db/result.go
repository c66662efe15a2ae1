package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/mashdb/MashDB/core"
)

type ResultType int

const (
	QueryResultType ResultType = iota
	ExecResultType
)

// Result is the outcome of one executed statement.
type Result interface {
	Type() ResultType
	Display()
}

// QueryResult holds the rows a SELECT produced. Columns carries the output
// order; each row maps a selected column name to its value.
type QueryResult struct {
	Columns          []string
	Rows             []map[string]core.Value
	RecordsRead      int
	ExecutionTimeSec float64
}

// ExecResult summarizes a write statement.
type ExecResult struct {
	DatabasesCreated int
	TablesCreated    int
	RowsWritten      int
	RowsUpdated      int
	RowsDeleted      int
	ExecutionTimeSec float64
}

func (result QueryResult) Type() ResultType {
	return QueryResultType
}

func (result ExecResult) Type() ResultType {
	return ExecResultType
}

// formatDuration formats a duration in human-readable form
func formatDuration(secs float64) string {
	if secs < 0.001 {
		return "<1ms"
	} else if secs < 1 {
		ms := secs * 1000
		if ms < 10 {
			return fmt.Sprintf("%.1fms", ms)
		}
		return fmt.Sprintf("%dms", int(ms))
	} else if secs < 60 {
		if secs < 10 {
			return fmt.Sprintf("%.1fs", secs)
		}
		return fmt.Sprintf("%ds", int(secs))
	}
	mins := int(secs / 60)
	remainSecs := int(secs) % 60
	if remainSecs == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dm%ds", mins, remainSecs)
}

func (result QueryResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func (result ExecResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func (result QueryResult) Display() {
	if len(result.Rows) > 0 {
		table := NewTable(os.Stdout)
		table.Header(result.Columns)
		for _, row := range result.Rows {
			cells := make([]string, len(result.Columns))
			for i, column := range result.Columns {
				cells[i] = row[column].Canonical()
			}
			table.Row(cells)
		}
		table.Render()
	}

	fmt.Printf("%d rows (%s)\n", len(result.Rows), result.ExecutionTime())
}

func (result ExecResult) Display() {
	var parts []string

	if result.DatabasesCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d database(s) created", result.DatabasesCreated))
	}
	if result.TablesCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d table(s) created", result.TablesCreated))
	}
	if result.RowsWritten > 0 {
		parts = append(parts, fmt.Sprintf("%d row(s) written", result.RowsWritten))
	}
	if result.RowsUpdated > 0 {
		parts = append(parts, fmt.Sprintf("%d row(s) updated", result.RowsUpdated))
	}
	if result.RowsDeleted > 0 {
		parts = append(parts, fmt.Sprintf("%d row(s) deleted", result.RowsDeleted))
	}

	if len(parts) == 0 {
		fmt.Printf("OK (%s)\n", result.ExecutionTime())
	} else {
		fmt.Printf("%s (%s)\n", strings.Join(parts, ", "), result.ExecutionTime())
	}
}
