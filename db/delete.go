package db

import (
	"log"
	"sort"
	"time"

	"github.com/mashdb/MashDB/sql"
)

func (engine *Engine) executeDelete(statement sql.DeleteStatement) (Result, error) {
	startTime := time.Now()

	if statement.Where == nil {
		return nil, ErrUnsafeDelete
	}

	table, err := engine.openTable(statement.Table)
	if err != nil {
		return nil, err
	}
	schema := table.Schema()

	if _, err := validateColumn(schema, statement.Where.Column); err != nil {
		return nil, err
	}

	predicate, err := table.ReadColumn(statement.Where.Column)
	if err != nil {
		return nil, err
	}

	var doomed []int
	for i, value := range predicate {
		ok, err := statement.Where.Evaluate(value)
		if err != nil {
			log.Printf("delete %s: row %d: %v", statement.Table, i, err)
			continue
		}
		if ok {
			doomed = append(doomed, i)
		}
	}

	if len(doomed) == 0 {
		return ExecResult{
			ExecutionTimeSec: time.Since(startTime).Seconds(),
		}, nil
	}

	// Splice from the highest index down so earlier removals do not shift
	// the remaining targets.
	sort.Sort(sort.Reverse(sort.IntSlice(doomed)))
	doomed = dedupe(doomed)

	for _, column := range schema.Columns {
		values, err := table.ReadColumn(column.Name)
		if err != nil {
			table.Discard()
			return nil, err
		}
		for _, index := range doomed {
			if index < len(values) {
				values = append(values[:index], values[index+1:]...)
			}
		}
		if err := table.Stage(column.Name, values); err != nil {
			table.Discard()
			return nil, err
		}
	}
	if err := table.Commit(); err != nil {
		return nil, err
	}

	return ExecResult{
		RowsDeleted:      len(doomed),
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

// dedupe removes adjacent duplicates from a sorted slice.
func dedupe(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}
