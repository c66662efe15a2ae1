package db

import (
	"log"
	"sort"
	"time"

	"github.com/mashdb/MashDB/core"
	"github.com/mashdb/MashDB/sql"
)

func (engine *Engine) executeSelect(statement sql.SelectStatement) (Result, error) {
	startTime := time.Now()

	table, err := engine.openTable(statement.Table)
	if err != nil {
		return nil, err
	}
	schema := table.Schema()

	projection := statement.Columns
	if len(projection) == 0 {
		projection = schema.ColumnNames()
	}
	for _, name := range projection {
		if _, err := validateColumn(schema, name); err != nil {
			return nil, err
		}
	}
	if statement.Where != nil {
		if _, err := validateColumn(schema, statement.Where.Column); err != nil {
			return nil, err
		}
	}
	if statement.OrderBy != "" {
		if _, err := validateColumn(schema, statement.OrderBy); err != nil {
			return nil, err
		}
	}

	// Load only the columns the statement touches.
	needed := append([]string{}, projection...)
	if statement.Where != nil {
		needed = append(needed, statement.Where.Column)
	}
	if statement.OrderBy != "" {
		needed = append(needed, statement.OrderBy)
	}

	loaded := make(map[string][]core.Value, len(needed))
	for _, name := range needed {
		if _, ok := loaded[name]; ok {
			continue
		}
		values, err := table.ReadColumn(name)
		if err != nil {
			return nil, err
		}
		loaded[name] = values
	}

	rowCount := len(loaded[needed[0]])
	order := make([]int, rowCount)
	for i := range order {
		order[i] = i
	}

	if statement.OrderBy != "" {
		keys := loaded[statement.OrderBy]
		sort.SliceStable(order, func(i, j int) bool {
			cmp := core.Compare(keys[order[i]], keys[order[j]])
			if statement.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	var matched []int
	if statement.Where == nil {
		matched = order
	} else {
		predicate := loaded[statement.Where.Column]
		for _, index := range order {
			ok, err := statement.Where.Evaluate(predicate[index])
			if err != nil {
				// A row that cannot be evaluated is not a match.
				log.Printf("select %s: row %d: %v", statement.Table, index, err)
				continue
			}
			if ok {
				matched = append(matched, index)
			}
		}
	}

	if statement.Offset > 0 {
		if statement.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[statement.Offset:]
		}
	}
	if statement.Limit != nil && len(matched) > *statement.Limit {
		matched = matched[:*statement.Limit]
	}

	rows := make([]map[string]core.Value, len(matched))
	for i, index := range matched {
		row := make(map[string]core.Value, len(projection))
		for _, name := range projection {
			row[name] = loaded[name][index]
		}
		rows[i] = row
	}

	return QueryResult{
		Columns:          projection,
		Rows:             rows,
		RecordsRead:      rowCount,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}
