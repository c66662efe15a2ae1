package db

import (
	"fmt"
	"log"
	"time"

	"github.com/mashdb/MashDB/core"
	"github.com/mashdb/MashDB/sql"
	"github.com/mashdb/MashDB/store"
)

func (engine *Engine) executeUpdate(statement sql.UpdateStatement) (Result, error) {
	startTime := time.Now()

	table, err := engine.openTable(statement.Table)
	if err != nil {
		return nil, err
	}
	schema := table.Schema()

	seen := make(map[string]bool, len(statement.Sets))
	for _, set := range statement.Sets {
		column, err := validateColumn(schema, set.Column)
		if err != nil {
			return nil, err
		}
		if seen[set.Column] {
			return nil, fmt.Errorf("%w: column %s set twice", ErrSchema, set.Column)
		}
		seen[set.Column] = true

		if !column.Type.Accepts(set.Value) {
			return nil, fmt.Errorf("%w: %s value for %s column %s",
				ErrTypeMismatch, set.Value.Kind(), column.Type, column.Name)
		}
		if set.Value.IsNull() && column.NotNull {
			return nil, fmt.Errorf("%w: column %s is NOT NULL", ErrConstraintViolation, column.Name)
		}
	}
	if statement.Where != nil {
		if _, err := validateColumn(schema, statement.Where.Column); err != nil {
			return nil, err
		}
	}

	mask, matched, err := engine.rowMask(table, statement.Table, statement.Where)
	if err != nil {
		return nil, err
	}

	// Stage only the columns where a masked row actually changes.
	staged := false
	for _, set := range statement.Sets {
		values, err := table.ReadColumn(set.Column)
		if err != nil {
			table.Discard()
			return nil, err
		}
		if len(values) != len(mask) {
			table.Discard()
			return nil, fmt.Errorf("%w: column %s has %d rows, expected %d",
				store.ErrStorage, set.Column, len(values), len(mask))
		}

		changed := false
		updated := make([]core.Value, len(values))
		for i, value := range values {
			if mask[i] && !value.Equal(set.Value) {
				updated[i] = set.Value
				changed = true
			} else {
				updated[i] = value
			}
		}
		if !changed {
			continue
		}

		if err := table.Stage(set.Column, updated); err != nil {
			table.Discard()
			return nil, err
		}
		staged = true
	}

	if staged {
		if err := table.Commit(); err != nil {
			return nil, err
		}
	}

	return ExecResult{
		RowsUpdated:      matched,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

// rowMask evaluates a predicate over every row of a table, returning the
// per-row match mask and the match count. A nil condition matches all rows.
// Rows whose evaluation fails are logged and left unmatched.
func (engine *Engine) rowMask(table tableReader, name string, condition *sql.Condition) ([]bool, int, error) {
	if condition == nil {
		count, err := table.RowCount()
		if err != nil {
			return nil, 0, err
		}
		mask := make([]bool, count)
		for i := range mask {
			mask[i] = true
		}
		return mask, count, nil
	}

	values, err := table.ReadColumn(condition.Column)
	if err != nil {
		return nil, 0, err
	}

	mask := make([]bool, len(values))
	matched := 0
	for i, value := range values {
		ok, err := condition.Evaluate(value)
		if err != nil {
			log.Printf("update %s: row %d: %v", name, i, err)
			continue
		}
		if ok {
			mask[i] = true
			matched++
		}
	}
	return mask, matched, nil
}

// tableReader is the read surface rowMask needs from a table handle.
type tableReader interface {
	ReadColumn(name string) ([]core.Value, error)
	RowCount() (int, error)
}
