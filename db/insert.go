package db

import (
	"fmt"
	"time"

	"github.com/mashdb/MashDB/core"
	"github.com/mashdb/MashDB/sql"
)

func (engine *Engine) executeInsert(statement sql.InsertStatement) (Result, error) {
	startTime := time.Now()

	table, err := engine.openTable(statement.Table)
	if err != nil {
		return nil, err
	}
	schema := table.Schema()

	targets := statement.Columns
	if len(targets) == 0 {
		targets = schema.ColumnNames()
	}
	if len(statement.Values) != len(targets) {
		return nil, fmt.Errorf("%w: %d values for %d columns", ErrSchema, len(statement.Values), len(targets))
	}

	supplied := make(map[string]core.Value, len(targets))
	for i, name := range targets {
		if _, err := validateColumn(schema, name); err != nil {
			return nil, err
		}
		if _, ok := supplied[name]; ok {
			return nil, fmt.Errorf("%w: column %s named twice", ErrSchema, name)
		}
		supplied[name] = statement.Values[i]
	}

	// Load every column up front so all constraints are checked before
	// anything is staged.
	loaded := make(map[string][]core.Value, len(schema.Columns))
	for _, column := range schema.Columns {
		values, err := table.ReadColumn(column.Name)
		if err != nil {
			return nil, err
		}
		loaded[column.Name] = values
	}

	row := make(map[string]core.Value, len(schema.Columns))
	for _, column := range schema.Columns {
		value, ok := supplied[column.Name]
		if !ok {
			value = core.Null()
		}

		if !column.Type.Accepts(value) {
			return nil, fmt.Errorf("%w: %s value for %s column %s",
				ErrTypeMismatch, value.Kind(), column.Type, column.Name)
		}
		if value.IsNull() && column.NotNull {
			return nil, fmt.Errorf("%w: column %s is NOT NULL", ErrConstraintViolation, column.Name)
		}
		if column.Unique && !value.IsNull() {
			for _, existing := range loaded[column.Name] {
				if existing.Canonical() == value.Canonical() {
					return nil, fmt.Errorf("%w: duplicate value %s for UNIQUE column %s",
						ErrConstraintViolation, value.Canonical(), column.Name)
				}
			}
		}

		row[column.Name] = value
	}

	for _, column := range schema.Columns {
		if err := table.Stage(column.Name, append(loaded[column.Name], row[column.Name])); err != nil {
			table.Discard()
			return nil, err
		}
	}
	if err := table.Commit(); err != nil {
		return nil, err
	}

	return ExecResult{
		RowsWritten:      1,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}
