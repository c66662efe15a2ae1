package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/mashdb/MashDB/core"
	"github.com/mashdb/MashDB/sql"
	"github.com/mashdb/MashDB/store"
)

// Session is the per-engine execution state.
type Session struct {
	Database string
}

// Engine executes statements against one store. Each engine carries its own
// session, so a server can run one engine per connection over a shared store.
type Engine struct {
	store   *store.Store
	session Session
}

// NewEngine returns an engine bound to the store's current database, if the
// store has one.
func NewEngine(st *store.Store) *Engine {
	engine := &Engine{store: st}
	if current, err := st.CurrentDatabase(); err == nil {
		engine.session.Database = current
	}
	return engine
}

// Database returns the session's current database name, empty when none is
// selected.
func (engine *Engine) Database() string {
	return engine.session.Database
}

// Execute parses and runs one statement.
func (engine *Engine) Execute(query string) (Result, error) {
	statement, err := sql.NewParser(query).Parse()
	if err != nil {
		return nil, err
	}

	switch statement.Type() {
	case sql.CreateDatabaseType:
		return engine.executeCreateDatabase(statement.(sql.CreateDatabaseStatement))
	case sql.ChangeDatabaseType:
		return engine.executeChangeDatabase(statement.(sql.ChangeDatabaseStatement))
	case sql.CreateTableType:
		return engine.executeCreateTable(statement.(sql.CreateTableStatement))
	case sql.InsertType:
		return engine.executeInsert(statement.(sql.InsertStatement))
	case sql.SelectType:
		return engine.executeSelect(statement.(sql.SelectStatement))
	case sql.UpdateType:
		return engine.executeUpdate(statement.(sql.UpdateStatement))
	case sql.DeleteType:
		return engine.executeDelete(statement.(sql.DeleteStatement))
	default:
		return nil, fmt.Errorf("unsupported statement type: %v", statement.Type())
	}
}

// currentDatabase resolves the session database, failing when none has been
// selected yet.
func (engine *Engine) currentDatabase() (string, error) {
	if engine.session.Database == "" {
		return "", store.ErrNoDatabase
	}
	return engine.session.Database, nil
}

// openTable opens a table in the session database. A missing table is a
// schema error to the caller.
func (engine *Engine) openTable(name string) (*store.Table, error) {
	database, err := engine.currentDatabase()
	if err != nil {
		return nil, err
	}

	table, err := engine.store.OpenTable(database, name)
	if err != nil {
		if errors.Is(err, store.ErrTableNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrSchema, err)
		}
		return nil, err
	}
	return table, nil
}

func (engine *Engine) executeCreateDatabase(statement sql.CreateDatabaseStatement) (Result, error) {
	startTime := time.Now()

	if err := engine.store.CreateDatabase(statement.Name); err != nil {
		return nil, err
	}
	engine.session.Database = statement.Name

	return ExecResult{
		DatabasesCreated: 1,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

func (engine *Engine) executeChangeDatabase(statement sql.ChangeDatabaseStatement) (Result, error) {
	startTime := time.Now()

	if err := engine.store.SetCurrentDatabase(statement.Name); err != nil {
		return nil, err
	}
	engine.session.Database = statement.Name

	return ExecResult{
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

func (engine *Engine) executeCreateTable(statement sql.CreateTableStatement) (Result, error) {
	startTime := time.Now()

	database, err := engine.currentDatabase()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(statement.Columns))
	for _, column := range statement.Columns {
		if seen[column.Name] {
			return nil, fmt.Errorf("%w: duplicate column %s", ErrSchema, column.Name)
		}
		seen[column.Name] = true
	}

	table := core.Table{
		Database: database,
		Name:     statement.Table,
		Columns:  statement.Columns,
	}
	if _, err := engine.store.CreateTable(table); err != nil {
		if errors.Is(err, store.ErrTableExists) {
			return nil, fmt.Errorf("%w: %v", ErrSchema, err)
		}
		return nil, err
	}

	return ExecResult{
		TablesCreated:    1,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

// validateColumn checks a referenced column against the schema.
func validateColumn(schema core.Table, name string) (core.ColumnDef, error) {
	column, ok := schema.Column(name)
	if !ok {
		return core.ColumnDef{}, fmt.Errorf("%w: %s has no column %s", ErrColumnNotFound, schema.Name, name)
	}
	return column, nil
}
