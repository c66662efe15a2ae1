package sql

import "github.com/mashdb/MashDB/core"

// StatementType discriminates the parsed statement variants.
type StatementType int

const (
	CreateDatabaseType StatementType = iota
	ChangeDatabaseType
	CreateTableType
	InsertType
	SelectType
	UpdateType
	DeleteType
)

// Statement is a parsed query ready for execution.
type Statement interface {
	Type() StatementType
}

// CreateDatabaseStatement creates a new database and selects it.
type CreateDatabaseStatement struct {
	Name string
}

func (s CreateDatabaseStatement) Type() StatementType { return CreateDatabaseType }

// ChangeDatabaseStatement switches the session to an existing database.
type ChangeDatabaseStatement struct {
	Name string
}

func (s ChangeDatabaseStatement) Type() StatementType { return ChangeDatabaseType }

// CreateTableStatement creates a table with a fixed column schema.
type CreateTableStatement struct {
	Table   string
	Columns []core.ColumnDef
}

func (s CreateTableStatement) Type() StatementType { return CreateTableType }

// InsertStatement appends one row. An empty Columns slice targets the full
// schema in declaration order.
type InsertStatement struct {
	Table   string
	Columns []string
	Values  []core.Value
}

func (s InsertStatement) Type() StatementType { return InsertType }

// SelectStatement reads rows. An empty Columns slice means "*". Limit is nil
// when no LIMIT clause was given.
type SelectStatement struct {
	Table      string
	Columns    []string
	Where      *Condition
	OrderBy    string
	Descending bool
	Limit      *int
	Offset     int
}

func (s SelectStatement) Type() StatementType { return SelectType }

// SetClause is one "column = literal" assignment of an UPDATE.
type SetClause struct {
	Column string
	Value  core.Value
}

// UpdateStatement rewrites matching rows.
type UpdateStatement struct {
	Table string
	Sets  []SetClause
	Where *Condition
}

func (s UpdateStatement) Type() StatementType { return UpdateType }

// DeleteStatement removes matching rows. The executor rejects a nil Where.
type DeleteStatement struct {
	Table string
	Where *Condition
}

func (s DeleteStatement) Type() StatementType { return DeleteType }
