package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ColumnType is the declared type of a column.
type ColumnType int

const (
	TextType ColumnType = iota
	IntegerType
	FloatType
	BooleanType
)

// ParseColumnType resolves a declared type name case-insensitively.
// An empty name defaults to TEXT.
func ParseColumnType(name string) (ColumnType, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "TEXT", "STRING", "VARCHAR":
		return TextType, nil
	case "INT", "INTEGER":
		return IntegerType, nil
	case "FLOAT", "DOUBLE", "REAL":
		return FloatType, nil
	case "BOOL", "BOOLEAN":
		return BooleanType, nil
	default:
		return TextType, fmt.Errorf("unknown column type: %s", name)
	}
}

func (t ColumnType) String() string {
	switch t {
	case IntegerType:
		return "INTEGER"
	case FloatType:
		return "FLOAT"
	case BooleanType:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

func (t ColumnType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ColumnType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseColumnType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Accepts reports whether a value may be stored in a column of this type.
// Null always passes; NOT NULL is enforced separately. Integers are accepted
// by float columns.
func (t ColumnType) Accepts(v Value) bool {
	switch v.Kind() {
	case NullKind:
		return true
	case IntKind:
		return t == IntegerType || t == FloatType
	case FloatKind:
		return t == FloatType
	case BoolKind:
		return t == BooleanType
	case TextKind:
		return t == TextType
	default:
		return false
	}
}

// ColumnDef describes one column of a table schema.
type ColumnDef struct {
	Name    string     `json:"name"`
	Type    ColumnType `json:"type"`
	Unique  bool       `json:"unique"`
	NotNull bool       `json:"notNull"`
}

// Table is a named table within a database with its ordered schema, fixed at
// creation time.
type Table struct {
	Database string      `json:"database"`
	Name     string      `json:"name"`
	Columns  []ColumnDef `json:"columns"`
}

// Column looks up a column definition by name.
func (t Table) Column(name string) (ColumnDef, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return ColumnDef{}, false
}

// ColumnNames returns the schema's column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}
