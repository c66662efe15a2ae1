// Package core defines the shared data model for MashDB.
//
// It provides the Value sum type used uniformly by parsing, storage, and
// predicate evaluation, plus the schema types (ColumnType, ColumnDef, Table)
// that describe tables.
//
// # Values
//
// A Value is one of five kinds: Null, Bool, Int, Float, or Text. Literals in
// statements are classified with ParseLiteral:
//
//	core.ParseLiteral("42")    // Int(42)
//	core.ParseLiteral("'Ann'") // Text("Ann")
//	core.ParseLiteral("null")  // Null
//
// Values round-trip through JSON as native null/bool/number/string, which is
// also the on-disk column format.
package core
