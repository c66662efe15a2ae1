// Package sql provides statement lexing and parsing for MashDB.
//
// The package includes a byte-level lexer, a recursive-descent parser that
// produces one Statement per query, and the condition engine that parses and
// evaluates single WHERE predicates.
//
// # Parser Usage
//
//	parser := sql.NewParser("SELECT * FROM users WHERE id = 1")
//	statement, err := parser.Parse()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Supported Statements
//
// The parser recognizes exactly seven statement shapes:
//   - CreateDatabaseStatement
//   - ChangeDatabaseStatement
//   - CreateTableStatement
//   - InsertStatement
//   - SelectStatement (optional WHERE, ORDER BY, LIMIT, OFFSET)
//   - UpdateStatement
//   - DeleteStatement
//
// Empty input fails with ErrEmptyQuery; text matching no grammar fails with
// ErrInvalidQuery; malformed clauses fail with ErrSyntax.
//
// # Conditions
//
// WHERE clauses hold a single predicate of the form
// "<column> <op> <literal>" with op one of =, ==, !=, >, <, >=, <=, LIKE.
// A Condition can also be parsed from standalone text:
//
//	cond, err := sql.ParseCondition("age >= 25")
//	ok, err := cond.Evaluate(core.NewInt(30))
package sql
