// Package MashDB provides a minimal column-oriented SQL database engine.
//
// MashDB persists each table as one JSON array file per column and commits
// multi-column writes through a stage-then-swap protocol with crash
// recovery. Statements use a constrained SQL-like grammar with a single
// WHERE predicate.
//
// # Quick Start
//
// Create an in-memory database:
//
//	st := store.NewMemoryStore()
//	instance := MashDB.Open(st)
//	engine := instance.Engine()
//
//	engine.Execute("CREATE DATABASE mydb")
//	engine.Execute("CREATE TABLE users (id INTEGER UNIQUE, name TEXT NOT NULL, age INTEGER)")
//	engine.Execute("INSERT INTO users (id, name, age) VALUES (1, 'Alice', 30)")
//
//	result, _ := engine.Execute("SELECT * FROM users WHERE age >= 25")
//	result.Display()
//
// # Supported SQL
//
// MashDB supports a small subset of SQL:
//   - CREATE DATABASE, CHANGE DATABASE
//   - CREATE TABLE with INTEGER/FLOAT/BOOLEAN/TEXT columns, UNIQUE and
//     NOT NULL constraints
//   - INSERT, SELECT, UPDATE, DELETE
//   - WHERE with a single predicate (=, !=, >, <, >=, <=, LIKE)
//   - ORDER BY, LIMIT, OFFSET
//
// For durable storage use store.NewFileStore with a data directory.
package MashDB
