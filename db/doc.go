// Package db executes parsed statements against a column store.
//
// The Engine carries an explicit session (the current database) and
// dispatches each statement to its executor. Reads return a QueryResult,
// writes an ExecResult; both implement Result and can render themselves to a
// terminal.
//
// # Quick Start
//
//	st := store.NewMemoryStore()
//	engine := db.NewEngine(st)
//
//	engine.Execute("CREATE DATABASE shop")
//	engine.Execute("CREATE TABLE users (id INTEGER UNIQUE, name TEXT NOT NULL)")
//	engine.Execute("INSERT INTO users VALUES (1, 'Ann')")
//
//	result, err := engine.Execute("SELECT * FROM users WHERE id = 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result.Display()
package db
