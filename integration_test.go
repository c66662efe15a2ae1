package MashDB

import (
	"testing"

	"github.com/mashdb/MashDB/db"
	"github.com/mashdb/MashDB/store"
)

// TestFunc is the signature for test functions that work with any store
type TestFunc func(t *testing.T, engine *db.Engine)

// runWithBothStores runs a test function against both the memory and the
// file store.
func runWithBothStores(t *testing.T, testFunc TestFunc) {
	t.Run("Memory", func(t *testing.T) {
		instance := Open(store.NewMemoryStore())
		testFunc(t, instance.Engine())
	})

	t.Run("File", func(t *testing.T) {
		st, err := store.NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to initialize file store: %v", err)
		}
		instance := Open(st)
		testFunc(t, instance.Engine())
	})
}

// TestIntegrationWorkflow tests a complete database workflow
func TestIntegrationWorkflow(t *testing.T) {
	runWithBothStores(t, func(t *testing.T, engine *db.Engine) {

		result, err := engine.Execute("CREATE DATABASE company")
		if err != nil {
			t.Fatalf("Failed to create database: %v", err)
		}
		if result.(db.ExecResult).DatabasesCreated != 1 {
			t.Error("Expected 1 database created")
		}

		_, err = engine.Execute("CREATE TABLE employees (id INTEGER UNIQUE, name TEXT NOT NULL, department TEXT, salary INTEGER)")
		if err != nil {
			t.Fatalf("Failed to create table: %v", err)
		}

		employees := []string{
			"INSERT INTO employees (id, name, department, salary) VALUES (1, 'Alice', 'Engineering', 80000)",
			"INSERT INTO employees (id, name, department, salary) VALUES (2, 'Bob', 'Engineering', 75000)",
			"INSERT INTO employees (id, name, department, salary) VALUES (3, 'Charlie', 'Sales', 60000)",
			"INSERT INTO employees (id, name, department, salary) VALUES (4, 'Diana', 'Marketing', 65000)",
			"INSERT INTO employees (id, name, department, salary) VALUES (5, 'Eve', 'Engineering', 90000)",
		}
		for _, statement := range employees {
			if _, err := engine.Execute(statement); err != nil {
				t.Fatalf("Failed to insert: %v", err)
			}
		}

		query, err := engine.Execute("SELECT name FROM employees WHERE department = 'Engineering' ORDER BY salary DESC")
		if err != nil {
			t.Fatalf("Failed to select: %v", err)
		}
		rows := query.(db.QueryResult).Rows
		if len(rows) != 3 {
			t.Fatalf("Expected 3 engineers, got %d", len(rows))
		}
		if rows[0]["name"].Text() != "Eve" {
			t.Errorf("Expected Eve first, got %s", rows[0]["name"].Text())
		}

		result, err = engine.Execute("UPDATE employees SET salary = 82000 WHERE name = 'Alice'")
		if err != nil {
			t.Fatalf("Failed to update: %v", err)
		}
		if result.(db.ExecResult).RowsUpdated != 1 {
			t.Error("Expected 1 row updated")
		}

		result, err = engine.Execute("DELETE FROM employees WHERE department = 'Sales'")
		if err != nil {
			t.Fatalf("Failed to delete: %v", err)
		}
		if result.(db.ExecResult).RowsDeleted != 1 {
			t.Error("Expected 1 row deleted")
		}

		query, err = engine.Execute("SELECT * FROM employees")
		if err != nil {
			t.Fatalf("Failed to select all: %v", err)
		}
		if len(query.(db.QueryResult).Rows) != 4 {
			t.Errorf("Expected 4 rows, got %d", len(query.(db.QueryResult).Rows))
		}
	})
}

// TestReopenFileStore verifies data survives reopening the same directory.
func TestReopenFileStore(t *testing.T) {
	dir := t.TempDir()

	st, err := store.NewFileStore(dir)
	if err != nil {
		t.Fatalf("Failed to initialize file store: %v", err)
	}
	engine := Open(st).Engine()
	if _, err := engine.Execute("CREATE DATABASE notes"); err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	if _, err := engine.Execute("CREATE TABLE entries (id INTEGER, body TEXT)"); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	if _, err := engine.Execute("INSERT INTO entries VALUES (1, 'hello')"); err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}

	reopened, err := store.NewFileStore(dir)
	if err != nil {
		t.Fatalf("Failed to reopen file store: %v", err)
	}
	engine = Open(reopened).Engine()
	if engine.Database() != "notes" {
		t.Errorf("Expected session database notes, got %q", engine.Database())
	}

	query, err := engine.Execute("SELECT body FROM entries")
	if err != nil {
		t.Fatalf("Failed to select: %v", err)
	}
	rows := query.(db.QueryResult).Rows
	if len(rows) != 1 || rows[0]["body"].Text() != "hello" {
		t.Errorf("Unexpected rows after reopen: %#v", rows)
	}
}
