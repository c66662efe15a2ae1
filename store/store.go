package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/go-git/go-billy/v6/util"

	"github.com/mashdb/MashDB/core"
)

var (
	ErrStorage        = errors.New("storage error")
	ErrCommit         = errors.New("commit error")
	ErrDatabaseExists = errors.New("database already exists")
	ErrNoDatabase     = errors.New("no database selected")
	ErrTableExists    = errors.New("table already exists")
	ErrTableNotFound  = errors.New("table not found")
)

const (
	currentDatabaseFile = "current-database"
	schemaFile          = "schema.json"
	columnsDir          = "columns"
	manifestFile        = "commit.manifest"
	tempSuffix          = ".tmp"
)

// Store is a collection of databases rooted in one filesystem. All access
// goes through a single reader-writer lock, so a Store is safe for
// concurrent use.
type Store struct {
	fs billy.Filesystem
	mu sync.RWMutex
}

// NewMemoryStore returns a store backed by an in-memory filesystem. Contents
// are lost when the process exits.
func NewMemoryStore() *Store {
	return &Store{fs: memfs.New()}
}

// NewFileStore returns a store rooted at baseDir, creating the directory if
// needed.
func NewFileStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &Store{fs: osfs.New(baseDir)}, nil
}

// CreateDatabase creates a new database directory and selects it as the
// current database.
func (s *Store) CreateDatabase(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.databaseExists(name) {
		return fmt.Errorf("%w: %s", ErrDatabaseExists, name)
	}
	if err := s.fs.MkdirAll(name, 0755); err != nil {
		return fmt.Errorf("%w: create database %s: %v", ErrStorage, name, err)
	}
	return s.writeCurrentDatabase(name)
}

// SetCurrentDatabase switches the store's current database pointer to an
// existing database.
func (s *Store) SetCurrentDatabase(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.databaseExists(name) {
		return fmt.Errorf("%w: database %s does not exist", ErrNoDatabase, name)
	}
	return s.writeCurrentDatabase(name)
}

// CurrentDatabase returns the name the current-database pointer holds.
func (s *Store) CurrentDatabase() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := util.ReadFile(s.fs, currentDatabaseFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoDatabase
		}
		return "", fmt.Errorf("%w: read current database: %v", ErrStorage, err)
	}
	name := string(data)
	if name == "" {
		return "", ErrNoDatabase
	}
	return name, nil
}

// DatabaseExists reports whether a database directory is present.
func (s *Store) DatabaseExists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.databaseExists(name)
}

func (s *Store) databaseExists(name string) bool {
	info, err := s.fs.Stat(name)
	return err == nil && info.IsDir()
}

// writeCurrentDatabase swaps the pointer file through a temporary so the
// pointer is never observed half-written.
func (s *Store) writeCurrentDatabase(name string) error {
	temp := currentDatabaseFile + tempSuffix
	if err := util.WriteFile(s.fs, temp, []byte(name), 0644); err != nil {
		return fmt.Errorf("%w: stage current database: %v", ErrStorage, err)
	}
	if err := s.fs.Rename(temp, currentDatabaseFile); err != nil {
		return fmt.Errorf("%w: swap current database: %v", ErrStorage, err)
	}
	return nil
}

// CreateTable writes a table's schema and one empty column file per column,
// then returns an open handle to it.
func (s *Store) CreateTable(table core.Table) (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.databaseExists(table.Database) {
		return nil, fmt.Errorf("%w: database %s does not exist", ErrNoDatabase, table.Database)
	}

	tableDir := s.fs.Join(table.Database, table.Name)
	if _, err := s.fs.Stat(s.fs.Join(tableDir, schemaFile)); err == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrTableExists, table.Database, table.Name)
	}

	if err := s.fs.MkdirAll(s.fs.Join(tableDir, columnsDir), 0755); err != nil {
		return nil, fmt.Errorf("%w: create table %s: %v", ErrStorage, table.Name, err)
	}

	// Column files first, schema last. Until the schema exists the table
	// does not, so an interrupted create is completed by running CREATE
	// TABLE again. Column files left behind by an earlier attempt keep
	// their content.
	empty := []byte("[]")
	for _, column := range table.Columns {
		path := s.fs.Join(tableDir, columnsDir, column.Name+".json")
		if _, err := s.fs.Stat(path); err == nil {
			continue
		}
		if err := util.WriteFile(s.fs, path, empty, 0644); err != nil {
			return nil, fmt.Errorf("%w: write column %s: %v", ErrStorage, column.Name, err)
		}
	}

	schema, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode schema: %v", ErrStorage, err)
	}
	if err := util.WriteFile(s.fs, s.fs.Join(tableDir, schemaFile), schema, 0644); err != nil {
		return nil, fmt.Errorf("%w: write schema: %v", ErrStorage, err)
	}

	return &Table{store: s, def: table, dir: tableDir}, nil
}

// OpenTable loads a table's schema and returns a handle. An interrupted
// commit found on open is completed before the handle is returned.
func (s *Store) OpenTable(database string, name string) (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tableDir := s.fs.Join(database, name)
	data, err := util.ReadFile(s.fs, s.fs.Join(tableDir, schemaFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s.%s", ErrTableNotFound, database, name)
		}
		return nil, fmt.Errorf("%w: read schema: %v", ErrStorage, err)
	}

	var table core.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("%w: decode schema: %v", ErrStorage, err)
	}

	handle := &Table{store: s, def: table, dir: tableDir}
	if err := handle.recover(); err != nil {
		return nil, err
	}
	return handle, nil
}

// TableExists reports whether a table's schema file is present.
func (s *Store) TableExists(database string, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.fs.Stat(s.fs.Join(database, name, schemaFile))
	return err == nil
}
