package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v6/util"

	"github.com/mashdb/MashDB/core"
)

// Table is an open handle to one table's schema and column files. Staged
// column writes accumulate on the handle until Commit swaps them all into
// place or Discard drops them.
type Table struct {
	store  *Store
	def    core.Table
	dir    string
	staged []string
}

// Schema returns the table definition loaded at open time.
func (t *Table) Schema() core.Table {
	return t.def
}

func (t *Table) columnPath(name string) string {
	return t.store.fs.Join(t.dir, columnsDir, name+".json")
}

func (t *Table) manifestPath() string {
	return t.store.fs.Join(t.dir, manifestFile)
}

// ReadColumn loads one column's full value array.
func (t *Table) ReadColumn(name string) ([]core.Value, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	data, err := util.ReadFile(t.store.fs, t.columnPath(name))
	if err != nil {
		return nil, fmt.Errorf("%w: read column %s: %v", ErrStorage, name, err)
	}

	var values []core.Value
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: decode column %s: %v", ErrStorage, name, err)
	}
	return values, nil
}

// RowCount returns the length of the table's first column. A table with no
// columns has zero rows.
func (t *Table) RowCount() (int, error) {
	if len(t.def.Columns) == 0 {
		return 0, nil
	}
	values, err := t.ReadColumn(t.def.Columns[0].Name)
	if err != nil {
		return 0, err
	}
	return len(values), nil
}

// Stage writes a column's new content to a temporary file next to the
// target. The live column file is untouched until Commit.
func (t *Table) Stage(name string, values []core.Value) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("%w: encode column %s: %v", ErrStorage, name, err)
	}
	if err := util.WriteFile(t.store.fs, t.columnPath(name)+tempSuffix, data, 0644); err != nil {
		return fmt.Errorf("%w: stage column %s: %v", ErrStorage, name, err)
	}

	for _, staged := range t.staged {
		if staged == name {
			return nil
		}
	}
	t.staged = append(t.staged, name)
	return nil
}

// Commit records a manifest of the staged columns, renames every staged file
// over its target, then removes the manifest. A crash between the manifest
// write and its removal is repaired on the next open.
func (t *Table) Commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if len(t.staged) == 0 {
		return nil
	}

	manifest, err := json.Marshal(t.staged)
	if err != nil {
		return fmt.Errorf("%w: encode manifest: %v", ErrCommit, err)
	}
	if err := util.WriteFile(t.store.fs, t.manifestPath(), manifest, 0644); err != nil {
		return fmt.Errorf("%w: write manifest: %v", ErrCommit, err)
	}

	for i, name := range t.staged {
		path := t.columnPath(name)
		if err := t.store.fs.Rename(path+tempSuffix, path); err != nil {
			// Columns already swapped stay. Remaining temps and the
			// manifest are dropped so a later open sees no pending batch.
			for _, rest := range t.staged[i:] {
				t.store.fs.Remove(t.columnPath(rest) + tempSuffix)
			}
			t.store.fs.Remove(t.manifestPath())
			t.staged = nil
			return fmt.Errorf("%w: swap column %s: %v", ErrCommit, name, err)
		}
	}

	if err := t.store.fs.Remove(t.manifestPath()); err != nil {
		return fmt.Errorf("%w: remove manifest: %v", ErrCommit, err)
	}
	t.staged = nil
	return nil
}

// Discard removes any staged temporary files without touching the live
// column data.
func (t *Table) Discard() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for _, name := range t.staged {
		t.store.fs.Remove(t.columnPath(name) + tempSuffix)
	}
	t.staged = nil
}

// recover completes a commit that was interrupted mid-swap. Columns listed
// in the manifest whose temporary file still exists are renamed into place;
// columns already swapped are left alone. Called with the store lock held.
func (t *Table) recover() error {
	data, err := util.ReadFile(t.store.fs, t.manifestPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: read manifest: %v", ErrStorage, err)
	}

	var staged []string
	if err := json.Unmarshal(data, &staged); err != nil {
		return fmt.Errorf("%w: decode manifest: %v", ErrCommit, err)
	}

	for _, name := range staged {
		path := t.columnPath(name)
		if _, err := t.store.fs.Stat(path + tempSuffix); err != nil {
			continue
		}
		if err := t.store.fs.Rename(path+tempSuffix, path); err != nil {
			return fmt.Errorf("%w: recover column %s: %v", ErrCommit, name, err)
		}
	}

	if err := t.store.fs.Remove(t.manifestPath()); err != nil {
		return fmt.Errorf("%w: remove manifest: %v", ErrCommit, err)
	}
	return nil
}
