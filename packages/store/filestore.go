package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"dario.cat/mergo"
	"github.com/tidwall/gjson"
)

// SettingsFilenames contains the settings file names searched for in a
// directory, in precedence order.
var SettingsFilenames = []string{
	".markpreview.json",
	"markpreview.json",
}

// FileStore is a Store backed by a JSON settings file overlaid on the
// application defaults. Keys containing dots address nested values
// ("theme.dark.css"). Safe for concurrent readers; Reload swaps the
// merged view atomically.
type FileStore struct {
	path string

	mu     sync.RWMutex
	values map[string]any
	raw    []byte
}

// NewFileStore loads the settings file at path merged over Defaults().
// A missing file is not an error; the store then serves defaults only.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path}
	if err := fs.Reload(); err != nil {
		return nil, err
	}
	return fs, nil
}

// FindSettingsFile returns the first settings file present in dir, or ""
// when none exists.
func FindSettingsFile(dir string) string {
	for _, name := range SettingsFilenames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Reload re-reads the settings file and rebuilds the merged view.
func (f *FileStore) Reload() error {
	user := make(map[string]any)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot read settings file: %w", err)
		}
	} else if err := json.Unmarshal(data, &user); err != nil {
		return fmt.Errorf("cannot parse settings file %s: %w", f.path, err)
	}

	// Overlay the user file onto the defaults. The user value wins even
	// when it is explicitly empty (false, "", []).
	merged := Defaults()
	if err := mergo.Merge(&merged, user, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
		return fmt.Errorf("merging defaults: %w", err)
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("marshaling merged settings: %w", err)
	}

	f.mu.Lock()
	f.values = merged
	f.raw = raw
	f.mu.Unlock()
	return nil
}

// Path returns the settings file path the store reads from.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(key string) (any, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if v, ok := f.values[key]; ok {
		return v, true
	}
	if strings.Contains(key, ".") {
		if res := gjson.GetBytes(f.raw, key); res.Exists() {
			return res.Value(), true
		}
	}
	return nil, false
}

func (f *FileStore) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}
