// Package overrides loads the operator-authored manual override table.
//
// Overrides pin a known identifier to corrected attributes. They are
// consulted after automatic matching and bypass the matcher entirely for the
// identifiers they name.
package overrides

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"log/slog"

	"rosterly/internal/logging"
)

// Override pins a person identifier to corrected attributes.
type Override struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	Cohort      string `json:"cohort,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Catalog is a JSON-file-backed override table, reloaded when the file's
// mtime changes.
type Catalog struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	loaded  time.Time
	entries map[string]Override
}

// NewCatalog constructs a catalog backed by the provided JSON file. An empty
// path yields a nil catalog, and a nil catalog answers every lookup with
// "no override".
func NewCatalog(path string, logger *slog.Logger) *Catalog {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Catalog{path: trimmed, logger: logger}
}

// Lookup returns the override for an identifier, if any.
func (c *Catalog) Lookup(id string) (Override, bool, error) {
	if c == nil {
		return Override{}, false, nil
	}
	if err := c.ensureLoaded(); err != nil {
		return Override{}, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[strings.TrimSpace(id)]
	return entry, ok, nil
}

func (c *Catalog) ensureLoaded() error {
	info, err := os.Stat(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	c.mu.RLock()
	alreadyLoaded := !c.loaded.IsZero() && c.loaded.Equal(info.ModTime())
	c.mu.RUnlock()
	if alreadyLoaded {
		return nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}

	var raw []Override
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	entries := make(map[string]Override, len(raw))
	for _, entry := range raw {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			continue
		}
		entries[id] = entry
	}

	c.mu.Lock()
	c.entries = entries
	c.loaded = info.ModTime()
	c.mu.Unlock()

	c.logger.Debug("override catalog loaded",
		logging.String("path", c.path),
		logging.Int("entries", len(entries)))
	return nil
}
