// Package backup turns the backup set of collections into one portable JSON
// document and back, and keeps rotating snapshot files of that document.
package backup

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/girassol/internal/constants"
	"github.com/julianstephens/girassol/internal/errors"
	"github.com/julianstephens/girassol/internal/kvstore"
	"github.com/julianstephens/girassol/internal/logger"
	"github.com/julianstephens/girassol/internal/schema"
)

var (
	ErrInvalidDocument  = errors.ErrImportParse
	ErrNoRecognizedKeys = errors.ErrImportNoKeys
)

// Codec exports, imports and clears the backup set
type Codec struct {
	store *kvstore.Store
}

func NewCodec(store *kvstore.Store) *Codec {
	return &Codec{store: store}
}

// ExportAll returns a pretty-printed object holding every backup key.
// Missing or unreadable collections appear as null.
func (c *Codec) ExportAll() ([]byte, error) {
	doc := make(map[string]json.RawMessage, len(schema.BackupKeys()))
	for _, key := range schema.BackupKeys() {
		doc[string(key)] = c.store.GetRaw(key)
	}
	data, err := json.MarshalIndent(doc, "", constants.ExportIndent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return data, nil
}

// Parse decodes a backup document and keeps only the recognised keys
func Parse(data []byte) (map[string]json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	known := make(map[string]json.RawMessage, len(doc))
	for k, v := range doc {
		if schema.IsBackupKey(k) {
			known[k] = v
		} else {
			logger.Debug("Skipping unrecognized backup key", "key", k)
		}
	}
	if len(known) == 0 {
		return nil, ErrNoRecognizedKeys
	}
	return known, nil
}

// Import writes every recognised key of data verbatim. A null value removes
// the key. Nothing is written when data fails to parse. It returns how many
// keys were written; write failures are reported but do not stop the others.
func (c *Codec) Import(data []byte) (int, error) {
	doc, err := Parse(data)
	if err != nil {
		return 0, err
	}

	written := 0
	var failed []string
	for _, key := range schema.BackupKeys() {
		raw, ok := doc[string(key)]
		if !ok {
			continue
		}
		if err := c.store.SetRaw(key, raw); err != nil {
			logger.Error("Failed to import collection", "key", key, "error", err)
			failed = append(failed, string(key))
			continue
		}
		written++
	}

	if len(failed) > 0 {
		return written, fmt.Errorf("%w: could not import %v", errors.ErrStorageWrite, failed)
	}
	return written, nil
}

// ImportAll reports whether at least one recognised collection was restored
func (c *Codec) ImportAll(data []byte) bool {
	written, err := c.Import(data)
	if err != nil {
		logger.Warn("Import failed", "written", written, "error", err)
	}
	return written > 0
}

// ClearAll removes every backup key. It asks no questions.
func (c *Codec) ClearAll() {
	for _, key := range schema.BackupKeys() {
		c.store.Remove(key)
	}
}
