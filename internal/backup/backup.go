// Package backup round-trips the persisted keys through a versioned
// JSON envelope so installs can be exported and restored.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/halovoc/internal/storage"
)

// SchemaVersion is the only envelope version this build understands.
const SchemaVersion = 1

// Envelope is the export format. Payload maps each storage key to its
// raw persisted string, or null when the key was absent at export time.
type Envelope struct {
	SchemaVersion int                `json:"schemaVersion"`
	ID            string             `json:"id"`
	UpdatedAt     int64              `json:"updatedAt"`
	Payload       map[string]*string `json:"payload"`
}

// Result accounts for an import: which keys were restored and which
// were absent or null in the envelope.
type Result struct {
	Imported []string
	Skipped  []string
}

// Export snapshots every known key from the store.
func Export(ctx context.Context, store storage.Store, now time.Time) (*Envelope, error) {
	payload := make(map[string]*string, len(storage.AllKeys()))
	for _, key := range storage.AllKeys() {
		value, ok, err := store.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			v := value
			payload[key] = &v
		} else {
			payload[key] = nil
		}
	}
	return &Envelope{
		SchemaVersion: SchemaVersion,
		ID:            uuid.NewString(),
		UpdatedAt:     now.UnixMilli(),
		Payload:       payload,
	}, nil
}

// Import restores an envelope into the store. Any subset of keys may
// be absent or null; those are skipped and the normal sanitize pass
// repairs whatever the imported values turn out to contain. Unknown
// keys in the payload are ignored.
func Import(ctx context.Context, store storage.Store, data []byte) (*Result, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse backup envelope: %v", err)
	}
	if env.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("unsupported backup schema version %d", env.SchemaVersion)
	}
	result := &Result{}
	for _, key := range storage.AllKeys() {
		value, present := env.Payload[key]
		if !present || value == nil {
			result.Skipped = append(result.Skipped, key)
			continue
		}
		if err := store.Set(ctx, key, *value); err != nil {
			return nil, err
		}
		result.Imported = append(result.Imported, key)
	}
	return result, nil
}
