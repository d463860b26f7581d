package event

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"eventpass/internal/store"
)

// loadSnapshot fills v from the stored snapshot for key. Absence and parse
// failures are not fatal: the manager starts from its defaults, matching the
// graceful-fallback contract of the persistence layer.
func loadSnapshot(ctx context.Context, snaps store.Snapshots, key string, v any) bool {
	data, err := snaps.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("load %s snapshot failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("parse %s snapshot failed: %v", key, err)
		return false
	}
	return true
}

// saveSnapshot writes v as the whole-value snapshot for key. Write failures
// are logged and swallowed: the in-memory state stays authoritative for the
// rest of the session.
func saveSnapshot(ctx context.Context, snaps store.Snapshots, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("encode %s snapshot failed: %v", key, err)
		return
	}
	if err := snaps.Save(ctx, key, data); err != nil {
		log.Printf("save %s snapshot failed: %v", key, err)
	}
}
