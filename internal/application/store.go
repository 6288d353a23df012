package application

import (
	"context"
	"encoding/json"
	"fmt"

	"journey/internal/ports"
)

// Keys under which journal state is persisted
const (
	KeyEntries         = "journey.journalEntries"
	KeyPeriods         = "journey.pastPeriods"
	KeyActiveFilter    = "journey.activeFilter"
	KeyDirectory       = "journey.directorySettings"
	KeySelectionPrefix = "journey.selectedFiles_"
)

func loadJSON(ctx context.Context, kv ports.KeyValueStore, key string, v any) (bool, error) {
	data, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func saveJSON(ctx context.Context, kv ports.KeyValueStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
