// Package history keeps the capped, newest-first password log.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/verte-zerg/pwgen/internal/model"
)

const (
	// Key is the key-value entry the log is stored under.
	Key = "pwgen_history"
	// MaxEntries caps the log length.
	MaxEntries = 20
)

// Log is ordered newest first.
type Log []model.GeneratedPassword

// KV is the key-value collaborator used for persistence.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type record struct {
	Value string `json:"value"`
	Time  string `json:"time"`
}

// Prepend returns a new log with entry first, truncated to MaxEntries.
func Prepend(log Log, entry model.GeneratedPassword) Log {
	n := len(log) + 1
	if n > MaxEntries {
		n = MaxEntries
	}
	out := make(Log, 0, n)
	out = append(out, entry)
	for _, e := range log {
		if len(out) == n {
			break
		}
		out = append(out, e)
	}
	return out
}

// Encode serializes the capped log as a JSON array of {value, time}.
func Encode(log Log) (string, error) {
	if len(log) > MaxEntries {
		log = log[:MaxEntries]
	}
	records := make([]record, 0, len(log))
	for _, e := range log {
		records = append(records, record{
			Value: e.Value,
			Time:  e.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode history: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored log.
func Decode(data string) (Log, error) {
	var records []record
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	if len(records) > MaxEntries {
		records = records[:MaxEntries]
	}
	log := make(Log, 0, len(records))
	for _, r := range records {
		parsed, err := time.Parse(time.RFC3339Nano, r.Time)
		if err != nil {
			return nil, fmt.Errorf("invalid history time %q: %w", r.Time, err)
		}
		log = append(log, model.GeneratedPassword{Value: r.Value, CreatedAt: parsed})
	}
	return log, nil
}

// Load reads the log from kv. A missing key yields an empty log.
func Load(ctx context.Context, kv KV) (Log, error) {
	data, ok, err := kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if !ok || data == "" {
		return Log{}, nil
	}
	return Decode(data)
}

// Save writes the capped log to kv.
func Save(ctx context.Context, kv KV, log Log) error {
	data, err := Encode(log)
	if err != nil {
		return err
	}
	if err := kv.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}
