package store

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/mod/semver"
)

// SchemaVersion is written into every record envelope. Records whose major
// version differs are rejected on read.
const SchemaVersion = "v1.0.0"

// DefaultPrefix namespaces every key the application writes.
const DefaultPrefix = "memty"

// Well-known record names.
const (
	KeyUser          = "user"
	KeyUserStats     = "user-stats"
	KeyBadges        = "badges"
	KeyPreferences   = "preferences"
	KeyLastStudyDate = "last-study-date"
)

type envelope struct {
	Version string          `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Namespace reads and writes schema-versioned JSON records under a key
// prefix, optionally scoped to one user.
type Namespace struct {
	kv     KV
	prefix string
	user   string
}

// NewNamespace returns a Namespace over kv. An empty prefix uses DefaultPrefix.
func NewNamespace(kv KV, prefix string) *Namespace {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Namespace{kv: kv, prefix: prefix}
}

// ForUser returns a Namespace whose keys are scoped to userID.
func (n *Namespace) ForUser(userID string) *Namespace {
	return &Namespace{kv: n.kv, prefix: n.prefix, user: userID}
}

// Key returns the fully qualified key for name.
func (n *Namespace) Key(name string) string {
	if n.user == "" {
		return n.prefix + ":" + name
	}
	return n.prefix + ":" + n.user + ":" + name
}

// Get decodes the record stored under name into out. It returns false when
// the record is absent. Errors are *PersistenceError.
func (n *Namespace) Get(ctx context.Context, name string, out any) (bool, error) {
	key := n.Key(name)
	raw, ok, err := n.kv.Get(ctx, key)
	if err != nil {
		return false, &PersistenceError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return false, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false, &PersistenceError{Op: "get", Key: key, Err: fmt.Errorf("decode envelope: %w", err)}
	}
	if !semver.IsValid(env.Version) || semver.Major(env.Version) != semver.Major(SchemaVersion) {
		return false, &PersistenceError{Op: "get", Key: key, Err: fmt.Errorf("unsupported schema version %q", env.Version)}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return false, &PersistenceError{Op: "get", Key: key, Err: fmt.Errorf("decode record: %w", err)}
	}
	return true, nil
}

// Set stores v under name wrapped in a versioned envelope.
func (n *Namespace) Set(ctx context.Context, name string, v any) error {
	key := n.Key(name)
	data, err := json.Marshal(v)
	if err != nil {
		return &PersistenceError{Op: "set", Key: key, Err: err}
	}
	raw, err := json.Marshal(envelope{Version: SchemaVersion, Data: data})
	if err != nil {
		return &PersistenceError{Op: "set", Key: key, Err: err}
	}
	if err := n.kv.Set(ctx, key, raw); err != nil {
		return &PersistenceError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Remove deletes the record stored under name.
func (n *Namespace) Remove(ctx context.Context, name string) error {
	key := n.Key(name)
	if err := n.kv.Remove(ctx, key); err != nil {
		return &PersistenceError{Op: "remove", Key: key, Err: err}
	}
	return nil
}
