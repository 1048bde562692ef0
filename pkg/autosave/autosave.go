// Package autosave mirrors the non-file form fields to a persistent
// key/value store on every change and rehydrates them when the form mounts.
// Persistence is best-effort: storage failures are logged and swallowed and
// must never interrupt the user.
package autosave

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/goliatone/go-candidateform/pkg/form"
)

// Key is the fixed, versioned storage key holding the autosave record.
const Key = "candidate_form_autosave_v1"

// ErrNothingSaved signals that the storage key holds no record yet.
var ErrNothingSaved = errors.New("autosave: nothing saved yet")

// Storage is the persistence port. The second Get return reports presence;
// an absent key is not an error.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Record is the serialized subset of form values: exactly the seven watched
// fields. The CV selection is never persisted.
type Record struct {
	FullName          string `json:"fullName"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Nationality       string `json:"nationality"`
	LinkedinOptIn     bool   `json:"linkedinOptIn"`
	Linkedin          string `json:"linkedin"`
	PreferredLanguage string `json:"preferredLanguage"`
}

// RecordFromValues snapshots the watched fields.
func RecordFromValues(v form.Values) Record {
	return Record{
		FullName:          v.FullName,
		Address:           v.Address,
		Phone:             v.Phone,
		Nationality:       v.Nationality,
		LinkedinOptIn:     v.LinkedinOptIn,
		Linkedin:          v.Linkedin,
		PreferredLanguage: v.PreferredLanguage,
	}
}

// Apply overwrites the watched fields on a value snapshot, leaving the file
// selection untouched: it cannot be restored because it is never serialized.
func (r Record) Apply(v *form.Values) {
	if v == nil {
		return
	}
	v.FullName = r.FullName
	v.Address = r.Address
	v.Phone = r.Phone
	v.Nationality = r.Nationality
	v.LinkedinOptIn = r.LinkedinOptIn
	v.Linkedin = r.Linkedin
	v.PreferredLanguage = r.PreferredLanguage
}

// Bridge connects a form manager to the storage port.
type Bridge struct {
	storage Storage
	logger  *log.Logger
	key     string
}

// Option customises the bridge configuration.
type Option func(*Bridge)

// WithLogger routes swallowed storage errors to the given logger.
func WithLogger(logger *log.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithKey overrides the storage key, mainly for tests running against a
// shared store.
func WithKey(key string) Option {
	return func(b *Bridge) {
		if key != "" {
			b.key = key
		}
	}
}

// NewBridge constructs an autosave bridge over the given storage port.
func NewBridge(storage Storage, options ...Option) (*Bridge, error) {
	if storage == nil {
		return nil, errors.New("autosave: storage is required")
	}
	b := &Bridge{
		storage: storage,
		logger:  log.Default(),
		key:     Key,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b, nil
}

// Attach rehydrates the manager from storage, then subscribes so every
// subsequent change to a watched field is persisted. Restore runs before the
// subscription: rehydration itself is not a change.
func (b *Bridge) Attach(m *form.Manager) {
	if m == nil {
		return
	}
	if record, ok := b.Restore(); ok {
		values := m.Values()
		record.Apply(&values)
		m.Replace(values)
	}
	m.Watch(b.Watch)
}

// Watch implements form.Watcher: it persists the current snapshot on every
// change.
func (b *Bridge) Watch(_ string, values form.Values) {
	b.Persist(values)
}

// Persist writes the watched fields to storage. Failures are logged and
// swallowed.
func (b *Bridge) Persist(values form.Values) {
	data, err := json.Marshal(RecordFromValues(values))
	if err != nil {
		b.logger.Printf("autosave: encode record: %v", err)
		return
	}
	if err := b.storage.Set(b.key, string(data)); err != nil {
		b.logger.Printf("autosave: write %s: %v", b.key, err)
	}
}

// Restore reads the stored record. A missing key, unreadable store, or
// unparseable record all yield ok=false; read failures are logged.
func (b *Bridge) Restore() (Record, bool) {
	raw, ok, err := b.storage.Get(b.key)
	if err != nil {
		b.logger.Printf("autosave: read %s: %v", b.key, err)
		return Record{}, false
	}
	if !ok {
		return Record{}, false
	}
	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		b.logger.Printf("autosave: decode %s: %v", b.key, err)
		return Record{}, false
	}
	return record, true
}

// Raw returns the stored text verbatim, or ErrNothingSaved when the key is
// absent.
func (b *Bridge) Raw() (string, error) {
	raw, ok, err := b.storage.Get(b.key)
	if err != nil {
		return "", fmt.Errorf("autosave: read %s: %w", b.key, err)
	}
	if !ok {
		return "", ErrNothingSaved
	}
	return raw, nil
}

// CopyTo places the raw stored text on the given clipboard without any
// transformation.
func (b *Bridge) CopyTo(clip Clipboard) error {
	if clip == nil {
		return errors.New("autosave: clipboard is required")
	}
	raw, err := b.Raw()
	if err != nil {
		return err
	}
	if err := clip.WriteAll(raw); err != nil {
		return fmt.Errorf("autosave: copy to clipboard: %w", err)
	}
	return nil
}
