package autosave

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-candidateform/pkg/form"
)

// memStorage is an in-memory stand-in for the persistence medium.
type memStorage struct {
	entries map[string]string
	failGet bool
	failSet bool
}

func newMemStorage() *memStorage {
	return &memStorage{entries: map[string]string{}}
}

func (s *memStorage) Get(key string) (string, bool, error) {
	if s.failGet {
		return "", false, errors.New("storage unavailable")
	}
	value, ok := s.entries[key]
	return value, ok, nil
}

func (s *memStorage) Set(key, value string) error {
	if s.failSet {
		return errors.New("quota exceeded")
	}
	s.entries[key] = value
	return nil
}

type fakeClipboard struct {
	text    string
	written bool
	fail    bool
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.fail {
		return errors.New("no display")
	}
	c.text = text
	c.written = true
	return nil
}

var passValidator = form.ValidatorFunc(func(form.Values) form.Errors { return form.Errors{} })

func filledValues() form.Values {
	return form.Values{
		FullName:          "Jane Doe",
		Address:           "123 Main St",
		Phone:             "+1 555 555 5555",
		Nationality:       "Canada",
		LinkedinOptIn:     true,
		Linkedin:          "https://www.linkedin.com/in/jane",
		PreferredLanguage: "English",
		CV:                &form.FileRef{Name: "resume.pdf", SizeBytes: 1024},
	}
}

func TestNewBridge_RequiresStorage(t *testing.T) {
	_, err := NewBridge(nil)
	assert.Error(t, err)
}

// Every change to a watched field must leave storage holding a record that
// round-trips back to the same seven values.
func TestBridge_PersistRoundTrips(t *testing.T) {
	storage := newMemStorage()
	bridge, err := NewBridge(storage)
	require.NoError(t, err)

	values := filledValues()
	bridge.Persist(values)

	raw, ok := storage.entries[Key]
	require.True(t, ok, "expected record under %s", Key)

	var record Record
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	assert.Equal(t, RecordFromValues(values), record)
}

func TestBridge_AttachPersistsEveryChange(t *testing.T) {
	storage := newMemStorage()
	bridge, err := NewBridge(storage)
	require.NoError(t, err)

	manager, err := form.NewManager(passValidator)
	require.NoError(t, err)
	bridge.Attach(manager)

	manager.SetFullName("Jane")
	record, ok := bridge.Restore()
	require.True(t, ok)
	assert.Equal(t, "Jane", record.FullName)

	manager.SetPhone("+1 555 555 5555")
	record, ok = bridge.Restore()
	require.True(t, ok)
	assert.Equal(t, "+1 555 555 5555", record.Phone)
	assert.Equal(t, "Jane", record.FullName)
}

// Remounting restores exactly the seven saved fields; the file selection
// stays empty because it is never persisted.
func TestBridge_RemountRestoresWatchedFields(t *testing.T) {
	storage := newMemStorage()
	bridge, err := NewBridge(storage)
	require.NoError(t, err)

	first, err := form.NewManager(passValidator)
	require.NoError(t, err)
	bridge.Attach(first)

	first.SetFullName("Jane Doe")
	first.SetAddress("123 Main St")
	first.SetPhone("+1 555 555 5555")
	first.SetNationality("Canada")
	first.SetLinkedinOptIn(true)
	first.SetLinkedin("https://www.linkedin.com/in/jane")
	first.SetPreferredLanguage("French")
	first.SetCV(&form.FileRef{Name: "resume.pdf", SizeBytes: 1024})

	second, err := form.NewManager(passValidator)
	require.NoError(t, err)
	rebridge, err := NewBridge(storage)
	require.NoError(t, err)
	rebridge.Attach(second)

	restored := second.Values()
	assert.Equal(t, "Jane Doe", restored.FullName)
	assert.Equal(t, "123 Main St", restored.Address)
	assert.Equal(t, "+1 555 555 5555", restored.Phone)
	assert.Equal(t, "Canada", restored.Nationality)
	assert.True(t, restored.LinkedinOptIn)
	assert.Equal(t, "https://www.linkedin.com/in/jane", restored.Linkedin)
	assert.Equal(t, "French", restored.PreferredLanguage)
	assert.Nil(t, restored.CV, "file selection must not be restored")
}

func TestBridge_WriteFailureIsSwallowedAndLogged(t *testing.T) {
	storage := newMemStorage()
	storage.failSet = true

	var buf bytes.Buffer
	bridge, err := NewBridge(storage, WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, err)

	bridge.Persist(filledValues())
	assert.Contains(t, buf.String(), "autosave: write")
}

func TestBridge_ReadFailureIsSwallowedAndLogged(t *testing.T) {
	storage := newMemStorage()
	storage.failGet = true

	var buf bytes.Buffer
	bridge, err := NewBridge(storage, WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, err)

	_, ok := bridge.Restore()
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "autosave: read")
}

func TestBridge_CorruptedRecordIgnored(t *testing.T) {
	storage := newMemStorage()
	storage.entries[Key] = "{not json"

	var buf bytes.Buffer
	bridge, err := NewBridge(storage, WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, err)

	_, ok := bridge.Restore()
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "autosave: decode")
}

func TestBridge_CopyTo(t *testing.T) {
	storage := newMemStorage()
	bridge, err := NewBridge(storage)
	require.NoError(t, err)

	clip := &fakeClipboard{}
	err = bridge.CopyTo(clip)
	assert.ErrorIs(t, err, ErrNothingSaved)
	assert.False(t, clip.written)

	bridge.Persist(filledValues())
	require.NoError(t, bridge.CopyTo(clip))
	assert.True(t, clip.written)

	// Copied verbatim: the clipboard text is exactly the stored value.
	assert.Equal(t, storage.entries[Key], clip.text)
}

func TestBridge_CustomKey(t *testing.T) {
	storage := newMemStorage()
	bridge, err := NewBridge(storage, WithKey("candidate_form_autosave_test"))
	require.NoError(t, err)

	bridge.Persist(filledValues())
	_, ok := storage.entries["candidate_form_autosave_test"]
	assert.True(t, ok)
	_, ok = storage.entries[Key]
	assert.False(t, ok)
}
