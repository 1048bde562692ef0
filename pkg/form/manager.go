package form

import "errors"

// Validator maps a value snapshot to the set of field-level errors. Rules may
// consult the full snapshot, not just their own field, which is how the
// conditional linkedin requirement is expressed.
type Validator interface {
	Validate(values Values) Errors
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(values Values) Errors

// Validate delegates to the underlying function.
func (fn ValidatorFunc) Validate(values Values) Errors {
	return fn(values)
}

// Watcher observes field mutations. It receives the name of the field that
// changed plus a snapshot of all current values. Watchers fire for every
// field except the CV selection.
type Watcher func(field string, values Values)

// ErrSubmitInFlight signals that a submission is already running.
var ErrSubmitInFlight = errors.New("form: submission already in progress")

// Manager holds the current field values, re-validates the whole snapshot on
// every mutation, and notifies watchers of changes. It models a single
// logical actor: one event at a time, no internal locking.
type Manager struct {
	values    Values
	errors    Errors
	dirty     map[string]bool
	validator Validator
	watchers  []Watcher

	submitting       bool
	submitSuccessful bool
}

// Option customises the manager configuration.
type Option func(*Manager)

// WithInitialValues seeds the manager with a starting snapshot instead of the
// defaults from NewValues.
func WithInitialValues(values Values) Option {
	return func(m *Manager) {
		m.values = values.Clone()
	}
}

// NewManager constructs a form state manager. The validator is mandatory:
// the form validates on every change.
func NewManager(validator Validator, options ...Option) (*Manager, error) {
	if validator == nil {
		return nil, errors.New("form: validator is required")
	}
	m := &Manager{
		values:    NewValues(),
		validator: validator,
		dirty:     make(map[string]bool),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	m.errors = m.validator.Validate(m.values)
	return m, nil
}

// Values returns a snapshot of the current field values.
func (m *Manager) Values() Values {
	return m.values.Clone()
}

// Errors returns the per-field error mapping from the latest validation pass.
func (m *Manager) Errors() Errors {
	out := make(Errors, len(m.errors))
	for k, v := range m.errors {
		out[k] = v
	}
	return out
}

// ErrorFor returns the current error for a single field, if any.
func (m *Manager) ErrorFor(field string) (FieldError, bool) {
	return m.errors.For(field)
}

// IsValid reports whether every field validates under the current snapshot.
func (m *Manager) IsValid() bool {
	return m.errors.Valid()
}

// IsDirty reports whether a field has been mutated since construction or the
// last Replace.
func (m *Manager) IsDirty(field string) bool {
	return m.dirty[field]
}

// IsSubmitting reports whether a submission is in flight.
func (m *Manager) IsSubmitting() bool {
	return m.submitting
}

// IsSubmitSuccessful reports whether the last submission completed.
func (m *Manager) IsSubmitSuccessful() bool {
	return m.submitSuccessful
}

// Watch registers a watcher invoked after every mutation to any field except
// the CV selection.
func (m *Manager) Watch(w Watcher) {
	if w != nil {
		m.watchers = append(m.watchers, w)
	}
}

// SetFullName updates the full name and re-validates.
func (m *Manager) SetFullName(value string) {
	m.values.FullName = value
	m.afterChange(FieldFullName, true)
}

// SetAddress updates the address and re-validates.
func (m *Manager) SetAddress(value string) {
	m.values.Address = value
	m.afterChange(FieldAddress, true)
}

// SetPhone updates the phone number and re-validates.
func (m *Manager) SetPhone(value string) {
	m.values.Phone = value
	m.afterChange(FieldPhone, true)
}

// SetNationality updates the nationality and re-validates.
func (m *Manager) SetNationality(value string) {
	m.values.Nationality = value
	m.afterChange(FieldNationality, true)
}

// SetLinkedinOptIn toggles the linkedin opt-in flag. Turning it off clears
// any linkedin error on the next validation pass regardless of content.
func (m *Manager) SetLinkedinOptIn(value bool) {
	m.values.LinkedinOptIn = value
	m.afterChange(FieldLinkedinOptIn, true)
}

// SetLinkedin updates the linkedin URL and re-validates.
func (m *Manager) SetLinkedin(value string) {
	m.values.Linkedin = value
	m.afterChange(FieldLinkedin, true)
}

// SetPreferredLanguage updates the preferred language and re-validates.
func (m *Manager) SetPreferredLanguage(value string) {
	m.values.PreferredLanguage = value
	m.afterChange(FieldPreferredLanguage, true)
}

// SetCV updates the selected file reference. The change re-validates but does
// not notify watchers: files are never mirrored to persistent storage.
func (m *Manager) SetCV(ref *FileRef) {
	if ref != nil {
		cv := *ref
		ref = &cv
	}
	m.values.CV = ref
	m.afterChange(FieldCV, false)
}

// Replace overwrites all field values at once, as happens when autosaved
// state is rehydrated at mount. It re-validates but does not notify watchers
// and does not mark fields dirty.
func (m *Manager) Replace(values Values) {
	m.values = values.Clone()
	m.dirty = make(map[string]bool)
	m.errors = m.validator.Validate(m.values)
}

// BeginSubmit transitions the form into the submitting state. It fails when
// a submission is already in flight; validity gating belongs to the
// submission handler.
func (m *Manager) BeginSubmit() error {
	if m.submitting {
		return ErrSubmitInFlight
	}
	m.submitting = true
	m.submitSuccessful = false
	return nil
}

// EndSubmit leaves the submitting state, recording whether the submission
// completed successfully.
func (m *Manager) EndSubmit(success bool) {
	m.submitting = false
	m.submitSuccessful = success
}

func (m *Manager) afterChange(field string, notify bool) {
	m.dirty[field] = true
	m.errors = m.validator.Validate(m.values)
	if !notify {
		return
	}
	snapshot := m.values.Clone()
	for _, w := range m.watchers {
		w(field, snapshot)
	}
}
