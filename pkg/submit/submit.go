// Package submit drives the form submission state machine: the submit action
// is accepted only while the form is valid, a fixed artificial delay models
// network latency (no real call is made), and the resulting summary is
// written out as a downloadable JSON artifact.
package submit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-candidateform/pkg/form"
)

// State names the submission phases. There is no failure state: no network
// call exists, so Submitting transitions unconditionally to Success once the
// artifact is written.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
)

// DefaultDelay is the artificial latency applied to every submission.
const DefaultDelay = 1500 * time.Millisecond

// NoticeKind classifies transient status messages emitted for the UI.
type NoticeKind string

const (
	NoticeLoading NoticeKind = "loading"
	NoticeSuccess NoticeKind = "success"
)

// Notice is a transient status message for display next to the form.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Notifier receives transient notices as the submission progresses.
type Notifier func(Notice)

// Summary is the write-only artifact produced at successful submission: a
// snapshot of the form plus timestamp and the selected file's name and size.
// The file content itself is never included.
type Summary struct {
	FullName          string  `json:"fullName"`
	Address           string  `json:"address"`
	Phone             string  `json:"phone"`
	Nationality       string  `json:"nationality"`
	Linkedin          *string `json:"linkedin"`
	PreferredLanguage string  `json:"preferredLanguage"`
	SubmittedAt       string  `json:"submittedAt"`
	CVName            *string `json:"cvName"`
	CVSizeBytes       *int64  `json:"cvSizeBytes"`
}

// Saver is the artifact output port.
type Saver interface {
	Save(filename string, data []byte) error
}

var (
	// ErrInvalid signals the submit action was invoked while the form has
	// validation errors; the UI keeps the control disabled in that case.
	ErrInvalid = errors.New("submit: form is not valid")
)

// Handler runs submissions against a form manager.
type Handler struct {
	saver  Saver
	delay  time.Duration
	now    func() time.Time
	notify Notifier
}

// Option customises the handler configuration.
type Option func(*Handler)

// WithDelay overrides the artificial submission delay.
func WithDelay(d time.Duration) Option {
	return func(h *Handler) {
		if d >= 0 {
			h.delay = d
		}
	}
}

// WithClock injects the time source used for the submission timestamp.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithNotifier registers a sink for transient status notices.
func WithNotifier(notify Notifier) Option {
	return func(h *Handler) {
		h.notify = notify
	}
}

// New constructs a submission handler writing artifacts through the given
// saver.
func New(saver Saver, options ...Option) (*Handler, error) {
	if saver == nil {
		return nil, errors.New("submit: saver is required")
	}
	h := &Handler{
		saver: saver,
		delay: DefaultDelay,
		now:   time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h, nil
}

// Submit runs the Idle -> Submitting -> Success transition. It refuses when
// the form is invalid or a submission is already in flight. The delay is a
// single non-cancelable timed wait; ctx is checked on entry only.
func (h *Handler) Submit(ctx context.Context, m *form.Manager) (Summary, error) {
	if ctx == nil {
		return Summary{}, errors.New("submit: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	if m == nil {
		return Summary{}, errors.New("submit: form manager is required")
	}
	if !m.IsValid() {
		return Summary{}, ErrInvalid
	}
	if err := m.BeginSubmit(); err != nil {
		return Summary{}, err
	}

	h.emit(Notice{Kind: NoticeLoading, Message: "Submitting your details..."})
	time.Sleep(h.delay)

	values := m.Values()
	summary := BuildSummary(values, h.now())

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		m.EndSubmit(false)
		return Summary{}, fmt.Errorf("submit: encode summary: %w", err)
	}

	filename := Filename(values.FullName)
	if err := h.saver.Save(filename, data); err != nil {
		m.EndSubmit(false)
		return Summary{}, fmt.Errorf("submit: save artifact: %w", err)
	}

	m.EndSubmit(true)
	h.emit(Notice{Kind: NoticeSuccess, Message: fmt.Sprintf("Submission saved as %s", filename)})
	return summary, nil
}

// StateOf derives the handler-visible state from the manager flags.
func StateOf(m *form.Manager) State {
	switch {
	case m == nil:
		return StateIdle
	case m.IsSubmitting():
		return StateSubmitting
	case m.IsSubmitSuccessful():
		return StateSuccess
	default:
		return StateIdle
	}
}

// BuildSummary snapshots the values into the submission artifact. The
// linkedin field is nulled out when the opt-in flag is off, regardless of
// any leftover content.
func BuildSummary(values form.Values, at time.Time) Summary {
	summary := Summary{
		FullName:          values.FullName,
		Address:           values.Address,
		Phone:             values.Phone,
		Nationality:       values.Nationality,
		PreferredLanguage: values.PreferredLanguage,
		SubmittedAt:       at.UTC().Format(time.RFC3339),
	}
	if values.LinkedinOptIn {
		linkedin := values.Linkedin
		summary.Linkedin = &linkedin
	}
	if values.CV != nil {
		name := values.CV.Name
		size := values.CV.SizeBytes
		summary.CVName = &name
		summary.CVSizeBytes = &size
	}
	return summary
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename derives the artifact name from the full name, with whitespace
// runs replaced by underscores.
func Filename(fullName string) string {
	base := whitespaceRun.ReplaceAllString(strings.TrimSpace(fullName), "_")
	return base + "_submission.json"
}

func (h *Handler) emit(n Notice) {
	if h.notify != nil {
		h.notify(n)
	}
}
