// Package tui renders the candidate details form as an interactive terminal
// session. All interaction goes through the PromptDriver port; the default
// driver is backed by survey. Every answered prompt counts as a field change:
// the manager re-validates and the autosave bridge persists on each one.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-candidateform/pkg/autosave"
	"github.com/goliatone/go-candidateform/pkg/catalog"
	"github.com/goliatone/go-candidateform/pkg/form"
	"github.com/goliatone/go-candidateform/pkg/submit"
)

// StatFunc inspects a file path and reports name and size. Only metadata is
// read; the file content is never opened.
type StatFunc func(path string) (form.FileRef, error)

func osStat(path string) (form.FileRef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return form.FileRef{}, err
	}
	if info.IsDir() {
		return form.FileRef{}, fmt.Errorf("%s is a directory", path)
	}
	return form.FileRef{Name: filepath.Base(info.Name()), SizeBytes: info.Size()}, nil
}

var fieldLabels = map[string]string{
	form.FieldFullName:          "Full name",
	form.FieldAddress:           "Address",
	form.FieldPhone:             "Phone number",
	form.FieldNationality:       "Nationality",
	form.FieldLinkedinOptIn:     "Share your LinkedIn profile?",
	form.FieldLinkedin:          "LinkedIn URL",
	form.FieldPreferredLanguage: "Preferred language",
	form.FieldCV:                "CV file",
}

const (
	menuSubmit = "Submit"
	menuCopy   = "Copy autosave"
	menuEdit   = "Edit a field"
	menuQuit   = "Quit without submitting"
)

// Session drives a complete fill-review-submit interaction for one form.
type Session struct {
	driver  PromptDriver
	manager *form.Manager
	bridge  *autosave.Bridge
	handler *submit.Handler
	catalog *catalog.Catalog
	clip    autosave.Clipboard
	stat    StatFunc
}

// Option customises the session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithBridge attaches an autosave bridge; without one the session runs
// without persistence.
func WithBridge(bridge *autosave.Bridge) Option {
	return func(s *Session) {
		s.bridge = bridge
	}
}

// WithCatalog overrides the enumerated option sets shown in select prompts.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Session) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithClipboard overrides the clipboard used by the copy-autosave action.
func WithClipboard(clip autosave.Clipboard) Option {
	return func(s *Session) {
		if clip != nil {
			s.clip = clip
		}
	}
}

// WithStatFunc overrides how CV paths are inspected, mainly for tests.
func WithStatFunc(stat StatFunc) Option {
	return func(s *Session) {
		if stat != nil {
			s.stat = stat
		}
	}
}

// New constructs a terminal session over the given manager and submission
// handler. Defaults: survey driver, embedded catalog, system clipboard.
func New(manager *form.Manager, handler *submit.Handler, options ...Option) (*Session, error) {
	if manager == nil {
		return nil, errors.New("tui: form manager is required")
	}
	if handler == nil {
		return nil, errors.New("tui: submit handler is required")
	}

	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}

	s := &Session{
		driver:  driver,
		manager: manager,
		handler: handler,
		clip:    autosave.SystemClipboard(),
		stat:    osStat,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		s.catalog = c
	}
	return s, nil
}

// Run rehydrates autosaved state, prompts every field in order, then loops a
// review menu until the form is submitted or abandoned.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.bridge != nil {
		s.bridge.Attach(s.manager)
	}

	for _, field := range fieldOrder() {
		if err := s.promptField(ctx, field); err != nil {
			return err
		}
	}
	return s.menuLoop(ctx)
}

func fieldOrder() []string {
	return []string{
		form.FieldFullName,
		form.FieldAddress,
		form.FieldPhone,
		form.FieldNationality,
		form.FieldLinkedinOptIn,
		form.FieldPreferredLanguage,
		form.FieldCV,
	}
}

func (s *Session) promptField(ctx context.Context, field string) error {
	switch field {
	case form.FieldFullName:
		return s.promptText(ctx, field, func(v string) { s.manager.SetFullName(v) }, s.manager.Values().FullName)
	case form.FieldAddress:
		return s.promptText(ctx, field, func(v string) { s.manager.SetAddress(v) }, s.manager.Values().Address)
	case form.FieldPhone:
		return s.promptText(ctx, field, func(v string) { s.manager.SetPhone(v) }, s.manager.Values().Phone)
	case form.FieldNationality:
		return s.promptEnum(ctx, field, s.catalog.Nationalities,
			func(v string) { s.manager.SetNationality(v) }, s.manager.Values().Nationality)
	case form.FieldLinkedinOptIn:
		return s.promptOptIn(ctx)
	case form.FieldLinkedin:
		return s.promptText(ctx, field, func(v string) { s.manager.SetLinkedin(v) }, s.manager.Values().Linkedin)
	case form.FieldPreferredLanguage:
		return s.promptEnum(ctx, field, s.catalog.Languages,
			func(v string) { s.manager.SetPreferredLanguage(v) }, s.manager.Values().PreferredLanguage)
	case form.FieldCV:
		return s.promptCV(ctx)
	default:
		return fmt.Errorf("tui: unknown field %q", field)
	}
}

// promptText records the answer even when it fails validation, mirroring a
// browser field that keeps invalid content and shows the error inline. The
// review menu keeps submission blocked until the field is corrected.
func (s *Session) promptText(ctx context.Context, field string, set func(string), current string) error {
	label := fieldLabels[field]
	resp, err := s.driver.Input(ctx, InputConfig{Message: label, Default: current})
	if err != nil {
		return err
	}
	set(resp)
	if fe, hasErr := s.manager.ErrorFor(field); hasErr {
		return s.driver.Info(ctx, fmt.Sprintf("%s: %s", label, fe.Message))
	}
	return nil
}

func (s *Session) promptEnum(ctx context.Context, field string, options []string, set func(string), current string) error {
	label := fieldLabels[field]
	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: indexOf(options, current),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: invalid selection", label)); err != nil {
				return err
			}
			continue
		}
		set(options[idx])
		if fe, hasErr := s.manager.ErrorFor(field); hasErr {
			return s.driver.Info(ctx, fmt.Sprintf("%s: %s", label, fe.Message))
		}
		return nil
	}
}

// promptOptIn toggles the flag and, when set, immediately collects the URL.
// Turning the flag off leaves any previous URL in place but unconstrained.
func (s *Session) promptOptIn(ctx context.Context) error {
	optIn, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: fieldLabels[form.FieldLinkedinOptIn],
		Default: s.manager.Values().LinkedinOptIn,
	})
	if err != nil {
		return err
	}
	s.manager.SetLinkedinOptIn(optIn)
	if !optIn {
		return nil
	}
	return s.promptField(ctx, form.FieldLinkedin)
}

// promptCV inspects the path for name and size only. A path that cannot be
// inspected leaves the selection unset; an oversized file is recorded with
// its TooLarge error shown inline, like any other invalid field.
func (s *Session) promptCV(ctx context.Context) error {
	label := fieldLabels[form.FieldCV]
	path, err := s.driver.Input(ctx, InputConfig{
		Message: label,
		Help:    "Path to the file; only its name and size are recorded",
	})
	if err != nil {
		return err
	}
	ref, statErr := s.stat(path)
	if statErr != nil {
		return s.driver.Info(ctx, fmt.Sprintf("%s: %v", label, statErr))
	}
	s.manager.SetCV(&ref)
	if fe, hasErr := s.manager.ErrorFor(form.FieldCV); hasErr {
		return s.driver.Info(ctx, fmt.Sprintf("%s: %s", label, fe.Message))
	}
	return nil
}

func (s *Session) menuLoop(ctx context.Context) error {
	menu := []string{menuSubmit, menuCopy, menuEdit, menuQuit}
	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      "What next?",
			Options:      menu,
			DefaultIndex: 0,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(menu) {
			continue
		}

		switch menu[idx] {
		case menuSubmit:
			done, err := s.trySubmit(ctx)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		case menuCopy:
			if err := s.copyAutosave(ctx); err != nil {
				return err
			}
		case menuEdit:
			if err := s.editField(ctx); err != nil {
				return err
			}
		case menuQuit:
			return nil
		}
	}
}

// trySubmit enforces the disabled-while-invalid rule: an invalid form lists
// its errors and returns to the menu instead of submitting.
func (s *Session) trySubmit(ctx context.Context) (bool, error) {
	if !s.manager.IsValid() {
		if err := s.driver.Info(ctx, "Submit is disabled while the form has errors:"); err != nil {
			return false, err
		}
		if err := s.reportErrors(ctx); err != nil {
			return false, err
		}
		return false, nil
	}

	summary, err := s.handler.Submit(ctx, s.manager)
	if err != nil {
		if errors.Is(err, submit.ErrInvalid) || errors.Is(err, form.ErrSubmitInFlight) {
			return false, s.driver.Info(ctx, fmt.Sprintf("Submit refused: %v", err))
		}
		return false, err
	}

	return true, s.driver.Info(ctx, fmt.Sprintf("Submission saved as %s", submit.Filename(summary.FullName)))
}

func (s *Session) reportErrors(ctx context.Context) error {
	fields := append(fieldOrder(), form.FieldLinkedin)
	for _, field := range fields {
		fe, ok := s.manager.ErrorFor(field)
		if !ok {
			continue
		}
		if err := s.driver.Info(ctx, fmt.Sprintf("  - %s: %s", fieldLabels[field], fe.Message)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) copyAutosave(ctx context.Context) error {
	if s.bridge == nil {
		return s.driver.Info(ctx, "Autosave is not enabled")
	}
	err := s.bridge.CopyTo(s.clip)
	switch {
	case errors.Is(err, autosave.ErrNothingSaved):
		return s.driver.Info(ctx, "Nothing saved yet")
	case err != nil:
		return s.driver.Info(ctx, fmt.Sprintf("Copy failed: %v", err))
	default:
		return s.driver.Info(ctx, "Autosave copied to clipboard")
	}
}

func (s *Session) editField(ctx context.Context) error {
	editable := fieldOrder()
	labels := make([]string, len(editable))
	for i, field := range editable {
		labels[i] = fieldLabels[field]
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message: "Which field?",
		Options: labels,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(editable) {
		return nil
	}
	return s.promptField(ctx, editable[idx])
}
