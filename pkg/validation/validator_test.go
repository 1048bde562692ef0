package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-candidateform/pkg/form"
)

func validValues() form.Values {
	return form.Values{
		FullName:          "Jane Doe",
		Address:           "123 Main St",
		Phone:             "+1 555 555 5555",
		Nationality:       "Canada",
		LinkedinOptIn:     false,
		PreferredLanguage: "English",
		CV:                &form.FileRef{Name: "resume.pdf", SizeBytes: 1024},
	}
}

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func TestValidate_ValidSnapshot(t *testing.T) {
	v := newValidator(t)

	errs := v.Validate(validValues())
	if !errs.Valid() {
		t.Fatalf("expected valid snapshot, got errors: %v", errs)
	}
}

func TestValidate_FieldCodes(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name   string
		mutate func(*form.Values)
		field  string
		code   form.Code
	}{
		{
			name:   "empty full name",
			mutate: func(val *form.Values) { val.FullName = "" },
			field:  form.FieldFullName,
			code:   form.CodeRequired,
		},
		{
			name:   "blank full name",
			mutate: func(val *form.Values) { val.FullName = "   " },
			field:  form.FieldFullName,
			code:   form.CodeRequired,
		},
		{
			name:   "empty address",
			mutate: func(val *form.Values) { val.Address = "" },
			field:  form.FieldAddress,
			code:   form.CodeRequired,
		},
		{
			name:   "empty phone",
			mutate: func(val *form.Values) { val.Phone = "" },
			field:  form.FieldPhone,
			code:   form.CodeRequired,
		},
		{
			name:   "alphabetic phone",
			mutate: func(val *form.Values) { val.Phone = "call me maybe" },
			field:  form.FieldPhone,
			code:   form.CodeInvalidFormat,
		},
		{
			name:   "too few phone digits",
			mutate: func(val *form.Values) { val.Phone = "1234" },
			field:  form.FieldPhone,
			code:   form.CodeInvalidFormat,
		},
		{
			name:   "too many phone digits",
			mutate: func(val *form.Values) { val.Phone = "1234567890123456" },
			field:  form.FieldPhone,
			code:   form.CodeInvalidFormat,
		},
		{
			name:   "empty nationality",
			mutate: func(val *form.Values) { val.Nationality = "" },
			field:  form.FieldNationality,
			code:   form.CodeRequired,
		},
		{
			name:   "unknown nationality",
			mutate: func(val *form.Values) { val.Nationality = "Atlantis" },
			field:  form.FieldNationality,
			code:   form.CodeInvalidFormat,
		},
		{
			name:   "empty language",
			mutate: func(val *form.Values) { val.PreferredLanguage = "" },
			field:  form.FieldPreferredLanguage,
			code:   form.CodeRequired,
		},
		{
			name:   "unknown language",
			mutate: func(val *form.Values) { val.PreferredLanguage = "Klingon" },
			field:  form.FieldPreferredLanguage,
			code:   form.CodeInvalidFormat,
		},
		{
			name: "linkedin required when opted in",
			mutate: func(val *form.Values) {
				val.LinkedinOptIn = true
				val.Linkedin = ""
			},
			field: form.FieldLinkedin,
			code:  form.CodeRequired,
		},
		{
			name: "linkedin malformed url",
			mutate: func(val *form.Values) {
				val.LinkedinOptIn = true
				val.Linkedin = "not-a-url"
			},
			field: form.FieldLinkedin,
			code:  form.CodeInvalidURL,
		},
		{
			name: "linkedin wrong domain",
			mutate: func(val *form.Values) {
				val.LinkedinOptIn = true
				val.Linkedin = "https://example.com/jane"
			},
			field: form.FieldLinkedin,
			code:  form.CodeWrongDomain,
		},
		{
			name:   "missing cv",
			mutate: func(val *form.Values) { val.CV = nil },
			field:  form.FieldCV,
			code:   form.CodeRequired,
		},
		{
			name: "oversized cv",
			mutate: func(val *form.Values) {
				val.CV = &form.FileRef{Name: "resume.pdf", SizeBytes: form.MaxCVSizeBytes + 1}
			},
			field: form.FieldCV,
			code:  form.CodeTooLarge,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values := validValues()
			tc.mutate(&values)

			errs := v.Validate(values)
			code, ok := errs.CodeFor(tc.field)
			if !ok {
				t.Fatalf("expected error on %s, got %v", tc.field, errs)
			}
			if code != tc.code {
				t.Fatalf("expected %s on %s, got %s", tc.code, tc.field, code)
			}
		})
	}
}

func TestValidate_AcceptedVariants(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name   string
		mutate func(*form.Values)
	}{
		{
			name:   "parenthesized phone",
			mutate: func(val *form.Values) { val.Phone = "(555) 123-4567" },
		},
		{
			name:   "dotted phone",
			mutate: func(val *form.Values) { val.Phone = "555.123.4567" },
		},
		{
			name:   "bare digits phone",
			mutate: func(val *form.Values) { val.Phone = "12345" },
		},
		{
			name: "linkedin profile url",
			mutate: func(val *form.Values) {
				val.LinkedinOptIn = true
				val.Linkedin = "https://www.linkedin.com/in/jane-doe"
			},
		},
		{
			name: "linkedin garbage while opted out",
			mutate: func(val *form.Values) {
				val.LinkedinOptIn = false
				val.Linkedin = "complete nonsense"
			},
		},
		{
			name: "cv at exactly the size cap",
			mutate: func(val *form.Values) {
				val.CV = &form.FileRef{Name: "resume.pdf", SizeBytes: form.MaxCVSizeBytes}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values := validValues()
			tc.mutate(&values)

			if errs := v.Validate(values); !errs.Valid() {
				t.Fatalf("expected valid snapshot, got %v", errs)
			}
		})
	}
}

// Toggling the opt-in flag off must clear any linkedin error regardless of
// the field content.
func TestValidate_OptOutClearsLinkedinError(t *testing.T) {
	v := newValidator(t)

	values := validValues()
	values.LinkedinOptIn = true
	values.Linkedin = "not-a-url"

	errs := v.Validate(values)
	if code, ok := errs.CodeFor(form.FieldLinkedin); !ok || code != form.CodeInvalidURL {
		t.Fatalf("expected InvalidUrl while opted in, got %v", errs)
	}

	values.LinkedinOptIn = false
	errs = v.Validate(values)
	if _, ok := errs.CodeFor(form.FieldLinkedin); ok {
		t.Fatalf("expected linkedin error cleared after opt-out, got %v", errs)
	}
}

// The oversized-cv error is independent of the other fields.
func TestValidate_TooLargeIndependentOfOtherFields(t *testing.T) {
	v := newValidator(t)

	values := form.Values{
		CV: &form.FileRef{Name: "huge.pdf", SizeBytes: form.MaxCVSizeBytes + 1},
	}

	errs := v.Validate(values)
	code, ok := errs.CodeFor(form.FieldCV)
	if !ok || code != form.CodeTooLarge {
		t.Fatalf("expected TooLarge on cv, got %v", errs)
	}
}

func TestValidate_EmptySnapshot(t *testing.T) {
	v := newValidator(t)

	errs := v.Validate(form.Values{})

	want := map[string]form.Code{
		form.FieldFullName:          form.CodeRequired,
		form.FieldAddress:           form.CodeRequired,
		form.FieldPhone:             form.CodeRequired,
		form.FieldNationality:       form.CodeRequired,
		form.FieldPreferredLanguage: form.CodeRequired,
		form.FieldCV:                form.CodeRequired,
	}
	got := map[string]form.Code{}
	for field, fe := range errs {
		got[field] = fe.Code
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("error codes mismatch (-want +got):\n%s", diff)
	}
}
