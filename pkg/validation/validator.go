// Package validation implements the field-level rules for the candidate
// details form on top of go-playground/validator. Rules are declared as tags
// on form.Values; the engine here registers the custom checks, runs the
// whole snapshot on every call, and translates tag failures into the closed
// error-code taxonomy the form surfaces inline.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-candidateform/pkg/catalog"
	"github.com/goliatone/go-candidateform/pkg/form"
)

// phonePattern accepts a permissive international number: optional leading
// plus, digits with parentheses, dots, dashes, or spaces as separators. The
// digit count is checked separately.
var phonePattern = regexp.MustCompile(`^\+?[0-9()][0-9()\-. ]*$`)

const (
	minPhoneDigits = 5
	maxPhoneDigits = 15
)

// Validator is a pure snapshot validator: it holds no form state and maps a
// form.Values to the per-field error set.
type Validator struct {
	engine  *validator.Validate
	catalog *catalog.Catalog
}

var _ form.Validator = (*Validator)(nil)

// Option customises the validator configuration.
type Option func(*Validator)

// WithCatalog overrides the enumerated option sets used for nationality and
// preferred language membership checks.
func WithCatalog(c *catalog.Catalog) Option {
	return func(v *Validator) {
		if c != nil {
			v.catalog = c
		}
	}
}

// New constructs a validator with the embedded catalog unless overridden.
func New(options ...Option) (*Validator, error) {
	v := &Validator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}

	if v.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		v.catalog = c
	}

	engine := validator.New(validator.WithRequiredStructEnabled())
	engine.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	customs := map[string]validator.Func{
		"intlphone":      validPhone,
		"linkedinurl":    linkedinURL,
		"linkedindomain": linkedinDomain,
		"catalog":        v.catalogMember,
		"cvsize":         cvSize,
	}
	for tag, fn := range customs {
		if err := engine.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("validation: register %s: %w", tag, err)
		}
	}

	v.engine = engine
	return v, nil
}

// Validate evaluates the full snapshot and returns the per-field errors.
// Fields validate independently; evaluation order does not matter.
func (v *Validator) Validate(values form.Values) form.Errors {
	out := form.Errors{}

	err := v.engine.Struct(normalized(values))
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out
	}

	for _, fe := range verrs {
		field := fe.Field()
		if _, exists := out[field]; exists {
			continue
		}
		code := codeForTag(fe.Tag())
		out[field] = form.FieldError{
			Field:   field,
			Code:    code,
			Message: messageFor(field, code),
		}
	}
	return out
}

// normalized trims text fields so blank input fails required checks; the
// caller's snapshot is a value copy and stays untouched.
func normalized(v form.Values) form.Values {
	v.FullName = strings.TrimSpace(v.FullName)
	v.Address = strings.TrimSpace(v.Address)
	v.Phone = strings.TrimSpace(v.Phone)
	v.Nationality = strings.TrimSpace(v.Nationality)
	v.Linkedin = strings.TrimSpace(v.Linkedin)
	v.PreferredLanguage = strings.TrimSpace(v.PreferredLanguage)
	return v
}

func codeForTag(tag string) form.Code {
	switch tag {
	case "required", "required_if":
		return form.CodeRequired
	case "linkedinurl":
		return form.CodeInvalidURL
	case "linkedindomain":
		return form.CodeWrongDomain
	case "cvsize":
		return form.CodeTooLarge
	default:
		return form.CodeInvalidFormat
	}
}

func messageFor(field string, code form.Code) string {
	switch code {
	case form.CodeRequired:
		return "This field is required"
	case form.CodeInvalidFormat:
		if field == form.FieldPhone {
			return "Enter a valid phone number"
		}
		return "Value is not one of the allowed options"
	case form.CodeInvalidURL:
		return "Enter a valid URL"
	case form.CodeWrongDomain:
		return "URL must point to linkedin.com"
	case form.CodeTooLarge:
		return "File exceeds the 5 MB limit"
	default:
		return "Invalid value"
	}
}

func validPhone(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return true
	}
	if !phonePattern.MatchString(raw) {
		return false
	}
	digits := 0
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits && digits <= maxPhoneDigits
}

// linkedinURL enforces well-formedness only while the opt-in flag is set;
// with the flag off the field is unconstrained regardless of content.
func linkedinURL(fl validator.FieldLevel) bool {
	if !parentOptIn(fl) {
		return true
	}
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func linkedinDomain(fl validator.FieldLevel) bool {
	if !parentOptIn(fl) {
		return true
	}
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return true
	}
	return strings.Contains(strings.ToLower(raw), "linkedin.com")
}

func parentOptIn(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}
	f := parent.FieldByName("LinkedinOptIn")
	return f.IsValid() && f.Kind() == reflect.Bool && f.Bool()
}

func (v *Validator) catalogMember(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	switch fl.Param() {
	case "nationality":
		return v.catalog.HasNationality(value)
	case "language":
		return v.catalog.HasLanguage(value)
	default:
		return false
	}
}

func cvSize(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	ref, ok := field.Interface().(form.FileRef)
	if !ok {
		return false
	}
	return ref.SizeBytes <= form.MaxCVSizeBytes
}
