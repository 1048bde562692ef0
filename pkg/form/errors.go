package form

// Code identifies a field-level validation failure. The taxonomy is closed:
// these are the only errors the form surfaces, they block submission, and
// they self-clear as the user corrects input.
type Code string

const (
	CodeRequired      Code = "Required"
	CodeInvalidFormat Code = "InvalidFormat"
	CodeInvalidURL    Code = "InvalidUrl"
	CodeWrongDomain   Code = "WrongDomain"
	CodeTooLarge      Code = "TooLarge"
)

// FieldError is a single validation failure attached to a named field.
type FieldError struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Errors maps field names to their current validation failure. A field with
// no entry is valid under the current snapshot.
type Errors map[string]FieldError

// Valid reports whether no field currently has an error.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// For returns the error attached to a field, if any.
func (e Errors) For(field string) (FieldError, bool) {
	fe, ok := e[field]
	return fe, ok
}

// CodeFor returns just the error code for a field, if any.
func (e Errors) CodeFor(field string) (Code, bool) {
	fe, ok := e[field]
	return fe.Code, ok
}
