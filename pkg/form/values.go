package form

// Canonical field names as they appear in error maps, autosave records, and
// the submission artifact.
const (
	FieldFullName          = "fullName"
	FieldAddress           = "address"
	FieldPhone             = "phone"
	FieldNationality       = "nationality"
	FieldLinkedinOptIn     = "linkedinOptIn"
	FieldLinkedin          = "linkedin"
	FieldPreferredLanguage = "preferredLanguage"
	FieldCV                = "cv"
)

// DefaultPreferredLanguage is applied when a fresh Values is created.
const DefaultPreferredLanguage = "English"

// MaxCVSizeBytes caps the selected CV file size (5 MiB).
const MaxCVSizeBytes int64 = 5242880

// WatchedFields lists, in display order, the fields mirrored to persistent
// storage. The CV is excluded: file selections are never serialized.
func WatchedFields() []string {
	return []string{
		FieldFullName,
		FieldAddress,
		FieldPhone,
		FieldNationality,
		FieldLinkedinOptIn,
		FieldLinkedin,
		FieldPreferredLanguage,
	}
}

// FileRef describes a selected file by name and size only. The file content
// is never read or transmitted.
type FileRef struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"sizeBytes"`
}

// Values is the single mutable entity behind the form. Validation tags follow
// the declarative schema: every rule is evaluated against the full current
// snapshot, so conditional required-ness (linkedin depends on linkedinOptIn)
// is expressed in the tag itself.
type Values struct {
	FullName          string   `form:"fullName" validate:"required"`
	Address           string   `form:"address" validate:"required"`
	Phone             string   `form:"phone" validate:"required,intlphone"`
	Nationality       string   `form:"nationality" validate:"required,catalog=nationality"`
	LinkedinOptIn     bool     `form:"linkedinOptIn"`
	Linkedin          string   `form:"linkedin" validate:"required_if=LinkedinOptIn true,linkedinurl,linkedindomain"`
	PreferredLanguage string   `form:"preferredLanguage" validate:"required,catalog=language"`
	CV                *FileRef `form:"cv" validate:"required,cvsize"`
}

// NewValues returns a fresh snapshot with defaults applied.
func NewValues() Values {
	return Values{PreferredLanguage: DefaultPreferredLanguage}
}

// Clone returns a deep copy so callers can hold a snapshot without sharing
// the FileRef pointer with the live form state.
func (v Values) Clone() Values {
	out := v
	if v.CV != nil {
		cv := *v.CV
		out.CV = &cv
	}
	return out
}
