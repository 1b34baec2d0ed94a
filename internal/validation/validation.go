// Package validation holds the form schemas shared by the wizard and the
// submission endpoint. All functions are pure: they inspect a Draft and
// report every violation, so the same checks can run field-by-field for live
// feedback and as a whole for submission gating.
package validation

import (
	"regexp"
	"strings"
)

// MaxPhotoBytes is the upper bound for an uploaded car photo. The bound is
// inclusive: a photo of exactly this size is accepted.
const MaxPhotoBytes = 10 * 1024 * 1024

// FieldCarDetails is the synthetic field name used for the cross-field rule
// "provide car name and color, or upload a photo". The violation belongs to
// the step, not to any single input.
const FieldCarDetails = "carDetails"

var (
	nameRegex  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneRegex = regexp.MustCompile(`^[\+]?[\d\s\-\(\)]+$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// FieldError names the offending field and carries a human-readable message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects every violation found in a draft.
type Result struct {
	Errors []FieldError
}

// Valid reports whether the draft passed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// ErrorFor returns the message for a field, or "" if the field passed.
func (r Result) ErrorFor(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

func (r *Result) add(fe *FieldError) {
	if fe != nil {
		r.Errors = append(r.Errors, *fe)
	}
}

// PhotoInfo describes an uploaded file for validation purposes.
type PhotoInfo struct {
	Name string
	Size int64
	Type string // MIME type as reported by the upload
}

// Draft is a partial or complete form submission.
type Draft struct {
	CarName     string
	CarColor    string
	CarPhoto    *PhotoInfo
	CustomBase  bool
	AcrylicCase bool
	Name        string
	Phone       string
	Email       string
}

// HasManualCarDetails reports whether the manual input path is satisfied:
// both car name and color present with trimmed length of at least 2.
func (d Draft) HasManualCarDetails() bool {
	return len(strings.TrimSpace(d.CarName)) >= 2 && len(strings.TrimSpace(d.CarColor)) >= 2
}

// ValidateCarName checks a single manual-path field for live feedback.
func ValidateCarName(value string) *FieldError {
	return validateCarField("carName", "Car name", value)
}

// ValidateCarColor checks a single manual-path field for live feedback.
func ValidateCarColor(value string) *FieldError {
	return validateCarField("carColor", "Car color", value)
}

func validateCarField(field, label, value string) *FieldError {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return &FieldError{Field: field, Message: label + " is required"}
	}
	if len(trimmed) < 2 {
		return &FieldError{Field: field, Message: label + " must be at least 2 characters"}
	}
	if len(trimmed) > 50 {
		return &FieldError{Field: field, Message: label + " must be less than 50 characters"}
	}
	return nil
}

// ValidateCarPhoto checks the uploaded file's size and MIME type. A non-image
// type is rejected regardless of size.
func ValidateCarPhoto(photo PhotoInfo) *FieldError {
	if photo.Size > MaxPhotoBytes {
		return &FieldError{Field: "carPhoto", Message: "File size must be less than 10MB"}
	}
	if !strings.HasPrefix(photo.Type, "image/") {
		return &FieldError{Field: "carPhoto", Message: "File must be an image"}
	}
	return nil
}

// ValidateName checks the contact name: 2-50 characters, letters and
// whitespace only.
func ValidateName(value string) *FieldError {
	if len(value) < 2 {
		return &FieldError{Field: "name", Message: "Name must be at least 2 characters"}
	}
	if len(value) > 50 {
		return &FieldError{Field: "name", Message: "Name must be less than 50 characters"}
	}
	if !nameRegex.MatchString(value) {
		return &FieldError{Field: "name", Message: "Name can only contain letters and spaces"}
	}
	return nil
}

// ValidatePhone checks the phone number format. This is a character-set
// check, not a real phone-number parse.
func ValidatePhone(value string) *FieldError {
	if len(value) < 10 {
		return &FieldError{Field: "phone", Message: "Phone number must be at least 10 digits"}
	}
	if !phoneRegex.MatchString(value) {
		return &FieldError{Field: "phone", Message: "Please enter a valid phone number"}
	}
	return nil
}

// ValidateEmail checks for a syntactically valid email of 5-100 characters.
func ValidateEmail(value string) *FieldError {
	if !emailRegex.MatchString(value) {
		return &FieldError{Field: "email", Message: "Please enter a valid email address"}
	}
	if len(value) < 5 {
		return &FieldError{Field: "email", Message: "Email must be at least 5 characters"}
	}
	if len(value) > 100 {
		return &FieldError{Field: "email", Message: "Email must be less than 100 characters"}
	}
	return nil
}

// ValidateCarDetails checks the first wizard step. Valid iff the manual pair
// is complete or a (valid) photo is attached; the cross-field violation is
// tagged with the synthetic carDetails field.
func ValidateCarDetails(d Draft) Result {
	var res Result
	if d.CarPhoto != nil {
		res.add(ValidateCarPhoto(*d.CarPhoto))
	}
	if !d.HasManualCarDetails() && d.CarPhoto == nil {
		res.add(&FieldError{
			Field:   FieldCarDetails,
			Message: "Either provide car name and color, or upload a photo",
		})
	}
	return res
}

// ValidateContact checks the second wizard step, reporting every violated
// field rather than stopping at the first.
func ValidateContact(d Draft) Result {
	var res Result
	res.add(ValidateName(d.Name))
	res.add(ValidatePhone(d.Phone))
	res.add(ValidateEmail(d.Email))
	return res
}

// ValidateComplete is the union of both schemas, used server-side to gate
// persistence.
func ValidateComplete(d Draft) Result {
	res := ValidateCarDetails(d)
	res.Errors = append(res.Errors, ValidateContact(d).Errors...)
	return res
}
