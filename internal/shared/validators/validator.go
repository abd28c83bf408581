package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// TagSafeRedirect rejects values carrying script or inline handler payloads.
const TagSafeRedirect = "safe_redirect"

// forbiddenRedirectPatterns are matched case-insensitively anywhere in the value.
var forbiddenRedirectPatterns = []string{
	"javascript:",
	"data:",
	"vbscript:",
	"<script",
	"onclick",
	"onerror",
}

// New creates a new validator instance with the custom tags registered.
func New() *Validate {
	v := validator.New()
	// RegisterValidation only fails on an empty tag or nil func.
	_ = v.RegisterValidation(TagSafeRedirect, isSafeRedirect)
	return v
}

func isSafeRedirect(fl validator.FieldLevel) bool {
	return ForbiddenPattern(fl.Field().String()) == ""
}

// ForbiddenPattern returns the first forbidden pattern found in s, or "".
func ForbiddenPattern(s string) string {
	lower := strings.ToLower(s)
	for _, p := range forbiddenRedirectPatterns {
		if strings.Contains(lower, p) {
			return p
		}
	}
	return ""
}
