package builder

import (
	"fmt"
	"regexp"
	"strings"
)

// Field validation mirrors the client's rule table: rules are declared per
// field, run on change and on submit, and block the owning transition while
// any rule is unsatisfied. Only the first failing rule per field is reported.

var (
	EmailPattern    = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	URLPattern      = regexp.MustCompile(`^https?://.+`)
	PhonePattern    = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	NamePattern     = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// FieldErrors maps field name to the message of its first failing rule.
// An empty map means the checked fields are all valid.
type FieldErrors map[string]string

func (fe FieldErrors) Ok() bool { return len(fe) == 0 }

type Rule struct {
	Required  bool
	Pattern   *regexp.Regexp
	MinLength int
	MaxLength int
	Message   string
	Check     func(value string) string
}

func (r Rule) apply(field, value string) string {
	if r.Required && strings.TrimSpace(value) == "" {
		if r.Message != "" {
			return r.Message
		}
		return fmt.Sprintf("%s is required", field)
	}
	if value == "" {
		return ""
	}
	if r.MinLength > 0 && len(value) < r.MinLength {
		if r.Message != "" {
			return r.Message
		}
		return fmt.Sprintf("%s must be at least %d characters", field, r.MinLength)
	}
	if r.MaxLength > 0 && len(value) > r.MaxLength {
		if r.Message != "" {
			return r.Message
		}
		return fmt.Sprintf("%s must be less than %d characters", field, r.MaxLength)
	}
	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		if r.Message != "" {
			return r.Message
		}
		return fmt.Sprintf("%s has an invalid format", field)
	}
	if r.Check != nil {
		return r.Check(value)
	}
	return ""
}

// Schema declares the rules of a form slice, keyed by field name.
type Schema map[string][]Rule

// Validate runs every field's rules against the supplied values. Fields
// absent from the schema are ignored; fields absent from values are treated
// as empty, so required rules still fire.
func (s Schema) Validate(values map[string]string) FieldErrors {
	errs := FieldErrors{}
	for field, rules := range s {
		value := values[field]
		for _, rule := range rules {
			if msg := rule.apply(field, value); msg != "" {
				errs[field] = msg
				break
			}
		}
	}
	return errs
}

// ValidateField runs one field's rules, for live per-keystroke checks.
func (s Schema) ValidateField(field, value string) string {
	for _, rule := range s[field] {
		if msg := rule.apply(field, value); msg != "" {
			return msg
		}
	}
	return ""
}
