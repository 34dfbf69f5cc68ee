package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Phone pattern - optional country code, 7 to 15 digits
	PhonePattern = `^\+?\d{7,15}$`

	// Registration number pattern, e.g. STU2025-014
	RegNoPattern = `^STU\d{4}-\d{3}$`

	// Certificate number pattern, e.g. CERT-20250815-0003
	CertificateNoPattern = `^CERT-\d{8}-\d{4}$`

	// Payroll month pattern, e.g. 2025-07
	MonthPattern = `^\d{4}-(0[1-9]|1[0-2])$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email         *regexp.Regexp
	Phone         *regexp.Regexp
	RegNo         *regexp.Regexp
	CertificateNo *regexp.Regexp
	Month         *regexp.Regexp
}{
	Email:         regexp.MustCompile(EmailPattern),
	Phone:         regexp.MustCompile(PhonePattern),
	RegNo:         regexp.MustCompile(RegNoPattern),
	CertificateNo: regexp.MustCompile(CertificateNoPattern),
	Month:         regexp.MustCompile(MonthPattern),
}

// IsValidPhone reports whether the value is a plausible phone number.
// Spaces and dashes are ignored before matching.
func IsValidPhone(value string) bool {
	cleaned := make([]byte, 0, len(value))
	for i := 0; i < len(value); i++ {
		if value[i] == ' ' || value[i] == '-' {
			continue
		}
		cleaned = append(cleaned, value[i])
	}
	return CompiledPatterns.Phone.Match(cleaned)
}

// IsValidMonth reports whether the value is a YYYY-MM month string
func IsValidMonth(value string) bool {
	return CompiledPatterns.Month.MatchString(value)
}

// StringValidation validates a string value against length and pattern rules
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}
