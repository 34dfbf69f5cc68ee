package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"plain digits", "9820012345", true},
		{"with country code", "+919820012345", true},
		{"spaces stripped", "+91 98200 12345", true},
		{"dashes stripped", "982-001-2345", true},
		{"too short", "12345", false},
		{"too long", "1234567890123456", false},
		{"letters", "98200abc45", false},
		{"empty", "", false},
		{"plus only", "+", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidPhone(tt.value))
		})
	}
}

func TestIsValidMonth(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"2025-07", true},
		{"2025-01", true},
		{"2025-12", true},
		{"2025-00", false},
		{"2025-13", false},
		{"2025-7", false},
		{"25-07", false},
		{"2025/07", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidMonth(tt.value), "value %q", tt.value)
	}
}

func TestRegNoPattern(t *testing.T) {
	assert.True(t, CompiledPatterns.RegNo.MatchString("STU2025-014"))
	assert.True(t, CompiledPatterns.RegNo.MatchString("STU2026-999"))
	assert.False(t, CompiledPatterns.RegNo.MatchString("STU2025-14"))
	assert.False(t, CompiledPatterns.RegNo.MatchString("stu2025-014"))
	assert.False(t, CompiledPatterns.RegNo.MatchString("STU25-014"))
	assert.False(t, CompiledPatterns.RegNo.MatchString("STU2025-0140"))
}

func TestCertificateNoPattern(t *testing.T) {
	assert.True(t, CompiledPatterns.CertificateNo.MatchString("CERT-20250815-0003"))
	assert.False(t, CompiledPatterns.CertificateNo.MatchString("CERT-2025815-0003"))
	assert.False(t, CompiledPatterns.CertificateNo.MatchString("CERT-20250815-003"))
	assert.False(t, CompiledPatterns.CertificateNo.MatchString("cert-20250815-0003"))
}

func TestEmailPattern(t *testing.T) {
	assert.True(t, CompiledPatterns.Email.MatchString("ayesha@institute.example"))
	assert.True(t, CompiledPatterns.Email.MatchString("a.siddiqui+fees@tailorwise.local"))
	assert.False(t, CompiledPatterns.Email.MatchString("not-an-email"))
	assert.False(t, CompiledPatterns.Email.MatchString("missing@tld"))
}

func TestStringValidation(t *testing.T) {
	t.Run("required empty fails", func(t *testing.T) {
		assert.False(t, NewStringValidation("").Validate())
	})

	t.Run("optional empty passes", func(t *testing.T) {
		v := NewStringValidation("").WithRequired(false).WithMinLength(5)
		assert.True(t, v.Validate())
	})

	t.Run("min length", func(t *testing.T) {
		assert.False(t, NewStringValidation("ab").WithMinLength(3).Validate())
		assert.True(t, NewStringValidation("abc").WithMinLength(3).Validate())
	})

	t.Run("max length", func(t *testing.T) {
		assert.False(t, NewStringValidation("abcdef").WithMaxLength(5).Validate())
		assert.True(t, NewStringValidation("abcde").WithMaxLength(5).Validate())
	})

	t.Run("pattern", func(t *testing.T) {
		v := NewStringValidation("STU2025-014").WithPattern(CompiledPatterns.RegNo)
		assert.True(t, v.Validate())

		v = NewStringValidation("bogus").WithPattern(CompiledPatterns.RegNo)
		assert.False(t, v.Validate())
	})
}
