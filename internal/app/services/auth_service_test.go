package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tailorwise/tailorwise/internal/pkg/apperrors"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Admin123!", false},
		{"valid minimal", "abcdefg1", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too short", "abc1234", true},
		{"no letter", "12345678", true},
		{"no digit", "abcdefgh", true},
		{"unicode letters count", "pässwörd1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
