package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailorwise/tailorwise/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "tailorwise.test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Username: "asiddiqui",
		RoleType: models.RoleStaff,
	}
}

func TestGenerateTokenPairRoundTrip(t *testing.T) {
	service := newTestService(time.Hour)

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := service.GenerateTokenPair(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)
	assert.Equal(t, int((24 * time.Hour).Seconds()), refreshExpiresIn)

	claims, err := service.ValidateAndExtractClaims(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "asiddiqui", claims.Username)
	assert.Equal(t, string(models.RoleStaff), claims.RoleType)
	assert.Equal(t, "tailorwise.test", claims.Issuer)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	service := newTestService(time.Hour)

	_, first, _, _, err := service.GenerateTokenPair(testUser())
	require.NoError(t, err)
	_, second, _, _, err := service.GenerateTokenPair(testUser())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateTokenExpired(t *testing.T) {
	service := newTestService(-time.Minute)

	accessToken, _, _, _, err := service.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = service.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	service := newTestService(time.Hour)
	accessToken, _, _, _, err := service.GenerateTokenPair(testUser())
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "a-different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "tailorwise.test",
	})

	_, err = other.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestValidateAndExtractClaimsEmptyToken(t *testing.T) {
	service := newTestService(time.Hour)

	_, err := service.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAndExtractClaimsRejectsBadUserID(t *testing.T) {
	service := newTestService(time.Hour)

	accessToken, _, _, _, err := service.GenerateTokenPair(&models.User{ID: 0, Username: "ghost"})
	require.NoError(t, err)

	_, err = service.ValidateAndExtractClaims(accessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"with bearer prefix", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"without prefix returned as-is", "abc.def.ghi", "abc.def.ghi", nil},
		{"empty header", "", "", ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ExtractBearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestGetRefreshTokenExpiry(t *testing.T) {
	service := newTestService(time.Hour)

	expiry := service.GetRefreshTokenExpiry()
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiry, 5*time.Second)
}
