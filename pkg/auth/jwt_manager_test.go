package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/campuslink-backend/pkg/auth"
)

func TestGenerateAndVerify(t *testing.T) {
	mgr := auth.NewJWTManager("test-secret", time.Hour)

	token, err := mgr.Generate("user-123")
	require.NoError(t, err)

	claims, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)

	expiry, err := mgr.Expiry(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := auth.NewJWTManager("secret-a", time.Hour).Generate("user-123")
	require.NoError(t, err)

	_, err = auth.NewJWTManager("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	token, err := auth.NewJWTManager("secret", -time.Minute).Generate("user-123")
	require.NoError(t, err)

	_, err = auth.NewJWTManager("secret", -time.Minute).Verify(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/", nil)

	_, err := auth.ExtractTokenFromHeader(r)
	assert.Error(t, err)

	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, err := auth.ExtractTokenFromHeader(r)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	r.Header.Set("Authorization", "Basic dXNlcg==")
	_, err = auth.ExtractTokenFromHeader(r)
	assert.Error(t, err)
}
