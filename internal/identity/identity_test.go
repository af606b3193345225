package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/mmahmood233/buy-01/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestFromToken(t *testing.T) {
	tokenString := signToken(t, jwt.MapClaims{
		"userId": "u-42",
		"name":   "Jordan",
		"email":  "jordan@example.com",
		"role":   domain.RoleSeller,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	principal, err := FromToken(tokenString, testSecret)

	require.NoError(t, err)
	assert.Equal(t, "u-42", principal.UserID)
	assert.Equal(t, "Jordan", principal.Name)
	assert.Equal(t, "jordan@example.com", principal.Email)
	assert.True(t, principal.IsSeller())
}

func TestFromTokenClientRole(t *testing.T) {
	tokenString := signToken(t, jwt.MapClaims{
		"userId": "u-7",
		"role":   domain.RoleClient,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	principal, err := FromToken(tokenString, testSecret)

	require.NoError(t, err)
	assert.False(t, principal.IsSeller())
}

func TestFromTokenRejections(t *testing.T) {
	type TestCase struct {
		Name  string
		Token string
	}

	expired := signToken(t, jwt.MapClaims{
		"userId": "u-1",
		"role":   domain.RoleSeller,
		"exp":    time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	wrongSecret := signToken(t, jwt.MapClaims{
		"userId": "u-1",
		"role":   domain.RoleSeller,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}, "another-secret")

	missingClaims := signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	testCases := []TestCase{
		{Name: "garbage token", Token: "not-a-token"},
		{Name: "expired token", Token: expired},
		{Name: "wrong secret", Token: wrongSecret},
		{Name: "missing claims", Token: missingClaims},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := FromToken(tc.Token, testSecret)
			assert.Error(t, err)
		})
	}
}

func TestStaticCredential(t *testing.T) {
	cred := NewStaticCredential("first")
	assert.Equal(t, "first", cred.Token())

	cred.Set("second")
	assert.Equal(t, "second", cred.Token())
}
