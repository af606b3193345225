package identity

import (
	"sync"

	"github.com/golang-jwt/jwt"
	"github.com/mmahmood233/buy-01/internal/domain"
	"github.com/mmahmood233/buy-01/pkg/errs"
)

// CredentialProvider hands out the bearer token the gateways present
// to the backend services. The token itself is opaque to this service.
type CredentialProvider interface {
	Token() string
}

// FromToken verifies an HS256 token issued by the user service and
// extracts the signed-in principal from its claims.
func FromToken(tokenString string, jwtSecretKey string) (domain.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrNotLoggedIn
		}
		return []byte(jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return domain.Principal{}, errs.ErrNotLoggedIn
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Principal{}, errs.ErrNotLoggedIn
	}

	principal := domain.Principal{
		UserID: stringClaim(claims, "userId"),
		Name:   stringClaim(claims, "name"),
		Email:  stringClaim(claims, "email"),
		Role:   stringClaim(claims, "role"),
	}

	if principal.UserID == "" || principal.Role == "" {
		return domain.Principal{}, errs.ErrNotLoggedIn
	}

	return principal, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	value, ok := claims[key].(string)
	if !ok {
		return ""
	}
	return value
}

// StaticCredential is a CredentialProvider refreshed with the bearer
// of the latest authenticated request for a session.
type StaticCredential struct {
	mu    sync.Mutex
	token string
}

func NewStaticCredential(token string) *StaticCredential {
	return &StaticCredential{token: token}
}

func (c *StaticCredential) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *StaticCredential) Set(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}
