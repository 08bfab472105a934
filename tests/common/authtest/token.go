//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"mindvale-server/internal/pkg/authtoken"
	"mindvale-server/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// IssueToken signs a bearer token the way the external auth provider does;
// the shared HS256 secret is the whole integration contract.
func IssueToken(t *testing.T, cfg config.AuthConfig, userID uuid.UUID, email string) string {
	t.Helper()

	claims := authtoken.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)
	return token
}
