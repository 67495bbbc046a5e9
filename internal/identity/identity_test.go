package identity

import (
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(username string) Claims {
	now := time.Now()
	return Claims{
		UserID:   7,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "wirechat",
			Audience:  jwt.ClaimStrings{"wirechat-clients"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestResolveFromVerifiedToken(t *testing.T) {
	token := signToken(t, "s3cret", validClaims("alice"))

	id, err := Resolve(Options{Token: token, Secret: "s3cret", Issuer: "wirechat", Audience: "wirechat-clients", Username: "ignored"})
	require.NoError(t, err)
	require.Equal(t, "alice", id.Username)
	require.Equal(t, token, id.Token)
	require.False(t, id.Guest)
}

func TestResolveRejectsBadSignature(t *testing.T) {
	token := signToken(t, "s3cret", validClaims("alice"))

	_, err := Resolve(Options{Token: token, Secret: "other"})
	require.Error(t, err)
}

func TestResolveRejectsWrongAudience(t *testing.T) {
	token := signToken(t, "s3cret", validClaims("alice"))

	_, err := Resolve(Options{Token: token, Secret: "s3cret", Audience: "someone-else"})
	require.Error(t, err)
}

func TestResolveUnverifiedToken(t *testing.T) {
	token := signToken(t, "server-only", validClaims("bob"))

	id, err := Resolve(Options{Token: token})
	require.NoError(t, err)
	require.Equal(t, "bob", id.Username)
}

func TestResolveTokenWithoutUsername(t *testing.T) {
	token := signToken(t, "s3cret", validClaims(""))

	_, err := Resolve(Options{Token: token, Secret: "s3cret"})
	require.ErrorIs(t, err, ErrNoUsername)
}

func TestResolveGarbageToken(t *testing.T) {
	_, err := Resolve(Options{Token: "not-a-jwt"})
	require.Error(t, err)
}

func TestResolveConfiguredUsername(t *testing.T) {
	id, err := Resolve(Options{Username: "  carol "})
	require.NoError(t, err)
	require.Equal(t, Identity{Username: "carol"}, id)
}

func TestResolveGuest(t *testing.T) {
	id, err := Resolve(Options{})
	require.NoError(t, err)
	require.True(t, id.Guest)
	require.Regexp(t, regexp.MustCompile(`^Guest\d{4}[1-9]\d{3}$`), id.Username)
}

func TestGuestName(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 5, 0, 0, time.UTC)
	require.Equal(t, "Guest09051234", GuestName(now, 1234))
}
