// Package identity resolves the username a session runs as. The name is read
// once at startup and never changes afterwards.
package identity

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoUsername is returned when a token carries no username claim.
var ErrNoUsername = errors.New("token has no username claim")

// Claims mirrors the claims the chat server puts into its tokens.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsGuest  bool   `json:"is_guest"`
	jwt.RegisteredClaims
}

// Options lists the sources an identity can come from, in priority order:
// Token, then Username, then a generated guest name.
type Options struct {
	Token    string
	Secret   string // when empty the token is decoded without verification
	Issuer   string
	Audience string
	Username string
}

// Identity is the resolved local user.
type Identity struct {
	Username string
	Token    string
	Guest    bool
}

// Resolve picks the identity for this session.
func Resolve(opts Options) (Identity, error) {
	if token := strings.TrimSpace(opts.Token); token != "" {
		claims, err := parseToken(token, opts)
		if err != nil {
			return Identity{}, err
		}
		if strings.TrimSpace(claims.Username) == "" {
			return Identity{}, ErrNoUsername
		}
		return Identity{Username: claims.Username, Token: token, Guest: claims.IsGuest}, nil
	}

	if name := strings.TrimSpace(opts.Username); name != "" {
		return Identity{Username: name}, nil
	}

	return Identity{Username: GuestName(time.Now(), rand.IntN(9000)+1000), Guest: true}, nil
}

// GuestName formats a guest username from the wall clock and a four-digit
// suffix, e.g. Guest14074821.
func GuestName(now time.Time, suffix int) string {
	return fmt.Sprintf("Guest%s%d", now.Format("1504"), suffix)
}

func parseToken(token string, opts Options) (*Claims, error) {
	var parserOpts []jwt.ParserOption
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}
	parser := jwt.NewParser(parserOpts...)

	claims := &Claims{}
	if opts.Secret == "" {
		// The server verifies the token on connect; we only need the name.
		if _, _, err := parser.ParseUnverified(token, claims); err != nil {
			return nil, fmt.Errorf("decode token: %w", err)
		}
		return claims, nil
	}

	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(opts.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
