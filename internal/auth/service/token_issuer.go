package service

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/modern-notepad/backend/internal/observability/metrics"
	userdomain "github.com/modern-notepad/backend/internal/user/domain"
)

// issueToken produces a stateless bearer token for the user. There is no
// server-side revocation list; the token stays valid until exp.
func (s *AuthService) issueToken(user userdomain.User) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub": string(user.ID),
		"usr": user.Username,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}

	metrics.TokensIssued.Inc()
	return tokenString, nil
}
