package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the fixed session lifetime. Tokens are not refreshed; an expired
// token is treated exactly like a missing one at the gate.
const TTL = time.Hour

func Sign(userID uint, role string, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(TTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func Parse(raw string, secret []byte) (uint, string, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return 0, "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", fmt.Errorf("cannot parse claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("token missing sub claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return 0, "", fmt.Errorf("token missing role claim")
	}

	return uint(sub), role, nil
}
