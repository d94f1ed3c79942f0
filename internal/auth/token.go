package auth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid jwt")
	ErrInvalidUserID = errors.New("invalid user ID")
)

// UserIDFromToken verifies an HS256 access token and returns its "id" claim.
// The claim may be a JSON string or number.
func UserIDFromToken(tokenString string, secret []byte) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	switch id := claims["id"].(type) {
	case string:
		v, err := strconv.ParseInt(id, 10, 64)
		if err != nil || v <= 0 {
			return 0, ErrInvalidUserID
		}
		return v, nil
	case float64:
		if id <= 0 || id != float64(int64(id)) {
			return 0, ErrInvalidUserID
		}
		return int64(id), nil
	}
	return 0, ErrInvalidToken
}

// NewToken signs an access token for userID. Tokens are normally issued by the
// auth service; this exists for local tooling and tests.
func NewToken(userID int64, secret []byte, claims jwt.MapClaims) (string, error) {
	all := jwt.MapClaims{"id": strconv.FormatInt(userID, 10)}
	for k, v := range claims {
		all[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, all).SignedString(secret)
}
