package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// tokenExpiry reads the exp claim without verifying the signature; the API
// remains the judge of validity. ok is false when the token carries no exp.
func tokenExpiry(token string) (exp time.Time, ok bool, err error) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return time.Time{}, false, fmt.Errorf("tokenExpiry: error parsing token: %w", err)
	}
	switch v := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(v), 0), true, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return time.Time{}, false, fmt.Errorf("tokenExpiry: invalid exp claim: %w", err)
		}
		return time.Unix(n, 0), true, nil
	}
	return time.Time{}, false, nil
}

func tokenSubject(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
