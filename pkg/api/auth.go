package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
)

var (
	errMissingToken = errors.New("missing authorization header")
	errInvalidToken = errors.New("invalid authorization token")
)

// TokenAuth compares the literal Authorization header with token.
// No scheme prefix is expected or stripped.
func TokenAuth(token string) AuthFunc {
	want := []byte(token)
	return func(r *http.Request) error {
		got := r.Header.Get("Authorization")
		if got == "" {
			return errMissingToken
		}
		if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			return errInvalidToken
		}
		return nil
	}
}
