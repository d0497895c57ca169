package middleware

import (
	"net/http"
	"strings"

	"collab-relay-backend/internal/env"
	"collab-relay-backend/internal/identity"
)

// ValidateCollabToken gates the snapshot API on the same signed collaborator
// tokens the relay accepts at join time.
func ValidateCollabToken(secret string) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get("Authorization")
			if !strings.HasPrefix(tokenString, "Bearer ") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			tokenString = strings.TrimPrefix(tokenString, "Bearer ")

			if _, err := identity.ParseToken(tokenString, secret); err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next(w, r)
		}
	}
}

// ValidateCollab reads the shared secret from the environment at request
// time, so route tables can reference it as a value.
var ValidateCollab = func(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ValidateCollabToken(env.Get(env.CollabSecretKey))(next)(w, r)
	}
}
