package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
)

// Collaborator is the identity a client presents when joining a document
// room. Tokens are minted by the web application backend after its own
// session check; the relay only verifies and decodes them.
type Collaborator struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// DisplayLabel is the short label shown next to a remote cursor. Falls back
// to the local part of the email when no explicit name was set.
func (c Collaborator) DisplayLabel() string {
	if c.Name != "" {
		return c.Name
	}
	if at := strings.Index(c.Email, "@"); at > 0 {
		return c.Email[:at]
	}
	return c.ID
}

func CreateToken(c Collaborator, secret string, validUntil int64) (string, error) {
	if c.ID == "" {
		return "", fmt.Errorf("collaborator id is required")
	}

	if validUntil == 0 {
		validUntil = time.Now().Add(time.Minute * 15).Unix()
	}

	claims := jwt.MapClaims{
		"id":        c.ID,
		"email":     c.Email,
		"name":      c.Name,
		"avatarUrl": c.AvatarURL,
		"exp":       validUntil,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(tokenString, secret string) (Collaborator, error) {
	if len(tokenString) == 0 {
		return Collaborator{}, fmt.Errorf("token string is empty")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Collaborator{}, fmt.Errorf("unauthorized: %v", err)
	}
	if !token.Valid {
		return Collaborator{}, fmt.Errorf("token is not valid - unauthorized")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Collaborator{}, fmt.Errorf("claims of unauthorized type")
	}

	collaborator := Collaborator{
		ID:        stringClaim(claims, "id"),
		Email:     stringClaim(claims, "email"),
		Name:      stringClaim(claims, "name"),
		AvatarURL: stringClaim(claims, "avatarUrl"),
	}
	if collaborator.ID == "" {
		return Collaborator{}, fmt.Errorf("token has no collaborator id")
	}

	return collaborator, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
