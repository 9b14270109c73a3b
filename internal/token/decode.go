// Package token extracts claims from bearer tokens for UI decisions.
// Signatures are never verified here; the API server remains the only
// authority on what a token grants.
package token

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Tokebay/shorty/internal/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	errSegments = errors.New("token has no payload segment")
	errEncoding = errors.New("payload is not valid UTF-8")
	errNotJSON  = errors.New("payload is not a JSON object")
)

// Claims are the decoded payload of a token.
type Claims jwt.MapClaims

// Role returns the role claim, or "" when it is missing or not a string.
func (c Claims) Role() string {
	role, _ := c["role"].(string)
	return role
}

func (c Claims) IsAdmin() bool {
	return c.Role() == RoleAdmin
}

// standard base64 characters are folded into the URL alphabet
var alphabet = strings.NewReplacer("+", "-", "/", "_")

var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode returns the claims carried by raw, or false when raw is not a
// decodable token.
func Decode(raw string) (Claims, bool) {
	claims, err := decode(raw)
	if err != nil {
		logger.Log.Warn("Invalid token", zap.Error(err))
		return nil, false
	}
	return claims, true
}

func decode(raw string) (Claims, error) {
	segments := strings.Split(raw, ".")
	if len(segments) < 2 {
		return nil, errSegments
	}

	payload, err := parser.DecodeSegment(alphabet.Replace(segments[1]))
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(payload) {
		return nil, errEncoding
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, err
	}
	// "null" unmarshals into a nil map without error
	if claims == nil {
		return nil, errNotJSON
	}
	return claims, nil
}
