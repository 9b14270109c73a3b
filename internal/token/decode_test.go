package token

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9"

func makeToken(payload string) string {
	return header + "." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".c2ln"
}

func TestDecode_Role(t *testing.T) {
	tests := []struct {
		name  string
		token string
		role  string
	}{
		{name: "admin", token: makeToken(`{"role":"admin","user_id":1}`), role: "admin"},
		{name: "user", token: makeToken(`{"role":"user","email":"a@b.c"}`), role: "user"},
		{name: "no role", token: makeToken(`{"email":"a@b.c"}`), role: ""},
		{name: "role not a string", token: makeToken(`{"role":7}`), role: ""},
		{name: "two segments", token: header + "." + base64.RawURLEncoding.EncodeToString([]byte(`{"role":"admin"}`)), role: "admin"},
		{name: "padded", token: header + "." + base64.URLEncoding.EncodeToString([]byte(`{"role":"user"}`)) + ".x", role: "user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, ok := Decode(tt.token)
			require.True(t, ok)
			assert.Equal(t, tt.role, claims.Role())
		})
	}
}

func TestDecode_StandardAlphabet(t *testing.T) {
	// "?>" encodes to characters that differ between the two alphabets
	payload := `{"role":"admin","n":"?>?>"}`
	std := base64.StdEncoding.EncodeToString([]byte(payload))
	url := base64.URLEncoding.EncodeToString([]byte(payload))
	require.NotEqual(t, std, url)

	for _, seg := range []string{std, url} {
		claims, ok := Decode(header + "." + seg + ".sig")
		require.True(t, ok)
		assert.True(t, claims.IsAdmin())
		assert.Equal(t, "?>?>", claims["n"])
	}
}

func TestDecode_MultiByte(t *testing.T) {
	claims, ok := Decode(makeToken(`{"role":"user","name":"Ёжик 🦔 日本"}`))
	require.True(t, ok)
	assert.Equal(t, "Ёжик 🦔 日本", claims["name"])
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "single segment", token: "abcdef"},
		{name: "bad base64", token: header + ".!!!.sig"},
		{name: "bad json", token: makeToken(`{"role":`)},
		{name: "json array", token: makeToken(`["admin"]`)},
		{name: "json string", token: makeToken(`"admin"`)},
		{name: "json null", token: makeToken(`null`)},
		{name: "empty payload", token: header + "..sig"},
		{name: "invalid utf8", token: header + "." + base64.RawURLEncoding.EncodeToString([]byte{'{', '"', 0xff, '"', ':', '1', '}'}) + ".sig"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				claims, ok := Decode(tt.token)
				assert.False(t, ok)
				assert.Nil(t, claims)
			})
		})
	}
}
