// Package session persists the single bearer credential the client holds
// for an API origin.
package session

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

var (
	ErrNoCredential = errors.New("no credential stored")
	ErrEmptyToken   = errors.New("empty token")
)

// Store holds at most one token. Get returns ErrNoCredential when nothing
// is stored.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Origin reduces an API base URL to scheme://host[:port], the scope a
// credential is stored under.
func Origin(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("url has no scheme or host: " + rawURL)
	}
	return strings.ToLower(u.Scheme + "://" + u.Host), nil
}
