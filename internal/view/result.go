package view

import (
	"errors"
	"net/url"
	"strings"
)

var ErrUnsafeLink = errors.New("unsafe link")

// Link opens Href in a new tab. Text and Href are plain values; a renderer
// sets them as text and attribute, never as markup.
type Link struct {
	Href   string
	Text   string
	Target string
	Class  string
}

// Result is what a feedback slot shows: a message, optionally followed by
// a link.
type Result struct {
	Text string
	Link *Link
}

// HashLink builds the link for a short-link hash served from this origin.
func HashLink(hash string) (Link, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return Link{}, ErrUnsafeLink
	}
	return newLink("/" + url.PathEscape(hash)), nil
}

// URLLink builds the link for an absolute short URL returned by the API.
// Only http and https URLs and rooted paths are accepted.
func URLLink(raw string) (Link, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Link{}, ErrUnsafeLink
	}

	switch {
	case u.Scheme == "http" || u.Scheme == "https":
		if u.Host == "" {
			return Link{}, ErrUnsafeLink
		}
	case u.Scheme == "" && u.Host == "" && strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(u.Path, "//"):
	default:
		return Link{}, ErrUnsafeLink
	}
	return newLink(u.String()), nil
}

func newLink(href string) Link {
	return Link{
		Href:   href,
		Text:   href,
		Target: "_blank",
		Class:  "shorten-result_link",
	}
}
