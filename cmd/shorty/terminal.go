package main

import (
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/Tokebay/shorty/internal/view"
)

// terminal renders page output as text lines. It serves as header,
// feedback slot and navigator at once. Relative links are printed against
// base so they can be opened from the terminal.
type terminal struct {
	mu   sync.Mutex
	w    io.Writer
	base *url.URL
}

func (t *terminal) Show(r view.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if r.Link == nil {
		fmt.Fprintln(t.w, r.Text)
		return
	}
	fmt.Fprintf(t.w, "%s%s\n", r.Text, t.absolute(r.Link.Href))
}

func (t *terminal) absolute(href string) string {
	if t.base == nil {
		return href
	}
	u, err := url.Parse(href)
	if err != nil || u.IsAbs() {
		return href
	}
	return t.base.ResolveReference(u).String()
}

func (t *terminal) Navigate(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.w, "-> %s\n", path)
}

func (t *terminal) Render(nav view.Nav) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, item := range nav.Items {
		switch item.Kind {
		case view.KindLink:
			fmt.Fprintf(t.w, "%s\t%s\n", item.Label, item.Href)
		case view.KindAction:
			fmt.Fprintf(t.w, "%s\t[%s]\n", item.Label, item.ID)
		}
	}
}
