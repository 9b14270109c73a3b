package app

import (
	"context"
	"encoding/base64"
	"sync"

	"github.com/Tokebay/shorty/internal/gateway"
	"github.com/Tokebay/shorty/internal/view"
)

type fakeGateway struct {
	mu       sync.Mutex
	result   gateway.Result
	requests []gateway.Request
}

func (g *fakeGateway) Issue(_ context.Context, req gateway.Request) gateway.Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.requests = append(g.requests, req)
	return g.result
}

func (g *fakeGateway) last() gateway.Request {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.requests[len(g.requests)-1]
}

func ok(payload string) gateway.Result {
	return gateway.Result{StatusCode: 200, Payload: []byte(payload)}
}

func rejected(status int, msg string) gateway.Result {
	return gateway.Result{StatusCode: status, Failure: &gateway.Failure{
		Kind:       gateway.KindApplication,
		Message:    msg,
		StatusCode: status,
	}}
}

func unreachable(msg string) gateway.Result {
	return gateway.Result{Failure: &gateway.Failure{Kind: gateway.KindNetwork, Message: msg}}
}

type recordingNavigator struct {
	targets []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.targets = append(n.targets, path)
}

type recordingFeedback struct {
	mu      sync.Mutex
	results []view.Result
}

func (f *recordingFeedback) Show(r view.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.results = append(f.results, r)
}

func (f *recordingFeedback) last() view.Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.results) == 0 {
		return view.Result{}
	}
	return f.results[len(f.results)-1]
}

type recordingHeader struct {
	navs []view.Nav
}

func (h *recordingHeader) Render(nav view.Nav) {
	h.navs = append(h.navs, nav)
}

func tokenWithRole(role string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"role":"` + role + `","user_id":7}`))
	return "eyJhbGciOiJIUzI1NiJ9." + payload + ".sig"
}
