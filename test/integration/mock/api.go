package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// ProviderCall is one request captured by ProviderMock.
type ProviderCall struct {
	Body   map[string]any
	Header http.Header
	Query  url.Values
}

type cannedResponse struct {
	status int
	body   any
}

// ProviderMock stands in for outbound HTTP providers such as the Resend email
// API. Routes are keyed by method and path; a path segment of "*" matches any
// segment. Unscripted routes answer 200 with an empty JSON object.
type ProviderMock struct {
	mu       sync.Mutex
	server   *httptest.Server
	calls    map[string][]ProviderCall
	defaults map[string]cannedResponse
	scripted map[string]map[int]cannedResponse
}

func NewProviderMock() *ProviderMock {
	return &ProviderMock{
		calls:    map[string][]ProviderCall{},
		defaults: map[string]cannedResponse{},
		scripted: map[string]map[int]cannedResponse{},
	}
}

// Start serves the mock on a random local port.
func (p *ProviderMock) Start() {
	p.server = httptest.NewServer(http.HandlerFunc(p.handle))
}

// Close stops the server.
func (p *ProviderMock) Close() {
	if p.server != nil {
		p.server.Close()
	}
}

func (p *ProviderMock) URL() string {
	return p.server.URL
}

// Respond sets the reply for every call to the route.
func (p *ProviderMock) Respond(method, path string, status int, body any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.defaults[method+" "+path] = cannedResponse{status: status, body: body}
}

// RespondTo sets the reply for the nth call (zero based) to the route only.
func (p *ProviderMock) RespondTo(n int, method, path string, status int, body any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := method + " " + path
	if p.scripted[key] == nil {
		p.scripted[key] = map[int]cannedResponse{}
	}
	p.scripted[key][n] = cannedResponse{status: status, body: body}
}

// Reset forgets captured calls and scripted replies for the route.
func (p *ProviderMock) Reset(method, path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := method + " " + path
	delete(p.calls, key)
	delete(p.defaults, key)
	delete(p.scripted, key)
}

// Calls returns the requests received on the route, oldest first.
func (p *ProviderMock) Calls(method, path string) []ProviderCall {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []ProviderCall
	for key, calls := range p.calls {
		if routeMatches(key, method+" "+path) {
			out = append(out, calls...)
		}
	}
	return out
}

func (p *ProviderMock) handle(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, _ := io.ReadAll(r.Body)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)

	key := r.Method + " " + r.URL.Path
	n := len(p.calls[key])
	p.calls[key] = append(p.calls[key], ProviderCall{
		Body:   body,
		Header: r.Header.Clone(),
		Query:  r.URL.Query(),
	})

	reply := p.replyFor(key, n)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.status)
	_ = json.NewEncoder(w).Encode(reply.body)
}

func (p *ProviderMock) replyFor(key string, n int) cannedResponse {
	for route, byIndex := range p.scripted {
		if reply, ok := byIndex[n]; ok && routeMatches(route, key) {
			return reply
		}
	}
	for route, reply := range p.defaults {
		if routeMatches(route, key) {
			return reply
		}
	}
	return cannedResponse{status: http.StatusOK, body: map[string]any{}}
}

// routeMatches compares "METHOD /a/b" keys segment by segment.
func routeMatches(pattern, key string) bool {
	if pattern == key {
		return true
	}
	patternParts := strings.Split(pattern, "/")
	keyParts := strings.Split(key, "/")
	if len(patternParts) != len(keyParts) || patternParts[0] != keyParts[0] {
		return false
	}
	for i := 1; i < len(patternParts); i++ {
		if patternParts[i] != "*" && keyParts[i] != "*" && patternParts[i] != keyParts[i] {
			return false
		}
	}
	return true
}
