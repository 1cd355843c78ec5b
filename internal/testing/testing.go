// package testing contains shared testing utilities
package testing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// RoundTripFunc adapts a function to [http.RoundTripper]
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// RelayPage is a canned response served by [RelayServer] for one target URL.
type RelayPage struct {
	Status int // defaults to 200
	Body   string
}

// RelayServer is a fake relay keyed by target URL.
//
// Requests to /raw?url=<target> answer with the page body verbatim and requests to
// /get?url=<target> wrap it as {"contents": body}. Unknown targets get a 404.
type RelayServer struct {
	*httptest.Server

	mu       sync.Mutex
	pages    map[string]RelayPage
	requests []string
}

// NewRelayServer starts a relay that serves pages and closes it when the test ends.
func NewRelayServer(t *testing.T, pages map[string]RelayPage) *RelayServer {
	t.Helper()
	rs := &RelayServer{pages: pages}
	rs.Server = httptest.NewServer(http.HandlerFunc(rs.serve))
	t.Cleanup(rs.Close)
	return rs
}

// RawTemplate returns a raw relay template pointing at this server.
func (rs *RelayServer) RawTemplate() string {
	return rs.URL + "/raw?url={url}"
}

// JSONTemplate returns a json relay template pointing at this server.
func (rs *RelayServer) JSONTemplate() string {
	return rs.URL + "/get?url={url}"
}

// Requests returns the target URLs requested so far, in order.
func (rs *RelayServer) Requests() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]string(nil), rs.requests...)
}

func (rs *RelayServer) serve(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")

	rs.mu.Lock()
	rs.requests = append(rs.requests, target)
	page, ok := rs.pages[target]
	rs.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if page.Status != 0 && page.Status != http.StatusOK {
		w.WriteHeader(page.Status)
		io.WriteString(w, page.Body)
		return
	}

	switch r.URL.Path {
	case "/get":
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"contents": page.Body})
	default:
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, page.Body)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
