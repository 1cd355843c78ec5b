package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playall/internal/shared"
	"github.com/tidwall/gjson"
)

// URL fills the relay template for target.
func (r Relay) URL(target string) string {
	return strings.NewReplacer("{url}", url.QueryEscape(target), "{raw}", target).Replace(r.Template)
}

// RelayFetcher fetches pages through an ordered list of relays.
//
// It holds only read-only configuration and is safe for concurrent use.
type RelayFetcher struct {
	relays         []Relay
	httpClient     *http.Client
	minBodyLength  int
	maxBodyBytes   int64
	userAgent      string
	acceptLanguage string
	logger         *log.Logger
}

// NewRelayFetcher creates a fetcher from config.
//
// A nil client gets one with the configured timeout; a nil logger discards output.
func NewRelayFetcher(cfg shared.FetcherConfig, client *http.Client, logger *log.Logger) *RelayFetcher {
	if client == nil {
		client = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}
	if logger == nil {
		logger = shared.DiscardLogger()
	}

	return &RelayFetcher{
		relays:         RelaysFromConfig(cfg.Relays),
		httpClient:     client,
		minBodyLength:  cfg.MinBodyLength,
		maxBodyBytes:   cfg.MaxBodyBytes,
		userAgent:      cfg.UserAgent,
		acceptLanguage: cfg.AcceptLanguage,
		logger:         logger,
	}
}

// Relays returns a copy of the configured relay order.
func (f *RelayFetcher) Relays() []Relay {
	return append([]Relay(nil), f.relays...)
}

// FetchPage returns the body of target from the first relay that produces an acceptable response.
func (f *RelayFetcher) FetchPage(ctx context.Context, target string) (string, error) {
	attempts := make([]shared.Attempt[string], len(f.relays))
	for i, relay := range f.relays {
		attempts[i] = func(ctx context.Context) (string, error) {
			body, err := f.fetch(ctx, relay, target, f.minBodyLength)
			if err != nil {
				f.logger.Debug("relay failed", "relay", relay.Name, "target", target, "error", err)
				return "", err
			}
			f.logger.Debug("relay succeeded", "relay", relay.Name, "target", target, "bytes", len(body))
			return body, nil
		}
	}

	body, err := shared.FirstSuccess(ctx, attempts)
	if err != nil {
		return "", fmt.Errorf("%w for %s: %w", shared.ErrRelayExhausted, target, err)
	}
	return body, nil
}

// FetchVia fetches target through a single relay.
//
// Raw bodies are not held to the minimum length, so short pages still reach the handle and feed
// patterns. Only an empty body is rejected.
func (f *RelayFetcher) FetchVia(ctx context.Context, relay Relay, target string) (string, error) {
	return f.fetch(ctx, relay, target, 0)
}

// fetch performs one relay request. Raw bodies must be longer than minLength bytes.
func (f *RelayFetcher) fetch(ctx context.Context, relay Relay, target string, minLength int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, relay.URL(target), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	if f.acceptLanguage != "" {
		req.Header.Set("Accept-Language", f.acceptLanguage)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: request failed: %w", relay.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%s: unexpected status %d", relay.Name, resp.StatusCode)
	}

	var reader io.Reader = resp.Body
	if f.maxBodyBytes > 0 {
		reader = io.LimitReader(resp.Body, f.maxBodyBytes)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("%s: failed to read response: %w", relay.Name, err)
	}

	switch relay.Format {
	case shared.RelayFormatJSON:
		return jsonContents(relay.Name, data)
	default:
		if len(data) <= minLength {
			return "", fmt.Errorf("%s: body too short (%d bytes)", relay.Name, len(data))
		}
		return string(data), nil
	}
}

// jsonContents unwraps a {"contents": "..."} relay envelope.
func jsonContents(name string, data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("%s: response is not valid JSON", name)
	}

	contents := gjson.GetBytes(data, "contents")
	if contents.Type != gjson.String || contents.Str == "" {
		return "", fmt.Errorf("%s: empty contents", name)
	}
	return contents.Str, nil
}
