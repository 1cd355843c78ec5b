// package services defines interface Fetcher for retrieving YouTube pages through relays
package services

import (
	"context"

	"github.com/desertthunder/playall/internal/shared"
)

// Fetcher retrieves the text of a YouTube page by way of third-party relay services.
type Fetcher interface {
	// FetchPage tries each configured relay in order and returns the first acceptable body.
	FetchPage(ctx context.Context, target string) (string, error)

	// FetchVia fetches target through a single relay without the page length threshold.
	FetchVia(ctx context.Context, relay Relay, target string) (string, error)

	// Relays returns the configured relay order.
	Relays() []Relay
}

// Relay is an endpoint template that proxies a GET request to a target URL.
//
// Template placeholders:
//   - {url}: the target, query-escaped
//   - {raw}: the target, verbatim (path-style relays)
type Relay struct {
	Name     string
	Template string
	Format   string // [shared.RelayFormatJSON] or [shared.RelayFormatRaw]
}

// RelayFromConfig converts a relay config entry.
func RelayFromConfig(c shared.RelayConfig) Relay {
	return Relay{Name: c.Name, Template: c.Template, Format: c.Format}
}

// RelaysFromConfig converts relay config entries, keeping their order.
func RelaysFromConfig(cs []shared.RelayConfig) []Relay {
	relays := make([]Relay, len(cs))
	for i, c := range cs {
		relays[i] = RelayFromConfig(c)
	}
	return relays
}
