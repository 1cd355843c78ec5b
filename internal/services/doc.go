// Package services fetches YouTube pages through third-party relay services.
//
// YouTube pages cannot be requested directly from every environment, so each request is routed
// through a relay: a public endpoint that performs the GET on our behalf. Relays are described by
// a [Relay] template and come in two shapes:
//
//   - json: the relay wraps the page as {"contents": "..."}; success means contents is non-empty
//   - raw: the relay returns the page body; success means the body is longer than min_body_length
//
// # RelayFetcher
//
// [RelayFetcher] implements [Fetcher]. [RelayFetcher.FetchPage] walks the configured relays with
// [shared.FirstSuccess] and stops at the first acceptable body. A non-2xx status, transport error,
// timeout, or failed acceptance check moves on to the next relay.
//
// When every relay fails the returned error wraps both [shared.ErrRelayExhausted] and the last
// relay's error, so callers can use errors.Is against either.
//
// [RelayFetcher.FetchVia] performs a single-relay fetch and is used by the @handle shortcuts.
package services
