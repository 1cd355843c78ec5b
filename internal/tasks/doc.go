// Package tasks orchestrates channel resolution with real-time progress reporting.
//
// # Core Operations
//
// The [Resolver] interface defines three operations:
//
//  1. [Resolver.Generate] : the single caller entry point
//     - Trims the input and rejects empty text with [shared.ErrEmptyInput]
//     - Classifies it with channel.Classify
//     - Resolves the channel ID and builds the uploads playlist URL
//
//  2. [Resolver.Resolve] : channel ID lookup for an already classified input
//     - Channel IDs are returned unchanged without any network access
//     - @handles walk the direct relay, the feed relay, the handle page, then /c/, /user/ and bare alternates
//     - Custom, legacy, and generic URLs get an https:// scheme if missing and one full pipeline run
//
//  3. [Resolver.Run] : Generate packaged as a models.Result row for batch output and the TUI
//
// [ResolveEngine.Batch] runs many inputs sequentially, paced with a rate limiter.
//
// # Failure Handling
//
// The engine is the only layer that swallows failures. Each failed fallback step is logged at debug
// level and the chain moves on; only when every step is exhausted does it return an error wrapping
// [shared.ErrResolutionExhausted] together with the last underlying error. The error text is written
// for display as-is.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data.
// Updates use select with default to prevent blocking; they are informational only.
//
// # Implementation
//
// [ResolveEngine] implements [Resolver] with dependencies on:
//   - [services.Fetcher] : relay page fetcher
//   - the direct and feed relays from the handle config section
package tasks
