package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playall/internal/channel"
	"github.com/desertthunder/playall/internal/models"
	"github.com/desertthunder/playall/internal/services"
	"github.com/desertthunder/playall/internal/shared"
)

const youtubeBase = "https://www.youtube.com"

// Resolver turns free-text channel references into uploads playlist URLs.
type Resolver interface {
	// Resolve finds the channel ID for a classified input.
	Resolve(ctx context.Context, in models.ClassifiedInput, progress chan<- ProgressUpdate) (models.ChannelID, error)

	// Generate classifies raw, resolves it, and builds the uploads playlist URL.
	Generate(ctx context.Context, raw string, progress chan<- ProgressUpdate) (string, error)

	// Run is [Resolver.Generate] packaged as a result row.
	Run(ctx context.Context, raw string, progress chan<- ProgressUpdate) models.Result
}

// ResolveEngine implements [Resolver] on top of a relay [services.Fetcher].
//
// It holds only read-only configuration and is safe for concurrent independent calls.
type ResolveEngine struct {
	fetcher     services.Fetcher
	directRelay services.Relay
	feedRelay   services.Relay
	logger      *log.Logger
}

// NewResolveEngine creates a ResolveEngine. The handle config supplies the single-relay shortcuts
// tried before the full pipeline for @handles.
func NewResolveEngine(fetcher services.Fetcher, handle shared.HandleConfig, logger *log.Logger) *ResolveEngine {
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	return &ResolveEngine{
		fetcher:     fetcher,
		directRelay: services.RelayFromConfig(handle.DirectRelay),
		feedRelay:   services.RelayFromConfig(handle.FeedRelay),
		logger:      logger,
	}
}

// resolved is a channel ID plus the method that found it.
type resolved struct {
	id     models.ChannelID
	method models.Method
}

// generation is everything learned while turning one raw input into a playlist URL.
type generation struct {
	input       models.ClassifiedInput
	classified  bool
	found       resolved
	playlistURL string
}

// sendProgress sends a progress update through the channel without blocking.
func (e *ResolveEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Generate returns the uploads playlist URL for raw.
func (e *ResolveEngine) Generate(ctx context.Context, raw string, progress chan<- ProgressUpdate) (string, error) {
	g, err := e.generate(ctx, raw, progress)
	if err != nil {
		return "", err
	}
	return g.playlistURL, nil
}

// Run resolves raw and reports the outcome as a [models.Result]. Failures are carried in Result.Error.
func (e *ResolveEngine) Run(ctx context.Context, raw string, progress chan<- ProgressUpdate) models.Result {
	result := models.Result{Input: strings.TrimSpace(raw)}

	g, err := e.generate(ctx, raw, progress)
	if g.classified {
		result.Kind = g.input.Kind.String()
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.ChannelID = g.found.id
	result.Method = g.found.method
	result.PlaylistURL = g.playlistURL
	return result
}

// Resolve finds the channel ID for in.
func (e *ResolveEngine) Resolve(ctx context.Context, in models.ClassifiedInput, progress chan<- ProgressUpdate) (models.ChannelID, error) {
	found, err := e.resolve(ctx, in, progress, e.logger)
	if err != nil {
		return "", err
	}
	return found.id, nil
}

func (e *ResolveEngine) generate(ctx context.Context, raw string, progress chan<- ProgressUpdate) (generation, error) {
	var g generation

	input := strings.TrimSpace(raw)
	if input == "" {
		return g, shared.ErrEmptyInput
	}

	logger := e.logger.With("resolution", shared.GenerateID(), "input", input)

	in, ok := channel.Classify(input)
	if !ok {
		logger.Debug("input not recognized")
		return g, fmt.Errorf("%w: please provide a YouTube channel URL, @username, or channel ID", shared.ErrUnrecognizedInput)
	}
	g.input, g.classified = in, true
	logger.Debug("classified input", "kind", in.Kind, "value", in.Value)
	e.sendProgress(progress, classifiedUpdate(in))

	found, err := e.resolve(ctx, in, progress, logger)
	if err != nil {
		logger.Debug("resolution failed", "error", err)
		return g, err
	}
	g.found = found

	playlistURL, err := channel.PlaylistURL(string(found.id))
	if err != nil {
		return g, err
	}
	g.playlistURL = playlistURL

	logger.Info("resolved channel", "channel_id", found.id, "method", found.method)
	e.sendProgress(progress, buildPlaylistUpdate(found.id, found.method))
	return g, nil
}

func (e *ResolveEngine) resolve(ctx context.Context, in models.ClassifiedInput, progress chan<- ProgressUpdate, logger *log.Logger) (resolved, error) {
	switch in.Kind {
	case models.KindChannelID:
		id, err := models.ParseChannelID(in.Value)
		if err != nil {
			return resolved{}, fmt.Errorf("%w: %v", shared.ErrBuildFailure, err)
		}
		return resolved{id: id, method: models.MethodInput}, nil
	case models.KindUsername:
		return e.resolveHandle(ctx, in.Value, progress, logger)
	case models.KindCustomURL, models.KindLegacyUserURL, models.KindGenericURL:
		return e.resolveURL(ctx, in.Value, progress, logger)
	default:
		return resolved{}, fmt.Errorf("%w: unknown kind %s", shared.ErrUnrecognizedInput, in.Kind)
	}
}

// resolveHandle walks the @handle fallback chain: direct relay, feed relay, the handle page,
// then the /c/, /user/ and bare alternates.
func (e *ResolveEngine) resolveHandle(ctx context.Context, handle string, progress chan<- ProgressUpdate, logger *log.Logger) (resolved, error) {
	handleURL := youtubeBase + "/@" + handle
	feedURL := youtubeBase + "/feeds/videos.xml?user=" + handle
	alternates := []string{
		youtubeBase + "/c/" + handle,
		youtubeBase + "/user/" + handle,
		youtubeBase + "/" + handle,
	}
	total := 3 + len(alternates)

	attempts := []shared.Attempt[resolved]{
		func(ctx context.Context) (resolved, error) {
			e.sendProgress(progress, directHandleUpdate(1, total, handle))
			body, err := e.fetcher.FetchVia(ctx, e.directRelay, handleURL)
			if err != nil {
				return resolved{}, swallow(logger, "direct handle", err)
			}
			id, err := channel.ExtractHandle(body)
			if err != nil {
				return resolved{}, swallow(logger, "direct handle", err)
			}
			return resolved{id: id, method: models.MethodDirectHandle}, nil
		},
		func(ctx context.Context) (resolved, error) {
			e.sendProgress(progress, feedLookupUpdate(2, total, handle))
			body, err := e.fetcher.FetchVia(ctx, e.feedRelay, feedURL)
			if err != nil {
				return resolved{}, swallow(logger, "feed", err)
			}
			id, err := channel.ExtractFeed(body)
			if err != nil {
				return resolved{}, swallow(logger, "feed", err)
			}
			return resolved{id: id, method: models.MethodFeed}, nil
		},
		func(ctx context.Context) (resolved, error) {
			e.sendProgress(progress, fetchPageUpdate(3, total, handleURL))
			return e.pipeline(ctx, handleURL, models.MethodPage, logger)
		},
	}
	for i, alt := range alternates {
		attempts = append(attempts, func(ctx context.Context) (resolved, error) {
			e.sendProgress(progress, alternateURLUpdate(4+i, total, alt))
			return e.pipeline(ctx, alt, models.MethodAlternateURL, logger)
		})
	}

	var failures []error
	for i, attempt := range attempts {
		attempts[i] = func(ctx context.Context) (resolved, error) {
			found, err := attempt(ctx)
			if err != nil {
				failures = append(failures, err)
			}
			return found, err
		}
	}

	found, err := shared.FirstSuccess(ctx, attempts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return resolved{}, fmt.Errorf("resolution of @%s cancelled: %w", handle, ctxErr)
		}
		cause := failureCause(failures, err)
		return resolved{}, shared.WithMessage(
			fmt.Sprintf("could not resolve @%s: %s; try using the direct channel URL instead", handle, failureReason(cause)),
			shared.ErrResolutionExhausted, cause,
		)
	}
	return found, nil
}

// resolveURL runs the full pipeline once on a custom, legacy, or generic channel URL.
func (e *ResolveEngine) resolveURL(ctx context.Context, value string, progress chan<- ProgressUpdate, logger *log.Logger) (resolved, error) {
	target := value
	if !hasHTTPScheme(target) {
		target = "https://" + target
	}

	e.sendProgress(progress, fetchPageUpdate(1, 1, target))
	found, err := e.pipeline(ctx, target, models.MethodPage, logger)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return resolved{}, fmt.Errorf("resolution of %s cancelled: %w", value, ctxErr)
		}
		return resolved{}, shared.WithMessage(
			fmt.Sprintf("could not resolve channel ID from %s: %s; try using a direct channel URL (youtube.com/channel/UC...) or channel ID", value, failureReason(err)),
			shared.ErrResolutionExhausted, err,
		)
	}
	return found, nil
}

// pipeline fetches target through the relays and runs the extraction strategies on the page.
func (e *ResolveEngine) pipeline(ctx context.Context, target string, method models.Method, logger *log.Logger) (resolved, error) {
	page, err := e.fetcher.FetchPage(ctx, target)
	if err != nil {
		return resolved{}, swallow(logger, target, err)
	}

	m, err := channel.Find(page)
	if err != nil {
		return resolved{}, swallow(logger, target, err)
	}
	logger.Debug("extracted channel ID", "target", target, "strategy", m.Strategy, "channel_id", m.ID)
	return resolved{id: m.ID, method: method}, nil
}

// swallow logs a failed fallback step at debug level and hands the error back to the chain.
func swallow(logger *log.Logger, step string, err error) error {
	logger.Debug("fallback step failed", "step", step, "error", err)
	return err
}

// failureCause picks the error that explains a failed chain. A fetched page without an ID
// outranks fetch failures, otherwise the last error wins.
func failureCause(failures []error, last error) error {
	for _, err := range failures {
		if errors.Is(err, shared.ErrExtractionFailed) {
			return err
		}
	}
	return last
}

// failureReason is the user-facing half of a failure message.
func failureReason(cause error) string {
	if errors.Is(cause, shared.ErrExtractionFailed) {
		return "no channel ID found on the page"
	}
	return "relays unreachable"
}

// hasHTTPScheme reports whether s starts with http:// or https://, ignoring case.
func hasHTTPScheme(s string) bool {
	for _, scheme := range []string{"http://", "https://"} {
		if len(s) >= len(scheme) && strings.EqualFold(s[:len(scheme)], scheme) {
			return true
		}
	}
	return false
}
