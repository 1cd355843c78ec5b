package tasks

import (
	"fmt"

	"github.com/desertthunder/playall/internal/models"
)

// ProgressUpdate represents a progress event during a resolution.
//
// Updates are informational only and are sent to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within the fallback chain
	Total   int    // Total steps in the fallback chain
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ClassifyInput Phase = iota
	DirectHandle
	FeedLookup
	FetchPage
	AlternateURL
	BuildPlaylist
	ResolveBatch
)

func (p Phase) String() string {
	switch p {
	case ClassifyInput:
		return "classify_input"
	case DirectHandle:
		return "direct_handle"
	case FeedLookup:
		return "feed_lookup"
	case FetchPage:
		return "fetch_page"
	case AlternateURL:
		return "alternate_url"
	case BuildPlaylist:
		return "build_playlist"
	case ResolveBatch:
		return "resolve_batch"
	default:
		return ""
	}
}

func classifiedUpdate(in models.ClassifiedInput) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ClassifyInput,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Recognized %s %q", in.Kind, in.Value),
		Data:    in,
	}
}

func directHandleUpdate(step, total int, handle string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DirectHandle,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Looking up @%s directly...", handle),
	}
}

func feedLookupUpdate(step, total int, handle string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FeedLookup,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Checking the video feed for %s...", handle),
	}
}

func fetchPageUpdate(step, total int, target string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPage,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching %s...", target),
		Data:    target,
	}
}

func alternateURLUpdate(step, total int, target string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AlternateURL,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Trying alternative URL %s...", target),
		Data:    target,
	}
}

func buildPlaylistUpdate(id models.ChannelID, method models.Method) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BuildPlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %s using %s method", id, methodLabel(method)),
		Data:    id,
	}
}

func batchItemUpdate(step, total int, result models.Result) ProgressUpdate {
	msg := fmt.Sprintf("Resolved %s", result.Input)
	if !result.OK() {
		msg = fmt.Sprintf("Failed %s: %s", result.Input, result.Error)
	}
	return ProgressUpdate{
		Phase:   ResolveBatch,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    result,
	}
}

// methodLabel is the short human name for a resolution method.
func methodLabel(m models.Method) string {
	switch m {
	case models.MethodDirectHandle:
		return "direct"
	case models.MethodFeed:
		return "RSS"
	case models.MethodAlternateURL:
		return "alternative URL"
	case models.MethodInput:
		return "input"
	default:
		return "page"
	}
}

// SuccessMessage is the confirmation shown after a playlist URL has been generated.
func SuccessMessage(m models.Method) string {
	switch m {
	case models.MethodDirectHandle, models.MethodFeed:
		return fmt.Sprintf("Playlist URL generated successfully using %s method!", methodLabel(m))
	default:
		return "Playlist URL generated successfully!"
	}
}
