package channel

import (
	"fmt"
	"strings"

	"github.com/desertthunder/playall/internal/shared"
)

const (
	channelPrefix     = "UC"
	uploadsPrefix     = "UU"
	playlistURLPrefix = "https://www.youtube.com/playlist?list="
)

// PlaylistID returns the uploads playlist ID for a channel ID. ok is false unless id starts with "UC".
func PlaylistID(id string) (playlistID string, ok bool) {
	if !strings.HasPrefix(id, channelPrefix) {
		return "", false
	}
	return uploadsPrefix + id[len(channelPrefix):], true
}

// PlaylistURL builds the uploads playlist URL for a channel ID.
func PlaylistURL(id string) (string, error) {
	playlistID, ok := PlaylistID(id)
	if !ok {
		return "", fmt.Errorf("%w: %q does not start with %s", shared.ErrBuildFailure, id, channelPrefix)
	}
	return playlistURLPrefix + playlistID, nil
}
