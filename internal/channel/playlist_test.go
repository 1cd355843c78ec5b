package channel

import (
	"errors"
	"testing"

	"github.com/desertthunder/playall/internal/shared"
)

func TestPlaylistURL(t *testing.T) {
	t.Run("substitutes uploads prefix", func(t *testing.T) {
		got, err := PlaylistURL("UC4QobU6STFB0P71PMvOGN5A")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "https://www.youtube.com/playlist?list=UU4QobU6STFB0P71PMvOGN5A"
		if got != want {
			t.Errorf("PlaylistURL() = %s, want %s", got, want)
		}
	})

	t.Run("only the prefix is replaced", func(t *testing.T) {
		got, err := PlaylistURL("UCUCUCUCUCUCUCUCUCUCUCUC")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "https://www.youtube.com/playlist?list=UUUCUCUCUCUCUCUCUCUCUCUC" {
			t.Errorf("unexpected URL %s", got)
		}
	})

	t.Run("rejects IDs without UC prefix", func(t *testing.T) {
		for _, id := range []string{"", "UU4QobU6STFB0P71PMvOGN5A", "uc4QobU6STFB0P71PMvOGN5A", "U"} {
			got, err := PlaylistURL(id)
			if !errors.Is(err, shared.ErrBuildFailure) {
				t.Errorf("PlaylistURL(%q) error = %v, want ErrBuildFailure", id, err)
			}
			if got != "" {
				t.Errorf("PlaylistURL(%q) = %q, want empty", id, got)
			}
		}
	})
}

func TestPlaylistID(t *testing.T) {
	if got, ok := PlaylistID("UC4QobU6STFB0P71PMvOGN5A"); !ok || got != "UU4QobU6STFB0P71PMvOGN5A" {
		t.Errorf("PlaylistID() = %q, %v", got, ok)
	}
	if _, ok := PlaylistID("PL123"); ok {
		t.Error("expected non-UC ID to be rejected")
	}
}
