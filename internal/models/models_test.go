package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestChannelID(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want bool
	}{
		{name: "valid", in: "UC4QobU6STFB0P71PMvOGN5A", want: true},
		{name: "valid with dash and underscore", in: "UC_x5XG1OV2P6uZZ5FSM9Ttw", want: true},
		{name: "lowercase prefix", in: "uc4QobU6STFB0P71PMvOGN5A", want: false},
		{name: "uploads prefix", in: "UU4QobU6STFB0P71PMvOGN5A", want: false},
		{name: "too short", in: "UC4QobU6STFB0P71PMvOGN5", want: false},
		{name: "too long", in: "UC4QobU6STFB0P71PMvOGN5AX", want: false},
		{name: "bad character", in: "UC4QobU6STFB0P71PMvOGN5!", want: false},
		{name: "empty", in: "", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsChannelID(tt.in); got != tt.want {
				t.Errorf("IsChannelID(%q) = %v, want %v", tt.in, got, tt.want)
			}

			id, err := ParseChannelID(tt.in)
			if tt.want && (err != nil || id.String() != tt.in) {
				t.Errorf("ParseChannelID(%q) = %q, %v", tt.in, id, err)
			}
			if !tt.want && err == nil {
				t.Errorf("ParseChannelID(%q) expected error", tt.in)
			}
		})
	}
}

func TestInputKind(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		want := map[InputKind]string{
			KindChannelID:     "channel_id",
			KindUsername:      "username",
			KindCustomURL:     "custom_url",
			KindLegacyUserURL: "legacy_user_url",
			KindGenericURL:    "generic_url",
			InputKind(42):     "kind(42)",
		}
		for k, s := range want {
			if k.String() != s {
				t.Errorf("expected %s, got %s", s, k.String())
			}
		}
	})

	t.Run("JSON uses names", func(t *testing.T) {
		out, err := json.Marshal(ClassifiedInput{Kind: KindUsername, Value: "jawed"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(out), `"kind":"username"`) {
			t.Errorf("expected named kind, got %s", out)
		}
	})
}

func TestResultOK(t *testing.T) {
	if (Result{PlaylistURL: "https://www.youtube.com/playlist?list=UU4QobU6STFB0P71PMvOGN5A"}).OK() != true {
		t.Error("expected result with URL to be OK")
	}
	if (Result{PlaylistURL: "x", Error: "boom"}).OK() {
		t.Error("expected result with error to not be OK")
	}
	if (Result{}).OK() {
		t.Error("expected empty result to not be OK")
	}
}
