// package models defines the data model for channel resolution
package models

import (
	"fmt"
	"regexp"
)

var channelIDRe = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)

// InputKind classifies what a user supplied.
type InputKind int

const (
	KindChannelID InputKind = iota
	KindUsername
	KindCustomURL
	KindLegacyUserURL
	KindGenericURL
)

func (k InputKind) String() string {
	switch k {
	case KindChannelID:
		return "channel_id"
	case KindUsername:
		return "username"
	case KindCustomURL:
		return "custom_url"
	case KindLegacyUserURL:
		return "legacy_user_url"
	case KindGenericURL:
		return "generic_url"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText renders the kind by name in JSON output.
func (k InputKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ClassifiedInput is the classifier's verdict on a raw input string.
//
// For [KindChannelID] and [KindUsername] Value is the inner token (ID or handle).
// For the URL kinds Value is the whole input, since the page at that address is fetched later.
type ClassifiedInput struct {
	Kind  InputKind `json:"kind"`
	Value string    `json:"value"`
}

// ChannelID is a validated channel identifier: "UC" followed by 22 URL-safe characters.
type ChannelID string

func (c ChannelID) String() string { return string(c) }

// IsChannelID reports whether s has the exact channel identifier shape.
func IsChannelID(s string) bool {
	return channelIDRe.MatchString(s)
}

// ParseChannelID validates s and returns it as a [ChannelID].
func ParseChannelID(s string) (ChannelID, error) {
	if !IsChannelID(s) {
		return "", fmt.Errorf("malformed channel ID %q", s)
	}
	return ChannelID(s), nil
}

// Method names the path that produced a channel ID.
type Method string

const (
	MethodInput        Method = "input"
	MethodDirectHandle Method = "direct_handle"
	MethodFeed         Method = "feed"
	MethodPage         Method = "page"
	MethodAlternateURL Method = "alternate_url"
)

// Result is one resolved (or failed) input, as reported by the CLI and TUI.
type Result struct {
	Input       string    `json:"input" yaml:"input"`
	Kind        string    `json:"kind,omitempty" yaml:"kind,omitempty"`
	ChannelID   ChannelID `json:"channel_id,omitempty" yaml:"channel_id,omitempty"`
	PlaylistURL string    `json:"playlist_url,omitempty" yaml:"playlist_url,omitempty"`
	Method      Method    `json:"method,omitempty" yaml:"method,omitempty"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the result carries a playlist URL.
func (r Result) OK() bool {
	return r.Error == "" && r.PlaylistURL != ""
}
