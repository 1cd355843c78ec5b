package channel

import (
	"regexp"
	"strings"

	"github.com/desertthunder/playall/internal/models"
)

var (
	bareIDRe      = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)
	channelPathRe = regexp.MustCompile(`youtube\.com/channel/(UC[A-Za-z0-9_-]{22})`)
	handleRe      = regexp.MustCompile(`(?:youtube\.com/|^)@([A-Za-z0-9_.-]+)`)
	customPathRe  = regexp.MustCompile(`youtube\.com/c/([A-Za-z0-9_-]+)`)
	userPathRe    = regexp.MustCompile(`youtube\.com/user/([A-Za-z0-9_-]+)`)
)

// Classify determines what kind of channel reference raw is.
//
// The second return value is false when nothing matched.
func Classify(raw string) (models.ClassifiedInput, bool) {
	in := strings.TrimSpace(raw)

	if bareIDRe.MatchString(in) {
		return models.ClassifiedInput{Kind: models.KindChannelID, Value: in}, true
	}
	if m := channelPathRe.FindStringSubmatch(in); m != nil {
		return models.ClassifiedInput{Kind: models.KindChannelID, Value: m[1]}, true
	}
	if m := handleRe.FindStringSubmatch(in); m != nil {
		return models.ClassifiedInput{Kind: models.KindUsername, Value: m[1]}, true
	}
	if customPathRe.MatchString(in) {
		return models.ClassifiedInput{Kind: models.KindCustomURL, Value: in}, true
	}
	if userPathRe.MatchString(in) {
		return models.ClassifiedInput{Kind: models.KindLegacyUserURL, Value: in}, true
	}
	if strings.Contains(in, "youtube.com/") && !strings.Contains(in, "/watch") {
		return models.ClassifiedInput{Kind: models.KindGenericURL, Value: in}, true
	}

	return models.ClassifiedInput{}, false
}
