package channel

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/playall/internal/models"
	"github.com/desertthunder/playall/internal/shared"
	"github.com/mmcdole/gofeed"
	"github.com/tidwall/gjson"
)

const idPattern = `(UC[A-Za-z0-9_-]{22})`

// maxBlobCandidates bounds how many "};" terminators are tried for the ytInitialData blob.
const maxBlobCandidates = 16

var (
	channelURLRe = regexp.MustCompile(`^https?://(?:www\.|m\.)?youtube\.com/channel/` + idPattern + `(?:[/?#]|$)`)

	channelIDKeyRe   = regexp.MustCompile(`"channelId":"` + idPattern + `"`)
	externalIDKeyRe  = regexp.MustCompile(`"externalId":"` + idPattern + `"`)
	browseParamsRe   = regexp.MustCompile(`"browse_endpoint_context_params":"channel_id=` + idPattern + `"`)
	bareChannelRe    = regexp.MustCompile(`channel/` + idPattern + `(?:[^A-Za-z0-9_-]|$)`)
	browseIDKeyRe    = regexp.MustCompile(`"browseId":"` + idPattern + `"`)
	commandURLRe     = regexp.MustCompile(`"webCommandMetadata":\{"url":"/channel/` + idPattern + `"`)
	browseEndpointRe = regexp.MustCompile(`"browseEndpoint":\{"browseId":"` + idPattern + `"`)
	feedChannelRe    = regexp.MustCompile(`channel_id=` + idPattern)

	// Known brittleness: assumes the blob sits on one line and ends in "};".
	initialDataRe = regexp.MustCompile(`(?:var ytInitialData|window\["ytInitialData"\])\s*=\s*(\{.*?\});`)

	scriptStatePatterns = []*regexp.Regexp{channelIDKeyRe, externalIDKeyRe, browseParamsRe, bareChannelRe}
	endpointPatterns    = []*regexp.Regexp{commandURLRe, browseEndpointRe}
	handlePatterns      = []*regexp.Regexp{channelIDKeyRe, externalIDKeyRe, bareChannelRe, browseIDKeyRe}
)

var errNoMatch = errors.New("strategy found nothing")

// Match is an extracted channel ID together with the strategy that found it.
type Match struct {
	ID       models.ChannelID
	Strategy string
}

// strategy pulls a candidate channel ID out of a page. Empty means no match.
type strategy struct {
	name string
	find func(p *page) string
}

var strategies = []strategy{
	{name: "meta_tags", find: findMetaTags},
	{name: "canonical_link", find: findCanonicalLink},
	{name: "script_state", find: func(p *page) string { return firstSubmatch(p.text, scriptStatePatterns) }},
	{name: "navigation_endpoint", find: func(p *page) string { return firstSubmatch(p.text, endpointPatterns) }},
	{name: "initial_data", find: findInitialData},
}

// Strategies returns the extraction strategy names in priority order.
func Strategies() []string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.name
	}
	return names
}

// page is fetched text plus a lazily parsed HTML document. One per extraction call.
type page struct {
	text   string
	doc    *goquery.Document
	parsed bool
}

func (p *page) document() *goquery.Document {
	if !p.parsed {
		p.parsed = true
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.text)); err == nil {
			p.doc = doc
		}
	}
	return p.doc
}

// Extract returns the first channel ID found in text by the ordered strategies.
func Extract(text string) (models.ChannelID, error) {
	m, err := Find(text)
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

// Find is [Extract] but also reports which strategy matched.
func Find(text string) (Match, error) {
	p := &page{text: text}

	attempts := make([]shared.Attempt[Match], len(strategies))
	for i, s := range strategies {
		attempts[i] = func(context.Context) (Match, error) {
			if id := s.find(p); models.IsChannelID(id) {
				return Match{ID: models.ChannelID(id), Strategy: s.name}, nil
			}
			return Match{}, errNoMatch
		}
	}

	m, err := shared.FirstSuccess(context.Background(), attempts)
	if err != nil {
		return Match{}, fmt.Errorf("%w (tried %s)", shared.ErrExtractionFailed, strings.Join(Strategies(), ", "))
	}
	return m, nil
}

// ExtractHandle applies the lightweight script-state patterns used on @handle pages.
func ExtractHandle(text string) (models.ChannelID, error) {
	if id := firstSubmatch(text, handlePatterns); models.IsChannelID(id) {
		return models.ChannelID(id), nil
	}
	return "", fmt.Errorf("%w in handle page", shared.ErrExtractionFailed)
}

// ExtractFeed pulls the channel ID out of a videos.xml feed body.
//
// The raw channel_id= token wins; otherwise the Atom feed is parsed and its yt:channelId
// extension and links are checked.
func ExtractFeed(body string) (models.ChannelID, error) {
	if m := feedChannelRe.FindStringSubmatch(body); m != nil {
		return models.ChannelID(m[1]), nil
	}

	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return "", fmt.Errorf("%w in feed: %v", shared.ErrExtractionFailed, err)
	}

	for _, ext := range feed.Extensions["yt"]["channelId"] {
		if models.IsChannelID(strings.TrimSpace(ext.Value)) {
			return models.ChannelID(strings.TrimSpace(ext.Value)), nil
		}
	}

	links := append([]string{feed.Link, feed.FeedLink}, feed.Links...)
	for _, link := range links {
		if id := channelIDFromURL(link); id != "" {
			return models.ChannelID(id), nil
		}
	}

	return "", fmt.Errorf("%w in feed", shared.ErrExtractionFailed)
}

func findMetaTags(p *page) string {
	doc := p.document()
	if doc == nil {
		return ""
	}

	urlSelectors := []string{`meta[property="og:url"]`, `meta[name="channelId"]`, `meta[itemprop="channelId"]`, `meta[property="al:web:url"]`, `meta[name="twitter:url"]`}
	for _, sel := range urlSelectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			content := strings.TrimSpace(s.AttrOr("content", ""))
			if models.IsChannelID(content) {
				found = content
			} else {
				found = channelIDFromURL(content)
			}
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func findCanonicalLink(p *page) string {
	doc := p.document()
	if doc == nil {
		return ""
	}

	var found string
	doc.Find(`link[rel="canonical"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = channelIDFromURL(s.AttrOr("href", ""))
		return found == ""
	})
	return found
}

func findInitialData(p *page) string {
	for _, blob := range initialDataCandidates(p.text) {
		if !gjson.Valid(blob) {
			continue
		}
		return gjson.Get(blob, "metadata.channelMetadataRenderer.externalId").String()
	}
	return ""
}

// initialDataCandidates returns the non-greedy ytInitialData match followed by progressively
// longer cuts ending at later "};" terminators, stopping at the closing script tag.
func initialDataCandidates(text string) []string {
	loc := initialDataRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil
	}
	start, end := loc[2], loc[3]

	limit := len(text)
	if i := strings.Index(text[start:], "</script>"); i >= 0 {
		limit = start + i
	}

	candidates := []string{text[start:end]}
	next := end + 1
	for len(candidates) < maxBlobCandidates && next < limit {
		i := strings.Index(text[next:limit], "};")
		if i < 0 {
			break
		}
		blobEnd := next + i + 1
		candidates = append(candidates, text[start:blobEnd])
		next = blobEnd + 1
	}
	return candidates
}

func channelIDFromURL(u string) string {
	if m := channelURLRe.FindStringSubmatch(strings.TrimSpace(u)); m != nil {
		return m[1]
	}
	return ""
}

func firstSubmatch(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
