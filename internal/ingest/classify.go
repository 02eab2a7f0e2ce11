package ingest

import (
	"strings"

	"github.com/sakif/content-analytics/internal/model"
)

// Classification is what the classifier learned from a raw URL.
// It is never persisted.
type Classification struct {
	PlatformName model.PlatformName `json:"platformName"`
	ContentID    string             `json:"contentId"`
	ContentType  model.ContentType  `json:"contentType"`
}

// idDelimiters end an id segment. The first one found after the marker wins.
const idDelimiters = "/?&"

// marker is one "where does the id start" rule inside a platform.
type marker struct {
	token       string
	contentType model.ContentType
	extract     func(rest string) string
}

// platformRule pairs a domain predicate with the ordered markers used to
// extract the content id once the domain has matched.
type platformRule struct {
	name     model.PlatformName
	domains  []string
	fallback model.ContentType // content type reported when no marker matches
	markers  []marker
}

// rules is evaluated top to bottom. The first rule whose domain matches owns
// the URL, even when a later rule's domain also appears in it.
var rules = []platformRule{
	{
		name:     model.PlatformYouTube,
		domains:  []string{"youtube.com", "youtu.be"},
		fallback: model.ContentVideo,
		markers: []marker{
			{token: "watch?v=", contentType: model.ContentVideo, extract: leadingSegment},
			{token: "youtu.be/", contentType: model.ContentVideo, extract: leadingSegment},
			{token: "shorts/", contentType: model.ContentShort, extract: leadingSegment},
		},
	},
	{
		name:     model.PlatformInstagram,
		domains:  []string{"instagram.com"},
		fallback: model.ContentPost,
		markers: []marker{
			{token: "/p/", contentType: model.ContentPost, extract: leadingSegment},
			{token: "/reel/", contentType: model.ContentReel, extract: leadingSegment},
			{token: "/stories/", contentType: model.ContentStory, extract: storySegment},
		},
	},
	{
		name:     model.PlatformTikTok,
		domains:  []string{"tiktok.com"},
		fallback: model.ContentVideo,
		markers: []marker{
			{token: "/video/", contentType: model.ContentVideo, extract: leadingSegment},
		},
	},
	// Domains are substring matches, so any URL containing "x.com"
	// (www.dropbox.com among them) lands here.
	{
		name:     model.PlatformTwitter,
		domains:  []string{"twitter.com", "x.com"},
		fallback: model.ContentTweet,
		markers: []marker{
			{token: "/status/", contentType: model.ContentTweet, extract: leadingSegment},
		},
	},
}

// Classify maps a raw URL to its platform, content type and external id.
//
// It is pure and deterministic: no I/O, and the same input always yields the
// same output. A URL on a known domain without a recognised marker keeps its
// platform name but gets an empty ContentID. Unknown domains classify as
// {Other, UNKNOWN, ""}. Domains and markers match case-insensitively; the
// extracted id keeps its original case.
func Classify(rawURL string) Classification {
	lower := asciiLower(rawURL)
	for _, rule := range rules {
		if rule.matches(lower) {
			return rule.classify(rawURL, lower)
		}
	}
	return Classification{
		PlatformName: model.PlatformOther,
		ContentType:  model.ContentUnknown,
	}
}

// matches reports whether any of the rule's domains occurs in the lowercased URL.
func (r platformRule) matches(lowerURL string) bool {
	for _, d := range r.domains {
		if strings.Contains(lowerURL, d) {
			return true
		}
	}
	return false
}

// classify looks markers up in lowerURL and slices the id out of rawURL at
// the same offset. Both strings must have equal byte length.
func (r platformRule) classify(rawURL, lowerURL string) Classification {
	for _, m := range r.markers {
		i := strings.Index(lowerURL, m.token)
		if i < 0 {
			continue
		}
		return Classification{
			PlatformName: r.name,
			ContentID:    m.extract(rawURL[i+len(m.token):]),
			ContentType:  m.contentType,
		}
	}
	return Classification{PlatformName: r.name, ContentType: r.fallback}
}

// asciiLower lowercases A-Z only, so byte offsets in the result line up with
// the input. strings.ToLower may change the length of non-ASCII runes.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// leadingSegment returns rest up to the first delimiter, or all of rest when
// there is none.
func leadingSegment(rest string) string {
	if i := strings.IndexAny(rest, idDelimiters); i >= 0 {
		return rest[:i]
	}
	return rest
}

// storySegment handles stories/<username>/<storyID>. The story id is the
// second path segment; a link that stops after the username falls back to
// the first segment.
func storySegment(rest string) string {
	if i := strings.IndexAny(rest, "?&"); i >= 0 {
		rest = rest[:i]
	}
	parts := strings.Split(rest, "/")
	if len(parts) > 1 && parts[1] != "" {
		return parts[1]
	}
	return parts[0]
}
