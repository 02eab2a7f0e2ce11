package model

import (
	"fmt"
	"strings"
	"time"
)

// ContentType classifies a piece of published media.
type ContentType string

const (
	ContentVideo   ContentType = "VIDEO"
	ContentShort   ContentType = "SHORT"
	ContentPost    ContentType = "POST"
	ContentReel    ContentType = "REEL"
	ContentStory   ContentType = "STORY"
	ContentTweet   ContentType = "TWEET"
	ContentUnknown ContentType = "UNKNOWN"
)

var contentTypes = []ContentType{
	ContentVideo,
	ContentShort,
	ContentPost,
	ContentReel,
	ContentStory,
	ContentTweet,
	ContentUnknown,
}

// ParseContentType matches s (case-insensitive) against the known content types.
func ParseContentType(s string) (ContentType, error) {
	s = strings.TrimSpace(s)
	for _, ct := range contentTypes {
		if strings.EqualFold(s, string(ct)) {
			return ct, nil
		}
	}
	return "", fmt.Errorf("unknown content type %q", s)
}

// Content is one tracked piece of published media under a Platform.
//
// PlatformContentID is the external identifier scraped from the URL
// (a YouTube video id, an Instagram shortcode, a tweet id, ...).
// Two Content rows may share the same (PlatformID, PlatformContentID):
// re-ingesting a link always creates a new record.
type Content struct {
	ID                int64       `json:"id"                db:"id"`
	PlatformID        int64       `json:"platformId"        db:"platform_id"`
	OwnerID           string      `json:"ownerId"           db:"owner_id"`
	PlatformContentID string      `json:"platformContentId" db:"platform_content_id"`
	ContentType       ContentType `json:"contentType"       db:"content_type"`
	Title             string      `json:"title"             db:"title"`
	URL               string      `json:"url"               db:"url"`
	PublishedDate     *time.Time  `json:"publishedDate,omitempty" db:"published_date"`
	CreatedAt         time.Time   `json:"createdAt"         db:"created_at"`
}
