// Package model defines the records shared by every layer: users, the
// platforms they connect and the content tracked under each platform.
package model

import (
	"fmt"
	"strings"
	"time"
)

// PlatformName is the closed set of social-media platforms a link can belong to.
//
// The zero value ("") is not a valid platform. Use ParsePlatformName to turn
// user input into a PlatformName; it rejects anything outside the set.
type PlatformName string

const (
	PlatformYouTube   PlatformName = "YouTube"
	PlatformInstagram PlatformName = "Instagram"
	PlatformTikTok    PlatformName = "TikTok"
	PlatformTwitter   PlatformName = "Twitter"
	PlatformOther     PlatformName = "Other"
)

// PlatformNames lists every known platform in classification priority order.
var PlatformNames = []PlatformName{
	PlatformYouTube,
	PlatformInstagram,
	PlatformTikTok,
	PlatformTwitter,
	PlatformOther,
}

// ParsePlatformName matches s against the known platform names.
// Matching ignores case and surrounding whitespace, so "youtube" and " YouTube "
// both resolve to PlatformYouTube.
func ParsePlatformName(s string) (PlatformName, error) {
	s = strings.TrimSpace(s)
	for _, name := range PlatformNames {
		if strings.EqualFold(s, string(name)) {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// Platform is a connected social-media account (channel, profile, handle)
// owned by exactly one user.
//
// A platform is created lazily the first time a user ingests a link for a
// platform name they don't have yet. The ingestion pipeline never updates or
// deletes platforms.
//
// JSON FIELD NAMES:
// The API speaks camelCase ("platformName") because the browser frontend and
// the linkctl CLI both decode these payloads.
type Platform struct {
	ID               int64        `json:"id"               db:"id"`
	OwnerID          string       `json:"ownerId"          db:"owner_id"`
	PlatformName     PlatformName `json:"platformName"     db:"platform_name"`
	PlatformUsername string       `json:"platformUsername" db:"platform_username"` // display handle, may be empty
	CreatedAt        time.Time    `json:"createdAt"        db:"created_at"`
}

// PlatformStats is the per-platform summary shown on the platforms page.
type PlatformStats struct {
	ContentCount int64 `json:"contentCount"`
}
