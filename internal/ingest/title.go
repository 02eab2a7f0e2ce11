package ingest

import (
	"time"

	"github.com/sakif/content-analytics/internal/model"
)

// TitleDateLayout renders the date suffix of synthesized titles (e.g. 10/18/2026).
const TitleDateLayout = "1/2/2006"

// SynthesizeTitle builds the default label for newly ingested content,
// e.g. "YouTube Video - 10/18/2026". It never fails: platforms without a
// dedicated template get "<platform> Content - <date>".
func SynthesizeTitle(platform model.PlatformName, contentType model.ContentType, now time.Time) string {
	date := now.Format(TitleDateLayout)

	switch platform {
	case model.PlatformYouTube:
		if contentType == model.ContentShort {
			return "YouTube Short - " + date
		}
		return "YouTube Video - " + date
	case model.PlatformInstagram:
		switch contentType {
		case model.ContentReel:
			return "Instagram Reel - " + date
		case model.ContentStory:
			return "Instagram Story - " + date
		default:
			return "Instagram Post - " + date
		}
	case model.PlatformTikTok:
		return "TikTok Video - " + date
	case model.PlatformTwitter:
		return "Tweet - " + date
	}
	return string(platform) + " Content - " + date
}
