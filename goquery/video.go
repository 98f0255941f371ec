package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/artex"
)

var (
	youtubePath      = regexp.MustCompile(`(?:youtube(?:-nocookie)?\.com/(?:embed/|shorts/|v/)|youtu\.be/)([A-Za-z0-9_-]{11})`)
	youtubeThumbnail = regexp.MustCompile(`/([A-Za-z0-9_-]{11})/(?:hq|mq|sd|maxres)?default`)
	youtubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// videoMarkers are elements that carry a YouTube id in an attribute.
const videoMarkers = ".w-youtube[id], .youtube[id], [data-youtube-id]"

// YouTubeID extracts an 11 character video id from a YouTube URL in any of
// the embed/, shorts/, v/, youtu.be/, or watch?v= shapes. Returns an empty
// string when raw is not a recognizable YouTube URL.
func YouTubeID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if m := youtubePath.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if (host == "youtube.com" || host == "m.youtube.com") && u.Path == "/watch" {
		if v := u.Query().Get("v"); youtubeIDPattern.MatchString(v) {
			return v
		}
	}
	return ""
}

// isYouTubeURL reports whether raw points at a YouTube host.
func isYouTubeURL(raw string) bool {
	l := strings.ToLower(raw)
	return strings.Contains(l, "youtube.com") || strings.Contains(l, "youtube-nocookie.com") || strings.Contains(l, "youtu.be")
}

// DetectVideos returns the YouTube videos referenced by iframes and id
// marker elements in scopes, de-duplicated by id in first-seen order.
// ogImage is consulted only for YouTube iframes whose URL yields no id,
// where the id is recovered from a thumbnail path such as
// /vi/<id>/hqdefault.jpg.
func DetectVideos(ogImage string, scopes ...*goquery.Selection) []artex.Video {
	var videos []artex.Video
	seen := make(map[string]struct{})
	add := func(id string) {
		if !youtubeIDPattern.MatchString(id) {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		videos = append(videos, artex.NewVideo(id))
	}

	for _, scope := range scopes {
		if scope == nil {
			continue
		}
		scope.Find("iframe").Each(func(_ int, f *goquery.Selection) {
			src := firstAttr(f, "src", "data-src")
			id := YouTubeID(src)
			if id == "" && isYouTubeURL(src) {
				id = thumbnailID(ogImage)
			}
			add(id)
		})
		scope.Find(videoMarkers).Each(func(_ int, el *goquery.Selection) {
			add(firstAttr(el, "data-youtube-id", "id"))
		})
	}
	return videos
}

// thumbnailID recovers a video id from a YouTube thumbnail URL.
func thumbnailID(thumb string) string {
	if m := youtubeThumbnail.FindStringSubmatch(thumb); m != nil {
		return m[1]
	}
	return ""
}
