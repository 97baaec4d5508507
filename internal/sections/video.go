package sections

import (
	"regexp"
	"strings"
)

// embedBase is the player URL every accepted video link is rewritten to.
const embedBase = "https://www.youtube.com/embed/"

var (
	// shortLinkPattern matches https://youtu.be/<id>.
	shortLinkPattern = regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]+)`)
	// watchLinkPattern matches https://www.youtube.com/watch?v=<id>.
	watchLinkPattern = regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]+)`)
)

// EmbedURL converts a video link into an embeddable player URL. Short
// links are tried before watch links and the first match wins; URLs that
// are already in embed form pass through unchanged. Anything else
// reports false.
func EmbedURL(videoURL string) (string, bool) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return "", false
	}

	for _, p := range []*regexp.Regexp{shortLinkPattern, watchLinkPattern} {
		if m := p.FindStringSubmatch(videoURL); len(m) > 1 {
			return embedBase + m[1], true
		}
	}

	if strings.Contains(videoURL, "youtube.com/embed/") {
		return videoURL, true
	}
	return "", false
}
