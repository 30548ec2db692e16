package content

import (
	"fmt"
	"regexp"
	"strings"
)

// VideoEmbed is a stored video URL resolved into an embeddable player URL.
// Recomputed on every render, never persisted.
type VideoEmbed struct {
	URL       string `json:"url"`
	EmbedURL  string `json:"embedUrl"`
	Platform  string `json:"platform"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

var (
	youtubeWatchRe = regexp.MustCompile(`youtube\.com/watch\?(?:[^\s&]*&)*v=([A-Za-z0-9_-]+)`)
	youtubeShortRe = regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]+)`)
	youtubeEmbedRe = regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]+)`)
	vkVideoRe      = regexp.MustCompile(`video(-?\d+)_(\d+)`)
	rutubeRe       = regexp.MustCompile(`rutube\.ru/video/([A-Za-z0-9]+)`)
	vimeoRe        = regexp.MustCompile(`vimeo\.com/(\d+)`)
)

// ParseVideoURL pattern-matches known video hosts. First match wins. Returns
// nil when the host is unknown or the id cannot be extracted; callers drop
// nil entries rather than surfacing an error.
func ParseVideoURL(raw string) *VideoEmbed {
	url := strings.TrimSpace(raw)
	if url == "" {
		return nil
	}

	switch {
	case strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be"):
		for _, re := range []*regexp.Regexp{youtubeWatchRe, youtubeShortRe, youtubeEmbedRe} {
			if m := re.FindStringSubmatch(url); m != nil {
				return &VideoEmbed{
					URL:       url,
					EmbedURL:  "https://www.youtube.com/embed/" + m[1],
					Platform:  "youtube",
					Thumbnail: fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", m[1]),
				}
			}
		}
		return nil
	case strings.Contains(url, "vk.com/video") || strings.Contains(url, "vk.com/clip") || strings.Contains(url, "vkvideo.ru"):
		if m := vkVideoRe.FindStringSubmatch(url); m != nil {
			return &VideoEmbed{
				URL:      url,
				EmbedURL: fmt.Sprintf("https://vk.com/video_ext.php?oid=%s&id=%s", m[1], m[2]),
				Platform: "vk",
			}
		}
		return nil
	case strings.Contains(url, "rutube.ru"):
		if m := rutubeRe.FindStringSubmatch(url); m != nil {
			return &VideoEmbed{
				URL:      url,
				EmbedURL: "https://rutube.ru/play/embed/" + m[1],
				Platform: "rutube",
			}
		}
		return nil
	case strings.Contains(url, "vimeo.com"):
		if m := vimeoRe.FindStringSubmatch(url); m != nil {
			return &VideoEmbed{
				URL:      url,
				EmbedURL: "https://player.vimeo.com/video/" + m[1],
				Platform: "vimeo",
			}
		}
		return nil
	}
	return nil
}

// PlayableVideos resolves a stored URL list into the playable subset,
// preserving order and silently dropping unrecognized entries.
func PlayableVideos(urls []string) []VideoEmbed {
	out := make([]VideoEmbed, 0, len(urls))
	for _, u := range urls {
		if v := ParseVideoURL(u); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// IsVideoHost reports whether a URL points at one of the recognized video
// platforms. The scraper keeps iframes for these hosts and strips the rest.
func IsVideoHost(url string) bool {
	for _, host := range []string{"youtube.com", "youtu.be", "vk.com/video", "vkvideo.ru", "rutube.ru", "vimeo.com"} {
		if strings.Contains(url, host) {
			return true
		}
	}
	return false
}
