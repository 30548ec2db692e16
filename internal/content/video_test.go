package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVideoURL(t *testing.T) {
	cases := []struct {
		name     string
		url      string
		embed    string
		platform string
	}{
		{"youtube watch", "https://www.youtube.com/watch?v=abc123", "https://www.youtube.com/embed/abc123", "youtube"},
		{"youtube short", "https://youtu.be/abc123", "https://www.youtube.com/embed/abc123", "youtube"},
		{"youtube embed", "https://www.youtube.com/embed/abc123", "https://www.youtube.com/embed/abc123", "youtube"},
		{"vk video", "https://vk.com/video-12345_67890", "https://vk.com/video_ext.php?oid=-12345&id=67890", "vk"},
		{"vkvideo.ru", "https://vkvideo.ru/video-111_222", "https://vk.com/video_ext.php?oid=-111&id=222", "vk"},
		{"rutube", "https://rutube.ru/video/0a1b2c3d/", "https://rutube.ru/play/embed/0a1b2c3d", "rutube"},
		{"vimeo", "https://vimeo.com/999", "https://player.vimeo.com/video/999", "vimeo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseVideoURL(tc.url)
			require.NotNil(t, got)
			assert.Equal(t, tc.embed, got.EmbedURL)
			assert.Equal(t, tc.platform, got.Platform)
		})
	}
}

func TestParseVideoURL_YouTubeThumbnail(t *testing.T) {
	got := ParseVideoURL("https://youtu.be/abc123")
	require.NotNil(t, got)
	assert.Equal(t, "https://img.youtube.com/vi/abc123/hqdefault.jpg", got.Thumbnail)
}

func TestParseVideoURL_Unrecognized(t *testing.T) {
	assert.Nil(t, ParseVideoURL("https://example.com/x"))
	assert.Nil(t, ParseVideoURL(""))
}

func TestParseVideoURL_KnownHostBadPattern(t *testing.T) {
	// host matches but no extractable id: dropped, not an error
	assert.Nil(t, ParseVideoURL("https://vk.com/video"))
	assert.Nil(t, ParseVideoURL("https://rutube.ru/channel/123"))
	assert.Nil(t, ParseVideoURL("https://vimeo.com/about"))
}

func TestPlayableVideos_FiltersNils(t *testing.T) {
	got := PlayableVideos([]string{
		"https://youtu.be/abc123",
		"https://example.com/x",
		"https://vimeo.com/999",
	})
	require.Len(t, got, 2)
	assert.Equal(t, "youtube", got[0].Platform)
	assert.Equal(t, "vimeo", got[1].Platform)
}
