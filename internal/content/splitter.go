package content

import (
	"encoding/json"
	"html"
	"log"
	"regexp"
	"strings"
)

const (
	SegmentHTML    = "html"
	SegmentGallery = "gallery"
)

// Segment is one contiguous unit of article content: either a run of HTML
// or an inline gallery extracted from an embedded-gallery block.
type Segment struct {
	Type    string   `json:"type"`
	Content string   `json:"content,omitempty"`
	Images  []string `json:"images,omitempty"`
}

// Editors insert gallery blocks through the WYSIWYG editor as
// <div class="embedded-gallery" data-images="[...]">...</div> where the
// attribute holds an HTML-escaped JSON array of image URLs.
var galleryMarkerRe = regexp.MustCompile(`(?is)<div[^>]*class="[^"]*embedded-gallery[^"]*"[^>]*data-images="([^"]*)"[^>]*>.*?</div>`)

// Split scans stored article HTML and returns the ordered segment sequence.
// Text between markers becomes HTML segments (whitespace-only runs are
// skipped). A marker whose JSON payload is malformed or empty is dropped.
// Marker syntax that never closes is not matched and falls through as
// literal HTML.
func Split(raw string) []Segment {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	matches := galleryMarkerRe.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return []Segment{{Type: SegmentHTML, Content: raw}}
	}

	segments := make([]Segment, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		if before := raw[last:m[0]]; strings.TrimSpace(before) != "" {
			segments = append(segments, Segment{Type: SegmentHTML, Content: before})
		}
		if images := decodeGalleryImages(raw[m[2]:m[3]]); len(images) > 0 {
			segments = append(segments, Segment{Type: SegmentGallery, Images: images})
		}
		last = m[1]
	}
	if after := raw[last:]; strings.TrimSpace(after) != "" {
		segments = append(segments, Segment{Type: SegmentHTML, Content: after})
	}
	return segments
}

func decodeGalleryImages(attr string) []string {
	var images []string
	if err := json.Unmarshal([]byte(html.UnescapeString(attr)), &images); err != nil {
		log.Printf("embedded gallery: bad data-images payload: %v", err)
		return nil
	}
	out := make([]string, 0, len(images))
	for _, img := range images {
		if strings.TrimSpace(img) != "" {
			out = append(out, img)
		}
	}
	return out
}

// RenderSegments sanitizes HTML segments for injection. Gallery segments are
// typed data, not raw markup, and pass through untouched.
func RenderSegments(raw string) []Segment {
	segments := Split(raw)
	for i := range segments {
		if segments[i].Type == SegmentHTML {
			segments[i].Content = Sanitize(segments[i].Content)
		}
	}
	return segments
}
