package model

import "strings"

const (
	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
)

// VideoInfo is the oEmbed metadata of a video plus its canonical watch URL
type VideoInfo struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// Caption is a single time-coded caption line. Start and Duration are in seconds.
type Caption struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Video is the aggregated result of resolving a URL: metadata and transcript
type Video struct {
	ID         string    `json:"id"`
	Info       VideoInfo `json:"info"`
	Transcript string    `json:"transcript"`
	Captions   []Caption `json:"-"`
}

// JoinCaptions flattens caption records into a single space-separated transcript,
// keeping their original order.
func JoinCaptions(captions []Caption) string {
	texts := make([]string, 0, len(captions))
	for _, c := range captions {
		texts = append(texts, c.Text)
	}
	return strings.Join(texts, " ")
}

// WatchURL returns the canonical watch URL for a video id
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
