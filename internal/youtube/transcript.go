package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/pep299/video-summarizer/internal/model"
)

// Transcript failures. They are wrapped with details, so match with errors.Is.
var (
	ErrVideoUnavailable    = errors.New("video unavailable")
	ErrTranscriptsDisabled = errors.New("transcripts disabled")
	ErrNoTranscriptFound   = errors.New("no transcript found")
)

// playerResponseMarker marks the start of the player response JSON in watch page HTML.
const playerResponseMarker = "ytInitialPlayerResponse = "

type playerResponse struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

type timedText struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

var tagRe = regexp.MustCompile(`<[^>]+>`)

// FetchTranscript returns the caption lines of a video joined into one text
func (c *Client) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	captions, err := c.FetchCaptions(ctx, videoID)
	if err != nil {
		return "", err
	}
	return model.JoinCaptions(captions), nil
}

// FetchCaptions returns the ordered caption records of a video.
// The watch page is scraped for its player response, the best caption track for
// the configured languages is picked and its timedtext XML is decoded.
func (c *Client) FetchCaptions(ctx context.Context, videoID string) ([]model.Caption, error) {
	page, err := c.get(ctx, c.baseURL+"/watch?v="+videoID, "text/html,application/xhtml+xml", 6<<20)
	if err != nil {
		return nil, fmt.Errorf("fetching watch page: %w", err)
	}

	player, err := parsePlayerResponse(page)
	if err != nil {
		return nil, err
	}

	if ps := player.PlayabilityStatus; ps != nil && ps.Status != "" && ps.Status != "OK" {
		reason := ps.Reason
		if reason == "" {
			reason = ps.Status
		}
		return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, reason)
	}
	if player.Captions == nil {
		return nil, fmt.Errorf("%w for video %s", ErrTranscriptsDisabled, videoID)
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w for video %s", ErrNoTranscriptFound, videoID)
	}

	track := pickTrack(tracks, c.languages)
	return c.fetchTimedText(ctx, track.BaseURL)
}

// parsePlayerResponse extracts and decodes ytInitialPlayerResponse from watch page HTML
func parsePlayerResponse(page []byte) (*playerResponse, error) {
	idx := strings.Index(string(page), playerResponseMarker)
	if idx < 0 {
		return nil, fmt.Errorf("%w: player response not found in watch page", ErrVideoUnavailable)
	}

	raw := extractJSONObject(page[idx+len(playerResponseMarker):])
	if raw == nil {
		return nil, errors.New("failed to extract player response JSON")
	}

	var player playerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, fmt.Errorf("decoding player response: %w", err)
	}
	return &player, nil
}

// extractJSONObject returns the balanced JSON object at the start of data, or nil
func extractJSONObject(data []byte) []byte {
	if len(data) == 0 || data[0] != '{' {
		return nil
	}

	depth := 0
	inString := false
	escaped := false
	for i, b := range data {
		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}
		switch b {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return data[:i+1]
			}
		}
	}
	return nil
}

// pickTrack prefers a manual track in a preferred language, then an
// auto-generated one, then any English track, then the first track.
func pickTrack(tracks []captionTrack, langs []string) captionTrack {
	for _, lang := range langs {
		for _, t := range tracks {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t
			}
		}
	}
	for _, lang := range langs {
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t
			}
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}

// fetchTimedText downloads a timedtext XML caption track and decodes its lines
func (c *Client) fetchTimedText(ctx context.Context, baseURL string) ([]model.Caption, error) {
	// srv3 uses a different schema; the default format is <text start dur>.
	baseURL = strings.Replace(baseURL, "&fmt=srv3", "", 1)

	body, err := c.get(ctx, baseURL, "application/xml,text/xml", 2<<20)
	if err != nil {
		return nil, fmt.Errorf("fetching timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parsing timedtext XML: %w", err)
	}

	captions := make([]model.Caption, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanCaption(line.Text)
		if text == "" {
			continue
		}
		captions = append(captions, model.Caption{
			Text:     text,
			Start:    parseSeconds(line.Start),
			Duration: parseSeconds(line.Dur),
		})
	}

	if len(captions) == 0 {
		return nil, fmt.Errorf("%w: caption track is empty", ErrNoTranscriptFound)
	}
	return captions, nil
}

// cleanCaption undoes the second level of entity escaping YouTube applies and drops markup
func cleanCaption(s string) string {
	s = html.UnescapeString(s)
	s = tagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
