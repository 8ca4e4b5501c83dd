package youtube

import "regexp"

// videoIDPatterns are tried in order; the first match wins.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:embed/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:watch\?v=)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
}

// ExtractVideoID returns the 11-character video identifier contained in url.
// A URL that matches none of the supported shapes is not an error: ok is false.
func ExtractVideoID(url string) (id string, ok bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(url); len(m) >= 2 {
			return m[1], true
		}
	}
	return "", false
}
