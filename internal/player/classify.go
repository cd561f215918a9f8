package player

import (
	"regexp"
	"strings"
)

// Extensions that mark a URL as a directly playable stream. Matched as a
// substring, not a suffix, so query-string-decorated URLs still classify.
var streamExtensions = []string{
	".m3u8", ".mp3", ".aac", ".m4a", ".ogg", ".opus", ".flac", ".wav",
}

// Watch-page URLs, the short-link domain and the music subdomain.
var videoHostPattern = regexp.MustCompile(`(?i)(youtube\.com/watch\?v=|youtu\.be/|music\.youtube\.com/)`)

// IsURL reports whether the input starts with an http(s) scheme.
func IsURL(s string) bool {
	t := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://")
}

// IsStreamURL reports whether the input is a URL referencing a directly
// playable stream.
func IsStreamURL(s string) bool {
	t := strings.ToLower(strings.TrimSpace(s))
	if !IsURL(t) {
		return false
	}
	for _, ext := range streamExtensions {
		if strings.Contains(t, ext) {
			return true
		}
	}
	return false
}

// IsVideoHostURL reports whether the input points at a known video host,
// which gets search/link treatment instead of direct playback.
func IsVideoHostURL(s string) bool {
	return videoHostPattern.MatchString(strings.TrimSpace(s))
}
