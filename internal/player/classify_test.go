package player

import "testing"

func TestIsURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"http://example.com", true},
		{"https://example.com", true},
		{"  HTTPS://EXAMPLE.COM  ", true},
		{"ftp://example.com", false},
		{"example.com", false},
		{"just a song title", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsURL(tc.in); got != tc.want {
			t.Errorf("IsURL(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsStreamURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://cdn.example/stream.m3u8", true},
		{"https://cdn.example/track.mp3", true},
		{"https://radio.example/live.aac?token=abc", true},
		{"HTTPS://CDN.EXAMPLE/SONG.FLAC", true},
		{"https://cdn.example/stream.m3u8?sig=1#frag", true},
		{"https://example.com/page.html", false},
		{"stream.m3u8", false}, // not a URL
		{"lofi hip hop radio", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsStreamURL(tc.in); got != tc.want {
			t.Errorf("IsStreamURL(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsVideoHostURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://www.YouTube.com/watch?v=abc", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"https://music.youtube.com/watch?v=abc", true},
		{"https://example.com/watch?v=abc", false},
		{"lofi hip hop radio", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsVideoHostURL(tc.in); got != tc.want {
			t.Errorf("IsVideoHostURL(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
