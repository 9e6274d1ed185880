package httputil

import (
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid HTTPS", "https://animepahe.com/anime/example", false},
		{"HTTP rejected", "http://animepahe.com/api", true},
		{"javascript scheme rejected", "javascript:alert(1)", true},
		{"data scheme rejected", "data:text/html,<h1>Hi</h1>", true},
		{"empty string", "", true},
		{"no host", "https://", true},
		{"valid with port", "https://127.0.0.1:8443/api", false},
		{"valid with query", "https://animepahe.com/api?m=search&q=test", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"normal filename", "Example Episode 1.mkv", "Example Episode 1.mkv"},
		{"path traversal", "../../etc/passwd", "passwd"},
		{"directory components", "/home/user/secret.txt", "secret.txt"},
		{"null bytes", "episode\x00.mkv", "episode.mkv"},
		{"Windows special chars", "ep<>:\"|?*.mkv", "ep_______.mkv"},
		{"double dots", "episode..mkv", "episode_mkv"},
		{"empty string", "", "untitled"},
		{"just dot", ".", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSafeDownloadPath(t *testing.T) {
	tests := []struct {
		name     string
		dir      string
		filename string
	}{
		{"normal", "/tmp/downloads", "Example Episode 1.mkv"},
		{"path traversal attempt", "/tmp/downloads", "../../etc/passwd"},
		{"shell injection", "/tmp/downloads", "$(whoami).mkv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := SafeDownloadPath(tt.dir, tt.filename)
			if err != nil {
				t.Fatalf("SafeDownloadPath(%q, %q) error = %v", tt.dir, tt.filename, err)
			}
			if path == "" {
				t.Error("SafeDownloadPath returned empty path without error")
			}
		})
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segs     []string
		expected string
	}{
		{"https://animepahe.com/anime/example", []string{"abc"}, "https://animepahe.com/anime/example/abc"},
		{"https://animepahe.com/anime/example/", []string{"abc"}, "https://animepahe.com/anime/example/abc"},
		{"https://animepahe.com", []string{"anime", "a b"}, "https://animepahe.com/anime/a%20b"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := BuildURL(tt.base, tt.segs...)
			if got != tt.expected {
				t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.expected)
			}
		})
	}
}
