package browser

import "testing"

func TestOpenRejectsUnsafeSchemes(t *testing.T) {
	for _, raw := range []string{
		"file:///etc/passwd",
		"javascript:alert(1)",
		"ftp://example.com",
		"",
	} {
		if err := Open(raw); err == nil {
			t.Errorf("Open(%q): expected error, got nil", raw)
		}
	}
}

func TestOpenArgs(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
	}{
		{"darwin", "open"},
		{"windows", "rundll32"},
		{"linux", "xdg-open"},
		{"freebsd", "xdg-open"},
	}
	for _, tt := range tests {
		name, args := openArgs(tt.goos, "https://example.com")
		if name != tt.wantName {
			t.Errorf("openArgs(%q) name = %q, want %q", tt.goos, name, tt.wantName)
		}
		if len(args) == 0 || args[len(args)-1] != "https://example.com" {
			t.Errorf("openArgs(%q) args = %v, want the URL as the final argument", tt.goos, args)
		}
	}
}

func TestSearchURL(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"golang", "https://www.google.com/search?q=golang"},
		{"go generics tutorial", "https://www.google.com/search?q=go+generics+tutorial"},
		{"c++ & rust", "https://www.google.com/search?q=c%2B%2B+%26+rust"},
	}
	for _, tt := range tests {
		if got := SearchURL(tt.query); got != tt.want {
			t.Errorf("SearchURL(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}
