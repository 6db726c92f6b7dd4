package identify

import "testing"

func TestNormalizeStripsReleaseTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare tag", "www.example.com - Movie.Name.2020.mkv", "Movie.Name.2020.mkv"},
		{"bracketed", "[www.Site.org] - Show Name", "Show Name"},
		{"parenthesized", "(www.site.net)-Show Name", "Show Name"},
		{"case insensitive", "WWW.EXAMPLE.COM - Title", "Title"},
		{"stacked tags", "www.a.com - www.b.com - Title", "Title"},
		{"no tag", "Plain Title", "Plain Title"},
		{"whitespace only trim", "  Plain Title  ", "Plain Title"},
		{"www mid-name untouched", "All About www.example.com", "All About www.example.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"www.example.com - Movie.Name.2020.mkv",
		"[www.site.org] - Show",
		"Plain Title",
		"",
		"  spaced  ",
		"www.a.com - www.b.com - Title",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestShowTitleFromFolder(t *testing.T) {
	tests := []struct {
		name   string
		folder string
		want   string
	}{
		{"plain", "The Show", "The Show"},
		{"season batch annotation", "The Show S01 - EP(1-12) [1080p]", "The Show"},
		{"trailing year", "The Show (2019) 1080p", "The Show"},
		{"release tag and year", "www.site.com - The Show (2019)", "The Show"},
		{"annotation before year", "The Show S02 - EP(13-24) (2020)", "The Show"},
		{"trailing dash", "The Show - ", "The Show"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShowTitleFromFolder(tt.folder); got != tt.want {
				t.Errorf("ShowTitleFromFolder(%q) = %q, want %q", tt.folder, got, tt.want)
			}
		})
	}
}
