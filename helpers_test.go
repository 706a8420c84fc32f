package cyberfolio

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Trimmed  Title  ", "trimmed-title"},
		{"Go 1.24 is out!", "go-1-24-is-out"},
		{"---", ""},
		{"", ""},
		{"ALL CAPS", "all-caps"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	if got := BuildURL("https://example.org", "blog", "my-post"); got != "https://example.org/blog/my-post/" {
		t.Errorf("BuildURL = %q", got)
	}
	if got := BuildURL("https://example.org"); got != "https://example.org" {
		t.Errorf("BuildURL no segments = %q", got)
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{" go ", "", "  ", "web"})
	if len(got) != 2 || got[0] != "go" || got[1] != "web" {
		t.Errorf("FilterEmpty = %v", got)
	}
}

func TestPrimaryLanguage(t *testing.T) {
	if got := primaryLanguage("en-US,en;q=0.9,de;q=0.8"); got != "en-US" {
		t.Errorf("primaryLanguage = %q", got)
	}
	if got := primaryLanguage("fr;q=0.9"); got != "fr" {
		t.Errorf("primaryLanguage = %q", got)
	}
	if got := primaryLanguage(""); got != "" {
		t.Errorf("primaryLanguage empty = %q", got)
	}
}
