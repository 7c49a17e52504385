package content_test

import (
	"strings"
	"testing"

	"github.com/event-content-pipeline/internal/content"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Riyadh Season Concert", "riyadh-season-concert"},
		{"  Café Nights: Jazz & Soul!  ", "cafe-nights-jazz-soul"},
		{"2027 -- New Year's Eve", "2027-new-year-s-eve"},
		{"حفلة", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := content.Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugify_MaxLength(t *testing.T) {
	slug := content.Slugify(strings.Repeat("word ", 40))
	if len(slug) > 80 {
		t.Errorf("Expected slug at most 80 chars, got %d", len(slug))
	}
	if strings.HasSuffix(slug, "-") {
		t.Errorf("Slug should not end with a dash: %q", slug)
	}
}

func TestReadTime(t *testing.T) {
	if got := content.ReadTime(""); got != 1 {
		t.Errorf("Expected minimum read time 1, got %d", got)
	}

	body := "<p>" + strings.Repeat("word ", 401) + "</p>"
	if got := content.ReadTime(body); got != 3 {
		t.Errorf("Expected 3 minutes for 401 words, got %d", got)
	}
}

func TestPlainText_DropsMarkupAndScripts(t *testing.T) {
	html := `<h2>Title</h2><script>alert(1)</script><p>Hello <strong>world</strong></p>`
	if got := content.PlainText(html); got != "Title Hello world" {
		t.Errorf("Unexpected plain text %q", got)
	}
}

func TestExcerpt(t *testing.T) {
	short := "<p>Short body</p>"
	if got := content.Excerpt(short, 50); got != "Short body" {
		t.Errorf("Unexpected excerpt %q", got)
	}

	long := "<p>The festival returns with three stages, forty artists and a late night market.</p>"
	got := content.Excerpt(long, 30)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Expected ellipsis, got %q", got)
	}
	if len([]rune(got)) > 31 {
		t.Errorf("Excerpt too long: %q", got)
	}
}

func TestSanitizer(t *testing.T) {
	s := content.NewSanitizer()
	out := s.Sanitize(`  <p onclick="x()">Hi</p><script>alert(1)</script><a href="https://tickets.example.com">Book</a>  `)

	if strings.Contains(out, "script") || strings.Contains(out, "onclick") {
		t.Errorf("Unsafe markup kept: %q", out)
	}
	if !strings.Contains(out, `rel="nofollow`) {
		t.Errorf("Expected nofollow on links: %q", out)
	}
	if strings.HasPrefix(out, " ") {
		t.Errorf("Expected trimmed output: %q", out)
	}
}
