package content

import (
	"math"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// WordsPerMinute is the reading speed used for read time estimates
	WordsPerMinute = 200
	maxSlugLength  = 80
)

// Slugify turns a title into a lowercase, hyphen separated, URL-safe slug.
func Slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}

// PlainText extracts the visible text of an HTML (or plain text) document.
func PlainText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.TrimSpace(markup)
	}
	doc.Find("script, style").Remove()

	var b strings.Builder
	for _, n := range doc.Nodes {
		collectText(n, &b)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// collectText separates text nodes with spaces so "<h2>A</h2><p>B</p>" reads "A B"
func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// ReadTime estimates minutes needed to read body, never less than one.
func ReadTime(body string) int {
	words := len(strings.Fields(PlainText(body)))
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Excerpt returns the first maxLen characters of the body text, cut at a word boundary.
func Excerpt(body string, maxLen int) string {
	text := PlainText(body)
	if len([]rune(text)) <= maxLen {
		return text
	}
	cut := string([]rune(text)[:maxLen])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// Sanitizer strips unsafe markup from generated article bodies.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer allowing user-generated-content markup.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return &Sanitizer{policy: p}
}

// Sanitize cleans the HTML and trims surrounding whitespace.
func (s *Sanitizer) Sanitize(markup string) string {
	return strings.TrimSpace(s.policy.Sanitize(markup))
}
