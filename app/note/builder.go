package note

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Post holds everything needed to render one imported post document.
type Post struct {
	Title             string
	PublishedAt       time.Time
	Source            string
	Feed              string
	ImportedAt        time.Time
	Body              string
	Categories        []string
	CategoryBacklinks bool
	Backlink          string
}

type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Run renders the final document: frontmatter, converted body, then the
// optional backlink blocks, each separated by a blank line.
func (b *Builder) Run(post Post) string {
	var buf bytes.Buffer

	buf.WriteString("---\n")
	fmt.Fprintf(&buf, "title: %q\n", SanitizeTitle(post.Title))
	fmt.Fprintf(&buf, "date: %s\n", post.PublishedAt.Format(time.RFC3339))
	fmt.Fprintf(&buf, "source: %s\n", post.Source)
	fmt.Fprintf(&buf, "feed: %q\n", post.Feed)
	fmt.Fprintf(&buf, "imported: %s\n", post.ImportedAt.Format(time.RFC3339))
	buf.WriteString("---\n\n")

	buf.WriteString(post.Body)

	if post.CategoryBacklinks {
		if tokens := b.categoryTokens(post.Categories); len(tokens) > 0 {
			buf.WriteString("\n\n")
			buf.WriteString(strings.Join(tokens, " "))
		}
	}

	if strings.TrimSpace(post.Backlink) != "" {
		buf.WriteString("\n\n")
		buf.WriteString(Backlink(post.Backlink))
	}

	buf.WriteString("\n")

	return buf.String()
}

// categoryTokens builds one backlink token per distinct category, preserving
// first-appearance order.
func (b *Builder) categoryTokens(categories []string) []string {
	seen := make(map[string]bool, len(categories))
	tokens := make([]string, 0, len(categories))

	for _, category := range categories {
		category = strings.TrimSpace(category)
		if category == "" || seen[category] {
			continue
		}
		seen[category] = true
		tokens = append(tokens, "[["+category+"]]")
	}

	return tokens
}
