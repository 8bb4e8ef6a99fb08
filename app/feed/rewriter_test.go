package feed

import (
	"strings"
	"testing"
)

func TestContentRewriterReplacesAllOccurrences(t *testing.T) {
	rewriter := NewContentRewriter()

	html := `<img src="https://example.com/pic.png"><a href="https://example.com/pic.png">same</a>`
	urls := []string{"https://example.com/pic.png"}
	images := map[string]string{"https://example.com/pic.png": "Post-1.png"}

	out := rewriter.Run(html, urls, images)

	if strings.Contains(out, "https://example.com/pic.png") {
		t.Errorf("Original URL should be fully replaced, got:\n%s", out)
	}
	if strings.Count(out, "![[Post-1.png]]") != 2 {
		t.Errorf("Expected 2 embed tokens, got:\n%s", out)
	}
}

func TestContentRewriterLeavesFailedURLs(t *testing.T) {
	rewriter := NewContentRewriter()

	// A failed, B succeeded: B's token everywhere B appeared, A untouched.
	html := `<img src="https://example.com/a.png"><img src="https://example.com/b.png"><img src="https://example.com/a.png">`
	urls := []string{"https://example.com/a.png", "https://example.com/b.png"}
	images := map[string]string{"https://example.com/b.png": "Post-2.png"}

	out := rewriter.Run(html, urls, images)

	if strings.Count(out, "https://example.com/a.png") != 2 {
		t.Errorf("Failed URL must stay unchanged everywhere it appeared, got:\n%s", out)
	}
	if !strings.Contains(out, "![[Post-2.png]]") {
		t.Errorf("Expected embed token for succeeded URL, got:\n%s", out)
	}
	if strings.Contains(out, "https://example.com/b.png") {
		t.Errorf("Succeeded URL should be fully replaced, got:\n%s", out)
	}
}

func TestContentRewriterEscapesMetacharacters(t *testing.T) {
	rewriter := NewContentRewriter()

	// URL containing regex metacharacters must match literally.
	url := "https://example.com/pic.png?w=100&h=100(crop)"
	html := `<img src="` + url + `">`
	images := map[string]string{url: "Post-1.png"}

	out := rewriter.Run(html, []string{url}, images)

	if !strings.Contains(out, "![[Post-1.png]]") {
		t.Errorf("Expected metacharacter URL to be replaced, got:\n%s", out)
	}
}

func TestContentRewriterEmptyMap(t *testing.T) {
	rewriter := NewContentRewriter()

	html := `<img src="https://example.com/pic.png">`
	out := rewriter.Run(html, []string{"https://example.com/pic.png"}, nil)

	if out != html {
		t.Errorf("HTML must be unchanged without downloaded images, got:\n%s", out)
	}
}
