package note

import (
	"strings"
	"testing"
	"time"
)

func TestBuilderFrontmatterOrder(t *testing.T) {
	builder := NewBuilder()

	doc := builder.Run(Post{
		Title:       "Test Post",
		PublishedAt: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		Source:      "https://example.com/post",
		Feed:        "Example Blog",
		ImportedAt:  time.Date(2024, 3, 16, 8, 0, 0, 0, time.UTC),
		Body:        "Hello world.",
	})

	lines := strings.Split(doc, "\n")
	if lines[0] != "---" {
		t.Fatalf("Expected frontmatter delimiter, got '%s'", lines[0])
	}
	if lines[1] != `title: "Test Post"` {
		t.Errorf("Expected quoted title first, got '%s'", lines[1])
	}
	if lines[2] != "date: 2024-03-15T10:30:00Z" {
		t.Errorf("Expected ISO-8601 date second, got '%s'", lines[2])
	}
	if lines[3] != "source: https://example.com/post" {
		t.Errorf("Expected source third, got '%s'", lines[3])
	}
	if lines[4] != `feed: "Example Blog"` {
		t.Errorf("Expected quoted feed fourth, got '%s'", lines[4])
	}
	if lines[5] != "imported: 2024-03-16T08:00:00Z" {
		t.Errorf("Expected imported fifth, got '%s'", lines[5])
	}
	if lines[6] != "---" {
		t.Errorf("Expected closing delimiter, got '%s'", lines[6])
	}
	if lines[7] != "" {
		t.Errorf("Expected blank line between frontmatter and body, got '%s'", lines[7])
	}
	if lines[8] != "Hello world." {
		t.Errorf("Expected body, got '%s'", lines[8])
	}
}

func TestBuilderEmptySource(t *testing.T) {
	builder := NewBuilder()

	doc := builder.Run(Post{
		Title:       "No Link",
		PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ImportedAt:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Body:        "Body.",
	})

	if !strings.Contains(doc, "source: \n") {
		t.Error("Expected empty source field to be present")
	}
}

func TestBuilderCategoryBacklinks(t *testing.T) {
	builder := NewBuilder()

	doc := builder.Run(Post{
		Title:             "Tagged",
		PublishedAt:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ImportedAt:        time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Body:              "Body.",
		Categories:        []string{"go", "programming", "go"},
		CategoryBacklinks: true,
	})

	if !strings.Contains(doc, "Body.\n\n[[go]] [[programming]]") {
		t.Errorf("Expected deduplicated category backlinks after blank line, got:\n%s", doc)
	}
}

func TestBuilderCategoryBacklinksDisabled(t *testing.T) {
	builder := NewBuilder()

	doc := builder.Run(Post{
		Title:       "Tagged",
		PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ImportedAt:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Body:        "Body.",
		Categories:  []string{"go"},
	})

	if strings.Contains(doc, "[[go]]") {
		t.Error("Categories should not be appended when disabled")
	}
}

func TestBuilderCustomBacklink(t *testing.T) {
	builder := NewBuilder()

	doc := builder.Run(Post{
		Title:       "Linked",
		PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ImportedAt:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Body:        "Body.",
		Backlink:    "RSS Imports",
	})

	if !strings.HasSuffix(doc, "Body.\n\n[[RSS Imports]]\n") {
		t.Errorf("Expected custom backlink appended after blank line, got:\n%s", doc)
	}
}

func TestBuilderBothBacklinkBlocks(t *testing.T) {
	builder := NewBuilder()

	doc := builder.Run(Post{
		Title:             "Both",
		PublishedAt:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ImportedAt:        time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Body:              "Body.",
		Categories:        []string{"go"},
		CategoryBacklinks: true,
		Backlink:          "[[RSS Imports]]",
	})

	if !strings.HasSuffix(doc, "Body.\n\n[[go]]\n\n[[RSS Imports]]\n") {
		t.Errorf("Expected both backlink blocks separated by blank lines, got:\n%s", doc)
	}
}
