package note

import (
	"testing"
	"time"
)

func TestSanitizeTitleInvalidCharacters(t *testing.T) {
	sanitized := SanitizeTitle(`What <is> "Go"? / A\B|C:*`)

	for _, forbidden := range []string{"<", ">", ":", `"`, "/", `\`, "|", "?", "*"} {
		for i := 0; i < len(sanitized); i++ {
			if string(sanitized[i]) == forbidden {
				t.Errorf("Sanitized title still contains %q: %s", forbidden, sanitized)
			}
		}
	}
}

func TestSanitizeTitleCollapsesWhitespace(t *testing.T) {
	sanitized := SanitizeTitle("  Hello \t  World\n\n Again  ")

	if sanitized != "Hello World Again" {
		t.Errorf("Expected 'Hello World Again', got '%s'", sanitized)
	}
}

func TestFileName(t *testing.T) {
	publishedAt := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	name := FileName(publishedAt, "A Post: About Go")

	if name != "2024-03-15 - A Post- About Go.md" {
		t.Errorf("Unexpected file name: %s", name)
	}
}

func TestEmbed(t *testing.T) {
	if Embed("pic-1.jpg") != "![[pic-1.jpg]]" {
		t.Errorf("Unexpected embed token: %s", Embed("pic-1.jpg"))
	}
}

func TestBacklink(t *testing.T) {
	if Backlink("Imported") != "[[Imported]]" {
		t.Errorf("Expected '[[Imported]]', got '%s'", Backlink("Imported"))
	}

	// Already in token form, pass through unchanged
	if Backlink("[[Imported]]") != "[[Imported]]" {
		t.Errorf("Expected '[[Imported]]', got '%s'", Backlink("[[Imported]]"))
	}

	if Backlink("  Inbox ") != "[[Inbox]]" {
		t.Errorf("Expected '[[Inbox]]', got '%s'", Backlink("  Inbox "))
	}
}
