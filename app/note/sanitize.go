package note

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// SanitizeTitle makes a post title safe for use in file names: characters
// that are invalid on common filesystems become "-", whitespace runs collapse
// to a single space.
func SanitizeTitle(title string) string {
	s := invalidChars.ReplaceAllString(title, "-")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FileName derives the note file name for a post from its publication date
// and sanitized title.
func FileName(publishedAt time.Time, title string) string {
	return fmt.Sprintf("%s - %s.md", publishedAt.Format("2006-01-02"), SanitizeTitle(title))
}

// Embed returns the embed token for a stored image file. The double-bracket
// form makes downstream renderers embed the file instead of linking it.
func Embed(fileName string) string {
	return "![[" + fileName + "]]"
}

// Backlink normalizes a backlink string to double-bracket token form. Strings
// already in token form pass through unchanged.
func Backlink(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[[") && strings.HasSuffix(s, "]]") {
		return s
	}
	return "[[" + s + "]]"
}
