package feed

import (
	"strings"
)

// SelectContent returns the richest available HTML body for an item: the
// first non-empty field among content:encoded, content, description and
// summary. Feeds that carry a full-content field usually put a truncated
// teaser in description, so the order matters. Returns "" when every field
// is empty; downstream stages tolerate an empty body.
func SelectContent(item Item) string {
	for _, candidate := range []string{item.ContentEncoded, item.Content, item.Description, item.Summary} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}
