package feed

import (
	"regexp"

	"github.com/feedmark/feedmark/app/note"
)

// ContentRewriter replaces every literal occurrence of a downloaded image's
// source URL in the HTML with its local embed token. URLs without a
// downloaded image stay untouched so the converted Markdown keeps the remote
// reference.
type ContentRewriter struct{}

func NewContentRewriter() *ContentRewriter {
	return &ContentRewriter{}
}

// Run rewrites html using the url -> local file name map from the
// downloader. urls carries the original discovery order so replacement is
// deterministic when one URL is a prefix of another.
func (r *ContentRewriter) Run(html string, urls []string, images map[string]string) string {
	for _, url := range urls {
		fileName, ok := images[url]
		if !ok {
			continue
		}
		pattern := regexp.MustCompile(regexp.QuoteMeta(url))
		html = pattern.ReplaceAllLiteralString(html, note.Embed(fileName))
	}
	return html
}
