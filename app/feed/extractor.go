package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ImageExtractor discovers the image URLs referenced by a post: every <img>
// src in the HTML body in document order, then item-level media descriptors
// declared as images. URLs deduplicate by exact string match.
type ImageExtractor struct{}

func NewImageExtractor() *ImageExtractor {
	return &ImageExtractor{}
}

func (e *ImageExtractor) Run(html string, item Item) []string {
	seen := make(map[string]bool)
	var urls []string

	add := func(url string) {
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		urls = append(urls, url)
	}

	if strings.TrimSpace(html) != "" {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err == nil {
			doc.Find("img").Each(func(_ int, img *goquery.Selection) {
				if src, ok := img.Attr("src"); ok {
					add(src)
				}
			})
		}
	}

	for _, media := range item.Media {
		if media.Medium == "image" {
			add(media.URL)
		}
	}

	return urls
}
