package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses an RSS or Atom payload into feed metadata and normalized items.
// RSS items and Atom entries come out uniform.
func (p *Parser) Run(data []byte) (*Metadata, []Item, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
		Language:    feed.Language,
	}

	items := make([]Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		items = append(items, p.normalizeItem(item))
	}

	return metadata, items, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Item {
	normalized := Item{
		GUID:        cmp.Or(item.GUID, item.Link),
		Title:       item.Title,
		Link:        item.Link,
		Content:     item.Content,
		Description: item.Description,
	}

	normalized.ContentEncoded = extensionValue(item, "content", "encoded")
	normalized.Summary = extensionValue(item, "atom", "summary")

	if item.PublishedParsed != nil {
		normalized.PublishedAt = item.PublishedParsed
	}

	if item.UpdatedParsed != nil {
		normalized.UpdatedAt = item.UpdatedParsed
	}

	if item.Categories != nil {
		normalized.Categories = item.Categories
	}

	normalized.Media = p.extractMedia(item)

	return normalized
}

// extractMedia collects item-level media descriptors from the media RSS
// extension and from enclosures.
func (p *Parser) extractMedia(item *gofeed.Item) []MediaDescriptor {
	var media []MediaDescriptor

	for _, name := range []string{"content", "thumbnail"} {
		for _, e := range extensionList(item, "media", name) {
			url := e.Attrs["url"]
			if url == "" {
				continue
			}
			medium := e.Attrs["medium"]
			if medium == "" && strings.HasPrefix(e.Attrs["type"], "image/") {
				medium = "image"
			}
			if medium == "" && name == "thumbnail" {
				medium = "image"
			}
			media = append(media, MediaDescriptor{URL: url, Medium: medium})
		}
	}

	for _, enclosure := range item.Enclosures {
		if enclosure == nil || enclosure.URL == "" {
			continue
		}
		medium := ""
		if strings.HasPrefix(enclosure.Type, "image/") {
			medium = "image"
		}
		media = append(media, MediaDescriptor{URL: enclosure.URL, Medium: medium})
	}

	return media
}

func extensionValue(item *gofeed.Item, namespace, name string) string {
	list := extensionList(item, namespace, name)
	if len(list) == 0 {
		return ""
	}
	return list[0].Value
}

func extensionList(item *gofeed.Item, namespace, name string) []ext.Extension {
	ns, ok := item.Extensions[namespace]
	if !ok {
		return nil
	}
	return ns[name]
}
