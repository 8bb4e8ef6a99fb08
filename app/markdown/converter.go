package markdown

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// Converter turns post HTML into Markdown with a fixed rendering style. The
// style is not user-configurable so converting the same input always yields
// the same output.
type Converter struct {
	converter *md.Converter
}

func NewConverter() *Converter {
	converter := md.NewConverter("", true, &md.Options{
		HeadingStyle:       "atx",
		HorizontalRule:     "---",
		BulletListMarker:   "-",
		CodeBlockStyle:     "fenced",
		Fence:              "```",
		EmDelimiter:        "*",
		StrongDelimiter:    "**",
		LinkStyle:          "inlined",
		LinkReferenceStyle: "full",
	})

	return &Converter{converter: converter}
}

func (c *Converter) Run(html string) (string, error) {
	html = strings.TrimSpace(html)
	if html == "" {
		return "", nil
	}

	out, err := c.converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	return strings.TrimSpace(out), nil
}
