// Package htmltomarkdown converts imported HTML pages to indexable Markdown.
package htmltomarkdown

import (
	"html"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/anydocs"
)

var (
	titleRe      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	atxRe        = regexp.MustCompile(`(?m)^#{1,6}[ \t]+\S`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

// Ensure Converter implements anydocs.Converter at compile time.
var _ anydocs.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML page into Markdown. Pages whose body has no
// heading get one from the document title, since text outside any heading
// is not indexed.
func (c *Converter) Convert(page string) (string, error) {
	if strings.TrimSpace(page) == "" {
		return "", anydocs.Errorf(anydocs.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(page)
	if err != nil {
		return "", err
	}
	md = strings.TrimSpace(blankLinesRe.ReplaceAllString(md, "\n\n"))

	if !atxRe.MatchString(md) {
		if title := Title(page); title != "" {
			md = "# " + title + "\n\n" + md
		}
	}
	return md, nil
}

// Title returns the text of the page's <title> element, if any.
func Title(page string) string {
	m := titleRe.FindStringSubmatch(page)
	if m == nil {
		return ""
	}
	return strings.Join(strings.Fields(html.UnescapeString(m[1])), " ")
}
