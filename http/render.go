package http

import (
	"bytes"

	"github.com/fwojciec/anydocs"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML renders a section, with its heading, breadcrumb and code
// blocks, as an HTML fragment.
func RenderHTML(s *anydocs.Section) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(anydocs.FormatSection(s)), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
