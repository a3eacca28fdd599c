package htmltomarkdown_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/anydocs"
	"github.com/fwojciec/anydocs/htmltomarkdown"
	"github.com/fwojciec/anydocs/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements anydocs.Converter at compile time.
var _ anydocs.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Title</h1><h2>Subtitle</h2><h3>Section</h3>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Subtitle")
		assert.Contains(t, md, "### Section")
	})

	t.Run("converts code blocks with language hint", func(t *testing.T) {
		t.Parallel()

		html := `<pre><code class="language-go">package main

func main() {
    println("Hello")
}
</code></pre>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "```go")
		assert.Contains(t, md, "package main")
		assert.Contains(t, md, "```")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Name</th><th>Age</th></tr></thead>
<tbody><tr><td>Alice</td><td>30</td></tr><tr><td>Bob</td><td>25</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		// Table cells may have padding for alignment, so check for content
		assert.Contains(t, md, "Name")
		assert.Contains(t, md, "Age")
		assert.Contains(t, md, "Alice")
		assert.Contains(t, md, "Bob")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, anydocs.EINVALID, anydocs.ErrorCode(err))
	})

	t.Run("handles complex documentation page", func(t *testing.T) {
		t.Parallel()

		html := `<div>
<h1>Getting Started</h1>
<p>Welcome to the documentation.</p>
<h2>Installation</h2>
<p>Run the following command:</p>
<pre><code class="language-bash">go get github.com/example/pkg</code></pre>
<h2>Usage</h2>
<p>Import the package:</p>
<pre><code class="language-go">import "github.com/example/pkg"</code></pre>
<p>Then call <code>pkg.New()</code> to create an instance.</p>
<h3>Configuration</h3>
<table>
<thead><tr><th>Option</th><th>Default</th><th>Description</th></tr></thead>
<tbody>
<tr><td>timeout</td><td>30s</td><td>Request timeout</td></tr>
<tr><td>retries</td><td>3</td><td>Number of retries</td></tr>
</tbody>
</table>
</div>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Getting Started")
		assert.Contains(t, md, "## Installation")
		assert.Contains(t, md, "```bash")
		assert.Contains(t, md, "go get github.com/example/pkg")
		assert.Contains(t, md, "```go")
		assert.Contains(t, md, "`pkg.New()`")
		// Table cells may have padding for alignment
		assert.Contains(t, md, "Option")
		assert.Contains(t, md, "Default")
		assert.Contains(t, md, "Description")
	})

	t.Run("adds a heading from the title when the body has none", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Release  Notes &amp; Changes</title></head>
<body><p>Version 2 adds streaming.</p></body></html>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(md, "# Release Notes & Changes\n\n"), md)
		assert.Contains(t, md, "Version 2 adds streaming.")
	})

	t.Run("keeps existing headings", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Site Title</title></head><body><h2>API</h2><p>Calls.</p></body></html>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.NotContains(t, md, "# Site Title")
		assert.Contains(t, md, "## API")
	})

	t.Run("produces sections the markdown parser understands", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Guide</h1><p>Intro.</p><h2>Install</h2><pre><code class="language-bash">npm install foo</code></pre>`

		md, err := htmltomarkdown.NewConverter().Convert(html)
		require.NoError(t, err)

		sections, err := markdown.NewParser(nil).Parse("guide", []byte(md))
		require.NoError(t, err)
		require.Len(t, sections, 1)
		require.Len(t, sections[0].Children, 1)
		install := sections[0].Children[0]
		assert.Equal(t, "Install", install.Title)
		require.Len(t, install.CodeBlocks, 1)
		assert.Equal(t, "bash", install.CodeBlocks[0].Language)
		assert.Equal(t, "npm install foo", install.CodeBlocks[0].Code)
	})
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hooks", htmltomarkdown.Title("<TITLE>\n  Hooks\n</TITLE>"))
	assert.Empty(t, htmltomarkdown.Title("<p>no title</p>"))
}
