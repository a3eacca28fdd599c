package markdown_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/anydocs"
	"github.com/fwojciec/anydocs/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, file, src string) []*anydocs.Section {
	t.Helper()
	sections, err := markdown.NewParser(nil).Parse(file, []byte(src))
	require.NoError(t, err)
	return sections
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("nests headings by level", func(t *testing.T) {
		t.Parallel()

		sections := parse(t, "doc", "# A\n## B\n# C\n")

		require.Len(t, sections, 2)
		assert.Equal(t, "A", sections[0].Title)
		require.Len(t, sections[0].Children, 1)
		assert.Equal(t, "B", sections[0].Children[0].Title)
		assert.Equal(t, "C", sections[1].Title)
		assert.Empty(t, sections[1].Children)
		assert.Equal(t, "- A\n  - B\n- C", anydocs.RenderTOC(sections))
	})

	t.Run("assigns sequential ids per file", func(t *testing.T) {
		t.Parallel()

		flat := anydocs.FlattenSections(parse(t, "guide", "# A\n## B\n### C\n# D"))

		ids := make([]string, 0, len(flat))
		for _, s := range flat {
			ids = append(ids, s.ID)
			assert.Equal(t, "guide", s.File)
		}
		assert.Equal(t, []string{"guide-0", "guide-1", "guide-2", "guide-3"}, ids)
	})

	t.Run("records breadcrumb paths of open ancestors", func(t *testing.T) {
		t.Parallel()

		src := "# Guide\n## Install\n### Linux\n## Configure\n#### Deep\n### Options\n"
		flat := anydocs.FlattenSections(parse(t, "g", src))

		paths := make(map[string][]string)
		for _, s := range flat {
			paths[s.Title] = s.Path
		}
		assert.Empty(t, paths["Guide"])
		assert.Equal(t, []string{"Guide"}, paths["Install"])
		assert.Equal(t, []string{"Guide", "Install"}, paths["Linux"])
		assert.Equal(t, []string{"Guide"}, paths["Configure"])
		assert.Equal(t, []string{"Guide", "Configure"}, paths["Deep"])
		// Options closes Deep (deeper) but stays under Configure.
		assert.Equal(t, []string{"Guide", "Configure"}, paths["Options"])
	})

	t.Run("keeps every child deeper than its parent", func(t *testing.T) {
		t.Parallel()

		src := "### Three\n# One\n##### Five\n## Two\n###### Six\n## Two again\n"
		var check func(parent *anydocs.Section)
		check = func(parent *anydocs.Section) {
			for _, c := range parent.Children {
				assert.Greater(t, c.Level, parent.Level)
				require.NotEmpty(t, c.Path)
				assert.Equal(t, parent.Title, c.Path[len(c.Path)-1])
				check(c)
			}
		}
		for _, root := range parse(t, "x", src) {
			assert.Empty(t, root.Path)
			check(root)
		}
	})

	t.Run("collects content between headings", func(t *testing.T) {
		t.Parallel()

		sections := parse(t, "doc", "# Intro\n\nFirst line.\nSecond line.\n\n## Next\nMore.")

		assert.Equal(t, "First line.\nSecond line.", sections[0].Content)
		assert.Equal(t, "More.", sections[0].Children[0].Content)
	})

	t.Run("extracts code blocks from section bodies", func(t *testing.T) {
		t.Parallel()

		src := "# Getting Started\nInstall:\n```bash\nnpm install foo\n```\nThen run it."
		sections := parse(t, "a", src)

		require.Len(t, sections, 1)
		require.Len(t, sections[0].CodeBlocks, 1)
		assert.Equal(t, anydocs.CodeBlock{Language: "bash", Code: "npm install foo"}, sections[0].CodeBlocks[0])
		assert.Equal(t, "Install:\n"+anydocs.CodeBlockMarker+"\nThen run it.", sections[0].Content)
	})

	t.Run("extracts the first source annotation", func(t *testing.T) {
		t.Parallel()

		src := "# Page\n**Source:** https://example.com/docs/page\n\n**Source:** https://example.com/other\n# Bare\nno url"
		sections := parse(t, "p", src)

		assert.Equal(t, "https://example.com/docs/page", sections[0].SourceURL)
		assert.Empty(t, sections[1].SourceURL)
	})

	t.Run("strips zero-width anchor links from titles", func(t *testing.T) {
		t.Parallel()

		sections := parse(t, "p", "## Installation [\u200b](#installation)\n")

		assert.Equal(t, "Installation", sections[0].Title)
	})

	t.Run("strips byte-order mark and carriage returns", func(t *testing.T) {
		t.Parallel()

		sections := parse(t, "p", "\ufeff# Title\r\nBody line\r\n")

		require.Len(t, sections, 1)
		assert.Equal(t, "Title", sections[0].Title)
		assert.Equal(t, "Body line", sections[0].Content)
	})

	t.Run("returns no sections for files without headings", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, parse(t, "p", "Just text.\n\nMore text."))
		assert.Empty(t, parse(t, "p", ""))
	})

	t.Run("rejects lines that are not headings", func(t *testing.T) {
		t.Parallel()

		src := "# Real\n#NoSpace\n####### Seven\n#   \n#\n"
		sections := parse(t, "p", src)

		require.Len(t, sections, 1)
		assert.Equal(t, "#NoSpace\n####### Seven\n#   \n#", sections[0].Content)
	})

	t.Run("accepts tabs after the hashes", func(t *testing.T) {
		t.Parallel()

		sections := parse(t, "p", "##\tTabbed  ")

		require.Len(t, sections, 1)
		assert.Equal(t, 2, sections[0].Level)
		assert.Equal(t, "Tabbed", sections[0].Title)
	})

	t.Run("fails on invalid UTF-8", func(t *testing.T) {
		t.Parallel()

		_, err := markdown.NewParser(nil).Parse("bad", []byte{'#', ' ', 0xff, 0xfe})

		require.Error(t, err)
		assert.Equal(t, anydocs.EINVALID, anydocs.ErrorCode(err))
	})

	t.Run("logs a warning when the block limit is reached", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		sb.WriteString("# Many\n")
		for i := 0; i <= anydocs.MaxCodeBlocks; i++ {
			fmt.Fprintf(&sb, "```\n%d\n```\n", i)
		}

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		sections, err := markdown.NewParser(logger).Parse("m", []byte(sb.String()))

		require.NoError(t, err)
		assert.Len(t, sections[0].CodeBlocks, anydocs.MaxCodeBlocks)
		assert.Contains(t, buf.String(), "code block limit reached")
		assert.Contains(t, buf.String(), "section=m-0")
	})
}
