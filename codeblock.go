package anydocs

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Limits applied while extracting fenced code blocks. Content beyond these
// limits is truncated or left in place rather than rejected.
const (
	MaxContentSize    = 1024 * 1024
	MaxCodeBlockSize  = 50000
	MaxCodeBlocks     = 100
	MaxLanguageLength = 30
	CodeBlockMarker   = "[CODE_BLOCK]"
)

const fence = "```"

// CodeBlock is a fenced code region extracted from a section body.
type CodeBlock struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Extraction is the result of ExtractCodeBlocks.
type Extraction struct {
	// Content is the input with every extracted block replaced by
	// CodeBlockMarker.
	Content    string
	CodeBlocks []CodeBlock

	// Truncated reports that the input exceeded MaxContentSize.
	Truncated bool

	// Capped reports that MaxCodeBlocks was reached while more fences remained.
	Capped bool
}

// fencePos records where a "```" occurs, in bytes and in runes.
type fencePos struct {
	byteOff int
	runeOff int
}

// ExtractCodeBlocks removes fenced code blocks from content.
//
// A block is "```", an optional tag of up to MaxLanguageLength word
// characters, a newline, at most MaxCodeBlockSize characters of body and a
// closing "```". The scan is linear in the input: fence positions are
// collected once and each opening fence is resolved with a binary search.
func ExtractCodeBlocks(content string) Extraction {
	var ex Extraction
	if len(content) > MaxContentSize {
		cut := MaxContentSize
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut]
		ex.Truncated = true
	}

	fences := findFences(content)
	if len(fences) == 0 {
		ex.Content = content
		return ex
	}

	var sb strings.Builder
	sb.Grow(len(content))
	pos := 0
	for _, f := range fences {
		if len(ex.CodeBlocks) == MaxCodeBlocks {
			ex.Capped = true
			break
		}
		if f.byteOff < pos {
			continue
		}
		block, end, ok := matchBlock(content, fences, f)
		if !ok {
			continue
		}
		sb.WriteString(content[pos:f.byteOff])
		sb.WriteString(CodeBlockMarker)
		ex.CodeBlocks = append(ex.CodeBlocks, block)
		pos = end
	}
	if ex.Capped && !strings.Contains(content[pos:], fence) {
		ex.Capped = false
	}
	sb.WriteString(content[pos:])
	ex.Content = sb.String()
	return ex
}

// findFences returns every (possibly overlapping) occurrence of "```".
func findFences(s string) []fencePos {
	var out []fencePos
	runes := 0
	for i := 0; i < len(s); i++ {
		if i+len(fence) <= len(s) && s[i] == '`' && s[i+1] == '`' && s[i+2] == '`' {
			out = append(out, fencePos{byteOff: i, runeOff: runes})
		}
		if utf8.RuneStart(s[i]) {
			runes++
		}
	}
	return out
}

// matchBlock tries to read a complete block opening at f.
func matchBlock(s string, fences []fencePos, f fencePos) (CodeBlock, int, bool) {
	p := f.byteOff + len(fence)
	langStart := p
	for p < len(s) && p-langStart < MaxLanguageLength && isWordByte(s[p]) {
		p++
	}
	if p >= len(s) || s[p] != '\n' {
		return CodeBlock{}, 0, false
	}
	lang := s[langStart:p]
	bodyStart := p + 1
	bodyStartRunes := f.runeOff + (bodyStart - f.byteOff)

	i := sort.Search(len(fences), func(i int) bool { return fences[i].byteOff >= bodyStart })
	if i == len(fences) {
		return CodeBlock{}, 0, false
	}
	closing := fences[i]
	if closing.runeOff-bodyStartRunes > MaxCodeBlockSize {
		return CodeBlock{}, 0, false
	}

	if lang == "" {
		lang = "text"
	}
	return CodeBlock{
		Language: lang,
		Code:     strings.TrimSpace(s[bodyStart:closing.byteOff]),
	}, closing.byteOff + len(fence), true
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
