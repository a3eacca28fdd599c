package index

import (
	"math"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/anydocs"
)

// Scoring weights.
const (
	exactTitleBonus   = 100
	titleQueryBonus   = 50
	pathQueryBonus    = 30
	titleTermWeight   = 20
	titleStemWeight   = 10
	contentTermWeight = 2
	maxTermFrequency  = 10
	maxStemFrequency  = 5

	codeTermBonus      = 15
	codeStemBonus      = 8
	titlePhraseBonus   = 75
	contentPhraseBonus = 40
	proximityWindow    = 5
	proximityBonus     = 10
	maxProximityScore  = 30
	codeDiversityBonus = 5
	codeDiversityMin   = 3
	maxCodeScore       = 40
)

// Query is a normalized search query.
type Query struct {
	// Lowercased query text, unsplit.
	Raw string

	// Lowercased whitespace-delimited terms longer than two characters.
	Terms []string

	// Stems of Terms, index-aligned.
	Stems []string
}

// ParseQuery normalizes a raw query string.
func ParseQuery(s string) Query {
	q := Query{Raw: strings.ToLower(s)}
	for _, term := range strings.Fields(q.Raw) {
		if utf8.RuneCountInString(term) <= 2 {
			continue
		}
		q.Terms = append(q.Terms, term)
		q.Stems = append(q.Stems, anydocs.Stem(term))
	}
	return q
}

// Search ranks the sections of idx against query and returns those with a
// positive score, best first. Equal scores keep index order. A nil index or
// a blank query yields no results.
func Search(idx *anydocs.Index, query string, opts anydocs.SearchOptions) []*anydocs.Section {
	if idx == nil || strings.TrimSpace(query) == "" {
		return nil
	}
	opts = opts.WithDefaults()
	q := ParseQuery(query)

	idf := inverseFrequencies(idx, q)
	filter := strings.ToLower(opts.FileFilter)

	type hit struct {
		section *anydocs.Section
		score   float64
	}
	var hits []hit
	for _, s := range idx.All {
		if filter != "" && !strings.Contains(strings.ToLower(s.File), filter) {
			continue
		}
		if sc := score(s, q, idf, opts.SearchIn); sc > 0 {
			hits = append(hits, hit{section: s, score: sc})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > opts.MaxResults {
		hits = hits[:opts.MaxResults]
	}

	results := make([]*anydocs.Section, len(hits))
	for i, h := range hits {
		results[i] = h.section
	}
	return results
}

// Score returns the relevance of s to query within idx. Search returns only
// sections with a positive score.
func Score(idx *anydocs.Index, s *anydocs.Section, query string, scope anydocs.SearchScope) float64 {
	if s == nil || strings.TrimSpace(query) == "" {
		return 0
	}
	if scope == "" {
		scope = anydocs.SearchAll
	}
	q := ParseQuery(query)
	return score(s, q, inverseFrequencies(idx, q), scope)
}

// inverseFrequencies returns ln(N/(df+1))+1 per query term, where N is the
// section count (at least 1) and df is 0 for unseen terms.
func inverseFrequencies(idx *anydocs.Index, q Query) []float64 {
	n := 1
	var df map[string]int
	if idx != nil {
		n = max(len(idx.All), 1)
		df = idx.DocumentFrequency
	}
	idf := make([]float64, len(q.Terms))
	for i, term := range q.Terms {
		idf[i] = math.Log(float64(n)/float64(df[term]+1)) + 1
	}
	return idf
}

func score(s *anydocs.Section, q Query, idf []float64, scope anydocs.SearchScope) float64 {
	title := strings.ToLower(s.Title)
	content := strings.ToLower(s.Content)
	path := strings.ToLower(strings.Join(s.Path, " "))

	var total float64
	if title == q.Raw {
		total += exactTitleBonus
	}
	if strings.Contains(title, q.Raw) {
		total += titleQueryBonus
	}
	if strings.Contains(path, q.Raw) {
		total += pathQueryBonus
	}

	titleStems := stems(strings.Fields(title))
	inTitle := scope == anydocs.SearchAll || scope == anydocs.SearchTitle
	inContent := scope == anydocs.SearchAll || scope == anydocs.SearchContent

	var contentTokens []string
	if inContent || len(s.CodeBlocks) > 0 {
		contentTokens = strings.Fields(content)
	}
	var contentStems []string
	if inContent {
		contentStems = stems(contentTokens)
	}

	for i, term := range q.Terms {
		if inTitle {
			if strings.Contains(title, term) {
				total += titleTermWeight * idf[i]
			}
			if slices.Contains(titleStems, q.Stems[i]) {
				total += titleStemWeight * idf[i]
			}
		}
		if inContent {
			tf := min(strings.Count(content, term), maxTermFrequency)
			total += float64(tf) * idf[i] * contentTermWeight

			var stemHits int
			for _, st := range contentStems {
				if st == q.Stems[i] {
					stemHits++
				}
			}
			total += float64(min(stemHits, maxStemFrequency)) * idf[i]
		}
	}

	if len(s.CodeBlocks) > 0 {
		total += codeScore(s, q, title, titleStems, content, contentTokens)
	}
	return total
}

// codeScore combines code, phrase and proximity evidence, capped at
// maxCodeScore.
func codeScore(s *anydocs.Section, q Query, title string, titleStems []string, content string, contentTokens []string) float64 {
	codes := make([]string, len(s.CodeBlocks))
	for i, b := range s.CodeBlocks {
		codes[i] = strings.ToLower(b.Code)
	}
	code := strings.Join(codes, " ")
	codeStems := stems(strings.Fields(code))

	var total float64
	for i, term := range q.Terms {
		var termScore float64
		if strings.Contains(code, term) {
			termScore += codeTermBonus
		}
		if slices.Contains(codeStems, q.Stems[i]) {
			termScore += codeStemBonus
		}
		if strings.Contains(title, term) || slices.Contains(titleStems, q.Stems[i]) {
			termScore *= 2
		}
		total += termScore
	}

	if len(q.Terms) > 1 {
		phrase := strings.Join(q.Terms, " ")
		if strings.Contains(title, phrase) {
			total += titlePhraseBonus
		}
		if strings.Contains(content, phrase) {
			total += contentPhraseBonus
		}
		total += proximity(contentTokens, q)
	}

	if len(s.CodeBlocks) >= codeDiversityMin {
		total += codeDiversityBonus
	}
	return min(total, maxCodeScore)
}

// proximity awards proximityBonus for every window of proximityWindow
// content tokens in which each query term appears.
func proximity(tokens []string, q Query) float64 {
	tokenStems := stems(tokens)
	var total float64
	for i := 0; i < len(tokens)-1 && total < maxProximityScore; i++ {
		end := min(i+proximityWindow, len(tokens))
		if windowHasAll(tokens[i:end], tokenStems[i:end], q) {
			total += proximityBonus
		}
	}
	return min(total, maxProximityScore)
}

func windowHasAll(tokens, tokenStems []string, q Query) bool {
	for i, term := range q.Terms {
		found := false
		for j, tok := range tokens {
			if strings.Contains(tok, term) || tokenStems[j] == q.Stems[i] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func stems(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = anydocs.Stem(tok)
	}
	return out
}

