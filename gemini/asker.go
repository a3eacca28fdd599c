package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/anydocs"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Context limits for a single question.
const (
	DefaultMaxSections   = 8
	DefaultContextBudget = 32000
)

// Ensure Asker implements anydocs.Asker at compile time.
var _ anydocs.Asker = (*Asker)(nil)

// Asker implements anydocs.Asker using Google Gemini. The documentation
// context is the best-ranked sections of the active index.
type Asker struct {
	client *genai.Client
	index  anydocs.IndexService

	// Model overrides DefaultModel.
	Model string

	// MaxSections limits the number of sections searched for context.
	MaxSections int

	// TokenCounter, when set, trims the context to ContextBudget tokens.
	TokenCounter  anydocs.TokenCounter
	ContextBudget int
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, index anydocs.IndexService) *Asker {
	return &Asker{
		client:        client,
		index:         index,
		Model:         DefaultModel,
		MaxSections:   DefaultMaxSections,
		ContextBudget: DefaultContextBudget,
	}
}

// Ask answers a natural language question about the active documentation.
func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", anydocs.Errorf(anydocs.EINVALID, "question required")
	}

	if !a.index.Stats().Built() {
		return "", anydocs.Errorf(anydocs.ENOTFOUND, "no documentation index is active")
	}
	sections := a.index.Search(question, anydocs.SearchOptions{MaxResults: a.MaxSections})
	if len(sections) == 0 {
		return "", anydocs.Errorf(anydocs.ENOTFOUND, "no documentation sections match %q", question)
	}

	sections, err := a.fit(ctx, sections)
	if err != nil {
		return "", err
	}

	model := a.Model
	if model == "" {
		model = DefaultModel
	}
	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(sections, question)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", anydocs.Errorf(anydocs.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// fit drops the lowest-ranked sections until the rest fit the token
// budget. The best section is always kept.
func (a *Asker) fit(ctx context.Context, sections []*anydocs.Section) ([]*anydocs.Section, error) {
	if a.TokenCounter == nil || a.ContextBudget <= 0 {
		return sections, nil
	}
	total := 0
	for i, s := range sections {
		n, err := a.TokenCounter.CountTokens(ctx, anydocs.FormatSection(s))
		if err != nil {
			return nil, fmt.Errorf("count tokens: %w", err)
		}
		total += n
		if total > a.ContextBudget && i > 0 {
			return sections[:i], nil
		}
	}
	return sections, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about software documentation. Answer based only on the documentation sections provided and cite the section IDs you used. If the answer is not in the documentation, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing documentation sections
// and the question.
func BuildUserPrompt(sections []*anydocs.Section, question string) string {
	var sb strings.Builder
	sb.WriteString("<documentation>\n")
	for i, s := range sections {
		sb.WriteString("<section>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<id>%s</id>\n", s.ID)
		fmt.Fprintf(&sb, "<title>%s</title>\n", s.Trail(" > "))
		if s.SourceURL != "" {
			fmt.Fprintf(&sb, "<source>%s</source>\n", s.SourceURL)
		}
		fmt.Fprintf(&sb, "<content>%s</content>\n", anydocs.RenderContent(s))
		sb.WriteString("</section>\n")
	}
	sb.WriteString("</documentation>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
