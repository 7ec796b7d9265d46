// Package itinerary generates day-by-day trip plans with a Gemini model.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/schema"
)

const (
	// DefaultModel is used when no model name is configured.
	DefaultModel = "gemini-1.5-flash"

	defaultTemperature = 0.7
	defaultMaxTokens   = 4096
)

// ErrEmptyPlan is returned when the model answers with no content.
var ErrEmptyPlan = errors.New("model returned an empty itinerary")

// Model is the subset of a langchaingo model used by Generator.
// *googleai.GoogleAI satisfies it.
type Model interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Generator asks a language model for an itinerary.
type Generator struct {
	model       Model
	temperature float64
	maxTokens   int
}

// New constructs a Generator backed by Google's Gemini API.
func New(ctx context.Context, apiKey, modelName string) (*Generator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return NewWithModel(client), nil
}

// NewWithModel constructs a Generator around any content model (used in tests).
func NewWithModel(m Model) *Generator {
	return &Generator{model: m, temperature: defaultTemperature, maxTokens: defaultMaxTokens}
}

// Generate produces a plan covering req.Days days.
func (g *Generator) Generate(ctx context.Context, req Request) (*Plan, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, buildPrompt(req)),
	}

	resp, err := g.model.GenerateContent(ctx, messages,
		llms.WithTemperature(g.temperature),
		llms.WithMaxTokens(g.maxTokens),
	)
	if err != nil {
		return nil, fmt.Errorf("generating itinerary for %s: %w", req.Destination, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, ErrEmptyPlan
	}

	text := strings.TrimSpace(resp.Choices[0].Content)
	if text == "" {
		return nil, ErrEmptyPlan
	}

	return parsePlan(text, req.StartDate), nil
}

func buildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a %d-day trip from %s to %s, starting on %s and ending on %s.\n",
		req.Days, req.Source, req.Destination, req.StartDate, req.EndDate)
	b.WriteString("Include sightseeing, food and local experiences for each day, and mention how to travel ")
	fmt.Fprintf(&b, "from %s to %s on the first day.\n", req.Source, req.Destination)
	b.WriteString("Respond with JSON only, shaped as ")
	b.WriteString(`{"summary": "...", "days": [{"day": 1, "date": "YYYY-MM-DD", "title": "...", "activities": ["..."]}]}`)
	fmt.Fprintf(&b, " with exactly %d entries in \"days\".", req.Days)
	return b.String()
}
