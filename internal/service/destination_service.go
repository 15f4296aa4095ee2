package service

import (
	"context"
	"fmt"
	"strings"

	"travelbuddy/internal/models"
	"travelbuddy/internal/observability"

	"google.golang.org/genai"
)

const destinationPrompt = `Suggest one random travel destination. Respond in exactly this format, nothing else:
Line 1: the destination name (city, country)
Lines 2-6: a short enticing description of the destination, one sentence per line.`

// DestinationSuggestion is a generated travel destination.
type DestinationSuggestion struct {
	Destination string `json:"destination"`
	Description string `json:"description"`
}

// textGenerator abstracts the generative model call for testing.
type textGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// geminiGenerator calls the Gemini API.
type geminiGenerator struct {
	apiKey string
	model  string
}

func (g *geminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// DestinationService suggests travel destinations through a generative model.
type DestinationService struct {
	generator textGenerator
}

// NewDestinationService returns a DestinationService backed by Gemini.
func NewDestinationService(apiKey string) *DestinationService {
	return &DestinationService{
		generator: &geminiGenerator{apiKey: apiKey, model: "gemini-2.0-flash"},
	}
}

// newDestinationServiceWithGenerator is used by tests to stub the model.
func newDestinationServiceWithGenerator(g textGenerator) *DestinationService {
	return &DestinationService{generator: g}
}

// RandomDestination asks the model for a destination suggestion. The first
// non-empty line of the reply is the destination, the rest the description.
func (s *DestinationService) RandomDestination(ctx context.Context) (*DestinationSuggestion, error) {
	raw, err := s.generator.GenerateText(ctx, destinationPrompt)
	if err != nil {
		observability.ExternalAPICalls.WithLabelValues("gemini", "error").Inc()
		return nil, models.NewInternalError(fmt.Errorf("destination suggestion failed: %w", err))
	}

	lines := make([]string, 0, 6)
	for _, line := range strings.Split(raw, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) == 0 {
		observability.ExternalAPICalls.WithLabelValues("gemini", "empty").Inc()
		return nil, models.NewInternalError(fmt.Errorf("empty destination response"))
	}

	observability.ExternalAPICalls.WithLabelValues("gemini", "ok").Inc()
	return &DestinationSuggestion{
		Destination: lines[0],
		Description: strings.Join(lines[1:], " "),
	}, nil
}
