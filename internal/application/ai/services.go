package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bryanwahyu/lexguard/internal/domain/ai"
	"github.com/bryanwahyu/lexguard/internal/domain/analysis"
	"github.com/bryanwahyu/lexguard/internal/domain/language"
)

var errEmptyPrompt = errors.New("prompt is empty")

type Service struct {
	client ai.Generator
}

func NewService(client ai.Generator) *Service {
	return &Service{client: client}
}

// Generate passes a prompt straight to the generator.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errEmptyPrompt
	}
	return s.client.Generate(ctx, prompt)
}

// Translate renders the findings of an analysis in the given language.
func (s *Service) Translate(ctx context.Context, lang language.Language, r analysis.Result) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Translate the following legal document findings into %s. ", lang.Name)
	b.WriteString("Keep the list structure and reply with the translation only.\n\n")
	fmt.Fprintf(&b, "Risk level: %s (%d/100)\n", r.Tier(), r.RiskScore)
	if r.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", r.Summary)
	}
	for _, is := range r.Issues {
		fmt.Fprintf(&b, "- %s\n", is)
	}

	out, err := s.client.Generate(ctx, b.String())
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", lang.Code, err)
	}
	return out, nil
}
