package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/bryanwahyu/lexguard/internal/domain/ai"
	"github.com/bryanwahyu/lexguard/internal/domain/analysis"
	domain "github.com/bryanwahyu/lexguard/internal/domain/chat"
)

// GeneratorResponder answers through a text generator, adding the current
// analysis to the prompt when there is one.
type GeneratorResponder struct {
	Generator ai.Generator
}

func (r GeneratorResponder) Respond(ctx context.Context, req domain.Request) (string, error) {
	return r.Generator.Generate(ctx, BuildPrompt(req))
}

// BuildPrompt renders the prompt sent to the generator for one turn.
func BuildPrompt(req domain.Request) string {
	if req.Analysis == nil {
		return "You are a legal assistant helping a user review legal documents. " +
			"No document has been uploaded yet.\n\nUser: " + req.Utterance
	}

	a := req.Analysis
	var b strings.Builder
	b.WriteString("You are a legal assistant. Answer using the analysis of the user's document below.\n\n")
	fmt.Fprintf(&b, "Risk score: %d/100 (%s risk)\n", a.RiskScore, a.Tier())
	fmt.Fprintf(&b, "PII elements: %d\n", a.PIICount)
	fmt.Fprintf(&b, "Clauses analyzed: %d\n", a.ClauseCount)
	fmt.Fprintf(&b, "Language: %s\n", a.Language)
	if a.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", a.Summary)
	}
	if len(a.Issues) > 0 {
		b.WriteString("Issues:\n")
		for _, is := range a.Issues {
			fmt.Fprintf(&b, "- %s\n", is)
		}
	}
	b.WriteString("\nUser: ")
	b.WriteString(req.Utterance)
	return b.String()
}

// CannedResponder answers from templates without any network call. It backs
// the offline demo mode.
type CannedResponder struct{}

func (CannedResponder) Respond(_ context.Context, req domain.Request) (string, error) {
	q := strings.ToLower(req.Utterance)
	if req.Analysis == nil {
		return introReply(q), nil
	}
	return documentReply(q, *req.Analysis), nil
}

func introReply(q string) string {
	switch {
	case strings.Contains(q, "format"):
		return "You can upload PDF, DOC, DOCX and TXT files up to 20MB. Text is extracted and sent for analysis."
	case strings.Contains(q, "language"):
		return "The panel supports 12 languages, including English, Hindi, Tamil, Telugu, Bengali and Spanish."
	case strings.Contains(q, "how"):
		return "Upload a document and it is scanned for risky terms, personal data and missing clauses. " +
			"You get a risk score from 0 to 100, where higher is safer, plus a list of issues."
	case strings.Contains(q, "what can"), strings.Contains(q, "capabilit"):
		return "I can summarize contracts, point out risks, explain legal terms and translate the findings."
	default:
		return "Upload a document first and I'll help you analyze it."
	}
}

func documentReply(q string, a analysis.Result) string {
	switch {
	case strings.Contains(q, "risk"):
		if len(a.Issues) == 0 {
			return fmt.Sprintf("The document scores %d/100 (%s risk) and no specific issues were found.", a.RiskScore, a.Tier())
		}
		return fmt.Sprintf("The document scores %d/100 (%s risk). Main issues:\n- %s",
			a.RiskScore, a.Tier(), strings.Join(a.Issues, "\n- "))
	case strings.Contains(q, "summar"):
		if a.Summary != "" {
			return a.Summary
		}
		return fmt.Sprintf("A %s document with %d clauses and %d PII elements.", a.Language, a.ClauseCount, a.PIICount)
	case strings.Contains(q, "missing"):
		var missing []string
		for _, is := range a.Issues {
			if strings.Contains(strings.ToLower(is), "missing") {
				missing = append(missing, is)
			}
		}
		if len(missing) == 0 {
			return "No standard clauses appear to be missing."
		}
		return "Possibly missing:\n- " + strings.Join(missing, "\n- ")
	case strings.Contains(q, "pii"), strings.Contains(q, "personal"):
		return fmt.Sprintf("%d personally identifiable information elements were detected.", a.PIICount)
	case strings.Contains(q, "language"), strings.Contains(q, "translat"):
		return fmt.Sprintf("The document is written in %s. Use the language panel to translate the findings.", a.Language)
	case strings.Contains(q, "clause"), strings.Contains(q, "term"):
		return fmt.Sprintf("%d clauses were analyzed. Ask about a specific clause for details.", a.ClauseCount)
	default:
		return fmt.Sprintf("Your document scores %d/100 (%s risk) with %d issues found. Ask about risks, clauses or a summary.",
			a.RiskScore, a.Tier(), len(a.Issues))
	}
}
