package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/lexguard/internal/domain/analysis"
	domain "github.com/bryanwahyu/lexguard/internal/domain/chat"
)

func TestBuildPromptWithoutDocument(t *testing.T) {
	p := BuildPrompt(domain.Request{Utterance: "What is a lien?"})
	assert.Contains(t, p, "No document has been uploaded yet")
	assert.Contains(t, p, "User: What is a lien?")
}

func TestBuildPromptWithDocument(t *testing.T) {
	p := BuildPrompt(domain.Request{
		Utterance: "Summarize",
		Analysis: &analysis.Result{
			RiskScore: 62, PIICount: 2, ClauseCount: 7, Language: "English",
			Issues: []string{"Missing liability clause"}, Summary: "An NDA.",
		},
	})
	assert.Contains(t, p, "Risk score: 62/100 (Medium risk)")
	assert.Contains(t, p, "- Missing liability clause")
	assert.Contains(t, p, "Summary: An NDA.")
}

func TestCannedResponder(t *testing.T) {
	r := CannedResponder{}
	ctx := context.Background()

	out, err := r.Respond(ctx, domain.Request{Utterance: "What document formats are supported?"})
	require.NoError(t, err)
	assert.Contains(t, out, "PDF")

	doc := &analysis.Result{RiskScore: 45, Language: "English", Issues: []string{"Missing termination clause", "One-sided discretion"}}
	out, err = r.Respond(ctx, domain.Request{Utterance: "What are the main risks?", Analysis: doc})
	require.NoError(t, err)
	assert.Contains(t, out, "45/100 (High risk)")
	assert.Contains(t, out, "One-sided discretion")

	out, err = r.Respond(ctx, domain.Request{Utterance: "What important clauses might be missing?", Analysis: doc})
	require.NoError(t, err)
	assert.Contains(t, out, "Missing termination clause")
	assert.NotContains(t, out, "One-sided")
}
