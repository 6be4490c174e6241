package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/lexguard/internal/domain/analysis"
)

func record(at time.Time, score int, lang string, issues ...string) *domain.Record {
	return &domain.Record{
		Status:    domain.StatusSuccess,
		CreatedAt: at,
		Result:    domain.Result{RiskScore: score, Language: lang, Issues: issues},
	}
}

func TestSummarize(t *testing.T) {
	jan := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	records := []*domain.Record{
		record(feb, 90, "English", "Missing termination clause"),
		record(jan, 70, "English", "Missing termination clause", "Missing termination clause", "Unclear liability"),
		record(jan, 20, "Hindi", "Unclear liability", "Payment terms ambiguity"),
		record(feb, 50, "Spanish"),
		{Status: domain.StatusFailed, ErrorKind: domain.NetworkError, CreatedAt: jan},
	}

	a := Summarize(records)
	assert.Equal(t, 4, a.TotalDocuments)
	assert.Equal(t, 1, a.FailedDocuments)

	require.Len(t, a.RiskTrends, 2)
	assert.Equal(t, MonthTrend{Month: "Jan 2026", High: 1, Medium: 1}, a.RiskTrends[0])
	assert.Equal(t, MonthTrend{Month: "Feb 2026", High: 1, Low: 1}, a.RiskTrends[1])

	require.Len(t, a.CommonIssues, 3)
	assert.Equal(t, IssueStat{Issue: "Missing termination clause", Count: 2, Percentage: 50}, a.CommonIssues[0])
	assert.Equal(t, IssueStat{Issue: "Unclear liability", Count: 2, Percentage: 50}, a.CommonIssues[1])
	assert.Equal(t, IssueStat{Issue: "Payment terms ambiguity", Count: 1, Percentage: 25}, a.CommonIssues[2])

	require.Len(t, a.LanguageDistribution, 3)
	assert.Equal(t, LanguageStat{Language: "English", Count: 2, Percentage: 50}, a.LanguageDistribution[0])
	assert.Equal(t, "Hindi", a.LanguageDistribution[1].Language)
}

func TestSummarizeEmpty(t *testing.T) {
	a := Summarize(nil)
	assert.Zero(t, a.TotalDocuments)
	assert.NotNil(t, a.RiskTrends)
	assert.NotNil(t, a.CommonIssues)
}

func TestAnalyticsWindow(t *testing.T) {
	svc, history := newService(nil)
	history.records = []*domain.Record{
		record(now.AddDate(0, 0, -2), 90, "English"),
		record(now.AddDate(0, 0, -40), 90, "English"),
	}

	a, err := svc.Analytics(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 1, a.TotalDocuments)
}
