package analysis

import (
	"context"
	"sort"
	"time"

	domain "github.com/bryanwahyu/lexguard/internal/domain/analysis"
)

// Analytics is the aggregate view behind the analytics panel.
type Analytics struct {
	TotalDocuments       int            `json:"total_documents"`
	FailedDocuments      int            `json:"failed_documents"`
	RiskTrends           []MonthTrend   `json:"risk_trends"`
	CommonIssues         []IssueStat    `json:"common_issues"`
	LanguageDistribution []LanguageStat `json:"language_distribution"`
}

// MonthTrend counts successful analyses per tier in one calendar month.
type MonthTrend struct {
	Month  string `json:"month"`
	High   int    `json:"high"`
	Medium int    `json:"medium"`
	Low    int    `json:"low"`
}

type IssueStat struct {
	Issue      string `json:"issue"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type LanguageStat struct {
	Language   string `json:"language"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

const maxCommonIssues = 5

// Analytics aggregates the outcomes of the last `days` days.
func (s *Service) Analytics(ctx context.Context, days int) (Analytics, error) {
	if s.History == nil {
		return Summarize(nil), nil
	}
	since := s.Clock.Now().AddDate(0, 0, -days)
	records, err := s.History.Since(ctx, since)
	if err != nil {
		return Analytics{}, err
	}
	return Summarize(records), nil
}

// Summarize computes analytics from a set of records. Percentages are
// relative to the successful analyses.
func Summarize(records []*domain.Record) Analytics {
	out := Analytics{
		RiskTrends:           []MonthTrend{},
		CommonIssues:         []IssueStat{},
		LanguageDistribution: []LanguageStat{},
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	months := map[monthKey]*MonthTrend{}
	var order []monthKey
	issues := map[string]int{}
	languages := map[string]int{}

	for _, r := range records {
		if r.Status != domain.StatusSuccess {
			out.FailedDocuments++
			continue
		}
		out.TotalDocuments++

		t := r.CreatedAt.UTC()
		k := monthKey{year: t.Year(), month: t.Month()}
		m, ok := months[k]
		if !ok {
			m = &MonthTrend{Month: t.Format("Jan 2006")}
			months[k] = m
			order = append(order, k)
		}
		switch r.Result.Tier() {
		case domain.TierHigh:
			m.High++
		case domain.TierMedium:
			m.Medium++
		default:
			m.Low++
		}

		// count each issue once per document
		seen := map[string]bool{}
		for _, is := range r.Result.Issues {
			if !seen[is] {
				seen[is] = true
				issues[is]++
			}
		}
		if r.Result.Language != "" {
			languages[r.Result.Language]++
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].year != order[j].year {
			return order[i].year < order[j].year
		}
		return order[i].month < order[j].month
	})
	for _, k := range order {
		out.RiskTrends = append(out.RiskTrends, *months[k])
	}

	for _, e := range ranked(issues) {
		if len(out.CommonIssues) == maxCommonIssues {
			break
		}
		out.CommonIssues = append(out.CommonIssues, IssueStat{
			Issue: e.key, Count: e.count, Percentage: percent(e.count, out.TotalDocuments),
		})
	}
	for _, e := range ranked(languages) {
		out.LanguageDistribution = append(out.LanguageDistribution, LanguageStat{
			Language: e.key, Count: e.count, Percentage: percent(e.count, out.TotalDocuments),
		})
	}
	return out
}

type entry struct {
	key   string
	count int
}

// ranked orders by count desc, then key asc.
func ranked(m map[string]int) []entry {
	out := make([]entry, 0, len(m))
	for k, v := range m {
		out = append(out, entry{key: k, count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return n * 100 / total
}
