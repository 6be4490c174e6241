package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// wireResult mirrors the JSON the analysis backends return. Pointers let us
// tell a missing field from a zero.
type wireResult struct {
	RiskScore   *float64 `json:"riskScore"`
	PIIDetected *float64 `json:"piiDetected"`
	Clauses     *float64 `json:"clauses"`
	Language    *string  `json:"language"`
	Issues      []string `json:"issues"`
	Summary     string   `json:"summary"`
}

// Parse validates a raw analyzer response and converts it into a Result.
// Markdown code fences around the JSON object are tolerated.
func Parse(raw string) (Result, error) {
	body := StripFences(raw)
	if body == "" {
		return Result{}, errors.New("empty analysis response")
	}

	var w wireResult
	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(&w); err != nil {
		return Result{}, fmt.Errorf("decode analysis response: %w", err)
	}

	if w.RiskScore == nil {
		return Result{}, errors.New("riskScore is required")
	}
	score := int(math.Round(*w.RiskScore))
	if score < 0 || score > 100 {
		return Result{}, fmt.Errorf("riskScore out of range: %d", score)
	}
	pii, err := count("piiDetected", w.PIIDetected)
	if err != nil {
		return Result{}, err
	}
	clauses, err := count("clauses", w.Clauses)
	if err != nil {
		return Result{}, err
	}
	if w.Language == nil || strings.TrimSpace(*w.Language) == "" {
		return Result{}, errors.New("language is required")
	}

	issues := make([]string, 0, len(w.Issues))
	for _, is := range w.Issues {
		if s := strings.TrimSpace(is); s != "" {
			issues = append(issues, s)
		}
	}

	return Result{
		RiskScore:   score,
		PIICount:    pii,
		ClauseCount: clauses,
		Language:    strings.TrimSpace(*w.Language),
		Issues:      issues,
		Summary:     strings.TrimSpace(w.Summary),
	}, nil
}

func count(field string, v *float64) (int, error) {
	if v == nil {
		return 0, fmt.Errorf("%s is required", field)
	}
	n := int(math.Round(*v))
	if n < 0 {
		return 0, fmt.Errorf("%s must be >= 0, got %d", field, n)
	}
	return n, nil
}

// StripFences removes a surrounding ```json ... ``` block and any prose
// before the first '{' or after the last '}'.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}
