package heuristic

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Analyzer inspects document text locally with regular expressions and
// keyword checks. It returns the same JSON shape as the AI analyzers and is
// used in offline/demo mode.
type Analyzer struct{}

func New() Analyzer { return Analyzer{} }

// Findings is the JSON the analyzer returns.
type Findings struct {
	RiskScore   int      `json:"riskScore"`
	PIIDetected int      `json:"piiDetected"`
	Clauses     int      `json:"clauses"`
	Language    string   `json:"language"`
	Issues      []string `json:"issues"`
	Summary     string   `json:"summary"`
}

// PII detectors; each match counts as one element.
var piiDetectors = []struct {
	name string
	re   *regexp.Regexp
}{
	{"email", regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)},
	{"ssn", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{"phone", regexp.MustCompile(`(?:\+\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]\d{3}[\s.-]\d{4}\b`)},
	{"card", regexp.MustCompile(`\b(?:\d{4}[\s-]?){3}\d{4}\b`)},
	{"address", regexp.MustCompile(`\b\d{1,5}\s+(?:[A-Z][a-z]+\s+){1,3}(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd)\b`)},
	{"iban", regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`)},
}

var clauseHeading = regexp.MustCompile(`(?m)^\s*(?:#{1,6}\s*)?(?:\d+(?:\.\d+)*[.)]|(?i:section|article|clause)\s+\d+)\s+\S`)

// Standard clauses whose absence is reported as an issue.
var standardClauses = []struct {
	issue    string
	keywords []string
}{
	{"Missing termination clause", []string{"terminat"}},
	{"Missing limitation of liability clause", []string{"liabilit", "indemn"}},
	{"Missing governing law clause", []string{"governing law", "governed by", "jurisdiction"}},
	{"Missing dispute resolution clause", []string{"dispute", "arbitration", "mediation"}},
	{"Missing data protection clause", []string{"data protection", "personal data", "privacy", "gdpr"}},
	{"Missing confidentiality clause", []string{"confidential"}},
}

// One-sided or risky wording.
var riskyTerms = []struct {
	phrase string
	issue  string
}{
	{"sole discretion", "One-sided terms: changes at the other party's sole discretion"},
	{"without notice", "Termination or changes allowed without notice"},
	{"unlimited liability", "Unlimited liability exposure"},
	{"automatically renew", "Automatic renewal without explicit consent"},
	{"non-compete", "Non-compete restriction may limit future work"},
	{"waive", "Waiver of rights"},
}

const (
	missingClausePenalty = 8
	riskyTermPenalty     = 10
	piiPenalty           = 2
	maxPIIPenalty        = 20
	maxIssues            = 20
)

// Analyze implements analysis.Analyzer.
func (Analyzer) Analyze(_ context.Context, documentText string) (string, error) {
	out := Inspect(documentText)
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis: %w", err)
	}
	return string(b), nil
}

// Inspect runs every check over the text.
func Inspect(text string) Findings {
	lower := strings.ToLower(text)
	out := Findings{Issues: []string{}}

	for _, d := range piiDetectors {
		out.PIIDetected += len(d.re.FindAllStringIndex(text, -1))
	}
	out.Clauses = len(clauseHeading.FindAllStringIndex(text, -1))
	out.Language = detectLanguage(text)

	score := 100
	for _, c := range standardClauses {
		if !containsAny(lower, c.keywords) {
			out.Issues = append(out.Issues, c.issue)
			score -= missingClausePenalty
		}
	}
	for _, r := range riskyTerms {
		if strings.Contains(lower, r.phrase) {
			out.Issues = append(out.Issues, r.issue)
			score -= riskyTermPenalty
		}
	}
	if out.PIIDetected > 0 {
		out.Issues = append(out.Issues, fmt.Sprintf("%d personal data elements should be reviewed before sharing", out.PIIDetected))
		score -= min(out.PIIDetected*piiPenalty, maxPIIPenalty)
	}
	if len(out.Issues) > maxIssues {
		out.Issues = out.Issues[:maxIssues]
	}
	out.RiskScore = max(score, 0)
	out.Summary = summarize(text, out)
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func summarize(text string, out Findings) string {
	title := "The document"
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line != "" {
			title = fmt.Sprintf("%q", trim(line, 80))
			break
		}
	}
	return fmt.Sprintf("%s is written in %s and has %d clauses. %d issues and %d personal data elements were found.",
		title, out.Language, out.Clauses, len(out.Issues), out.PIIDetected)
}

func trim(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

var stopwords = map[string][]string{
	"English": {"the", "and", "of", "to", "shall", "this", "agreement", "is"},
	"Spanish": {"el", "la", "de", "que", "y", "los", "contrato", "por"},
	"French":  {"le", "la", "de", "et", "les", "des", "contrat", "est"},
	"German":  {"der", "die", "und", "das", "ist", "vertrag", "nicht", "mit"},
}

var languageOrder = []string{"English", "Spanish", "French", "German"}

// detectLanguage guesses the language from its script first, then from
// stopword frequency for Latin-script text.
func detectLanguage(text string) string {
	scripts := map[string]int{}
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Devanagari, r):
			scripts["Hindi"]++
		case unicode.Is(unicode.Tamil, r):
			scripts["Tamil"]++
		case unicode.Is(unicode.Telugu, r):
			scripts["Telugu"]++
		case unicode.Is(unicode.Bengali, r):
			scripts["Bengali"]++
		case unicode.Is(unicode.Arabic, r):
			scripts["Urdu"]++
		}
	}
	best, bestN := "", 0
	for _, name := range []string{"Hindi", "Tamil", "Telugu", "Bengali", "Urdu"} {
		if scripts[name] > bestN {
			best, bestN = name, scripts[name]
		}
	}
	if bestN > 0 {
		return best
	}

	counts := map[string]int{}
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool { return !unicode.IsLetter(r) }) {
		for lang, words := range stopwords {
			for _, sw := range words {
				if w == sw {
					counts[lang]++
				}
			}
		}
	}
	best, bestN = "English", 0
	for _, lang := range languageOrder {
		if counts[lang] > bestN {
			best, bestN = lang, counts[lang]
		}
	}
	return best
}
