package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/lexguard/internal/domain/analysis"
	"github.com/bryanwahyu/lexguard/internal/domain/language"
	"github.com/bryanwahyu/lexguard/internal/middleware"
)

// POST /api/generate
// Body: {"prompt": "..."}
func (r *Router) handleGenerate(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := decodeJSON(req, &body); err != nil {
		return err
	}
	if strings.TrimSpace(body.Prompt) == "" {
		return badRequest("Prompt is required")
	}
	if r.ai == nil {
		return errGenerationDisabled
	}

	text, err := r.ai.Generate(req.Context(), body.Prompt)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]string{"generated_text": text})
}

// POST /api/analyze
// Body: {"document_text": "..."}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		DocumentText string `json:"document_text"`
	}
	if err := decodeJSON(req, &body); err != nil {
		return err
	}
	if strings.TrimSpace(body.DocumentText) == "" {
		return badRequest("Document text is required")
	}

	res, err := r.analysis.Evaluate(req.Context(), body.DocumentText)
	middleware.RecordAnalysis(err != nil)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, res)
}

// GET /api/risk/classify?score=N
func (r *Router) handleClassify(w http.ResponseWriter, req *http.Request) error {
	score, err := strconv.Atoi(req.URL.Query().Get("score"))
	if err != nil {
		return badRequest("score must be an integer")
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"score": score,
		"tier":  analysis.Classify(score),
	})
}

// GET /api/languages
func (r *Router) handleLanguages(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, http.StatusOK, language.Supported())
}

// GET /api/languages/{code}/sample
func (r *Router) handleLanguageSample(w http.ResponseWriter, req *http.Request) error {
	lang, err := lookupLanguage(chi.URLParam(req, "code"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]string{
		"code":   lang.Code,
		"name":   lang.Name,
		"sample": language.Sample(lang),
	})
}

// POST /api/sessions/{id}/translate
// Body: {"language": "hi"}
func (r *Router) handleTranslate(w http.ResponseWriter, req *http.Request) error {
	s, err := r.session(req)
	if err != nil {
		return err
	}
	var body struct {
		Language string `json:"language"`
	}
	if err := decodeJSON(req, &body); err != nil {
		return err
	}
	lang, err := lookupLanguage(body.Language)
	if err != nil {
		return err
	}
	current, ok := s.Holder.Current()
	if !ok {
		return analysis.ErrNoAnalysis
	}
	if r.ai == nil {
		return errGenerationDisabled
	}

	text, err := r.ai.Translate(req.Context(), lang, current)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]string{
		"code":        lang.Code,
		"language":    lang.Name,
		"translation": text,
	})
}

func lookupLanguage(code string) (language.Language, error) {
	code = strings.ToLower(middleware.SanitizeString(code))
	if err := middleware.ValidateLanguageCode(code); err != nil {
		return language.Language{}, badRequest(err.Error())
	}
	lang, ok := language.Lookup(code)
	if !ok {
		return language.Language{}, badRequest("unsupported language " + code)
	}
	return lang, nil
}

// GET /api/analytics?days=30
func (r *Router) handleAnalytics(w http.ResponseWriter, req *http.Request) error {
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))
	out, err := r.analysis.Analytics(req.Context(), middleware.ValidateDays(days))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, out)
}

// GET /api/history?limit=20
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := r.analysis.Latest(req.Context(), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}
