package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/lexguard/internal/application"
	appai "github.com/bryanwahyu/lexguard/internal/application/ai"
	appanalysis "github.com/bryanwahyu/lexguard/internal/application/analysis"
	"github.com/bryanwahyu/lexguard/internal/application/session"
	domanalysis "github.com/bryanwahyu/lexguard/internal/domain/analysis"
	"github.com/bryanwahyu/lexguard/internal/domain/chat"
	"github.com/bryanwahyu/lexguard/internal/infra/ai/heuristic"
	"github.com/bryanwahyu/lexguard/internal/infra/extract"
)

type analyzerFunc func(ctx context.Context, text string) (string, error)

func (f analyzerFunc) Analyze(ctx context.Context, text string) (string, error) { return f(ctx, text) }

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type testEnv struct {
	handler  http.Handler
	sessions *session.Manager
}

type envOption func(*Deps)

func withAnalyzer(a domanalysis.Analyzer) envOption {
	return func(d *Deps) { d.Analysis.Analyzer = a }
}

func withoutAI() envOption {
	return func(d *Deps) { d.AI = nil }
}

func newEnv(t *testing.T, responder chat.Responder, opts ...envOption) *testEnv {
	t.Helper()
	mgr := session.NewManager(responder, application.SystemClock{}, time.Hour, time.Second)
	deps := Deps{
		Sessions: mgr,
		Analysis: &appanalysis.Service{
			Analyzer:  heuristic.New(),
			Extractor: extract.New(),
			Clock:     application.SystemClock{},
		},
		AI: appai.NewService(generatorFunc(func(_ context.Context, prompt string) (string, error) {
			return "generated: " + prompt, nil
		})),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	return &testEnv{handler: NewRouter(deps), sessions: mgr}
}

func fixedResponder(text string) chat.Responder {
	return chat.ResponderFunc(func(context.Context, chat.Request) (string, error) { return text, nil })
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createSession(t *testing.T, greeting bool) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/sessions", map[string]bool{"greeting": greeting})
	require.Equal(t, http.StatusCreated, rec.Code)
	var out struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.SessionID)
	return out.SessionID
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type messagesResponse struct {
	Messages []chat.Message `json:"messages"`
	Pending  bool           `json:"pending"`
}

func TestCreateSessionWithGreeting(t *testing.T) {
	env := newEnv(t, fixedResponder("X"))
	id := env.createSession(t, true)

	rec := env.do(t, http.MethodGet, "/api/sessions/"+id+"/messages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[messagesResponse](t, rec)
	require.Len(t, out.Messages, 1)
	assert.Equal(t, chat.RoleAssistant, out.Messages[0].Role)
	assert.Len(t, out.Messages[0].SuggestedReplies, 4)
}

func TestSubmitMessage(t *testing.T) {
	env := newEnv(t, fixedResponder("X"))
	id := env.createSession(t, false)

	rec := env.do(t, http.MethodPost, "/api/sessions/"+id+"/messages", map[string]string{"text": "What are the risks?"})
	require.Equal(t, http.StatusOK, rec.Code)
	turn := decode[struct {
		User   chat.Message `json:"user"`
		Reply  chat.Message `json:"reply"`
		Failed bool         `json:"failed"`
	}](t, rec)
	assert.Equal(t, "What are the risks?", turn.User.Text)
	assert.Equal(t, "X", turn.Reply.Text)
	assert.False(t, turn.Failed)

	out := decode[messagesResponse](t, env.do(t, http.MethodGet, "/api/sessions/"+id+"/messages", nil))
	require.Len(t, out.Messages, 2)
	assert.Less(t, out.Messages[0].ID, out.Messages[1].ID)
	assert.False(t, out.Pending)
}

func TestSubmitKeepsUtteranceAsTyped(t *testing.T) {
	env := newEnv(t, fixedResponder("X"))
	id := env.createSession(t, false)

	rec := env.do(t, http.MethodPost, "/api/sessions/"+id+"/messages", map[string]string{"text": "  What about clause 4?\n"})
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode[messagesResponse](t, env.do(t, http.MethodGet, "/api/sessions/"+id+"/messages", nil))
	require.Len(t, out.Messages, 2)
	assert.Equal(t, "  What about clause 4?\n", out.Messages[0].Text)
}

func TestSubmitBlankMessage(t *testing.T) {
	env := newEnv(t, fixedResponder("X"))
	id := env.createSession(t, false)

	rec := env.do(t, http.MethodPost, "/api/sessions/"+id+"/messages", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	out := decode[messagesResponse](t, env.do(t, http.MethodGet, "/api/sessions/"+id+"/messages", nil))
	assert.Empty(t, out.Messages)
}

func TestSubmitWhilePending(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	env := newEnv(t, chat.ResponderFunc(func(ctx context.Context, _ chat.Request) (string, error) {
		close(started)
		select {
		case <-release:
			return "done", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}))
	id := env.createSession(t, false)

	first := make(chan *httptest.ResponseRecorder)
	go func() {
		first <- env.do(t, http.MethodPost, "/api/sessions/"+id+"/messages", map[string]string{"text": "one"})
	}()
	<-started

	rec := env.do(t, http.MethodPost, "/api/sessions/"+id+"/messages", map[string]string{"text": "two"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(release)
	assert.Equal(t, http.StatusOK, (<-first).Code)

	out := decode[messagesResponse](t, env.do(t, http.MethodGet, "/api/sessions/"+id+"/messages", nil))
	require.Len(t, out.Messages, 2)
	assert.Equal(t, "one", out.Messages[0].Text)
	assert.Equal(t, "done", out.Messages[1].Text)
}

func TestSubmitResponderFailureFallsBack(t *testing.T) {
	env := newEnv(t, chat.ResponderFunc(func(context.Context, chat.Request) (string, error) {
		return "", errors.New("connection refused")
	}))
	id := env.createSession(t, false)

	rec := env.do(t, http.MethodPost, "/api/sessions/"+id+"/messages", map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "trouble connecting to the AI")
}

func TestUnknownSession(t *testing.T) {
	env := newEnv(t, fixedResponder("X"))

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/sessions/nope/messages", nil).Code)
	assert.Equal(t, http.StatusNotFound,
		env.do(t, http.MethodGet, "/api/sessions/0b7c8f0e-7f5c-4b7e-9a59-3f4f2b7f1c11/messages", nil).Code)
}

func TestDeleteSession(t *testing.T) {
	env := newEnv(t, fixedResponder("X"))
	id := env.createSession(t, false)

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/sessions/"+id+"/", nil).Code)
	assert.Equal(t, 0, env.sessions.Len())
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/sessions/"+id+"/messages", nil).Code)
}

func TestDemoUploadFillsAnalysis(t *testing.T) {
	env := newEnv(t, fixedResponder("X"))
	id := env.createSession(t, false)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/sessions/"+id+"/analysis", nil).Code)
	before := decode[[]map[string]string](t, env.do(t, http.MethodGet, "/api/sessions/"+id+"/quick-actions", nil))

	rec := env.do(t, http.MethodPost, "/api/sessions/"+id+"/documents/demo", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	up := decode[appanalysis.UploadResult](t, rec)
	assert.Equal(t, appanalysis.DemoFileName, up.FileName)
	assert.Equal(t, domanalysis.Classify(up.Analysis.RiskScore), up.Tier)

	rec = env.do(t, http.MethodGet, "/api/sessions/"+id+"/analysis", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[struct {
		Analysis domanalysis.Result `json:"analysis"`
		Tier     domanalysis.Tier   `json:"tier"`
	}](t, rec)
	assert.Equal(t, up.Analysis, got.Analysis)
	assert.Equal(t, up.Tier, got.Tier)

	after := decode[[]map[string]string](t, env.do(t, http.MethodGet, "/api/sessions/"+id+"/quick-actions", nil))
	assert.NotEqual(t, before, after)
}

func multipartUpload(t *testing.T, env *testEnv, id, name string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func TestUploadDocument(t *testing.T) {
	env := newEnv(t, fixedResponder("X"))
	id := env.createSession(t, false)

	rec := multipartUpload(t, env, id, "lease.txt", []byte("1. Term\nThe tenant shall pay rent monthly.\n2. Termination\nEither party may terminate."))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "lease.txt", decode[appanalysis.UploadResult](t, rec).FileName)

	assert.Equal(t, http.StatusBadRequest, multipartUpload(t, env, id, "photo.png", []byte("png")).Code)
	assert.Equal(t, http.StatusUnsupportedMediaType, multipartUpload(t, env, id, "lease.docx", []byte("PK")).Code)
}

func TestUploadFailureKeepsPreviousAnalysis(t *testing.T) {
	calls := 0
	env := newEnv(t, fixedResponder("X"), withAnalyzer(analyzerFunc(func(ctx context.Context, text string) (string, error) {
		calls++
		if calls == 1 {
			return `{"riskScore":70,"piiDetected":0,"clauses":3,"language":"English","issues":[]}`, nil
		}
		return "not json", nil
	})))
	id := env.createSession(t, false)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/sessions/"+id+"/documents/demo", nil).Code)

	rec := env.do(t, http.MethodPost, "/api/sessions/"+id+"/documents/demo", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, string(domanalysis.BadResponse), decode[map[string]string](t, rec)["kind"])

	got := decode[map[string]any](t, env.do(t, http.MethodGet, "/api/sessions/"+id+"/analysis", nil))
	assert.Equal(t, "Medium", got["tier"])
}

func TestAnalyzeEndpoint(t *testing.T) {
	env := newEnv(t, fixedResponder("X"))

	rec := env.do(t, http.MethodPost, "/api/analyze", map[string]string{"document_text": "1. Scope\nThis Agreement is governed by the laws of Delaware."})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[map[string]any](t, rec)
	for _, key := range []string{"riskScore", "piiDetected", "clauses", "language", "issues"} {
		assert.Contains(t, res, key)
	}

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/analyze", map[string]string{}).Code)

	failing := newEnv(t, fixedResponder("X"), withAnalyzer(analyzerFunc(func(context.Context, string) (string, error) {
		return "", errors.New("dial tcp: connection refused")
	})))
	rec = failing.do(t, http.MethodPost, "/api/analyze", map[string]string{"document_text": "text"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, string(domanalysis.NetworkError), decode[map[string]string](t, rec)["kind"])
}

func TestGenerateEndpoint(t *testing.T) {
	env := newEnv(t, fixedResponder("X"))

	rec := env.do(t, http.MethodPost, "/api/generate", map[string]string{"prompt": "hi"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "generated: hi", decode[map[string]string](t, rec)["generated_text"])

	rec = env.do(t, http.MethodPost, "/api/generate", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Prompt is required", decode[map[string]string](t, rec)["error"])

	disabled := newEnv(t, fixedResponder("X"), withoutAI())
	assert.Equal(t, http.StatusServiceUnavailable,
		disabled.do(t, http.MethodPost, "/api/generate", map[string]string{"prompt": "hi"}).Code)
}

func TestClassifyEndpoint(t *testing.T) {
	env := newEnv(t, fixedResponder("X"))

	for score, tier := range map[string]string{"85": "Low", "80": "Low", "79": "Medium", "60": "Medium", "59": "High", "-5": "High", "150": "Low"} {
		rec := env.do(t, http.MethodGet, "/api/risk/classify?score="+score, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, tier, decode[map[string]any](t, rec)["tier"], score)
	}
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/risk/classify?score=abc", nil).Code)
}

func TestLanguagesAndTranslate(t *testing.T) {
	env := newEnv(t, fixedResponder("X"))

	langs := decode[[]map[string]string](t, env.do(t, http.MethodGet, "/api/languages", nil))
	assert.Len(t, langs, 12)

	sample := decode[map[string]string](t, env.do(t, http.MethodGet, "/api/languages/bn/sample", nil))
	assert.Equal(t, "[Sample translation in Bengali]", sample["sample"])
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/languages/xx/sample", nil).Code)

	id := env.createSession(t, false)
	assert.Equal(t, http.StatusBadRequest,
		env.do(t, http.MethodPost, "/api/sessions/"+id+"/translate", map[string]string{"language": "klingon"}).Code)
	assert.Equal(t, http.StatusNotFound,
		env.do(t, http.MethodPost, "/api/sessions/"+id+"/translate", map[string]string{"language": "hi"}).Code)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/sessions/"+id+"/documents/demo", nil).Code)
	rec := env.do(t, http.MethodPost, "/api/sessions/"+id+"/translate", map[string]string{"language": "hi"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[map[string]string](t, rec)
	assert.Equal(t, "Hindi", out["language"])
	assert.Contains(t, out["translation"], "Hindi")
}

func TestAnalyticsAndHealth(t *testing.T) {
	env := newEnv(t, fixedResponder("X"))

	rec := env.do(t, http.MethodGet, "/api/analytics?days=30", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "total_documents")

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/history", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/live", nil).Code)
}
