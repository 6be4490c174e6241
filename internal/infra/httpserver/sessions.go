package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/bryanwahyu/lexguard/internal/application/analysis"
	"github.com/bryanwahyu/lexguard/internal/application/session"
	"github.com/bryanwahyu/lexguard/internal/domain/analysis"
	"github.com/bryanwahyu/lexguard/internal/middleware"
)

func (r *Router) session(req *http.Request) (*session.Session, error) {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateSessionID(id); err != nil {
		return nil, fmt.Errorf("%w: %s", session.ErrNotFound, id)
	}
	return r.sessions.Get(id)
}

// POST /api/sessions
// Body (optional): {"greeting": true}
func (r *Router) handleCreateSession(w http.ResponseWriter, req *http.Request) error {
	body := struct {
		Greeting *bool `json:"greeting"`
	}{}
	if err := decodeJSON(req, &body); err != nil {
		return err
	}
	greeting := r.greeting
	if body.Greeting != nil {
		greeting = *body.Greeting
	}

	s := r.sessions.Create(greeting)
	return writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": s.ID,
		"created_at": s.CreatedAt,
		"messages":   s.Conversation.Messages(),
	})
}

// DELETE /api/sessions/{id}
func (r *Router) handleDeleteSession(w http.ResponseWriter, req *http.Request) error {
	if err := r.sessions.Delete(chi.URLParam(req, "id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /api/sessions/{id}/messages
func (r *Router) handleMessages(w http.ResponseWriter, req *http.Request) error {
	s, err := r.session(req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"messages": s.Conversation.Messages(),
		"pending":  s.Conversation.Pending(),
	})
}

// POST /api/sessions/{id}/messages
// Body: {"text": "..."}
func (r *Router) handleSubmit(w http.ResponseWriter, req *http.Request) error {
	s, err := r.session(req)
	if err != nil {
		return err
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(req, &body); err != nil {
		return err
	}

	turn, err := s.Conversation.Submit(req.Context(), middleware.StripControl(body.Text))
	if err != nil {
		return err
	}
	middleware.RecordChatTurn(turn.Failed)
	return writeJSON(w, http.StatusOK, turn)
}

// GET /api/sessions/{id}/quick-actions
func (r *Router) handleQuickActions(w http.ResponseWriter, req *http.Request) error {
	s, err := r.session(req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, s.Conversation.QuickActions())
}

// POST /api/sessions/{id}/documents (multipart, field "file")
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	s, err := r.session(req)
	if err != nil {
		return err
	}

	// room for the multipart envelope on top of the file itself
	req.Body = http.MaxBytesReader(w, req.Body, r.maxUpload+1<<20)
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return tooLarge
		}
		return badRequest("invalid multipart form: " + err.Error())
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		return badRequest("file is required")
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if err := middleware.ValidateDocumentName(name); err != nil {
		return badRequest(err.Error())
	}
	if err := middleware.ValidateDocumentSize(header.Size, r.maxUpload); err != nil {
		return badRequest(err.Error())
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	return r.upload(w, req, s, appanalysis.Document{SessionID: s.ID, FileName: name, Data: data})
}

// POST /api/sessions/{id}/documents/demo
func (r *Router) handleDemo(w http.ResponseWriter, req *http.Request) error {
	s, err := r.session(req)
	if err != nil {
		return err
	}
	return r.upload(w, req, s, appanalysis.Document{
		SessionID: s.ID,
		FileName:  appanalysis.DemoFileName,
		Data:      []byte(appanalysis.DemoDocument),
	})
}

func (r *Router) upload(w http.ResponseWriter, req *http.Request, s *session.Session, doc appanalysis.Document) error {
	res, err := r.analysis.Upload(req.Context(), s.Holder, doc)
	if _, ok := analysis.KindOf(err); ok || err == nil {
		middleware.RecordAnalysis(err != nil)
	}
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, res)
}

// GET /api/sessions/{id}/analysis
func (r *Router) handleAnalysis(w http.ResponseWriter, req *http.Request) error {
	s, err := r.session(req)
	if err != nil {
		return err
	}
	current, ok := s.Holder.Current()
	if !ok {
		return analysis.ErrNoAnalysis
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"analysis": current,
		"tier":     current.Tier(),
	})
}
