package site

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/csheth/buildvision/internal/conversation"
	"github.com/csheth/buildvision/internal/pitch"
	"github.com/csheth/buildvision/internal/site/components"
)

// LandingPage renders the page with the visitor's conversation. Visitors
// who have not chatted yet get the empty demo and no session.
func (s *Server) LandingPage(w http.ResponseWriter, r *http.Request) {
	page := components.Page(components.DemoState{
		Conversation: s.snapshot(r),
		Presets:      pitch.Presets(),
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := page.Render(w); err != nil {
		s.log.Warn("render landing page", zap.Error(err))
	}
}

// Chat runs one turn for the visitor's form post and redirects to the
// newest message. Blank messages and posts while a turn is in flight are
// ignored by the controller.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	message := r.PostFormValue("message")
	sess.ctrl.SetInput(message)
	if _, ok := sess.ctrl.Send(detach(r), message); !ok {
		s.log.Debug("chat post ignored", zap.String("session", sess.id))
	}
	http.Redirect(w, r, "/#"+components.LatestAnchor, http.StatusSeeOther)
}

type chatRequest struct {
	Message string `json:"message"`
}

// ChatJSON is the scriptable form of Chat. It answers 400 for a blank
// message and 409 while another turn is in flight.
func (s *Server) ChatJSON(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	state, ok := sess.ctrl.Send(detach(r), req.Message)
	if !ok {
		writeJSON(w, http.StatusConflict, newStateView(state))
		return
	}
	writeJSON(w, http.StatusOK, newStateView(state))
}

// Reset drops the visitor's conversation. The next chat starts a new one.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	if id := sessionID(r); id != "" {
		s.sessions.drop(id)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/#demo", http.StatusSeeOther)
}

func (s *Server) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newStateView(s.snapshot(r)))
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func sessionID(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// snapshot returns the visitor's conversation without creating a session.
func (s *Server) snapshot(r *http.Request) conversation.State {
	if sess, ok := s.sessions.lookup(sessionID(r)); ok {
		return sess.ctrl.Snapshot()
	}
	return conversation.State{}
}

// session resolves or creates the visitor's session, issuing a cookie for
// a new one. It answers 503 itself when the store is full.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	sess, created, err := s.sessions.get(sessionID(r))
	if err != nil {
		s.log.Warn("demo session unavailable", zap.Error(err))
		http.Error(w, "demo is busy, please try again shortly", http.StatusServiceUnavailable)
		return nil, false
	}
	if created {
		s.setCookie(w, sess.id)
	}
	return sess, true
}

func (s *Server) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// detach keeps request values but drops cancellation: a turn that has
// started always settles, even if the visitor navigates away.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
