// Package web serves the calculator page and keeps one form.State per
// browser session. Plain form posts and the live websocket both drive the
// same form.Apply transitions.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mortgage-calculator/internal/form"
	"mortgage-calculator/internal/observability"
	"mortgage-calculator/internal/render"
	"mortgage-calculator/internal/session"
)

// Handler owns the session store and the cookie that points into it.
type Handler struct {
	store      session.Store
	cookieName string
	ttl        time.Duration
}

func New(store session.Store, cookieName string, ttl time.Duration) *Handler {
	return &Handler{store: store, cookieName: cookieName, ttl: ttl}
}

// RegisterRoutes mounts the page, the form endpoint, the results fragment and
// the live socket.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Page)
	r.Post("/form", h.Submit)
	r.Get("/results", h.Results)
	r.Get("/ws", h.Live)
}

// sessionID returns the caller's session, issuing a new cookie when the
// request has none or carries one that is not a session ID.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(h.cookieName); err == nil && session.ValidID(c.Value) {
		return c.Value
	}

	id := session.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// load returns the stored state, or a fresh form for unknown sessions.
func (h *Handler) load(ctx context.Context, id string) (form.State, error) {
	state, ok, err := h.store.Load(ctx, id)
	if err != nil {
		return form.State{}, err
	}
	if !ok {
		return form.State{}, nil
	}
	return state, nil
}

// persist saves s, or drops the session once the form is back to blank.
func (h *Handler) persist(ctx context.Context, id string, s form.State) error {
	if s == (form.State{}) {
		return h.store.Delete(ctx, id)
	}
	return h.store.Save(ctx, id, s)
}

// Page handles GET /.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	id := h.sessionID(w, r)
	state, err := h.load(ctx, id)
	if err != nil {
		logger.Error("loading session", zap.Error(err), zap.String("request_id", observability.RequestIDFromContext(ctx)))
		http.Error(w, "session unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Page(w, state); err != nil {
		logger.Error("rendering page", zap.Error(err))
	}
}

// Results handles GET /results with just the results region markup.
func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	id := h.sessionID(w, r)
	state, err := h.load(ctx, id)
	if err != nil {
		logger.Error("loading session", zap.Error(err), zap.String("request_id", observability.RequestIDFromContext(ctx)))
		http.Error(w, "session unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Results(w, state.Result); err != nil {
		logger.Error("rendering results", zap.Error(err))
	}
}
