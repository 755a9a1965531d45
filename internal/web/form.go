package web

import (
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"mortgage-calculator/internal/form"
	"mortgage-calculator/internal/mortgage"
	"mortgage-calculator/internal/observability"
)

// Values of the "intent" button that submitted the form.
const (
	actionSubmit = "submit"
	actionClear  = "clear"
	actionMode   = "mode"
)

const intentParam = "intent"

// intentsFromForm translates one posted form into the intents a browser with
// scripting would have sent one by one: an edit per posted field (per changed
// field for a mode switch), a mode
// change when the selection moved, then the button's own intent. The
// principal ends blurred since the page comes back without focus.
func intentsFromForm(values url.Values, current form.State) ([]form.Intent, error) {
	action := values.Get(intentParam)
	if action == "" {
		action = actionSubmit
	}

	switch action {
	case actionClear:
		return []form.Intent{form.Clear()}, nil
	case actionSubmit, actionMode:
	default:
		return nil, fmt.Errorf("%w: %q", form.ErrUnknownIntent, action)
	}

	var intents []form.Intent
	for _, f := range mortgage.NumericFields {
		if _, ok := values[string(f)]; !ok {
			continue
		}
		posted := values.Get(string(f))
		// A mode switch only re-sends what the user actually typed, so
		// untouched blank fields are not flagged as required.
		if action == actionMode && !edited(f, posted, current) {
			continue
		}
		intents = append(intents, form.FieldEdited(f, posted))
	}

	if raw, ok := values[string(mortgage.FieldMode)]; ok {
		m, err := mortgage.ParseMode(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", form.ErrUnknownMode, err)
		}
		if m != mortgage.ModeNone && m != current.Mode.Selected {
			intents = append(intents, form.ModeChanged(m))
		}
	}

	if action == actionSubmit {
		intents = append(intents, form.Submit())
	}
	return append(intents, form.FieldBlurred(mortgage.FieldPrincipal)), nil
}

// edited reports whether posted differs from the stored value once both are
// sanitized, so a regrouped principal is not an edit.
func edited(f mortgage.Field, posted string, current form.State) bool {
	cur, _ := current.Field(f)
	return mortgage.SanitizeField(f, posted) != mortgage.SanitizeField(f, cur.Value)
}

// Submit handles POST /form and redirects back to the page.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		logger.Warn("parsing form", zap.Error(err), zap.String("request_id", requestID))
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	id := h.sessionID(w, r)
	state, err := h.load(ctx, id)
	if err != nil {
		logger.Error("loading session", zap.Error(err), zap.String("request_id", requestID))
		http.Error(w, "session unavailable", http.StatusServiceUnavailable)
		return
	}

	intents, err := intentsFromForm(r.PostForm, state)
	if err != nil {
		logger.Warn("rejecting form", zap.Error(err), zap.String("request_id", requestID))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for _, in := range intents {
		next, err := form.Apply(state, in)
		countIntent(in.Kind, err)
		if err != nil {
			logger.Warn("rejecting intent", zap.String("kind", string(in.Kind)), zap.Error(err), zap.String("request_id", requestID))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		state = next
	}

	if err := h.persist(ctx, id, state); err != nil {
		logger.Error("saving session", zap.Error(err), zap.String("request_id", requestID))
		http.Error(w, "session unavailable", http.StatusServiceUnavailable)
		return
	}

	logger.Info("form updated",
		zap.String("panel", string(state.Panel())),
		zap.Int("problems", len(state.Problems())),
		zap.String("request_id", requestID),
	)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
