package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"mortgage-calculator/internal/form"
	"mortgage-calculator/internal/mortgage"
	"mortgage-calculator/internal/observability"
	"mortgage-calculator/internal/render"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxMessage = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Update is sent after every inbound intent. Error is set when the intent
// was rejected, in which case the rest describes the unchanged form.
type Update struct {
	Values   map[mortgage.Field]string `json:"values"`
	Mode     mortgage.Mode             `json:"mode"`
	Problems map[mortgage.Field]string `json:"problems"`
	Panel    form.Panel                `json:"panel"`
	Results  string                    `json:"results"`
	Error    string                    `json:"error,omitempty"`
}

func newUpdate(s form.State) (Update, error) {
	results, err := render.ResultsHTML(s.Result)
	if err != nil {
		return Update{}, err
	}

	values := make(map[mortgage.Field]string, len(mortgage.NumericFields))
	for _, f := range mortgage.NumericFields {
		fs, _ := s.Field(f)
		values[f] = fs.Value
	}

	return Update{
		Values:   values,
		Mode:     s.Mode.Selected,
		Problems: s.Problems(),
		Panel:    s.Panel(),
		Results:  results,
	}, nil
}

// Live handles GET /ws. Each text message is one JSON form.Intent. Intents
// are applied strictly in arrival order and each is answered with an Update
// before the next one is read. Every intent is applied to the session as
// currently stored, so form posts on the same cookie are not lost.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx).With(
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	id := h.sessionID(w, r)
	state, err := h.load(ctx, id)
	if err != nil {
		logger.Error("loading session", zap.Error(err))
		http.Error(w, "session unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, w.Header())
	if err != nil {
		logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	logger.Info("live form connected")
	defer logger.Info("live form disconnected")

	conn.SetReadLimit(maxMessage)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go ping(conn, done)

	if err := send(conn, state, nil); err != nil {
		logger.Warn("writing update", zap.Error(err))
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("reading intent", zap.Error(err))
			}
			return
		}

		var in form.Intent
		if err := json.Unmarshal(msg, &in); err != nil {
			countIntent("", err)
			if err := send(conn, state, errors.New("malformed intent")); err != nil {
				return
			}
			continue
		}

		// Another tab may have posted the form since the last intent.
		if state, err = h.load(ctx, id); err != nil {
			logger.Error("loading session", zap.Error(err))
			return
		}

		next, applyErr := form.Apply(state, in)
		countIntent(in.Kind, applyErr)
		if applyErr == nil {
			state = next
			if err := h.persist(ctx, id, state); err != nil {
				logger.Error("saving session", zap.Error(err))
				return
			}
		} else {
			logger.Debug("rejecting intent", zap.String("kind", string(in.Kind)), zap.Error(applyErr))
		}

		if err := send(conn, state, applyErr); err != nil {
			logger.Warn("writing update", zap.Error(err))
			return
		}
	}
}

func send(conn *websocket.Conn, s form.State, failure error) error {
	update, err := newUpdate(s)
	if err != nil {
		return err
	}
	if failure != nil {
		update.Error = failure.Error()
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(update)
}

// ping keeps the read deadline moving while the peer is idle. WriteControl
// is safe to call alongside the writer in Live.
func ping(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
