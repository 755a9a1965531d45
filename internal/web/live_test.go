package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"mortgage-calculator/internal/form"
	"mortgage-calculator/internal/mortgage"
	"mortgage-calculator/internal/session"
	"mortgage-calculator/internal/testutil"
)

func dialLive(t *testing.T, h http.Handler, cookie *http.Cookie) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	header := http.Header{}
	if cookie != nil {
		header.Set("Cookie", cookie.String())
	}
	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", header)
	if err != nil {
		t.Fatalf("dialing live form: %v", err)
	}
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, in any) Update {
	t.Helper()
	if in != nil {
		if err := conn.WriteJSON(in); err != nil {
			t.Fatalf("writing intent: %v", err)
		}
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var update Update
	if err := conn.ReadJSON(&update); err != nil {
		t.Fatalf("reading update: %v", err)
	}
	return update
}

func TestLiveFormAppliesIntentsInOrder(t *testing.T) {
	store, h := newTestHandler(t)
	cookie := &http.Cookie{Name: testCookie, Value: session.NewID()}
	conn := dialLive(t, h, cookie)

	initial := exchange(t, conn, nil)
	if initial.Panel != form.PanelEmpty {
		t.Fatalf("expected empty panel, got %q", initial.Panel)
	}

	exchange(t, conn, form.FieldEdited(mortgage.FieldPrincipal, "£200000"))
	exchange(t, conn, form.FieldEdited(mortgage.FieldTerm, "25"))
	exchange(t, conn, form.FieldEdited(mortgage.FieldRate, "5.25"))
	exchange(t, conn, form.ModeChanged(mortgage.ModeRepayment))

	update := exchange(t, conn, form.Submit())
	if update.Panel != form.PanelPopulated {
		t.Fatalf("expected populated panel, got %q", update.Panel)
	}
	if !strings.Contains(update.Results, "£1,198.50") {
		t.Fatalf("expected monthly repayment in results, got %q", update.Results)
	}
	if update.Values[mortgage.FieldPrincipal] != "200000" {
		t.Fatalf("expected sanitized principal %q, got %q", "200000", update.Values[mortgage.FieldPrincipal])
	}

	update = exchange(t, conn, form.ModeChanged(mortgage.ModeInterestOnly))
	if !strings.Contains(update.Results, "£875.00") {
		t.Fatalf("expected interest-only results, got %q", update.Results)
	}
	if !strings.Contains(update.Results, `data-mode="interest-only"`) {
		t.Fatalf("expected interest-only view, got %q", update.Results)
	}

	saved, ok, err := store.Load(t.Context(), cookie.Value)
	if err != nil || !ok {
		t.Fatalf("expected saved session, ok=%v err=%v", ok, err)
	}
	if saved.Result == nil || saved.Result.Mode != mortgage.ModeInterestOnly {
		t.Fatalf("expected stored interest-only result, got %+v", saved.Result)
	}
}

func TestLiveFormReportsProblems(t *testing.T) {
	_, h := newTestHandler(t)
	conn := dialLive(t, h, nil)
	exchange(t, conn, nil)

	update := exchange(t, conn, form.Submit())
	if update.Panel != form.PanelEmpty {
		t.Fatalf("expected empty panel, got %q", update.Panel)
	}
	if len(update.Problems) != 4 {
		t.Fatalf("expected 4 problems, got %v", update.Problems)
	}
	if got := update.Problems[mortgage.FieldMode]; got != "This field is required" {
		t.Fatalf("expected mode problem %q, got %q", "This field is required", got)
	}
}

func TestLiveFormRejectsBadIntents(t *testing.T) {
	_, h := newTestHandler(t)
	conn := dialLive(t, h, nil)
	exchange(t, conn, nil)

	before := promtest.ToFloat64(intentsTotal.WithLabelValues("unknown", outcomeRejected))

	update := exchange(t, conn, form.Intent{Kind: "explode"})
	if update.Error == "" {
		t.Fatal("expected an error for an unknown intent")
	}

	update = exchange(t, conn, map[string]string{"kind": "field_edited", "field": "deposit", "value": "1"})
	if update.Error == "" {
		t.Fatal("expected an error for an unknown field")
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{")); err != nil {
		t.Fatalf("writing message: %v", err)
	}
	update = exchange(t, conn, nil)
	if update.Error != "malformed intent" {
		t.Fatalf("expected error %q, got %q", "malformed intent", update.Error)
	}

	after := promtest.ToFloat64(intentsTotal.WithLabelValues("unknown", outcomeRejected))
	if after-before != 2 {
		t.Fatalf("expected 2 unknown rejections counted, got %v", after-before)
	}
}

func TestLiveFormSeesFormPostedFromAnotherTab(t *testing.T) {
	_, h := newTestHandler(t)
	cookie := &http.Cookie{Name: testCookie, Value: session.NewID()}
	conn := dialLive(t, h, cookie)
	exchange(t, conn, nil)

	exchange(t, conn, form.FieldEdited(mortgage.FieldTerm, "10"))

	rr := testutil.PostForm(h, "/form", url.Values{
		"mortgage-amount": {"200000"},
		"mortgage-term":   {"25"},
		"interest-rate":   {"5.25"},
		"mortgage-type":   {"repayment"},
		"intent":          {actionSubmit},
	}, cookie)
	testutil.CheckResponseCode(t, http.StatusSeeOther, rr.Code)

	update := exchange(t, conn, form.FieldFocused(mortgage.FieldPrincipal))
	if update.Panel != form.PanelPopulated {
		t.Fatalf("expected the posted result to survive, got panel %q", update.Panel)
	}
	if got := update.Values[mortgage.FieldTerm]; got != "25" {
		t.Fatalf("expected posted term %q, got %q", "25", got)
	}
	if !strings.Contains(update.Results, "£1,198.50") {
		t.Fatalf("expected posted results, got %q", update.Results)
	}
}
