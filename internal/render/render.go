// Package render turns form state into markup. Every function here is a pure
// projection of its arguments.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"mortgage-calculator/internal/form"
	"mortgage-calculator/internal/mortgage"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// View names one of the three mutually exclusive results views.
type View string

const (
	ViewEmpty        View = "empty"
	ViewRepayment    View = "repayment"
	ViewInterestOnly View = "interest-only"
)

// ViewFor picks the results view for the last result, or the empty
// placeholder when there is none.
func ViewFor(result *mortgage.RepaymentResult) View {
	switch {
	case result == nil:
		return ViewEmpty
	case result.Mode == mortgage.ModeInterestOnly:
		return ViewInterestOnly
	}
	return ViewRepayment
}

type figures struct {
	Monthly string
	Total   string
}

// Results writes the results region content for result.
func Results(w io.Writer, result *mortgage.RepaymentResult) error {
	view := ViewFor(result)

	var data any
	if result != nil {
		data = figures{
			Monthly: mortgage.FormatCurrency(result.MonthlyAmount),
			Total:   mortgage.FormatCurrency(result.TotalAmount),
		}
	}

	if err := templates.ExecuteTemplate(w, string(view), data); err != nil {
		return fmt.Errorf("render %s results: %w", view, err)
	}
	return nil
}

// ResultsHTML is Results into a string.
func ResultsHTML(result *mortgage.RepaymentResult) (string, error) {
	var buf bytes.Buffer
	if err := Results(&buf, result); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type fieldView struct {
	ID        string
	Label     string
	Value     string
	Prefix    string
	Suffix    string
	InputMode string
	Invalid   bool
	Message   string
}

type modeView struct {
	Value   string
	Label   string
	Checked bool
}

type pageView struct {
	Fields      []fieldView
	Modes       []modeView
	ModeInvalid bool
	ModeMessage string
	Panel       form.Panel
	Results     template.HTML
}

var fieldLabels = map[mortgage.Field]fieldView{
	mortgage.FieldPrincipal: {Label: "Mortgage Amount", Prefix: mortgage.CurrencySymbol, InputMode: "decimal"},
	mortgage.FieldTerm:      {Label: "Mortgage Term", Suffix: "years", InputMode: "numeric"},
	mortgage.FieldRate:      {Label: "Interest Rate", Suffix: "%", InputMode: "decimal"},
}

// Page writes the whole calculator document for s.
func Page(w io.Writer, s form.State) error {
	results, err := ResultsHTML(s.Result)
	if err != nil {
		return err
	}

	view := pageView{
		ModeInvalid: s.Mode.Problem != mortgage.ProblemNone,
		ModeMessage: mortgage.ProblemRequired.Message(),
		Panel:       s.Panel(),
		// Produced by our own templates, already escaped.
		Results: template.HTML(results),
	}

	for _, f := range mortgage.NumericFields {
		st, _ := s.Field(f)
		fv := fieldLabels[f]
		fv.ID = string(f)
		fv.Value = st.Value
		fv.Invalid = st.Invalid()
		fv.Message = st.Problem.Message()
		view.Fields = append(view.Fields, fv)
	}

	for _, m := range []mortgage.Mode{mortgage.ModeRepayment, mortgage.ModeInterestOnly} {
		view.Modes = append(view.Modes, modeView{
			Value:   string(m),
			Label:   m.Label(),
			Checked: s.Mode.Selected == m,
		})
	}

	if err := templates.ExecuteTemplate(w, "page", view); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// Assets serves the embedded stylesheet and illustration.
func Assets() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	return http.FileServer(http.FS(sub))
}
