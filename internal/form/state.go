// Package form is the headless form controller: the state of one mortgage
// form and the transitions UI intents drive it through.
package form

import (
	"mortgage-calculator/internal/mortgage"
)

// Panel is the observable state of the results region.
type Panel string

const (
	PanelEmpty     Panel = "empty"
	PanelPopulated Panel = "populated"
)

// FieldState is one text field's current content and validation state.
type FieldState struct {
	Value   string           `json:"value"`
	Problem mortgage.Problem `json:"problem"`
}

// Invalid reports whether the field is currently marked as in error.
func (f FieldState) Invalid() bool {
	return f.Problem != mortgage.ProblemNone
}

// ModeState is the mortgage type selector.
type ModeState struct {
	Selected mortgage.Mode    `json:"selected"`
	Problem  mortgage.Problem `json:"problem"`
}

// State is the single source of truth for a form: what the user typed, which
// fields are in error and the last valid computation. A zero State is a
// freshly loaded, empty form.
type State struct {
	Principal FieldState                `json:"principal"`
	Term      FieldState                `json:"term"`
	Rate      FieldState                `json:"rate"`
	Mode      ModeState                 `json:"mode"`
	Result    *mortgage.RepaymentResult `json:"result,omitempty"`
}

// Panel derives the results region state.
func (s State) Panel() Panel {
	if s.Result == nil {
		return PanelEmpty
	}
	return PanelPopulated
}

// Values returns the raw form content.
func (s State) Values() mortgage.Values {
	return mortgage.Values{
		Principal: s.Principal.Value,
		Term:      s.Term.Value,
		Rate:      s.Rate.Value,
		Mode:      s.Mode.Selected,
	}
}

// Field returns the state of a text field.
func (s State) Field(f mortgage.Field) (FieldState, bool) {
	if p := s.field(f); p != nil {
		return *p, true
	}
	return FieldState{}, false
}

// Problems lists the fields currently in error with their inline messages.
func (s State) Problems() map[mortgage.Field]string {
	out := make(map[mortgage.Field]string)
	for _, f := range mortgage.NumericFields {
		if fs, _ := s.Field(f); fs.Invalid() {
			out[f] = fs.Problem.Message()
		}
	}
	if s.Mode.Problem != mortgage.ProblemNone {
		out[mortgage.FieldMode] = s.Mode.Problem.Message()
	}
	return out
}

// HasProblems reports whether any field is marked in error.
func (s State) HasProblems() bool {
	return len(s.Problems()) > 0
}

func (s *State) field(f mortgage.Field) *FieldState {
	switch f {
	case mortgage.FieldPrincipal:
		return &s.Principal
	case mortgage.FieldTerm:
		return &s.Term
	case mortgage.FieldRate:
		return &s.Rate
	}
	return nil
}
