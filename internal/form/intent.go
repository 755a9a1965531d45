package form

import (
	"errors"
	"fmt"

	"mortgage-calculator/internal/mortgage"
)

var (
	ErrUnknownIntent = errors.New("unknown intent")
	ErrUnknownField  = errors.New("unknown field")
	ErrUnknownMode   = errors.New("unknown mortgage type")
)

// Kind names a discrete UI intent.
type Kind string

const (
	KindSubmit           Kind = "submit"
	KindClear            Kind = "clear"
	KindFieldEdited      Kind = "field_edited"
	KindFieldFocused     Kind = "field_focused"
	KindFieldBlurred     Kind = "field_blurred"
	KindModeChanged      Kind = "mode_changed"
	KindModeGroupClicked Kind = "mode_group_clicked"
)

// Intent is one user action against the form.
type Intent struct {
	Kind  Kind           `json:"kind"`
	Field mortgage.Field `json:"field,omitempty"`
	Value string         `json:"value,omitempty"`
	Mode  mortgage.Mode  `json:"mode,omitempty"`
}

func Submit() Intent { return Intent{Kind: KindSubmit} }

func Clear() Intent { return Intent{Kind: KindClear} }

func FieldEdited(f mortgage.Field, value string) Intent {
	return Intent{Kind: KindFieldEdited, Field: f, Value: value}
}

func FieldFocused(f mortgage.Field) Intent {
	return Intent{Kind: KindFieldFocused, Field: f}
}

func FieldBlurred(f mortgage.Field) Intent {
	return Intent{Kind: KindFieldBlurred, Field: f}
}

func ModeChanged(m mortgage.Mode) Intent {
	return Intent{Kind: KindModeChanged, Mode: m}
}

// ModeGroupClicked is a click anywhere in a mode option's visual group. It
// selects that option exactly like clicking its radio control.
func ModeGroupClicked(m mortgage.Mode) Intent {
	return Intent{Kind: KindModeGroupClicked, Mode: m}
}

// Apply returns the state that results from applying in to s. s is never
// modified. On error the returned state equals s.
func Apply(s State, in Intent) (State, error) {
	switch in.Kind {
	case KindSubmit:
		return calculate(s), nil

	case KindClear:
		return State{}, nil

	case KindFieldEdited:
		field := s.field(in.Field)
		if field == nil {
			return s, fmt.Errorf("%w: %q", ErrUnknownField, in.Field)
		}
		field.Value = mortgage.SanitizeField(in.Field, in.Value)
		field.Problem = mortgage.ProblemOf(mortgage.ValidatePresence(field.Value))
		return s, nil

	case KindFieldFocused, KindFieldBlurred:
		field := s.field(in.Field)
		if field == nil {
			return s, fmt.Errorf("%w: %q", ErrUnknownField, in.Field)
		}
		// Only the principal carries thousands separators, and only while it
		// does not have focus.
		if in.Field == mortgage.FieldPrincipal {
			if in.Kind == KindFieldFocused {
				field.Value = mortgage.UngroupThousands(field.Value)
			} else {
				field.Value = mortgage.GroupThousands(field.Value)
			}
		}
		return s, nil

	case KindModeChanged, KindModeGroupClicked:
		if in.Mode != mortgage.ModeRepayment && in.Mode != mortgage.ModeInterestOnly {
			return s, fmt.Errorf("%w: %q", ErrUnknownMode, in.Mode)
		}
		s.Mode = ModeState{Selected: in.Mode}
		if s.Panel() == PanelPopulated {
			return calculate(s), nil
		}
		return s, nil
	}

	return s, fmt.Errorf("%w: %q", ErrUnknownIntent, in.Kind)
}

// ApplyAll applies intents in order and stops at the first error, returning
// the state reached before it.
func ApplyAll(s State, intents ...Intent) (State, error) {
	for _, in := range intents {
		next, err := Apply(s, in)
		if err != nil {
			return s, err
		}
		s = next
	}
	return s, nil
}

// calculate validates every field, marking each failure, and computes a
// result only when all of them pass. A failed attempt empties the results.
func calculate(s State) State {
	for _, f := range mortgage.NumericFields {
		s.field(f).Problem = mortgage.ProblemNone
	}
	s.Mode.Problem = mortgage.ProblemNone
	s.Result = nil

	input, err := mortgage.Parse(s.Values())
	if err != nil {
		var verr *mortgage.ValidationError
		if !errors.As(err, &verr) {
			return s
		}
		for _, fe := range verr.Fields {
			p := mortgage.ProblemOf(fe.Err)
			if fe.Field == mortgage.FieldMode {
				s.Mode.Problem = p
				continue
			}
			if field := s.field(fe.Field); field != nil {
				field.Problem = p
			}
		}
		return s
	}

	result := mortgage.Calculate(input)
	s.Result = &result
	return s
}
