// Package mortgage holds the repayment domain: input sanitizing, field
// validation, parsing and the two closed-form repayment calculations.
package mortgage

import "fmt"

// Field identifies a form control by the id the markup uses for it.
type Field string

const (
	FieldPrincipal Field = "mortgage-amount"
	FieldTerm      Field = "mortgage-term"
	FieldRate      Field = "interest-rate"
	FieldMode      Field = "mortgage-type"
)

// NumericFields lists the three text fields in display order.
var NumericFields = []Field{FieldPrincipal, FieldTerm, FieldRate}

// ParseField maps a field id back to a Field.
func ParseField(id string) (Field, error) {
	switch f := Field(id); f {
	case FieldPrincipal, FieldTerm, FieldRate, FieldMode:
		return f, nil
	}
	return "", fmt.Errorf("unknown field %q", id)
}

// Mode selects the amortization model. The zero value means no mode chosen.
type Mode string

const (
	ModeNone         Mode = ""
	ModeRepayment    Mode = "repayment"
	ModeInterestOnly Mode = "interest-only"
)

// ParseMode accepts the values posted by the mode radio controls.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeNone, ModeRepayment, ModeInterestOnly:
		return m, nil
	}
	return ModeNone, fmt.Errorf("unknown mortgage type %q", s)
}

// Label is the display name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeRepayment:
		return "Repayment"
	case ModeInterestOnly:
		return "Interest Only"
	}
	return ""
}

// Values is the raw text of the form, exactly as typed or stored.
type Values struct {
	Principal string `json:"principal"`
	Term      string `json:"term"`
	Rate      string `json:"rate"`
	Mode      Mode   `json:"mode"`
}

// LoanInput is a parsed, typed calculation request.
type LoanInput struct {
	Principal         float64
	TermYears         int
	AnnualRatePercent float64
	Mode              Mode
}

// RateFraction is the annual rate as a fraction (5.25% -> 0.0525).
func (in LoanInput) RateFraction() float64 {
	return in.AnnualRatePercent / percentMultiplier
}

// NumberOfPayments is the count of monthly payments over the term.
func (in LoanInput) NumberOfPayments() int {
	return in.TermYears * MonthsPerYear
}

// RepaymentResult is the outcome of one calculation. Amounts are rounded to
// two fractional digits.
type RepaymentResult struct {
	Mode             Mode
	MonthlyAmount    float64
	TotalAmount      float64
	NumberOfPayments int
}
