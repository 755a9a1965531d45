package mortgage

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// MonthsPerYear is the number of payments in a year of the term.
	MonthsPerYear = 12

	percentMultiplier = 100.0
	amountPlaces      = 2
)

// Calculate computes the monthly and total repayment for a parsed input.
//
// The engine has no error path. Input that slips past Parse with a
// degenerate value (an exponent that overflows for an enormous term, say)
// yields NaN or Inf amounts, which Finite reports.
func Calculate(in LoanInput) RepaymentResult {
	n := float64(in.TermYears) * MonthsPerYear
	rate := in.RateFraction()

	var monthly, total float64
	switch in.Mode {
	case ModeInterestOnly:
		monthly = in.Principal * rate / MonthsPerYear
		total = monthly*n + in.Principal
	default:
		monthly = annuityPayment(in.Principal, rate/MonthsPerYear, n)
		total = monthly * n
	}

	return RepaymentResult{
		Mode:             in.Mode,
		MonthlyAmount:    Round(monthly),
		TotalAmount:      Round(total),
		NumberOfPayments: in.NumberOfPayments(),
	}
}

// annuityPayment is the fixed payment that repays principal over n periods
// at the given periodic rate. A zero rate is the limiting case principal/n.
func annuityPayment(principal, periodicRate, n float64) float64 {
	if periodicRate == 0 {
		return principal / n
	}
	growth := math.Pow(1+periodicRate, n)
	return principal * periodicRate * growth / (growth - 1)
}

// Round rounds an amount to whole pence, half away from zero. NaN and Inf are
// returned unchanged.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(amountPlaces).InexactFloat64()
}

// Finite reports whether both amounts are real numbers.
func (r RepaymentResult) Finite() bool {
	for _, v := range []float64{r.MonthlyAmount, r.TotalAmount} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Decimal returns the monthly and total amounts as fixed-point decimals. It
// must only be called on a Finite result.
func (r RepaymentResult) Decimal() (monthly, total decimal.Decimal) {
	return decimal.NewFromFloat(r.MonthlyAmount), decimal.NewFromFloat(r.TotalAmount)
}
