package repayment

import "mortgage-calculator/internal/mortgage"

// CalculateRequest is the JSON body for POST /api/repayments. Values are the
// text a user would type, so "200,000" is accepted for the principal.
type CalculateRequest struct {
	Principal string        `json:"principal"`
	Term      string        `json:"term"`
	Rate      string        `json:"rate"`
	Mode      mortgage.Mode `json:"mode"` // "repayment" or "interest-only"
}

func (r CalculateRequest) values() mortgage.Values {
	return mortgage.Values{
		Principal: r.Principal,
		Term:      r.Term,
		Rate:      r.Rate,
		Mode:      r.Mode,
	}
}

// CalculateResponse is the JSON response for POST /api/repayments. Amounts
// are fixed two-digit decimal strings; the display fields carry the currency
// symbol and grouping.
type CalculateResponse struct {
	Mode             mortgage.Mode `json:"mode"`
	MonthlyAmount    string        `json:"monthly_amount"`
	TotalAmount      string        `json:"total_amount"`
	MonthlyDisplay   string        `json:"monthly_display"`
	TotalDisplay     string        `json:"total_display"`
	NumberOfPayments int           `json:"number_of_payments"`
}

// NewCalculateResponse renders result for the wire.
func NewCalculateResponse(result mortgage.RepaymentResult) CalculateResponse {
	monthly, total := result.Decimal()
	return CalculateResponse{
		Mode:             result.Mode,
		MonthlyAmount:    monthly.StringFixed(2),
		TotalAmount:      total.StringFixed(2),
		MonthlyDisplay:   mortgage.FormatCurrency(result.MonthlyAmount),
		TotalDisplay:     mortgage.FormatCurrency(result.TotalAmount),
		NumberOfPayments: result.NumberOfPayments,
	}
}

// NewValidationResponse maps each failing field to its inline message.
func NewValidationResponse(verr *mortgage.ValidationError) ValidationResponse {
	resp := ValidationResponse{Error: "invalid loan input", Fields: make(map[string]string, len(verr.Fields))}
	for _, fe := range verr.Fields {
		resp.Fields[string(fe.Field)] = mortgage.ProblemOf(fe.Err).Message()
	}
	return resp
}

// ValidationResponse lists the inline message of every failing field.
type ValidationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// SanitizeRequest is the JSON body for POST /api/sanitize.
type SanitizeRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// SanitizeResponse echoes the cleaned value. Display is the grouped form the
// field shows when it loses focus; it differs from Value only for the
// principal.
type SanitizeResponse struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Display string `json:"display"`
}
