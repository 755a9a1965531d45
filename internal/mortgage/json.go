package mortgage

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// resultJSON carries amounts as strings so NaN and Inf survive a round trip
// through a session store.
type resultJSON struct {
	Mode             Mode   `json:"mode"`
	MonthlyAmount    string `json:"monthly_amount"`
	TotalAmount      string `json:"total_amount"`
	NumberOfPayments int    `json:"number_of_payments"`
}

func (r RepaymentResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Mode:             r.Mode,
		MonthlyAmount:    strconv.FormatFloat(r.MonthlyAmount, 'f', -1, 64),
		TotalAmount:      strconv.FormatFloat(r.TotalAmount, 'f', -1, 64),
		NumberOfPayments: r.NumberOfPayments,
	})
}

func (r *RepaymentResult) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	monthly, err := strconv.ParseFloat(raw.MonthlyAmount, 64)
	if err != nil {
		return fmt.Errorf("decode monthly amount: %w", err)
	}
	total, err := strconv.ParseFloat(raw.TotalAmount, 64)
	if err != nil {
		return fmt.Errorf("decode total amount: %w", err)
	}
	*r = RepaymentResult{
		Mode:             raw.Mode,
		MonthlyAmount:    monthly,
		TotalAmount:      total,
		NumberOfPayments: raw.NumberOfPayments,
	}
	return nil
}
