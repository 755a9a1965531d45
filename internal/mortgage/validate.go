package mortgage

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidatePresence fails with ErrRequired when the trimmed text is empty. It
// says nothing about whether the text is a usable number.
func ValidatePresence(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrRequired
	}
	return nil
}

// ValidateMode fails with ErrModeRequired when no mode is selected.
func ValidateMode(m Mode) error {
	if m == ModeNone {
		return ErrModeRequired
	}
	return nil
}

// Parse validates every field of v and converts it into a LoanInput. All
// failing fields are reported together in a *ValidationError.
func Parse(v Values) (LoanInput, error) {
	var (
		in   LoanInput
		verr ValidationError
		err  error
	)

	if in.Principal, err = parseDecimal(UngroupThousands(v.Principal)); err != nil {
		verr.add(FieldPrincipal, err)
	}
	if in.TermYears, err = parseTerm(v.Term); err != nil {
		verr.add(FieldTerm, err)
	}
	if in.AnnualRatePercent, err = parseDecimal(v.Rate); err != nil {
		verr.add(FieldRate, err)
	}
	if err = ValidateMode(v.Mode); err != nil {
		verr.add(FieldMode, err)
	} else if _, err = ParseMode(string(v.Mode)); err != nil {
		verr.add(FieldMode, fmt.Errorf("%w: %v", ErrModeRequired, err))
	}
	in.Mode = v.Mode

	if len(verr.Fields) > 0 {
		return LoanInput{}, &verr
	}
	return in, nil
}

func parseDecimal(raw string) (float64, error) {
	text := strings.TrimSpace(raw)
	if err := ValidatePresence(text); err != nil {
		return 0, err
	}
	if text != SanitizeDecimal(text) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return f, nil
}

// MaxTermYears is the longest term whose payment count still fits in an int.
const MaxTermYears = math.MaxInt / MonthsPerYear

func parseTerm(raw string) (int, error) {
	text := strings.TrimSpace(raw)
	if err := ValidatePresence(text); err != nil {
		return 0, err
	}
	if text != SanitizeInteger(text) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	years, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	if years == 0 {
		return 0, ErrZeroTerm
	}
	if years > MaxTermYears {
		return 0, fmt.Errorf("%w: %q exceeds %d years", ErrInvalidNumber, raw, MaxTermYears)
	}
	return years, nil
}
