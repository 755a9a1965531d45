package mortgage

import (
	"strconv"
	"strings"
)

// SanitizeDecimal drops every character other than digits and '.', and keeps
// only the first '.'.
func SanitizeDecimal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeInteger drops every character other than digits.
func SanitizeInteger(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeField applies the sanitizer matching the field's type. The mode
// field is not free text and passes through.
func SanitizeField(field Field, s string) string {
	switch field {
	case FieldTerm:
		return SanitizeInteger(s)
	case FieldPrincipal, FieldRate:
		return SanitizeDecimal(s)
	}
	return s
}

// UngroupThousands removes grouping separators.
func UngroupThousands(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// GroupThousands regroups a numeric string with ',' every three digits of
// its integer part. Text that is not a number is returned as given.
func GroupThousands(s string) string {
	plain := UngroupThousands(s)
	if plain == "" || plain != SanitizeDecimal(plain) {
		return s
	}
	if _, err := strconv.ParseFloat(plain, 64); err != nil {
		return s
	}

	intPart, fracPart, hasDot := strings.Cut(plain, ".")
	grouped := groupDigits(intPart)
	if hasDot {
		return grouped + "." + fracPart
	}
	return grouped
}

func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}
