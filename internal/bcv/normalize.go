package bcv

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Normalize converts a locale-ambiguous decimal string into a canonical one.
//
// Whichever of ',' and '.' appears last is taken as the decimal separator and
// every occurrence of the other is dropped as a thousands separator:
//
//	"330,37510000" -> "330.37510000"
//	"1.234,56"     -> "1234.56"
//	"1,234.56"     -> "1234.56"
//
// Anything other than digits and the decimal point is then discarded, signs included.
func Normalize(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	switch {
	case lastComma > lastDot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case lastDot > lastComma:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	default:
		cleaned = strings.NewReplacer(",", "", ".", "").Replace(cleaned)
	}

	cleaned = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, cleaned)

	if cleaned == "" || cleaned == "." {
		return "", &NumberFormatError{Raw: raw}
	}
	if _, err := decimal.NewFromString(cleaned); err != nil {
		return "", &NumberFormatError{Raw: raw}
	}
	return cleaned, nil
}

// NormalizeDecimal normalizes raw and parses it as a decimal.
func NormalizeDecimal(raw string) (decimal.Decimal, error) {
	s, err := Normalize(raw)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &NumberFormatError{Raw: raw}
	}
	return d, nil
}

// NormalizePositive is the variant used for user-submitted amounts. Zero is
// rejected, and so is any input carrying a minus sign.
func NormalizePositive(raw string) (decimal.Decimal, error) {
	d, err := NormalizeDecimal(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if strings.Contains(raw, "-") || !d.IsPositive() {
		return decimal.Zero, &NumberFormatError{Raw: raw}
	}
	return d, nil
}
