package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	// CustomRateLabelMaxLen is the maximum number of characters in a custom rate label.
	CustomRateLabelMaxLen = 16
	// DefaultMaxCustomRatesPerUser applies when no cap is configured.
	DefaultMaxCustomRatesPerUser = 10
)

// UserCustomRate is a user-defined named rate (e.g. "USDT", "PARALELO").
// Labels are stored uppercase and are unique per user.
type UserCustomRate struct {
	ID     string          `json:"id"`
	UserID string          `json:"userID"`
	Label  string          `json:"label"`
	Rate   decimal.Decimal `json:"rate"`
	Timestamps
}

var customRateLabelPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9 _.-]*$`)

// NormalizeCustomRateLabel trims and uppercases raw and checks it against the label rules.
func NormalizeCustomRateLabel(raw string) (string, error) {
	label := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case label == "":
		return "", errors.New("label is required")
	case utf8.RuneCountInString(label) > CustomRateLabelMaxLen:
		return "", fmt.Errorf("label must be %d characters or fewer", CustomRateLabelMaxLen)
	case !customRateLabelPattern.MatchString(label):
		return "", errors.New("label can only contain letters, numbers, spaces, _ . -")
	}
	return label, nil
}
