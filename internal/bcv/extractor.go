package bcv

import (
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
)

// rateLookahead bounds how far after a block id the rate value may appear.
const rateLookahead = 2048

// Extraction holds the raw values pulled out of the homepage.
type Extraction struct {
	ValidAt time.Time
	USDRaw  string
	EURRaw  string
}

// Raw returns the raw rate text for the given currency.
func (e Extraction) Raw(code domain.CurrencyCode) string {
	switch code {
	case domain.USD:
		return e.USDRaw
	case domain.EUR:
		return e.EURRaw
	}
	return ""
}

// Extractor pulls the valid date and per-currency rate text out of the homepage HTML.
type Extractor interface {
	Extract(html string) (Extraction, error)
}

var (
	validDatePattern = regexp.MustCompile(`(?is)Fecha\s+Valor:.*?content="([^"]+)"`)
	strongPattern    = regexp.MustCompile(`(?is)<strong>\s*([^<]+?)\s*</strong>`)
)

var validDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// PatternExtractor locates values by matching known markup anchors.
type PatternExtractor struct {
	blocks []rateBlock
}

type rateBlock struct {
	currency domain.Currency
	anchor   *regexp.Regexp
}

// NewPatternExtractor creates an extractor for the supported currencies.
func NewPatternExtractor() *PatternExtractor {
	blocks := make([]rateBlock, 0, len(domain.SupportedCurrencies))
	for _, c := range domain.SupportedCurrencies {
		blocks = append(blocks, rateBlock{currency: c, anchor: blockAnchor(c.BlockID)})
	}
	return &PatternExtractor{blocks: blocks}
}

func blockAnchor(blockID string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)id\s*=\s*"` + regexp.QuoteMeta(blockID) + `"`)
}

// Extract implements Extractor. A missing field fails the whole extraction.
func (p *PatternExtractor) Extract(html string) (Extraction, error) {
	validAt, err := extractValidAt(html)
	if err != nil {
		return Extraction{}, err
	}

	out := Extraction{ValidAt: validAt}
	for _, b := range p.blocks {
		raw, err := extractRate(html, b)
		if err != nil {
			return Extraction{}, err
		}
		switch b.currency.CurrencyCode {
		case domain.USD:
			out.USDRaw = raw
		case domain.EUR:
			out.EURRaw = raw
		}
	}
	return out, nil
}

func extractValidAt(html string) (time.Time, error) {
	m := validDatePattern.FindStringSubmatch(html)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return time.Time{}, ErrMissingValidDate
	}
	value := strings.TrimSpace(m[1])

	var lastErr error
	for _, layout := range validDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			// the published calendar day, not the UTC instant
			return domain.DateOnly(t), nil
		}
		lastErr = err
	}
	return time.Time{}, &InvalidValidDateError{Value: value, Err: lastErr}
}

func extractRate(html string, b rateBlock) (string, error) {
	loc := b.anchor.FindStringIndex(html)
	if loc == nil {
		return "", &MissingRateBlockError{Block: b.currency.BlockID}
	}

	end := loc[1] + rateLookahead
	if end > len(html) {
		end = len(html)
	}
	m := strongPattern.FindStringSubmatch(html[loc[1]:end])
	if m == nil {
		return "", &MissingRateBlockError{Block: b.currency.BlockID}
	}
	return strings.TrimSpace(m[1]), nil
}
