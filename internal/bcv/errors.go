package bcv

import (
	"errors"
	"fmt"
)

// InsecureTLSEnvVar is the operator toggle controlling the insecure TLS fallback.
const InsecureTLSEnvVar = "BCV_ALLOW_INSECURE_TLS"

var (
	// ErrInvalidNumberFormat matches every NumberFormatError.
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// ErrExtraction matches every failure to pull the date or a rate out of the homepage.
	ErrExtraction = errors.New("extraction failed")

	// ErrMissingValidDate is returned when the "Fecha Valor" field is absent.
	ErrMissingValidDate = fmt.Errorf(`%w: could not find "Fecha Valor" in BCV HTML`, ErrExtraction)

	// ErrTooManyRedirects is returned when the redirect hop budget is exhausted.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// NumberFormatError reports text that could not be normalized into a decimal.
type NumberFormatError struct {
	Raw string
}

func (e *NumberFormatError) Error() string {
	return fmt.Sprintf("invalid BCV number: %q", e.Raw)
}

func (e *NumberFormatError) Is(target error) bool {
	return target == ErrInvalidNumberFormat
}

// InvalidValidDateError reports a "Fecha Valor" attribute that is not a date.
type InvalidValidDateError struct {
	Value string
	Err   error
}

func (e *InvalidValidDateError) Error() string {
	return fmt.Sprintf("invalid BCV date: %q", e.Value)
}

func (e *InvalidValidDateError) Unwrap() error {
	return e.Err
}

func (e *InvalidValidDateError) Is(target error) bool {
	return target == ErrExtraction
}

// MissingRateBlockError reports that the block holding a currency's rate was not found.
type MissingRateBlockError struct {
	Block string
}

func (e *MissingRateBlockError) Error() string {
	return fmt.Sprintf("could not find rate for %q in BCV HTML", e.Block)
}

func (e *MissingRateBlockError) Is(target error) bool {
	return target == ErrExtraction
}

// TLSErrorCode names a certificate chain verification failure.
type TLSErrorCode string

const (
	UnableToVerifyLeafSignature    TLSErrorCode = "UNABLE_TO_VERIFY_LEAF_SIGNATURE"
	UnableToVerifyFirstCertificate TLSErrorCode = "UNABLE_TO_VERIFY_FIRST_CERTIFICATE"
	DepthZeroSelfSignedCert        TLSErrorCode = "DEPTH_ZERO_SELF_SIGNED_CERT"
	SelfSignedCertInChain          TLSErrorCode = "SELF_SIGNED_CERT_IN_CHAIN"
)

// TLSVerificationError is returned when certificate verification failed and
// the insecure fallback is disabled.
type TLSVerificationError struct {
	Code TLSErrorCode
	Err  error
}

func (e *TLSVerificationError) Error() string {
	return fmt.Sprintf("BCV TLS verification failed (%s). Set %s=true to allow insecure fallback.", e.Code, InsecureTLSEnvVar)
}

func (e *TLSVerificationError) Unwrap() error {
	return e.Err
}

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string // first bytes of the body, for diagnostics
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("BCV request failed: %s", e.Status)
	}
	return fmt.Sprintf("BCV request failed: %s - %s", e.Status, e.Body)
}

// FetchError wraps any failure to retrieve the homepage.
type FetchError struct {
	URL      string
	Insecure bool
	Err      error
}

func (e *FetchError) Error() string {
	if e.Insecure {
		return fmt.Sprintf("fetch %s (insecure TLS): %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
