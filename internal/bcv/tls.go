package bcv

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"errors"
)

// ClassifyTLSError maps a certificate chain verification failure to a TLSErrorCode.
// It reports false for any other error, including hostname mismatches and expired certificates.
func ClassifyTLSError(err error) (TLSErrorCode, bool) {
	if err == nil {
		return "", false
	}

	var chain []*x509.Certificate
	var verifyErr *tls.CertificateVerificationError
	if errors.As(err, &verifyErr) {
		chain = verifyErr.UnverifiedCertificates
	}

	var authorityErr x509.UnknownAuthorityError
	if !errors.As(err, &authorityErr) {
		return "", false
	}
	if len(chain) == 0 && authorityErr.Cert != nil {
		chain = []*x509.Certificate{authorityErr.Cert}
	}
	return classifyChain(chain), true
}

func classifyChain(chain []*x509.Certificate) TLSErrorCode {
	if len(chain) == 0 {
		return UnableToVerifyLeafSignature
	}
	if len(chain) == 1 {
		if isSelfSigned(chain[0]) {
			return DepthZeroSelfSignedCert
		}
		return UnableToVerifyLeafSignature
	}
	for _, c := range chain[1:] {
		if isSelfSigned(c) {
			return SelfSignedCertInChain
		}
	}
	return UnableToVerifyFirstCertificate
}

func isSelfSigned(c *x509.Certificate) bool {
	if !bytes.Equal(c.RawIssuer, c.RawSubject) {
		return false
	}
	return c.CheckSignature(c.SignatureAlgorithm, c.RawTBSCertificate, c.Signature) == nil
}
