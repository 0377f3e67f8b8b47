package bcv

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCert struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
}

func issue(t *testing.T, name string, isCA bool, parent *testCert) *testCert {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(time.Now().UnixNano()),
		Subject:               pkix.Name{CommonName: name},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  isCA,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
	}

	signerCert, signerKey := tmpl, key
	if parent != nil {
		signerCert, signerKey = parent.cert, parent.key
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, signerCert, &key.PublicKey, signerKey)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return &testCert{cert: cert, key: key}
}

func TestClassifyChain(t *testing.T) {
	root := issue(t, "root", true, nil)
	intermediate := issue(t, "intermediate", true, root)
	leaf := issue(t, "www.bcv.org.ve", false, root)
	deepLeaf := issue(t, "www.bcv.org.ve", false, intermediate)
	selfSigned := issue(t, "www.bcv.org.ve", false, nil)

	tests := []struct {
		name  string
		chain []*x509.Certificate
		want  TLSErrorCode
	}{
		{"self signed leaf only", []*x509.Certificate{selfSigned.cert}, DepthZeroSelfSignedCert},
		{"leaf without issuer", []*x509.Certificate{leaf.cert}, UnableToVerifyLeafSignature},
		{"missing root for intermediate", []*x509.Certificate{deepLeaf.cert, intermediate.cert}, UnableToVerifyFirstCertificate},
		{"untrusted root sent in chain", []*x509.Certificate{leaf.cert, root.cert}, SelfSignedCertInChain},
		{"empty chain", nil, UnableToVerifyLeafSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyChain(tt.chain))
		})
	}
}

func TestClassifyTLSError(t *testing.T) {
	root := issue(t, "root", true, nil)
	leaf := issue(t, "www.bcv.org.ve", false, root)

	verifyErr := &tls.CertificateVerificationError{
		UnverifiedCertificates: []*x509.Certificate{leaf.cert, root.cert},
		Err:                    x509.UnknownAuthorityError{Cert: leaf.cert},
	}
	code, ok := ClassifyTLSError(fmt.Errorf("Get %q: %w", "https://www.bcv.org.ve/", verifyErr))
	require.True(t, ok)
	assert.Equal(t, SelfSignedCertInChain, code)

	code, ok = ClassifyTLSError(x509.UnknownAuthorityError{Cert: leaf.cert})
	require.True(t, ok)
	assert.Equal(t, UnableToVerifyLeafSignature, code)

	_, ok = ClassifyTLSError(x509.HostnameError{Certificate: leaf.cert, Host: "example.com"})
	assert.False(t, ok)

	_, ok = ClassifyTLSError(errors.New("connection refused"))
	assert.False(t, ok)

	_, ok = ClassifyTLSError(nil)
	assert.False(t, ok)
}
