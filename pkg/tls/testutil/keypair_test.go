package testutil

import (
	"crypto/tls"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCert(t *testing.T) {
	ca, err := GenerateCA("itsfriday-ca", time.Hour)
	require.NoError(t, err)
	assert.True(t, ca.Cert.IsCA)
	pair, err := GenerateCert(ca, []string{"itsfriday-svc"}, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "itsfriday-svc", pair.Cert.Subject.CommonName)
	assert.NoError(t, pair.Cert.CheckSignatureFrom(ca.Cert))

	_, err = tls.X509KeyPair(CertificateToPem(pair.Cert), PrivateKeyToPem(pair.Key))
	assert.NoError(t, err)
}
