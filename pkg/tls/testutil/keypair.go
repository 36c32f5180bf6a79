package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"time"

	"github.com/pkg/errors"
)

// KeyPair is a certificate with its private key, for tests that need a serving pair.
type KeyPair struct {
	Cert *x509.Certificate
	Key  *rsa.PrivateKey
}

// GenerateCA creates a self-signed CA cert and private key
// it can be used to sign a webhook server certificate outside of a cluster
func GenerateCA(commonName string, certValidityDuration time.Duration) (*KeyPair, error) {
	now := time.Now()
	begin, end := now.Add(-1*time.Hour), now.Add(certValidityDuration)
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, errors.Wrap(err, "error generating key")
	}
	templ := &x509.Certificate{
		SerialNumber: big.NewInt(0),
		Subject: pkix.Name{
			CommonName: commonName,
		},
		NotBefore:             begin,
		NotAfter:              end,
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment | x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der, err := x509.CreateCertificate(rand.Reader, templ, templ, key.Public(), key)
	if err != nil {
		return nil, errors.Wrap(err, "error creating certificate")
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing certificate")
	}
	return &KeyPair{
		Cert: cert,
		Key:  key,
	}, nil
}

// GenerateCert uses the CA to create a server certificate valid for the given DNS names
func GenerateCert(caCert *KeyPair, dnsNames []string, certValidityDuration time.Duration) (*KeyPair, error) {
	now := time.Now()
	begin, end := now.Add(-1*time.Hour), now.Add(certValidityDuration)
	var commonName string
	if len(dnsNames) > 0 {
		commonName = dnsNames[0]
	}
	templ := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			CommonName: commonName,
		},
		DNSNames:              dnsNames,
		NotBefore:             begin,
		NotAfter:              end,
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, errors.Wrap(err, "error generating key for webhook")
	}
	der, err := x509.CreateCertificate(rand.Reader, templ, caCert.Cert, key.Public(), caCert.Key)
	if err != nil {
		return nil, errors.Wrap(err, "error creating certificate for webhook")
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing webhook certificate")
	}
	return &KeyPair{
		Cert: cert,
		Key:  key,
	}, nil
}
