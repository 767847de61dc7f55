package http

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/crmarques/geoserverctl/config"
)

// buildTLSConfig reads the CA bundle and client pair from fs. A nil
// settings block keeps the system defaults.
func buildTLSConfig(fs afero.Fs, tlsSettings *config.TLS) (*tls.Config, error) {
	if tlsSettings == nil {
		return nil, nil
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: tlsSettings.InsecureSkipVerify,
	}

	if caFile := strings.TrimSpace(tlsSettings.CACertFile); caFile != "" {
		caBytes, err := readPEM(fs, "ca-cert-file", caFile)
		if err != nil {
			return nil, err
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caBytes) {
			return nil, validationError("server.tls.ca-cert-file is not valid PEM", nil)
		}
		tlsConfig.RootCAs = pool
	}

	clientCertFile := strings.TrimSpace(tlsSettings.ClientCertFile)
	clientKeyFile := strings.TrimSpace(tlsSettings.ClientKeyFile)
	if (clientCertFile == "") != (clientKeyFile == "") {
		return nil, validationError("server.tls requires both client-cert-file and client-key-file", nil)
	}
	if clientCertFile == "" {
		return tlsConfig, nil
	}

	certPEM, err := readPEM(fs, "client-cert-file", clientCertFile)
	if err != nil {
		return nil, err
	}
	keyPEM, err := readPEM(fs, "client-key-file", clientKeyFile)
	if err != nil {
		return nil, err
	}
	certificate, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, validationError("server.tls client certificate pair is invalid", err)
	}
	tlsConfig.Certificates = []tls.Certificate{certificate}
	return tlsConfig, nil
}

func readPEM(fs afero.Fs, key string, path string) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, validationError(fmt.Sprintf("server.tls.%s %q could not be read", key, path), err)
	}
	return data, nil
}

type tlsDebugInfo struct {
	enabled            bool
	insecureSkipVerify bool
	caCertFile         string
	clientCertFile     string
}

func newTLSDebugInfo(tlsSettings *config.TLS) tlsDebugInfo {
	if tlsSettings == nil {
		return tlsDebugInfo{}
	}

	return tlsDebugInfo{
		enabled:            true,
		insecureSkipVerify: tlsSettings.InsecureSkipVerify,
		caCertFile:         strings.TrimSpace(tlsSettings.CACertFile),
		clientCertFile:     strings.TrimSpace(tlsSettings.ClientCertFile),
	}
}
