// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tlsconf builds the server- and client-side *tls.Config the kv
// connection driver runs over raw TCP, either with server-only auth or
// mutual TLS when a client CA is configured.
package tlsconf

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/packetd/kvdb/kverr"
)

// ServerOptions configures the server-side TLS identity and, optionally,
// client certificate verification.
type ServerOptions struct {
	CertFile   string `config:"certFile"`
	KeyFile    string `config:"keyFile"`
	ClientCA   string `config:"clientCA"` // empty disables mutual TLS
	ServerName string `config:"serverName"`
}

// NewServerConfig loads the server identity and, if ClientCA is set, turns
// on mutual TLS by requiring and verifying client certificates.
func NewServerConfig(opt ServerOptions) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(opt.CertFile, opt.KeyFile)
	if err != nil {
		return nil, kverr.NewCertificateParseError("server", err.Error())
	}

	cfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	if opt.ClientCA != "" {
		pool, err := loadCAPool(opt.ClientCA)
		if err != nil {
			return nil, err
		}
		cfg.ClientCAs = pool
		cfg.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return cfg, nil
}

// ClientOptions configures the client-side trust root and, optionally, its
// own identity for mutual TLS.
type ClientOptions struct {
	CACert     string `config:"caCert"`
	CertFile   string `config:"certFile"` // empty disables client identity
	KeyFile    string `config:"keyFile"`
	ServerName string `config:"serverName"`
}

// NewClientConfig loads the trust root and, if CertFile is set, the
// client's own certificate for mutual TLS.
func NewClientConfig(opt ClientOptions) (*tls.Config, error) {
	pool, err := loadCAPool(opt.CACert)
	if err != nil {
		return nil, err
	}

	cfg := &tls.Config{
		RootCAs:    pool,
		ServerName: opt.ServerName,
		MinVersion: tls.VersionTLS12,
	}

	if opt.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(opt.CertFile, opt.KeyFile)
		if err != nil {
			return nil, kverr.NewCertificateParseError("client", err.Error())
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	return cfg, nil
}

func loadCAPool(path string) (*x509.CertPool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, kverr.NewCertificateParseError("ca", err.Error())
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(raw) {
		return nil, kverr.NewCertificateParseError("ca", "no certificates parsed from PEM")
	}
	return pool, nil
}

// WrapTLSError turns a handshake failure into the closed TlsError kind.
func WrapTLSError(err error) error {
	if err == nil {
		return nil
	}
	return kverr.NewTlsError(err)
}
