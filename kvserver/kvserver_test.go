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

package kvserver

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/packetd/kvdb/broadcast"
	"github.com/packetd/kvdb/pb"
	"github.com/packetd/kvdb/service"
	"github.com/packetd/kvdb/storage"
	"github.com/packetd/kvdb/transport/tlsconf"
)

// selfSignedCert writes a throwaway self-signed certificate valid for
// 127.0.0.1 into dir and returns the cert and key file paths. Since it is
// self-signed, the same cert file doubles as the trust root on the client
// side.
func selfSignedCert(t *testing.T, dir string) (certFile, keyFile string) {
	t.Helper()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "127.0.0.1"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
		IsCA:         true,
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	require.NoError(t, err)

	keyDER, err := x509.MarshalECPrivateKey(priv)
	require.NoError(t, err)

	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")

	require.NoError(t, os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	require.NoError(t, os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600))
	return certFile, keyFile
}

func dialTestClient(t *testing.T, addr, certFile string) *Client {
	t.Helper()
	c, err := Dial(addr, tlsconf.ClientOptions{CACert: certFile, ServerName: "127.0.0.1"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestHsetHgetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile := selfSignedCert(t, dir)

	svc := service.New(storage.NewMemory(), broadcast.New())
	srv, err := NewServer(Config{
		TLS: tlsconf.ServerOptions{CertFile: certFile, KeyFile: keyFile},
	}, svc)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv.listener = ln
	go func() { _ = srv.serveOn(ln) }()
	defer srv.Stop()

	client := dialTestClient(t, ln.Addr().String(), certFile)

	res, err := client.ExecuteUnary(pb.NewHset("t1", "hello", pb.StringValue("world")))
	require.NoError(t, err)
	require.Equal(t, uint32(200), res.Status)

	res, err = client.ExecuteUnary(pb.NewHget("t1", "hello"))
	require.NoError(t, err)
	require.Equal(t, uint32(200), res.Status)
	require.Len(t, res.Values, 1)
	got, ok := res.Values[0].GetString()
	require.True(t, ok)
	require.Equal(t, "world", got)
}

func TestSubscribePublishRoundTrip(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile := selfSignedCert(t, dir)

	svc := service.New(storage.NewMemory(), broadcast.New())
	srv, err := NewServer(Config{
		TLS: tlsconf.ServerOptions{CertFile: certFile, KeyFile: keyFile},
	}, svc)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv.listener = ln
	go func() { _ = srv.serveOn(ln) }()
	defer srv.Stop()

	subscriber := dialTestClient(t, ln.Addr().String(), certFile)
	publisher := dialTestClient(t, ln.Addr().String(), certFile)

	sub, err := subscriber.ExecuteSubscribe("lobby")
	require.NoError(t, err)
	require.Greater(t, sub.ID, uint32(0))
	defer sub.Close()

	res, err := publisher.ExecutePublish("lobby", []*pb.Value{pb.StringValue("hi")})
	require.NoError(t, err)
	require.Equal(t, uint32(200), res.Status)

	msg, err := sub.Next()
	require.NoError(t, err)
	require.Len(t, msg.Values, 1)
	got, ok := msg.Values[0].GetString()
	require.True(t, ok)
	require.Equal(t, "hi", got)
}
