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
	"crypto/tls"
	"errors"
	"net"

	"github.com/google/uuid"
	"golang.org/x/net/netutil"

	"github.com/packetd/kvdb/internal/rescue"
	"github.com/packetd/kvdb/logger"
	"github.com/packetd/kvdb/service"
	"github.com/packetd/kvdb/transport/mux"
	"github.com/packetd/kvdb/transport/tlsconf"
)

// Server accepts TLS connections, multiplexes each one with yamux, and
// runs svc against every sub-stream the peer opens. It mirrors the
// source's TcpServerStream accept loop, generalized from one unary
// ProstServerStream per connection to one driveSubstream per yamux
// sub-stream.
type Server struct {
	cfg      Config
	svc      *service.Service
	tlsConf  *tls.Config
	listener net.Listener
}

// NewServer loads the TLS identity from cfg and binds svc for later use by
// Serve. It does not open the listening socket; call Serve for that.
func NewServer(cfg Config, svc *service.Service) (*Server, error) {
	tlsConf, err := tlsconf.NewServerConfig(cfg.TLS)
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, svc: svc, tlsConf: tlsConf}, nil
}

// Serve binds the listening address and blocks, accepting connections
// until the listener is closed by Stop. Each accepted connection is
// handshaked, wrapped in a yamux server session, and handed to
// driveSubstream once per sub-stream the client opens.
func (s *Server) Serve() error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	if s.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConnections)
	}
	s.listener = ln

	logger.Infof("kvserver: listening on %s", s.cfg.Address)
	return s.serveOn(ln)
}

// serveOn runs the accept loop against an already-bound listener. Split
// out from Serve so tests can hand it a listener bound to an ephemeral
// port instead of parsing cfg.Address.
func (s *Server) serveOn(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if isClosedErr(err) {
				return nil
			}
			return err
		}

		acceptedConnections.Inc()
		go s.handleConn(conn)
	}
}

// Stop closes the listening socket; in-flight connections drain on their
// own once their peer disconnects.
func (s *Server) Stop() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) handleConn(conn net.Conn) {
	defer rescue.HandleCrash()

	tlsConn := tls.Server(conn, s.tlsConf)
	if err := tlsConn.Handshake(); err != nil {
		logger.Warnf("kvserver: tls handshake failed: %s", tlsconf.WrapTLSError(err))
		_ = tlsConn.Close()
		return
	}

	connID := uuid.New()
	activeConnections.Inc()
	defer activeConnections.Dec()
	defer tlsConn.Close()

	ctrl, err := mux.NewServer(tlsConn)
	if err != nil {
		logger.Warnf("kvserver: conn %s: mux setup failed: %s", connID, err)
		return
	}
	defer ctrl.Close()

	logger.Debugf("kvserver: conn %s: established", connID)
	if err := ctrl.Serve(func(sub net.Conn) {
		driveSubstream(connID, sub, s.svc)
	}); err != nil {
		logger.Warnf("kvserver: conn %s: mux serve ended: %s", connID, err)
	}
}

func isClosedErr(err error) bool {
	return errors.Is(err, net.ErrClosed)
}
