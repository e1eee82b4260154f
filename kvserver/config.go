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

// Package kvserver is the connection driver: it owns the listener, the
// TLS handshake, the yamux multiplexer, and the per-sub-stream framed
// request/response loop that runs a Service against each client.
package kvserver

import (
	"github.com/packetd/kvdb/transport/tlsconf"
)

// Config configures one kv server listener.
type Config struct {
	Address        string                `config:"address"`
	MaxConnections int                   `config:"maxConnections"`
	TLS            tlsconf.ServerOptions `config:"tls"`
}
