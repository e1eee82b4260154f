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

// Package kverr defines the closed set of errors the kv service can return
// and their mapping onto CommandResponse status codes.
package kverr

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/packetd/kvdb/pb"
)

// Kind identifies one of the fixed error categories a CommandResponse can
// carry. The set is closed: callers switch on it exhaustively.
type Kind int

const (
	NotFound Kind = iota
	InvalidCommand
	ConvertCommand
	StorageError
	EncodeError
	DecodeError
	IOError
	FrameTooLarge
	CertificateParseError
	TlsError
	Internal
)

// Error is the error type every kv operation returns. It carries a closed
// Kind plus human detail, and wraps an optional cause with its stack via
// github.com/pkg/errors so the original failure site survives.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Cause returns errors.Cause(err): the innermost error reachable through
// Cause() methods, or err itself when it has none. *Error has no Cause
// method, so a *Error is returned unchanged; use Unwrap to reach its cause.
func Cause(err error) error { return errors.Cause(err) }

func newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, msg: fmt.Sprintf(format, args...)}
}

func wrapf(k Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: k, msg: fmt.Sprintf(format, args...), err: errors.WithStack(err)}
}

func NewNotFound(what string) *Error {
	return newf(NotFound, "not found %s", what)
}

func NewInvalidCommand(detail string) *Error {
	return newf(InvalidCommand, "cannot parse command: `%s`", detail)
}

func NewConvertCommand(value, target string) *Error {
	return newf(ConvertCommand, "cannot convert value %s to %s", value, target)
}

// NewStorageError mirrors KvError::StorageError(op, table, key, cause).
func NewStorageError(op, table, key string, cause error) *Error {
	return wrapf(StorageError, cause, "cannot process command %s with table: %s, key: %s", op, table, key)
}

func NewEncodeError(cause error) *Error {
	return wrapf(EncodeError, cause, "failed to encode protobuf message")
}

func NewDecodeError(cause error) *Error {
	return wrapf(DecodeError, cause, "failed to decode protobuf message")
}

func NewIOError(cause error) *Error {
	return wrapf(IOError, cause, "i/o error")
}

func NewFrameTooLarge() *Error {
	return newf(FrameTooLarge, "frame is larger than max size")
}

func NewCertificateParseError(what, detail string) *Error {
	return newf(CertificateParseError, "failed to parse certificate: %s %s", what, detail)
}

func NewTlsError(cause error) *Error {
	return wrapf(TlsError, cause, "tls error")
}

func NewInternal(detail string) *Error {
	return newf(Internal, "internal error: %s", detail)
}

// Status maps a Kind onto the HTTP-like status codes CommandResponse uses.
func (e *Error) Status() uint32 {
	switch e.Kind {
	case NotFound:
		return 404
	case InvalidCommand, ConvertCommand:
		return 400
	default:
		return 500
	}
}

// Response converts the error into the CommandResponse the client sees,
// mirroring `impl From<KvError> for CommandResponse`.
func (e *Error) Response() *pb.CommandResponse {
	return &pb.CommandResponse{
		Status:  e.Status(),
		Message: e.Error(),
	}
}

// ToResponse maps any error into a CommandResponse, wrapping non-*Error
// causes as Internal so every dispatch path always has a response to send.
func ToResponse(err error) *pb.CommandResponse {
	if e, ok := As(err); ok {
		return e.Response()
	}
	return NewInternal(err.Error()).Response()
}

// As reports whether err is a *Error, unwrapping through any wrapping chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
