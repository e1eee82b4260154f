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

// Package wire implements the length-prefixed, optionally-compressed frame
// codec the kv protocol uses on top of any byte stream (raw TCP, TLS, or a
// multiplexed sub-stream), plus a typed FramedStream built on it.
package wire

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"io"

	"github.com/valyala/bytebufferpool"

	"github.com/packetd/kvdb/kverr"
)

// LenLen is the size in bytes of the frame length header.
const LenLen = 4

// maxFrame is the hard ceiling on a single frame's payload size.
const maxFrame = 2 * 1024 * 1024 * 1024

// compressionLimit is the MTU-derived threshold above which a frame's
// payload is gzip-compressed: 1500 (MTU) - 20 (IP) - 20 (TCP) - 20 (options
// headroom) - 4 (frame header).
const compressionLimit = 1436

// compressionBit marks bit 31 of the 4-byte header as "payload is gzipped".
const compressionBit = 1 << 31

var bufPool bytebufferpool.Pool

// Message is anything this codec can frame: the hand-written pb types all
// satisfy it via their Marshal/Unmarshal pair.
type Message interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// EncodeFrame serializes msg and appends the length-prefixed (optionally
// gzip-compressed) frame to buf.
func EncodeFrame(msg Message, buf *bytes.Buffer) error {
	body, err := msg.Marshal()
	if err != nil {
		return kverr.NewEncodeError(err)
	}

	size := len(body)
	if size >= maxFrame {
		return kverr.NewFrameTooLarge()
	}

	if size <= compressionLimit {
		var header [LenLen]byte
		binary.BigEndian.PutUint32(header[:], uint32(size))
		buf.Write(header[:])
		buf.Write(body)
		return nil
	}

	gz := bufPool.Get()
	defer bufPool.Put(gz)

	w := gzip.NewWriter(gz)
	if _, err := w.Write(body); err != nil {
		return kverr.NewIOError(err)
	}
	if err := w.Close(); err != nil {
		return kverr.NewIOError(err)
	}

	compressedLen := gz.Len()
	if compressedLen >= maxFrame {
		return kverr.NewFrameTooLarge()
	}

	var header [LenLen]byte
	binary.BigEndian.PutUint32(header[:], uint32(compressedLen)|compressionBit)
	buf.Write(header[:])
	buf.Write(gz.Bytes())
	return nil
}

// DecodeFrame parses one length-prefixed frame (header already stripped,
// payload exactly len(payload) bytes as decoded by decodeHeader) into msg.
func DecodeFrame(payload []byte, compressed bool, msg Message) error {
	if !compressed {
		if err := msg.Unmarshal(payload); err != nil {
			return kverr.NewDecodeError(err)
		}
		return nil
	}

	gz, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return kverr.NewIOError(err)
	}
	defer gz.Close()

	out := bufPool.Get()
	defer bufPool.Put(out)

	if _, err := io.Copy(out, gz); err != nil {
		return kverr.NewIOError(err)
	}
	if err := msg.Unmarshal(out.Bytes()); err != nil {
		return kverr.NewDecodeError(err)
	}
	return nil
}

// decodeHeader splits a raw 4-byte header into (payload length, compressed).
func decodeHeader(header uint32) (int, bool) {
	compressed := header&compressionBit == compressionBit
	length := header &^ compressionBit
	return int(length), compressed
}

// ReadFrame reads one complete frame's header and payload off r, returning
// the raw payload bytes and whether it is gzip-compressed. The caller feeds
// the result into DecodeFrame.
func ReadFrame(r io.Reader) (payload []byte, compressed bool, err error) {
	var header [LenLen]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, false, kverr.NewIOError(err)
	}

	length, isCompressed := decodeHeader(binary.BigEndian.Uint32(header[:]))
	if length >= maxFrame {
		return nil, false, kverr.NewFrameTooLarge()
	}

	payload = make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, false, kverr.NewIOError(err)
	}
	return payload, isCompressed, nil
}

// WriteMessage encodes msg as a frame and writes it to w in one call.
func WriteMessage(w io.Writer, msg Message) error {
	var b bytes.Buffer
	if err := EncodeFrame(msg, &b); err != nil {
		return err
	}
	if _, err := w.Write(b.Bytes()); err != nil {
		return kverr.NewIOError(err)
	}
	return nil
}

// ReadMessage reads one frame off r and decodes it into msg.
func ReadMessage(r io.Reader, msg Message) error {
	payload, compressed, err := ReadFrame(r)
	if err != nil {
		return err
	}
	return DecodeFrame(payload, compressed, msg)
}
