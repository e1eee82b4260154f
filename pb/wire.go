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

package pb

import (
	"encoding/binary"
	"errors"
	"math"
)

// wireType mirrors the protobuf wire types this package's hand-written
// Marshal/Unmarshal pairs need. Every message here is generated-looking but
// hand-authored, since no protoc toolchain runs in this build.
const (
	wireVarint  = 0
	wireFixed64 = 1
	wireBytes   = 2
	wireFixed32 = 5
)

var errTruncated = errors.New("pb: truncated message")

type encoder struct {
	buf []byte
}

func (e *encoder) tag(field int, wt uint64) {
	e.varint(uint64(field)<<3 | wt)
}

func (e *encoder) varint(v uint64) {
	for v >= 0x80 {
		e.buf = append(e.buf, byte(v)|0x80)
		v >>= 7
	}
	e.buf = append(e.buf, byte(v))
}

func (e *encoder) string(field int, s string) {
	if s == "" {
		return
	}
	e.tag(field, wireBytes)
	e.varint(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

func (e *encoder) bytes(field int, b []byte) {
	if len(b) == 0 {
		return
	}
	e.tag(field, wireBytes)
	e.varint(uint64(len(b)))
	e.buf = append(e.buf, b...)
}

// The Always variants below never skip on the zero value. They exist for
// oneof members: unlike a plain proto3 scalar field, a oneof's tag itself
// carries meaning ("this variant is set"), so prost (the source) and
// protoc-gen-gogo both always emit it, zero payload or not. Using the
// skip-on-zero helpers above for a oneof silently turns Value{Integer: 0},
// Value{Bool: false}, Value{Float: 0}, or Value{String_: ""} into an empty
// message that decodes back as "no value set" - a different meaning.

func (e *encoder) stringAlways(field int, s string) {
	e.tag(field, wireBytes)
	e.varint(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

func (e *encoder) bytesAlways(field int, b []byte) {
	e.tag(field, wireBytes)
	e.varint(uint64(len(b)))
	e.buf = append(e.buf, b...)
}

func (e *encoder) int64Always(field int, v int64) {
	e.tag(field, wireVarint)
	e.varint(uint64(v))
}

func (e *encoder) boolAlways(field int, v bool) {
	e.tag(field, wireVarint)
	if v {
		e.varint(1)
	} else {
		e.varint(0)
	}
}

func (e *encoder) doubleAlways(field int, v float64) {
	e.tag(field, wireFixed64)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) uint32(field int, v uint32) {
	if v == 0 {
		return
	}
	e.tag(field, wireVarint)
	e.varint(uint64(v))
}

func (e *encoder) int64(field int, v int64) {
	if v == 0 {
		return
	}
	e.tag(field, wireVarint)
	e.varint(uint64(v))
}

func (e *encoder) boolField(field int, v bool) {
	if !v {
		return
	}
	e.tag(field, wireVarint)
	e.varint(1)
}

func (e *encoder) double(field int, v float64) {
	if v == 0 {
		return
	}
	e.tag(field, wireFixed64)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) message(field int, m interface{ Marshal() ([]byte, error) }) error {
	if m == nil {
		return nil
	}
	body, err := m.Marshal()
	if err != nil {
		return err
	}
	e.tag(field, wireBytes)
	e.varint(uint64(len(body)))
	e.buf = append(e.buf, body...)
	return nil
}

type decoder struct {
	buf []byte
	pos int
}

func (d *decoder) done() bool { return d.pos >= len(d.buf) }

func (d *decoder) readVarint() (uint64, error) {
	var result uint64
	var shift uint
	for {
		if d.pos >= len(d.buf) {
			return 0, errTruncated
		}
		b := d.buf[d.pos]
		d.pos++
		result |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return result, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, errors.New("pb: varint overflow")
		}
	}
}

// readTag returns the field number and wire type of the next tag.
func (d *decoder) readTag() (field int, wt uint64, err error) {
	v, err := d.readVarint()
	if err != nil {
		return 0, 0, err
	}
	return int(v >> 3), v & 0x7, nil
}

func (d *decoder) readBytes() ([]byte, error) {
	n, err := d.readVarint()
	if err != nil {
		return nil, err
	}
	if int(n) < 0 || d.pos+int(n) > len(d.buf) {
		return nil, errTruncated
	}
	b := d.buf[d.pos : d.pos+int(n)]
	d.pos += int(n)
	return b, nil
}

func (d *decoder) readFixed64() (uint64, error) {
	if d.pos+8 > len(d.buf) {
		return 0, errTruncated
	}
	v := binary.LittleEndian.Uint64(d.buf[d.pos : d.pos+8])
	d.pos += 8
	return v, nil
}

func (d *decoder) readFixed32() (uint32, error) {
	if d.pos+4 > len(d.buf) {
		return 0, errTruncated
	}
	v := binary.LittleEndian.Uint32(d.buf[d.pos : d.pos+4])
	d.pos += 4
	return v, nil
}

// skip advances past a field of the given wire type whose tag has already
// been consumed, giving unknown fields forward-compatible handling.
func (d *decoder) skip(wt uint64) error {
	switch wt {
	case wireVarint:
		_, err := d.readVarint()
		return err
	case wireFixed64:
		_, err := d.readFixed64()
		return err
	case wireBytes:
		_, err := d.readBytes()
		return err
	case wireFixed32:
		_, err := d.readFixed32()
		return err
	default:
		return errors.New("pb: unknown wire type")
	}
}
