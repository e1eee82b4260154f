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

// Package pb holds the wire schema for the kv service: CommandRequest,
// CommandResponse, Value and their nested messages. No protoc toolchain
// runs in this build, so these types are hand-written in the shape
// protoc-gen-gogo would have produced (oneof wrapper types, Marshal/
// Unmarshal pairs satisfying github.com/gogo/protobuf/proto.Message) and
// kept wire-compatible with the original schema's field tags.
package pb

// ---- CommandRequest and its oneof ----------------------------------------

type CommandRequest struct {
	RequestData isCommandRequest_RequestData
}

type isCommandRequest_RequestData interface {
	isCommandRequest_RequestData()
}

type CommandRequest_Hget struct{ Hget *Hget }
type CommandRequest_Hgetall struct{ Hgetall *Hgetall }
type CommandRequest_Hmget struct{ Hmget *Hmget }
type CommandRequest_Hset struct{ Hset *Hset }
type CommandRequest_Hmset struct{ Hmset *Hmset }
type CommandRequest_Hdel struct{ Hdel *Hdel }
type CommandRequest_Hmdel struct{ Hmdel *Hmdel }
type CommandRequest_Hexist struct{ Hexist *Hexist }
type CommandRequest_Hmexist struct{ Hmexist *Hmexist }
type CommandRequest_Subscribe struct{ Subscribe *Subscribe }
type CommandRequest_Unsubscribe struct{ Unsubscribe *Unsubscribe }
type CommandRequest_Publish struct{ Publish *Publish }

func (*CommandRequest_Hget) isCommandRequest_RequestData()        {}
func (*CommandRequest_Hgetall) isCommandRequest_RequestData()     {}
func (*CommandRequest_Hmget) isCommandRequest_RequestData()       {}
func (*CommandRequest_Hset) isCommandRequest_RequestData()        {}
func (*CommandRequest_Hmset) isCommandRequest_RequestData()       {}
func (*CommandRequest_Hdel) isCommandRequest_RequestData()        {}
func (*CommandRequest_Hmdel) isCommandRequest_RequestData()       {}
func (*CommandRequest_Hexist) isCommandRequest_RequestData()      {}
func (*CommandRequest_Hmexist) isCommandRequest_RequestData()     {}
func (*CommandRequest_Subscribe) isCommandRequest_RequestData()   {}
func (*CommandRequest_Unsubscribe) isCommandRequest_RequestData() {}
func (*CommandRequest_Publish) isCommandRequest_RequestData()     {}

func (m *CommandRequest) GetRequestData() isCommandRequest_RequestData {
	if m != nil {
		return m.RequestData
	}
	return nil
}

func (m *CommandRequest) Reset()         { *m = CommandRequest{} }
func (m *CommandRequest) String() string { return m.Format() }
func (*CommandRequest) ProtoMessage()    {}

// Format matches the source's debug-formatting helper, used in error
// messages that embed a request/response for diagnostics.
func (m *CommandRequest) Format() string {
	switch v := m.GetRequestData().(type) {
	case *CommandRequest_Hget:
		return "hget " + v.Hget.Table + " " + v.Hget.Key
	case *CommandRequest_Hgetall:
		return "hgetall " + v.Hgetall.Table
	case *CommandRequest_Hmget:
		return "hmget " + v.Hmget.Table
	case *CommandRequest_Hset:
		return "hset " + v.Hset.Table
	case *CommandRequest_Hmset:
		return "hmset " + v.Hmset.Table
	case *CommandRequest_Hdel:
		return "hdel " + v.Hdel.Table + " " + v.Hdel.Key
	case *CommandRequest_Hmdel:
		return "hmdel " + v.Hmdel.Table
	case *CommandRequest_Hexist:
		return "hexist " + v.Hexist.Table + " " + v.Hexist.Key
	case *CommandRequest_Hmexist:
		return "hmexist " + v.Hmexist.Table
	case *CommandRequest_Subscribe:
		return "subscribe " + v.Subscribe.Topic
	case *CommandRequest_Unsubscribe:
		return "unsubscribe " + v.Unsubscribe.Topic
	case *CommandRequest_Publish:
		return "publish " + v.Publish.Topic
	default:
		return "<empty request>"
	}
}

func (m *CommandRequest) Marshal() ([]byte, error) {
	var e encoder
	var err error
	switch v := m.GetRequestData().(type) {
	case *CommandRequest_Hget:
		err = e.message(1, v.Hget)
	case *CommandRequest_Hgetall:
		err = e.message(2, v.Hgetall)
	case *CommandRequest_Hmget:
		err = e.message(3, v.Hmget)
	case *CommandRequest_Hset:
		err = e.message(4, v.Hset)
	case *CommandRequest_Hmset:
		err = e.message(5, v.Hmset)
	case *CommandRequest_Hdel:
		err = e.message(6, v.Hdel)
	case *CommandRequest_Hmdel:
		err = e.message(7, v.Hmdel)
	case *CommandRequest_Hexist:
		err = e.message(8, v.Hexist)
	case *CommandRequest_Hmexist:
		err = e.message(9, v.Hmexist)
	case *CommandRequest_Subscribe:
		err = e.message(10, v.Subscribe)
	case *CommandRequest_Unsubscribe:
		err = e.message(11, v.Unsubscribe)
	case *CommandRequest_Publish:
		err = e.message(12, v.Publish)
	}
	if err != nil {
		return nil, err
	}
	return e.buf, nil
}

func (m *CommandRequest) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		if wt != wireBytes {
			if err := d.skip(wt); err != nil {
				return err
			}
			continue
		}
		body, err := d.readBytes()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			v := &Hget{}
			if err := v.Unmarshal(body); err != nil {
				return err
			}
			m.RequestData = &CommandRequest_Hget{Hget: v}
		case 2:
			v := &Hgetall{}
			if err := v.Unmarshal(body); err != nil {
				return err
			}
			m.RequestData = &CommandRequest_Hgetall{Hgetall: v}
		case 3:
			v := &Hmget{}
			if err := v.Unmarshal(body); err != nil {
				return err
			}
			m.RequestData = &CommandRequest_Hmget{Hmget: v}
		case 4:
			v := &Hset{}
			if err := v.Unmarshal(body); err != nil {
				return err
			}
			m.RequestData = &CommandRequest_Hset{Hset: v}
		case 5:
			v := &Hmset{}
			if err := v.Unmarshal(body); err != nil {
				return err
			}
			m.RequestData = &CommandRequest_Hmset{Hmset: v}
		case 6:
			v := &Hdel{}
			if err := v.Unmarshal(body); err != nil {
				return err
			}
			m.RequestData = &CommandRequest_Hdel{Hdel: v}
		case 7:
			v := &Hmdel{}
			if err := v.Unmarshal(body); err != nil {
				return err
			}
			m.RequestData = &CommandRequest_Hmdel{Hmdel: v}
		case 8:
			v := &Hexist{}
			if err := v.Unmarshal(body); err != nil {
				return err
			}
			m.RequestData = &CommandRequest_Hexist{Hexist: v}
		case 9:
			v := &Hmexist{}
			if err := v.Unmarshal(body); err != nil {
				return err
			}
			m.RequestData = &CommandRequest_Hmexist{Hmexist: v}
		case 10:
			v := &Subscribe{}
			if err := v.Unmarshal(body); err != nil {
				return err
			}
			m.RequestData = &CommandRequest_Subscribe{Subscribe: v}
		case 11:
			v := &Unsubscribe{}
			if err := v.Unmarshal(body); err != nil {
				return err
			}
			m.RequestData = &CommandRequest_Unsubscribe{Unsubscribe: v}
		case 12:
			v := &Publish{}
			if err := v.Unmarshal(body); err != nil {
				return err
			}
			m.RequestData = &CommandRequest_Publish{Publish: v}
		}
	}
	return nil
}

// ---- per-variant request messages ----------------------------------------

type Hget struct {
	Table string
	Key   string
}

func (m *Hget) Reset()         { *m = Hget{} }
func (m *Hget) String() string { return m.Table + "/" + m.Key }
func (*Hget) ProtoMessage()    {}

func (m *Hget) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Table)
	e.string(2, m.Key)
	return e.buf, nil
}

func (m *Hget) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		switch {
		case field == 1 && wt == wireBytes:
			b, err := d.readBytes()
			if err != nil {
				return err
			}
			m.Table = string(b)
		case field == 2 && wt == wireBytes:
			b, err := d.readBytes()
			if err != nil {
				return err
			}
			m.Key = string(b)
		default:
			if err := d.skip(wt); err != nil {
				return err
			}
		}
	}
	return nil
}

type Hgetall struct {
	Table string
}

func (m *Hgetall) Reset()         { *m = Hgetall{} }
func (m *Hgetall) String() string { return m.Table }
func (*Hgetall) ProtoMessage()    {}

func (m *Hgetall) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Table)
	return e.buf, nil
}

func (m *Hgetall) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		if field == 1 && wt == wireBytes {
			b, err := d.readBytes()
			if err != nil {
				return err
			}
			m.Table = string(b)
			continue
		}
		if err := d.skip(wt); err != nil {
			return err
		}
	}
	return nil
}

type Hmget struct {
	Table string
	Keys  []string
}

func (m *Hmget) Reset()         { *m = Hmget{} }
func (m *Hmget) String() string { return m.Table }
func (*Hmget) ProtoMessage()    {}

func (m *Hmget) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Table)
	for _, k := range m.Keys {
		e.string(2, k)
	}
	return e.buf, nil
}

func (m *Hmget) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		if wt != wireBytes {
			if err := d.skip(wt); err != nil {
				return err
			}
			continue
		}
		b, err := d.readBytes()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			m.Table = string(b)
		case 2:
			m.Keys = append(m.Keys, string(b))
		}
	}
	return nil
}

type Hset struct {
	Table string
	Pair  *Kvpair
}

func (m *Hset) Reset()         { *m = Hset{} }
func (m *Hset) String() string { return m.Table }
func (*Hset) ProtoMessage()    {}

func (m *Hset) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Table)
	if err := e.message(2, m.Pair); err != nil {
		return nil, err
	}
	return e.buf, nil
}

func (m *Hset) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		if wt != wireBytes {
			if err := d.skip(wt); err != nil {
				return err
			}
			continue
		}
		b, err := d.readBytes()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			m.Table = string(b)
		case 2:
			p := &Kvpair{}
			if err := p.Unmarshal(b); err != nil {
				return err
			}
			m.Pair = p
		}
	}
	return nil
}

type Hmset struct {
	Table string
	Pairs []*Kvpair
}

func (m *Hmset) Reset()         { *m = Hmset{} }
func (m *Hmset) String() string { return m.Table }
func (*Hmset) ProtoMessage()    {}

func (m *Hmset) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Table)
	for _, p := range m.Pairs {
		if err := e.message(2, p); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

func (m *Hmset) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		if wt != wireBytes {
			if err := d.skip(wt); err != nil {
				return err
			}
			continue
		}
		b, err := d.readBytes()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			m.Table = string(b)
		case 2:
			p := &Kvpair{}
			if err := p.Unmarshal(b); err != nil {
				return err
			}
			m.Pairs = append(m.Pairs, p)
		}
	}
	return nil
}

type Hdel struct {
	Table string
	Key   string
}

func (m *Hdel) Reset()         { *m = Hdel{} }
func (m *Hdel) String() string { return m.Table + "/" + m.Key }
func (*Hdel) ProtoMessage()    {}

func (m *Hdel) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Table)
	e.string(2, m.Key)
	return e.buf, nil
}

func (m *Hdel) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		if wt != wireBytes {
			if err := d.skip(wt); err != nil {
				return err
			}
			continue
		}
		b, err := d.readBytes()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			m.Table = string(b)
		case 2:
			m.Key = string(b)
		}
	}
	return nil
}

type Hmdel struct {
	Table string
	Keys  []string
}

func (m *Hmdel) Reset()         { *m = Hmdel{} }
func (m *Hmdel) String() string { return m.Table }
func (*Hmdel) ProtoMessage()    {}

func (m *Hmdel) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Table)
	for _, k := range m.Keys {
		e.string(2, k)
	}
	return e.buf, nil
}

func (m *Hmdel) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		if wt != wireBytes {
			if err := d.skip(wt); err != nil {
				return err
			}
			continue
		}
		b, err := d.readBytes()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			m.Table = string(b)
		case 2:
			m.Keys = append(m.Keys, string(b))
		}
	}
	return nil
}

type Hexist struct {
	Table string
	Key   string
}

func (m *Hexist) Reset()         { *m = Hexist{} }
func (m *Hexist) String() string { return m.Table + "/" + m.Key }
func (*Hexist) ProtoMessage()    {}

func (m *Hexist) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Table)
	e.string(2, m.Key)
	return e.buf, nil
}

func (m *Hexist) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		if wt != wireBytes {
			if err := d.skip(wt); err != nil {
				return err
			}
			continue
		}
		b, err := d.readBytes()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			m.Table = string(b)
		case 2:
			m.Key = string(b)
		}
	}
	return nil
}

type Hmexist struct {
	Table string
	Keys  []string
}

func (m *Hmexist) Reset()         { *m = Hmexist{} }
func (m *Hmexist) String() string { return m.Table }
func (*Hmexist) ProtoMessage()    {}

func (m *Hmexist) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Table)
	for _, k := range m.Keys {
		e.string(2, k)
	}
	return e.buf, nil
}

func (m *Hmexist) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		if wt != wireBytes {
			if err := d.skip(wt); err != nil {
				return err
			}
			continue
		}
		b, err := d.readBytes()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			m.Table = string(b)
		case 2:
			m.Keys = append(m.Keys, string(b))
		}
	}
	return nil
}

type Subscribe struct {
	Topic string
}

func (m *Subscribe) Reset()         { *m = Subscribe{} }
func (m *Subscribe) String() string { return m.Topic }
func (*Subscribe) ProtoMessage()    {}

func (m *Subscribe) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Topic)
	return e.buf, nil
}

func (m *Subscribe) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		if field == 1 && wt == wireBytes {
			b, err := d.readBytes()
			if err != nil {
				return err
			}
			m.Topic = string(b)
			continue
		}
		if err := d.skip(wt); err != nil {
			return err
		}
	}
	return nil
}

type Unsubscribe struct {
	Topic string
	Id    uint32
}

func (m *Unsubscribe) Reset()         { *m = Unsubscribe{} }
func (m *Unsubscribe) String() string { return m.Topic }
func (*Unsubscribe) ProtoMessage()    {}

func (m *Unsubscribe) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Topic)
	e.uint32(2, m.Id)
	return e.buf, nil
}

func (m *Unsubscribe) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		switch {
		case field == 1 && wt == wireBytes:
			b, err := d.readBytes()
			if err != nil {
				return err
			}
			m.Topic = string(b)
		case field == 2 && wt == wireVarint:
			v, err := d.readVarint()
			if err != nil {
				return err
			}
			m.Id = uint32(v)
		default:
			if err := d.skip(wt); err != nil {
				return err
			}
		}
	}
	return nil
}

type Publish struct {
	Topic  string
	Values []*Value
}

func (m *Publish) Reset()         { *m = Publish{} }
func (m *Publish) String() string { return m.Topic }
func (*Publish) ProtoMessage()    {}

func (m *Publish) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Topic)
	for _, v := range m.Values {
		if err := e.message(2, v); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

func (m *Publish) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		if wt != wireBytes {
			if err := d.skip(wt); err != nil {
				return err
			}
			continue
		}
		b, err := d.readBytes()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			m.Topic = string(b)
		case 2:
			v := &Value{}
			if err := v.Unmarshal(b); err != nil {
				return err
			}
			m.Values = append(m.Values, v)
		}
	}
	return nil
}

// ---- Value and its oneof --------------------------------------------------

type Value struct {
	Value isValue_Value
}

type isValue_Value interface {
	isValue_Value()
}

type Value_String_ struct{ String_ string }
type Value_Binary struct{ Binary []byte }
type Value_Integer struct{ Integer int64 }
type Value_Float struct{ Float float64 }
type Value_Bool struct{ Bool bool }

func (*Value_String_) isValue_Value() {}
func (*Value_Binary) isValue_Value()  {}
func (*Value_Integer) isValue_Value() {}
func (*Value_Float) isValue_Value()   {}
func (*Value_Bool) isValue_Value()    {}

func (m *Value) Reset()         { *m = Value{} }
func (m *Value) String() string { return m.Format() }
func (*Value) ProtoMessage()    {}

// Format mirrors Value::format from the original, used when building
// ConvertCommand error messages.
func (m *Value) Format() string {
	switch v := m.Value.(type) {
	case *Value_String_:
		return v.String_
	case *Value_Binary:
		return string(v.Binary)
	case *Value_Integer:
		return formatInt(v.Integer)
	case *Value_Float:
		return formatFloat(v.Float)
	case *Value_Bool:
		return formatBool(v.Bool)
	default:
		return "<empty value>"
	}
}

func (m *Value) Marshal() ([]byte, error) {
	var e encoder
	switch v := m.Value.(type) {
	case *Value_String_:
		e.stringAlways(1, v.String_)
	case *Value_Binary:
		e.bytesAlways(2, v.Binary)
	case *Value_Integer:
		e.int64Always(3, v.Integer)
	case *Value_Float:
		e.doubleAlways(4, v.Float)
	case *Value_Bool:
		e.boolAlways(5, v.Bool)
	}
	return e.buf, nil
}

func (m *Value) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		switch {
		case field == 1 && wt == wireBytes:
			b, err := d.readBytes()
			if err != nil {
				return err
			}
			m.Value = &Value_String_{String_: string(b)}
		case field == 2 && wt == wireBytes:
			b, err := d.readBytes()
			if err != nil {
				return err
			}
			cp := append([]byte(nil), b...)
			m.Value = &Value_Binary{Binary: cp}
		case field == 3 && wt == wireVarint:
			v, err := d.readVarint()
			if err != nil {
				return err
			}
			m.Value = &Value_Integer{Integer: int64(v)}
		case field == 4 && wt == wireFixed64:
			v, err := d.readFixed64()
			if err != nil {
				return err
			}
			m.Value = &Value_Float{Float: float64FromBits(v)}
		case field == 5 && wt == wireVarint:
			v, err := d.readVarint()
			if err != nil {
				return err
			}
			m.Value = &Value_Bool{Bool: v != 0}
		default:
			if err := d.skip(wt); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetString returns the string variant, or "" if unset or a different kind.
func (m *Value) GetString() (string, bool) {
	if v, ok := m.Value.(*Value_String_); ok {
		return v.String_, true
	}
	return "", false
}

func (m *Value) GetBinary() ([]byte, bool) {
	if v, ok := m.Value.(*Value_Binary); ok {
		return v.Binary, true
	}
	return nil, false
}

func (m *Value) GetInteger() (int64, bool) {
	if v, ok := m.Value.(*Value_Integer); ok {
		return v.Integer, true
	}
	return 0, false
}

func (m *Value) GetFloat() (float64, bool) {
	if v, ok := m.Value.(*Value_Float); ok {
		return v.Float, true
	}
	return 0, false
}

func (m *Value) GetBool() (bool, bool) {
	if v, ok := m.Value.(*Value_Bool); ok {
		return v.Bool, true
	}
	return false, false
}

// ---- Kvpair ----------------------------------------------------------------

type Kvpair struct {
	Key   string
	Value *Value
}

func (m *Kvpair) Reset()         { *m = Kvpair{} }
func (m *Kvpair) String() string { return m.Key }
func (*Kvpair) ProtoMessage()    {}

func (m *Kvpair) Marshal() ([]byte, error) {
	var e encoder
	e.string(1, m.Key)
	if err := e.message(2, m.Value); err != nil {
		return nil, err
	}
	return e.buf, nil
}

func (m *Kvpair) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		if wt != wireBytes {
			if err := d.skip(wt); err != nil {
				return err
			}
			continue
		}
		b, err := d.readBytes()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			m.Key = string(b)
		case 2:
			v := &Value{}
			if err := v.Unmarshal(b); err != nil {
				return err
			}
			m.Value = v
		}
	}
	return nil
}

// Less orders pairs by key first, matching Kvpair::partial_cmp, so tests
// comparing unordered GetAll results can sort before asserting equality.
func (m *Kvpair) Less(other *Kvpair) bool {
	if m.Key != other.Key {
		return m.Key < other.Key
	}
	return m.Format() < other.Format()
}

// Format mirrors Kvpair's debug-format helper used by Less when keys tie.
func (m *Kvpair) Format() string {
	if m.Value == nil {
		return ""
	}
	return m.Value.Format()
}

// ---- CommandResponse --------------------------------------------------------

type CommandResponse struct {
	Status  uint32
	Message string
	Values  []*Value
	Pairs   []*Kvpair
}

func (m *CommandResponse) Reset()         { *m = CommandResponse{} }
func (m *CommandResponse) String() string { return m.Format() }
func (*CommandResponse) ProtoMessage()    {}

func (m *CommandResponse) Format() string {
	return formatInt(int64(m.Status)) + " " + m.Message
}

func (m *CommandResponse) Marshal() ([]byte, error) {
	var e encoder
	e.uint32(1, m.Status)
	e.string(2, m.Message)
	for _, v := range m.Values {
		if err := e.message(3, v); err != nil {
			return nil, err
		}
	}
	for _, p := range m.Pairs {
		if err := e.message(4, p); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

func (m *CommandResponse) Unmarshal(data []byte) error {
	d := decoder{buf: data}
	for !d.done() {
		field, wt, err := d.readTag()
		if err != nil {
			return err
		}
		switch {
		case field == 1 && wt == wireVarint:
			v, err := d.readVarint()
			if err != nil {
				return err
			}
			m.Status = uint32(v)
		case field == 2 && wt == wireBytes:
			b, err := d.readBytes()
			if err != nil {
				return err
			}
			m.Message = string(b)
		case field == 3 && wt == wireBytes:
			b, err := d.readBytes()
			if err != nil {
				return err
			}
			v := &Value{}
			if err := v.Unmarshal(b); err != nil {
				return err
			}
			m.Values = append(m.Values, v)
		case field == 4 && wt == wireBytes:
			b, err := d.readBytes()
			if err != nil {
				return err
			}
			p := &Kvpair{}
			if err := p.Unmarshal(b); err != nil {
				return err
			}
			m.Pairs = append(m.Pairs, p)
		default:
			if err := d.skip(wt); err != nil {
				return err
			}
		}
	}
	return nil
}

// OkResponse returns an empty 200 response, mirroring CommandResponse::ok().
func OkResponse() *CommandResponse {
	return &CommandResponse{Status: 200}
}
