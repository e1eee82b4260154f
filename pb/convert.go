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

// This file holds the constructors and conversions the source's
// src/pb/mod.rs layers on top of the generated message types: request
// builders, Value constructors, and CommandResponse helpers.

func NewHget(table, key string) *CommandRequest {
	return &CommandRequest{RequestData: &CommandRequest_Hget{Hget: &Hget{Table: table, Key: key}}}
}

func NewHgetall(table string) *CommandRequest {
	return &CommandRequest{RequestData: &CommandRequest_Hgetall{Hgetall: &Hgetall{Table: table}}}
}

func NewHmget(table string, keys []string) *CommandRequest {
	return &CommandRequest{RequestData: &CommandRequest_Hmget{Hmget: &Hmget{Table: table, Keys: keys}}}
}

func NewHset(table, key string, value *Value) *CommandRequest {
	return &CommandRequest{RequestData: &CommandRequest_Hset{Hset: &Hset{Table: table, Pair: NewKvpair(key, value)}}}
}

func NewHmset(table string, pairs []*Kvpair) *CommandRequest {
	return &CommandRequest{RequestData: &CommandRequest_Hmset{Hmset: &Hmset{Table: table, Pairs: pairs}}}
}

func NewHdel(table, key string) *CommandRequest {
	return &CommandRequest{RequestData: &CommandRequest_Hdel{Hdel: &Hdel{Table: table, Key: key}}}
}

func NewHmdel(table string, keys []string) *CommandRequest {
	return &CommandRequest{RequestData: &CommandRequest_Hmdel{Hmdel: &Hmdel{Table: table, Keys: keys}}}
}

func NewHexist(table, key string) *CommandRequest {
	return &CommandRequest{RequestData: &CommandRequest_Hexist{Hexist: &Hexist{Table: table, Key: key}}}
}

func NewHmexist(table string, keys []string) *CommandRequest {
	return &CommandRequest{RequestData: &CommandRequest_Hmexist{Hmexist: &Hmexist{Table: table, Keys: keys}}}
}

func NewSubscribe(topic string) *CommandRequest {
	return &CommandRequest{RequestData: &CommandRequest_Subscribe{Subscribe: &Subscribe{Topic: topic}}}
}

func NewUnsubscribe(topic string, id uint32) *CommandRequest {
	return &CommandRequest{RequestData: &CommandRequest_Unsubscribe{Unsubscribe: &Unsubscribe{Topic: topic, Id: id}}}
}

func NewPublish(topic string, values []*Value) *CommandRequest {
	return &CommandRequest{RequestData: &CommandRequest_Publish{Publish: &Publish{Topic: topic, Values: values}}}
}

func NewKvpair(key string, value *Value) *Kvpair {
	return &Kvpair{Key: key, Value: value}
}

func StringValue(s string) *Value { return &Value{Value: &Value_String_{String_: s}} }
func BinaryValue(b []byte) *Value { return &Value{Value: &Value_Binary{Binary: b}} }
func IntValue(i int64) *Value     { return &Value{Value: &Value_Integer{Integer: i}} }
func FloatValue(f float64) *Value { return &Value{Value: &Value_Float{Float: f}} }
func BoolValue(b bool) *Value     { return &Value{Value: &Value_Bool{Bool: b}} }

// ValuesResponse mirrors `impl From<Vec<Value>> for CommandResponse`.
func ValuesResponse(values []*Value) *CommandResponse {
	return &CommandResponse{Status: 200, Values: values}
}

// ValueResponse mirrors `impl From<Value> for CommandResponse`.
func ValueResponse(v *Value) *CommandResponse {
	return &CommandResponse{Status: 200, Values: []*Value{v}}
}

// PairsResponse mirrors `impl From<Vec<Kvpair>> for CommandResponse`.
func PairsResponse(pairs []*Kvpair) *CommandResponse {
	return &CommandResponse{Status: 200, Pairs: pairs}
}
