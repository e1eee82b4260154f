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

package service

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetd/kvdb/broadcast"
	"github.com/packetd/kvdb/pb"
	"github.com/packetd/kvdb/storage"
)

// AssertResponseOK mirrors the source's assert_res_ok test helper.
func AssertResponseOK(t *testing.T, res *pb.CommandResponse, values []*pb.Value, pairs []*pb.Kvpair) {
	t.Helper()
	sort.Slice(res.Pairs, func(i, j int) bool { return res.Pairs[i].Less(res.Pairs[j]) })
	assert.Equal(t, uint32(200), res.Status)
	assert.Empty(t, res.Message)
	assert.Equal(t, len(values), len(res.Values))
	for i := range values {
		assert.Equal(t, values[i].Format(), res.Values[i].Format())
	}
	require.Equal(t, len(pairs), len(res.Pairs))
	for i := range pairs {
		assert.Equal(t, pairs[i].Key, res.Pairs[i].Key)
		assert.Equal(t, pairs[i].Format(), res.Pairs[i].Format())
	}
}

// AssertResponseError mirrors the source's assert_res_error test helper.
func AssertResponseError(t *testing.T, res *pb.CommandResponse, code uint32, msg string) {
	t.Helper()
	assert.Equal(t, code, res.Status)
	assert.True(t, strings.Contains(res.Message, msg), "expected %q to contain %q", res.Message, msg)
	assert.Empty(t, res.Values)
	assert.Empty(t, res.Pairs)
}

func newTestService() *Service {
	return New(storage.NewMemory(), broadcast.New())
}

func TestServiceShouldWork(t *testing.T) {
	svc := newTestService()

	done := make(chan struct{})
	go func() {
		defer close(done)
		res := svc.Execute(pb.NewHset("t1", "k1", pb.StringValue("v1")))
		AssertResponseOK(t, res, []*pb.Value{{}}, nil)
	}()
	<-done

	res := svc.Execute(pb.NewHget("t1", "k1"))
	AssertResponseOK(t, res, []*pb.Value{pb.StringValue("v1")}, nil)
}

func TestHsetShouldWork(t *testing.T) {
	svc := newTestService()

	res := svc.Execute(pb.NewHset("t1", "hello", pb.StringValue("world")))
	AssertResponseOK(t, res, []*pb.Value{{}}, nil)

	res = svc.Execute(pb.NewHset("t1", "hello", pb.StringValue("world")))
	AssertResponseOK(t, res, []*pb.Value{pb.StringValue("world")}, nil)
}

func TestHgetShouldWork(t *testing.T) {
	svc := newTestService()
	svc.Execute(pb.NewHset("t1", "hello", pb.IntValue(10)))

	res := svc.Execute(pb.NewHget("t1", "hello"))
	AssertResponseOK(t, res, []*pb.Value{pb.IntValue(10)}, nil)
}

func TestHgetNoExistKeyShouldReturn404(t *testing.T) {
	svc := newTestService()
	res := svc.Execute(pb.NewHget("t1", "not_exist_key"))
	AssertResponseError(t, res, 404, "not found")
}

func TestHgetallShouldWork(t *testing.T) {
	svc := newTestService()
	svc.Execute(pb.NewHset("score", "u1", pb.IntValue(10)))
	svc.Execute(pb.NewHset("score", "u2", pb.IntValue(20)))
	svc.Execute(pb.NewHset("score", "u3", pb.IntValue(30)))
	svc.Execute(pb.NewHset("score", "u1", pb.IntValue(40))) // duplicate key updates u1

	res := svc.Execute(pb.NewHgetall("score"))
	AssertResponseOK(t, res, nil, []*pb.Kvpair{
		pb.NewKvpair("u1", pb.IntValue(40)),
		pb.NewKvpair("u2", pb.IntValue(20)),
		pb.NewKvpair("u3", pb.IntValue(30)),
	})
}

func TestHmsetAndHmgetShouldWork(t *testing.T) {
	svc := newTestService()
	svc.Execute(pb.NewHmset("t1", []*pb.Kvpair{
		pb.NewKvpair("a", pb.IntValue(1)),
		pb.NewKvpair("b", pb.IntValue(2)),
	}))

	res := svc.Execute(pb.NewHmget("t1", []string{"a", "b", "missing"}))
	require.Equal(t, uint32(200), res.Status)
	require.Len(t, res.Values, 3)
	av, _ := res.Values[0].GetInteger()
	bv, _ := res.Values[1].GetInteger()
	assert.Equal(t, int64(1), av)
	assert.Equal(t, int64(2), bv)
	assert.Equal(t, &pb.Value{}, res.Values[2])
}

func TestHexistAndHmexistShouldWork(t *testing.T) {
	svc := newTestService()
	svc.Execute(pb.NewHset("t1", "a", pb.IntValue(1)))

	res := svc.Execute(pb.NewHexist("t1", "a"))
	b, _ := res.Values[0].GetBool()
	assert.True(t, b)

	res = svc.Execute(pb.NewHexist("t1", "missing"))
	b, _ = res.Values[0].GetBool()
	assert.False(t, b)

	res = svc.Execute(pb.NewHmexist("t1", []string{"a", "missing"}))
	require.Len(t, res.Values, 2)
	b0, _ := res.Values[0].GetBool()
	b1, _ := res.Values[1].GetBool()
	assert.True(t, b0)
	assert.False(t, b1)
}

func TestHdelAndHmdelShouldWork(t *testing.T) {
	svc := newTestService()
	svc.Execute(pb.NewHset("t1", "a", pb.IntValue(1)))
	svc.Execute(pb.NewHset("t1", "b", pb.IntValue(2)))

	res := svc.Execute(pb.NewHdel("t1", "a"))
	v, _ := res.Values[0].GetInteger()
	assert.Equal(t, int64(1), v)

	res = svc.Execute(pb.NewHmdel("t1", []string{"b", "a"}))
	require.Len(t, res.Values, 2)
	v0, _ := res.Values[0].GetInteger()
	assert.Equal(t, int64(2), v0)
	assert.Equal(t, &pb.Value{}, res.Values[1])
}

func TestHmgetEmptyKeyListIsNotStreamSentinel(t *testing.T) {
	svc := newTestService()

	res := svc.Execute(pb.NewHmget("t1", nil))
	assert.False(t, IsStreamSentinel(res))
	assert.Equal(t, uint32(200), res.Status)
	assert.Empty(t, res.Values)
}

func TestSubscribeFallsThroughExecute(t *testing.T) {
	svc := newTestService()
	req := pb.NewSubscribe("lobby")

	res := svc.Execute(req)
	assert.True(t, IsStreamSentinel(res))

	stream := svc.ExecuteStream(req)
	select {
	case first := <-stream:
		id, ok := first.Values[0].GetInteger()
		require.True(t, ok)
		assert.Greater(t, id, int64(0))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for subscription id")
	}
}

func TestUnsubscribeUnknownIDReturns404(t *testing.T) {
	svc := newTestService()
	req := pb.NewUnsubscribe("lobby", 999)

	stream := svc.ExecuteStream(req)
	res := <-stream
	AssertResponseError(t, res, 404, "not found")
}
