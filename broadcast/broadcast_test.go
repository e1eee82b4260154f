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

package broadcast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetd/kvdb/pb"
)

func recvWithin(t *testing.T, ch <-chan *pb.CommandResponse, d time.Duration) *pb.CommandResponse {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			return nil
		}
		return v
	case <-time.After(d):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestPubSubShouldWork(t *testing.T) {
	b := New()

	id1, stream1 := b.Subscribe("lobby")
	id2, stream2 := b.Subscribe("lobby")
	assert.NotEqual(t, id1, id2)

	// the first frame on each stream reports its own subscription id.
	first1 := recvWithin(t, stream1, time.Second)
	i1, ok := first1.Values[0].GetInteger()
	require.True(t, ok)
	assert.Equal(t, int64(id1), i1)

	first2 := recvWithin(t, stream2, time.Second)
	i2, ok := first2.Values[0].GetInteger()
	require.True(t, ok)
	assert.Equal(t, int64(id2), i2)

	b.Publish("lobby", pb.ValueResponse(pb.StringValue("hello")))

	res1 := recvWithin(t, stream1, time.Second)
	res2 := recvWithin(t, stream2, time.Second)
	s1, _ := res1.Values[0].GetString()
	s2, _ := res2.Values[0].GetString()
	assert.Equal(t, "hello", s1)
	assert.Equal(t, "hello", s2)

	require.NoError(t, b.Unsubscribe("lobby", id1))

	b.Publish("lobby", pb.ValueResponse(pb.StringValue("world")))

	// stream1 was unsubscribed: its channel is closed and drained.
	_, open := <-stream1
	assert.False(t, open)

	res2 = recvWithin(t, stream2, time.Second)
	s2, _ = res2.Values[0].GetString()
	assert.Equal(t, "world", s2)
}

func TestUnsubscribeUnknownIDReturnsNotFound(t *testing.T) {
	b := New()
	err := b.Unsubscribe("lobby", 999)
	require.Error(t, err)
}

func TestUnsubscribeTwiceReturnsNotFound(t *testing.T) {
	b := New()
	id, _ := b.Subscribe("lobby")
	require.NoError(t, b.Unsubscribe("lobby", id))
	require.Error(t, b.Unsubscribe("lobby", id))
}
