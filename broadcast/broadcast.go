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

// Package broadcast implements named-topic publish/subscribe fan-out for
// the kv service, descending from the teacher's channel-bus style pub/sub
// but reworked for integer subscription ids and the "first frame is your
// id" handshake new subscribers need.
package broadcast

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/packetd/kvdb/internal/rescue"
	"github.com/packetd/kvdb/kverr"
	"github.com/packetd/kvdb/logger"
	"github.com/packetd/kvdb/pb"
)

// capacity bounds each subscriber's channel; a slow subscriber that falls
// capacity messages behind is dropped rather than stalling publishers.
const capacity = 128

// Broadcaster fans published responses out to every subscriber of a topic.
type Broadcaster struct {
	mu     sync.RWMutex
	topics map[string]map[uint32]struct{}
	subs   map[uint32]chan *pb.CommandResponse
	nextID uint32
}

// New returns an empty Broadcaster.
func New() *Broadcaster {
	return &Broadcaster{
		topics: make(map[string]map[uint32]struct{}),
		subs:   make(map[uint32]chan *pb.CommandResponse),
	}
}

// Subscribe joins topic and returns the new subscription's id and its
// channel. The very first value delivered on the channel is the id itself,
// wrapped as a CommandResponse, so the caller can report it to the client
// before any published message arrives.
func (b *Broadcaster) Subscribe(topic string) (uint32, <-chan *pb.CommandResponse) {
	id := atomic.AddUint32(&b.nextID, 1)
	ch := make(chan *pb.CommandResponse, capacity)
	ch <- pb.ValueResponse(pb.IntValue(int64(id)))

	b.mu.Lock()
	ids, ok := b.topics[topic]
	if !ok {
		ids = make(map[uint32]struct{})
		b.topics[topic] = ids
	}
	ids[id] = struct{}{}
	b.subs[id] = ch
	b.mu.Unlock()

	logger.Debugf("broadcast: subscription %d added to topic %s", id, topic)
	return id, ch
}

// Unsubscribe removes id from topic. Per this repo's chosen contract (see
// SPEC_FULL.md Open Question decisions), unsubscribing an id that was
// never issued, or has already been removed, is reported as NotFound.
func (b *Broadcaster) Unsubscribe(topic string, id uint32) error {
	if !b.removeSubscription(topic, id) {
		return kverr.NewNotFound("subscription " + strconv.FormatUint(uint64(id), 10))
	}
	return nil
}

// removeSubscription drops id from topic's member set (removing the topic
// entirely once empty) and closes and forgets its channel. It reports
// whether a subscription was actually found and removed.
func (b *Broadcaster) removeSubscription(topic string, id uint32) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ids, ok := b.topics[topic]; ok {
		delete(ids, id)
		if len(ids) == 0 {
			logger.Debugf("broadcast: topic %s is empty, removing it", topic)
			delete(b.topics, topic)
		}
	}

	ch, ok := b.subs[id]
	if !ok {
		return false
	}
	delete(b.subs, id)
	close(ch)
	logger.Debugf("broadcast: unsubscribed from topic %s, id %d", topic, id)
	return true
}

// Publish fans value out to every current subscriber of topic. Delivery
// runs in its own goroutine so a slow publisher never blocks the caller;
// a subscriber whose channel is full is reaped eagerly rather than queued
// behind, matching the source's "send failed, drop it" behavior.
func (b *Broadcaster) Publish(topic string, value *pb.CommandResponse) {
	go func() {
		defer rescue.HandleCrash()

		b.mu.RLock()
		ids := make([]uint32, 0, len(b.topics[topic]))
		for id := range b.topics[topic] {
			ids = append(ids, id)
		}
		b.mu.RUnlock()

		var dead []uint32
		for _, id := range ids {
			b.mu.RLock()
			ch, ok := b.subs[id]
			b.mu.RUnlock()
			if !ok {
				continue
			}

			select {
			case ch <- value:
			default:
				logger.Warnf("broadcast: subscription %d is full, dropping it", id)
				dead = append(dead, id)
			}
		}

		for _, id := range dead {
			b.removeSubscription(topic, id)
		}
	}()
}
