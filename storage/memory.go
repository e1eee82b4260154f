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

package storage

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/packetd/kvdb/pb"
)

// shardCount is fixed rather than configurable: the backend's concurrency
// property only needs "more than one lock", not a tuned count.
const shardCount = 32

type shard struct {
	mu     sync.RWMutex
	tables map[string]map[string]*pb.Value
}

// Memory is an in-memory, concurrency-safe Storage backend. Tables are
// distributed across shardCount independently-locked shards selected by
// hashing the table name with xxhash, so operations against different
// tables contend on the same mutex only when both tables hash to the same
// shard; operations within one table always serialize through its shard's
// lock (reads share it, writes hold it exclusively).
type Memory struct {
	shards [shardCount]*shard
}

// NewMemory creates an empty Memory backend.
func NewMemory() *Memory {
	m := &Memory{}
	for i := range m.shards {
		m.shards[i] = &shard{tables: make(map[string]map[string]*pb.Value)}
	}
	return m
}

func (m *Memory) shardFor(table string) *shard {
	h := xxhash.Sum64String(table)
	return m.shards[h%uint64(shardCount)]
}

func (s *shard) getOrCreateTable(name string) map[string]*pb.Value {
	t, ok := s.tables[name]
	if !ok {
		t = make(map[string]*pb.Value)
		s.tables[name] = t
	}
	return t
}

func (m *Memory) Get(table, key string) (*pb.Value, error) {
	s := m.shardFor(table)
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[table]
	if !ok {
		return nil, nil
	}
	return t[key], nil
}

func (m *Memory) Set(table, key string, value *pb.Value) (*pb.Value, error) {
	s := m.shardFor(table)
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.getOrCreateTable(table)
	old := t[key]
	t[key] = value
	return old, nil
}

func (m *Memory) Contains(table, key string) (bool, error) {
	s := m.shardFor(table)
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[table]
	if !ok {
		return false, nil
	}
	_, ok = t[key]
	return ok, nil
}

func (m *Memory) Del(table, key string) (*pb.Value, error) {
	s := m.shardFor(table)
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[table]
	if !ok {
		return nil, nil
	}
	old, ok := t[key]
	if !ok {
		return nil, nil
	}
	delete(t, key)
	return old, nil
}

func (m *Memory) GetAll(table string) ([]*pb.Kvpair, error) {
	s := m.shardFor(table)
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[table]
	if !ok {
		return []*pb.Kvpair{}, nil
	}
	pairs := make([]*pb.Kvpair, 0, len(t))
	for k, v := range t {
		pairs = append(pairs, pb.NewKvpair(k, v))
	}
	return pairs, nil
}

// memoryIterator is the Iterator the source leaves as `todo!()`; this
// implementation snapshots the table under lock up front, so the iterator
// need not hold the shard lock across calls to Next.
type memoryIterator struct {
	pairs []*pb.Kvpair
	pos   int
}

func (it *memoryIterator) Next() (*pb.Kvpair, error) {
	if it.pos >= len(it.pairs) {
		return nil, nil
	}
	p := it.pairs[it.pos]
	it.pos++
	return p, nil
}

func (m *Memory) GetIter(table string) (Iterator, error) {
	pairs, err := m.GetAll(table)
	if err != nil {
		return nil, err
	}
	return &memoryIterator{pairs: pairs}, nil
}

func (m *Memory) Close() error { return nil }
