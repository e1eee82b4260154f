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

// Package storage defines the key-value storage contract every backend
// implements and the two backends that satisfy it: an in-memory sharded
// map and a persistent bbolt-backed tree.
package storage

import (
	"github.com/pkg/errors"

	"github.com/packetd/kvdb/pb"
)

// Storage is the interface every backend (memory, persistent) implements.
// Every method is safe for concurrent use by multiple goroutines.
type Storage interface {
	// Get returns the value of key in table, or nil if absent.
	Get(table, key string) (*pb.Value, error)

	// Set stores value under key in table and returns the previous value,
	// or nil if the key did not exist.
	Set(table, key string, value *pb.Value) (*pb.Value, error)

	// Contains reports whether key exists in table.
	Contains(table, key string) (bool, error)

	// Del removes key from table and returns the removed value, or nil if
	// the key did not exist.
	Del(table, key string) (*pb.Value, error)

	// GetAll returns every pair currently in table, in unspecified order.
	GetAll(table string) ([]*pb.Kvpair, error)

	// GetIter returns an iterator over every pair currently in table. The
	// iterator need not reflect writes made after it is created.
	GetIter(table string) (Iterator, error)

	// Close releases any resources the backend holds.
	Close() error
}

// Iterator walks a table's pairs one at a time, standing in for the Rust
// source's StorageIter<T> adapter. Each backend supplies its own Iterator
// over a Kvpair snapshot taken when GetIter is called.
type Iterator interface {
	// Next advances to and returns the next pair, or nil when exhausted.
	Next() (*pb.Kvpair, error)
}

// CreateFunc builds a Storage backend from its config options.
type CreateFunc func(opts map[string]any) (Storage, error)

var factory = map[string]CreateFunc{}

// Register adds a backend constructor under name, e.g. "memory" or
// "bbolt", so confengine-driven config can select a backend without the
// caller importing every backend package by hand.
func Register(name string, f CreateFunc) {
	factory[name] = f
}

// Get looks up a backend constructor previously added with Register.
func Get(name string) (CreateFunc, error) {
	f, ok := factory[name]
	if !ok {
		return nil, errors.Errorf("storage backend (%s) not found", name)
	}
	return f, nil
}

func init() {
	Register("memory", func(opts map[string]any) (Storage, error) {
		return NewMemory(), nil
	})
}
