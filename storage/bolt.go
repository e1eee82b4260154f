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
	"time"

	"go.etcd.io/bbolt"

	"github.com/packetd/kvdb/common"
	"github.com/packetd/kvdb/kverr"
	"github.com/packetd/kvdb/pb"
)

// Bolt is a persistent Storage backend built on go.etcd.io/bbolt, the Go
// counterpart of the source's sled-backed SledDb. Each table is its own
// bbolt bucket rather than a "table:key" composite key in a single tree —
// see SPEC_FULL.md's Open Question decisions for why.
type Bolt struct {
	db *bbolt.DB
}

// NewBolt opens (creating if absent) the bbolt file at path.
func NewBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, kverr.NewIOError(err)
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(table, key string) (*pb.Value, error) {
	var value *pb.Value
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(table))
		if bucket == nil {
			return nil
		}
		raw := bucket.Get([]byte(key))
		if raw == nil {
			return nil
		}
		v := &pb.Value{}
		if err := v.Unmarshal(raw); err != nil {
			return kverr.NewDecodeError(err)
		}
		value = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (b *Bolt) Set(table, key string, value *pb.Value) (*pb.Value, error) {
	var old *pb.Value
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(table))
		if err != nil {
			return kverr.NewStorageError("set", table, key, err)
		}
		if raw := bucket.Get([]byte(key)); raw != nil {
			v := &pb.Value{}
			if err := v.Unmarshal(raw); err != nil {
				return kverr.NewDecodeError(err)
			}
			old = v
		}
		var data []byte
		if value != nil {
			data, err = value.Marshal()
			if err != nil {
				return kverr.NewEncodeError(err)
			}
		}
		return bucket.Put([]byte(key), data)
	})
	if err != nil {
		return nil, err
	}
	return old, nil
}

func (b *Bolt) Contains(table, key string) (bool, error) {
	found := false
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(table))
		if bucket == nil {
			return nil
		}
		found = bucket.Get([]byte(key)) != nil
		return nil
	})
	return found, err
}

func (b *Bolt) Del(table, key string) (*pb.Value, error) {
	var old *pb.Value
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(table))
		if bucket == nil {
			return nil
		}
		raw := bucket.Get([]byte(key))
		if raw == nil {
			return nil
		}
		v := &pb.Value{}
		if err := v.Unmarshal(raw); err != nil {
			return kverr.NewDecodeError(err)
		}
		old = v
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return nil, err
	}
	return old, nil
}

func (b *Bolt) GetAll(table string) ([]*pb.Kvpair, error) {
	var pairs []*pb.Kvpair
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(table))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, raw []byte) error {
			v := &pb.Value{}
			if err := v.Unmarshal(raw); err != nil {
				return kverr.NewDecodeError(err)
			}
			pairs = append(pairs, pb.NewKvpair(string(k), v))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if pairs == nil {
		pairs = []*pb.Kvpair{}
	}
	return pairs, nil
}

type boltIterator struct {
	pairs []*pb.Kvpair
	pos   int
}

func (it *boltIterator) Next() (*pb.Kvpair, error) {
	if it.pos >= len(it.pairs) {
		return nil, nil
	}
	p := it.pairs[it.pos]
	it.pos++
	return p, nil
}

// GetIter snapshots the bucket under a read transaction up front: bbolt
// cursors are only valid for the lifetime of their transaction, so holding
// one open across Iterator.Next calls would either leak the transaction or
// block writers for as long as the caller iterates.
func (b *Bolt) GetIter(table string) (Iterator, error) {
	pairs, err := b.GetAll(table)
	if err != nil {
		return nil, err
	}
	return &boltIterator{pairs: pairs}, nil
}

func (b *Bolt) Close() error {
	if err := b.db.Close(); err != nil {
		return kverr.NewIOError(err)
	}
	return nil
}

// boltOptions is bbolt's StorageOptions shape, decoded via
// common.Options.Decode rather than confengine (each backend's options
// are opaque to confengine, which only knows about the Storage field).
type boltOptions struct {
	Path string `mapstructure:"path"`
}

func init() {
	Register("bbolt", func(opts map[string]any) (Storage, error) {
		var bo boltOptions
		if err := common.Options(opts).Decode(&bo); err != nil {
			return nil, kverr.NewDecodeError(err)
		}
		if bo.Path == "" {
			bo.Path = "kvdb.db"
		}
		return NewBolt(bo.Path)
	})
}
