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
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetd/kvdb/pb"
)

func TestMemoryBasicInterface(t *testing.T) {
	testBasicInterface(t, NewMemory())
}

func TestMemoryGetAll(t *testing.T) {
	testGetAll(t, NewMemory())
}

func TestMemoryGetIter(t *testing.T) {
	testGetIter(t, NewMemory())
}

func TestBoltBasicInterface(t *testing.T) {
	testBasicInterface(t, newTempBolt(t))
}

func TestBoltGetAll(t *testing.T) {
	testGetAll(t, newTempBolt(t))
}

func TestBoltGetIter(t *testing.T) {
	testGetIter(t, newTempBolt(t))
}

func newTempBolt(t *testing.T) *Bolt {
	t.Helper()
	db, err := NewBolt(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestGetReturnsRegisteredBackends(t *testing.T) {
	_, err := Get("memory")
	require.NoError(t, err)

	_, err = Get("bbolt")
	require.NoError(t, err)

	_, err = Get("no-such-backend")
	assert.Error(t, err)
}

func TestBboltFactoryDecodesPathOption(t *testing.T) {
	f, err := Get("bbolt")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "opts.db")
	store, err := f(map[string]any{"path": path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, ok := store.(*Bolt)
	assert.True(t, ok)
}

func testBasicInterface(t *testing.T, store Storage) {
	// 1. set a non-existing key, should return nil
	old, err := store.Set("t1", "hello", pb.StringValue("value"))
	require.NoError(t, err)
	assert.Nil(t, old)

	// 2. set an existing key, should return the old value
	old, err = store.Set("t1", "hello", pb.StringValue("value2"))
	require.NoError(t, err)
	assert.Equal(t, "value", mustString(t, old))

	// 3. get the key, should return the new value
	v, err := store.Get("t1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "value2", mustString(t, v))

	// 4. get a non-existing key or table, should return nil
	v, err = store.Get("t1", "unexisting")
	require.NoError(t, err)
	assert.Nil(t, v)
	v, err = store.Get("unexisting", "hello")
	require.NoError(t, err)
	assert.Nil(t, v)

	// 5. check an existing key, should return true
	ok, err := store.Contains("t1", "hello")
	require.NoError(t, err)
	assert.True(t, ok)

	// 6. check a non-existing key or table, should return false
	ok, err = store.Contains("t1", "unexisting")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = store.Contains("unexisting", "hello")
	require.NoError(t, err)
	assert.False(t, ok)

	// 7. del the key, should return the removed value
	del, err := store.Del("t1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "value2", mustString(t, del))

	// 8. get the key, should return nil
	v, err = store.Get("t1", "hello")
	require.NoError(t, err)
	assert.Nil(t, v)

	// 9. del a non-existing key or table, should return nil
	del, err = store.Del("t1", "unexisting")
	require.NoError(t, err)
	assert.Nil(t, del)
	del, err = store.Del("unexisting", "hello")
	require.NoError(t, err)
	assert.Nil(t, del)
}

func testGetAll(t *testing.T, store Storage) {
	pairs, err := store.GetAll("t2")
	require.NoError(t, err)
	assert.Empty(t, pairs)

	_, err = store.Set("t2", "k1", pb.StringValue("v1"))
	require.NoError(t, err)
	_, err = store.Set("t2", "k2", pb.StringValue("v2"))
	require.NoError(t, err)

	pairs, err = store.GetAll("t2")
	require.NoError(t, err)
	sortPairs(pairs)
	require.Len(t, pairs, 2)
	assert.Equal(t, "k1", pairs[0].Key)
	assert.Equal(t, "k2", pairs[1].Key)
}

func testGetIter(t *testing.T, store Storage) {
	_, err := store.Set("t3", "k1", pb.StringValue("v1"))
	require.NoError(t, err)
	_, err = store.Set("t3", "k2", pb.StringValue("v2"))
	require.NoError(t, err)

	iter, err := store.GetIter("t3")
	require.NoError(t, err)

	var pairs []*pb.Kvpair
	for {
		p, err := iter.Next()
		require.NoError(t, err)
		if p == nil {
			break
		}
		pairs = append(pairs, p)
	}
	sortPairs(pairs)
	require.Len(t, pairs, 2)
	assert.Equal(t, "k1", pairs[0].Key)
	assert.Equal(t, "k2", pairs[1].Key)
}

func sortPairs(pairs []*pb.Kvpair) {
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Less(pairs[j]) })
}

func mustString(t *testing.T, v *pb.Value) string {
	t.Helper()
	require.NotNil(t, v)
	s, ok := v.GetString()
	require.True(t, ok)
	return s
}
