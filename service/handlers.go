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
	"github.com/hashicorp/go-multierror"

	"github.com/packetd/kvdb/kverr"
	"github.com/packetd/kvdb/pb"
	"github.com/packetd/kvdb/storage"
)

// handleHget mirrors `impl CommandService for Hget`.
func handleHget(req *pb.Hget, store storage.Storage) *pb.CommandResponse {
	v, err := store.Get(req.Table, req.Key)
	if err != nil {
		return kverr.ToResponse(err)
	}
	if v == nil {
		return kverr.ToResponse(kverr.NewNotFound(req.Table + " " + req.Key))
	}
	return pb.ValueResponse(v)
}

// handleHset mirrors `impl CommandService for Hset`: an Hset with no pair
// is a no-op returning an empty Value, matching `Value::default().into()`.
func handleHset(req *pb.Hset, store storage.Storage) *pb.CommandResponse {
	if req.Pair == nil {
		return pb.ValueResponse(&pb.Value{})
	}
	old, err := store.Set(req.Table, req.Pair.Key, req.Pair.Value)
	if err != nil {
		return kverr.ToResponse(err)
	}
	if old == nil {
		return pb.ValueResponse(&pb.Value{})
	}
	return pb.ValueResponse(old)
}

// handleHgetall mirrors `impl CommandService for Hgetall`.
func handleHgetall(req *pb.Hgetall, store storage.Storage) *pb.CommandResponse {
	pairs, err := store.GetAll(req.Table)
	if err != nil {
		return kverr.ToResponse(err)
	}
	return pb.PairsResponse(pairs)
}

// handleHmget, handleHmset, handleHdel, handleHmdel, handleHexist and
// handleHmexist are genuine extensions beyond what the source implemented
// (it left these as `KvError::Internal("Not implemented")`). The batch
// handlers (Hmget, Hmset, Hmdel, Hmexist) aggregate per-key storage
// failures with go-multierror so one bad key in a batch never silently
// swallows the others'; Hdel and Hexist act on one key and return its
// storage error directly.

func handleHmget(req *pb.Hmget, store storage.Storage) *pb.CommandResponse {
	values := make([]*pb.Value, 0, len(req.Keys))
	var merr *multierror.Error
	for _, key := range req.Keys {
		v, err := store.Get(req.Table, key)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if v == nil {
			v = &pb.Value{}
		}
		values = append(values, v)
	}
	if merr.ErrorOrNil() != nil {
		return kverr.ToResponse(kverr.NewStorageError("hmget", req.Table, "", merr))
	}
	return pb.ValuesResponse(values)
}

func handleHmset(req *pb.Hmset, store storage.Storage) *pb.CommandResponse {
	values := make([]*pb.Value, 0, len(req.Pairs))
	var merr *multierror.Error
	for _, pair := range req.Pairs {
		old, err := store.Set(req.Table, pair.Key, pair.Value)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if old == nil {
			old = &pb.Value{}
		}
		values = append(values, old)
	}
	if merr.ErrorOrNil() != nil {
		return kverr.ToResponse(kverr.NewStorageError("hmset", req.Table, "", merr))
	}
	return pb.ValuesResponse(values)
}

func handleHdel(req *pb.Hdel, store storage.Storage) *pb.CommandResponse {
	old, err := store.Del(req.Table, req.Key)
	if err != nil {
		return kverr.ToResponse(err)
	}
	if old == nil {
		old = &pb.Value{}
	}
	return pb.ValueResponse(old)
}

func handleHmdel(req *pb.Hmdel, store storage.Storage) *pb.CommandResponse {
	values := make([]*pb.Value, 0, len(req.Keys))
	var merr *multierror.Error
	for _, key := range req.Keys {
		old, err := store.Del(req.Table, key)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if old == nil {
			old = &pb.Value{}
		}
		values = append(values, old)
	}
	if merr.ErrorOrNil() != nil {
		return kverr.ToResponse(kverr.NewStorageError("hmdel", req.Table, "", merr))
	}
	return pb.ValuesResponse(values)
}

func handleHexist(req *pb.Hexist, store storage.Storage) *pb.CommandResponse {
	ok, err := store.Contains(req.Table, req.Key)
	if err != nil {
		return kverr.ToResponse(err)
	}
	return pb.ValueResponse(pb.BoolValue(ok))
}

func handleHmexist(req *pb.Hmexist, store storage.Storage) *pb.CommandResponse {
	values := make([]*pb.Value, 0, len(req.Keys))
	var merr *multierror.Error
	for _, key := range req.Keys {
		ok, err := store.Contains(req.Table, key)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		values = append(values, pb.BoolValue(ok))
	}
	if merr.ErrorOrNil() != nil {
		return kverr.ToResponse(kverr.NewStorageError("hmexist", req.Table, "", merr))
	}
	return pb.ValuesResponse(values)
}
