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

import "github.com/packetd/kvdb/pb"

// ResponseStream is the streaming counterpart of a unary CommandResponse:
// Subscribe's stream runs for the lifetime of the subscription, while
// Unsubscribe and Publish each produce exactly one response before the
// stream closes.
type ResponseStream <-chan *pb.CommandResponse

// ExecuteStream dispatches a Subscribe/Unsubscribe/Publish request. The
// caller reaches this only after Execute has returned the stream sentinel
// for the same request.
func (s *Service) ExecuteStream(req *pb.CommandRequest) ResponseStream {
	switch v := req.GetRequestData().(type) {
	case *pb.CommandRequest_Subscribe:
		return s.executeSubscribe(v.Subscribe)
	case *pb.CommandRequest_Unsubscribe:
		return s.executeUnsubscribe(v.Unsubscribe)
	case *pb.CommandRequest_Publish:
		return s.executePublish(v.Publish)
	default:
		return once(errResponse(invalidCommand()))
	}
}

func (s *Service) executeSubscribe(req *pb.Subscribe) ResponseStream {
	_, ch := s.broadcaster.Subscribe(req.Topic)
	return ResponseStream(ch)
}

func (s *Service) executeUnsubscribe(req *pb.Unsubscribe) ResponseStream {
	if err := s.broadcaster.Unsubscribe(req.Topic, req.Id); err != nil {
		return once(errResponse(err))
	}
	return once(pb.OkResponse())
}

func (s *Service) executePublish(req *pb.Publish) ResponseStream {
	s.broadcaster.Publish(req.Topic, pb.ValuesResponse(req.Values))
	return once(pb.OkResponse())
}

func once(res *pb.CommandResponse) ResponseStream {
	ch := make(chan *pb.CommandResponse, 1)
	ch <- res
	close(ch)
	return ResponseStream(ch)
}
