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

package kvserver

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/google/uuid"

	"github.com/packetd/kvdb/logger"
	"github.com/packetd/kvdb/pb"
	"github.com/packetd/kvdb/service"
	"github.com/packetd/kvdb/wire"
)

// driveSubstream runs the framed request/response loop for one yamux
// sub-stream until the peer closes it or a frame-level error occurs.
// Every request on the sub-stream goes through svc.Execute; when that
// returns the stream sentinel the driver falls through to svc.ExecuteStream
// and relays every response it yields, which is how one sub-stream carries
// either a single unary reply or an open-ended Subscribe feed.
func driveSubstream(connID uuid.UUID, raw net.Conn, svc *service.Service) {
	stream := wire.NewFramedStream(raw)
	defer stream.Close()

	for {
		req, err := stream.ReceiveRequest()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Warnf("kvserver: conn %s: receive failed: %s", connID, err)
			}
			return
		}

		name := commandName(req)
		res := svc.Execute(req)

		if service.IsStreamSentinel(res) {
			relayStream(connID, name, req, stream, svc)
			continue
		}

		handledRequests.WithLabelValues(name, strconv.Itoa(int(res.Status))).Inc()
		if err := stream.SendResponse(res); err != nil {
			logger.Warnf("kvserver: conn %s: send failed: %s", connID, err)
			svc.AfterSend(req, res)
			return
		}
		svc.AfterSend(req, res)
	}
}

// relayStream drains a ResponseStream onto the wire. A Subscribe stream
// keeps yielding for as long as the topic is live; Unsubscribe and Publish
// each yield exactly one response before closing.
func relayStream(connID uuid.UUID, name string, req *pb.CommandRequest, stream *wire.FramedStream, svc *service.Service) {
	for res := range svc.ExecuteStream(req) {
		handledRequests.WithLabelValues(name, strconv.Itoa(int(res.Status))).Inc()
		if err := stream.SendResponse(res); err != nil {
			logger.Warnf("kvserver: conn %s: stream send failed: %s", connID, err)
			svc.AfterSend(req, res)
			return
		}
		svc.AfterSend(req, res)
	}
}

func commandName(req *pb.CommandRequest) string {
	switch req.GetRequestData().(type) {
	case *pb.CommandRequest_Hget:
		return "hget"
	case *pb.CommandRequest_Hgetall:
		return "hgetall"
	case *pb.CommandRequest_Hmget:
		return "hmget"
	case *pb.CommandRequest_Hset:
		return "hset"
	case *pb.CommandRequest_Hmset:
		return "hmset"
	case *pb.CommandRequest_Hdel:
		return "hdel"
	case *pb.CommandRequest_Hmdel:
		return "hmdel"
	case *pb.CommandRequest_Hexist:
		return "hexist"
	case *pb.CommandRequest_Hmexist:
		return "hmexist"
	case *pb.CommandRequest_Subscribe:
		return "subscribe"
	case *pb.CommandRequest_Unsubscribe:
		return "unsubscribe"
	case *pb.CommandRequest_Publish:
		return "publish"
	default:
		return fmt.Sprintf("unknown(%T)", req.GetRequestData())
	}
}
