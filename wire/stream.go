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

package wire

import (
	"bufio"
	"io"

	"github.com/packetd/kvdb/common"
	"github.com/packetd/kvdb/pb"
)

// FramedStream layers typed request/response framing over any byte stream:
// a raw net.Conn, a TLS conn, or one multiplexed sub-stream. Ordering
// within one FramedStream is guaranteed; there is no guarantee across two
// FramedStreams sharing a connection.
type FramedStream struct {
	rwc io.ReadWriteCloser
	r   *bufio.Reader
}

// NewFramedStream wraps rwc. Reads are buffered since frame headers and
// payloads generally arrive as several short reads off the socket.
func NewFramedStream(rwc io.ReadWriteCloser) *FramedStream {
	return &FramedStream{rwc: rwc, r: bufio.NewReaderSize(rwc, common.ReadWriteBlockSize)}
}

func (s *FramedStream) Close() error { return s.rwc.Close() }

// SendRequest frames and writes one CommandRequest.
func (s *FramedStream) SendRequest(req *pb.CommandRequest) error {
	return WriteMessage(s.rwc, req)
}

// SendResponse frames and writes one CommandResponse.
func (s *FramedStream) SendResponse(res *pb.CommandResponse) error {
	return WriteMessage(s.rwc, res)
}

// ReceiveRequest blocks until one full CommandRequest frame has arrived.
func (s *FramedStream) ReceiveRequest() (*pb.CommandRequest, error) {
	req := &pb.CommandRequest{}
	if err := ReadMessage(s.r, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ReceiveResponse blocks until one full CommandResponse frame has arrived.
func (s *FramedStream) ReceiveResponse() (*pb.CommandResponse, error) {
	res := &pb.CommandResponse{}
	if err := ReadMessage(s.r, res); err != nil {
		return nil, err
	}
	return res, nil
}
