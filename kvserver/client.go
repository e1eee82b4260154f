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
	"crypto/tls"

	"github.com/packetd/kvdb/kverr"
	"github.com/packetd/kvdb/pb"
	"github.com/packetd/kvdb/transport/mux"
	"github.com/packetd/kvdb/transport/tlsconf"
	"github.com/packetd/kvdb/wire"
)

// Client dials one TLS connection and multiplexes every command over it,
// mirroring the source's combination of a single TcpStream with a
// YamuxCtrl::new_client on top. Each ExecuteUnary/Subscribe call opens its
// own yamux sub-stream, so a long-running Subscribe never blocks unrelated
// unary commands on the same connection.
type Client struct {
	ctrl *mux.Ctrl
}

// Dial opens addr, completes a TLS handshake using opt, and wraps the
// connection in a yamux client session.
func Dial(addr string, opt tlsconf.ClientOptions) (*Client, error) {
	tlsConf, err := tlsconf.NewClientConfig(opt)
	if err != nil {
		return nil, err
	}

	conn, err := tls.Dial("tcp", addr, tlsConf)
	if err != nil {
		return nil, kverr.NewTlsError(err)
	}

	ctrl, err := mux.NewClient(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Client{ctrl: ctrl}, nil
}

// Close tears down every open sub-stream along with the underlying
// connection.
func (c *Client) Close() error {
	return c.ctrl.Close()
}

// ExecuteUnary opens a fresh sub-stream, sends req, and returns the single
// response. Used for Hget/Hset/.../Publish/Unsubscribe — anything that is
// not an open-ended Subscribe.
func (c *Client) ExecuteUnary(req *pb.CommandRequest) (*pb.CommandResponse, error) {
	sub, err := c.ctrl.OpenStream()
	if err != nil {
		return nil, err
	}
	defer sub.Close()

	stream := wire.NewFramedStream(sub)
	if err := stream.SendRequest(req); err != nil {
		return nil, err
	}
	return stream.ReceiveResponse()
}

// Subscription is the client side of a live Subscribe stream: an
// identifier the server assigned plus the sub-stream future published
// values keep arriving on. It is the Go analog of the source's
// StreamResult, which peels the subscription id off the first frame and
// leaves the rest of the stream for the caller to keep reading.
type Subscription struct {
	ID     uint32
	stream *wire.FramedStream
}

// subscribeSubStream opens a new sub-stream, sends req, and reads the
// first response frame to recover the subscription id the server
// assigned — mirroring StreamResult::new's validation that the first
// frame is a single-Integer-value 200 response.
func (c *Client) subscribeSubStream(req *pb.CommandRequest) (*Subscription, error) {
	sub, err := c.ctrl.OpenStream()
	if err != nil {
		return nil, err
	}

	stream := wire.NewFramedStream(sub)
	if err := stream.SendRequest(req); err != nil {
		_ = stream.Close()
		return nil, err
	}

	first, err := stream.ReceiveResponse()
	if err != nil {
		_ = stream.Close()
		return nil, err
	}

	id, err := idFromFirstFrame(first)
	if err != nil {
		_ = stream.Close()
		return nil, err
	}

	return &Subscription{ID: id, stream: stream}, nil
}

// ExecuteSubscribe opens a Subscribe stream for topic and returns a
// Subscription whose Next method yields every subsequently published
// value.
func (c *Client) ExecuteSubscribe(topic string) (*Subscription, error) {
	return c.subscribeSubStream(pb.NewSubscribe(topic))
}

// ExecuteUnsubscribe sends Unsubscribe on a fresh sub-stream, matching the
// source's choice to unsubscribe out-of-band rather than reuse the
// Subscribe sub-stream (yamux sub-streams are half-duplex-by-convention
// here: one is for receiving published values, not for control messages).
func (c *Client) ExecuteUnsubscribe(topic string, id uint32) (*pb.CommandResponse, error) {
	return c.ExecuteUnary(pb.NewUnsubscribe(topic, id))
}

// ExecutePublish publishes values to topic.
func (c *Client) ExecutePublish(topic string, values []*pb.Value) (*pb.CommandResponse, error) {
	return c.ExecuteUnary(pb.NewPublish(topic, values))
}

// Next blocks for the next published response on this subscription.
func (s *Subscription) Next() (*pb.CommandResponse, error) {
	return s.stream.ReceiveResponse()
}

// Close ends the subscription's sub-stream; it does not send Unsubscribe,
// which must be issued explicitly via Client.ExecuteUnsubscribe.
func (s *Subscription) Close() error {
	return s.stream.Close()
}

func idFromFirstFrame(res *pb.CommandResponse) (uint32, error) {
	if res.Status != 200 || len(res.Values) != 1 {
		return 0, kverr.NewInvalidCommand("subscribe: first frame is not a single-value 200 response")
	}
	id, ok := res.Values[0].GetInteger()
	if !ok {
		return 0, kverr.NewInvalidCommand("subscribe: first frame value is not an integer id")
	}
	return uint32(id), nil
}
