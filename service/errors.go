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
	"github.com/packetd/kvdb/kverr"
	"github.com/packetd/kvdb/pb"
)

func invalidCommand() error {
	return kverr.NewInvalidCommand("request has no data")
}

func errResponse(err error) *pb.CommandResponse {
	return kverr.ToResponse(err)
}
