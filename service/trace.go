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
	"github.com/packetd/kvdb/internal/tracekit"
	"github.com/packetd/kvdb/logger"
)

// stampTrace is the built-in OnReceived hook: it logs each request with a
// fresh random trace id. The id is not stored on the request, so later
// hooks (closeTraceSpan included) do not log it.
func stampTrace(ctx *RequestContext) {
	traceID := tracekit.RandomTraceID()
	logger.Debugf("service: trace %s received %s", traceID.String(), ctx.Request.Format())
}

// closeTraceSpan is the built-in OnAfterSend hook.
func closeTraceSpan(ctx *RequestContext) {
	logger.Debugf("service: response sent %s", ctx.Response.Format())
}
