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

// Package wait supervises a long-running worker goroutine: it restarts f
// if it ever returns (including via panic) and stops restarting once ctx
// is cancelled. Workers themselves are expected to block internally (a
// select over a work channel and ctx.Done), so this is a crash
// supervisor, not a periodic scheduler.
package wait

import (
	"context"
	"time"

	"github.com/packetd/kvdb/internal/rescue"
)

// backoff bounds how fast Until re-spawns f after an unexpected return,
// so a worker that fails immediately on every call doesn't spin the CPU.
const backoff = 100 * time.Millisecond

// Until runs f, and keeps re-running it every time it returns, until ctx
// is cancelled. A panic inside f is recovered and logged by
// internal/rescue so one bad iteration doesn't take the supervising
// goroutine down with it.
func Until(ctx context.Context, f func()) {
	for {
		runOnce(f)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

func runOnce(f func()) {
	defer rescue.HandleCrash()
	f()
}
