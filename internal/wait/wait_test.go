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

package wait

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUntilRestartsAfterReturn(t *testing.T) {
	var calls int32
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		Until(ctx, func() {
			atomic.AddInt32(&calls, 1)
		})
	}()

	time.Sleep(350 * time.Millisecond)
	cancel()
	<-done

	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestUntilSurvivesPanic(t *testing.T) {
	var calls int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		Until(ctx, func() {
			n := atomic.AddInt32(&calls, 1)
			if n == 1 {
				panic("boom")
			}
			cancel()
		})
	}()

	<-done
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
