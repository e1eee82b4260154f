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

package tracekit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomTraceIDIsUnique(t *testing.T) {
	a := RandomTraceID()
	b := RandomTraceID()
	assert.NotEqual(t, a, b)
	assert.NotZero(t, a)
}

func TestRandomSpanIDIsUnique(t *testing.T) {
	a := RandomSpanID()
	b := RandomSpanID()
	assert.NotEqual(t, a, b)
	assert.NotZero(t, a)
}
