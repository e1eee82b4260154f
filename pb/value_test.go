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

package pb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValueZeroPayloadsRoundTrip guards against a oneof variant silently
// dropping to the empty message on encode: since the tag itself means
// "this variant is set", a zero payload must still round-trip, unlike an
// ordinary proto3 scalar field.
func TestValueZeroPayloadsRoundTrip(t *testing.T) {
	cases := []*Value{
		IntValue(0),
		BoolValue(false),
		FloatValue(0),
		StringValue(""),
		{Value: &Value_Binary{Binary: nil}},
	}

	for _, want := range cases {
		data, err := want.Marshal()
		require.NoError(t, err)

		got := &Value{}
		require.NoError(t, got.Unmarshal(data))
		assert.Equal(t, want.Value, got.Value)
	}
}

func TestValueUnsetRoundTripsToNil(t *testing.T) {
	want := &Value{}
	data, err := want.Marshal()
	require.NoError(t, err)
	assert.Empty(t, data)

	got := &Value{}
	require.NoError(t, got.Unmarshal(data))
	assert.Nil(t, got.Value)
}
