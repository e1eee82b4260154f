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

package stats

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherConvertsCountersAndGauges(t *testing.T) {
	reg := prometheus.NewRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "kvdb_requests_total"})
	counter.Add(3)

	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "kvdb_active_conns"}, []string{"proto"})
	gauge.WithLabelValues("tcp").Set(5)

	reg.MustRegister(counter, gauge)

	wr, err := Gather(reg)
	require.NoError(t, err)
	require.Len(t, wr.Timeseries, 2)

	byName := map[string]float64{}
	for _, ts := range wr.Timeseries {
		var name string
		for _, l := range ts.Labels {
			if l.Name == "__name__" {
				name = l.Value
			}
		}
		require.Len(t, ts.Samples, 1)
		byName[name] = ts.Samples[0].Value
	}

	assert.Equal(t, float64(3), byName["kvdb_requests_total"])
	assert.Equal(t, float64(5), byName["kvdb_active_conns"])
}

func TestGatherSkipsHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	hist := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "kvdb_latency_seconds"})
	hist.Observe(0.2)
	reg.MustRegister(hist)

	wr, err := Gather(reg)
	require.NoError(t, err)
	assert.Empty(t, wr.Timeseries)
}
