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

// Package stats turns the process's own prometheus registry (the
// kvserver, controller and rescue metrics registered with promauto) into a
// prompb.WriteRequest, the same wire shape
// exporter/sinker/metrics.Sinker POSTs to a remote-write endpoint.
//
// This is the Go-native replacement for the teacher's
// internal/metricstorage: that package exists because the sniffer/
// connstream pipeline produces ad hoc per-tuple counters with dynamic
// label sets that never touch the prometheus client library. This
// service has no such per-packet metric stream — every counter it emits
// is already a promauto-registered client_golang metric — so snapshotting
// the registry directly is both simpler and more idiomatic than routing
// through a second metric store.
package stats

import (
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/prometheus/prompb"

	"github.com/packetd/kvdb/internal/fasttime"
)

// Gather snapshots every metric in reg into prompb time series with one
// sample each, stamped with the current time. Histograms and summaries
// are skipped: nothing in this service currently registers one, and the
// bucket/quantile expansion prometheus remote-write expects is not worth
// building against zero callers.
func Gather(reg Gatherer) (*prompb.WriteRequest, error) {
	families, err := reg.Gather()
	if err != nil {
		return nil, err
	}

	ts := fasttime.UnixTimestamp() * 1000
	wr := &prompb.WriteRequest{}

	for _, family := range families {
		name := family.GetName()
		for _, m := range family.GetMetric() {
			value, ok := metricValue(family.GetType(), m)
			if !ok {
				continue
			}
			wr.Timeseries = append(wr.Timeseries, prompb.TimeSeries{
				Labels:  toLabels(name, m),
				Samples: []prompb.Sample{{Value: value, Timestamp: ts}},
			})
		}
	}
	return wr, nil
}

func metricValue(kind dto.MetricType, m *dto.Metric) (float64, bool) {
	switch kind {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue(), true
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue(), true
	default:
		return 0, false
	}
}

func toLabels(name string, m *dto.Metric) []prompb.Label {
	lbs := make([]prompb.Label, 0, len(m.GetLabel())+1)
	lbs = append(lbs, prompb.Label{Name: "__name__", Value: name})
	for _, lp := range m.GetLabel() {
		lbs = append(lbs, prompb.Label{Name: lp.GetName(), Value: lp.GetValue()})
	}
	return lbs
}

// Gatherer is the subset of prometheus.Gatherer this package needs; it
// is satisfied by prometheus.DefaultGatherer and by any
// prometheus.Registry built for tests.
type Gatherer interface {
	Gather() ([]*dto.MetricFamily, error)
}
