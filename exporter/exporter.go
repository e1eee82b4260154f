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

package exporter

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/packetd/kvdb/confengine"
	"github.com/packetd/kvdb/exporter/stats"
	"github.com/packetd/kvdb/logger"
)

// Exporter periodically pushes this process's prometheus registry to a
// remote-write endpoint. It is deliberately narrower than the teacher's
// Exporter, which also fanned Traces and RoundTrips records out to their
// own sinks; this service has no span or packet-roundtrip data source to
// export, so those sinks were dropped (see exporter/config.go).
type Exporter struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    Config

	metricsSinker Sinker
}

// New builds an Exporter from the "exporter" config section. The metrics
// Sinker is only constructed when cfg.Metrics.Enabled is set.
func New(conf *confengine.Config) (*Exporter, error) {
	var cfg Config
	if err := conf.UnpackChild("exporter", &cfg); err != nil {
		return nil, err
	}

	var metricsSinker Sinker
	if cfg.Metrics.Enabled {
		f := Get(MetricsSinkName)
		sinker, err := f(cfg)
		if err != nil {
			return nil, err
		}
		metricsSinker = sinker
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Exporter{ctx: ctx, cancel: cancel, cfg: cfg, metricsSinker: metricsSinker}, nil
}

// Start begins the periodic export loop; it is a no-op if metrics export
// is disabled.
func (e *Exporter) Start() {
	if e.cfg.Metrics.Enabled {
		go e.loopExportMetrics()
	}
}

// Close stops the export loop and releases the Sinker.
func (e *Exporter) Close() {
	e.cancel()
	if e.cfg.Metrics.Enabled {
		e.metricsSinker.Close()
	}
}

func (e *Exporter) loopExportMetrics() {
	ticker := time.NewTicker(e.cfg.Metrics.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.ctx.Done():
			return

		case <-ticker.C:
			wr, err := stats.Gather(prometheus.DefaultGatherer)
			if err != nil {
				logger.Errorf("gather metrics failed: %v", err)
				continue
			}
			if err := e.metricsSinker.Sink(wr); err != nil {
				logger.Errorf("sink metrics failed: %v", err)
			}
		}
	}
}
