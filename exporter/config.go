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
	"net/url"
	"time"
)

const defaultTimeout = 15 * time.Second

// Config is the exporter's sole remaining concern: periodically pushing
// this process's own prometheus registry (see exporter/stats) to a
// remote-write endpoint. The teacher's Traces/RoundTrips sinks existed to
// export data the sniffer pipeline produced (spans and L7 roundtrip
// records); this service has no such data source, so those sinks and
// their config sections are dropped rather than carried as dead weight
// (see DESIGN.md).
type Config struct {
	Metrics MetricsConfig `config:"metrics"`
}

type MetricsConfig struct {
	Enabled  bool              `config:"enabled"`
	Endpoint string            `config:"endpoint"`
	Header   map[string]string `config:"header"`
	Interval time.Duration     `config:"interval"`
	Timeout  time.Duration     `config:"timeout"`
}

func (mc *MetricsConfig) Validate() error {
	_, err := url.Parse(mc.Endpoint)
	if err != nil {
		return err
	}

	if mc.Timeout <= 0 {
		mc.Timeout = defaultTimeout
	}
	if mc.Interval <= 0 {
		mc.Interval = time.Minute
	}
	return nil
}
