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

// Sinker writes one batch of exported data to its destination.
type Sinker interface {
	// Name identifies which kind of data this Sinker accepts.
	Name() string

	// Sink writes data, which for the registered metrics Sinker is
	// always a *prompb.WriteRequest built by exporter/stats.Gather.
	Sink(data any) error

	// Close releases the Sinker's resources.
	Close()
}

// CreateFunc builds a Sinker from its slice of Config.
type CreateFunc func(Config) (Sinker, error)

// MetricsSinkName is the only Sinker kind this exporter currently
// registers; kept as a named constant rather than a bare string so a
// future second Sinker kind (e.g. an alternate metrics backend) has an
// obvious place to add its own constant next to it.
const MetricsSinkName = "metrics"

var sinkFactory = map[string]CreateFunc{}

func Get(name string) CreateFunc {
	return sinkFactory[name]
}

func Register(name string, createFunc CreateFunc) {
	sinkFactory[name] = createFunc
}
