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

package controller

// Config is the top-level "controller" config section: which storage
// backend the service runs against, and that backend's own options.
type Config struct {
	// Storage names a backend registered with storage.Register, e.g.
	// "memory" or "bbolt".
	Storage string `config:"storage"`

	// StorageOptions is passed verbatim to the chosen backend's
	// CreateFunc (e.g. bbolt's "path" option).
	StorageOptions map[string]any `config:"storageOptions"`
}
