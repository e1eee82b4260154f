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

// This file only needs to blank-import sinker implementations that
// register themselves via init(); the storage backends (memory, bbolt)
// are registered by their own init() functions and are already reached
// through controller.go's direct import of the storage package.
import (
	_ "github.com/packetd/kvdb/exporter/sinker/metrics"
)
