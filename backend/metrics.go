// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backend

import "sync/atomic"

// metrics holds process-wide operational counters, the same
// hand-rolled-counter idiom the teacher's monitoring.go uses (no
// Prometheus/statsd client anywhere in that codebase) rather than
// introducing a metrics client the rest of the stack never reaches for.
var metrics = struct {
	stepsSubmitted atomic.Uint64
	stepsResolved  atomic.Uint64
	stepsRejected  atomic.Uint64
	hubsBusy       atomic.Uint64
	wsConnections  atomic.Int64
}{}

func recordStepSubmitted() { metrics.stepsSubmitted.Add(1) }
func recordStepResolved()  { metrics.stepsResolved.Add(1) }
func recordStepRejected()  { metrics.stepsRejected.Add(1) }
func recordHubBusy()       { metrics.hubsBusy.Add(1) }

func recordWSConnect()    { metrics.wsConnections.Add(1) }
func recordWSDisconnect() { metrics.wsConnections.Add(-1) }

// MetricsSnapshot is a point-in-time read of the operational counters,
// exposed for a status endpoint or periodic logging.
type MetricsSnapshot struct {
	StepsSubmitted uint64 `json:"stepsSubmitted"`
	StepsResolved  uint64 `json:"stepsResolved"`
	StepsRejected  uint64 `json:"stepsRejected"`
	HubsBusy       uint64 `json:"hubsBusy"`
	WSConnections  int64  `json:"wsConnections"`
}

func currentMetrics() MetricsSnapshot {
	return MetricsSnapshot{
		StepsSubmitted: metrics.stepsSubmitted.Load(),
		StepsResolved:  metrics.stepsResolved.Load(),
		StepsRejected:  metrics.stepsRejected.Load(),
		HubsBusy:       metrics.hubsBusy.Load(),
		WSConnections:  metrics.wsConnections.Load(),
	}
}
