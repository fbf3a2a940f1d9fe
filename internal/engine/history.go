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

package engine

// GateStatus is the History gate's classification of a submitted step
// position against the highest persisted position for its match.
type GateStatus int

const (
	StatusNext GateStatus = iota
	StatusDuplicate
	StatusResend
)

// ClassifyPosition implements spec §4.6: given the next expected dense
// position and a submitted one, decide whether the step is the one we
// want next, a duplicate of something already persisted, or a gap the
// client must fill by resending from an earlier point.
func ClassifyPosition(expected, submitted int) (GateStatus, int) {
	switch {
	case submitted > expected:
		return StatusResend, expected
	case submitted < expected:
		return StatusDuplicate, 0
	default:
		return StatusNext, 0
	}
}

// CheckGate is the same classification surfaced as an *Error, for
// callers that want the §7 error-kind vocabulary directly instead of a
// GateStatus switch.
func CheckGate(expected, submitted int) *Error {
	status, start := ClassifyPosition(expected, submitted)
	switch status {
	case StatusResend:
		return ResendFrom(start)
	case StatusDuplicate:
		return NewError(KindHistoryDuplicate, "position already persisted")
	default:
		return nil
	}
}
