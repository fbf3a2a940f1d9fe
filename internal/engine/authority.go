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

// CheckAuthority implements spec §4.7. submitterSide is the side the
// caller resolved the submitting coach to (empty if the coach controls
// neither team in this match); it is the outer transport's job to
// resolve coach identity into a Side, not the core's.
//
// Allowed when the submitter coaches match.CurrentSide, or when the
// step is setKickoff (either coach may drive the between-half /
// between-touchdown reset).
func CheckAuthority(match *Match, submitterSide Side, kind StepKind) *Error {
	if kind == StepSetKickoff {
		return nil
	}
	if submitterSide == match.CurrentSide {
		return nil
	}
	return NewError(KindAuthorityMismatch, "submitter does not coach the acting side")
}
