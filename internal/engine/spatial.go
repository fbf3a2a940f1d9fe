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

// TackleZones counts enemy tackle zones on p, per spec §4.4, optionally
// excluding one PIG (e.g. the blocker being evaluated doesn't count its
// own tackle zone against itself, and block assists exclude the
// defender/attacker being assisted against).
func TackleZones(state *MatchState, p *PIG, exclude *PIG) int {
	px, py := p.Pos()
	n := 0
	for _, o := range state.PIGs {
		if o == p || o == exclude {
			continue
		}
		if !o.OnPitch || !o.TackleZones || o.Side == p.Side {
			continue
		}
		ox, oy := o.Pos()
		if abs(ox-px) <= 1 && abs(oy-py) <= 1 {
			n++
		}
	}
	return n
}

// BlockAssists computes the assisting bonus each side contributes to a
// block, per spec §4.4: a same-side teammate of the attacker, adjacent
// to the defender, not the attacker itself, adds +1 to attack strength
// iff that teammate has zero enemy tackle zones on it excluding the
// defender. Defender assists are symmetric.
func BlockAssists(state *MatchState, attacker, defender *PIG) (attackAssists, defenceAssists int) {
	dx, dy := defender.Pos()
	ax, ay := attacker.Pos()

	for _, o := range state.PIGs {
		if o == attacker || o == defender || !o.OnPitch || o.Down {
			continue
		}
		ox, oy := o.Pos()
		if o.Side == attacker.Side && abs(ox-dx) <= 1 && abs(oy-dy) <= 1 {
			if TackleZones(state, o, defender) == 0 {
				attackAssists++
			}
		}
		if o.Side == defender.Side && abs(ox-ax) <= 1 && abs(oy-ay) <= 1 {
			if TackleZones(state, o, attacker) == 0 {
				defenceAssists++
			}
		}
	}
	return attackAssists, defenceAssists
}

// BlockDiceCount implements the standard strength-gateway: 3 dice if one
// strength is at least double the other, 2 if strictly greater in
// either direction, 1 if equal (spec §4.5.2 "block").
func BlockDiceCount(attackSt, defenceSt int) int {
	switch {
	case attackSt >= 2*defenceSt || defenceSt >= 2*attackSt:
		return 3
	case attackSt != defenceSt:
		return 2
	default:
		return 1
	}
}
