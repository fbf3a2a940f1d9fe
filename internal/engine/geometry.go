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

// OnPitch reports whether (x, y) is a legal pitch square.
func OnPitch(x, y int) bool {
	return x >= 0 && x < PitchWidth && y >= 0 && y < PitchHeight
}

// PassRange is the classification of a pass by its absolute deltas.
type PassRange string

const (
	RangeQuickPass  PassRange = "quickPass"
	RangeShortPass  PassRange = "shortPass"
	RangeLongPass   PassRange = "longPass"
	RangeLongBomb   PassRange = "longBomb"
	RangeOutOfRange PassRange = "outOfRange"
)

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ClassifyPassRange implements the lexicographic range table of spec §4.1:
// the first matching class wins, in the order quickPass, shortPass,
// longPass, longBomb, outOfRange.
func ClassifyPassRange(dxSigned, dySigned int) PassRange {
	dx, dy := abs(dxSigned), abs(dySigned)

	switch {
	case (dx <= 1 && dy <= 3) || (dx == 2 && dy <= 2) || (dx == 3 && dy <= 1):
		return RangeQuickPass
	}
	switch {
	case (dx <= 3 && dy <= 6) || (dx == 4 && dy <= 5) || (dx == 5 && dy <= 4) || (dx == 6 && dy <= 3):
		return RangeShortPass
	}
	switch {
	case (dx <= 2 && dy <= 10) || (dx <= 4 && dy <= 9) || (dx <= 6 && dy <= 8) ||
		(dx == 7 && dy <= 7) || (dx == 8 && dy <= 6) || (dx == 9 && dy <= 4) || (dx == 10 && dy <= 2):
		return RangeLongPass
	}
	switch {
	case (dx <= 1 && dy <= 13) || (dx <= 4 && dy <= 12) || (dx <= 6 && dy <= 11) ||
		(dx <= 8 && dy <= 10) || (dx == 9 && dy <= 9) || (dx == 10 && dy <= 8) ||
		(dx == 11 && dy <= 6) || (dx == 12 && dy <= 4) || (dx == 13 && dy <= 1):
		return RangeLongBomb
	}
	return RangeOutOfRange
}

// Modifier is the agility-roll modifier contributed by range alone,
// before the -tackleZones term is added (spec §4.5.2 "pass").
func (r PassRange) Modifier() int {
	switch r {
	case RangeQuickPass:
		return 1
	case RangeShortPass:
		return 0
	case RangeLongPass:
		return -1
	case RangeLongBomb:
		return -2
	default:
		return 0
	}
}

// CompassDelta decodes an 8-direction compass index (1..8) into a unit
// (dx, dy) step, per spec §4.1: {1,4,6}=>dx=-1, {3,5,8}=>dx=+1,
// {1,2,3}=>dy=-1, {6,7,8}=>dy=+1, otherwise zero on that axis.
func CompassDelta(d int) (dx, dy int) {
	switch d {
	case 1, 4, 6:
		dx = -1
	case 3, 5, 8:
		dx = 1
	}
	switch d {
	case 1, 2, 3:
		dy = -1
	case 6, 7, 8:
		dy = 1
	}
	return dx, dy
}

// Edge identifies which sideline the ball crossed, used by throw-ins.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// EdgeFromPosition classifies which boundary (lastX, lastY) sits against.
// Corners resolve top/bottom before left/right, so a ball leaving near a
// corner is treated as crossing the sideline first.
func EdgeFromPosition(x, y int) Edge {
	switch {
	case y <= 0:
		return EdgeTop
	case y >= PitchHeight-1:
		return EdgeBottom
	case x <= 0:
		return EdgeLeft
	default:
		return EdgeRight
	}
}

// ThrowInCompass combines a 3-direction throw-in roll (1..3) with the
// edge the ball crossed into the 8-direction compass space, per spec
// §4.1: final = direction + 2*edge - 1, taken mod 8 into 1..8. The
// "-1" variant is preferred per spec §9's resolved source-version
// ambiguity over "+2*edge" vs "+2*edge-1".
func ThrowInCompass(direction int, edge Edge) int {
	raw := direction + 2*int(edge) - 1
	// fold into 1..8
	raw = ((raw - 1) % 8)
	if raw < 0 {
		raw += 8
	}
	return raw + 1
}

// Clamp returns (x, y) restricted to the pitch bounds.
func Clamp(x, y int) (int, int) {
	if x < 0 {
		x = 0
	} else if x >= PitchWidth {
		x = PitchWidth - 1
	}
	if y < 0 {
		y = 0
	} else if y >= PitchHeight {
		y = PitchHeight - 1
	}
	return x, y
}

// Adjacent reports whether two squares are within Chebyshev distance 1
// (and not the same square) — the shape tackle zones and foul/block
// targeting use throughout.
func Adjacent(x1, y1, x2, y2 int) bool {
	if x1 == x2 && y1 == y2 {
		return false
	}
	return abs(x1-x2) <= 1 && abs(y1-y2) <= 1
}
