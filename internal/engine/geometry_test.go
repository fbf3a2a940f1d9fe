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

import "testing"

func TestOnPitchBounds(t *testing.T) {
	if !OnPitch(0, 0) {
		t.Error("(0,0) should be on pitch")
	}
	if !OnPitch(PitchWidth-1, PitchHeight-1) {
		t.Error("bottom-right corner should be on pitch")
	}
	if OnPitch(-1, 0) || OnPitch(0, -1) {
		t.Error("negative coordinates should be off pitch")
	}
	if OnPitch(PitchWidth, 0) || OnPitch(0, PitchHeight) {
		t.Error("coordinates at the bound should be off pitch")
	}
}

func TestClassifyPassRange(t *testing.T) {
	cases := []struct {
		dx, dy int
		want   PassRange
	}{
		{0, 0, RangeQuickPass},
		{1, 3, RangeQuickPass},
		{3, 1, RangeQuickPass},
		{6, 3, RangeShortPass},
		{4, 5, RangeShortPass},
		{10, 2, RangeLongPass},
		{7, 7, RangeLongPass},
		{13, 1, RangeLongBomb},
		{9, 9, RangeLongBomb},
		{25, 14, RangeOutOfRange},
	}
	for _, c := range cases {
		if got := ClassifyPassRange(c.dx, c.dy); got != c.want {
			t.Errorf("ClassifyPassRange(%d, %d) = %v, want %v", c.dx, c.dy, got, c.want)
		}
	}
}

func TestClassifyPassRangeSignIndependent(t *testing.T) {
	if ClassifyPassRange(3, 1) != ClassifyPassRange(-3, -1) {
		t.Error("range classification should depend only on magnitude")
	}
}

func TestPassRangeModifier(t *testing.T) {
	cases := map[PassRange]int{
		RangeQuickPass:  1,
		RangeShortPass:  0,
		RangeLongPass:   -1,
		RangeLongBomb:   -2,
		RangeOutOfRange: 0,
	}
	for r, want := range cases {
		if got := r.Modifier(); got != want {
			t.Errorf("%v.Modifier() = %d, want %d", r, got, want)
		}
	}
}

func TestCompassDelta(t *testing.T) {
	cases := []struct {
		d      int
		dx, dy int
	}{
		{1, -1, -1},
		{2, 0, -1},
		{3, 1, -1},
		{4, -1, 0},
		{5, 1, 0},
		{6, -1, 1},
		{7, 0, 1},
		{8, 1, 1},
	}
	for _, c := range cases {
		dx, dy := CompassDelta(c.d)
		if dx != c.dx || dy != c.dy {
			t.Errorf("CompassDelta(%d) = (%d, %d), want (%d, %d)", c.d, dx, dy, c.dx, c.dy)
		}
	}
}

func TestEdgeFromPosition(t *testing.T) {
	cases := []struct {
		x, y int
		want Edge
	}{
		{5, 0, EdgeTop},
		{5, PitchHeight - 1, EdgeBottom},
		{0, 5, EdgeLeft},
		{PitchWidth - 1, 5, EdgeRight},
	}
	for _, c := range cases {
		if got := EdgeFromPosition(c.x, c.y); got != c.want {
			t.Errorf("EdgeFromPosition(%d, %d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestThrowInCompassFoldsIntoRange(t *testing.T) {
	for direction := 1; direction <= 3; direction++ {
		for edge := EdgeTop; edge <= EdgeLeft; edge++ {
			got := ThrowInCompass(direction, edge)
			if got < 1 || got > 8 {
				t.Fatalf("ThrowInCompass(%d, %v) = %d, want a value in [1, 8]", direction, edge, got)
			}
		}
	}
}

func TestThrowInCompassKnownValue(t *testing.T) {
	// direction=1, EdgeTop(0): raw = 1 + 0 - 1 = 0 -> folds to 8.
	if got := ThrowInCompass(1, EdgeTop); got != 8 {
		t.Errorf("ThrowInCompass(1, EdgeTop) = %d, want 8", got)
	}
}

func TestClamp(t *testing.T) {
	if x, y := Clamp(-5, -5); x != 0 || y != 0 {
		t.Errorf("Clamp(-5, -5) = (%d, %d), want (0, 0)", x, y)
	}
	if x, y := Clamp(PitchWidth+5, PitchHeight+5); x != PitchWidth-1 || y != PitchHeight-1 {
		t.Errorf("Clamp overflow = (%d, %d), want (%d, %d)", x, y, PitchWidth-1, PitchHeight-1)
	}
	if x, y := Clamp(3, 4); x != 3 || y != 4 {
		t.Errorf("Clamp in-bounds = (%d, %d), want (3, 4)", x, y)
	}
}

func TestAdjacent(t *testing.T) {
	if Adjacent(5, 5, 5, 5) {
		t.Error("a square is not adjacent to itself")
	}
	if !Adjacent(5, 5, 6, 6) {
		t.Error("diagonal neighbor should be adjacent")
	}
	if Adjacent(5, 5, 7, 5) {
		t.Error("distance 2 should not be adjacent")
	}
}
