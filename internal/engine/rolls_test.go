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

func TestRollBlockDiceMapsFaces(t *testing.T) {
	d := NewScriptedDice(1, 2, 3, 4, 5, 6)
	roll := RollBlockDice(d, 6)
	want := []BlockOutcome{BlockAttackerDown, BlockBothDown, BlockPushed, BlockPushed, BlockDefenderStumbles, BlockDefenderDown}
	for i, w := range want {
		if roll.Dice[i] != w {
			t.Errorf("face[%d] = %v, want %v", i, roll.Dice[i], w)
		}
	}
}

func TestRollArmourSuccessThreshold(t *testing.T) {
	d := NewScriptedDice(4, 4) // raw 8
	roll := RollArmour(d, 7, 0)
	if !roll.Success {
		t.Error("8 vs AV 7 should break armour")
	}
	if roll.Modified != 8 {
		t.Errorf("Modified = %d, want 8", roll.Modified)
	}
}

func TestRollArmourFailsOnTie(t *testing.T) {
	d := NewScriptedDice(4, 3) // raw 7
	roll := RollArmour(d, 7, 0)
	if roll.Success {
		t.Error("7 vs AV 7 should not break armour (strictly greater required)")
	}
}

func TestRollArmourIsDouble(t *testing.T) {
	d := NewScriptedDice(5, 5)
	roll := RollArmour(d, 7, 0)
	if !roll.IsDouble() {
		t.Error("expected IsDouble() true for 5,5")
	}
	d2 := NewScriptedDice(5, 6)
	roll2 := RollArmour(d2, 7, 0)
	if roll2.IsDouble() {
		t.Error("expected IsDouble() false for 5,6")
	}
}

func TestRollInjuryOutcomes(t *testing.T) {
	cases := []struct {
		name     string
		dice     [2]int
		modifier int
		thick    bool
		want     InjuryOutcome
	}{
		{"low total stunned", [2]int{2, 3}, 0, false, InjuryStunned},
		{"8 with thick skull stays stunned", [2]int{4, 4}, 0, true, InjuryStunned},
		{"8 without thick skull is KO", [2]int{4, 4}, 0, false, InjuryKnockedOut},
		{"9 is KO", [2]int{4, 5}, 0, false, InjuryKnockedOut},
		{"10+ is casualty", [2]int{5, 5}, 0, false, InjuryCasualty},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := NewScriptedDice(c.dice[0], c.dice[1])
			roll := RollInjury(d, c.modifier, c.thick, false)
			if roll.Outcome != c.want {
				t.Errorf("Outcome = %v, want %v", roll.Outcome, c.want)
			}
		})
	}
}

func TestRollInjuryRegenerationUpgrade(t *testing.T) {
	// 6,6 = casualty; regen roll of 4 upgrades it.
	d := NewScriptedDice(6, 6, 4)
	roll := RollInjury(d, 0, false, true)
	if roll.Outcome != InjuryRegenerated {
		t.Errorf("Outcome = %v, want InjuryRegenerated", roll.Outcome)
	}
}

func TestRollInjuryRegenerationFails(t *testing.T) {
	d := NewScriptedDice(6, 6, 3)
	roll := RollInjury(d, 0, false, true)
	if roll.Outcome != InjuryCasualty {
		t.Errorf("Outcome = %v, want InjuryCasualty (regen roll failed)", roll.Outcome)
	}
}

func TestRollAgilityEdgeRolls(t *testing.T) {
	always1 := NewScriptedDice(1)
	if RollAgility(always1, 6, 10).Success {
		t.Error("a raw roll of 1 must always fail")
	}
	always6 := NewScriptedDice(6)
	if !RollAgility(always6, 1, -10).Success {
		t.Error("a raw roll of 6 must always succeed")
	}
}

func TestRollAgilityMiddleCompareToRequired(t *testing.T) {
	d := NewScriptedDice(4)
	roll := RollAgility(d, 3, 0) // required = 7 - 3 = 4
	if !roll.Success {
		t.Errorf("modified 4 should meet required 4")
	}
}

func TestRollScatterStopsAtEdge(t *testing.T) {
	// compass 4 is dx=-1, dy=0; starting at x=0 leaves the pitch immediately.
	d := NewScriptedDice(4)
	roll := RollScatter(d, 0, 5, 1)
	if roll.Landed {
		t.Error("scatter off the edge of the pitch should not land")
	}
	if roll.LastX != 0 || roll.LastY != 5 {
		t.Errorf("LastX/LastY = %d/%d, want the last on-pitch square (0,5)", roll.LastX, roll.LastY)
	}
}

func TestRollScatterLandsOnPitch(t *testing.T) {
	d := NewScriptedDice(8) // dx=1, dy=1
	roll := RollScatter(d, 5, 5, 2)
	if !roll.Landed {
		t.Fatal("expected the scatter to land on pitch")
	}
	if roll.X1 != 7 || roll.Y1 != 7 {
		t.Errorf("X1/Y1 = %d/%d, want (7,7)", roll.X1, roll.Y1)
	}
}
