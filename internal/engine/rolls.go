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

// BlockOutcome is one face of a block die.
type BlockOutcome string

const (
	BlockAttackerDown    BlockOutcome = "attackerDown"
	BlockBothDown        BlockOutcome = "bothDown"
	BlockPushed          BlockOutcome = "pushed"
	BlockDefenderStumbles BlockOutcome = "defenderStumbles"
	BlockDefenderDown    BlockOutcome = "defenderDown"
)

var blockFaces = map[int]BlockOutcome{
	1: BlockAttackerDown,
	2: BlockBothDown,
	3: BlockPushed,
	4: BlockPushed,
	5: BlockDefenderStumbles,
	6: BlockDefenderDown,
}

// BlockRoll is the result of rolling n block dice.
type BlockRoll struct {
	NDice int            `json:"nDice"`
	Dice  []BlockOutcome `json:"dice"`
}

// RollBlockDice rolls n six-sided block dice and maps each face per
// spec §4.3.
func RollBlockDice(d DiceSource, n int) BlockRoll {
	raw := d.Roll(6, n)
	out := make([]BlockOutcome, len(raw))
	for i, v := range raw {
		out[i] = blockFaces[v]
	}
	return BlockRoll{NDice: n, Dice: out}
}

// ArmourRoll is a 2d6+modifier roll compared against the target's AV.
type ArmourRoll struct {
	Raw      [2]int `json:"raw"`
	Modifier int    `json:"modifier"`
	Result   int    `json:"rawResult"`
	Modified int    `json:"modifiedResult"`
	Success  bool   `json:"success"`
}

// RollArmour implements spec §4.3: success iff modifiedResult > AV.
func RollArmour(d DiceSource, av, modifier int) ArmourRoll {
	dice := d.Roll(6, 2)
	raw := dice[0] + dice[1]
	mod := raw + modifier
	return ArmourRoll{
		Raw:      [2]int{dice[0], dice[1]},
		Modifier: modifier,
		Result:   raw,
		Modified: mod,
		Success:  mod > av,
	}
}

// IsDouble reports whether the two raw dice of an armour or injury roll
// are equal (used by the foul sent-off rule, spec §5 of SPEC_FULL.md).
func (a ArmourRoll) IsDouble() bool { return a.Raw[0] == a.Raw[1] }

// InjuryOutcome is the tag an injury roll resolves to.
type InjuryOutcome string

const (
	InjuryStunned     InjuryOutcome = "stunned"
	InjuryKnockedOut  InjuryOutcome = "knockedOut"
	InjuryCasualty    InjuryOutcome = "casualty"
	InjuryRegenerated InjuryOutcome = "regenerated"
)

// InjuryRoll is a 2d6+modifier roll, further consulting the victim's
// skills (Thick Skull, Regeneration) per spec §4.3.
type InjuryRoll struct {
	Raw      [2]int        `json:"raw"`
	Modifier int           `json:"modifier"`
	Result   int           `json:"rawResult"`
	Modified int           `json:"modifiedResult"`
	Outcome  InjuryOutcome `json:"outcome"`
}

func (r InjuryRoll) IsDouble() bool { return r.Raw[0] == r.Raw[1] }

// RollInjury implements spec §4.3's injury table and the Regeneration
// upgrade. victimHasThickSkull and victimHasRegen are consulted directly
// since PIG skills are plain strings, not a richer effect model.
func RollInjury(d DiceSource, modifier int, victimHasThickSkull, victimHasRegen bool) InjuryRoll {
	dice := d.Roll(6, 2)
	raw := dice[0] + dice[1]
	mod := raw + modifier

	var outcome InjuryOutcome
	switch {
	case mod <= 7:
		outcome = InjuryStunned
	case mod == 8 && victimHasThickSkull:
		outcome = InjuryStunned
	case mod <= 9:
		outcome = InjuryKnockedOut
	default:
		outcome = InjuryCasualty
	}

	if outcome == InjuryCasualty && victimHasRegen {
		regen := d.Roll(6, 1)[0]
		if regen >= 4 {
			outcome = InjuryRegenerated
		}
	}

	return InjuryRoll{
		Raw:      [2]int{dice[0], dice[1]},
		Modifier: modifier,
		Result:   raw,
		Modified: mod,
		Outcome:  outcome,
	}
}

// AgilityRoll is a 1d6+modifier roll against a stat-derived target.
type AgilityRoll struct {
	Raw            int  `json:"raw"`
	Modifier       int  `json:"modifier"`
	Modified       int  `json:"modifiedResult"`
	RequiredResult int  `json:"requiredResult"`
	Success        bool `json:"success"`
}

// RollAgility implements spec §4.3: requiredResult = 7 - min(ag, 6); raw
// 1 always fails, raw 6 always succeeds, otherwise compare the modified
// result to the requirement.
func RollAgility(d DiceSource, ag, modifier int) AgilityRoll {
	raw := d.Roll(6, 1)[0]
	required := 7 - min(ag, 6)
	mod := raw + modifier

	var success bool
	switch raw {
	case 1:
		success = false
	case 6:
		success = true
	default:
		success = mod >= required
	}

	return AgilityRoll{
		Raw:            raw,
		Modifier:       modifier,
		Modified:       mod,
		RequiredResult: required,
		Success:        success,
	}
}

// ScatterRoll is the result of running the scatter procedure n times
// from a starting square (spec §4.3).
type ScatterRoll struct {
	Dice   []int `json:"dice"`
	LastX  int   `json:"lastX"`
	LastY  int   `json:"lastY"`
	X1     int   `json:"x1"`
	Y1     int   `json:"y1"`
	Landed bool  `json:"landed"` // false if it left the pitch before n steps completed
}

// RollScatter advances (x, y) by n compass steps, stopping early the
// instant the point leaves the pitch. lastX/lastY is always the final
// square that was on the pitch; x1/y1 is the final resting square and
// only meaningful when Landed is true.
func RollScatter(d DiceSource, x, y, n int) ScatterRoll {
	dice := d.Roll(8, n)
	lastX, lastY := x, y
	landed := true
	for _, die := range dice {
		dx, dy := CompassDelta(die)
		nx, ny := lastX+dx, lastY+dy
		if !OnPitch(nx, ny) {
			landed = false
			break
		}
		lastX, lastY = nx, ny
	}
	return ScatterRoll{Dice: dice, LastX: lastX, LastY: lastY, X1: lastX, Y1: lastY, Landed: landed}
}
