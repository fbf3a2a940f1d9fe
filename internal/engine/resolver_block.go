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

import (
	json "github.com/goccy/go-json"
)

// BlockProperties is the submitted payload for a "block" step.
type BlockProperties struct {
	Attacker PlayerRef `json:"attacker"`
	Defender PlayerRef `json:"defender"`
}

type BlockResult struct {
	RawAttackSt  int          `json:"rawAttackSt"`
	RawDefenceSt int          `json:"rawDefenceSt"`
	AttackSt     int          `json:"attackSt"`
	DefenceSt    int          `json:"defenceSt"`
	NDice        int          `json:"nDice"`
	Dice         []BlockOutcome `json:"dice"`
	ChooserSide  Side         `json:"chooserSide"`
}

// resolveBlock implements spec §4.5.2 "block".
func (r *Resolver) resolveBlock(state *MatchState, action string, raw json.RawMessage) stepOutcome {
	var props BlockProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed block properties", err)}
	}
	attacker, ok := state.Lookup(props.Attacker.Side, props.Attacker.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown attacker")}
	}
	defender, ok := state.Lookup(props.Defender.Side, props.Defender.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown defender")}
	}

	attackAssist, defenceAssist := BlockAssists(state, attacker, defender)
	rawAttack, rawDefence := attacker.ST, defender.ST
	attackSt, defenceSt := rawAttack+attackAssist, rawDefence+defenceAssist

	nDice := BlockDiceCount(attackSt, defenceSt)
	dice := RollBlockDice(r.Dice, nDice)

	chooser := attacker.Side
	if defenceSt > attackSt {
		chooser = defender.Side
	}

	if action == "blitz" {
		attacker.MovesRemaining--
		if attacker.MovesRemaining <= -2 || attacker.Action != "blitz" {
			attacker.FinishedAction = true
		}
	}

	return stepOutcome{result: BlockResult{
		RawAttackSt:  rawAttack,
		RawDefenceSt: rawDefence,
		AttackSt:     attackSt,
		DefenceSt:    defenceSt,
		NDice:        dice.NDice,
		Dice:         dice.Dice,
		ChooserSide:  chooser,
	}}
}

// SelectBlockDiceProperties is the submitted payload for a
// "selectBlockDice" step.
type SelectBlockDiceProperties struct {
	Attacker     PlayerRef    `json:"attacker"`
	Defender     PlayerRef    `json:"defender"`
	SelectedDice BlockOutcome `json:"selectedDice"`
}

// resolveSelectBlockDice implements spec §4.5.2 "selectBlockDice". It
// never mutates the match; it only emits the follow-up steps the client
// must submit next (spec §9 "synthesised follow-ups as data").
func (r *Resolver) resolveSelectBlockDice(state *MatchState, raw json.RawMessage) stepOutcome {
	var props SelectBlockDiceProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed selectBlockDice properties", err)}
	}
	attacker, ok := state.Lookup(props.Attacker.Side, props.Attacker.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown attacker")}
	}
	defender, ok := state.Lookup(props.Defender.Side, props.Defender.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown defender")}
	}

	knockDownStep := func(target *PIG, perpetrator *PIG) NextStep {
		props := map[string]interface{}{
			"side":   target.Side,
			"number": target.Number,
		}
		if perpetrator.HasSkill(SkillMightyBlow) {
			if perpetrator == defender {
				props["mightyBlow"] = "armour"
			} else {
				props["mightyBlow"] = "injury"
			}
		}
		return NextStep{StepType: StepKnockDown, Properties: props}
	}

	var next []NextStep
	switch props.SelectedDice {
	case BlockAttackerDown:
		next = []NextStep{knockDownStep(attacker, attacker)}
	case BlockBothDown:
		if !defender.HasSkill(SkillBlock) {
			next = append(next, knockDownStep(defender, attacker))
		}
		if !attacker.HasSkill(SkillBlock) {
			next = append(next, knockDownStep(attacker, defender))
		}
	case BlockPushed:
		next = []NextStep{
			{StepType: StepPush, Properties: map[string]interface{}{"side": defender.Side, "number": defender.Number}},
			{StepType: StepFollowUp, Properties: map[string]interface{}{"attacker": props.Attacker}},
		}
	case BlockDefenderStumbles:
		next = []NextStep{
			{StepType: StepPush, Properties: map[string]interface{}{"side": defender.Side, "number": defender.Number}},
			{StepType: StepFollowUp, Properties: map[string]interface{}{"attacker": props.Attacker}},
		}
		if !defender.HasSkill(SkillDodge) {
			next = append(next, knockDownStep(defender, attacker))
		}
	case BlockDefenderDown:
		next = []NextStep{
			{StepType: StepPush, Properties: map[string]interface{}{"side": defender.Side, "number": defender.Number}},
			{StepType: StepFollowUp, Properties: map[string]interface{}{"attacker": props.Attacker}},
			knockDownStep(defender, attacker),
		}
	default:
		return stepOutcome{err: NewError(KindInvalidStep, "unknown selected dice outcome")}
	}

	return stepOutcome{next: next}
}

// KnockDownProperties is the submitted payload for a "knockDown" step.
type KnockDownProperties struct {
	Side       Side   `json:"side"`
	Number     int    `json:"number"`
	MightyBlow string `json:"mightyBlow"` // "", "armour", or "injury"
}

type KnockDownResult struct {
	Armour ArmourRoll  `json:"armourRoll"`
	Injury *InjuryRoll `json:"injuryRoll,omitempty"`
}

// resolveKnockDown implements spec §4.5.2 "knockDown".
func (r *Resolver) resolveKnockDown(state *MatchState, raw json.RawMessage) stepOutcome {
	var props KnockDownProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed knockDown properties", err)}
	}
	pig, ok := state.Lookup(props.Side, props.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown player")}
	}

	pig.Down = true
	pig.TackleZones = false
	pig.HasBall = false

	armourMod := 0
	if props.MightyBlow == "armour" {
		armourMod = 1
	}
	armour := RollArmour(r.Dice, pig.AV, armourMod)

	result := KnockDownResult{Armour: armour}
	if armour.Success {
		injuryMod := 0
		if props.MightyBlow == "injury" {
			injuryMod = 1
		}
		injury := RollInjury(r.Dice, injuryMod, pig.HasSkill(SkillThickSkull), pig.HasSkill(SkillRegen))
		applyInjuryOutcome(pig, injury)
		result.Injury = &injury
	}

	return stepOutcome{result: result}
}

// FoulProperties is the submitted payload for a "foul" step (filling
// spec.md's gap per SPEC_FULL.md §5).
type FoulProperties struct {
	Fouler PlayerRef `json:"fouler"`
	Target PlayerRef `json:"target"`
}

type FoulResult struct {
	Armour  ArmourRoll  `json:"armourRoll"`
	Injury  *InjuryRoll `json:"injuryRoll,omitempty"`
	SentOff bool        `json:"sentOff"`
}

// resolveFoul implements SPEC_FULL.md §5: fouls only resolve against a
// prone adjacent target and follow the same armour->injury gateway as
// knockDown, but any double on either roll sends the fouler off.
func (r *Resolver) resolveFoul(state *MatchState, raw json.RawMessage) stepOutcome {
	var props FoulProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed foul properties", err)}
	}
	fouler, ok := state.Lookup(props.Fouler.Side, props.Fouler.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown fouler")}
	}
	target, ok := state.Lookup(props.Target.Side, props.Target.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown target")}
	}
	if !target.Down {
		return stepOutcome{err: NewError(KindInvalidStep, "foul target is not down")}
	}
	if !fouler.OnPitch || fouler.Down {
		return stepOutcome{err: NewError(KindInvalidStep, "fouler cannot act")}
	}
	fx, fy := fouler.Pos()
	tx, ty := target.Pos()
	if !Adjacent(fx, fy, tx, ty) {
		return stepOutcome{err: NewError(KindInvalidStep, "foul target not adjacent")}
	}

	// Tackle-zone counts against the fouler only: the prone target can't
	// assist itself. Reuse BlockAssists with the fouler cast as attacker.
	foulerAssist, _ := BlockAssists(state, fouler, target)

	armourMod := foulerAssist
	if fouler.HasSkill(SkillDirtyPlayer) {
		armourMod++
	}
	armour := RollArmour(r.Dice, target.AV, armourMod)

	result := FoulResult{Armour: armour}
	sentOff := armour.IsDouble()

	if armour.Success {
		injury := RollInjury(r.Dice, armourMod, target.HasSkill(SkillThickSkull), target.HasSkill(SkillRegen))
		applyInjuryOutcome(target, injury)
		result.Injury = &injury
		if injury.IsDouble() {
			sentOff = true
		}
	}

	result.SentOff = sentOff
	if sentOff {
		fouler.SentOff = true
		fouler.OnPitch = false
	}
	fouler.FinishedAction = true

	return stepOutcome{result: result}
}
