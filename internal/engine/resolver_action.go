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

// MoveProperties is the submitted payload for a "move" step.
type MoveProperties struct {
	Side   Side `json:"side"`
	Number int  `json:"number"`
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Dodge  bool `json:"dodge"`
}

type MoveResult struct {
	X       int          `json:"x"`
	Y       int          `json:"y"`
	Success bool         `json:"success"`
	Dodge   *AgilityRoll `json:"dodge,omitempty"`
}

// resolveMove implements spec §4.5.2 "move".
func (r *Resolver) resolveMove(state *MatchState, raw json.RawMessage) stepOutcome {
	var props MoveProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed move properties", err)}
	}
	pig, ok := state.Lookup(props.Side, props.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown player")}
	}
	if state.Match.CurrentSide != props.Side || state.Match.TurnType != TurnNormal {
		return stepOutcome{err: NewError(KindInvalidStep, "not this side's normal turn")}
	}
	if pig.Down || pig.FinishedAction {
		return stepOutcome{err: NewError(KindInvalidStep, "player cannot act")}
	}
	px, py := pig.Pos()
	if !Adjacent(px, py, props.X, props.Y) {
		return stepOutcome{err: NewError(KindInvalidStep, "destination not adjacent")}
	}

	result := MoveResult{X: props.X, Y: props.Y, Success: true}

	if props.Dodge {
		tz := TackleZones(state, pig, nil)
		roll := RollAgility(r.Dice, pig.AG, 1-tz)
		result.Dodge = &roll
		result.Success = roll.Success
	}

	pig.SetPos(props.X, props.Y)
	if pig.HasBall {
		state.Match.SetBall(props.X, props.Y)
	}
	pig.MovesRemaining--
	if pig.MovesRemaining <= -2 && (pig.Action == "move" || pig.Action == "blitz") {
		pig.FinishedAction = true
	}

	return stepOutcome{result: result}
}

// PushProperties is the submitted payload for a "push" step.
type PushProperties struct {
	Side     Side `json:"side"`
	Number   int  `json:"number"`
	X        int  `json:"x"`
	Y        int  `json:"y"`
	OffPitch bool `json:"offPitch"`
}

type PushResult struct {
	X          int         `json:"x"`
	Y          int         `json:"y"`
	InjuryRoll *InjuryRoll `json:"injuryRoll,omitempty"`
}

// resolvePush implements spec §4.5.2 "push".
func (r *Resolver) resolvePush(state *MatchState, raw json.RawMessage) stepOutcome {
	var props PushProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed push properties", err)}
	}
	pig, ok := state.Lookup(props.Side, props.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown player")}
	}

	pig.SetPos(props.X, props.Y)
	if pig.HasBall {
		state.Match.SetBall(props.X, props.Y)
	}

	result := PushResult{X: props.X, Y: props.Y}
	if props.OffPitch {
		pig.OnPitch = false
		roll := RollInjury(r.Dice, 0, pig.HasSkill(SkillThickSkull), pig.HasSkill(SkillRegen))
		applyInjuryOutcome(pig, roll)
		result.InjuryRoll = &roll
	}
	return stepOutcome{result: result}
}

// FollowUpProperties is the submitted payload for a "followUp" step.
type FollowUpProperties struct {
	Attacker PlayerRef `json:"attacker"`
	Choice   bool      `json:"choice"`
	X        int       `json:"x"`
	Y        int       `json:"y"`
}

type FollowUpResult struct {
	Moved bool `json:"moved"`
}

// resolveFollowUp implements spec §4.5.2 "followUp".
func (r *Resolver) resolveFollowUp(state *MatchState, raw json.RawMessage) stepOutcome {
	var props FollowUpProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed followUp properties", err)}
	}
	if !props.Choice {
		return stepOutcome{result: FollowUpResult{Moved: false}}
	}
	pig, ok := state.Lookup(props.Attacker.Side, props.Attacker.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown attacker")}
	}
	pig.SetPos(props.X, props.Y)
	if pig.HasBall {
		state.Match.SetBall(props.X, props.Y)
	}
	return stepOutcome{result: FollowUpResult{Moved: true}}
}

// StandUpProperties is the submitted payload for a "standUp" step.
type StandUpProperties struct {
	Side   Side `json:"side"`
	Number int  `json:"number"`
}

type StandUpResult struct {
	Roll    *int `json:"roll,omitempty"`
	Success bool `json:"success"`
}

// resolveStandUp implements spec §4.5.2 "standUp".
func (r *Resolver) resolveStandUp(state *MatchState, raw json.RawMessage) stepOutcome {
	var props StandUpProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed standUp properties", err)}
	}
	pig, ok := state.Lookup(props.Side, props.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown player")}
	}

	pig.MovesRemaining -= 3
	if pig.MovesRemaining <= -2 {
		pig.FinishedAction = true
	}

	result := StandUpResult{}
	if pig.MA < 3 {
		roll := r.Dice.Roll(6, 1)[0]
		result.Roll = &roll
		result.Success = roll >= 4
	} else {
		result.Success = true
	}
	if result.Success {
		pig.Down = false
		pig.TackleZones = true
	}
	return stepOutcome{result: result}
}

// PickUpProperties is the submitted payload for a "pickUp" step.
type PickUpProperties struct {
	Side   Side `json:"side"`
	Number int  `json:"number"`
}

// resolvePickUp implements spec §4.5.2 "pickUp".
func (r *Resolver) resolvePickUp(state *MatchState, raw json.RawMessage) stepOutcome {
	var props PickUpProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed pickUp properties", err)}
	}
	pig, ok := state.Lookup(props.Side, props.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown player")}
	}
	tz := TackleZones(state, pig, nil)
	roll := RollAgility(r.Dice, pig.AG, 1-tz)
	if roll.Success {
		pig.HasBall = true
	}
	return stepOutcome{result: roll}
}

// ScatterProperties is the submitted payload for a "scatter" step.
type ScatterProperties struct {
	NScatter int `json:"nScatter"`
}

// resolveScatter implements spec §4.5.2 "scatter".
func (r *Resolver) resolveScatter(state *MatchState, raw json.RawMessage) stepOutcome {
	var props ScatterProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed scatter properties", err)}
	}
	if !state.Match.BallOnPitch() {
		return stepOutcome{err: NewError(KindInvalidStep, "no ball on pitch to scatter")}
	}
	roll := RollScatter(r.Dice, *state.Match.XBall, *state.Match.YBall, props.NScatter)
	if roll.Landed {
		state.Match.SetBall(roll.X1, roll.Y1)
	} else {
		state.Match.ClearBall()
	}
	return stepOutcome{result: roll}
}

// CatchProperties is the submitted payload for a "catch" step.
type CatchProperties struct {
	Side     Side `json:"side"`
	Number   int  `json:"number"`
	Accurate bool `json:"accurate"`
}

type CatchResult struct {
	Roll    *AgilityRoll `json:"roll,omitempty"`
	Success bool         `json:"success"`
}

// resolveCatch implements spec §4.5.2 "catch".
func (r *Resolver) resolveCatch(state *MatchState, raw json.RawMessage) stepOutcome {
	var props CatchProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed catch properties", err)}
	}
	pig, ok := state.Lookup(props.Side, props.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown player")}
	}
	if pig.Down || pig.Effects.Has("Bone-head") || pig.Effects.Has("Really Stupid") {
		return stepOutcome{result: CatchResult{Success: false}}
	}
	tz := TackleZones(state, pig, nil)
	modifier := -tz
	if props.Accurate {
		modifier++
	}
	roll := RollAgility(r.Dice, pig.AG, modifier)
	if roll.Success {
		pig.HasBall = true
	}
	return stepOutcome{result: CatchResult{Roll: &roll, Success: roll.Success}}
}

// ThrowInProperties is the submitted payload for a "throwin" step.
type ThrowInProperties struct {
	LastX int `json:"lastX"`
	LastY int `json:"lastY"`
}

type ThrowInResult struct {
	Direction int  `json:"direction"`
	Distance  int  `json:"distance"`
	Compass   int  `json:"compass"`
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Clamped   bool `json:"clamped"`
}

// resolveThrowIn implements spec §4.5.2 "throwin".
func (r *Resolver) resolveThrowIn(state *MatchState, raw json.RawMessage) stepOutcome {
	var props ThrowInProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed throwin properties", err)}
	}
	edge := EdgeFromPosition(props.LastX, props.LastY)
	direction := r.Dice.Roll(3, 1)[0]
	distance := r.Dice.Roll(6, 2)
	dist := distance[0] + distance[1]

	compass := ThrowInCompass(direction, edge)
	dx, dy := CompassDelta(compass)
	x, y := props.LastX+dx*dist, props.LastY+dy*dist

	clamped := !OnPitch(x, y)
	if clamped {
		x, y = Clamp(x, y)
	}
	state.Match.SetBall(x, y)

	return stepOutcome{result: ThrowInResult{
		Direction: direction,
		Distance:  dist,
		Compass:   compass,
		X:         x,
		Y:         y,
		Clamped:   clamped,
	}}
}

// GoForItProperties is the submitted payload for a "goForIt" step.
type GoForItProperties struct {
	Side   Side `json:"side"`
	Number int  `json:"number"`
}

type GoForItResult struct {
	Roll    int  `json:"roll"`
	Success bool `json:"success"`
}

// resolveGoForIt implements spec §4.5.2 "goForIt".
func (r *Resolver) resolveGoForIt(state *MatchState, raw json.RawMessage) stepOutcome {
	roll := r.Dice.Roll(6, 1)[0]
	return stepOutcome{result: GoForItResult{Roll: roll, Success: roll != 1}}
}

func applyInjuryOutcome(pig *PIG, roll InjuryRoll) {
	switch roll.Outcome {
	case InjuryStunned:
		pig.Stunned = true
		pig.StunnedThisTurn = true
	case InjuryKnockedOut:
		pig.KnockedOut = true
		pig.OnPitch = false
	case InjuryCasualty:
		pig.Casualty = true
		pig.OnPitch = false
	case InjuryRegenerated:
		// Regeneration upgrades the outcome but the player still leaves
		// the pitch for the remainder of the match; only future-match
		// availability differs, tracked on Player not PIG.
		pig.Casualty = false
		pig.OnPitch = false
	}
}
