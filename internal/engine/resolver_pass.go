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

// PassProperties is the submitted payload for a "pass" step.
type PassProperties struct {
	Thrower PlayerRef `json:"thrower"`
	X       int       `json:"x"`
	Y       int       `json:"y"`
}

type PassResult struct {
	Range   PassRange   `json:"range"`
	Roll    AgilityRoll `json:"roll"`
	Fumble  bool        `json:"fumble"`
	Success bool        `json:"success"`
}

// resolvePass implements spec §4.5.2 "pass".
func (r *Resolver) resolvePass(state *MatchState, raw json.RawMessage) stepOutcome {
	var props PassProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed pass properties", err)}
	}
	thrower, ok := state.Lookup(props.Thrower.Side, props.Thrower.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown thrower")}
	}
	if !thrower.HasBall {
		return stepOutcome{err: NewError(KindInvalidStep, "thrower does not have the ball")}
	}

	tx, ty := thrower.Pos()
	dx, dy := props.X-tx, props.Y-ty
	rng := ClassifyPassRange(dx, dy)
	if rng == RangeOutOfRange {
		return stepOutcome{err: NewError(KindInvalidStep, "target square out of pass range")}
	}

	tz := TackleZones(state, thrower, nil)
	modifier := rng.Modifier() - tz
	roll := RollAgility(r.Dice, thrower.AG, modifier)

	fumble := min(roll.Raw, roll.Modified) <= 1

	thrower.HasBall = false
	thrower.FinishedAction = true

	if !fumble {
		state.Match.SetBall(props.X, props.Y)
	}
	// A fumble leaves the ball at the thrower's own square; a non-fumble
	// failure still sends the ball to the target square (the receiver's
	// catch roll is a separate step).

	return stepOutcome{result: PassResult{Range: rng, Roll: roll, Fumble: fumble, Success: roll.Success}}
}

// HandOffProperties is the submitted payload for a "handOff" step.
type HandOffProperties struct {
	Thrower PlayerRef `json:"thrower"`
	X       int       `json:"x"`
	Y       int       `json:"y"`
}

type HandOffResult struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// resolveHandOff implements spec §4.5.2 "handOff": always succeeds.
func (r *Resolver) resolveHandOff(state *MatchState, raw json.RawMessage) stepOutcome {
	var props HandOffProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed handOff properties", err)}
	}
	thrower, ok := state.Lookup(props.Thrower.Side, props.Thrower.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown thrower")}
	}
	if !thrower.HasBall {
		return stepOutcome{err: NewError(KindInvalidStep, "thrower does not have the ball")}
	}
	thrower.HasBall = false
	thrower.FinishedAction = true
	state.Match.SetBall(props.X, props.Y)
	return stepOutcome{result: HandOffResult{X: props.X, Y: props.Y}}
}
