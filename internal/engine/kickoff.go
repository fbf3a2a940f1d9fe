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
	"sort"

	json "github.com/goccy/go-json"
)

// KickoffReset implements spec §4.8's "Kickoff reset": band assignment,
// per-side placement walking ypos top to bottom, per-PIG flag reset, and
// the match-level kickoff fields.
//
// Known-bug note (spec §9): one source variant double-increments the
// inward x-shift when wrapping past ypos 14. This implementation applies
// the shift exactly once per wrap, the behaviour spec.md says to
// preserve, with the double-increment documented as a bug, not a
// variant to support.
func KickoffReset(match *Match, pigs []*PIG, kickingTeam Side) {
	normalOrientation := (match.HomeFirstDirection == "right" && match.TurnNumber <= 8) ||
		(match.HomeFirstDirection == "left" && match.TurnNumber >= 9)

	homeX, awayX := 0, 25
	if !normalOrientation {
		homeX, awayX = 25, 0
	}

	placeKickoffBand(pigs, SideHome, homeX)
	placeKickoffBand(pigs, SideAway, awayX)

	for _, p := range pigs {
		if !p.OnPitch {
			continue
		}
		p.MovesRemaining = p.MA
		p.Action = ""
		p.FinishedAction = false
		p.StunnedThisTurn = false
		p.HasBall = false
		p.TackleZones = !p.Down
	}

	match.NToPlace = 2
	match.KickingTeam = kickingTeam
	match.CurrentSide = kickingTeam
	match.ClearBall()
	match.TurnType = TurnPlacePlayers
}

// placeKickoffBand walks a side's on-pitch PIGs (stable, by number) top
// to bottom over ypos 0..13; on reaching ypos 14 it wraps back to ypos 0
// with a single inward x shift (see KickoffReset's bug note).
func placeKickoffBand(pigs []*PIG, side Side, x int) {
	var sidePigs []*PIG
	for _, p := range pigs {
		if p.Side == side && p.OnPitch {
			sidePigs = append(sidePigs, p)
		}
	}
	sort.Slice(sidePigs, func(i, j int) bool { return sidePigs[i].Number < sidePigs[j].Number })

	inward := 1
	if x == PitchWidth-1 {
		inward = -1
	}

	y := 0
	cx := x
	for _, p := range sidePigs {
		if y == 14 {
			y = 0
			cx += inward
		}
		p.SetPos(cx, y)
		y++
	}
}

// SetKickoffProperties is the submitted payload for a "setKickoff" step.
type SetKickoffProperties struct {
	KickingTeam Side `json:"kickingTeam"`
}

// resolveSetKickoff implements the "setKickoff" row of spec §4.8's table:
// revive knocked-out PIGs on a 1d6 >= 4, then run the kickoff reset.
func (r *Resolver) resolveSetKickoff(state *MatchState, raw json.RawMessage) stepOutcome {
	var props SetKickoffProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed setKickoff properties", err)}
	}
	for _, p := range state.All() {
		if p.KnockedOut {
			if r.Dice.Roll(6, 1)[0] >= 4 {
				p.KnockedOut = false
			}
		}
	}
	KickoffReset(state.Match, state.All(), props.KickingTeam)
	return stepOutcome{result: struct {
		KickingTeam Side `json:"kickingTeam"`
	}{props.KickingTeam}}
}

// PlaceBallProperties is the submitted payload for a "placeBall" step.
type PlaceBallProperties struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// resolvePlaceBall implements the "placeBall" row of spec §4.8's table.
func (r *Resolver) resolvePlaceBall(state *MatchState, raw json.RawMessage) stepOutcome {
	var props PlaceBallProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed placeBall properties", err)}
	}
	if state.Match.TurnType != TurnPlaceBall {
		return stepOutcome{err: NewError(KindInvalidStep, "not in placeBall phase")}
	}
	state.Match.SetBall(props.X, props.Y)
	return stepOutcome{result: struct {
		X int `json:"x"`
		Y int `json:"y"`
	}{props.X, props.Y}}
}

// PlacePlayerProperties is the submitted payload for a "placePlayer" step.
type PlacePlayerProperties struct {
	Side   Side `json:"side"`
	Number int  `json:"number"`
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Subs   bool `json:"subs"`
}

// resolvePlacePlayer implements the "placePlayer" row of spec §4.8's
// table: place on the pitch, or send to the bench when properties.subs.
func (r *Resolver) resolvePlacePlayer(state *MatchState, raw json.RawMessage) stepOutcome {
	var props PlacePlayerProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed placePlayer properties", err)}
	}
	pig, ok := state.Lookup(props.Side, props.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown player")}
	}
	if props.Subs {
		pig.OnPitch = false
	} else {
		pig.OnPitch = true
		pig.SetPos(props.X, props.Y)
	}
	return stepOutcome{result: props}
}

// resolveSubmitPlayers implements the "submitPlayers" row of spec §4.8's
// table.
func (r *Resolver) resolveSubmitPlayers(state *MatchState, raw json.RawMessage) stepOutcome {
	state.Match.NToPlace--
	if state.Match.NToPlace <= 0 {
		state.Match.TurnType = TurnPlaceBall
	}
	state.Match.CurrentSide = state.Match.CurrentSide.Opponent()
	return stepOutcome{result: struct {
		NToPlace int      `json:"nToPlace"`
		TurnType TurnType `json:"turnType"`
	}{state.Match.NToPlace, state.Match.TurnType}}
}

type SubmitBallResult struct {
	Distance  int  `json:"distance"`
	Direction int  `json:"direction"`
	X1        int  `json:"x1"`
	Y1        int  `json:"y1"`
	Landed    bool `json:"landed"`
	Touchback bool `json:"touchback"`
}

// resolveSubmitBall implements the "submitBall" row of spec §4.8's
// table: 1d6 distance and a single 1d8 direction, moving the ball the
// full distance in that one fixed direction rather than the generic
// "scatter" step's one-direction-roll-per-square walk.
func (r *Resolver) resolveSubmitBall(state *MatchState, raw json.RawMessage) stepOutcome {
	if !state.Match.BallOnPitch() {
		return stepOutcome{err: NewError(KindInvalidStep, "no ball placed to kick")}
	}
	distance := r.Dice.Roll(6, 1)[0]
	direction := r.Dice.Roll(8, 1)[0]
	dx, dy := CompassDelta(direction)
	x, y := *state.Match.XBall+distance*dx, *state.Match.YBall+distance*dy
	landed := OnPitch(x, y)

	result := SubmitBallResult{Distance: distance, Direction: direction, Landed: landed}
	if !landed {
		state.Match.ClearBall()
		state.Match.TurnType = TurnTouchback
		state.Match.CurrentSide = state.Match.CurrentSide.Opponent()
		result.Touchback = true
	} else {
		result.X1, result.Y1 = x, y
		state.Match.SetBall(x, y)
	}
	return stepOutcome{result: result}
}

// TouchbackProperties is the submitted payload for a "touchback" step.
type TouchbackProperties struct {
	Side   Side `json:"side"`
	Number int  `json:"number"`
}

// resolveTouchback implements the "touchback" row of spec §4.8's table:
// the receiving coach places the ball on a PIG, clearing any other
// carrier.
func (r *Resolver) resolveTouchback(state *MatchState, raw json.RawMessage) stepOutcome {
	var props TouchbackProperties
	if err := decodeProps(raw, &props); err != nil {
		return stepOutcome{err: Wrap(KindInvalidStep, "malformed touchback properties", err)}
	}
	pig, ok := state.Lookup(props.Side, props.Number)
	if !ok {
		return stepOutcome{err: NewError(KindInvalidStep, "unknown player")}
	}
	for _, p := range state.All() {
		p.HasBall = false
	}
	pig.HasBall = true
	x, y := pig.Pos()
	state.Match.SetBall(x, y)
	return stepOutcome{result: struct {
		X int `json:"x"`
		Y int `json:"y"`
	}{x, y}}
}

// resolveSubmitTouchback implements the "submitTouchback" row of spec
// §4.8's table: returns to normal play and flips current_side. On the
// touchback path submitBall has already handed current_side to the
// receiving side to place the ball, so this flip hands it back to the
// kicking side.
func (r *Resolver) resolveSubmitTouchback(state *MatchState, raw json.RawMessage) stepOutcome {
	state.Match.TurnType = TurnNormal
	state.Match.CurrentSide = state.Match.CurrentSide.Opponent()
	return stepOutcome{result: struct {
		TurnType    TurnType `json:"turnType"`
		CurrentSide Side     `json:"currentSide"`
	}{state.Match.TurnType, state.Match.CurrentSide}}
}

// resolveEndKickoff implements the "endKickoff" row of spec §4.8's
// table for the plain (non-touchback) path: the ball already landed
// on-pitch via submitBall, so no further side flip is needed here.
func (r *Resolver) resolveEndKickoff(state *MatchState, raw json.RawMessage) stepOutcome {
	state.Match.TurnType = TurnNormal
	return stepOutcome{result: struct {
		TurnType    TurnType `json:"turnType"`
		CurrentSide Side     `json:"currentSide"`
	}{state.Match.TurnType, state.Match.CurrentSide}}
}
