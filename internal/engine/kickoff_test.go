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

func TestKickoffResetPlacesBandsAndResetsFlags(t *testing.T) {
	match := &Match{HomeFirstDirection: "right", TurnNumber: 1}
	home := &PIG{Side: SideHome, Number: 1, OnPitch: true, MA: 6, Down: true, HasBall: true}
	away := &PIG{Side: SideAway, Number: 1, OnPitch: true, MA: 6}
	pigs := []*PIG{home, away}

	KickoffReset(match, pigs, SideAway)

	hx, hy := home.Pos()
	if hx != 0 || hy != 0 {
		t.Errorf("home band position = (%d,%d), want (0,0) for normal orientation", hx, hy)
	}
	ax, ay := away.Pos()
	if ax != 25 || ay != 0 {
		t.Errorf("away band position = (%d,%d), want (25,0)", ax, ay)
	}
	if home.HasBall {
		t.Error("expected HasBall cleared by the kickoff reset")
	}
	if home.TackleZones {
		t.Error("a down player should not project tackle zones after kickoff reset")
	}
	if !away.TackleZones {
		t.Error("a standing player should project tackle zones after kickoff reset")
	}
	if match.NToPlace != 2 {
		t.Errorf("NToPlace = %d, want 2", match.NToPlace)
	}
	if match.KickingTeam != SideAway || match.CurrentSide != SideAway {
		t.Errorf("KickingTeam/CurrentSide = %v/%v, want away/away", match.KickingTeam, match.CurrentSide)
	}
	if match.TurnType != TurnPlacePlayers {
		t.Errorf("TurnType = %v, want placePlayers", match.TurnType)
	}
	if match.BallOnPitch() {
		t.Error("expected the ball cleared by the kickoff reset")
	}
}

func TestKickoffResetFlipsOrientationAfterHalftime(t *testing.T) {
	match := &Match{HomeFirstDirection: "right", TurnNumber: 9}
	home := &PIG{Side: SideHome, Number: 1, OnPitch: true, MA: 6}

	KickoffReset(match, []*PIG{home}, SideHome)

	hx, _ := home.Pos()
	if hx != 25 {
		t.Errorf("home x = %d, want 25 after the second-half orientation flip", hx)
	}
}

func TestResolveSetKickoffRevivesKnockedOutOnSuccess(t *testing.T) {
	r := NewResolver(NewScriptedDice(4)) // >= 4 revives
	match := &Match{HomeFirstDirection: "right", TurnNumber: 1}
	pig := &PIG{Side: SideHome, Number: 1, OnPitch: false, KnockedOut: true, MA: 6}
	state := NewMatchState(match, []*PIG{pig})

	props := mustMarshal(t, SetKickoffProperties{KickingTeam: SideHome})
	if _, err := r.Resolve(state, nil, Step{StepType: StepSetKickoff, Properties: props}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pig.KnockedOut {
		t.Error("a 4+ revival roll should clear KnockedOut")
	}
}

func TestResolvePlaceBallRequiresPlaceBallPhase(t *testing.T) {
	r := NewResolver(NewScriptedDice())
	match := &Match{TurnType: TurnPlacePlayers}
	state := NewMatchState(match, nil)

	props := mustMarshal(t, PlaceBallProperties{X: 12, Y: 7})
	out, err := r.Resolve(state, nil, Step{StepType: StepPlaceBall, Properties: props})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !decodePayload(t, out).Failed {
		t.Error("expected placeBall to fail outside the placeBall phase")
	}
}

func TestResolvePlaceBallSucceedsInPhase(t *testing.T) {
	r := NewResolver(NewScriptedDice())
	match := &Match{TurnType: TurnPlaceBall}
	state := NewMatchState(match, nil)

	props := mustMarshal(t, PlaceBallProperties{X: 12, Y: 7})
	if _, err := r.Resolve(state, nil, Step{StepType: StepPlaceBall, Properties: props}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	bx, by := *match.XBall, *match.YBall
	if bx != 12 || by != 7 {
		t.Errorf("ball = (%d,%d), want (12,7)", bx, by)
	}
}

func TestResolvePlacePlayerSubsBenchesPlayer(t *testing.T) {
	r := NewResolver(NewScriptedDice())
	pig := &PIG{Side: SideHome, Number: 1, OnPitch: true}
	state := NewMatchState(&Match{}, []*PIG{pig})

	props := mustMarshal(t, PlacePlayerProperties{Side: SideHome, Number: 1, Subs: true})
	if _, err := r.Resolve(state, nil, Step{StepType: StepPlacePlayer, Properties: props}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pig.OnPitch {
		t.Error("expected Subs=true to bench the player")
	}
}

func TestResolveSubmitPlayersAdvancesToPlaceBallWhenDone(t *testing.T) {
	r := NewResolver(NewScriptedDice())
	match := &Match{NToPlace: 1, CurrentSide: SideHome, TurnType: TurnPlacePlayers}
	state := NewMatchState(match, nil)

	if _, err := r.Resolve(state, nil, Step{StepType: StepSubmitPlayers}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if match.NToPlace != 0 {
		t.Errorf("NToPlace = %d, want 0", match.NToPlace)
	}
	if match.TurnType != TurnPlaceBall {
		t.Errorf("TurnType = %v, want placeBall once both sides have submitted", match.TurnType)
	}
	if match.CurrentSide != SideAway {
		t.Errorf("CurrentSide = %v, want away (flipped for the other side's turn)", match.CurrentSide)
	}
}

func TestResolveSubmitBallTouchbackWhenVectorLeavesPitch(t *testing.T) {
	r := NewResolver(NewScriptedDice(6, 1)) // distance 6, single direction 1 (dx=-1,dy=-1)
	match := &Match{CurrentSide: SideHome}
	match.SetBall(0, 0)
	state := NewMatchState(match, nil)

	out, err := r.Resolve(state, nil, Step{StepType: StepSubmitBall})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	var result SubmitBallResult
	payload := decodePayload(t, out)
	if err := decodeProps(payload.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if !result.Touchback {
		t.Error("expected the ball landing off the pitch to produce a touchback")
	}
	if match.TurnType != TurnTouchback {
		t.Errorf("TurnType = %v, want touchback", match.TurnType)
	}
	if match.CurrentSide != SideAway {
		t.Errorf("CurrentSide = %v, want away after a touchback flip", match.CurrentSide)
	}
	if match.BallOnPitch() {
		t.Error("expected the ball cleared on touchback")
	}
}

func TestResolveSubmitBallMovesFullDistanceAsSingleVector(t *testing.T) {
	r := NewResolver(NewScriptedDice(3, 8)) // distance 3, single direction 8 (dx=1,dy=1)
	match := &Match{CurrentSide: SideHome}
	match.SetBall(5, 5)
	state := NewMatchState(match, nil)

	out, err := r.Resolve(state, nil, Step{StepType: StepSubmitBall})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	var result SubmitBallResult
	payload := decodePayload(t, out)
	if err := decodeProps(payload.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result.Touchback {
		t.Fatal("expected the ball to land on the pitch, not touchback")
	}
	if result.Direction != 8 {
		t.Errorf("Direction = %d, want 8 (only one direction die rolled)", result.Direction)
	}
	if result.X1 != 8 || result.Y1 != 8 {
		t.Errorf("landing = (%d,%d), want (8,8) (distance 3 applied once along the single direction, not per-square)", result.X1, result.Y1)
	}
	bx, by := *match.XBall, *match.YBall
	if bx != 8 || by != 8 {
		t.Errorf("ball = (%d,%d), want (8,8)", bx, by)
	}
}

func TestResolveTouchbackGivesReceiverTheBall(t *testing.T) {
	r := NewResolver(NewScriptedDice())
	x, y := 10, 7
	pig := &PIG{Side: SideAway, Number: 1, Xpos: &x, Ypos: &y, OnPitch: true}
	state := NewMatchState(&Match{}, []*PIG{pig})

	props := mustMarshal(t, TouchbackProperties{Side: SideAway, Number: 1})
	if _, err := r.Resolve(state, nil, Step{StepType: StepTouchback, Properties: props}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !pig.HasBall {
		t.Error("expected the nominated receiver to be given the ball")
	}
	bx, by := *state.Match.XBall, *state.Match.YBall
	if bx != 10 || by != 7 {
		t.Errorf("ball = (%d,%d), want (10,7)", bx, by)
	}
}

func TestResolveSubmitTouchbackReturnsToNormalPlay(t *testing.T) {
	r := NewResolver(NewScriptedDice())
	match := &Match{TurnType: TurnTouchback, CurrentSide: SideAway}
	state := NewMatchState(match, nil)

	if _, err := r.Resolve(state, nil, Step{StepType: StepSubmitTouchback}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if match.TurnType != TurnNormal {
		t.Errorf("TurnType = %v, want normal", match.TurnType)
	}
	if match.CurrentSide != SideHome {
		t.Errorf("CurrentSide = %v, want home (flipped back to the kicking side)", match.CurrentSide)
	}
}

func TestResolveEndKickoffReturnsToNormalPlay(t *testing.T) {
	r := NewResolver(NewScriptedDice())
	match := &Match{TurnType: TurnPlaceBall, CurrentSide: SideHome}
	state := NewMatchState(match, nil)

	if _, err := r.Resolve(state, nil, Step{StepType: StepEndKickoff}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if match.TurnType != TurnNormal {
		t.Errorf("TurnType = %v, want normal", match.TurnType)
	}
}
