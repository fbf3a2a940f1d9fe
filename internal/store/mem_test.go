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

package store

import (
	"testing"

	"github.com/ttbt-io/gridiron/internal/engine"
)

func newTestMatchState(id string) *engine.MatchState {
	return engine.NewMatchState(&engine.Match{ID: id}, nil)
}

func TestMemStoreCreateAndLoadMatch(t *testing.T) {
	m := NewMemStore()
	state := newTestMatchState("m1")
	if err := m.CreateMatch(state); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	got, err := m.LoadMatch("m1")
	if err != nil {
		t.Fatalf("LoadMatch: %v", err)
	}
	if got.Match.ID != "m1" {
		t.Errorf("ID = %q, want m1", got.Match.ID)
	}
}

func TestMemStoreCreateMatchConflict(t *testing.T) {
	m := NewMemStore()
	state := newTestMatchState("m1")
	if err := m.CreateMatch(state); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if err := m.CreateMatch(state); err != ErrConflict {
		t.Errorf("second CreateMatch err = %v, want ErrConflict", err)
	}
}

func TestMemStoreLoadMissingMatch(t *testing.T) {
	m := NewMemStore()
	if _, err := m.LoadMatch("nope"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemStoreLatestHistoryPositionEmpty(t *testing.T) {
	m := NewMemStore()
	state := newTestMatchState("m1")
	m.CreateMatch(state)
	pos, exists, err := m.LatestHistoryPosition("m1")
	if err != nil {
		t.Fatalf("LatestHistoryPosition: %v", err)
	}
	if exists {
		t.Error("exists = true, want false for a match with no history yet")
	}
	if pos != 0 {
		t.Errorf("pos = %d, want 0", pos)
	}
}

func TestMemStoreCommitStepAndListHistory(t *testing.T) {
	m := NewMemStore()
	state := newTestMatchState("m1")
	m.CreateMatch(state)

	step0 := engine.Step{MatchID: "m1", HistoryPosition: 0, StepType: engine.StepEndTurn}
	if err := m.CommitStep("m1", 0, step0, state); err != nil {
		t.Fatalf("CommitStep: %v", err)
	}
	pos, exists, err := m.LatestHistoryPosition("m1")
	if err != nil || !exists || pos != 0 {
		t.Fatalf("LatestHistoryPosition = (%d, %v, %v), want (0, true, nil)", pos, exists, err)
	}

	step1 := engine.Step{MatchID: "m1", HistoryPosition: 1, StepType: engine.StepEndTurn}
	if err := m.CommitStep("m1", 1, step1, state); err != nil {
		t.Fatalf("CommitStep: %v", err)
	}

	history, err := m.ListHistory("m1")
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	if history[0].HistoryPosition != 0 || history[1].HistoryPosition != 1 {
		t.Errorf("history out of order: %+v", history)
	}
}

func TestMemStoreCommitStepConflict(t *testing.T) {
	m := NewMemStore()
	state := newTestMatchState("m1")
	m.CreateMatch(state)
	step := engine.Step{MatchID: "m1", HistoryPosition: 0}
	if err := m.CommitStep("m1", 0, step, state); err != nil {
		t.Fatalf("CommitStep: %v", err)
	}
	if err := m.CommitStep("m1", 0, step, state); err != ErrConflict {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestMemStoreCommitStepUnknownMatch(t *testing.T) {
	m := NewMemStore()
	step := engine.Step{MatchID: "ghost", HistoryPosition: 0}
	if err := m.CommitStep("ghost", 0, step, nil); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemStoreTeamRoundTrip(t *testing.T) {
	m := NewMemStore()
	team := engine.Team{ID: "t1", CoachID: "coach@example.com", Name: "Reavers"}
	if err := m.SaveTeam(team); err != nil {
		t.Fatalf("SaveTeam: %v", err)
	}
	got, err := m.LoadTeam("t1")
	if err != nil {
		t.Fatalf("LoadTeam: %v", err)
	}
	if got.CoachID != "coach@example.com" {
		t.Errorf("CoachID = %q, want coach@example.com", got.CoachID)
	}
}

func TestMemStoreLoadMissingTeam(t *testing.T) {
	m := NewMemStore()
	if _, err := m.LoadTeam("nope"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
