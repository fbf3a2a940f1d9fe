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

// Package store implements the persistence interface spec.md §6
// requires of the core: atomic per-step transactions, a uniqueness
// constraint on (match_id, history_position), and indexed PIG lookup.
package store

import (
	"errors"

	"github.com/ttbt-io/gridiron/internal/engine"
)

// ErrNotFound is returned when a match has no persisted state yet.
var ErrNotFound = errors.New("store: match not found")

// ErrConflict is returned by CommitStep when history_position has
// already been written for this match — the "second-line race guard"
// spec §4.6 describes; History gate's own check should make this rare.
var ErrConflict = errors.New("store: history_position already committed")

// Store is what the core requires of persistence (spec.md §6).
// Implementations must make CommitStep atomic: the step record, the
// Match mutation, and the PIG mutations land together or not at all.
type Store interface {
	// CreateMatch persists the initial state for a newly created match.
	CreateMatch(state *engine.MatchState) error

	// LoadMatch returns the current Match + PIGs for a match, or
	// ErrNotFound.
	LoadMatch(matchID string) (*engine.MatchState, error)

	// LatestHistoryPosition returns the highest persisted
	// history_position for a match, and whether any step has been
	// persisted at all (0, false if the match has no history yet).
	LatestHistoryPosition(matchID string) (position int, exists bool, err error)

	// CommitStep atomically persists a resolved step at the given
	// position together with the fully mutated MatchState. Returns
	// ErrConflict if the position is already taken.
	CommitStep(matchID string, position int, step engine.Step, state *engine.MatchState) error

	// ListHistory returns all persisted steps for a match, ordered by
	// history_position ascending.
	ListHistory(matchID string) ([]engine.Step, error)

	// Close releases underlying resources.
	Close() error
}

// TeamStore persists the Team entities a Match's HomeTeam/AwayTeam
// fields reference. Team creation, rosters and league progression are
// out of scope; this only needs to answer "who coaches this team".
type TeamStore interface {
	SaveTeam(team engine.Team) error
	LoadTeam(teamID string) (engine.Team, error)
}
