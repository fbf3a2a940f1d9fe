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
	"sync"

	"github.com/ttbt-io/gridiron/internal/engine"
)

// MemStore is an in-memory Store for tests. A single mutex guards every match, which is fine at
// test scale; production code uses BoltStore.
type MemStore struct {
	mu      sync.Mutex
	matches map[string]*engine.MatchState
	history map[string][]engine.Step
	teams   map[string]engine.Team
}

func NewMemStore() *MemStore {
	return &MemStore{
		matches: make(map[string]*engine.MatchState),
		history: make(map[string][]engine.Step),
		teams:   make(map[string]engine.Team),
	}
}

func (m *MemStore) SaveTeam(team engine.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams[team.ID] = team
	return nil
}

func (m *MemStore) LoadTeam(teamID string) (engine.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.teams[teamID]
	if !ok {
		return engine.Team{}, ErrNotFound
	}
	return t, nil
}

func (m *MemStore) CreateMatch(state *engine.MatchState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.matches[state.Match.ID]; ok {
		return ErrConflict
	}
	m.matches[state.Match.ID] = state
	m.history[state.Match.ID] = nil
	return nil
}

func (m *MemStore) LoadMatch(matchID string) (*engine.MatchState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.matches[matchID]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *MemStore) LatestHistoryPosition(matchID string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.history[matchID]
	if !ok {
		return 0, false, ErrNotFound
	}
	if len(h) == 0 {
		return 0, false, nil
	}
	return h[len(h)-1].HistoryPosition, true, nil
}

func (m *MemStore) CommitStep(matchID string, position int, step engine.Step, state *engine.MatchState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.matches[matchID]; !ok {
		return ErrNotFound
	}
	for _, s := range m.history[matchID] {
		if s.HistoryPosition == position {
			return ErrConflict
		}
	}
	m.history[matchID] = append(m.history[matchID], step)
	m.matches[matchID] = state
	return nil
}

func (m *MemStore) ListHistory(matchID string) ([]engine.Step, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.history[matchID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]engine.Step, len(h))
	copy(out, h)
	return out, nil
}

func (m *MemStore) Close() error { return nil }
