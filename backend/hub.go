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

package backend

import (
	"log"
	"sync"
	"time"

	"github.com/ttbt-io/gridiron/internal/engine"
	"github.com/ttbt-io/gridiron/internal/store"
)

// TeamLookup resolves a team ID to its engine.Team, used only to decide
// which Side (if any) a submitting coach controls.
type TeamLookup func(teamID string) (engine.Team, error)

// submitRequest is one coach's attempt to advance a match by one step.
// It is the Hub's only mutating entry point; every field Hub.run reads
// was already decoded by the HTTP layer.
type submitRequest struct {
	coachID string
	step    engine.Step
	reply   chan submitResponse
}

// submitResponse mirrors spec §6's submit-step response shape.
type submitResponse struct {
	Status string // "ok", "duplicate", "resend", "wrongUser"
	Start  int
	Step   engine.Step
	Err    error
}

// Hub is the single-goroutine-per-match serializer spec §5 requires:
// every submitted step for one match is processed by exactly one
// goroutine, one at a time, so history_position stays strictly dense
// and no two resolutions observe the same pre-mutation state. This is
// the same role the teacher's per-game Hub.run plays over ActionLog
// entries, retargeted from "game action" to "match step".
type Hub struct {
	matchID string

	requests   chan submitRequest
	register   chan *wsClient
	unregister chan *wsClient

	clients map[*wsClient]bool

	store    store.Store
	resolver *engine.Resolver
	teams    TeamLookup
	cache    *matchCache

	hm *HubManager
}

func newHub(matchID string, st store.Store, resolver *engine.Resolver, teams TeamLookup, cache *matchCache, hm *HubManager) *Hub {
	return &Hub{
		matchID:    matchID,
		requests:   make(chan submitRequest, 64),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		clients:    make(map[*wsClient]bool),
		store:      st,
		resolver:   resolver,
		teams:      teams,
		cache:      cache,
		hm:         hm,
	}
}

func (h *Hub) run() {
	idle := time.NewTicker(5 * time.Minute)
	defer idle.Stop()

	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case req := <-h.requests:
			h.handleSubmit(req)
		case <-idle.C:
			if len(h.clients) == 0 {
				h.hm.RemoveHub(h.matchID)
				return
			}
		}
	}
}

func (h *Hub) handleSubmit(req submitRequest) {
	recordStepSubmitted()
	state, ok := h.cache.get(h.matchID)
	if !ok {
		var err error
		state, err = h.store.LoadMatch(h.matchID)
		if err != nil {
			req.reply <- submitResponse{Err: err}
			return
		}
	}

	lastPos, exists, err := h.store.LatestHistoryPosition(h.matchID)
	if err != nil {
		req.reply <- submitResponse{Err: err}
		return
	}
	expected := 0
	if exists {
		expected = lastPos + 1
	}

	status, start := engine.ClassifyPosition(expected, req.step.HistoryPosition)
	switch status {
	case engine.StatusDuplicate:
		req.reply <- submitResponse{Status: "duplicate"}
		return
	case engine.StatusResend:
		req.reply <- submitResponse{Status: "resend", Start: start}
		return
	}

	side, _ := h.resolveSide(req.coachID, state.Match)
	if aerr := engine.CheckAuthority(state.Match, side, req.step.StepType); aerr != nil {
		recordStepRejected()
		req.reply <- submitResponse{Status: "wrongUser"}
		return
	}

	history, err := h.store.ListHistory(h.matchID)
	if err != nil {
		req.reply <- submitResponse{Err: err}
		return
	}

	resolved, rerr := h.resolver.Resolve(state, history, req.step)
	if rerr != nil {
		log.Printf("hub %s: resolver error on step %d (%s): %v", h.matchID, req.step.HistoryPosition, req.step.StepType, rerr)
		recordStepRejected()
		req.reply <- submitResponse{Err: rerr}
		return
	}
	resolved.HistoryPosition = expected
	resolved.MatchID = h.matchID

	if err := h.store.CommitStep(h.matchID, expected, resolved, state); err != nil {
		if err == store.ErrConflict {
			req.reply <- submitResponse{Status: "duplicate"}
			return
		}
		req.reply <- submitResponse{Err: err}
		return
	}
	h.cache.put(h.matchID, state)
	recordStepResolved()

	req.reply <- submitResponse{Status: "ok", Step: resolved}
	h.broadcastStep(resolved)
}

func (h *Hub) resolveSide(coachID string, match *engine.Match) (engine.Side, bool) {
	home, err := h.teams(match.HomeTeam)
	if err != nil {
		return "", false
	}
	away, err := h.teams(match.AwayTeam)
	if err != nil {
		return "", false
	}
	return ResolveSide(coachID, home, away)
}

// broadcastStep pushes the resolved step to every connected client,
// chiefly the coach who did not submit it (the submitter already got
// the result as the HTTP response).
func (h *Hub) broadcastStep(step engine.Step) {
	msg := wsMessage{Type: wsMsgStep, Step: &step}
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.Printf("hub %s: client send buffer full, dropping", h.matchID)
		}
	}
}

// HubManager lazily creates and tracks one Hub per match, mirroring the
// teacher's HubManager keyed by game/team ID.
type HubManager struct {
	mu   sync.Mutex
	hubs map[string]*Hub

	store    store.Store
	resolver *engine.Resolver
	teams    TeamLookup
	cache    *matchCache
}

// NewHubManager builds a manager backed by st and resolver, caching up
// to cacheSize match states in memory so a busy match's Hub does not
// round-trip to the store on every submitted step.
func NewHubManager(st store.Store, resolver *engine.Resolver, teams TeamLookup, cacheSize int) (*HubManager, error) {
	cache, err := newMatchCache(cacheSize)
	if err != nil {
		return nil, err
	}
	return &HubManager{
		hubs:     make(map[string]*Hub),
		store:    st,
		resolver: resolver,
		teams:    teams,
		cache:    cache,
	}, nil
}

func (hm *HubManager) GetHub(matchID string) *Hub {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	if hub, ok := hm.hubs[matchID]; ok {
		return hub
	}
	hub := newHub(matchID, hm.store, hm.resolver, hm.teams, hm.cache, hm)
	hm.hubs[matchID] = hub
	go hub.run()
	return hub
}

// CachedMatch returns the in-memory state for matchID if a Hub has
// already loaded it, letting read-only callers (the match-view handler)
// skip the store round-trip without going through the Hub goroutine.
func (hm *HubManager) CachedMatch(matchID string) (*engine.MatchState, bool) {
	return hm.cache.get(matchID)
}

func (hm *HubManager) RemoveHub(matchID string) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	delete(hm.hubs, matchID)
	hm.cache.invalidate(matchID)
}

// SubmitStep is the external entry point the HTTP layer calls: it hands
// the step to the match's Hub goroutine and blocks for the reply. The
// select/default pattern mirrors the teacher's hubBusyResponse: a full
// request channel means the hub is saturated, and callers should treat
// that as a transient failure rather than block the HTTP handler
// indefinitely.
func (hm *HubManager) SubmitStep(matchID, coachID string, step engine.Step) (submitResponse, bool) {
	hub := hm.GetHub(matchID)
	reply := make(chan submitResponse, 1)
	select {
	case hub.requests <- submitRequest{coachID: coachID, step: step, reply: reply}:
	default:
		recordHubBusy()
		return submitResponse{}, false
	}
	return <-reply, true
}
