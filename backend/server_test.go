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
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/ttbt-io/gridiron/internal/engine"
	"github.com/ttbt-io/gridiron/internal/store"
)

// asCoach attaches a coach ID to the request context the same way the JWT
// middleware would, bypassing the need for a signed token in tests: a
// request with no auth cookie passes through the middleware unchanged, so
// a context value set here survives to the handler.
func asCoach(r *http.Request, coachID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), coachIDKey, coachID))
}

func newTestServer(t *testing.T, st store.Store) http.Handler {
	t.Helper()
	lookup := func(teamID string) (engine.Team, error) { return st.LoadTeam(teamID) }
	resolver := engine.NewResolver(engine.NewScriptedDice(6))
	hm, err := NewHubManager(st, resolver, lookup, 8)
	if err != nil {
		t.Fatalf("NewHubManager: %v", err)
	}
	return NewServerHandler(Options{Store: st, Teams: st, HubManager: hm})
}

func TestCreateMatchRequiresAuth(t *testing.T) {
	st := store.NewMemStore()
	handler := newTestServer(t, st)

	body := strings.NewReader(`{"homeTeam":{"coachId":"home@example.com"},"awayTeam":{"coachId":"away@example.com"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/match", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 (no authenticated coach)", rec.Code)
	}
}

func TestCreateMatchRejectsNonOwningCoach(t *testing.T) {
	st := store.NewMemStore()
	handler := newTestServer(t, st)

	body := strings.NewReader(`{"homeTeam":{"coachId":"home@example.com"},"awayTeam":{"coachId":"away@example.com"}}`)
	req := asCoach(httptest.NewRequest(http.MethodPost, "/api/match", body), "someone-else@example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 (coach owns neither team)", rec.Code)
	}
}

func TestCreateMatchSucceeds(t *testing.T) {
	st := store.NewMemStore()
	handler := newTestServer(t, st)

	body := strings.NewReader(`{"homeTeam":{"coachId":"home@example.com","rerolls":3},"awayTeam":{"coachId":"away@example.com","rerolls":3}}`)
	req := asCoach(httptest.NewRequest(http.MethodPost, "/api/match", body), "home@example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		MatchID string `json:"matchId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.MatchID == "" {
		t.Fatal("expected a non-empty matchId")
	}
	if _, err := st.LoadMatch(resp.MatchID); err != nil {
		t.Errorf("LoadMatch(%s): %v", resp.MatchID, err)
	}
}

func TestGetMatchInvalidID(t *testing.T) {
	st := store.NewMemStore()
	handler := newTestServer(t, st)

	req := httptest.NewRequest(http.MethodGet, "/api/match/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetMatchNotFound(t *testing.T) {
	st := store.NewMemStore()
	handler := newTestServer(t, st)

	req := httptest.NewRequest(http.MethodGet, "/api/match/3fa85f64-5717-4562-b3fc-2c963f66afa6", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetMatchReturnsViewWithETag(t *testing.T) {
	st := store.NewMemStore()
	handler := newTestServer(t, st)

	matchID := "3fa85f64-5717-4562-b3fc-2c963f66afa6"
	match := &engine.Match{ID: matchID, CurrentSide: engine.SideHome, TurnType: engine.TurnNormal}
	if err := st.CreateMatch(engine.NewMatchState(match, nil)); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/match/"+matchID, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("expected an ETag header")
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/match/"+matchID, nil)
	req2.Header.Set("If-None-Match", etag)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusNotModified {
		t.Errorf("conditional GET status = %d, want 304", rec2.Code)
	}
}

func TestSubmitStepInvalidID(t *testing.T) {
	st := store.NewMemStore()
	handler := newTestServer(t, st)

	req := asCoach(httptest.NewRequest(http.MethodPost, "/api/match/not-a-uuid/step", strings.NewReader(`{}`)), "home@example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSubmitStepUnauthenticated(t *testing.T) {
	st := store.NewMemStore()
	handler := newTestServer(t, st)

	matchID := "3fa85f64-5717-4562-b3fc-2c963f66afa6"
	match := &engine.Match{ID: matchID, CurrentSide: engine.SideHome, TurnType: engine.TurnNormal}
	if err := st.CreateMatch(engine.NewMatchState(match, nil)); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/match/"+matchID+"/step", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 (no authenticated coach)", rec.Code)
	}
}

func TestSubmitStepAcceptsValidStep(t *testing.T) {
	st := store.NewMemStore()
	if err := st.SaveTeam(engine.Team{ID: "home-team", CoachID: "home@example.com"}); err != nil {
		t.Fatalf("SaveTeam: %v", err)
	}
	if err := st.SaveTeam(engine.Team{ID: "away-team", CoachID: "away@example.com"}); err != nil {
		t.Fatalf("SaveTeam: %v", err)
	}
	handler := newTestServer(t, st)

	matchID := "3fa85f64-5717-4562-b3fc-2c963f66afa6"
	match := &engine.Match{ID: matchID, HomeTeam: "home-team", AwayTeam: "away-team", CurrentSide: engine.SideHome, TurnType: engine.TurnNormal}
	if err := st.CreateMatch(engine.NewMatchState(match, nil)); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	reqBody := `{"history_position":0,"step_type":"endTurn"}`
	req := asCoach(httptest.NewRequest(http.MethodPost, "/api/match/"+matchID+"/step", strings.NewReader(reqBody)), "home@example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("Status = %q, want ok", resp.Status)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	st := store.NewMemStore()
	handler := newTestServer(t, st)

	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestMeEndpointReturnsEmptyIDWhenAnonymous(t *testing.T) {
	st := store.NewMemStore()
	handler := newTestServer(t, st)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "" {
		t.Errorf("id = %q, want empty for an anonymous request", resp.ID)
	}
}

func TestMeEndpointReturnsCoachID(t *testing.T) {
	st := store.NewMemStore()
	handler := newTestServer(t, st)

	req := asCoach(httptest.NewRequest(http.MethodGet, "/api/me", nil), "home@example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "home@example.com" {
		t.Errorf("id = %q, want home@example.com", resp.ID)
	}
}
