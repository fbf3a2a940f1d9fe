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

// Package backend exposes the match-simulation core over HTTP: submit a
// step, fetch a match snapshot, and subscribe to live step push over a
// websocket. Team/roster management, game listings and the cluster and
// admin dashboards are out of scope; this is the minimal slice needed to
// drive the engine end-to-end, not a product-grade web app.
package backend

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/ttbt-io/gridiron/internal/engine"
	"github.com/ttbt-io/gridiron/internal/store"
)

func generateETag(data []byte) string {
	return fmt.Sprintf("\"%x\"", sha256.Sum256(data))
}

func hubBusyResponse(w http.ResponseWriter, retryAfter string) {
	w.Header().Set("Retry-After", retryAfter)
	http.Error(w, "Too Many Requests: server is busy", http.StatusTooManyRequests)
}

const retryAfterSubmit = "2"

// Options represent server options. HubManager is expected to already be
// wired to a Store, Resolver and TeamLookup by the caller (see
// cmd/server); Store is kept here too since the match-view handler reads
// directly from it rather than going through the Hub.
type Options struct {
	Addr     string
	Cert     *tls.Certificate
	Debug    bool
	Listener net.Listener

	Store      store.Store
	Teams      store.TeamStore
	HubManager *HubManager

	// Auth Options
	AuthCookieName string
	AuthJWKSURL    string
}

// Server represents the running server instance.
type Server struct {
	httpServer *http.Server
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	return nil
}

// StartServer starts the web server and registers the API handlers.
func StartServer(opts Options) (*Server, error) {
	handler := NewServerHandler(opts)

	httpServer := &http.Server{
		Addr:    opts.Addr,
		Handler: handler,
	}
	if opts.Cert != nil {
		httpServer.TLSConfig = &tls.Config{Certificates: []tls.Certificate{*opts.Cert}}
	}

	go func() {
		var err error
		if opts.Listener != nil {
			if httpServer.TLSConfig != nil {
				log.Printf("Starting HTTPS server on provided listener %s...", opts.Listener.Addr())
				err = httpServer.ServeTLS(opts.Listener, "", "")
			} else {
				log.Printf("Starting HTTP server on provided listener %s...", opts.Listener.Addr())
				err = httpServer.Serve(opts.Listener)
			}
		} else {
			log.Printf("Server starting on %s...\n", opts.Addr)
			if opts.Cert != nil {
				err = httpServer.ListenAndServeTLS("", "")
			} else {
				err = httpServer.ListenAndServe()
			}
		}
		if err != nil && !errors.Is(err, net.ErrClosed) && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return &Server{httpServer: httpServer}, nil
}

// createMatchRequest is the wire shape of a POST /api/match body: the
// two coaches bring an already-built roster (team economy and league
// progression are out of scope here) and the server mints fresh IDs and
// persists the initial, not-yet-kicked-off state. Placement and the
// opening setKickoff step happen over /api/match/{id}/step like any
// other step, so there is no separate "start match" endpoint.
type createMatchRequest struct {
	HomeTeam           engine.Team   `json:"homeTeam"`
	AwayTeam           engine.Team   `json:"awayTeam"`
	HomeFirstDirection string        `json:"homeFirstDirection"`
	Players            []*engine.PIG `json:"players"`
}

// submitStepRequest is the wire shape of a POST /api/match/{id}/step body.
type submitStepRequest struct {
	HistoryPosition int             `json:"history_position"`
	StepType        string          `json:"step_type"`
	Action          string          `json:"action,omitempty"`
	Properties      json.RawMessage `json:"properties,omitempty"`
}

// matchView is the read shape of GET /api/match/{id}, per spec §6.
type matchView struct {
	Match   *engine.Match `json:"match"`
	Players []*engine.PIG `json:"players"`
	History []engine.Step `json:"history"`
}

// NewServerHandler builds the HTTP handler exposing the match API.
func NewServerHandler(opts Options) http.Handler {
	debugf := func(string, ...any) {}
	if opts.Debug {
		debugf = func(f string, a ...any) {
			log.Printf("[DEBUG BACKEND] "+f, a...)
		}
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(currentMetrics())
	})

	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		coachID := getCoachID(r)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": coachID})
	})

	mux.HandleFunc("/api/match", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		coachID := getCoachID(r)
		if !isValidEmail(coachID) {
			http.Error(w, "Unauthenticated", http.StatusForbidden)
			return
		}

		var req createMatchRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			http.Error(w, "Bad Request: malformed JSON", http.StatusBadRequest)
			return
		}
		if req.HomeTeam.CoachID != coachID && req.AwayTeam.CoachID != coachID {
			http.Error(w, "Forbidden: submitting coach does not own either team", http.StatusForbidden)
			return
		}

		req.HomeTeam.ID = uuid.NewString()
		req.AwayTeam.ID = uuid.NewString()
		if err := opts.Teams.SaveTeam(req.HomeTeam); err != nil {
			log.Printf("SaveTeam(home): %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if err := opts.Teams.SaveTeam(req.AwayTeam); err != nil {
			log.Printf("SaveTeam(away): %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		match := &engine.Match{
			ID:                 uuid.NewString(),
			HomeTeam:           req.HomeTeam.ID,
			AwayTeam:           req.AwayTeam.ID,
			TurnNumber:         1,
			HomeFirstDirection: req.HomeFirstDirection,
			HomeRerolls:        req.HomeTeam.Rerolls,
			HomeRerollsTotal:   req.HomeTeam.Rerolls,
			AwayRerolls:        req.AwayTeam.Rerolls,
			AwayRerollsTotal:   req.AwayTeam.Rerolls,
		}
		for i := range req.Players {
			req.Players[i].OnPitch = false
		}
		state := engine.NewMatchState(match, req.Players)
		if err := opts.Store.CreateMatch(state); err != nil {
			log.Printf("CreateMatch: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"matchId": match.ID})
	})

	mux.HandleFunc("/api/match/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		matchID := r.PathValue("id")
		if matchID == "" || !isValidUUID(matchID) {
			http.Error(w, "Bad Request: invalid match id", http.StatusBadRequest)
			return
		}

		state, ok := opts.HubManager.CachedMatch(matchID)
		if !ok {
			var err error
			state, err = opts.Store.LoadMatch(matchID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					http.Error(w, "Not Found", http.StatusNotFound)
					return
				}
				log.Printf("LoadMatch(%s): %v", matchID, err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
		}
		history, err := opts.Store.ListHistory(matchID)
		if err != nil {
			log.Printf("ListHistory(%s): %v", matchID, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		view := matchView{Match: state.Match, History: history}
		for _, p := range state.All() {
			view.Players = append(view.Players, p)
		}

		body, err := json.Marshal(view)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		etag := generateETag(body)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	})

	mux.HandleFunc("/api/match/{id}/step", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		matchID := r.PathValue("id")
		if matchID == "" || !isValidUUID(matchID) {
			http.Error(w, "Bad Request: invalid match id", http.StatusBadRequest)
			return
		}

		coachID := getCoachID(r)
		if !isValidEmail(coachID) {
			http.Error(w, "Unauthenticated", http.StatusForbidden)
			return
		}

		var req submitStepRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			http.Error(w, "Bad Request: malformed JSON", http.StatusBadRequest)
			return
		}

		step := engine.Step{
			MatchID:         matchID,
			HistoryPosition: req.HistoryPosition,
			StepType:        engine.StepKind(req.StepType),
			Action:          req.Action,
			Properties:      req.Properties,
		}

		resp, ok := opts.HubManager.SubmitStep(matchID, coachID, step)
		if !ok {
			hubBusyResponse(w, retryAfterSubmit)
			return
		}
		if resp.Err != nil {
			debugf("submit step failed for match %s: %v", matchID, resp.Err)
			var eerr *engine.Error
			if errors.As(resp.Err, &eerr) {
				http.Error(w, eerr.Error(), http.StatusBadRequest)
				return
			}
			if errors.Is(resp.Err, store.ErrNotFound) {
				http.Error(w, "Not Found", http.StatusNotFound)
				return
			}
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		switch resp.Status {
		case "wrongUser":
			http.Error(w, "Forbidden: step does not belong to the submitting coach's side", http.StatusForbidden)
			return
		case "duplicate":
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"status": "duplicate"})
			return
		case "resend":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"status": "resend", "start": resp.Start})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "step": resp.Step})
	})

	mux.HandleFunc("/api/match/{id}/ws", func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("id")
		if matchID == "" || !isValidUUID(matchID) {
			http.Error(w, "Bad Request: invalid match id", http.StatusBadRequest)
			return
		}
		coachID := getCoachID(r)
		serveMatchWS(opts.HubManager, matchID, coachID, w, r)
	})

	var handler http.Handler = mux
	handler = jwtAuthMiddleware(opts, handler)
	return handler
}
