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
	"net/http"
	"strings"

	"github.com/ttbt-io/gridiron/internal/engine"
)

type contextKey struct{}

// coachIDKey is the context key for the authenticated coach's ID
// (email, resolved from the JWT). The associated value is always a
// string.
var coachIDKey contextKey

// getCoachID returns the coach ID from the request context, if present.
func getCoachID(r *http.Request) string {
	if val := r.Context().Value(coachIDKey); val != nil {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}

// normalizeEmail ensures consistent casing and whitespace for coach IDs.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// maskEmail obscures an email address for safe logging.
// e.g. "coach@example.com" -> "c***@example.com"
func maskEmail(email string) string {
	if email == "" {
		return "<empty>"
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 || len(parts[0]) < 1 {
		return "****"
	}
	return string(parts[0][0]) + "***@" + parts[1]
}

// ResolveSide implements the caller-identity half of the Authority gate
// (spec §4.7): the core itself only compares a Side against
// match.CurrentSide (engine.CheckAuthority); it is this outer layer's
// job to say which Side, if any, a coach ID actually coaches in a given
// match. Returns ok=false if the coach owns neither team.
func ResolveSide(coachID string, home, away engine.Team) (side engine.Side, ok bool) {
	coachID = normalizeEmail(coachID)
	if coachID == "" {
		return "", false
	}
	log.Printf("[AUTH] resolving side for coach=%s home=%s away=%s", maskEmail(coachID), home.ID, away.ID)
	switch coachID {
	case normalizeEmail(home.CoachID):
		return engine.SideHome, true
	case normalizeEmail(away.CoachID):
		return engine.SideAway, true
	default:
		return "", false
	}
}
