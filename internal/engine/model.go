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

// Package engine implements the match simulation core: geometry, dice,
// roll primitives, the step resolver, the history and authority gates,
// and the kickoff/turn/half lifecycle. It has no knowledge of HTTP,
// storage engines, or caller identity; those are supplied by the caller.
package engine

import (
	"sort"

	json "github.com/goccy/go-json"
)

// Side is which team is acting or defending.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// TurnType is the current phase of a Match.
type TurnType string

const (
	TurnPlacePlayers TurnType = "placePlayers"
	TurnPlaceBall    TurnType = "placeBall"
	TurnTouchback    TurnType = "touchback"
	TurnNormal       TurnType = "normal"
	TurnEnd          TurnType = "end"
)

// StepKind enumerates the legal step space the resolver dispatches over.
type StepKind string

const (
	StepMove            StepKind = "move"
	StepPush            StepKind = "push"
	StepFollowUp        StepKind = "followUp"
	StepBlock           StepKind = "block"
	StepSelectBlockDice StepKind = "selectBlockDice"
	StepKnockDown       StepKind = "knockDown"
	StepStandUp         StepKind = "standUp"
	StepPickUp          StepKind = "pickUp"
	StepScatter         StepKind = "scatter"
	StepCatch           StepKind = "catch"
	StepPass            StepKind = "pass"
	StepHandOff         StepKind = "handOff"
	StepThrowIn         StepKind = "throwin"
	StepGoForIt         StepKind = "goForIt"
	StepEndTurn         StepKind = "endTurn"
	StepReroll          StepKind = "reroll"
	StepFoul            StepKind = "foul"
	StepBonehead        StepKind = "bonehead"
	StepReallyStupid    StepKind = "reallyStupid"

	StepSetKickoff      StepKind = "setKickoff"
	StepPlaceBall       StepKind = "placeBall"
	StepPlacePlayer     StepKind = "placePlayer"
	StepSubmitPlayers   StepKind = "submitPlayers"
	StepSubmitBall      StepKind = "submitBall"
	StepTouchback       StepKind = "touchback"
	StepSubmitTouchback StepKind = "submitTouchback"
	StepEndKickoff      StepKind = "endKickoff"
)

// activeActionKinds are the step kinds that assign an "action" to a PIG
// and therefore trigger finish_previous_action bookkeeping (spec §4.5.3).
var activeActionKinds = map[StepKind]bool{
	StepMove:    true,
	StepBlock:   true,
	StepStandUp: true,
	StepPass:    true,
	StepFoul:    true,
	StepHandOff: true,
}

// EffectSet is a set of runtime effect names (e.g. "Bone-head",
// "Really Stupid"). The source represents this as a comma-joined string
// with regex-based removal; here it's a proper set, serialised as a
// sorted slice on the wire for stable diffs.
type EffectSet map[string]bool

func NewEffectSet(names ...string) EffectSet {
	s := make(EffectSet, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

func (s EffectSet) Has(name string) bool { return s[name] }

func (s *EffectSet) Add(name string) {
	if *s == nil {
		*s = make(EffectSet)
	}
	(*s)[name] = true
}

func (s EffectSet) Remove(name string) { delete(s, name) }

func (s EffectSet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return json.Marshal(names)
}

func (s *EffectSet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	set := make(EffectSet, len(names))
	for _, n := range names {
		set[n] = true
	}
	*s = set
	return nil
}

// Skill names consulted directly by the resolver. Players carry a much
// larger skill vocabulary (catalog data); these are the ones with their
// own branch in roll/resolution logic.
const (
	SkillBlock       = "Block"
	SkillDodge       = "Dodge"
	SkillLoner       = "Loner"
	SkillMightyBlow  = "Mighty Blow"
	SkillDirtyPlayer = "Dirty Player"
	SkillThickSkull  = "Thick Skull"
	SkillRegen       = "Regeneration"
)

// Race is a catalog entity, immutable after seeding.
type Race struct {
	Name       string `json:"name"`
	PluralName string `json:"pluralName"`
	RerollCost int    `json:"rerollCost"`
}

// Position is a catalog entity belonging to one Race.
type Position struct {
	Race          string   `json:"race"`
	Title         string   `json:"title"`
	MaxQuantity   int      `json:"maxQuantity"`
	Cost          int      `json:"cost"`
	MA            int      `json:"ma"`
	ST            int      `json:"st"`
	AG            int      `json:"ag"`
	AV            int      `json:"av"`
	Skills        []string `json:"skills"`
	NormalSkills  string   `json:"normalSkills"`
	DoubleSkills  string   `json:"doubleSkills"`
}

// Team is owned by a coach (an external identity, a string ID here).
type Team struct {
	ID              string `json:"id"`
	CoachID         string `json:"coachId"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Race            string `json:"race"`
	Cash            int    `json:"cash"`
	Rerolls         int    `json:"rerolls"`
	HomePrimary     string `json:"homePrimary"`
	HomeSecondary   string `json:"homeSecondary"`
	AwayPrimary     string `json:"awayPrimary"`
	AwaySecondary   string `json:"awaySecondary"`
	Value           int    `json:"value"`
}

// Player is a roster member of one Team, a snapshot of a Position at
// creation time plus career counters accumulated across matches.
type Player struct {
	ID       string   `json:"id"`
	TeamID   string   `json:"teamId"`
	Number   int      `json:"number"`
	Name     string   `json:"name"`
	Position string   `json:"position"`
	MA       int      `json:"ma"`
	ST       int      `json:"st"`
	AG       int      `json:"ag"`
	AV       int      `json:"av"`
	Skills   []string `json:"skills"`
	Value    int      `json:"value"`

	Games        int  `json:"games"`
	SPPs         int  `json:"spps"`
	Completions  int  `json:"completions"`
	Casualties   int  `json:"casualties"`
	Interceptions int `json:"interceptions"`
	Touchdowns   int  `json:"touchdowns"`
	MVPs         int  `json:"mvps"`
	Niggles      int  `json:"niggles"`
	Dead         bool `json:"dead"`
}

func (p *Player) HasSkill(name string) bool {
	for _, s := range p.Skills {
		if s == name {
			return true
		}
	}
	return false
}

// PitchWidth and PitchHeight are the legal coordinate bounds: x in
// [0, PitchWidth), y in [0, PitchHeight).
const (
	PitchWidth  = 26
	PitchHeight = 15
)

// Match is the central aggregate. All fields are mutable except ID.
type Match struct {
	ID        string `json:"id"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`

	TurnNumber int      `json:"turnNumber"`
	TurnType   TurnType `json:"turnType"`
	CurrentSide Side    `json:"currentSide"`

	FirstKickingTeam   Side `json:"firstKickingTeam"`
	HomeFirstDirection string `json:"homeFirstDirection"` // "left" | "right"

	XBall *int `json:"xBall"`
	YBall *int `json:"yBall"`

	HomeRerolls              int  `json:"homeRerolls"`
	AwayRerolls              int  `json:"awayRerolls"`
	HomeRerollsTotal         int  `json:"homeRerollsTotal"`
	AwayRerollsTotal         int  `json:"awayRerollsTotal"`
	HomeRerollUsedThisTurn   bool `json:"homeRerollUsedThisTurn"`
	AwayRerollUsedThisTurn   bool `json:"awayRerollUsedThisTurn"`

	NToPlace    int  `json:"nToPlace"`
	KickingTeam Side `json:"kickingTeam"`
}

// Rerolls returns a pointer trio (remaining, total, usedThisTurn) for
// the given side so callers can mutate in place without a side switch at
// every call site.
func (m *Match) Rerolls(side Side) (remaining, total *int, used *bool) {
	if side == SideHome {
		return &m.HomeRerolls, &m.HomeRerollsTotal, &m.HomeRerollUsedThisTurn
	}
	return &m.AwayRerolls, &m.AwayRerollsTotal, &m.AwayRerollUsedThisTurn
}

func (m *Match) TeamID(side Side) string {
	if side == SideHome {
		return m.HomeTeam
	}
	return m.AwayTeam
}

func (m *Match) AddScore(side Side) {
	if side == SideHome {
		m.HomeScore++
	} else {
		m.AwayScore++
	}
}

func (m *Match) BallOnPitch() bool { return m.XBall != nil && m.YBall != nil }

func (m *Match) ClearBall() { m.XBall, m.YBall = nil, nil }

func (m *Match) SetBall(x, y int) { m.XBall, m.YBall = &x, &y }

// PIG is a per-match instance of a Player: PlayerInGame.
type PIG struct {
	Side   Side `json:"side"`
	Number int  `json:"number"`

	MA int `json:"ma"`
	ST int `json:"st"`
	AG int `json:"ag"`
	AV int `json:"av"`

	Skills  []string  `json:"skills"`
	Effects EffectSet `json:"effects"`

	Xpos *int `json:"xpos"`
	Ypos *int `json:"ypos"`

	Action         string `json:"action"`
	MovesRemaining int    `json:"movesRemaining"`
	FinishedAction bool   `json:"finishedAction"`

	Down             bool `json:"down"`
	Stunned          bool `json:"stunned"`
	StunnedThisTurn  bool `json:"stunnedThisTurn"`
	HasBall          bool `json:"hasBall"`
	OnPitch          bool `json:"onPitch"`
	KnockedOut       bool `json:"knockedOut"`
	Casualty         bool `json:"casualty"`
	SentOff          bool `json:"sentOff"`
	TackleZones      bool `json:"tackleZones"`
}

func (p *PIG) HasSkill(name string) bool {
	for _, s := range p.Skills {
		if s == name {
			return true
		}
	}
	return false
}

func (p *PIG) Pos() (int, int) {
	if p.Xpos == nil || p.Ypos == nil {
		return -1, -1
	}
	return *p.Xpos, *p.Ypos
}

func (p *PIG) SetPos(x, y int) { p.Xpos, p.Ypos = &x, &y }

// PIGKey identifies a PIG within a match for lookup/indexing purposes.
type PIGKey struct {
	Side   Side
	Number int
}

func (p *PIG) Key() PIGKey { return PIGKey{p.Side, p.Number} }

// MatchState is the full mutable state the resolver operates on: the
// Match header plus every PIG indexed by (side, number).
type MatchState struct {
	Match *Match
	PIGs  map[PIGKey]*PIG
}

func NewMatchState(match *Match, pigs []*PIG) *MatchState {
	idx := make(map[PIGKey]*PIG, len(pigs))
	for _, p := range pigs {
		idx[p.Key()] = p
	}
	return &MatchState{Match: match, PIGs: idx}
}

func (s *MatchState) Lookup(side Side, number int) (*PIG, bool) {
	p, ok := s.PIGs[PIGKey{side, number}]
	return p, ok
}

func (s *MatchState) BallCarrier() (*PIG, bool) {
	for _, p := range s.PIGs {
		if p.HasBall {
			return p, true
		}
	}
	return nil, false
}

func (s *MatchState) All() []*PIG {
	out := make([]*PIG, 0, len(s.PIGs))
	for _, p := range s.PIGs {
		out = append(out, p)
	}
	return out
}

// Step is the append-only log record for a Match. Identity is
// (MatchID, HistoryPosition), a dense zero-based sequence.
type Step struct {
	MatchID         string          `json:"matchId"`
	HistoryPosition int             `json:"historyPosition"`
	StepType        StepKind        `json:"stepType"`
	Action          string          `json:"action"`
	Properties      json.RawMessage `json:"properties"`
	Result          json.RawMessage `json:"result"`
}

// Challenge is a pending match invitation, specified only as an external
// input: match creation consumes it, nothing in the core inspects it
// further.
type Challenge struct {
	ID          string `json:"id"`
	ChallengerID string `json:"challengerId"`
	ChallengeeID string `json:"challengeeId"`
	IssuedAtUnix int64  `json:"issuedAtUnix"`
}
