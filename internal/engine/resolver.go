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
	json "github.com/goccy/go-json"
)

// PlayerRef identifies a PIG by (side, number), the "current player"
// lookup spec §4.5.2 describes for every step kind.
type PlayerRef struct {
	Side   Side `json:"side"`
	Number int  `json:"number"`
}

// NextStep is a synthesised follow-up step the client must subsequently
// submit (spec §9 "synthesised follow-ups as data"). The resolver never
// mutates state to produce these; it only emits them.
type NextStep struct {
	StepType   StepKind               `json:"stepType"`
	Properties map[string]interface{} `json:"properties"`
}

// Resolver is the single entry point described in spec §4.5: resolve one
// submitted Step against a MatchState, returning the Step with its
// Result populated. It holds no state of its own beyond the DiceSource;
// the same Resolver may service many matches concurrently as long as
// callers serialise access per match (spec §5).
type Resolver struct {
	Dice DiceSource
}

func NewResolver(dice DiceSource) *Resolver {
	return &Resolver{Dice: dice}
}

// stepOutcome is what every per-kind handler produces: a typed result
// (marshaled into Step.Result), any synthesised follow-ups, and an
// InvalidStep error if preconditions failed. A handler returning a
// non-nil *Error still has its (partial) result persisted — the step
// itself is never rejected outright for a domain-level precondition
// failure (spec §7).
type stepOutcome struct {
	result any
	next   []NextStep
	err    *Error
}

func decodeProps(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// Resolve implements spec §4.5's entry point, including the reroll
// wrapper (§4.5.1) and finish_previous_action bookkeeping (§4.5.3).
// history is the match's persisted steps so far, oldest first, not
// including `in`.
func (r *Resolver) Resolve(state *MatchState, history []Step, in Step) (Step, error) {
	out := in
	kind := in.StepType
	properties := in.Properties

	if kind == StepReroll {
		substituted, loner, err := r.applyRerollWrapper(state, history, &in)
		if err != nil {
			return out, err
		}
		if loner {
			// Loner failed: copy the previous step's result verbatim
			// and stop, per spec §4.5.1.
			prev, ok := lastStep(history)
			if !ok {
				return out, NewError(KindProgrammerError, "reroll with no previous step")
			}
			out.Result = prev.Result
			return out, nil
		}
		kind = substituted.stepType
		properties = substituted.properties
	}

	outcome := r.dispatch(state, history, kind, in.Action, properties)

	if activeActionKinds[kind] && in.Action != "" {
		if p, ok := playerRefFromProps(properties); ok {
			if pig, found := state.Lookup(p.Side, p.Number); found {
				pig.Action = in.Action
				r.finishPreviousAction(state, history, pig)
			}
		}
	}

	payload := struct {
		Result   any        `json:"result,omitempty"`
		NextStep []NextStep `json:"nextStep,omitempty"`
		Failed   bool       `json:"failed,omitempty"`
		Reason   string     `json:"reason,omitempty"`
	}{Result: outcome.result, NextStep: outcome.next}

	if outcome.err != nil {
		if outcome.err.Kind == KindProgrammerError || outcome.err.Kind == KindStoreFailure {
			return out, outcome.err
		}
		payload.Failed = true
		payload.Reason = outcome.err.Message
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return out, Wrap(KindProgrammerError, "failed to encode step result", err)
	}
	out.Result = encoded
	out.StepType = in.StepType // the wire step_type is the submitted one (reroll), not the substituted kind
	return out, nil
}

func lastStep(history []Step) (Step, bool) {
	if len(history) == 0 {
		return Step{}, false
	}
	return history[len(history)-1], true
}

// playerRefFromProps is a best-effort extraction used only to find which
// PIG to stamp with Action; every active-action kind's properties struct
// embeds a field decodable this way.
func playerRefFromProps(raw json.RawMessage) (PlayerRef, bool) {
	var probe struct {
		Side    Side `json:"side"`
		Number  int  `json:"number"`
		Attacker *PlayerRef `json:"attacker"`
		Fouler   *PlayerRef `json:"fouler"`
		Thrower  *PlayerRef `json:"thrower"`
	}
	if err := decodeProps(raw, &probe); err != nil {
		return PlayerRef{}, false
	}
	switch {
	case probe.Attacker != nil:
		return *probe.Attacker, true
	case probe.Fouler != nil:
		return *probe.Fouler, true
	case probe.Thrower != nil:
		return *probe.Thrower, true
	case probe.Side != "":
		return PlayerRef{probe.Side, probe.Number}, true
	default:
		return PlayerRef{}, false
	}
}

// finishPreviousAction implements spec §4.5.3: walk history newest
// first, excluding the current head, stopping at the first endTurn;
// any intermediate active-step whose PIG differs from p gets
// finished_action = true.
func (r *Resolver) finishPreviousAction(state *MatchState, history []Step, p *PIG) {
	for i := len(history) - 1; i >= 0; i-- {
		s := history[i]
		if s.StepType == StepEndTurn {
			return
		}
		if !activeActionKinds[s.StepType] {
			continue
		}
		ref, ok := playerRefFromProps(s.Properties)
		if !ok {
			continue
		}
		if ref.Side == p.Side && ref.Number == p.Number {
			continue
		}
		if q, found := state.Lookup(ref.Side, ref.Number); found {
			q.FinishedAction = true
		}
	}
}

func (r *Resolver) dispatch(state *MatchState, history []Step, kind StepKind, action string, properties json.RawMessage) stepOutcome {
	switch kind {
	case StepMove:
		return r.resolveMove(state, properties)
	case StepPush:
		return r.resolvePush(state, properties)
	case StepFollowUp:
		return r.resolveFollowUp(state, properties)
	case StepBlock:
		return r.resolveBlock(state, action, properties)
	case StepSelectBlockDice:
		return r.resolveSelectBlockDice(state, properties)
	case StepKnockDown:
		return r.resolveKnockDown(state, properties)
	case StepStandUp:
		return r.resolveStandUp(state, properties)
	case StepPickUp:
		return r.resolvePickUp(state, properties)
	case StepScatter:
		return r.resolveScatter(state, properties)
	case StepCatch:
		return r.resolveCatch(state, properties)
	case StepPass:
		return r.resolvePass(state, properties)
	case StepHandOff:
		return r.resolveHandOff(state, properties)
	case StepThrowIn:
		return r.resolveThrowIn(state, properties)
	case StepGoForIt:
		return r.resolveGoForIt(state, properties)
	case StepEndTurn:
		return r.resolveEndTurn(state, history, properties)
	case StepFoul:
		return r.resolveFoul(state, properties)
	case StepBonehead:
		return r.resolveBonehead(state, properties)
	case StepReallyStupid:
		return r.resolveReallyStupid(state, properties)
	case StepSetKickoff:
		return r.resolveSetKickoff(state, properties)
	case StepPlaceBall:
		return r.resolvePlaceBall(state, properties)
	case StepPlacePlayer:
		return r.resolvePlacePlayer(state, properties)
	case StepSubmitPlayers:
		return r.resolveSubmitPlayers(state, properties)
	case StepSubmitBall:
		return r.resolveSubmitBall(state, properties)
	case StepTouchback:
		return r.resolveTouchback(state, properties)
	case StepSubmitTouchback:
		return r.resolveSubmitTouchback(state, properties)
	case StepEndKickoff:
		return r.resolveEndKickoff(state, properties)
	default:
		return stepOutcome{err: NewError(KindProgrammerError, "unknown step kind: "+string(kind))}
	}
}
