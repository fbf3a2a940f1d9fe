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
	"math/rand/v2"
	"sync"
)

// DiceSource returns n independent uniform integers in [1, sides]. The
// production implementation is a seeded PRNG (the same seed gives the
// same sequence); tests inject a ScriptedDice sequence instead.
type DiceSource interface {
	Roll(sides, n int) []int
}

// SeededDice is the production DiceSource, backed by math/rand/v2's
// PCG generator. It is safe for concurrent use.
type SeededDice struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededDice builds a DiceSource seeded from two uint64 halves (the
// server derives these from its process ID and start time).
func NewSeededDice(seed1, seed2 uint64) *SeededDice {
	return &SeededDice{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (d *SeededDice) Roll(sides, n int) []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]int, n)
	for i := range out {
		out[i] = d.rng.IntN(sides) + 1
	}
	return out
}

// ScriptedDice yields a pre-specified sequence of die values, cycling on
// exhaustion, for deterministic tests (spec §4.2). Values are consumed
// one at a time regardless of the `sides` requested by the caller; the
// script is expected to already be in the right range for the rolls the
// test drives.
type ScriptedDice struct {
	values []int
	pos    int
}

func NewScriptedDice(values ...int) *ScriptedDice {
	return &ScriptedDice{values: values}
}

func (d *ScriptedDice) Roll(sides, n int) []int {
	out := make([]int, n)
	for i := range out {
		if len(d.values) == 0 {
			out[i] = 1
			continue
		}
		out[i] = d.values[d.pos%len(d.values)]
		d.pos++
	}
	return out
}
