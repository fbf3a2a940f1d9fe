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
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ttbt-io/gridiron/internal/engine"
)

// matchCache holds recently-touched match states in memory, the same
// role the game store's sync.Map cache played against disk reads,
// except bounded: an unbounded map of every match ever played would
// grow without limit over a server's lifetime, where a fixed number of
// concurrently-active matches is the actual working set.
type matchCache struct {
	states *lru.Cache[string, *engine.MatchState]
}

func newMatchCache(size int) (*matchCache, error) {
	c, err := lru.New[string, *engine.MatchState](size)
	if err != nil {
		return nil, err
	}
	return &matchCache{states: c}, nil
}

func (c *matchCache) get(matchID string) (*engine.MatchState, bool) {
	return c.states.Get(matchID)
}

func (c *matchCache) put(matchID string, state *engine.MatchState) {
	c.states.Add(matchID, state)
}

func (c *matchCache) invalidate(matchID string) {
	c.states.Remove(matchID)
}
