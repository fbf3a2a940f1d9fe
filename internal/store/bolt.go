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
	"encoding/binary"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	json "github.com/goccy/go-json"
	"github.com/ttbt-io/gridiron/internal/engine"
)

var (
	matchesBucket = []byte("matches")
	matchKey      = []byte("match")
	pigsKey       = []byte("pigs")
	stepsBucket   = []byte("steps")
	teamsBucket   = []byte("teams")
)

// BoltStore is the production Store, backed by a single boltdb file.
// Bolt's Update/View transactions give the atomic-transaction-per-step
// requirement of spec §6 for free, and the steps sub-bucket's
// big-endian position keys give the (match_id, history_position)
// uniqueness constraint: CommitStep refuses to overwrite an existing
// key within the same transaction.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (creating if necessary) a bolt-backed Store at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt.Open: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(matchesBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(teamsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing buckets: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (b *BoltStore) Close() error { return b.db.Close() }

func matchBucketName(matchID string) []byte { return []byte(matchID) }

func positionKey(position int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(position))
	return key
}

func (b *BoltStore) CreateMatch(state *engine.MatchState) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(matchesBucket)
		mb, err := root.CreateBucket(matchBucketName(state.Match.ID))
		if err != nil {
			return fmt.Errorf("match %q already exists: %w", state.Match.ID, err)
		}
		if _, err := mb.CreateBucketIfNotExists(stepsBucket); err != nil {
			return err
		}
		return writeMatchState(mb, state)
	})
}

func writeMatchState(mb *bolt.Bucket, state *engine.MatchState) error {
	matchBytes, err := json.Marshal(state.Match)
	if err != nil {
		return fmt.Errorf("marshal match: %w", err)
	}
	if err := mb.Put(matchKey, matchBytes); err != nil {
		return err
	}
	pigsBytes, err := json.Marshal(state.All())
	if err != nil {
		return fmt.Errorf("marshal pigs: %w", err)
	}
	return mb.Put(pigsKey, pigsBytes)
}

func readMatchState(mb *bolt.Bucket) (*engine.MatchState, error) {
	matchBytes := mb.Get(matchKey)
	if matchBytes == nil {
		return nil, ErrNotFound
	}
	var match engine.Match
	if err := json.Unmarshal(matchBytes, &match); err != nil {
		return nil, fmt.Errorf("unmarshal match: %w", err)
	}
	var pigs []*engine.PIG
	if pigsBytes := mb.Get(pigsKey); pigsBytes != nil {
		if err := json.Unmarshal(pigsBytes, &pigs); err != nil {
			return nil, fmt.Errorf("unmarshal pigs: %w", err)
		}
	}
	return engine.NewMatchState(&match, pigs), nil
}

func (b *BoltStore) LoadMatch(matchID string) (*engine.MatchState, error) {
	var out *engine.MatchState
	err := b.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(matchesBucket)
		mb := root.Bucket(matchBucketName(matchID))
		if mb == nil {
			return ErrNotFound
		}
		state, err := readMatchState(mb)
		if err != nil {
			return err
		}
		out = state
		return nil
	})
	return out, err
}

func (b *BoltStore) LatestHistoryPosition(matchID string) (int, bool, error) {
	var position int
	var exists bool
	err := b.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(matchesBucket)
		mb := root.Bucket(matchBucketName(matchID))
		if mb == nil {
			return ErrNotFound
		}
		sb := mb.Bucket(stepsBucket)
		k, _ := sb.Cursor().Last()
		if k == nil {
			return nil
		}
		exists = true
		position = int(binary.BigEndian.Uint64(k))
		return nil
	})
	return position, exists, err
}

func (b *BoltStore) CommitStep(matchID string, position int, step engine.Step, state *engine.MatchState) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(matchesBucket)
		mb := root.Bucket(matchBucketName(matchID))
		if mb == nil {
			return ErrNotFound
		}
		sb := mb.Bucket(stepsBucket)
		key := positionKey(position)
		if sb.Get(key) != nil {
			return ErrConflict
		}
		stepBytes, err := json.Marshal(step)
		if err != nil {
			return fmt.Errorf("marshal step: %w", err)
		}
		if err := sb.Put(key, stepBytes); err != nil {
			return err
		}
		return writeMatchState(mb, state)
	})
}

// SaveTeam persists a coach's team, keyed by Team.ID. Team/roster
// management beyond what a match needs to know (CoachID, Race, Rerolls)
// is out of scope; this exists only so a Match's HomeTeam/AwayTeam
// references resolve to something real.
func (b *BoltStore) SaveTeam(team engine.Team) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(teamsBucket)
		data, err := json.Marshal(team)
		if err != nil {
			return fmt.Errorf("marshal team: %w", err)
		}
		return bucket.Put([]byte(team.ID), data)
	})
}

// LoadTeam returns a previously saved team, or ErrNotFound.
func (b *BoltStore) LoadTeam(teamID string) (engine.Team, error) {
	var out engine.Team
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(teamsBucket)
		data := bucket.Get([]byte(teamID))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &out)
	})
	return out, err
}

func (b *BoltStore) ListHistory(matchID string) ([]engine.Step, error) {
	var out []engine.Step
	err := b.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(matchesBucket)
		mb := root.Bucket(matchBucketName(matchID))
		if mb == nil {
			return ErrNotFound
		}
		sb := mb.Bucket(stepsBucket)
		return sb.ForEach(func(_, v []byte) error {
			var s engine.Step
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("unmarshal step: %w", err)
			}
			out = append(out, s)
			return nil
		})
	})
	return out, err
}
