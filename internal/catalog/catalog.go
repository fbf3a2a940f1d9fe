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

package catalog

import (
	"fmt"
	"os"

	"github.com/c2FmZQ/storage"
	"github.com/ttbt-io/gridiron/internal/engine"
)

const catalogFile = "catalog.dat"

// catalogDoc is the single encrypted blob persisted at install time,
// mirroring the teacher's pattern of one SaveDataFile call per logical
// document rather than one file per row.
type catalogDoc struct {
	Races     []engine.Race     `json:"races"`
	Positions []engine.Position `json:"positions"`
}

// Load reads the seeded catalog from encrypted storage, writing the
// built-in seed table on first run (the file does not exist yet).
func Load(s *storage.Storage) (*catalogDoc, error) {
	var doc catalogDoc
	err := s.ReadDataFile(catalogFile, &doc)
	if err == nil {
		return &doc, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("storage.ReadDataFile(catalog): %w", err)
	}

	doc = catalogDoc{Races: Races, Positions: Positions}
	if err := s.SaveDataFile(catalogFile, &doc); err != nil {
		return nil, fmt.Errorf("storage.SaveDataFile(catalog): %w", err)
	}
	return &doc, nil
}

func (d *catalogDoc) RaceByName(name string) (engine.Race, bool) {
	for _, r := range d.Races {
		if r.Name == name {
			return r, true
		}
	}
	return engine.Race{}, false
}

func (d *catalogDoc) PositionsForRace(race string) []engine.Position {
	var out []engine.Position
	for _, p := range d.Positions {
		if p.Race == race {
			out = append(out, p)
		}
	}
	return out
}
