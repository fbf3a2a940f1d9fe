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

// Package catalog holds the install-time seed data for races and
// positions (spec.md §6: "values are data, not code") and the loader
// that persists them through the encrypted storage layer.
package catalog

import "github.com/ttbt-io/gridiron/internal/engine"

// Races is the seed table of the six races named in spec.md §6.
var Races = []engine.Race{
	{Name: "amazon", PluralName: "Amazons", RerollCost: 60000},
	{Name: "high-elf", PluralName: "High Elves", RerollCost: 60000},
	{Name: "human", PluralName: "Humans", RerollCost: 50000},
	{Name: "khemri", PluralName: "Khemri", RerollCost: 60000},
	{Name: "orc", PluralName: "Orcs", RerollCost: 60000},
	{Name: "undead", PluralName: "Undead", RerollCost: 70000},
}

// Positions is the seed table of positions per race, with base stats
// and skill categories. This is a representative subset of each roster,
// not the full position list of the source game.
var Positions = []engine.Position{
	{Race: "amazon", Title: "Linewoman", MaxQuantity: 16, Cost: 50000, MA: 6, ST: 3, AG: 3, AV: 8, NormalSkills: "GA", DoubleSkills: "SP"},
	{Race: "amazon", Title: "Blitzer", MaxQuantity: 2, Cost: 90000, MA: 6, ST: 3, AG: 3, AV: 8, Skills: []string{"Dodge"}, NormalSkills: "GAS", DoubleSkills: "P"},
	{Race: "amazon", Title: "Thrower", MaxQuantity: 2, Cost: 70000, MA: 6, ST: 3, AG: 3, AV: 8, Skills: []string{"Pass"}, NormalSkills: "GAP", DoubleSkills: "S"},

	{Race: "high-elf", Title: "Lineman", MaxQuantity: 16, Cost: 70000, MA: 6, ST: 3, AG: 4, AV: 8, NormalSkills: "GA", DoubleSkills: "SP"},
	{Race: "high-elf", Title: "Blitzer", MaxQuantity: 2, Cost: 110000, MA: 7, ST: 3, AG: 4, AV: 8, Skills: []string{"Block"}, NormalSkills: "GAS", DoubleSkills: "P"},
	{Race: "high-elf", Title: "Catcher", MaxQuantity: 4, Cost: 90000, MA: 8, ST: 3, AG: 4, AV: 7, Skills: []string{"Catch", "Nerves of Steel"}, NormalSkills: "GA", DoubleSkills: "SP"},

	{Race: "human", Title: "Lineman", MaxQuantity: 16, Cost: 50000, MA: 6, ST: 3, AG: 3, AV: 8, NormalSkills: "G", DoubleSkills: "ASP"},
	{Race: "human", Title: "Blitzer", MaxQuantity: 4, Cost: 90000, MA: 7, ST: 3, AG: 3, AV: 8, Skills: []string{"Block"}, NormalSkills: "GS", DoubleSkills: "AP"},
	{Race: "human", Title: "Thrower", MaxQuantity: 2, Cost: 70000, MA: 6, ST: 3, AG: 3, AV: 8, Skills: []string{"Sure Hands", "Pass"}, NormalSkills: "GP", DoubleSkills: "AS"},
	{Race: "human", Title: "Catcher", MaxQuantity: 4, Cost: 70000, MA: 8, ST: 2, AG: 3, AV: 7, Skills: []string{"Catch", "Dodge"}, NormalSkills: "GA", DoubleSkills: "SP"},

	{Race: "khemri", Title: "Skeleton", MaxQuantity: 16, Cost: 40000, MA: 5, ST: 3, AG: 2, AV: 7, Skills: []string{"Regeneration", "Thick Skull"}, NormalSkills: "GS", DoubleSkills: "AP"},
	{Race: "khemri", Title: "Blitz-Ra", MaxQuantity: 2, Cost: 100000, MA: 7, ST: 4, AG: 2, AV: 8, Skills: []string{"Regeneration"}, NormalSkills: "GS", DoubleSkills: "AP"},

	{Race: "orc", Title: "Lineman", MaxQuantity: 16, Cost: 50000, MA: 5, ST: 3, AG: 3, AV: 9, NormalSkills: "GS", DoubleSkills: "AP"},
	{Race: "orc", Title: "Blitzer", MaxQuantity: 4, Cost: 80000, MA: 6, ST: 3, AG: 3, AV: 9, Skills: []string{"Block"}, NormalSkills: "GS", DoubleSkills: "AP"},
	{Race: "orc", Title: "Thrower", MaxQuantity: 2, Cost: 70000, MA: 6, ST: 3, AG: 3, AV: 8, Skills: []string{"Sure Hands", "Pass"}, NormalSkills: "GP", DoubleSkills: "AS"},
	{Race: "orc", Title: "Black Orc Blocker", MaxQuantity: 4, Cost: 80000, MA: 4, ST: 4, AG: 2, AV: 9, Skills: []string{"Thick Skull"}, NormalSkills: "GS", DoubleSkills: "AP"},

	{Race: "undead", Title: "Skeleton", MaxQuantity: 16, Cost: 40000, MA: 5, ST: 3, AG: 2, AV: 7, Skills: []string{"Regeneration", "Thick Skull"}, NormalSkills: "GS", DoubleSkills: "AP"},
	{Race: "undead", Title: "Zombie", MaxQuantity: 16, Cost: 40000, MA: 4, ST: 3, AG: 2, AV: 8, Skills: []string{"Regeneration"}, NormalSkills: "GS", DoubleSkills: "AP"},
	{Race: "undead", Title: "Ghoul", MaxQuantity: 4, Cost: 70000, MA: 7, ST: 3, AG: 3, AV: 7, Skills: []string{"Dodge"}, NormalSkills: "GA", DoubleSkills: "SP"},
	{Race: "undead", Title: "Wight", MaxQuantity: 2, Cost: 90000, MA: 6, ST: 3, AG: 3, AV: 8, Skills: []string{"Block", "Regeneration"}, NormalSkills: "GS", DoubleSkills: "AP"},
}

// PositionsByRace groups the seed positions by race name for catalog
// lookups.
func PositionsByRace() map[string][]engine.Position {
	out := make(map[string][]engine.Position)
	for _, p := range Positions {
		out[p.Race] = append(out[p.Race], p)
	}
	return out
}
