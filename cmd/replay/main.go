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

// Command replay prints a match's committed history in order, one line
// per step, for debugging a live server's data directory without
// spinning up the HTTP layer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/mattn/go-isatty"

	"github.com/ttbt-io/gridiron/internal/store"
)

var (
	dataFile = flag.String("store", "data/matches.bolt", "Path to the bolt match store")
	matchID  = flag.String("match", "", "Match ID to replay (required)")
	noColor  = flag.Bool("no-color", false, "Disable colorized output even on a terminal")
)

func main() {
	flag.Parse()
	if *matchID == "" {
		fmt.Fprintln(os.Stderr, "usage: replay -store=data/matches.bolt -match=<id>")
		os.Exit(2)
	}

	color.NoColor = *noColor || !isatty.IsTerminal(os.Stdout.Fd())

	st, err := store.OpenBolt(*dataFile)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer st.Close()

	history, err := st.ListHistory(*matchID)
	if err != nil {
		log.Fatalf("loading history for %s: %v", *matchID, err)
	}

	stepColor := color.New(color.FgCyan, color.Bold)
	resultColor := color.New(color.FgGreen)
	for _, step := range history {
		stepColor.Printf("#%04d %s/%s", step.HistoryPosition, step.StepType, step.Action)
		if len(step.Properties) > 0 {
			fmt.Printf(" props=%s", compact(step.Properties))
		}
		fmt.Println()
		if len(step.Result) > 0 {
			resultColor.Printf("      -> %s\n", compact(step.Result))
		}
	}
	fmt.Printf("%d step(s)\n", len(history))
}

// compact re-marshals raw JSON without indentation for single-line
// display; the stored bytes are already compact but this keeps the
// formatting independent of whatever the resolver happened to emit.
func compact(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return string(raw)
	}
	return string(b)
}
