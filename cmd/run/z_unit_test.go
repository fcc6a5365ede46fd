// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/stats"
)

func TestExecuteJSON(t *testing.T) {
	cfg := &config{id: 3, rounds: 500, worker: 2, seed: 9, format: "json", quiet: true}
	var out bytes.Buffer
	if err := cfg.execute(context.Background(), &out); err != nil {
		t.Fatal(err)
	}
	rep := new(stats.SimReport)
	if err := json.Unmarshal(out.Bytes(), rep); err != nil {
		t.Fatal(err)
	}
	if rep.Summary.Rounds != 1000 || rep.Summary.Stake != 50 || rep.Lottery == nil {
		t.Fatalf("unexpected report: %+v", rep.Summary)
	}
}

func TestExecuteTable(t *testing.T) {
	cfg := &config{id: 1, rounds: 200, worker: 1, seed: 3, quiet: true}
	var out bytes.Buffer
	if err := cfg.execute(context.Background(), &out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out.Bytes(), []byte("treasure_slots")) {
		t.Fatalf("table output missing game name:\n%s", out.String())
	}
}

func TestValid(t *testing.T) {
	for _, cfg := range []*config{
		{worker: 0, rounds: 1},
		{worker: 1, rounds: 0},
		{worker: 1, rounds: 1, format: "xml"},
	} {
		if err := cfg.valid(); errs.LevelOf(err) != errs.Warn {
			t.Fatalf("%+v should be rejected, got %v", cfg, err)
		}
	}
	cfg := &config{worker: 1, rounds: 1, seed: -1}
	if err := cfg.valid(); err != nil || cfg.seed == -1 {
		t.Fatalf("seed should be generated: %d %v", cfg.seed, err)
	}
}
