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

package spec

import (
	"strings"
	"testing"
)

const slotYAML = `
game_name: unit_slot
game_id: 9
kind: slot
bet_options: [25, 50]
slot:
  columns: 5
  rows: 3
  symbols:
    - {id: A, weight: 3, value: 1}
    - {id: B, weight: 2, value: 5}
    - {id: D, weight: 1, value: 25}
  special_symbol: D
  paylines:
    - [[0,1],[1,1],[2,1],[3,1],[4,1]]
    - [[0,0],[1,1],[2,2],[3,1],[4,0]]
  run_multipliers: {3: 1, 4: 3, 5: 10}
  bonus_factor: "1.4"
  jackpot_seed: 5000
  jackpot_increment: 100
`

const lotteryYAML = `
game_name: unit_lotto
game_id: 10
kind: lottery
lottery:
  max_number: 49
  pick: 6
  ticket_price: 50
  prize_table: {3: 150, 4: 2000, 5: 75000, 6: 2000000}
  bonus_factor: "1.6"
`

func TestSlotSettingYAML(t *testing.T) {
	gs, err := GetGameSettingByYAML([]byte(slotYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := gs.Slot
	if len(s.Pool) != 6 {
		t.Fatalf("expected pool size 6, got %d", len(s.Pool))
	}
	if s.Special != 2 {
		t.Fatalf("expected special index 2, got %d", s.Special)
	}
	if len(s.Lines) != 2 || s.Lines[1][2] != (Cell{Col: 2, Row: 2}) {
		t.Fatalf("unexpected lines: %v", s.Lines)
	}
	if s.Multiplier(2) != 0 || s.Multiplier(4) != 3 || s.Multiplier(5) != 10 {
		t.Fatalf("unexpected multipliers: %v", s.Multipliers)
	}
	if s.BonusFactor.String() != "1.4" {
		t.Fatalf("expected bonus 1.4, got %s", s.BonusFactor)
	}
	if !gs.AllowBet(25) || gs.AllowBet(30) {
		t.Fatalf("unexpected AllowBet")
	}
}

func TestSlotSettingRejects(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		want string
	}{
		{"zero weight", "{id: A, weight: 3", "{id: A, weight: 0", "weight must be positive"},
		{"short line", "[[0,1],[1,1],[2,1],[3,1],[4,1]]", "[[0,1],[1,1],[2,1],[3,1]]", "covers 4 columns"},
		{"column order", "[[0,1],[1,1],[2,1],[3,1],[4,1]]", "[[0,1],[2,1],[1,1],[3,1],[4,1]]", "columns must run"},
		{"row range", "[[0,1],[1,1],[2,1],[3,1],[4,1]]", "[[0,1],[1,3],[2,1],[3,1],[4,1]]", "out of range"},
		{"multiplier order", "{3: 1, 4: 3, 5: 10}", "{3: 1, 4: 3, 5: 2}", "strictly increasing"},
		{"multiplier gap", "{3: 1, 4: 3, 5: 10}", "{3: 1, 5: 10}", "missing run length 4"},
		{"special", "special_symbol: D", "special_symbol: X", "not in symbols"},
		{"bonus", `bonus_factor: "1.4"`, `bonus_factor: "-1"`, "must be positive"},
		{"bet", "bet_options: [25, 50]", "bet_options: [0]", "invalid bet option"},
	}
	for _, tc := range cases {
		doc := strings.Replace(slotYAML, tc.from, tc.to, 1)
		if doc == slotYAML {
			t.Fatalf("%s: replacement did not apply", tc.name)
		}
		_, err := GetGameSettingByYAML([]byte(doc))
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected %q in %v", tc.name, tc.want, err)
		}
	}
}

func TestEmptySymbolsRejected(t *testing.T) {
	doc := `
game_name: empty
kind: slot
bet_options: [1]
slot:
  symbols: []
  paylines: [[[0,0],[1,0],[2,0],[3,0],[4,0]]]
  run_multipliers: {3: 1, 4: 3, 5: 10}
`
	if _, err := GetGameSettingByYAML([]byte(doc)); err == nil || !strings.Contains(err.Error(), "symbols is empty") {
		t.Fatalf("expected symbols is empty, got %v", err)
	}
}

func TestLotterySetting(t *testing.T) {
	gs, err := GetGameSettingByYAML([]byte(lotteryYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l := gs.Lottery
	if gs.BetOptions[0] != 50 {
		t.Fatalf("expected ticket price as bet option, got %v", gs.BetOptions)
	}
	if l.MinMatch != 3 {
		t.Fatalf("expected default min_match 3, got %d", l.MinMatch)
	}
	if got := l.Prize(3); got != 240 {
		t.Fatalf("expected floor(150*1.6)=240, got %d", got)
	}
	if got := l.Prize(6); got != 3_200_000 {
		t.Fatalf("expected 3200000, got %d", got)
	}
	if got := l.Prize(2); got != 0 {
		t.Fatalf("expected 0 under min_match, got %d", got)
	}
	if l.Label(3_200_000) != "JACKPOT" || l.Label(20_000) != "BIG WIN" || l.Label(240) != "WIN" || l.Label(0) != "" {
		t.Fatalf("unexpected labels")
	}
}

func TestLotteryMissingTier(t *testing.T) {
	doc := strings.Replace(lotteryYAML, "5: 75000, ", "", 1)
	if _, err := GetGameSettingByYAML([]byte(doc)); err == nil || !strings.Contains(err.Error(), "missing tier 5") {
		t.Fatalf("expected missing tier error, got %v", err)
	}
}

func TestApplyFactorFloors(t *testing.T) {
	f, _ := ParseFactor("1.4")
	if got := ApplyFactor(175, f); got != 245 {
		t.Fatalf("expected 245, got %d", got)
	}
	if got := ApplyFactor(1, f); got != 1 {
		t.Fatalf("expected floor(1.4)=1, got %d", got)
	}
	if got := ApplyFactor(0, f); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestUnknownKind(t *testing.T) {
	if _, err := GetGameSettingByJSON([]byte(`{"game_name":"x","kind":"roulette","bet_options":[1]}`)); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestLotteryLabelDefaults(t *testing.T) {
	withLabels := func(labels string) string {
		return strings.Replace(lotteryYAML, `bonus_factor: "1.6"`, `bonus_factor: "1.6"`+"\n  labels: "+labels, 1)
	}

	gs, err := GetGameSettingByYAML([]byte(withLabels("{jackpot: 50000}")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lb := gs.Lottery.Labels; lb.Jackpot != 50_000 || lb.BigWin != 10_000 {
		t.Fatalf("big_win should default on its own, got %+v", lb)
	}
	if gs.Lottery.Label(240) != "WIN" {
		t.Fatalf("small payout should not be BIG WIN")
	}

	gs, err = GetGameSettingByYAML([]byte(withLabels("{jackpot: 5000}")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lb := gs.Lottery.Labels; lb.BigWin != 5000 {
		t.Fatalf("big_win default should not exceed jackpot, got %+v", lb)
	}

	gs, err = GetGameSettingByYAML([]byte(withLabels("{big_win: 2000}")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lb := gs.Lottery.Labels; lb.Jackpot != 100_000 || lb.BigWin != 2000 {
		t.Fatalf("jackpot should default on its own, got %+v", lb)
	}

	if _, err := GetGameSettingByYAML([]byte(withLabels("{jackpot: 1000, big_win: 2000}"))); err == nil || !strings.Contains(err.Error(), "above jackpot") {
		t.Fatalf("expected big_win above jackpot error, got %v", err)
	}
}

func TestSymbolSettingRetryKeepsWeight(t *testing.T) {
	ss := SymbolSetting{
		Symbols: []Symbol{
			{ID: "A", Weight: 3, Value: 1},
			{ID: "B", Weight: 2, Value: 5},
			{ID: "D", Weight: 1, Value: 25},
		},
		SpecialID: "X",
	}
	if err := ss.Init(); err == nil {
		t.Fatalf("expected unknown special symbol error")
	}
	ss.SpecialID = "D"
	if err := ss.Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ss.TotalWeight != 6 {
		t.Fatalf("expected total weight 6 after retry, got %d", ss.TotalWeight)
	}
	if p := ss.Probability(0); p != 0.5 {
		t.Fatalf("expected probability 0.5, got %v", p)
	}
}
