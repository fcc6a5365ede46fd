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

package recorder

import (
	"testing"

	"github.com/zintix-labs/casinolab/sdk/buf"
	"github.com/zintix-labs/casinolab/sdk/lotto"
	"github.com/zintix-labs/casinolab/spec"
)

func slotSetting(t *testing.T) *spec.GameSetting {
	t.Helper()
	gs, err := spec.GetGameSettingByYAML([]byte(`
game_name: rec_slot
game_id: 1
kind: slot
bet_options: [10]
slot:
  symbols:
    - {id: A, weight: 1, value: 1}
    - {id: B, weight: 1, value: 2}
  special_symbol: B
  paylines: [[[0,0],[1,0],[2,0],[3,0],[4,0]]]
  run_multipliers: {3: 1, 4: 3, 5: 10}
  jackpot_increment: 100
`))
	if err != nil {
		t.Fatalf("setting: %v", err)
	}
	return gs
}

func spin(stake, payout, special int) *buf.SpinResult {
	g := buf.NewGrid(5, 3)
	for i := 0; i < special; i++ {
		g.Cells[i] = 1
	}
	return &buf.SpinResult{Stake: stake, Grid: g, TotalPayout: payout, SpecialCount: special, JackpotContribution: special * 100}
}

func TestRecorderRejectsStake(t *testing.T) {
	if _, err := NewRecorder(slotSetting(t), 7); err == nil {
		t.Fatalf("expected error for stake outside bet options")
	}
}

func TestRecorderMergeAndDone(t *testing.T) {
	gs := slotSetting(t)
	r1, _ := NewRecorder(gs, 10)
	r2, _ := NewRecorder(gs, 10)
	r1.RecordSpin(spin(10, 0, 2))
	r1.RecordSpin(spin(10, 30, 0))
	r2.RecordSpin(spin(10, 0, 1))
	r2.RecordSpin(spin(10, 0, 0))

	m, err := Merge([]*Recorder{r1, r2})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	rep := m.Done()
	sm := rep.Summary
	if sm.Rounds != 4 || sm.TotalBet != 40 || sm.TotalWin != 30 {
		t.Fatalf("unexpected summary: %+v", sm)
	}
	if sm.HitRounds != 1 || sm.NoWinRounds != 3 || sm.BestWin != 30 {
		t.Fatalf("unexpected hits: %+v", sm)
	}
	if sm.SpecialCount != 3 || sm.JackpotAdded != 300 {
		t.Fatalf("unexpected specials: %+v", sm)
	}
	if sm.RTP != 0.75 {
		t.Fatalf("expected RTP 0.75, got %v", sm.RTP)
	}
	if rep.Symbols.Observed[1] != 3 || rep.Symbols.Observed[0] != 57 {
		t.Fatalf("unexpected symbol counts %v", rep.Symbols.Observed)
	}
	if m.Session.TotalLost != 30 || m.Session.NetResult() != 0 {
		t.Fatalf("unexpected session: %+v", m.Session)
	}
}

func TestRecorderMergeRejectsDifferentStake(t *testing.T) {
	gs := slotSetting(t)
	gs.BetOptions = []int{10, 20}
	r1, _ := NewRecorder(gs, 10)
	r2, _ := NewRecorder(gs, 20)
	if _, err := Merge([]*Recorder{r1, r2}); err == nil {
		t.Fatalf("expected stake mismatch error")
	}
}

func TestRecordTicket(t *testing.T) {
	gs, err := spec.GetGameSettingByYAML([]byte(`
game_name: rec_lotto
kind: lottery
lottery:
  ticket_price: 50
  prize_table: {3: 150, 4: 2000, 5: 75000, 6: 2000000}
  bonus_factor: "1.6"
`))
	if err != nil {
		t.Fatalf("setting: %v", err)
	}
	r, err := NewRecorder(gs, 50)
	if err != nil {
		t.Fatalf("recorder: %v", err)
	}
	r.RecordTicket(lotto.TicketResult{Stake: 50, MatchCount: 3, Payout: 240})
	r.RecordTicket(lotto.TicketResult{Stake: 50, MatchCount: 0})
	rep := r.Done()
	if rep.Lottery.MatchCollect[3] != 1 || rep.Lottery.MatchCollect[0] != 1 {
		t.Fatalf("unexpected matches %v", rep.Lottery.MatchCollect)
	}
	if rep.Summary.TotalWin != 240 || rep.Summary.Kind != spec.KindLottery {
		t.Fatalf("unexpected summary %+v", rep.Summary)
	}
}
