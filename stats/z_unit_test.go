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

package stats

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/casinolab/spec"
)

type outcome struct{ stake, payout int }

var outcomes = []outcome{
	{25, 0}, {25, 100}, {50, 0}, {25, 35}, {100, 0}, {25, 2450}, {50, 0}, {25, 0},
}

func fold(os []outcome) SessionStats {
	s := SessionStats{}
	for _, o := range os {
		s = RecordOutcome(s, o.stake, o.payout)
	}
	return s
}

func TestRecordOutcome(t *testing.T) {
	s := fold(outcomes)
	if s.Plays != 8 || s.Wins != 3 || s.Losses != 5 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.TotalWon != 2585 || s.TotalLost != 250 || s.TotalStaked != 325 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.BestWin != 2450 {
		t.Fatalf("expected best win 2450, got %d", s.BestWin)
	}
	if s.NetResult() != 2585-250 {
		t.Fatalf("unexpected net %d", s.NetResult())
	}
	if s.WinRate() != 3.0/8.0 {
		t.Fatalf("unexpected win rate %v", s.WinRate())
	}
}

func TestRecordOutcomeIsPure(t *testing.T) {
	s := SessionStats{}
	_ = RecordOutcome(s, 10, 5)
	if s.Plays != 0 {
		t.Fatalf("input must not be mutated")
	}
}

func TestWinRateZeroPlays(t *testing.T) {
	if r := (SessionStats{}).WinRate(); r != 0 {
		t.Fatalf("expected 0, got %v", r)
	}
}

func TestOrderIndependence(t *testing.T) {
	want := fold(outcomes)
	rev := make([]outcome, len(outcomes))
	for i, o := range outcomes {
		rev[len(outcomes)-1-i] = o
	}
	if got := fold(rev); got != want {
		t.Fatalf("reversed fold differs: %+v vs %+v", got, want)
	}
	// 任意切分後合併
	for cut := 0; cut <= len(outcomes); cut++ {
		got := fold(outcomes[:cut]).Merge(fold(outcomes[cut:]))
		if got != want {
			t.Fatalf("cut %d: merged %+v, want %+v", cut, got, want)
		}
	}
	a, b, c := fold(outcomes[:2]), fold(outcomes[2:5]), fold(outcomes[5:])
	if a.Merge(b).Merge(c) != a.Merge(b.Merge(c)) {
		t.Fatalf("merge not associative")
	}
	if got := float64(want.Wins) / float64(want.Plays); got != want.WinRate() {
		t.Fatalf("win rate mismatch")
	}
}

func TestSummarize(t *testing.T) {
	s := fold(outcomes)
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	sm := s.Summarize("Slots", start, start.Add(90*time.Second+300*time.Millisecond))
	if sm.Duration != 90*time.Second {
		t.Fatalf("unexpected duration %v", sm.Duration)
	}
	if sm.WinRatePct != 38 {
		t.Fatalf("expected 38%%, got %d", sm.WinRatePct)
	}
	out := sm.String()
	if !strings.Contains(out, "Slots") || !strings.Contains(out, "2,335") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestFmtTableAlignsWideRunes(t *testing.T) {
	out := fmtTable("t", []string{"💎", "ab"}, map[string]string{"💎": "1", "ab": "2"})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	w := runewidth.StringWidth(lines[0])
	for _, l := range lines {
		if runewidth.StringWidth(l) != w {
			t.Fatalf("misaligned row %q in\n%s", l, out)
		}
	}
}

func TestWinBucketIndex(t *testing.T) {
	wb := Buckets.ByStake(25)
	cases := map[int]int{0: 0, 1: 1, 24: 1, 25: 2, 49: 2, 50: 3, 25 * 2000: 12, 25 * 10000: 13}
	for win, want := range cases {
		if got := wb.Index(win); got != want {
			t.Fatalf("win %d: expected bucket %d, got %d", win, want, got)
		}
	}
}

func newSlotSetting(t *testing.T) *spec.GameSetting {
	t.Helper()
	gs := &spec.GameSetting{
		GameName:   "unit",
		Kind:       spec.KindSlot,
		BetOptions: []int{10},
		Slot: &spec.SlotSetting{
			SymbolSetting: spec.SymbolSetting{Symbols: []spec.Symbol{
				{ID: "A", Weight: 3, Value: 1},
				{ID: "B", Weight: 1, Value: 2},
			}},
			LineSetting: spec.LineSetting{LineTable: [][][2]int{{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}}},
			PaySetting:  spec.PaySetting{RunMultipliers: map[int]int{3: 1, 4: 3, 5: 10}},
		},
	}
	if err := gs.Slot.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return gs
}

func TestSimReportDone(t *testing.T) {
	gs := newSlotSetting(t)
	a := NewSimReport(gs, 10)
	// 三局各贏 0、20、10
	for _, win := range []int{0, 20, 10} {
		sm := a.Summary
		sm.Rounds++
		sm.TotalBet += 10
		sm.TotalWin += win
		if win > 0 {
			sm.HitRounds++
		} else {
			sm.NoWinRounds++
		}
		m := float64(win) / 10
		a.Mult.TotalWinMult += m
		a.Mult.TotalWinMultSqSum += m * m
		a.Dist.TotalWinCollect[Buckets.ByStake(10).Index(win)]++
	}
	a.Symbols.AddCounts([]int{3, 1})
	a.Symbols.AddCounts([]int{5, 3})
	a.Done()

	if a.Summary.RTP != 1.0 {
		t.Fatalf("expected RTP 1, got %v", a.Summary.RTP)
	}
	if math.Abs(a.Summary.Std-1.0) > 1e-9 {
		t.Fatalf("expected std 1, got %v", a.Summary.Std)
	}
	if a.Summary.RtpCI.Lo > 1 || a.Summary.RtpCI.Hi < 1 {
		t.Fatalf("CI should contain RTP: %+v", a.Summary.RtpCI)
	}
	if math.Abs(a.Summary.HitRate-2.0/3.0) > 1e-9 {
		t.Fatalf("unexpected hit rate %v", a.Summary.HitRate)
	}
	if a.Symbols.Observed[0] != 8 || a.Symbols.Observed[1] != 4 {
		t.Fatalf("unexpected symbol counts %v", a.Symbols.Observed)
	}
	if a.Symbols.PValue <= 0 || a.Symbols.PValue > 1 {
		t.Fatalf("p-value out of range %v", a.Symbols.PValue)
	}

	var buf bytes.Buffer
	if err := a.WriteWith(&buf, &JsonSimReportRender{}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	buf.Reset()
	if err := a.WriteWith(&buf, &YAMLSimReportRender{}); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "winbucket: [") {
		t.Fatalf("expected flow style sequence in yaml:\n%s", buf.String())
	}
	buf.Reset()
	a.StdOut(&buf, time.Second)
	if !strings.Contains(buf.String(), "Symbol Frequency") {
		t.Fatalf("expected symbol table:\n%s", buf.String())
	}
}

func TestProportionCICP(t *testing.T) {
	p, ci := proportionCICP(50, 100, 0.95)
	if p != 0.5 || ci.Lo >= 0.5 || ci.Hi <= 0.5 {
		t.Fatalf("unexpected %v %+v", p, ci)
	}
	if _, ci := proportionCICP(0, 0, 0.95); ci.Lo != 0 || ci.Hi != 1 {
		t.Fatalf("empty sample should give [0,1]")
	}
}
