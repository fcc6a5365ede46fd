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

// Package recorder 模擬時逐局記錄結果，完成後整理成 stats.SimReport。
//
// 記錄過程只做 int 累加；每個 worker 各自持有一個 Recorder，最後再合併。
package recorder

import (
	"fmt"

	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/sdk/buf"
	"github.com/zintix-labs/casinolab/sdk/lotto"
	"github.com/zintix-labs/casinolab/spec"
	"github.com/zintix-labs/casinolab/stats"
)

// Recorder 遊戲紀錄員
type Recorder struct {
	Setting *spec.GameSetting
	Stake   int
	Basic   *BasicRecord
	Dist    *DistRecord
	Session stats.SessionStats
	Symbols []int // 各圖標出現次數（老虎機）
	Matches []int // 各命中數的張數（樂透）
}

// BasicRecord 基本遊戲資料紀錄
type BasicRecord struct {
	TotalBet      int
	TotalWin      int
	TotalWinSqSum int // 平方和
	SpecialCount  int
	JackpotAdded  int
	Rounds        int
}

// DistRecord 派彩區間落點統計
type DistRecord struct {
	Bucket          *stats.WinBucket
	TotalWinCollect []int
}

// NewRecorder 建立紀錄員；stake 必須是設定中的下注選項
func NewRecorder(gs *spec.GameSetting, stake int) (*Recorder, error) {
	if gs == nil {
		return nil, errs.NewFatal("recorder: nil game setting")
	}
	if !gs.AllowBet(stake) {
		return nil, errs.NewWarn(fmt.Sprintf("recorder: stake %d not in bet options %v", stake, gs.BetOptions))
	}
	r := &Recorder{
		Setting: gs,
		Stake:   stake,
		Basic:   new(BasicRecord),
		Dist: &DistRecord{
			Bucket:          stats.Buckets.ByStake(stake),
			TotalWinCollect: make([]int, stats.Buckets.Len()),
		},
	}
	switch gs.Kind {
	case spec.KindSlot:
		r.Symbols = make([]int, len(gs.Slot.Symbols))
	case spec.KindLottery:
		r.Matches = make([]int, gs.Lottery.Pick+1)
	}
	return r, nil
}

// RecordSpin 記錄一次轉動
func (r *Recorder) RecordSpin(sr *buf.SpinResult) {
	r.record(sr.Stake, sr.TotalPayout)
	r.Basic.SpecialCount += sr.SpecialCount
	r.Basic.JackpotAdded += sr.JackpotContribution
	for _, v := range sr.Grid.Cells {
		r.Symbols[v]++
	}
}

// RecordTicket 記錄一張彩券的對獎結果
func (r *Recorder) RecordTicket(tr lotto.TicketResult) {
	r.record(tr.Stake, tr.Payout)
	r.Matches[tr.MatchCount]++
}

func (r *Recorder) record(stake, win int) {
	r.Basic.Rounds++
	r.Basic.TotalBet += stake
	r.Basic.TotalWin += win
	r.Basic.TotalWinSqSum += win * win
	r.Dist.TotalWinCollect[r.Dist.Bucket.Index(win)]++
	r.Session = stats.RecordOutcome(r.Session, stake, win)
}

// Merge 合併多個紀錄員，需為同一遊戲與同一押注
func Merge(rs []*Recorder) (*Recorder, error) {
	if len(rs) == 0 {
		return nil, errs.NewFatal("merge recorder err : empty input")
	}
	r0 := rs[0]
	out, err := NewRecorder(r0.Setting, r0.Stake)
	if err != nil {
		return nil, err
	}
	for _, v := range rs {
		if v.Setting.GameID != r0.Setting.GameID || v.Setting.GameName != r0.Setting.GameName {
			return nil, errs.NewFatal("merge recorder err : different game")
		}
		if v.Stake != r0.Stake {
			return nil, errs.NewFatal("merge recorder err : different stake")
		}
		out.Basic.TotalBet += v.Basic.TotalBet
		out.Basic.TotalWin += v.Basic.TotalWin
		out.Basic.TotalWinSqSum += v.Basic.TotalWinSqSum
		out.Basic.SpecialCount += v.Basic.SpecialCount
		out.Basic.JackpotAdded += v.Basic.JackpotAdded
		out.Basic.Rounds += v.Basic.Rounds
		for i := range v.Dist.TotalWinCollect {
			out.Dist.TotalWinCollect[i] += v.Dist.TotalWinCollect[i]
		}
		for i := range v.Symbols {
			out.Symbols[i] += v.Symbols[i]
		}
		for i := range v.Matches {
			out.Matches[i] += v.Matches[i]
		}
		out.Session = out.Session.Merge(v.Session)
	}
	return out, nil
}

// Done 整理成報告
func (r *Recorder) Done() *stats.SimReport {
	stake := float64(r.Stake)
	rep := stats.NewSimReport(r.Setting, r.Stake)

	sm := rep.Summary
	sm.Rounds = r.Basic.Rounds
	sm.TotalBet = r.Basic.TotalBet
	sm.TotalWin = r.Basic.TotalWin
	sm.HitRounds = r.Session.Wins
	sm.NoWinRounds = r.Dist.TotalWinCollect[0]
	sm.BestWin = r.Session.BestWin
	sm.SpecialCount = r.Basic.SpecialCount
	sm.JackpotAdded = r.Basic.JackpotAdded

	rep.Mult.TotalWinMult = float64(r.Basic.TotalWin) / stake
	rep.Mult.TotalWinMultSqSum = float64(r.Basic.TotalWinSqSum) / (stake * stake)
	copy(rep.Dist.TotalWinCollect, r.Dist.TotalWinCollect)

	if rep.Symbols != nil {
		rep.Symbols.AddCounts(r.Symbols)
	}
	if rep.Lottery != nil {
		copy(rep.Lottery.MatchCollect, r.Matches)
	}
	rep.Done()
	return rep
}
