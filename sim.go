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

package casinolab

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/recorder"
	"github.com/zintix-labs/casinolab/sdk/core"
	"github.com/zintix-labs/casinolab/sdk/lotto"
	"github.com/zintix-labs/casinolab/spec"
	"github.com/zintix-labs/casinolab/stats"
)

// 每跑這麼多局檢查一次 ctx
const ctxCheckEvery = 1 << 12

// Simulator 大量模擬單一遊戲，每個 worker 有自己的機台（或櫃台）與紀錄員，最後合併成一份報表。
//
// 老虎機：一局為一次 Spin。
// 樂透：一局為一張電腦選號彩券對上一次新的開獎。
type Simulator struct {
	GameName string
	GameId   spec.GID
	gs       *spec.GameSetting
	cf       core.PRNGFactory
	initSeed int64
	seeds    *seedMaker
	Progress io.Writer // nil 表示不顯示進度條
}

func newSimulatorWithSeed(gs *spec.GameSetting, cf core.PRNGFactory, seed int64) *Simulator {
	return &Simulator{
		GameName: gs.GameName,
		GameId:   gs.GameID,
		gs:       gs,
		cf:       cf,
		initSeed: seed,
		seeds:    newSeedMaker(seed),
	}
}

// InitSeed 模擬器 seed；相同 seed 與參數可重現同一份報表
func (s *Simulator) InitSeed() int64 { return s.initSeed }

// Run 以 workers 個 goroutine 各跑 rounds 局，回傳合併後的報表與用時。
//
// ctx 取消時提前結束並回傳 Warn。
func (s *Simulator) Run(ctx context.Context, rounds int, stake int, workers int) (*stats.SimReport, time.Duration, error) {
	if workers <= 0 {
		return nil, 0, errs.NewWarn("workers must > 0")
	}
	if rounds < 1 {
		return nil, 0, errs.NewWarn("rounds must > 0")
	}
	if !s.gs.AllowBet(stake) {
		return nil, 0, errs.Wrapf(ErrStakeNotAllowed, "game %s stake %d", s.GameName, stake)
	}

	type job struct {
		play func() // 跑一局並記錄
		rec  *recorder.Recorder
	}
	jobs := make([]job, workers)
	for i := range jobs {
		rec, err := recorder.NewRecorder(s.gs, stake)
		if err != nil {
			return nil, 0, err
		}
		play, err := s.player(rec, stake, s.seeds.next())
		if err != nil {
			return nil, 0, err
		}
		jobs[i] = job{play: play, rec: rec}
	}

	bar := pb.StartNew(rounds * workers)
	if s.Progress == nil {
		bar.SetWriter(io.Discard)
	} else {
		bar.SetWriter(s.Progress)
	}

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for _, j := range jobs {
		go func(j job) {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				if r%ctxCheckEvery == 0 && ctx.Err() != nil {
					return
				}
				j.play()
				bar.Increment()
			}
		}(j)
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	if err := ctx.Err(); err != nil {
		return nil, used, errs.WarnWrap(err, "simulation canceled")
	}

	rs := make([]*recorder.Recorder, len(jobs))
	for i, j := range jobs {
		rs[i] = j.rec
	}
	merged, err := recorder.Merge(rs)
	if err != nil {
		return nil, used, err
	}
	return merged.Done(), used, nil
}

// player 依遊戲種類建立一個 worker 的單局函式
func (s *Simulator) player(rec *recorder.Recorder, stake int, seed int64) (func(), error) {
	switch s.gs.Kind {
	case spec.KindSlot:
		m, err := newMachineWithSeed(s.gs, s.cf, seed)
		if err != nil {
			return nil, err
		}
		return func() {
			rec.RecordSpin(m.spinInternal(stake))
		}, nil
	case spec.KindLottery:
		d, err := newDeskWithSeed(s.gs, s.cf, seed)
		if err != nil {
			return nil, err
		}
		ls := s.gs.Lottery
		return func() {
			t := lotto.Ticket{Numbers: lotto.QuickPick(d.core, ls), Stake: stake}
			rec.RecordTicket(lotto.ScoreTicket(t, lotto.Draw(d.core, ls)))
		}, nil
	default:
		return nil, errs.Fatalf("simulator: unsupported game kind %q", s.gs.Kind)
	}
}
