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
	"sync"
	"time"

	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/sdk/core"
	"github.com/zintix-labs/casinolab/sdk/lotto"
	"github.com/zintix-labs/casinolab/spec"
)

// Desk 樂透櫃台：開獎、電腦選號、開票與對獎。
//
// 亂數核心以 mu 保護，可被多個 goroutine 共用。
type Desk struct {
	gameName string
	gameId   spec.GID
	gs       *spec.GameSetting
	core     *core.Core
	mu       sync.Mutex
	initseed int64
}

func newDeskWithSeed(gs *spec.GameSetting, cf core.PRNGFactory, seed int64) (*Desk, error) {
	if gs == nil || gs.Lottery == nil {
		return nil, errs.NewFatal("desk: lottery setting required")
	}
	return &Desk{
		gameName: gs.GameName,
		gameId:   gs.GameID,
		gs:       gs,
		core:     core.New(cf.New(seed)),
		initseed: seed,
	}, nil
}

// Draw 開獎
func (d *Desk) Draw() lotto.DrawResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	return lotto.Draw(d.core, d.gs.Lottery)
}

// QuickPick 電腦選號
func (d *Desk) QuickPick() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return lotto.QuickPick(d.core, d.gs.Lottery)
}

// NewTicket 開票；numbers 為空時改用電腦選號
func (d *Desk) NewTicket(numbers []int, stake int, now time.Time) (lotto.Ticket, error) {
	if !d.gs.AllowBet(stake) {
		return lotto.Ticket{}, errs.Wrapf(ErrStakeNotAllowed, "game %s stake %d", d.gameName, stake)
	}
	if len(numbers) == 0 {
		numbers = d.QuickPick()
	}
	t, err := lotto.NewTicket(numbers, stake, now, d.gs.Lottery)
	if err != nil {
		return lotto.Ticket{}, err
	}
	t.GameID = d.gameId
	return t, nil
}

// Score 以同一次開獎對獎並補上中獎標籤，回傳各張結果與總派彩
func (d *Desk) Score(ts []lotto.Ticket, dr lotto.DrawResult) ([]lotto.TicketResult, int) {
	res, total := lotto.ScoreTickets(ts, dr)
	for i := range res {
		res[i].Label = d.gs.Lottery.Label(res[i].Payout)
	}
	return res, total
}

// GameName 遊戲名稱
func (d *Desk) GameName() string { return d.gameName }

// GameID 遊戲 ID
func (d *Desk) GameID() spec.GID { return d.gameId }

// Setting 遊戲設定（唯讀）
func (d *Desk) Setting() *spec.GameSetting { return d.gs }

// InitSeed 出生 seed
func (d *Desk) InitSeed() int64 { return d.initseed }
