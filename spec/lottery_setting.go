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
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/casinolab/errs"
)

// LotterySetting 樂透設定（預設 6/49）
//
//   - PrizeTable: 命中數 -> 基本獎金，需涵蓋 min_match..pick
//   - BonusFactor: 對每一張中獎票統一乘上的加成，結果無條件捨去
//   - Labels: 派彩顯示門檻（JACKPOT / BIG WIN）
type LotterySetting struct {
	MaxNumber      int             `yaml:"max_number"    json:"max_number"`
	Pick           int             `yaml:"pick"          json:"pick"`
	MinMatch       int             `yaml:"min_match"     json:"min_match"`
	TicketPrice    int             `yaml:"ticket_price"  json:"ticket_price"`
	PrizeTable     map[int]int     `yaml:"prize_table"   json:"prize_table"`
	BonusFactorStr string          `yaml:"bonus_factor"  json:"bonus_factor"`
	Labels         LabelSetting    `yaml:"labels"        json:"labels"`
	BonusFactor    decimal.Decimal `yaml:"-"             json:"-"`
	initFlag       bool
}

// LabelSetting 派彩標籤門檻
type LabelSetting struct {
	Jackpot int `yaml:"jackpot"  json:"jackpot"`
	BigWin  int `yaml:"big_win"  json:"big_win"`
}

const (
	defaultJackpotLabel = 100_000
	defaultBigWinLabel  = 10_000
)

// init 各門檻未設定時各自補預設值，BIG WIN 不可高於 JACKPOT
func (lb *LabelSetting) init() error {
	if lb.Jackpot == 0 {
		lb.Jackpot = defaultJackpotLabel
	}
	if lb.BigWin == 0 {
		lb.BigWin = min(defaultBigWinLabel, lb.Jackpot)
	}
	if lb.Jackpot < 0 || lb.BigWin < 0 {
		return errs.NewFatal(fmt.Sprintf("labels must be positive, jackpot=%d big_win=%d", lb.Jackpot, lb.BigWin))
	}
	if lb.BigWin > lb.Jackpot {
		return errs.NewFatal(fmt.Sprintf("labels big_win %d above jackpot %d", lb.BigWin, lb.Jackpot))
	}
	return nil
}

// Init 檢查設定
func (ls *LotterySetting) Init() error {
	if ls.initFlag {
		return nil
	}
	if ls.MaxNumber == 0 && ls.Pick == 0 {
		ls.MaxNumber, ls.Pick = 49, 6
	}
	if ls.Pick <= 0 || ls.MaxNumber < ls.Pick {
		return errs.NewFatal(fmt.Sprintf("invalid lottery shape pick=%d max_number=%d", ls.Pick, ls.MaxNumber))
	}
	if ls.MinMatch == 0 {
		ls.MinMatch = 3
	}
	if ls.MinMatch < 1 || ls.MinMatch > ls.Pick {
		return errs.NewFatal(fmt.Sprintf("min_match %d out of range 1..%d", ls.MinMatch, ls.Pick))
	}
	if ls.TicketPrice <= 0 {
		return errs.NewFatal("ticket_price must be positive")
	}
	prev := 0
	for m := ls.MinMatch; m <= ls.Pick; m++ {
		p, ok := ls.PrizeTable[m]
		if !ok {
			return errs.NewFatal(fmt.Sprintf("prize_table missing tier %d", m))
		}
		if p < prev || p <= 0 {
			return errs.NewFatal(fmt.Sprintf("prize_table tier %d has %d, tiers must be positive and non-decreasing", m, p))
		}
		prev = p
	}
	for m := range ls.PrizeTable {
		if m < ls.MinMatch || m > ls.Pick {
			return errs.NewFatal(fmt.Sprintf("prize_table has unreachable tier %d", m))
		}
	}
	f, err := ParseFactor(ls.BonusFactorStr)
	if err != nil {
		return err
	}
	ls.BonusFactor = f
	if err := ls.Labels.init(); err != nil {
		return err
	}
	ls.initFlag = true
	return nil
}

// Prize 回傳命中 m 個號碼的實際派彩 floor(prize[m] × bonusFactor)
func (ls *LotterySetting) Prize(m int) int {
	if m < ls.MinMatch {
		return 0
	}
	return ApplyFactor(ls.PrizeTable[m], ls.BonusFactor)
}

// Label 依派彩金額回傳顯示標籤
func (ls *LotterySetting) Label(payout int) string {
	switch {
	case payout <= 0:
		return ""
	case payout >= ls.Labels.Jackpot:
		return "JACKPOT"
	case payout >= ls.Labels.BigWin:
		return "BIG WIN"
	default:
		return "WIN"
	}
}
