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

const defaultMinRun = 3

// PaySetting 連線倍數與全域加成
//
//   - RunMultipliers: 連線長度 -> 倍數，需涵蓋 min_run..columns 且嚴格遞增
//   - BonusFactor: 整次轉動總派彩只乘一次的加成，結果無條件捨去
//   - JackpotSeed / JackpotIncrement: 累積彩池起始值與每個特殊符號的貢獻
type PaySetting struct {
	MinRun           int             `yaml:"min_run"            json:"min_run"`
	RunMultipliers   map[int]int     `yaml:"run_multipliers"    json:"run_multipliers"`
	BonusFactorStr   string          `yaml:"bonus_factor"       json:"bonus_factor"`
	JackpotSeed      int             `yaml:"jackpot_seed"       json:"jackpot_seed"`
	JackpotIncrement int             `yaml:"jackpot_increment"  json:"jackpot_increment"`
	BonusFactor      decimal.Decimal `yaml:"-"                  json:"-"`
	Multipliers      []int           `yaml:"-"                  json:"-"`
	initFlag         bool
}

// Init 檢查倍數表並建立以連線長度為索引的查表
func (ps *PaySetting) Init(screen *ScreenSetting) error {
	if ps.initFlag {
		return nil
	}
	if ps.MinRun == 0 {
		ps.MinRun = defaultMinRun
	}
	if ps.MinRun < 1 || ps.MinRun > screen.Columns {
		return errs.NewFatal(fmt.Sprintf("min_run %d out of range 1..%d", ps.MinRun, screen.Columns))
	}

	ps.Multipliers = make([]int, screen.Columns+1)
	prev := 0
	for run := ps.MinRun; run <= screen.Columns; run++ {
		m, ok := ps.RunMultipliers[run]
		if !ok {
			return errs.NewFatal(fmt.Sprintf("run_multipliers missing run length %d", run))
		}
		if m <= prev {
			return errs.NewFatal(fmt.Sprintf("run_multipliers must be strictly increasing, run %d has %d", run, m))
		}
		ps.Multipliers[run] = m
		prev = m
	}
	for run := range ps.RunMultipliers {
		if run < ps.MinRun || run > screen.Columns {
			return errs.NewFatal(fmt.Sprintf("run_multipliers has unreachable run length %d", run))
		}
	}

	f, err := ParseFactor(ps.BonusFactorStr)
	if err != nil {
		return err
	}
	ps.BonusFactor = f

	if ps.JackpotSeed < 0 || ps.JackpotIncrement < 0 {
		return errs.NewFatal("jackpot_seed and jackpot_increment must be non-negative")
	}
	ps.initFlag = true
	return nil
}

// Multiplier 回傳連線長度 run 的倍數，未達 min_run 為 0
func (ps *PaySetting) Multiplier(run int) int {
	if run < ps.MinRun || run >= len(ps.Multipliers) {
		return 0
	}
	return ps.Multipliers[run]
}

// ParseFactor 解析加成倍數字串，空字串視為 1；必須大於 0
func ParseFactor(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.NewFromInt(1), nil
	}
	f, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.Wrap(err, "invalid bonus_factor "+s)
	}
	if !f.IsPositive() {
		return decimal.Zero, errs.NewFatal("bonus_factor must be positive, got " + s)
	}
	return f, nil
}

// ApplyFactor 計算 floor(amount × factor)
func ApplyFactor(amount int, factor decimal.Decimal) int {
	if amount <= 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(amount)).Mul(factor).Floor().IntPart())
}
