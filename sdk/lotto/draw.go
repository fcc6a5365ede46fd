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

// Package lotto 樂透開獎與對獎。
//
// 開獎以拒絕採樣取得 pick 個不重複號碼後排序；特別號獨立抽取，
// 不排除與主號重複，也不計入命中數。
package lotto

import (
	"slices"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/casinolab/sdk/core"
	"github.com/zintix-labs/casinolab/spec"
)

// DrawResult 一次開獎
type DrawResult struct {
	WinningNumbers []int           `json:"winning_numbers"`
	BonusNumber    int             `json:"bonus_number"`
	PrizeTable     map[int]int     `json:"prize_table"`
	BonusFactor    decimal.Decimal `json:"bonus_factor"`
	MinMatch       int             `json:"min_match"`
}

// Draw 開獎
func Draw(c *core.Core, ls *spec.LotterySetting) DrawResult {
	return DrawResult{
		WinningNumbers: uniqueSorted(c, ls.Pick, ls.MaxNumber),
		BonusNumber:    c.IntRange(1, ls.MaxNumber),
		PrizeTable:     ls.PrizeTable,
		BonusFactor:    ls.BonusFactor,
		MinMatch:       ls.MinMatch,
	}
}

// QuickPick 電腦選號：與開獎相同的方式取 pick 個不重複號碼
func QuickPick(c *core.Core, ls *spec.LotterySetting) []int {
	return uniqueSorted(c, ls.Pick, ls.MaxNumber)
}

// uniqueSorted 一次抽一個 [1,max] 的號碼，重複就丟掉重抽，湊滿 n 個後排序
func uniqueSorted(c *core.Core, n, max int) []int {
	seen := make(map[int]struct{}, n)
	out := make([]int, 0, n)
	for len(out) < n {
		v := c.IntRange(1, max)
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
