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

// Package sampler 實作符號池（Look-Up Table 展開表）加權抽樣。
//
// 演算法原理：
//   - 將權重展開為一個長陣列，索引 i 出現的次數等於 weight_i。
//   - 抽樣時在展開後的陣列上均勻取一格，O(1)。
//
// 因此抽到 i 的機率為 weight_i / Σweight，而不是對符號列表均勻抽樣。
package sampler

import (
	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/sdk/core"
)

const maxLUTCap uint64 = 10_000_000 // 約 80MB (int slice)

var (
	ErrEmptyWeights   = errs.NewFatal("lut: weight table is empty")
	ErrNegativeWeight = errs.NewFatal("lut: negative weight")
	ErrZeroWeights    = errs.NewFatal("lut: all weights are zero")
	ErrWeightOverflow = errs.NewFatal("lut: total weight exceeds limit")
)

// LUT 展開後的符號池
//
// 舉例：三個符號權重 [3,5,0]
//
//	展開 -> [0,0,0,1,1,1,1,1]
//
// 抽到 idx 0 的機率 3/8，idx 1 為 5/8，idx 2 永遠抽不到。
type LUT []int

// BuildLUT 根據權重列表建立查找表；空表、負權重、總和為 0 或過大皆回傳錯誤。
// 建表 O(Σweight)，在載入設定時呼叫一次，之後唯讀共用。
func BuildLUT[T Integers](src []T) (LUT, error) {
	if len(src) == 0 {
		return nil, ErrEmptyWeights
	}
	acc := uint64(0)
	for i, v := range src {
		if v < 0 {
			return nil, errs.Wrapf(ErrNegativeWeight, "build lut: index %d", i)
		}
		acc += uint64(v)
		if acc > maxLUTCap {
			return nil, ErrWeightOverflow
		}
	}
	if acc == 0 {
		return nil, ErrZeroWeights
	}

	lut := make(LUT, 0, int(acc))
	for i, v := range src {
		for j := T(0); j < v; j++ {
			lut = append(lut, i)
		}
	}
	return lut, nil
}

// Pick 均勻抽取展開表中的一格，回傳原始索引；lut 為空回傳 -1
func (l LUT) Pick(c *core.Core) int {
	return c.Pick(l)
}

// weight 回傳索引 idx 在表中佔的格數
func (l LUT) weight(idx int) int {
	n := 0
	for _, v := range l {
		if v == idx {
			n++
		}
	}
	return n
}
