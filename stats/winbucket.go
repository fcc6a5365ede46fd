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

import "sync"

const (
	maxLutMult int = 2000
	maxMult    int = 10000
)

// WinBuckets 依押注金額快取派彩倍數分桶表
type WinBuckets struct {
	mu           sync.Mutex
	winBucket    []int
	winBucketStr []string
	winBucketMap map[int]*WinBucket
}

// WinBucket 單一押注金額的派彩 -> 分桶索引反查表
type WinBucket struct {
	maxCheckWin  int
	lutMaxWin    int
	winBucketLUT []int
	justOverIdx  int
	maxIdx       int
}

// Buckets
//
// 用來快速定位派彩 -> 分桶位置 O(1)
//   - 贏倍區間: [0,0], (0,1), [1,2), [2,5), ..., [2000,10000), [10000, +inf)
var Buckets = &WinBuckets{
	winBucket:    []int{0, 1, 2, 5, 10, 20, 50, 100, 300, 500, 1000, 2000, 10000},
	winBucketStr: []string{"[0,0]", "(0,1)", "[1,2)", "[2,5)", "[5,10)", "[10,20)", "[20,50)", "[50,100)", "[100,300)", "[300,500)", "[500,1000)", "[1000,2000)", "[2000,10000)", "[10000,+inf)"},
	winBucketMap: make(map[int]*WinBucket),
}

func (b *WinBuckets) WinBucketStr() []string {
	return b.winBucketStr
}

// Len 分桶數量
func (b *WinBuckets) Len() int {
	return len(b.winBucketStr)
}

// ByStake 取得押注金額 stake 的分桶表，首次使用時建立
func (b *WinBuckets) ByStake(stake int) *WinBucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	result, exist := b.winBucketMap[stake]
	if !exist {
		result = b.build(stake)
		b.winBucketMap[stake] = result
	}
	return result
}

func (b *WinBuckets) build(stake int) *WinBucket {
	// LUT 只建到 2000 倍
	maxLut := stake * maxLutMult

	// 倍數邊界 -> 派彩邊界
	winGp := make([]int, len(b.winBucket))
	for i, v := range b.winBucket {
		winGp[i] = stake * v
	}

	lut := make([]int, maxLut)
	idx := 1
	last := len(winGp) - 1
	for i := 1; i < maxLut; i++ {
		for idx < last && i >= winGp[idx] {
			idx++
		}
		lut[i] = idx
	}

	return &WinBucket{
		maxCheckWin:  stake * maxMult,
		lutMaxWin:    maxLut,
		winBucketLUT: lut,
		justOverIdx:  len(winGp) - 1,
		maxIdx:       len(winGp),
	}
}

// Index 回傳派彩 win 所屬的分桶索引
func (wb *WinBucket) Index(win int) int {
	if win >= wb.lutMaxWin {
		if win >= wb.maxCheckWin {
			return wb.maxIdx
		}
		return wb.justOverIdx
	}
	return wb.winBucketLUT[win]
}
