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

package buf

import "github.com/zintix-labs/casinolab/spec"

// PaylineResult 單線結算
//
// MatchCount 為由第 0 軸起算的連線長度（未中獎時仍記錄實際長度）；
// WinningCells 只在中獎時填入，依軸序排列。
type PaylineResult struct {
	Line         int         `json:"line"`
	IsWin        bool        `json:"is_win"`
	Payout       int         `json:"payout"`
	MatchCount   int         `json:"match_count"`
	Symbol       int         `json:"symbol"`
	WinningCells []spec.Cell `json:"winning_cells,omitempty"`
	Label        string      `json:"label,omitempty"`
}

// SpinResult 一次轉動的彙總
//
//   - LinePayout: Σ 各線派彩
//   - TotalPayout: floor(LinePayout × bonusFactor)，加成只套用一次
//   - SpecialCount / SpecialCells: 整個盤面上的特殊符號，與是否連線無關
type SpinResult struct {
	GameName            string          `json:"game_name"`
	GameID              spec.GID        `json:"game_id"`
	Stake               int             `json:"stake"`
	Grid                *Grid           `json:"grid"`
	Lines               []PaylineResult `json:"lines"`
	LinePayout          int             `json:"line_payout"`
	TotalPayout         int             `json:"total_payout"`
	SpecialCount        int             `json:"special_count"`
	SpecialCells        []spec.Cell     `json:"special_cells,omitempty"`
	JackpotContribution int             `json:"jackpot_contribution"`
}

// WinLines 回傳中獎的線
func (s *SpinResult) WinLines() []PaylineResult {
	out := make([]PaylineResult, 0, len(s.Lines))
	for _, l := range s.Lines {
		if l.IsWin {
			out = append(out, l)
		}
	}
	return out
}

// IsWin 是否有派彩
func (s *SpinResult) IsWin() bool { return s.TotalPayout > 0 }

// Reset 清空累積資料，保留切片容量
func (s *SpinResult) Reset() {
	s.Stake = 0
	s.Lines = s.Lines[:0]
	s.LinePayout = 0
	s.TotalPayout = 0
	s.SpecialCount = 0
	s.SpecialCells = s.SpecialCells[:0]
	s.JackpotContribution = 0
}
