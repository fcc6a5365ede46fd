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

// Package calc 結算老虎機盤面。
//
// 連線只從第 0 軸起算（左錨定），不找線中間開始的連線；
// 各線獨立結算後加總，全域加成只在總額上套用一次。
package calc

import (
	"strings"

	"github.com/zintix-labs/casinolab/sdk/buf"
	"github.com/zintix-labs/casinolab/spec"
)

// EvaluateLine 結算單一線
//
// 沿線讀取各軸圖標，從最左格開始計算與首格相同的連續格數 run；
// run >= min_run 才中獎，派彩 = stake × value × multiplier(run)。
func EvaluateLine(line spec.Payline, grid *buf.Grid, stake int, ss *spec.SlotSetting) buf.PaylineResult {
	first := grid.AtCell(line[0])
	run := 1
	for pos := 1; pos < len(line); pos++ {
		if grid.AtCell(line[pos]) != first {
			break
		}
		run++
	}

	res := buf.PaylineResult{MatchCount: run, Symbol: first}
	mult := ss.Multiplier(run)
	if mult == 0 {
		return res
	}
	sym := ss.Symbols[first]
	res.IsWin = true
	res.Payout = stake * sym.Value * mult
	res.WinningCells = make([]spec.Cell, run)
	copy(res.WinningCells, line[:run])
	res.Label = label(ss, first)
	return res
}

// EvaluateSpin 結算整個盤面並回傳新的 SpinResult
func EvaluateSpin(grid *buf.Grid, ss *spec.SlotSetting, stake int) *buf.SpinResult {
	sr := &buf.SpinResult{}
	EvaluateSpinInto(sr, grid, ss, stake)
	return sr
}

// EvaluateSpinInto 同 EvaluateSpin，但寫入呼叫端提供的 SpinResult（熱路徑重用）
//
// 同一格可同時屬於多條中獎線，各線的 WinningCells 各自保留該格；
// 總派彩為各線派彩之和，不以格計算。
func EvaluateSpinInto(sr *buf.SpinResult, grid *buf.Grid, ss *spec.SlotSetting, stake int) {
	sr.Reset()
	sr.Stake = stake
	sr.Grid = grid
	for i, line := range ss.Lines {
		lr := EvaluateLine(line, grid, stake, ss)
		lr.Line = i
		sr.Lines = append(sr.Lines, lr)
		sr.LinePayout += lr.Payout
	}
	sr.TotalPayout = spec.ApplyFactor(sr.LinePayout, ss.BonusFactor)

	if ss.Special != spec.NoSymbol {
		for col := 0; col < grid.Columns; col++ {
			for row := 0; row < grid.Rows; row++ {
				if grid.At(col, row) == ss.Special {
					sr.SpecialCount++
					sr.SpecialCells = append(sr.SpecialCells, spec.Cell{Col: col, Row: row})
				}
			}
		}
		sr.JackpotContribution = sr.SpecialCount * ss.JackpotIncrement
	}
}

func label(ss *spec.SlotSetting, sym int) string {
	if sym != ss.Special {
		return "WIN"
	}
	name := ss.Symbols[sym].Name
	if name == "" {
		name = ss.Symbols[sym].ID
	}
	return strings.ToUpper(name) + " WIN"
}
