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

	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/sdk/buf"
	"github.com/zintix-labs/casinolab/sdk/calc"
	"github.com/zintix-labs/casinolab/sdk/core"
	"github.com/zintix-labs/casinolab/sdk/gen"
	"github.com/zintix-labs/casinolab/spec"
)

// ErrStakeNotAllowed 押注不在設定的下注選項中
var ErrStakeNotAllowed = errs.NewWarn("stake not in bet options")

// Machine 封裝一台老虎機。
//
// 並發語意：
//   - 盤面與結果 buffer 會被重用，同一台 Machine 的 Spin 以 mu 序列化。
//   - 要併發請用 MachinePool 或建立多台 Machine。
//
// Spin 回傳的結果是複本，可安全保留；spinInternal 回傳內部 buffer，僅供模擬器熱路徑使用。
type Machine struct {
	gameName string            // 遊戲名稱（日誌/觀測用）
	gameId   spec.GID          // 目錄內唯一
	gs       *spec.GameSetting // 唯讀設定
	core     *core.Core        // 每台機台獨立的亂數核心
	gen      *gen.GridGenerator
	sr       *buf.SpinResult
	mu       sync.Mutex
	initseed int64 // 出生 seed；完整重現請用 Snapshot/Restore
}

func newMachineWithSeed(gs *spec.GameSetting, cf core.PRNGFactory, seed int64) (*Machine, error) {
	if gs == nil || gs.Slot == nil {
		return nil, errs.NewFatal("machine: slot setting required")
	}
	c := core.New(cf.New(seed))
	m := &Machine{
		gameName: gs.GameName,
		gameId:   gs.GameID,
		gs:       gs,
		core:     c,
		gen:      gen.NewGridGenerator(c, gs.Slot),
		sr: &buf.SpinResult{
			GameName: gs.GameName,
			GameID:   gs.GameID,
			Lines:    make([]buf.PaylineResult, 0, len(gs.Slot.Lines)),
		},
		initseed: seed,
	}
	return m, nil
}

// Spin 產生一個盤面並結算，回傳獨立的結果複本
func (m *Machine) Spin(stake int) (*buf.SpinResult, error) {
	if !m.gs.AllowBet(stake) {
		return nil, errs.Wrapf(ErrStakeNotAllowed, "game %s stake %d", m.gameName, stake)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneSpinResult(m.spinInternal(stake)), nil
}

// spinInternal 不加鎖、不檢查押注、不複製，結果在下一次 spin 前有效
func (m *Machine) spinInternal(stake int) *buf.SpinResult {
	grid := m.gen.Gen()
	calc.EvaluateSpinInto(m.sr, grid, m.gs.Slot, stake)
	return m.sr
}

// GameName 遊戲名稱
func (m *Machine) GameName() string { return m.gameName }

// GameID 遊戲 ID
func (m *Machine) GameID() spec.GID { return m.gameId }

// Setting 遊戲設定（唯讀）
func (m *Machine) Setting() *spec.GameSetting { return m.gs }

// InitSeed 出生 seed
func (m *Machine) InitSeed() int64 { return m.initseed }

// Snapshot 保存亂數核心狀態
func (m *Machine) Snapshot() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.core.Snapshot()
}

// Restore 還原亂數核心狀態，之後的 Spin 會重現保存當下之後的序列
func (m *Machine) Restore(state []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.core.Restore(state); err != nil {
		return errs.Wrap(err, "machine restore")
	}
	return nil
}

func cloneSpinResult(sr *buf.SpinResult) *buf.SpinResult {
	out := *sr
	out.Grid = sr.Grid.Clone()
	out.Lines = make([]buf.PaylineResult, len(sr.Lines))
	for i, l := range sr.Lines {
		l.WinningCells = append([]spec.Cell(nil), l.WinningCells...)
		out.Lines[i] = l
	}
	out.SpecialCells = append([]spec.Cell(nil), sr.SpecialCells...)
	return &out
}
