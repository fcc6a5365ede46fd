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

// Package casinolab 提供遊戲結果引擎的「組裝入口」與「運行入口」。
//
// Lab 把兩個地基組裝在一起：
//  1. Catalog：遊戲目錄，決定有哪些遊戲與各自的設定（老虎機或樂透）。
//  2. PRNGFactory：亂數核心工廠，同一個 seed 必須得到同一段序列，方便重現與審計。
//
// 對外的最小單位：
//   - Machine：老虎機，提供 Spin。
//   - Desk：樂透櫃台，提供開獎、選號與對獎。
//   - MachinePool：同一款老虎機的多台機台，供併發請求借用。
//   - Casino：所有遊戲的 runtime，並負責把結果寫回玩家 session。
//   - Simulator：大量模擬，輸出 RTP 與分佈報表。
//
// 引擎本身不處理餘額與登入；餘額檢查、扣款與統計由 Casino 在 session 上完成。
package casinolab

import (
	"io/fs"

	"github.com/zintix-labs/casinolab/catalog"
	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/sdk/core"
	"github.com/zintix-labs/casinolab/spec"
)

// Configs 把一或多個設定來源打包成 New() 需要的參數。
//
// 可用 go:embed 把設定編進 binary，也可用 os.DirFS 在本機開發時讀取目錄。
func Configs(cfgs ...fs.FS) []fs.FS {
	return cfgs
}

// Lab 是組裝器：持有目錄、亂數工廠與派生子 seed 的來源。
//
// 建立後目錄不再變動；同一個 Lab 建出的 Machine/Desk 都使用同一個 PRNGFactory。
type Lab struct {
	cat   *catalog.Catalog
	cf    core.PRNGFactory
	seed  int64
	seeds *seedMaker
}

// New 建立 Lab；seed 以 crypto/rand 產生。
//
// 任一設定檔解析或驗證失敗即回傳 Fatal，不會留下半套目錄。
func New(cf core.PRNGFactory, cfgs []fs.FS) (*Lab, error) {
	return NewWithSeed(cf, cfgs, core.NewSeed())
}

// NewWithSeed 以指定 base seed 建立 Lab，之後所有機台的 seed 皆由此派生。
func NewWithSeed(cf core.PRNGFactory, cfgs []fs.FS, seed int64) (*Lab, error) {
	if cf == nil {
		return nil, errs.NewFatal("prng factory required")
	}
	if len(cfgs) == 0 {
		return nil, errs.NewFatal("configs required")
	}
	cat, err := catalog.New(cfgs...)
	if err != nil {
		return nil, err
	}
	return &Lab{
		cat:   cat,
		cf:    cf,
		seed:  seed,
		seeds: newSeedMaker(seed),
	}, nil
}

// Catalog 回傳遊戲目錄（唯讀使用）
func (l *Lab) Catalog() *catalog.Catalog {
	return l.cat
}

// Seed 回傳 base seed
func (l *Lab) Seed() int64 {
	return l.seed
}

// Summaries 列出所有遊戲
func (l *Lab) Summaries() []catalog.Summary {
	return l.cat.All()
}

// setting 取得指定種類的遊戲設定；種類不符視為呼叫端錯誤
func (l *Lab) setting(gid spec.GID, kind spec.GameKind) (*spec.GameSetting, error) {
	gs, err := l.cat.GameSettingById(gid)
	if err != nil {
		return nil, err
	}
	if gs.Kind != kind {
		return nil, errs.Warnf("game %d is %s, not %s", gid, gs.Kind, kind)
	}
	return gs, nil
}

// NewMachine 建立一台老虎機，seed 由 Lab 派生
func (l *Lab) NewMachine(gid spec.GID) (*Machine, error) {
	return l.NewMachineWithSeed(gid, l.seeds.next())
}

// NewMachineWithSeed 以指定 seed 建立老虎機（重現用）
func (l *Lab) NewMachineWithSeed(gid spec.GID, seed int64) (*Machine, error) {
	gs, err := l.setting(gid, spec.KindSlot)
	if err != nil {
		return nil, err
	}
	return newMachineWithSeed(gs, l.cf, seed)
}

// NewDesk 建立一個樂透櫃台，seed 由 Lab 派生
func (l *Lab) NewDesk(gid spec.GID) (*Desk, error) {
	return l.NewDeskWithSeed(gid, l.seeds.next())
}

// NewDeskWithSeed 以指定 seed 建立樂透櫃台（重現用）
func (l *Lab) NewDeskWithSeed(gid spec.GID, seed int64) (*Desk, error) {
	gs, err := l.setting(gid, spec.KindLottery)
	if err != nil {
		return nil, err
	}
	return newDeskWithSeed(gs, l.cf, seed)
}

// NewMachinePool 建立指定老虎機的機台池
func (l *Lab) NewMachinePool(gid spec.GID, n int) (*MachinePool, error) {
	gs, err := l.setting(gid, spec.KindSlot)
	if err != nil {
		return nil, err
	}
	return newMachinePool(n, gs, l.cf, l.seeds.next())
}

// NewSimulator 建立模擬器，老虎機與樂透皆可
func (l *Lab) NewSimulator(gid spec.GID) (*Simulator, error) {
	gs, err := l.cat.GameSettingById(gid)
	if err != nil {
		return nil, err
	}
	return newSimulatorWithSeed(gs, l.cf, l.seeds.next()), nil
}

// NewSimulatorWithSeed 以指定 seed 建立模擬器（重現用）
func (l *Lab) NewSimulatorWithSeed(gid spec.GID, seed int64) (*Simulator, error) {
	gs, err := l.cat.GameSettingById(gid)
	if err != nil {
		return nil, err
	}
	return newSimulatorWithSeed(gs, l.cf, seed), nil
}
