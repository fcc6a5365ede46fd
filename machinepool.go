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
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/sdk/buf"
	"github.com/zintix-labs/casinolab/sdk/core"
	"github.com/zintix-labs/casinolab/spec"
)

// ErrPoolClosed 機台池已關閉
var ErrPoolClosed = errs.NewFatal("machine pool closed")

// MachinePool 管理某一款老虎機的所有機台實例。
//
// 兩個通道管理機台生命週期：
//  1. pool：健康可用的機台，Spin 借出後歸還。
//  2. broken：執行中 panic 或回傳 fatal error 的機台，送往此處並立即補一台新機維持容量。
//
// 每台機台有自己的亂數核心，兩個同時進行的 Spin 不會共用任何引擎狀態。
type MachinePool struct {
	gameName      string
	gameId        spec.GID
	gs            *spec.GameSetting
	cf            core.PRNGFactory
	initSeed      int64
	seeds         *seedMaker
	pool          chan *Machine
	broken        chan *Machine
	done          chan struct{}
	closeOnce     sync.Once
	poolsize      int
	rebuild       atomic.Int32 // 補機次數
	inflight      atomic.Int32 // 使用中
	panics        atomic.Int32
	fatals        atomic.Int32 // 機台狀態不可信的錯誤次數
	closeReason   atomic.Value // string
	closeInflight atomic.Int32 // 關閉當下 inflight 快照
	closeAvail    atomic.Int32
	closeBroken   atomic.Int32
	build         func(seed int64) (*Machine, error)
}

// newMachinePool 建立機台池並預先上架 n 台機台（至少 1 台）
func newMachinePool(n int, gs *spec.GameSetting, cf core.PRNGFactory, seed int64) (*MachinePool, error) {
	n = max(1, n)
	p := &MachinePool{
		gameName: gs.GameName,
		gameId:   gs.GameID,
		gs:       gs,
		cf:       cf,
		initSeed: seed,
		seeds:    newSeedMaker(seed),
		pool:     make(chan *Machine, n),
		broken:   make(chan *Machine, 100),
		done:     make(chan struct{}),
		poolsize: n,
	}
	p.build = func(s int64) (*Machine, error) {
		return newMachineWithSeed(gs, cf, s)
	}
	p.closeReason.Store("")
	p.closeInflight.Store(-1)
	p.closeAvail.Store(-1)
	p.closeBroken.Store(-1)

	for i := 0; i < n; i++ {
		m, err := p.build(p.seeds.next())
		if err != nil {
			return nil, err
		}
		p.pool <- m
	}
	return p, nil
}

// Close 進入關閉狀態，之後的 Spin 直接回錯誤
func (p *MachinePool) Close() {
	p.closeWithReason("closed")
}

// Closed 是否已關閉
func (p *MachinePool) Closed() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (p *MachinePool) closeWithReason(reason string) {
	p.closeOnce.Do(func() {
		if reason == "" {
			reason = "closed"
		}
		p.closeReason.Store(reason)
		p.closeInflight.Store(p.inflight.Load())
		p.closeAvail.Store(int32(len(p.pool)))
		p.closeBroken.Store(int32(len(p.broken)))
		close(p.done)
	})
}

// isFatalErr 只有錯誤本身宣告 Fatal 才淘汰機台；押注不合法等 Warn 錯誤不影響機台。
func isFatalErr(err error) bool {
	return err != nil && errs.LevelOf(err) == errs.Fatal
}

// Spin 借一台機台執行 Spin 後歸還
func (p *MachinePool) Spin(ctx context.Context, stake int) (res *buf.SpinResult, err error) {
	// done 與 pool 同時就緒時 select 隨機挑選，先檢查關閉
	if p.Closed() {
		return nil, errs.Wrap(ErrPoolClosed, p.ClosedReason())
	}
	var m *Machine
	select {
	case <-p.done:
		return nil, errs.Wrap(ErrPoolClosed, p.ClosedReason())
	case <-ctx.Done():
		return nil, errs.WarnWrap(ctx.Err(), "spin canceled")
	case m = <-p.pool:
	}
	if m == nil {
		return nil, errs.NewFatal("machine pool got nil machine")
	}
	// 借出與關閉交錯：機台放回，不執行
	if p.Closed() {
		select {
		case p.pool <- m:
		default:
		}
		return nil, errs.Wrap(ErrPoolClosed, p.ClosedReason())
	}
	p.inflight.Add(1)

	defer func() {
		p.inflight.Add(-1)
		isPanic := false
		if r := recover(); r != nil {
			isPanic = true
			p.panics.Add(1)
			res = nil
			err = errs.NewFatal(fmt.Sprintf("machine %s panic: %v", p.gameName, r))
		}
		if p.Closed() {
			return
		}
		if !isPanic && !isFatalErr(err) {
			select {
			case <-p.done:
			case p.pool <- m:
			}
			return
		}
		if !isPanic {
			p.fatals.Add(1)
		}
		p.replace(m, &err)
	}()

	return m.Spin(stake)
}

// replace 把壞機台送修並補上新機台
func (p *MachinePool) replace(m *Machine, err *error) {
	select {
	case p.broken <- m:
	default:
		p.closeWithReason("overwhelmed_by_failures")
		if *err == nil {
			*err = errs.NewFatal("machine pool overwhelmed by failures")
		}
		return
	}
	nm, buildErr := p.build(p.seeds.next())
	p.rebuild.Add(1)
	if buildErr != nil {
		*err = errs.Wrapf(buildErr, "machine %s can not rebuild", p.gameName)
		p.closeWithReason("rebuild_failed")
		return
	}
	select {
	case <-p.done:
	case p.pool <- nm:
	}
}

// GameID 遊戲 ID
func (p *MachinePool) GameID() spec.GID { return p.gameId }

// Setting 遊戲設定
func (p *MachinePool) Setting() *spec.GameSetting { return p.gs }

func (p *MachinePool) PoolSize() int { return p.poolsize }

func (p *MachinePool) Inflight() int { return int(p.inflight.Load()) }

func (p *MachinePool) ReBuild() int { return int(p.rebuild.Load()) }

func (p *MachinePool) Panics() int { return int(p.panics.Load()) }

func (p *MachinePool) Fatals() int { return int(p.fatals.Load()) }

// Available 當下可借出的機台數，高併發下為近似值
func (p *MachinePool) Available() int { return len(p.pool) }

func (p *MachinePool) ClosedReason() string {
	if v := p.closeReason.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// MachinePoolMetrics 拉取式觀測快照；Available/BrokenBacklog 來自 len(chan)，為近似值。
type MachinePoolMetrics struct {
	GameName      string   `json:"game_name"`
	GameID        spec.GID `json:"game_id"`
	PoolSize      int      `json:"pool_size"`
	Available     int      `json:"available"`
	Inflight      int      `json:"inflight"`
	BrokenBacklog int      `json:"broken_backlog"`
	Rebuild       int      `json:"rebuild"`
	Panics        int      `json:"panics"`
	Fatals        int      `json:"fatals"`
	Closed        bool     `json:"closed"`
	CloseReason   string   `json:"close_reason"`
	CloseInflight int      `json:"close_inflight"` // -1 表示尚未關閉
	CloseAvail    int      `json:"close_avail"`
	CloseBroken   int      `json:"close_broken"`
}

// Metrics 回傳觀測快照
func (p *MachinePool) Metrics() MachinePoolMetrics {
	return MachinePoolMetrics{
		GameName:      p.gameName,
		GameID:        p.gameId,
		PoolSize:      p.poolsize,
		Available:     len(p.pool),
		Inflight:      int(p.inflight.Load()),
		BrokenBacklog: len(p.broken),
		Rebuild:       int(p.rebuild.Load()),
		Panics:        int(p.panics.Load()),
		Fatals:        int(p.fatals.Load()),
		Closed:        p.Closed(),
		CloseReason:   p.ClosedReason(),
		CloseInflight: int(p.closeInflight.Load()),
		CloseAvail:    int(p.closeAvail.Load()),
		CloseBroken:   int(p.closeBroken.Load()),
	}
}
