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
	"sync"
	"sync/atomic"
	"time"

	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/sdk/buf"
	"github.com/zintix-labs/casinolab/sdk/lotto"
	"github.com/zintix-labs/casinolab/session"
	"github.com/zintix-labs/casinolab/spec"
)

// ErrRuntimeClosed runtime 已關閉
var ErrRuntimeClosed = errs.NewFatal("casino runtime closed")

// ErrUnknownGame 目錄中沒有此遊戲或種類不符
var ErrUnknownGame = errs.NewWarn("unknown game")

// ErrNoTickets 手上沒有彩券時不開獎
var ErrNoTickets = errs.NewWarn("no tickets to draw")

// Casino 是服務端的 runtime：每款老虎機一個 MachinePool，每款樂透一個 Desk。
//
// 一次遊玩的流程：
//
//	store.Update(id) → 餘額檢查與扣款 → 引擎 → 入帳與 RecordOutcome → 寫回
//
// 扣款與入帳都在 Store 的 id 鎖內完成，同一玩家的遊玩依序進行。
type Casino struct {
	lab   *Lab
	pools map[spec.GID]*MachinePool
	desks map[spec.GID]*Desk
	ids   []spec.GID

	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	reason    atomic.Value // string

	poolSize int
	now      func() time.Time
}

// Run 進入執行階段：為目錄中每一款遊戲建立機台池或櫃台
func (l *Lab) Run(poolSize int) (*Casino, error) {
	c := &Casino{
		lab:      l,
		pools:    map[spec.GID]*MachinePool{},
		desks:    map[spec.GID]*Desk{},
		ids:      l.cat.IDs(),
		done:     make(chan struct{}),
		poolSize: max(1, poolSize),
		now:      time.Now,
	}
	for _, gid := range c.ids {
		gs, err := l.cat.GameSettingById(gid)
		if err != nil {
			return nil, err
		}
		switch gs.Kind {
		case spec.KindSlot:
			p, err := l.NewMachinePool(gid, c.poolSize)
			if err != nil {
				return nil, err
			}
			c.pools[gid] = p
		case spec.KindLottery:
			d, err := l.NewDesk(gid)
			if err != nil {
				return nil, err
			}
			c.desks[gid] = d
		}
	}
	return c, nil
}

// Lab 回傳組裝器
func (c *Casino) Lab() *Lab { return c.lab }

func (c *Casino) alive(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return errs.WarnWrap(ctx.Err(), "request canceled")
	case <-c.done:
		return errs.Wrap(ErrRuntimeClosed, c.ClosedReason())
	default:
		return nil
	}
}

// Pool 取得老虎機機台池
func (c *Casino) Pool(gid spec.GID) (*MachinePool, error) {
	p, ok := c.pools[gid]
	if !ok {
		return nil, errs.Wrapf(ErrUnknownGame, "slot game %d", gid)
	}
	return p, nil
}

// Desk 取得樂透櫃台
func (c *Casino) Desk(gid spec.GID) (*Desk, error) {
	d, ok := c.desks[gid]
	if !ok {
		return nil, errs.Wrapf(ErrUnknownGame, "lottery game %d", gid)
	}
	return d, nil
}

// Spin 不經過 session 直接轉一次
func (c *Casino) Spin(ctx context.Context, gid spec.GID, stake int) (*buf.SpinResult, error) {
	if err := c.alive(ctx); err != nil {
		return nil, err
	}
	p, err := c.Pool(gid)
	if err != nil {
		return nil, err
	}
	return p.Spin(ctx, stake)
}

// PlaySlot 扣款、轉動、入帳，並累計彩池
func (c *Casino) PlaySlot(ctx context.Context, s *session.Session, gid spec.GID, stake int) (*buf.SpinResult, error) {
	p, err := c.Pool(gid)
	if err != nil {
		return nil, err
	}
	if !p.Setting().AllowBet(stake) {
		return nil, errs.Wrapf(ErrStakeNotAllowed, "game %d stake %d", gid, stake)
	}
	if err := s.Debit(stake); err != nil {
		return nil, err
	}
	sr, err := c.Spin(ctx, gid, stake)
	if err != nil {
		s.Balance += stake
		return nil, err
	}
	s.ApplySpin(sr, p.Setting().Slot.JackpotSeed, c.now())
	return sr, nil
}

// BuyTicket 扣款並開票；numbers 為空時電腦選號
func (c *Casino) BuyTicket(ctx context.Context, s *session.Session, gid spec.GID, numbers []int, stake int) (lotto.Ticket, error) {
	if err := c.alive(ctx); err != nil {
		return lotto.Ticket{}, err
	}
	d, err := c.Desk(gid)
	if err != nil {
		return lotto.Ticket{}, err
	}
	if stake == 0 {
		stake = d.Setting().Lottery.TicketPrice
	}
	now := c.now()
	t, err := d.NewTicket(numbers, stake, now)
	if err != nil {
		return lotto.Ticket{}, err
	}
	if err := s.Debit(stake); err != nil {
		return lotto.Ticket{}, err
	}
	s.AddTicket(t, now)
	return t, nil
}

// RunDraw 開獎並以同一次開獎對 session 手上該款樂透的彩券，入帳後移除這些彩券
func (c *Casino) RunDraw(ctx context.Context, s *session.Session, gid spec.GID) (lotto.DrawResult, []lotto.TicketResult, error) {
	if err := c.alive(ctx); err != nil {
		return lotto.DrawResult{}, nil, err
	}
	d, err := c.Desk(gid)
	if err != nil {
		return lotto.DrawResult{}, nil, err
	}
	pending := s.PendingTickets(gid)
	if len(pending) == 0 {
		return lotto.DrawResult{}, nil, errs.Wrapf(ErrNoTickets, "session %s game %d", s.ID, gid)
	}
	dr := d.Draw()
	res, _ := d.Score(pending, dr)
	s.SettleDraw(dr, res, c.now())
	return dr, res, nil
}

// Metrics 各機台池的觀測快照，依遊戲 ID 排序
func (c *Casino) Metrics() []MachinePoolMetrics {
	out := make([]MachinePoolMetrics, 0, len(c.pools))
	for _, gid := range c.ids {
		if p, ok := c.pools[gid]; ok {
			out = append(out, p.Metrics())
		}
	}
	return out
}

// Close 關閉 runtime 與所有機台池，可重複呼叫
func (c *Casino) Close() {
	c.closeWithReason("closed")
}

func (c *Casino) closeWithReason(reason string) {
	c.closeOnce.Do(func() {
		if reason == "" {
			reason = "closed"
		}
		c.reason.Store(reason)
		c.closed.Store(true)
		close(c.done)
		for _, p := range c.pools {
			p.closeWithReason(reason)
		}
	})
}

// Closed 是否已關閉
func (c *Casino) Closed() bool { return c.closed.Load() }

func (c *Casino) ClosedReason() string {
	if v := c.reason.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
