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

// Package session 玩家的遊戲上下文：登入資訊、餘額、統計與未開獎彩券。
//
// Session 是純資料，由 Store 以 Load / Merge / Save 管理；引擎本身不認得 Session。
package session

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/sdk/buf"
	"github.com/zintix-labs/casinolab/sdk/lotto"
	"github.com/zintix-labs/casinolab/spec"
	"github.com/zintix-labs/casinolab/stats"
)

var (
	ErrNotFound            = errs.NewWarn("session not found")
	ErrInsufficientBalance = errs.NewWarn("insufficient balance")
	ErrInvalidStake        = errs.NewWarn("stake must be positive")
)

// User 登入者
type User struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Session 一個玩家的遊戲上下文
type Session struct {
	ID        string             `json:"id"`
	User      User               `json:"user"`
	Balance   int                `json:"balance"`
	LoginAt   time.Time          `json:"login_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Slots     stats.SessionStats `json:"slots"`
	Lottery   stats.SessionStats `json:"lottery"`
	Tickets   []lotto.Ticket     `json:"tickets"`
	Jackpots  map[spec.GID]int   `json:"jackpots"`
	LastDraw  *lotto.DrawResult  `json:"last_draw,omitempty"`
}

// New 建立新的 Session，id 為 uuid
func New(u User, balance int, now time.Time) Session {
	return Session{
		ID:        uuid.NewString(),
		User:      u,
		Balance:   balance,
		LoginAt:   now,
		UpdatedAt: now,
		Tickets:   []lotto.Ticket{},
		Jackpots:  map[spec.GID]int{},
	}
}

// Clone 深複製，Store 內外不共用切片與 map
func (s Session) Clone() Session {
	out := s
	out.Tickets = slices.Clone(s.Tickets)
	if out.Tickets == nil {
		out.Tickets = []lotto.Ticket{}
	}
	out.Jackpots = maps.Clone(s.Jackpots)
	if out.Jackpots == nil {
		out.Jackpots = map[spec.GID]int{}
	}
	if s.LastDraw != nil {
		d := *s.LastDraw
		d.WinningNumbers = slices.Clone(s.LastDraw.WinningNumbers)
		out.LastDraw = &d
	}
	return out
}

// Patch 覆寫欄位；nil 表示不覆寫
type Patch struct {
	Name    *string `json:"name,omitempty"`
	UserID  *string `json:"user_id,omitempty"`
	Balance *int    `json:"balance,omitempty"`
}

// Merge 以 patch 中有設定的欄位覆寫 base，回傳新的 Session
func Merge(base Session, p Patch) Session {
	out := base.Clone()
	if p.Name != nil {
		out.User.Name = *p.Name
	}
	if p.UserID != nil {
		out.User.ID = *p.UserID
	}
	if p.Balance != nil {
		out.Balance = *p.Balance
	}
	return out
}

// Debit 扣除押注；餘額不足時不變動
func (s *Session) Debit(stake int) error {
	if stake <= 0 {
		return ErrInvalidStake
	}
	if s.Balance < stake {
		return errs.Wrapf(ErrInsufficientBalance, "balance %d stake %d", s.Balance, stake)
	}
	s.Balance -= stake
	return nil
}

// Jackpot 回傳指定遊戲的累積彩池，第一次讀取時以 seed 起算
func (s *Session) Jackpot(gid spec.GID, seed int) int {
	if s.Jackpots == nil {
		s.Jackpots = map[spec.GID]int{}
	}
	v, ok := s.Jackpots[gid]
	if !ok {
		v = seed
		s.Jackpots[gid] = v
	}
	return v
}

// ApplySpin 入帳一次轉動：押注需已先 Debit
func (s *Session) ApplySpin(sr *buf.SpinResult, jackpotSeed int, now time.Time) {
	s.Balance += sr.TotalPayout
	s.Slots = stats.RecordOutcome(s.Slots, sr.Stake, sr.TotalPayout)
	jp := s.Jackpot(sr.GameID, jackpotSeed)
	s.Jackpots[sr.GameID] = jp + sr.JackpotContribution
	s.UpdatedAt = now
}

// AddTicket 收下一張彩券：押注需已先 Debit
func (s *Session) AddTicket(t lotto.Ticket, now time.Time) {
	s.Tickets = append(s.Tickets, t)
	s.UpdatedAt = now
}

// SettleDraw 入帳對獎結果，並移除已對獎的彩券
func (s *Session) SettleDraw(dr lotto.DrawResult, results []lotto.TicketResult, now time.Time) {
	settled := make(map[string]struct{}, len(results))
	for _, r := range results {
		s.Balance += r.Payout
		s.Lottery = stats.RecordOutcome(s.Lottery, r.Stake, r.Payout)
		settled[r.TicketID] = struct{}{}
	}
	s.Tickets = slices.DeleteFunc(s.Tickets, func(t lotto.Ticket) bool {
		_, ok := settled[t.ID]
		return ok
	})
	s.LastDraw = &dr
	s.UpdatedAt = now
}

// PendingTickets 回傳某款樂透尚未開獎的彩券
func (s *Session) PendingTickets(gid spec.GID) []lotto.Ticket {
	out := make([]lotto.Ticket, 0, len(s.Tickets))
	for _, t := range s.Tickets {
		if t.GameID == gid {
			out = append(out, t)
		}
	}
	return out
}

// Summaries 老虎機與樂透的統計摘要
func (s *Session) Summaries(now time.Time) (slots stats.Summary, lottery stats.Summary) {
	return s.Slots.Summarize("Slots", s.LoginAt, now), s.Lottery.Summarize("Lottery", s.LoginAt, now)
}
