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

package dto

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/zintix-labs/casinolab/sdk/buf"
	"github.com/zintix-labs/casinolab/sdk/lotto"
	"github.com/zintix-labs/casinolab/session"
	"github.com/zintix-labs/casinolab/stats"
)

// SessionView 對外的 session 內容
type SessionView struct {
	SessionID string             `json:"session_id"`
	User      session.User       `json:"user"`
	Balance   int                `json:"balance"`
	LoginAt   time.Time          `json:"login_at"`
	Tickets   []lotto.Ticket     `json:"tickets"`
	Jackpots  map[string]int     `json:"jackpots"`
	Slots     stats.SessionStats `json:"slots"`
	Lottery   stats.SessionStats `json:"lottery"`
}

// NewSessionView 由 session 轉出；jackpot 的 key 為遊戲 id 字串
func NewSessionView(s session.Session) SessionView {
	jp := make(map[string]int, len(s.Jackpots))
	for gid, v := range s.Jackpots {
		jp[strconv.FormatUint(uint64(gid), 10)] = v
	}
	tickets := s.Tickets
	if tickets == nil {
		tickets = []lotto.Ticket{}
	}
	return SessionView{
		SessionID: s.ID,
		User:      s.User,
		Balance:   s.Balance,
		LoginAt:   s.LoginAt,
		Tickets:   tickets,
		Jackpots:  jp,
		Slots:     s.Slots,
		Lottery:   s.Lottery,
	}
}

// SpinResponse 一次轉動
type SpinResponse struct {
	Result  *buf.SpinResult `json:"result"`
	Symbols [][]string      `json:"symbols"` // [col][row] 圖標 id
	Balance int             `json:"balance"`
	Jackpot int             `json:"jackpot"`
}

// TicketResponse 購買彩券
type TicketResponse struct {
	Ticket  lotto.Ticket `json:"ticket"`
	Balance int          `json:"balance"`
	Pending int          `json:"pending"`
}

// DrawResponse 開獎與對獎
type DrawResponse struct {
	Draw    lotto.DrawResult     `json:"draw"`
	Results []lotto.TicketResult `json:"results"`
	Payout  int                  `json:"payout"`
	Balance int                  `json:"balance"`
}

// StatsResponse 老虎機與樂透統計
type StatsResponse struct {
	Slots    stats.Summary      `json:"slots"`
	Lottery  stats.Summary      `json:"lottery"`
	Combined stats.SessionStats `json:"combined"`
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// SimResponse 模擬報表
type SimResponse struct {
	Report *stats.SimReport `json:"report"`
	Seed   int64            `json:"seed"`
	UsedMs int64            `json:"used_ms"`
}
