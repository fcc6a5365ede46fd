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

package lotto

import "github.com/zintix-labs/casinolab/spec"

// TicketResult 一張彩券的對獎結果
type TicketResult struct {
	TicketID   string `json:"ticket_id"`
	Numbers    []int  `json:"numbers"`
	Matched    []int  `json:"matched"`
	MatchCount int    `json:"match_count"`
	Stake      int    `json:"stake"`
	Payout     int    `json:"payout"`
	Label      string `json:"label,omitempty"`
}

// ScoreTicket 對獎：命中數為彩券號碼與主號的交集大小，特別號不計。
// 命中數 >= min_match 時派彩 floor(prize[m] × bonusFactor)，否則為 0。
func ScoreTicket(t Ticket, d DrawResult) TicketResult {
	win := make(map[int]struct{}, len(d.WinningNumbers))
	for _, n := range d.WinningNumbers {
		win[n] = struct{}{}
	}
	res := TicketResult{TicketID: t.ID, Numbers: t.Numbers, Stake: t.Stake, Matched: []int{}}
	for _, n := range t.Numbers {
		if _, ok := win[n]; ok {
			res.Matched = append(res.Matched, n)
		}
	}
	res.MatchCount = len(res.Matched)
	if res.MatchCount >= d.MinMatch {
		res.Payout = spec.ApplyFactor(d.PrizeTable[res.MatchCount], d.BonusFactor)
	}
	return res
}

// ScoreTickets 以同一次開獎逐張對獎，回傳各張結果與總派彩
func ScoreTickets(ts []Ticket, d DrawResult) ([]TicketResult, int) {
	out := make([]TicketResult, len(ts))
	total := 0
	for i, t := range ts {
		out[i] = ScoreTicket(t, d)
		total += out[i].Payout
	}
	return out, total
}
