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

package v1

import (
	"net/http"

	"github.com/zintix-labs/casinolab/dto"
	"github.com/zintix-labs/casinolab/sdk/lotto"
	"github.com/zintix-labs/casinolab/session"
	"github.com/zintix-labs/casinolab/spec"
)

// BuyTicket POST /v1/lottery/{gid}/tickets
func (h *Handler) BuyTicket(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	gid, err := gidParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req := new(dto.TicketRequest)
	if err := decode(w, r, req); err != nil {
		h.fail(w, r, err)
		return
	}
	ctx, cancel := h.context(r)
	defer cancel()

	var t lotto.Ticket
	s, err := h.store.Update(ctx, id, func(s *session.Session) error {
		var err error
		t, err = h.casino.BuyTicket(ctx, s, gid, req.Numbers, req.Stake)
		return err
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.TicketResponse{
		Ticket:  t,
		Balance: s.Balance,
		Pending: len(s.PendingTickets(gid)),
	})
}

// Draw POST /v1/lottery/{gid}/draw：開獎並對手上所有彩券
func (h *Handler) Draw(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	gid, err := gidParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ctx, cancel := h.context(r)
	defer cancel()

	var (
		dr  lotto.DrawResult
		res []lotto.TicketResult
	)
	s, err := h.store.Update(ctx, id, func(s *session.Session) error {
		var err error
		dr, res, err = h.casino.RunDraw(ctx, s, gid)
		return err
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	d, _ := h.casino.Desk(gid)
	game := d.GameName()
	if h.metrics != nil {
		h.metrics.Draws.WithLabelValues(game).Inc()
	}
	payout := 0
	for _, tr := range res {
		payout += tr.Payout
		h.observe(game, spec.KindLottery, tr.Stake, tr.Payout)
	}
	writeJSON(w, http.StatusOK, dto.DrawResponse{
		Draw:    dr,
		Results: res,
		Payout:  payout,
		Balance: s.Balance,
	})
}
