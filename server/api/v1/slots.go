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
	"github.com/zintix-labs/casinolab/sdk/buf"
	"github.com/zintix-labs/casinolab/session"
	"github.com/zintix-labs/casinolab/spec"
)

// Spin POST /v1/slots/{gid}/spin
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
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
	req := new(dto.SpinRequest)
	if err := decode(w, r, req); err != nil {
		h.fail(w, r, err)
		return
	}
	ctx, cancel := h.context(r)
	defer cancel()

	var sr *buf.SpinResult
	s, err := h.store.Update(ctx, id, func(s *session.Session) error {
		var err error
		sr, err = h.casino.PlaySlot(ctx, s, gid, req.Stake)
		return err
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.observe(sr.GameName, spec.KindSlot, sr.Stake, sr.TotalPayout)

	// PlaySlot 成功代表機台池存在
	p, _ := h.casino.Pool(gid)
	writeJSON(w, http.StatusOK, dto.SpinResponse{
		Result:  sr,
		Symbols: symbolIDs(sr.Grid, p.Setting().Slot.Symbols),
		Balance: s.Balance,
		Jackpot: s.Jackpots[gid],
	})
}

// symbolIDs 盤面索引轉成 [col][row] 的圖標 id
func symbolIDs(g *buf.Grid, symbols []spec.Symbol) [][]string {
	out := make([][]string, g.Columns)
	for c := range out {
		col := g.Column(c)
		out[c] = make([]string, len(col))
		for r, v := range col {
			out[c][r] = symbols[v].ID
		}
	}
	return out
}
