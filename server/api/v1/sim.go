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
	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/sdk/core"
)

// Sim POST /v1/sim：對指定遊戲跑離線模擬，不經過 session
func (h *Handler) Sim(w http.ResponseWriter, r *http.Request) {
	req := new(dto.SimRequest)
	if err := decode(w, r, req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Workers == 0 {
		req.Workers = 1
	}
	seed := core.NewSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	sim, err := h.casino.Lab().NewSimulatorWithSeed(req.GID, seed)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ctx, cancel := h.context(r)
	defer cancel()
	rep, used, err := sim.Run(ctx, req.Rounds, req.Stake, req.Workers)
	if err != nil {
		h.fail(w, r, errs.Wrapf(err, "simulate game %d", req.GID))
		return
	}
	writeJSON(w, http.StatusOK, dto.SimResponse{
		Report: rep,
		Seed:   seed,
		UsedMs: used.Milliseconds(),
	})
}
