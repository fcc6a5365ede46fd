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
)

// Stats GET /v1/stats：老虎機與樂透的戰績摘要
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ctx, cancel := h.context(r)
	defer cancel()
	s, err := h.store.Load(ctx, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	slots, lottery := s.Summaries(h.now())
	writeJSON(w, http.StatusOK, dto.StatsResponse{
		Slots:    slots,
		Lottery:  lottery,
		Combined: s.Slots.Merge(s.Lottery),
	})
}
