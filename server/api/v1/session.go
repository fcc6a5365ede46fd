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
	"github.com/zintix-labs/casinolab/session"
)

// Login POST /v1/login：驗證帳密並建立 session
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req := new(dto.LoginRequest)
	if err := decode(w, r, req); err != nil {
		h.fail(w, r, err)
		return
	}
	ctx, cancel := h.context(r)
	defer cancel()

	p, err := h.auth.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.countLogin("rejected")
		h.fail(w, r, err)
		return
	}
	s := session.New(session.User{Name: p.Name, ID: p.ID}, p.Balance, h.now())
	if err := h.store.Save(ctx, s); err != nil {
		h.countLogin("error")
		h.fail(w, r, err)
		return
	}
	h.countLogin("ok")
	h.log.Info("login", "user", p.Name, "session", s.ID)
	writeJSON(w, http.StatusCreated, dto.NewSessionView(s))
}

func (h *Handler) countLogin(result string) {
	if h.metrics != nil {
		h.metrics.Logins.WithLabelValues(result).Inc()
	}
}

// GetSession GET /v1/session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, dto.NewSessionView(s))
}

// PatchSession PATCH /v1/session：覆寫名稱、使用者 id 或餘額
func (h *Handler) PatchSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req := new(dto.SessionPatch)
	if err := decode(w, r, req); err != nil {
		h.fail(w, r, err)
		return
	}
	ctx, cancel := h.context(r)
	defer cancel()
	s, err := h.store.MergeSave(ctx, id, req.ToPatch())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewSessionView(s))
}

// Logout DELETE /v1/session
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ctx, cancel := h.context(r)
	defer cancel()
	if err := h.store.Delete(ctx, id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
