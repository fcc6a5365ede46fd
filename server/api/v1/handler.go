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

// Package v1 玩家面向的 HTTP API。
//
// 登入後以 X-Session-ID 帶 session；所有改動 session 的請求都在 Store.Update 內完成，
// 同一玩家的扣款、引擎、入帳依序進行。
package v1

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/zintix-labs/casinolab"
	"github.com/zintix-labs/casinolab/auth"
	"github.com/zintix-labs/casinolab/dto"
	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/server/httperr"
	"github.com/zintix-labs/casinolab/server/metrics"
	"github.com/zintix-labs/casinolab/server/netsvr/middleware"
	"github.com/zintix-labs/casinolab/session"
	"github.com/zintix-labs/casinolab/spec"
)

// SessionHeader 登入後帶 session id 的 header
const SessionHeader = "X-Session-ID"

const maxBodyBytes = 1 << 20

// Deps 建立 Handler 所需依賴
type Deps struct {
	Casino  *casinolab.Casino
	Store   *session.Store
	Auth    auth.Authenticator
	Log     *slog.Logger
	Metrics *metrics.Metrics // 可為 nil
	Timeout time.Duration
	Now     func() time.Time
}

// Handler v1 API
type Handler struct {
	casino  *casinolab.Casino
	store   *session.Store
	auth    auth.Authenticator
	log     *slog.Logger
	metrics *metrics.Metrics
	timeout time.Duration
	now     func() time.Time
}

// NewHandler 檢查依賴並補預設值
func NewHandler(d Deps) (*Handler, error) {
	if d.Casino == nil {
		return nil, errs.NewFatal("casino runtime is required")
	}
	if d.Store == nil {
		return nil, errs.NewFatal("session store is required")
	}
	if d.Auth == nil {
		return nil, errs.NewFatal("authenticator is required")
	}
	h := &Handler{
		casino:  d.Casino,
		store:   d.Store,
		auth:    d.Auth,
		log:     d.Log,
		metrics: d.Metrics,
		timeout: d.Timeout,
		now:     d.Now,
	}
	if h.log == nil {
		h.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if h.timeout <= 0 {
		h.timeout = 5 * time.Second
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h, nil
}

// context 請求逾時
func (h *Handler) context(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

// decode 讀取 JSON body；空 body 視為零值，交給 Validate 判斷
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errs.WarnWrap(err, "invalid json")
	}
	return dto.Validate(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetReqId(r)
	httperr.Log(h.log, r.Method+" "+r.URL.Path, reqID, err)
	httperr.Write(w, reqID, err)
}

// sessionID 取出 header；沒帶視同 session 不存在
func sessionID(r *http.Request) (string, error) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		return "", errs.WarnWrap(session.ErrNotFound, "missing "+SessionHeader)
	}
	return id, nil
}

func gidParam(r *http.Request) (spec.GID, error) {
	s := chi.URLParam(r, "gid")
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errs.Warnf("gid must be non-negative integer: %q", s)
	}
	return spec.GID(u), nil
}

func (h *Handler) observe(game string, kind spec.GameKind, stake, payout int) {
	if h.metrics != nil {
		h.metrics.ObservePlay(game, string(kind), stake, payout)
	}
}
