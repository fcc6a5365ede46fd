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

// Package httperr 把 errs 分級對應到 HTTP 狀態碼，並以 JSON 寫回。
//
// 屬於 HTTP 邊界層；核心錯誤包不依賴 net/http。
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/casinolab"
	"github.com/zintix-labs/casinolab/auth"
	"github.com/zintix-labs/casinolab/catalog"
	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/session"
)

// Body 錯誤回應
type Body struct {
	Error     string `json:"error"`
	Level     string `json:"level"`
	RequestID string `json:"request_id,omitempty"`
}

// StatusCode 錯誤對應的狀態碼
//
//   - ctx 逾時 / 取消 → 504 / 408
//   - 帳密錯誤、session 不存在 → 401
//   - 遊戲不存在 → 404
//   - 其他 Warn → 400
//   - Fatal 或非本包錯誤 → 500
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, session.ErrNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, casinolab.ErrUnknownGame):
		return http.StatusNotFound
	}
	switch errs.LevelOf(err) {
	case errs.Warn:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Write 寫回 JSON 錯誤；500 不外洩內部訊息
func Write(w http.ResponseWriter, reqID string, err error) {
	if err == nil {
		return
	}
	status := StatusCode(err)
	body := Body{Error: message(err), Level: errs.LevelOf(err).String(), RequestID: reqID}
	if status >= 500 {
		body.Error = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Log 依狀態碼決定紀錄等級：5xx 為 Error，408 為 Warn，其餘 4xx 為 Debug
func Log(log *slog.Logger, msg string, reqID string, err error) {
	if err == nil || log == nil {
		return
	}
	status := StatusCode(err)
	attrs := []any{slog.Int("status", status), slog.String("request_id", reqID), slog.Any("err", err)}
	switch {
	case status >= 500:
		log.Error(msg, attrs...)
	case status == http.StatusRequestTimeout:
		log.Warn(msg, attrs...)
	default:
		log.Debug(msg, attrs...)
	}
}

// message 對外訊息取最外層 *E 的 Message 與 Cause，不帶等級前綴
func message(err error) string {
	e, ok := errs.AsErr(err)
	if !ok {
		return err.Error()
	}
	out := e.Message
	for c := e.Cause; c != nil; {
		ce, ok := c.(*errs.E)
		if !ok {
			out += ": " + c.Error()
			break
		}
		out += ": " + ce.Message
		c = ce.Cause
	}
	return out
}
