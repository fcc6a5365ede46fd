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

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/casinolab/errs"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 300 * time.Millisecond
	maxBodyBytes      = 1 << 20
)

// Webhook 以 HTTP POST 到遠端驗證服務。
//
// 請求：{"username": ..., "password": ...}
// 回應：{"success": bool, "user": {"Name", "Current Account Balance", "id"}, "message": string}
//
// success=false 回傳 ErrInvalidCredentials 並帶上遠端訊息；
// 連線失敗或遠端 5xx 會重試，重試耗盡或回應無法解析時回傳 Fatal。
type Webhook struct {
	URL        string
	Client     *http.Client
	Retries    int
	RetryDelay time.Duration
}

// NewWebhook 建立 webhook 驗證器
func NewWebhook(url string) (*Webhook, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, errs.Fatalf("auth webhook url must be http(s), got %q", url)
	}
	return &Webhook{
		URL:        url,
		Client:     &http.Client{Timeout: defaultTimeout},
		Retries:    2,
		RetryDelay: defaultRetryDelay,
	}, nil
}

type webhookRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type webhookUser struct {
	Name    string          `json:"Name"`
	Balance decimal.Decimal `json:"Current Account Balance"`
	ID      json.RawMessage `json:"id"`
}

type webhookResponse struct {
	Success bool         `json:"success"`
	User    *webhookUser `json:"user"`
	Message string       `json:"message"`
}

// Authenticate 呼叫遠端驗證
func (w *Webhook) Authenticate(ctx context.Context, username, password string) (Profile, error) {
	body, err := json.Marshal(webhookRequest{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	})
	if err != nil {
		return Profile{}, errs.Wrap(err, "auth webhook marshal")
	}

	raw, err := w.post(ctx, body)
	if err != nil {
		return Profile{}, err
	}

	var resp webhookResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Profile{}, errs.Wrap(err, "auth webhook decode")
	}
	if !resp.Success || resp.User == nil {
		if resp.Message == "" {
			return Profile{}, ErrInvalidCredentials
		}
		return Profile{}, errs.Wrap(ErrInvalidCredentials, resp.Message)
	}
	return Profile{
		Name:    resp.User.Name,
		Balance: int(resp.User.Balance.Floor().IntPart()),
		ID:      rawID(resp.User.ID),
	}, nil
}

// post 送出請求並讀取回應；連線錯誤與 5xx 依 Retries 重試
func (w *Webhook) post(ctx context.Context, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= w.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, errs.WarnWrap(ctx.Err(), "auth webhook canceled")
			case <-time.After(w.RetryDelay * time.Duration(1<<(attempt-1))):
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
		if err != nil {
			return nil, errs.Wrap(err, "auth webhook request")
		}
		req.Header.Set("Content-Type", "application/json")

		res, err := w.Client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errs.WarnWrap(ctx.Err(), "auth webhook canceled")
			}
			lastErr = err
			continue
		}
		raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
		res.Body.Close()
		if res.StatusCode >= 500 {
			lastErr = fmt.Errorf("status %d", res.StatusCode)
			continue
		}
		if err != nil {
			return nil, errs.Wrap(err, "auth webhook read")
		}
		return raw, nil
	}
	return nil, errs.Wrap(lastErr, "auth webhook unavailable")
}

// rawID id 可能是數字或字串，統一轉成字串
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
