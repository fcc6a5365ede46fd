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

// Package dto HTTP 請求與回應的資料結構。
//
// 請求以 struct tag 宣告基本限制，由 Validate 統一檢查；
// 與遊戲設定相關的限制（下注選項、號碼範圍）由引擎負責。
package dto

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/session"
	"github.com/zintix-labs/casinolab/spec"
)

// LoginRequest POST /v1/login
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// SessionPatch PATCH /v1/session；nil 表示不覆寫
type SessionPatch struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	UserID  *string `json:"user_id,omitempty" validate:"omitempty,max=64"`
	Balance *int    `json:"balance,omitempty" validate:"omitempty,gte=0"`
}

// ToPatch 轉成 session.Patch
func (p SessionPatch) ToPatch() session.Patch {
	return session.Patch{Name: p.Name, UserID: p.UserID, Balance: p.Balance}
}

// SpinRequest POST /v1/slots/{gid}/spin
type SpinRequest struct {
	Stake int `json:"stake" validate:"required,gt=0"`
}

// TicketRequest POST /v1/lottery/{gid}/tickets；numbers 為空表示電腦選號，stake 為 0 表示票價
type TicketRequest struct {
	Numbers []int `json:"numbers,omitempty" validate:"omitempty,dive,gt=0"`
	Stake   int   `json:"stake,omitempty" validate:"gte=0"`
}

// SimRequest POST /v1/sim；rounds 為每個 worker 的局數，seed 省略時由伺服器產生
type SimRequest struct {
	GID     spec.GID `json:"gid" validate:"required"`
	Rounds  int      `json:"rounds" validate:"required,gt=0,lte=1000000"`
	Stake   int      `json:"stake" validate:"required,gt=0"`
	Workers int      `json:"workers,omitempty" validate:"omitempty,gt=0,lte=16"`
	Seed    *int64   `json:"seed,omitempty"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		validate = v
	})
	return validate
}

// Validate 檢查 struct tag；不合法時回傳 Warn，訊息依欄位名排序
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs.Wrap(err, "validate request")
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldMessage(fe))
	}
	sort.Strings(msgs)
	return errs.NewWarn("invalid request: " + strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
