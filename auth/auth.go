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

// Package auth 驗證玩家帳密。
//
// 遠端驗證服務回傳玩家名稱、餘額與 id；本機開發與測試可用 Static。
package auth

import (
	"context"
	"strings"

	"github.com/zintix-labs/casinolab/errs"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials 帳密錯誤或遠端拒絕登入
var ErrInvalidCredentials = errs.NewWarn("invalid credentials")

// Profile 驗證成功後的玩家資料
type Profile struct {
	Name    string `json:"name"`
	Balance int    `json:"balance"`
	ID      string `json:"id"`
}

// Authenticator 驗證帳密
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (Profile, error)
}

// Static 以記憶體中的帳號表驗證，key 為 username
type Static struct {
	users map[string]staticUser
}

type staticUser struct {
	hash    []byte // bcrypt
	profile Profile
}

// NewStatic 建立空的帳號表
func NewStatic() *Static {
	return &Static{users: map[string]staticUser{}}
}

// Add 新增帳號，只保存 bcrypt 雜湊；Profile.Name 為空時以 username 代替。
// 密碼超過 72 bytes 時 panic。
func (s *Static) Add(username, password string, p Profile) *Static {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic("auth: hash password for " + username + ": " + err.Error())
	}
	return s.AddHash(username, hash, p)
}

// AddHash 以既有的 bcrypt 雜湊新增帳號
func (s *Static) AddHash(username string, hash []byte, p Profile) *Static {
	if p.Name == "" {
		p.Name = username
	}
	s.users[username] = staticUser{hash: hash, profile: p}
	return s
}

// Authenticate 帳密前後空白會先去除
func (s *Static) Authenticate(ctx context.Context, username, password string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, errs.WarnWrap(err, "authenticate")
	}
	u, ok := s.users[strings.TrimSpace(username)]
	if !ok || bcrypt.CompareHashAndPassword(u.hash, []byte(strings.TrimSpace(password))) != nil {
		return Profile{}, ErrInvalidCredentials
	}
	return u.profile, nil
}
