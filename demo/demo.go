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

// Package demo 內嵌設定與示範帳號，讓服務不依賴外部驗證也能直接啟動。
package demo

import (
	"github.com/zintix-labs/casinolab"
	"github.com/zintix-labs/casinolab/auth"
	"github.com/zintix-labs/casinolab/catalog"
	"github.com/zintix-labs/casinolab/demo/demo_configs"
	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/sdk/core"
)

// StartingBalance 示範帳號的初始籌碼
const StartingBalance = 1000

// New 只載入內嵌設定
func New() (*catalog.Catalog, error) {
	return catalog.New(demo_configs.FS)
}

// NewLab 以內嵌設定建立 Lab
func NewLab() (*casinolab.Lab, error) {
	lab, err := casinolab.New(core.Default(), casinolab.Configs(demo_configs.FS))
	if err != nil {
		return nil, errs.Wrap(err, "new demo lab")
	}
	return lab, nil
}

// Users 示範帳號：demo/demo 與 guest/guest
func Users() *auth.Static {
	return auth.NewStatic().
		Add("demo", "demo", auth.Profile{Name: "Demo Player", Balance: StartingBalance, ID: "demo"}).
		Add("guest", "guest", auth.Profile{Name: "Guest", Balance: StartingBalance, ID: "guest"})
}
