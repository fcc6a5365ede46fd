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

package spec

import (
	"fmt"

	"github.com/zintix-labs/casinolab/errs"
)

// ScreenSetting 描述盤面大小，預設 5 軸 x 3 列。
type ScreenSetting struct {
	Columns    int `yaml:"columns"   json:"columns"`
	Rows       int `yaml:"rows"      json:"rows"`
	ScreenSize int `yaml:"-"         json:"-"`
	initFlag   bool
}

// Init 檢查不合法的設定
func (ss *ScreenSetting) Init() error {
	if ss.initFlag {
		return nil
	}
	if ss.Columns == 0 && ss.Rows == 0 {
		ss.Columns, ss.Rows = 5, 3
	}
	if ss.Columns <= 0 || ss.Rows <= 0 {
		return errs.NewFatal(fmt.Sprintf("invalid screen dimensions: cols=%d rows=%d", ss.Columns, ss.Rows))
	}
	ss.ScreenSize = ss.Rows * ss.Columns
	ss.initFlag = true
	return nil
}
