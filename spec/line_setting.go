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

// Cell 盤面座標 (軸, 列)
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Payline 一條線：每軸恰好一格，軸索引由 0 嚴格遞增
type Payline []Cell

// LineSetting 線表設定
//
// YAML 以 [col,row] 表示一格：
//
//	paylines:
//	  - [[0,0],[1,0],[2,0],[3,0],[4,0]]
type LineSetting struct {
	LineTable [][][2]int `yaml:"paylines"    json:"paylines"`
	LineNames []string   `yaml:"line_names"  json:"line_names,omitempty"`
	Lines     []Payline  `yaml:"-"           json:"-"`
	initFlag  bool
}

// Init 依盤面大小檢查每一條線
func (ls *LineSetting) Init(screen *ScreenSetting) error {
	if ls.initFlag {
		return nil
	}
	if len(ls.LineTable) == 0 {
		return errs.NewFatal("paylines is empty")
	}
	if len(ls.LineNames) != 0 && len(ls.LineNames) != len(ls.LineTable) {
		return errs.NewFatal("len(line_names) != len(paylines)")
	}
	ls.Lines = make([]Payline, len(ls.LineTable))
	for i, raw := range ls.LineTable {
		if len(raw) != screen.Columns {
			return errs.NewFatal(fmt.Sprintf("payline %d covers %d columns, want %d", i, len(raw), screen.Columns))
		}
		line := make(Payline, len(raw))
		for c, xy := range raw {
			if xy[0] != c {
				return errs.NewFatal(fmt.Sprintf("payline %d cell %d has column %d, columns must run 0..%d", i, c, xy[0], screen.Columns-1))
			}
			if xy[1] < 0 || xy[1] >= screen.Rows {
				return errs.NewFatal(fmt.Sprintf("payline %d cell %d row %d out of range", i, c, xy[1]))
			}
			line[c] = Cell{Col: xy[0], Row: xy[1]}
		}
		ls.Lines[i] = line
	}
	ls.initFlag = true
	return nil
}

// Name 回傳線名稱，未設定時為 "line <n>"
func (ls *LineSetting) Name(i int) string {
	if i < len(ls.LineNames) {
		return ls.LineNames[i]
	}
	return fmt.Sprintf("line %d", i+1)
}
