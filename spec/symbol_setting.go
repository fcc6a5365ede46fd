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
	"github.com/zintix-labs/casinolab/sdk/sampler"
)

// NoSymbol 代表未設定特殊符號
const NoSymbol = -1

// Symbol 一個圖標的設定：顯示用 ID、權重、賠率
type Symbol struct {
	ID     string `yaml:"id"      json:"id"`
	Name   string `yaml:"name"    json:"name,omitempty"`
	Weight int    `yaml:"weight"  json:"weight"`
	Value  int    `yaml:"value"   json:"value"`
}

// SymbolSetting 圖標表與由權重展開的符號池
type SymbolSetting struct {
	Symbols     []Symbol    `yaml:"symbols"         json:"symbols"`
	SpecialID   string      `yaml:"special_symbol"  json:"special_symbol,omitempty"`
	Special     int         `yaml:"-"               json:"-"`
	Pool        sampler.LUT `yaml:"-"               json:"-"`
	TotalWeight int         `yaml:"-"               json:"-"`
	indexByID   map[string]int
	initFlag    bool
}

// Init 檢查設定並建立符號池
func (ss *SymbolSetting) Init() error {
	if ss.initFlag {
		return nil
	}
	if len(ss.Symbols) == 0 {
		return errs.NewFatal("symbols is empty")
	}
	ss.indexByID = make(map[string]int, len(ss.Symbols))
	weights := make([]int, len(ss.Symbols))
	total := 0
	for i, s := range ss.Symbols {
		if s.ID == "" {
			return errs.NewFatal(fmt.Sprintf("symbol %d has empty id", i))
		}
		if _, dup := ss.indexByID[s.ID]; dup {
			return errs.NewFatal(fmt.Sprintf("duplicated symbol id %s", s.ID))
		}
		if s.Weight <= 0 {
			return errs.NewFatal(fmt.Sprintf("symbol %s weight must be positive, got %d", s.ID, s.Weight))
		}
		if s.Value <= 0 {
			return errs.NewFatal(fmt.Sprintf("symbol %s value must be positive, got %d", s.ID, s.Value))
		}
		ss.indexByID[s.ID] = i
		weights[i] = s.Weight
		total += s.Weight
	}

	pool, err := sampler.BuildLUT(weights)
	if err != nil {
		return errs.Wrap(err, "build symbol pool")
	}
	ss.Pool = pool

	ss.Special = NoSymbol
	if ss.SpecialID != "" {
		idx, ok := ss.Index(ss.SpecialID)
		if !ok {
			return errs.NewFatal(fmt.Sprintf("special_symbol %s not in symbols", ss.SpecialID))
		}
		ss.Special = idx
	}
	ss.TotalWeight = total
	ss.initFlag = true
	return nil
}

// Index 依 ID 找圖標索引
func (ss *SymbolSetting) Index(id string) (int, bool) {
	idx, ok := ss.indexByID[id]
	return idx, ok
}

// Probability 回傳圖標 idx 的理論出現機率 weight / Σweight
func (ss *SymbolSetting) Probability(idx int) float64 {
	return float64(ss.Symbols[idx].Weight) / float64(ss.TotalWeight)
}
