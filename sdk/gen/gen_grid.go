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

package gen

import (
	"github.com/zintix-labs/casinolab/sdk/buf"
	"github.com/zintix-labs/casinolab/sdk/core"
	"github.com/zintix-labs/casinolab/sdk/sampler"
	"github.com/zintix-labs/casinolab/spec"
)

// GenerateGrid 以符號池逐格獨立抽樣，填滿一個新的 cols x rows 盤面
func GenerateGrid(c *core.Core, pool sampler.LUT, cols, rows int) *buf.Grid {
	g := buf.NewGrid(cols, rows)
	fill(c, pool, g)
	return g
}

// GridGenerator 綁定機台的 core 與設定，重複使用同一塊盤面緩衝。
// 回傳的 Grid 在下一次 Gen 前有效，需要保留時請 Clone。
type GridGenerator struct {
	core *core.Core
	pool sampler.LUT
	grid *buf.Grid
}

// NewGridGenerator 依老虎機設定建立生成器
func NewGridGenerator(c *core.Core, ss *spec.SlotSetting) *GridGenerator {
	return &GridGenerator{
		core: c,
		pool: ss.Pool,
		grid: buf.NewGrid(ss.Columns, ss.Rows),
	}
}

// Gen 產生下一個盤面
func (gg *GridGenerator) Gen() *buf.Grid {
	fill(gg.core, gg.pool, gg.grid)
	return gg.grid
}

// 每一格都是一次獨立抽樣，格與格、軸與軸、轉與轉之間互不相關
func fill(c *core.Core, pool sampler.LUT, g *buf.Grid) {
	for i := range g.Cells {
		g.Cells[i] = pool.Pick(c)
	}
}
