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

package buf

import "github.com/zintix-labs/casinolab/spec"

// Grid 盤面，以軸為主序存放圖標索引：Cells[col*Rows+row]
type Grid struct {
	Columns int   `json:"columns"`
	Rows    int   `json:"rows"`
	Cells   []int `json:"cells"`
}

// NewGrid 建立 cols x rows 的空盤面
func NewGrid(cols, rows int) *Grid {
	return &Grid{Columns: cols, Rows: rows, Cells: make([]int, cols*rows)}
}

// At 取得 (col,row) 的圖標索引
func (g *Grid) At(col, row int) int {
	return g.Cells[col*g.Rows+row]
}

// AtCell 取得座標格的圖標索引
func (g *Grid) AtCell(c spec.Cell) int {
	return g.At(c.Col, c.Row)
}

// Set 寫入 (col,row)
func (g *Grid) Set(col, row, sym int) {
	g.Cells[col*g.Rows+row] = sym
}

// Column 回傳第 col 軸（共用底層陣列）
func (g *Grid) Column(col int) []int {
	return g.Cells[col*g.Rows : (col+1)*g.Rows]
}

// Clone 深拷貝，結果需要保留給外部時使用
func (g *Grid) Clone() *Grid {
	c := &Grid{Columns: g.Columns, Rows: g.Rows, Cells: make([]int, len(g.Cells))}
	copy(c.Cells, g.Cells)
	return c
}
