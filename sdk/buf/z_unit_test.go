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

import (
	"testing"

	"github.com/zintix-labs/casinolab/spec"
)

func TestGridLayout(t *testing.T) {
	g := NewGrid(5, 3)
	g.Set(2, 1, 7)
	if g.At(2, 1) != 7 || g.Cells[2*3+1] != 7 {
		t.Fatalf("unexpected layout: %v", g.Cells)
	}
	if g.AtCell(spec.Cell{Col: 2, Row: 1}) != 7 {
		t.Fatalf("AtCell mismatch")
	}
	col := g.Column(2)
	if len(col) != 3 || col[1] != 7 {
		t.Fatalf("unexpected column: %v", col)
	}
	c := g.Clone()
	g.Set(2, 1, 0)
	if c.At(2, 1) != 7 {
		t.Fatalf("clone shares memory")
	}
}

func TestSpinResultHelpers(t *testing.T) {
	sr := &SpinResult{
		Lines:       []PaylineResult{{Line: 0}, {Line: 1, IsWin: true, Payout: 10}},
		TotalPayout: 14,
	}
	if w := sr.WinLines(); len(w) != 1 || w[0].Line != 1 {
		t.Fatalf("unexpected win lines: %v", w)
	}
	if !sr.IsWin() {
		t.Fatalf("expected win")
	}
	sr.Reset()
	if sr.IsWin() || len(sr.Lines) != 0 {
		t.Fatalf("reset failed")
	}
}
