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

package sampler

import (
	"errors"
	"math"
	"testing"

	"github.com/zintix-labs/casinolab/sdk/core"
)

// checkDistribution 驗證抽樣結果的分佈是否符合預期權重
func checkDistribution(t *testing.T, weights []int, samples []int, tolerance float64) {
	t.Helper()
	totalW := 0
	for _, w := range weights {
		totalW += w
	}
	counts := make(map[int]int)
	for _, idx := range samples {
		counts[idx]++
	}
	for i, w := range weights {
		if w == 0 {
			if counts[i] > 0 {
				t.Errorf("expected 0 samples for index %d (weight 0), got %d", i, counts[i])
			}
			continue
		}
		want := float64(w) / float64(totalW)
		got := float64(counts[i]) / float64(len(samples))
		if diff := math.Abs(want - got); diff > tolerance {
			t.Errorf("index %d: expected prob %.3f, got %.3f (diff %.3f > tol %.3f)", i, want, got, diff, tolerance)
		}
	}
}

func TestBuildLUTLayout(t *testing.T) {
	lut, err := BuildLUT([]int{3, 5, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 0, 0, 1, 1, 1, 1, 1}
	if len(lut) != len(want) {
		t.Fatalf("expected len %d, got %d", len(want), len(lut))
	}
	for i := range want {
		if lut[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, lut)
		}
	}
	if lut.weight(1) != 5 || lut.weight(2) != 0 {
		t.Fatalf("unexpected weights: %d %d", lut.weight(1), lut.weight(2))
	}
}

func TestBuildLUTErrors(t *testing.T) {
	cases := []struct {
		name    string
		weights []int
		want    error
	}{
		{"empty", nil, ErrEmptyWeights},
		{"zero", []int{0, 0}, ErrZeroWeights},
		{"negative", []int{1, -1}, ErrNegativeWeight},
		{"overflow", []int{int(maxLUTCap), 1}, ErrWeightOverflow},
	}
	for _, tc := range cases {
		if _, err := BuildLUT(tc.weights); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestLUTConvergence(t *testing.T) {
	// 寶藏機台的權重表
	weights := []int{25, 20, 18, 15, 12, 8, 6, 4}
	lut, err := BuildLUT(weights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := core.New(core.Default().New(42))
	samples := make([]int, 100_000)
	for i := range samples {
		samples[i] = lut.Pick(c)
	}
	checkDistribution(t, weights, samples, 0.01)
}

func TestPickEmpty(t *testing.T) {
	c := core.New(core.Default().New(1))
	if got := LUT(nil).Pick(c); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}
