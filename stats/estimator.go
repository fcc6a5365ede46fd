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

package stats

import (
	"math"

	"github.com/zintix-labs/casinolab/spec"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SymbolReport 圖標出現頻率與設定權重的適合度檢定
//
// 每一格都是獨立抽樣，觀察到的頻率應收斂到 weight_i / Σweight；
// PValue 過小（例如 < 0.001）代表抽樣偏離設定。
type SymbolReport struct {
	IDs          []string  `json:"IDs"`
	Expected     []float64 `json:"Expected"`
	Observed     []int     `json:"Observed"`
	ObservedRate []float64 `json:"ObservedRate"`
	ChiSquare    float64   `json:"ChiSquare"`
	DoF          int       `json:"DoF"`
	PValue       float64   `json:"PValue"`
}

// NewSymbolReport 以圖標設定建立空的頻率報告
func NewSymbolReport(ss *spec.SymbolSetting) *SymbolReport {
	n := len(ss.Symbols)
	r := &SymbolReport{
		IDs:      make([]string, n),
		Expected: make([]float64, n),
		Observed: make([]int, n),
	}
	for i, s := range ss.Symbols {
		r.IDs[i] = s.ID
		r.Expected[i] = ss.Probability(i)
	}
	return r
}

// AddCounts 累加各圖標出現次數，counts 以圖標索引對齊
func (r *SymbolReport) AddCounts(counts []int) {
	for i := range min(len(counts), len(r.Observed)) {
		r.Observed[i] += counts[i]
	}
}

func (r *SymbolReport) fit() {
	total := 0
	for _, c := range r.Observed {
		total += c
	}
	r.ObservedRate = make([]float64, len(r.Observed))
	r.DoF = len(r.Observed) - 1
	if total == 0 || r.DoF < 1 {
		r.PValue = 1
		return
	}
	obs := make([]float64, len(r.Observed))
	exp := make([]float64, len(r.Observed))
	for i, c := range r.Observed {
		obs[i] = float64(c)
		exp[i] = r.Expected[i] * float64(total)
		r.ObservedRate[i] = float64(c) / float64(total)
	}
	r.ChiSquare = stat.ChiSquare(obs, exp)
	r.PValue = 1 - distuv.ChiSquared{K: float64(r.DoF)}.CDF(r.ChiSquare)
}

func (r *SymbolReport) fmtRows() ([]string, map[string]string) {
	p := printer()
	keys := make([]string, 0, len(r.IDs)+1)
	msg := make(map[string]string, len(r.IDs)+1)
	for i, id := range r.IDs {
		keys = append(keys, id)
		msg[id] = p.Sprintf("%.4f %% (want %.4f %%)", 100*r.ObservedRate[i], 100*r.Expected[i])
	}
	keys = append(keys, "chi2 p-value")
	msg["chi2 p-value"] = p.Sprintf("%.4f (chi2=%.2f, dof=%d)", r.PValue, r.ChiSquare, r.DoF)
	return keys, msg
}

// normalCI 平均數的常態近似信賴區間，下界不低於 0
func normalCI(mean, std float64, n int, confidence float64) CI {
	if n < 2 {
		return CI{Lo: mean, Hi: mean}
	}
	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
	se := std / math.Sqrt(float64(n))
	return CI{Lo: max(mean-z*se, 0), Hi: mean + z*se}
}

// proportionCICP 比例的 Clopper-Pearson 精確信賴區間
func proportionCICP(k int, n int, confidence float64) (pHat float64, ci CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - confidence
	pHat = float64(k) / float64(n)

	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return
}
