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
	"fmt"
	"io"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/casinolab/spec"
)

// CI 信賴區間
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// SimReport 模擬統計報告
type SimReport struct {
	Summary *SummaryReport `json:"Summary"`
	Mult    *MultReport    `json:"Mult"`
	Dist    *DistReport    `json:"Dist"`
	Symbols *SymbolReport  `json:"Symbols,omitempty"`
	Lottery *LotteryReport `json:"Lottery,omitempty"`
	isDone  bool
}

type SummaryReport struct {
	GameName     string        `json:"GameName"`
	GameId       spec.GID      `json:"GameId"`
	Kind         spec.GameKind `json:"Kind"`
	Stake        int           `json:"Stake"`
	Rounds       int           `json:"Rounds"`
	TotalBet     int           `json:"TotalBet"`
	TotalWin     int           `json:"TotalWin"`
	RTP          float64       `json:"RTP"`
	RtpCI        CI            `json:"RtpCI"`
	Std          float64       `json:"Std"`
	Cv           float64       `json:"Cv"`
	HitRounds    int           `json:"HitRounds"`
	HitRate      float64       `json:"HitRate"`
	HitRateCI    CI            `json:"HitRateCI"`
	NoWinRounds  int           `json:"NoWinRounds"`
	BestWin      int           `json:"BestWin"`
	SpecialCount int           `json:"SpecialCount"`
	JackpotAdded int           `json:"JackpotAdded"`
}

// MultReport 贏倍統計（以押注為單位）
type MultReport struct {
	TotalWinMult      float64 `json:"TotalWinMult"`
	TotalWinMultSqSum float64 `json:"TotalWinMultSqSum"` // 平方和
}

// DistReport 贏倍區間落點統計
type DistReport struct {
	WinBucket       []string  `json:"WinBucket"`
	TotalWinCollect []int     `json:"TotalWinCollect"`
	TotalWinDist    []float64 `json:"TotalWinDist"`
}

// LotteryReport 命中數分布
type LotteryReport struct {
	MatchCollect []int     `json:"MatchCollect"`
	MatchDist    []float64 `json:"MatchDist"`
}

// NewSimReport 建立空報告
func NewSimReport(gs *spec.GameSetting, stake int) *SimReport {
	r := &SimReport{
		Summary: &SummaryReport{GameName: gs.GameName, GameId: gs.GameID, Kind: gs.Kind, Stake: stake},
		Mult:    &MultReport{},
		Dist: &DistReport{
			WinBucket:       Buckets.WinBucketStr(),
			TotalWinCollect: make([]int, Buckets.Len()),
		},
	}
	switch gs.Kind {
	case spec.KindSlot:
		r.Symbols = NewSymbolReport(&gs.Slot.SymbolSetting)
	case spec.KindLottery:
		r.Lottery = &LotteryReport{MatchCollect: make([]int, gs.Lottery.Pick+1)}
	}
	return r
}

// Done 將累積計數轉換為最終統計結果並鎖定
//
// 紀錄過程只處理 int 計數，完成後一次性計算比例與區間。
func (s *SimReport) Done() {
	if s.isDone {
		return
	}
	s.Summary.RTP = s.Rtp()
	s.Summary.RtpCI = s.Ci()
	s.Summary.Std = s.Std()
	s.Summary.Cv = s.Cv()
	s.Summary.HitRate, s.Summary.HitRateCI = proportionCICP(s.Summary.HitRounds, s.Summary.Rounds, 0.95)

	s.Dist.TotalWinDist = make([]float64, len(s.Dist.TotalWinCollect))
	if s.Summary.Rounds > 0 {
		for i, c := range s.Dist.TotalWinCollect {
			s.Dist.TotalWinDist[i] = float64(c) / float64(s.Summary.Rounds)
		}
	}
	if s.Symbols != nil {
		s.Symbols.fit()
	}
	if s.Lottery != nil {
		s.Lottery.MatchDist = make([]float64, len(s.Lottery.MatchCollect))
		if s.Summary.Rounds > 0 {
			for i, c := range s.Lottery.MatchCollect {
				s.Lottery.MatchDist[i] = float64(c) / float64(s.Summary.Rounds)
			}
		}
	}
	s.isDone = true
}

// Rtp 回傳整體 RTP（總派彩 / 總押注），以 decimal 計算避免大數相除失真
func (s *SimReport) Rtp() float64 {
	if s.Summary.TotalBet == 0 {
		return 0
	}
	r, _ := decimal.NewFromInt(int64(s.Summary.TotalWin)).
		DivRound(decimal.NewFromInt(int64(s.Summary.TotalBet)), 12).
		Float64()
	return r
}

// Std 回傳單局贏倍的樣本標準差
func (s *SimReport) Std() float64 {
	if s.Summary.Rounds < 2 {
		return 0
	}
	n := float64(s.Summary.Rounds)
	sum := s.Mult.TotalWinMult
	variance := (s.Mult.TotalWinMultSqSum - sum*sum/n) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Cv 回傳單局贏倍的變異係數
func (s *SimReport) Cv() float64 {
	rtp := s.Rtp()
	if rtp <= 0 {
		return 0
	}
	return s.Std() / rtp
}

// Ci 回傳 RTP 的 95% 常態近似信賴區間
func (s *SimReport) Ci() CI {
	return normalCI(s.Rtp(), s.Std(), s.Summary.Rounds, 0.95)
}

// WriteWith 以指定格式輸出
func (s *SimReport) WriteWith(w io.Writer, rep SimReportRender) error {
	s.Done()
	return rep.Write(w, s)
}

// StdOut 以表格輸出到 w
func (s *SimReport) StdOut(w io.Writer, ut time.Duration) {
	s.Done()
	fmt.Fprint(w, formatDuration(ut, s.Summary.Rounds))
	keys, msg := s.fmtBasic()
	fmt.Fprint(w, fmtTable(s.Summary.GameName, keys, msg))
	if s.Symbols != nil {
		k, m := s.Symbols.fmtRows()
		fmt.Fprint(w, fmtTable("Symbol Frequency", k, m))
	}
	if s.Lottery != nil {
		k, m := s.Lottery.fmtRows()
		fmt.Fprint(w, fmtTable("Match Count", k, m))
	}
}

func formatDuration(d time.Duration, rounds int) string {
	p := printer()
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	rps := int(float64(rounds) / sec)
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\nrps : %d rounds/sec\n", sec, rps)
	}
	sc := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\nrps : %d rounds/sec\n", m, sc, rps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\nrps : %d rounds/sec\n", h, m, sc, rps)
}

func (s *SimReport) fmtBasic() ([]string, map[string]string) {
	p := printer()
	sm := s.Summary
	basic := map[string]string{
		"Game Name":     sm.GameName,
		"Game ID":       fmt.Sprintf("%d", sm.GameId),
		"Kind":          string(sm.Kind),
		"Stake":         p.Sprintf("%d", sm.Stake),
		"Total Rounds":  p.Sprintf("%d", sm.Rounds),
		"Total RTP":     p.Sprintf("%.2f %%", 100.0*sm.RTP),
		"RTP 95% CI":    p.Sprintf("[%.2f%%,%.2f%%]", 100.0*sm.RtpCI.Lo, 100.0*sm.RtpCI.Hi),
		"Total Bet":     p.Sprintf("%d", sm.TotalBet),
		"Total Win":     p.Sprintf("%d", sm.TotalWin),
		"Hit Rate":      p.Sprintf("%.2f %% [%.2f%%,%.2f%%]", 100*sm.HitRate, 100*sm.HitRateCI.Lo, 100*sm.HitRateCI.Hi),
		"NoWin Rounds":  p.Sprintf("%d", sm.NoWinRounds),
		"Best Win":      p.Sprintf("%d", sm.BestWin),
		"Special Count": p.Sprintf("%d", sm.SpecialCount),
		"Jackpot Added": p.Sprintf("%d", sm.JackpotAdded),
		"STD":           p.Sprintf("%.3f", sm.Std),
		"CV":            p.Sprintf("%.3f", sm.Cv),
	}
	keys := []string{"Game Name", "Game ID", "Kind", "Stake", "Total Rounds", "Total RTP", "RTP 95% CI", "Total Bet", "Total Win", "Hit Rate", "NoWin Rounds", "Best Win"}
	if sm.Kind == spec.KindSlot {
		keys = append(keys, "Special Count", "Jackpot Added")
	}
	keys = append(keys, "STD", "CV")
	return keys, basic
}

func (l *LotteryReport) fmtRows() ([]string, map[string]string) {
	p := printer()
	keys := make([]string, len(l.MatchCollect))
	msg := make(map[string]string, len(l.MatchCollect))
	for i, c := range l.MatchCollect {
		k := fmt.Sprintf("match %d", i)
		keys[i] = k
		msg[k] = p.Sprintf("%d (%.4f %%)", c, 100*l.MatchDist[i])
	}
	return keys, msg
}
