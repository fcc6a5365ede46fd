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
	"time"
)

// SessionStats 一段連續遊玩的累計帳（老虎機與樂透共用）
//
// 所有欄位只增不減；RecordOutcome 與 Merge 都是純函式，
// 任意順序、任意分組合併同一批結果，得到的總數都相同。
type SessionStats struct {
	Plays       int `json:"plays"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	TotalStaked int `json:"total_staked"`
	TotalWon    int `json:"total_won"`
	TotalLost   int `json:"total_lost"`
	BestWin     int `json:"best_win"`
}

// RecordOutcome 記一筆結果並回傳新的帳
//
// payout > 0 記為贏：累計 TotalWon 並更新 BestWin；
// 否則記為輸：把 stake 計入 TotalLost。
func RecordOutcome(s SessionStats, stake, payout int) SessionStats {
	s.Plays++
	s.TotalStaked += stake
	if payout > 0 {
		s.Wins++
		s.TotalWon += payout
		s.BestWin = max(s.BestWin, payout)
	} else {
		s.Losses++
		s.TotalLost += stake
	}
	return s
}

// Merge 合併兩段帳
func (s SessionStats) Merge(o SessionStats) SessionStats {
	return SessionStats{
		Plays:       s.Plays + o.Plays,
		Wins:        s.Wins + o.Wins,
		Losses:      s.Losses + o.Losses,
		TotalStaked: s.TotalStaked + o.TotalStaked,
		TotalWon:    s.TotalWon + o.TotalWon,
		TotalLost:   s.TotalLost + o.TotalLost,
		BestWin:     max(s.BestWin, o.BestWin),
	}
}

// NetResult = TotalWon - TotalLost
func (s SessionStats) NetResult() int {
	return s.TotalWon - s.TotalLost
}

// WinRate = Wins / Plays，沒有玩過時為 0
func (s SessionStats) WinRate() float64 {
	if s.Plays == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Plays)
}

// Summary 離場摘要
type Summary struct {
	Title      string        `json:"title"`
	Duration   time.Duration `json:"duration"`
	Plays      int           `json:"plays"`
	WinRatePct int           `json:"win_rate_pct"`
	NetResult  int           `json:"net_result"`
	BestWin    int           `json:"best_win"`
	TotalWon   int           `json:"total_won"`
	TotalLost  int           `json:"total_lost"`
}

// Summarize 產生從 start 到 now 的摘要，勝率四捨五入到百分比整數
func (s SessionStats) Summarize(title string, start, now time.Time) Summary {
	d := now.Sub(start)
	if d < 0 {
		d = 0
	}
	return Summary{
		Title:      title,
		Duration:   d.Truncate(time.Second),
		Plays:      s.Plays,
		WinRatePct: int(math.Round(s.WinRate() * 100)),
		NetResult:  s.NetResult(),
		BestWin:    s.BestWin,
		TotalWon:   s.TotalWon,
		TotalLost:  s.TotalLost,
	}
}

// String 以表格輸出摘要
func (sm Summary) String() string {
	p := printer()
	keys := []string{"Duration", "Plays", "Win Rate", "Net Result", "Best Win", "Total Won", "Total Lost"}
	msg := map[string]string{
		"Duration":   sm.Duration.String(),
		"Plays":      p.Sprintf("%d", sm.Plays),
		"Win Rate":   p.Sprintf("%d %%", sm.WinRatePct),
		"Net Result": p.Sprintf("%+d", sm.NetResult),
		"Best Win":   p.Sprintf("%d", sm.BestWin),
		"Total Won":  p.Sprintf("%d", sm.TotalWon),
		"Total Lost": p.Sprintf("%d", sm.TotalLost),
	}
	return fmtTable(sm.Title, keys, msg)
}
