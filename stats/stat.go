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
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// StatReport 投注模擬統計報告
type StatReport struct {
	Summary *SummaryReport `json:"Summary"`
	Mult    *MultReport    `json:"Mult"`
	Dist    *DistReport    `json:"Dist"`
	Theory  *TheoryReport  `json:"Theory,omitzero"`
	Player  *PlayerReport  `json:"Player,omitzero"`
	isDone  bool
}

type SummaryReport struct {
	Game        string  `json:"Game"`
	Coupon      string  `json:"Coupon"`
	Stake       float64 `json:"Stake"`
	TotalBet    float64 `json:"TotalBet"`
	TotalWin    float64 `json:"TotalWin"`
	WinPart     float64 `json:"WinPart"`
	MachinePart float64 `json:"MachinePart"`
	RTP         float64 `json:"RTP"`
	RtpCI       CI      `json:"RtpCI"`
	Std         float64 `json:"Std"`
	Cv          float64 `json:"Cv"`
	Combos      int     `json:"Combos"`
	NoWinRounds int     `json:"NoWinRounds"`
	HitRate     float64 `json:"HitRate"`
	HitRateCI   CI      `json:"HitRateCI"`
	Rounds      int     `json:"Rounds"`
}

// MultReport 贏倍（獎金 / 每期注金）統計
type MultReport struct {
	TotalWinMult      float64 `json:"TotalWinMult"`
	TotalWinMultSqSum float64 `json:"TotalWinMultSqSum"` // 平方和
	MaxWinMult        float64 `json:"MaxWinMult"`
}

// DistReport 贏倍區間落點統計
type DistReport struct {
	WinBucket       []string  `json:"WinBucket"`
	TotalWinCollect []int     `json:"TotalWinCollect"`
	TotalWinDist    []float64 `json:"TotalWinDist"`
}

// TheoryReport 由組合數與開獎機率推得的理論值
type TheoryReport struct {
	RTP          float64 `json:"RTP"`
	ComboProb    float64 `json:"ComboProb"`
	OneIn        float64 `json:"OneIn"`
	RtpInCI      bool    `json:"RtpInCI"`
	ExpectedWins float64 `json:"ExpectedWins"`
}

// PlayerReport 玩家統計
//
// 需使用 PlayerRecord 才會統計
type PlayerReport struct {
	InitBalance float64 `json:"InitBalance"`
	Balance     float64 `json:"Balance"`
	MaxBalance  float64 `json:"MaxBalance"`
	MinBalance  float64 `json:"MinBalance"`
	Bust        bool    `json:"Bust"`
	Cashout     bool    `json:"Cashout"`
	Alive       bool    `json:"Alive"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 將累積計數轉換為最終統計結果並鎖定 isDone 標記，重複呼叫無作用。
func (s *StatReport) Done() {
	if s.isDone {
		return
	}
	s.Summary.RTP = s.Rtp()
	s.Summary.RtpCI = s.Ci()
	s.Summary.Std = s.Std()
	s.Summary.Cv = s.Cv()
	hits := s.Summary.Rounds - s.Summary.NoWinRounds
	s.Summary.HitRate, s.Summary.HitRateCI = ProportionCI(hits, s.Summary.Rounds, 0.95)

	if s.Dist != nil && s.Summary.Rounds > 0 {
		rf := float64(s.Summary.Rounds)
		s.Dist.TotalWinDist = make([]float64, len(s.Dist.TotalWinCollect))
		for i, c := range s.Dist.TotalWinCollect {
			s.Dist.TotalWinDist[i] = float64(c) / rf
		}
	}
	if s.Theory != nil {
		ci := s.Summary.RtpCI
		s.Theory.RtpInCI = s.Theory.RTP >= ci.Lo && s.Theory.RTP <= ci.Hi
		if s.Theory.ComboProb > 0 {
			s.Theory.OneIn = 1 / s.Theory.ComboProb
		}
	}
	if s.Player != nil {
		s.Player.Alive = !(s.Player.Bust || s.Player.Cashout)
	}
	s.isDone = true
}

// Rtp 回傳整體 RTP（總獎金 / 總注金）
func (s *StatReport) Rtp() float64 {
	if s.Summary.Rounds == 0 || s.Summary.TotalBet == 0 {
		return 0
	}
	return s.Summary.TotalWin / s.Summary.TotalBet
}

// Std 回傳單期贏倍的標準差
func (s *StatReport) Std() float64 {
	if s.Summary.Rounds < 2 {
		return 0
	}
	rounds := float64(s.Summary.Rounds)
	winMultPow := s.Mult.TotalWinMult * s.Mult.TotalWinMult
	variance := (s.Mult.TotalWinMultSqSum - winMultPow/rounds) / (rounds - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Cv 回傳單期贏倍的變異係數
func (s *StatReport) Cv() float64 {
	rtp := s.Rtp()
	if rtp <= 0 {
		return 0
	}
	return s.Std() / rtp
}

// Ci 回傳 95% RTP 常態近似信賴區間
func (s *StatReport) Ci() CI {
	rtp := s.Rtp()
	std := s.Std()
	rtpSe := float64(0)
	if s.Summary.Rounds > 1 {
		rtpSe = std / math.Sqrt(float64(s.Summary.Rounds))
	}
	return CI{
		Lo: max(rtp-1.96*rtpSe, 0.0),
		Hi: rtp + 1.96*rtpSe,
	}
}

func (s *StatReport) WriteWith(w io.Writer, rep StatReportRender) error {
	s.Done()
	return rep.Write(w, s)
}

// StdOut 輸出耗時與摘要表到標準輸出
func (s *StatReport) StdOut(ut time.Duration) {
	s.Done()
	fmt.Print(FormatDuration(ut, s.Summary.Rounds))
	sk, sm := s.fmtBasic()
	fmt.Println(fmtTable(s.Summary.Game, sk, sm))
}

// Table 回傳摘要表字串
func (s *StatReport) Table() string {
	s.Done()
	sk, sm := s.fmtBasic()
	return fmtTable(s.Summary.Game, sk, sm)
}

// ============================================================
// ** 內部方法 **
// ============================================================

// FormatDuration 以千分位格式輸出耗時與每秒期數
func FormatDuration(d time.Duration, rounds int) string {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	dps := int(float64(rounds) / sec)
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\ndps : %d draws/sec\n", sec, dps)
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\ndps : %d draws/sec\n", m, s, dps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\ndps : %d draws/sec\n", h, m, s, dps)
}

func (s *StatReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Game":         s.Summary.Game,
		"Coupon":       s.Summary.Coupon,
		"Total Rounds": p.Sprintf("%d", s.Summary.Rounds),
		"Stake":        p.Sprintf("%.2f", s.Summary.Stake),
		"Total RTP":    p.Sprintf("%.2f %%", 100.0*s.Summary.RTP),
		"RTP 95% CI":   p.Sprintf("[%.2f%%,%.2f%%]", 100.0*s.Summary.RtpCI.Lo, 100.0*s.Summary.RtpCI.Hi),
		"Total Bet":    p.Sprintf("%.2f", s.Summary.TotalBet),
		"Total Win":    p.Sprintf("%.2f", s.Summary.TotalWin),
		"Win Part":     p.Sprintf("%.2f", s.Summary.WinPart),
		"Machine Part": p.Sprintf("%.2f", s.Summary.MachinePart),
		"NoWin Rounds": p.Sprintf("%d", s.Summary.NoWinRounds),
		"Hit Rate":     p.Sprintf("%.4f%% [%.4f%%,%.4f%%]", 100*s.Summary.HitRate, 100*s.Summary.HitRateCI.Lo, 100*s.Summary.HitRateCI.Hi),
		"STD":          p.Sprintf("%.3f", s.Summary.Std),
		"CV":           p.Sprintf("%.3f", s.Summary.Cv),
	}
	keys := []string{"Game", "Coupon", "Total Rounds", "Stake", "Total RTP", "RTP 95% CI", "Total Bet", "Total Win", "Win Part", "Machine Part", "NoWin Rounds", "Hit Rate", "STD", "CV"}
	if s.Theory != nil {
		basic["Theory RTP"] = p.Sprintf("%.2f %%", 100*s.Theory.RTP)
		basic["Combo Odds"] = p.Sprintf("1 in %.0f", s.Theory.OneIn)
		keys = append(keys, "Theory RTP", "Combo Odds")
	}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString(p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k]))))
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
