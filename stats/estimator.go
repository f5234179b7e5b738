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
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// ============================================================
// ** 結構宣告 **
// ============================================================

// EstimatorPlayers 玩家體驗評估：每位玩家以相同投注單連續下注多期
type EstimatorPlayers struct {
	Players     int         `json:"Players"`
	RtpStat     RtpStat     `json:"RtpStat"`
	HitStat     EventCount  `json:"HitStat"`
	SessionStat SessionStat `json:"SessionStat"`
}

// Rtp敘事
type RtpStat struct {
	ExpMedian PointStat `json:"ExpMedian"` // 體驗的中位數
	ExpPerc   ExpPerc   `json:"ExpPerc"`   // 玩家分位數對應的 RTP
	RtpPerc   RtpPerc   `json:"RtpPerc"`   // RTP 門檻對應的玩家比例
}

// 最差10％玩家的RTP 最差33%玩家的RTP ...
type ExpPerc struct {
	ExpP10 PointStat `json:"ExpP10"`
	ExpP33 PointStat `json:"ExpP33"`
	ExpP67 PointStat `json:"ExpP67"`
	ExpP90 PointStat `json:"ExpP90"`
}

// 有多少玩家 RTP ≤ 30% / 50% ...
type RtpPerc struct {
	Rtp30  PointStat `json:"Rtp30"`
	Rtp50  PointStat `json:"Rtp50"`
	Rtp70  PointStat `json:"Rtp70"`
	Rtp100 PointStat `json:"Rtp100"`
}

// PointStat 點估計與信賴區間
type PointStat struct {
	Hat float64 `json:"Hat"`
	CI  CI      `json:"CI"`
}

// EventCount 玩家中獎期數 0 / 1 / 2 / 3+ 的比例
type EventCount struct {
	Zero PointStat `json:"Zero"`
	One  PointStat `json:"One"`
	Two  PointStat `json:"Two"`
	More PointStat `json:"More"`
}

// 對應結果敘事
type SessionStat struct {
	Bust    PointStat `json:"Bust"`    // 破產
	Cashout PointStat `json:"Cashout"` // 贏滿離場
	Alive   PointStat `json:"Alive"`   // 活到最後
}

// ============================================================
// ** 對外 : 玩家體驗評估 **
// ============================================================

// EstimatorPlayerExp 以每位玩家的報告估計體驗分佈
//
// 1. RTP 敘事 : 玩家 RTP 的分位數與門檻比例
//
// 2. Hit 敘事 : 玩家整段期間中獎 0/1/2/3+ 期的比例
//
// 3. Session 敘事 : 破產、贏滿離場、下完全部期數的比例
func EstimatorPlayerExp(sts []*StatReport) *EstimatorPlayers {
	n := len(sts)
	out := &EstimatorPlayers{Players: n}
	if n == 0 {
		return out
	}

	rtp := make([]float64, n)
	for i, s := range sts {
		rtp[i] = s.Rtp()
	}
	point := func(q float64) PointStat {
		lo, hi := quantileCI(rtp, q, 0.95)
		return PointStat{Hat: quantilePoint(rtp, q), CI: CI{Lo: lo, Hi: hi}}
	}
	below := func(x float64) PointStat {
		hat, ci := percentileCIForValue(rtp, x, 0.95)
		return PointStat{Hat: hat, CI: ci}
	}
	out.RtpStat = RtpStat{
		ExpMedian: point(0.5),
		ExpPerc: ExpPerc{
			ExpP10: point(0.10),
			ExpP33: point(1.0 / 3.0),
			ExpP67: point(2.0 / 3.0),
			ExpP90: point(0.90),
		},
		RtpPerc: RtpPerc{
			Rtp30:  below(0.30),
			Rtp50:  below(0.50),
			Rtp70:  below(0.70),
			Rtp100: below(1.00),
		},
	}

	var c [4]int
	for _, s := range sts {
		h := s.Summary.Rounds - s.Summary.NoWinRounds
		c[min(h, 3)]++
	}
	share := func(k int) PointStat {
		hat, ci := ProportionCI(k, n, 0.95)
		return PointStat{Hat: hat, CI: ci}
	}
	out.HitStat = EventCount{Zero: share(c[0]), One: share(c[1]), Two: share(c[2]), More: share(c[3])}

	var bustK, cashK, aliveK int
	for _, s := range sts {
		if s.Player == nil {
			continue
		}
		if s.Player.Bust {
			bustK++
		}
		if s.Player.Cashout {
			cashK++
		}
		if s.Player.Alive {
			aliveK++
		}
	}
	out.SessionStat = SessionStat{Bust: share(bustK), Cashout: share(cashK), Alive: share(aliveK)}
	return out
}

// ============================================================
// ** 內部統計函數 **
// ============================================================

// ProportionCI Clopper–Pearson 精確信賴區間（n 次中 k 次成功）
func ProportionCI(k int, n int, confidence float64) (pHat float64, ci CI) {
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

// 估計 p = P(X ≤ x0) 的點估計與 CI
func percentileCIForValue(data []float64, x0 float64, confidence float64) (pHat float64, ci CI) {
	n := len(data)
	if n == 0 {
		return 0, CI{}
	}
	k := 0
	for _, v := range data {
		if v <= x0 {
			k++
		}
	}
	return ProportionCI(k, n, confidence)
}

// 第 q 分位的上下界：order statistic 的秩視為二項，以 Beta 反推 p 範圍再轉回樣本索引。
func quantileCI(data []float64, q, confidence float64) (float64, float64) {
	n := len(data)
	if n == 0 {
		return 0, 0
	}
	if n == 1 {
		return data[0], data[0]
	}
	cp := append([]float64(nil), data...)
	sort.Float64s(cp)

	alpha := 1 - confidence
	k := int(q * float64(n))
	k = max(1, min(k, n-1))

	bLo := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
	bHi := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
	li := int(bLo.Quantile(alpha/2) * float64(n))
	ui := int(bHi.Quantile(1-alpha/2)*float64(n)) - 1
	li = max(0, min(li, n-1))
	ui = max(0, min(ui, n-1))
	return cp[li], cp[ui]
}

// quantilePoint 最近秩法的經驗分位數
func quantilePoint(data []float64, q float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	cp := append([]float64(nil), data...)
	sort.Float64s(cp)
	idx := max(0, min(int(q*float64(n)), n-1))
	return cp[idx]
}

// ============================================================
// ** 輸出函數 **
// ============================================================

// Table 玩家體驗摘要
func (est *EstimatorPlayers) Table() string {
	keys := []string{
		"Players",
		"Median RTP", "P10 RTP", "P33 RTP", "P67 RTP", "P90 RTP",
		"≤30% RTP (players)", "≤50% RTP (players)", "≤70% RTP (players)", "≤100% RTP (players)",
		"Hit 0 draws", "Hit 1 draw", "Hit 2 draws", "Hit 3+ draws",
		"Bust", "Cashout", "Alive",
	}
	r := est.RtpStat
	msg := map[string]string{
		"Players":             fmt.Sprintf("%d", est.Players),
		"Median RTP":          fmtPoint(r.ExpMedian),
		"P10 RTP":             fmtPoint(r.ExpPerc.ExpP10),
		"P33 RTP":             fmtPoint(r.ExpPerc.ExpP33),
		"P67 RTP":             fmtPoint(r.ExpPerc.ExpP67),
		"P90 RTP":             fmtPoint(r.ExpPerc.ExpP90),
		"≤30% RTP (players)":  fmtPoint(r.RtpPerc.Rtp30),
		"≤50% RTP (players)":  fmtPoint(r.RtpPerc.Rtp50),
		"≤70% RTP (players)":  fmtPoint(r.RtpPerc.Rtp70),
		"≤100% RTP (players)": fmtPoint(r.RtpPerc.Rtp100),
		"Hit 0 draws":         fmtPoint(est.HitStat.Zero),
		"Hit 1 draw":          fmtPoint(est.HitStat.One),
		"Hit 2 draws":         fmtPoint(est.HitStat.Two),
		"Hit 3+ draws":        fmtPoint(est.HitStat.More),
		"Bust":                fmtPoint(est.SessionStat.Bust),
		"Cashout":             fmtPoint(est.SessionStat.Cashout),
		"Alive":               fmtPoint(est.SessionStat.Alive),
	}
	return fmtTable("Player Experience", keys, msg)
}

func fmtPct01(x float64) string {
	return fmt.Sprintf("%.2f%%", x*100)
}

func fmtPoint(p PointStat) string {
	return fmt.Sprintf("%s [%s, %s]", fmtPct01(p.Hat), fmtPct01(p.CI.Lo), fmtPct01(p.CI.Hi))
}
