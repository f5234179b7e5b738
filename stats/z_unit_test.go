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

package stats_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/zintix-labs/dioloto/stats"
)

// buildStatReport 以每期獎金建立報告，stake 為每期注金。
func buildStatReport(stake float64, wins []float64) *stats.StatReport {
	collect := make([]int, stats.Buckets.Len())
	var total, multSum, multSq float64
	noWin := 0
	for _, w := range wins {
		m := w / stake
		collect[stats.Buckets.Index(m)]++
		total += w
		multSum += m
		multSq += m * m
		if w == 0 {
			noWin++
		}
	}
	report := &stats.StatReport{
		Summary: &stats.SummaryReport{
			Game:        "TestGame",
			Coupon:      "Twosurs/Directe",
			Stake:       stake,
			TotalBet:    stake * float64(len(wins)),
			TotalWin:    total,
			NoWinRounds: noWin,
			Rounds:      len(wins),
		},
		Mult: &stats.MultReport{
			TotalWinMult:      multSum,
			TotalWinMultSqSum: multSq,
		},
		Dist: &stats.DistReport{
			WinBucket:       stats.Buckets.WinBucketStr(),
			TotalWinCollect: collect,
		},
		Player: &stats.PlayerReport{},
	}
	report.Done()
	return report
}

func TestStatReportCoreMetrics(t *testing.T) {
	stake := 10.0
	rep := buildStatReport(stake, []float64{0, 3000, 0, 0})

	wantRTP := 3000.0 / 40.0
	if got := rep.Rtp(); math.Abs(got-wantRTP) > 1e-12 {
		t.Fatalf("RTP got %.12f want %.12f", got, wantRTP)
	}

	mults := []float64{0, 300, 0, 0}
	var sum, sq float64
	for _, m := range mults {
		sum += m
		sq += m * m
	}
	wantStd := math.Sqrt((sq - sum*sum/4) / 3)
	if got := rep.Std(); math.Abs(got-wantStd) > 1e-9 {
		t.Fatalf("Std got %.12f want %.12f", got, wantStd)
	}
	if got := rep.Cv(); math.Abs(got-wantStd/wantRTP) > 1e-9 {
		t.Fatalf("CV got %.12f", got)
	}
	if rep.Summary.HitRate != 0.25 {
		t.Fatalf("hit rate got %f", rep.Summary.HitRate)
	}
	if rep.Summary.HitRateCI.Lo > 0.25 || rep.Summary.HitRateCI.Hi < 0.25 {
		t.Fatalf("hit rate CI %+v must contain estimate", rep.Summary.HitRateCI)
	}

	total := 0
	for _, c := range rep.Dist.TotalWinCollect {
		total += c
	}
	if total != rep.Summary.Rounds {
		t.Fatalf("distribution total %d != rounds %d", total, rep.Summary.Rounds)
	}
	if rep.Dist.TotalWinCollect[0] != 3 || rep.Dist.TotalWinCollect[6] != 1 {
		t.Fatalf("unexpected buckets %v", rep.Dist.TotalWinCollect)
	}
	if math.Abs(rep.Dist.TotalWinDist[0]-0.75) > 1e-12 {
		t.Fatalf("unexpected dist %v", rep.Dist.TotalWinDist)
	}

	rep.Done()
	if rep.Rtp() != wantRTP {
		t.Fatalf("RTP changed after second Done")
	}
}

func TestBuckets(t *testing.T) {
	cases := map[float64]string{
		0:     "[0,0]",
		0.6:   "(0,1)",
		1:     "[1,2)",
		14:    "[10,50)",
		300:   "[100,500)",
		3000:  "[1000,5000)",
		50000: "[5000,+inf)",
	}
	labels := stats.Buckets.WinBucketStr()
	for m, want := range cases {
		if got := labels[stats.Buckets.Index(m)]; got != want {
			t.Fatalf("mult %v: got %s want %s", m, got, want)
		}
	}
}

func TestProportionCI(t *testing.T) {
	hat, ci := stats.ProportionCI(0, 100, 0.95)
	if hat != 0 || ci.Lo != 0 || ci.Hi <= 0 || ci.Hi > 0.05 {
		t.Fatalf("zero successes: %f %+v", hat, ci)
	}
	hat, ci = stats.ProportionCI(100, 100, 0.95)
	if hat != 1 || ci.Hi != 1 || ci.Lo < 0.95 {
		t.Fatalf("all successes: %f %+v", hat, ci)
	}
	// 5/10 的 Clopper–Pearson 區間約 [0.187, 0.813]
	_, ci = stats.ProportionCI(5, 10, 0.95)
	if math.Abs(ci.Lo-0.187) > 0.002 || math.Abs(ci.Hi-0.813) > 0.002 {
		t.Fatalf("unexpected CI %+v", ci)
	}
	_, ci = stats.ProportionCI(0, 0, 0.95)
	if ci.Lo != 0 || ci.Hi != 1 {
		t.Fatalf("empty sample must give [0,1]")
	}
}

func TestTheory(t *testing.T) {
	rep := buildStatReport(10, []float64{0, 0})
	rep2 := &stats.StatReport{
		Summary: rep.Summary,
		Mult:    rep.Mult,
		Dist:    rep.Dist,
		Theory:  &stats.TheoryReport{RTP: 0, ComboProb: 0.25},
	}
	rep2.Done()
	if rep2.Theory.OneIn != 4 || !rep2.Theory.RtpInCI {
		t.Fatalf("unexpected theory %+v", rep2.Theory)
	}
	if !strings.Contains(rep2.Table(), "1 in 4") {
		t.Fatalf("table must show combo odds:\n%s", rep2.Table())
	}
}

func TestRenders(t *testing.T) {
	rep := buildStatReport(10, []float64{0, 140})
	var buf bytes.Buffer
	if err := rep.WriteWith(&buf, &stats.JsonStatReportRender{}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("json output invalid: %v", err)
	}
	if _, ok := back["Summary"]; !ok {
		t.Fatalf("missing Summary in %s", buf.String())
	}

	buf.Reset()
	if err := rep.WriteWith(&buf, &stats.YAMLStatReportRender{}); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "winbucket: [") {
		t.Fatalf("one dimensional list must be flow style:\n%s", buf.String())
	}

	buf.Reset()
	if err := rep.WriteWith(&buf, stats.RenderByName("table")); err != nil {
		t.Fatalf("table: %v", err)
	}
	if !strings.Contains(buf.String(), "TestGame") || !strings.Contains(buf.String(), "| Total RTP") {
		t.Fatalf("unexpected table:\n%s", buf.String())
	}
	if stats.RenderByName("xml") != nil {
		t.Fatalf("unknown render must be nil")
	}
}

func TestEstimatorRtpAndSession(t *testing.T) {
	reports := make([]*stats.StatReport, 0, 100)
	for i := 0; i < 100; i++ {
		reports = append(reports, buildStatReport(100, []float64{float64(i)}))
	}
	est := stats.EstimatorPlayerExp(reports)
	if math.Abs(est.RtpStat.ExpMedian.Hat-0.5) > 0.05 {
		t.Fatalf("median RTP expected ~0.5, got %.3f", est.RtpStat.ExpMedian.Hat)
	}
	if math.Abs(est.RtpStat.ExpPerc.ExpP90.Hat-0.9) > 0.05 {
		t.Fatalf("P90 RTP expected ~0.9, got %.3f", est.RtpStat.ExpPerc.ExpP90.Hat)
	}
	// 只有 i=0 沒中
	if est.HitStat.Zero.Hat != 0.01 || est.HitStat.One.Hat != 0.99 {
		t.Fatalf("unexpected hit stat %+v", est.HitStat)
	}

	samples := make([]*stats.StatReport, 10)
	for i := 0; i < 10; i++ {
		r := buildStatReport(100, []float64{0})
		switch {
		case i < 3:
			r.Player.Bust = true
			r.Player.Alive = false
		case i < 5:
			r.Player.Cashout = true
			r.Player.Alive = false
		default:
			r.Player.Alive = true
		}
		samples[i] = r
	}
	est2 := stats.EstimatorPlayerExp(samples)
	if est2.SessionStat.Bust.Hat != 0.3 || est2.SessionStat.Cashout.Hat != 0.2 || est2.SessionStat.Alive.Hat != 0.5 {
		t.Fatalf("unexpected session %+v", est2.SessionStat)
	}
	if !strings.Contains(est2.Table(), "Player Experience") {
		t.Fatalf("missing title")
	}
	if stats.EstimatorPlayerExp(nil).Players != 0 {
		t.Fatalf("empty input")
	}
}
