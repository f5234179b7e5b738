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

package recorder

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/dioloto/stats"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestRecordAndDone(t *testing.T) {
	r, err := New("togo9", "Twosurs/Directe", d(10), 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	r.Record(Round{})
	r.Record(Round{Win: d(1800), Machine: d(1200), Combos: 1})
	r.Record(Round{})
	r.Record(Round{})

	rep := r.Done(&stats.TheoryReport{RTP: 0.75, ComboProb: 20.0 / 8010})
	s := rep.Summary
	if s.Rounds != 4 || s.TotalBet != 40 || s.TotalWin != 3000 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.WinPart != 1800 || s.MachinePart != 1200 || s.NoWinRounds != 3 || s.Combos != 1 {
		t.Fatalf("unexpected parts %+v", s)
	}
	if math.Abs(s.RTP-75) > 1e-12 {
		t.Fatalf("rtp got %f", s.RTP)
	}
	if rep.Mult.MaxWinMult != 300 {
		t.Fatalf("max mult got %f", rep.Mult.MaxWinMult)
	}
	if rep.Player != nil {
		t.Fatalf("no player report without init bets")
	}
	if math.Abs(rep.Theory.OneIn-400.5) > 1e-9 {
		t.Fatalf("one in got %f", rep.Theory.OneIn)
	}
}

func TestNewRejects(t *testing.T) {
	if _, err := New("g", "c", decimal.Zero, 0); err == nil {
		t.Fatalf("zero stake must fail")
	}
	if _, err := New("g", "c", d(10), -1); err == nil {
		t.Fatalf("negative init bets must fail")
	}
}

func TestMerge(t *testing.T) {
	a, _ := New("g", "c", d(10), 0)
	b, _ := New("g", "c", d(10), 0)
	a.Record(Round{Win: d(140), Combos: 1})
	b.Record(Round{})
	b.Record(Round{Win: d(140), Combos: 1})
	m, err := Merge([]*Recorder{a, b})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if m.Basic.Rounds != 3 || !m.Basic.TotalWin.Equal(d(280)) || m.Basic.NoWin != 1 {
		t.Fatalf("unexpected merge %+v", m.Basic)
	}
	sum := 0
	for _, c := range m.Dist {
		sum += c
	}
	if sum != 3 {
		t.Fatalf("dist sum %d", sum)
	}

	other, _ := New("g", "other", d(10), 0)
	if _, err := Merge([]*Recorder{a, other}); err == nil {
		t.Fatalf("different coupon must fail")
	}
	if _, err := Merge(nil); err == nil {
		t.Fatalf("empty input must fail")
	}
}

func TestPlayerBust(t *testing.T) {
	r, _ := New("g", "c", d(10), 2)
	if r.RecordWithPlayer(Round{}) {
		t.Fatalf("player still has 10 left")
	}
	if !r.RecordWithPlayer(Round{}) {
		t.Fatalf("player must be bust")
	}
	if !r.RecordWithPlayer(Round{}) {
		t.Fatalf("bust player keeps leaving")
	}
	rep := r.Done(nil)
	if !rep.Player.Bust || rep.Player.Alive || rep.Summary.Rounds != 2 {
		t.Fatalf("unexpected player %+v rounds %d", rep.Player, rep.Summary.Rounds)
	}
}

func TestPlayerCashout(t *testing.T) {
	r, _ := New("g", "c", d(10), 10)
	if !r.RecordWithPlayer(Round{Win: d(300)}) {
		t.Fatalf("300 win on 100 balance must cash out")
	}
	rep := r.Done(nil)
	if !rep.Player.Cashout || rep.Player.MaxBalance != 390 {
		t.Fatalf("unexpected player %+v", rep.Player)
	}
}
