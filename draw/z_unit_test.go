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

package draw

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/dioloto/bet"
	"github.com/zintix-labs/dioloto/coupon"
	"github.com/zintix-labs/dioloto/sdk/core"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewDraw(t *testing.T) {
	r := core.NewPCG64WithSeed(42)
	for i := 0; i < 1000; i++ {
		d := New(r)
		for _, res := range []Result{d.Win, d.Machine} {
			seen := map[int]bool{}
			for _, n := range res {
				if n < 1 || n > 90 || seen[n] {
					t.Fatalf("malformed result %v", res)
				}
				seen[n] = true
			}
		}
	}
	a := New(core.NewPCG64WithSeed(7))
	b := New(core.NewPCG64WithSeed(7))
	if a != b {
		t.Fatalf("same seed must give the same draw")
	}
}

func TestSettleFirst(t *testing.T) {
	d := Draw{Win: Result{3, 7, 11, 20, 45}}
	cases := []struct {
		f    bet.Formula
		want string
	}{
		{bet.Directe, "1400"},
		{bet.Position2, "2000"},
		{bet.Position1, "0"},
	}
	for _, c := range cases {
		cp := &coupon.Coupon{BetType: bet.FirstOrOneBK, Formula: c.f, Numbers: []int{7}, Stake: "100"}
		if got := Settle(cp, d); !got.Equal(dec(c.want)) {
			t.Fatalf("%s: got %s want %s", c.f, got, c.want)
		}
	}
}

func TestSettleTwoSure(t *testing.T) {
	d := Draw{Win: Result{17, 40, 5, 2, 3}, Machine: Result{5, 17, 60, 61, 62}}
	cases := []struct {
		f    bet.Formula
		want string
	}{
		{bet.Directe, "3000"},
		{bet.Turbo2, "0"},
		{bet.Turbo3, "8000"},
		{bet.Turbo4, "5000"},
		// Win 不中 Turbo2，Machine 中：0.4 × 30000
		{bet.Turbo2DoubleChance, "12000"},
		{bet.DirecteDoubleChance, "3000"},
	}
	for _, c := range cases {
		cp := &coupon.Coupon{BetType: bet.TwoSure, Formula: c.f, Numbers: []int{5, 17}, Stake: "10"}
		if got := Settle(cp, d); !got.Equal(dec(c.want)) {
			t.Fatalf("%s: got %s want %s", c.f, got, c.want)
		}
	}
}

func TestSettlePairs(t *testing.T) {
	d := Draw{Win: Result{11, 22, 33, 1, 2}}
	dn := &coupon.Coupon{BetType: bet.DoubleNumber, Formula: bet.Directe, Prises: "1"}
	// 三個重號開出 -> C(3,2)=3 組
	if got := Settle(dn, d); !got.Equal(dec("9000")) {
		t.Fatalf("double number got %s", got)
	}
	perm := &coupon.Coupon{BetType: bet.Permutations, Formula: bet.Turbo2, Balls: 4, Numbers: []int{11, 22, 50, 60}, Prises: "2"}
	if got := Settle(perm, d); !got.Equal(dec("60000")) {
		t.Fatalf("permutation got %s", got)
	}
	ana := &coupon.Coupon{BetType: bet.AnagramSimple, Formula: bet.Directe, Prises: "1"}
	d2 := Draw{Win: Result{12, 21, 45, 54, 9}}
	if got := Settle(ana, d2); !got.Equal(dec("6000")) {
		t.Fatalf("anagram got %s", got)
	}
	if Hits(ana, Result{12, 13, 14, 15, 16}) != 0 {
		t.Fatalf("a single anagram number never pays")
	}
}

func TestSettleNAP(t *testing.T) {
	d := Draw{Win: Result{1, 2, 3, 4, 80}}
	nap3 := &coupon.Coupon{BetType: bet.NAP, Formula: bet.NAP3, Balls: 3, Numbers: []int{1, 2, 3}, Stake: "10"}
	if got := Settle(nap3, d); !got.Equal(dec("30000")) {
		t.Fatalf("nap3 got %s", got)
	}
	// 5 個號碼中 4 個開出 -> C(4,3)=4 組
	nap35 := &coupon.Coupon{BetType: bet.NAP, Formula: bet.NAP3, Balls: 5, Numbers: []int{1, 2, 3, 4, 70}, Prises: "1"}
	if got := Settle(nap35, d); !got.Equal(dec("120000")) {
		t.Fatalf("nap3/5 got %s", got)
	}
	nap5 := &coupon.Coupon{BetType: bet.NAP, Formula: bet.NAP5, Balls: 5, Numbers: []int{1, 2, 3, 4, 70}, Stake: "10"}
	if got := Settle(nap5, d); !got.IsZero() {
		t.Fatalf("nap5 got %s", got)
	}
}

func TestSettleIncomplete(t *testing.T) {
	cp := &coupon.Coupon{BetType: bet.TwoSure, Formula: bet.Directe, Numbers: []int{5, 17}, Stake: "1"}
	if got := Settle(cp, Draw{Win: Result{5, 17, 1, 2, 3}}); !got.IsZero() {
		t.Fatalf("unpriced coupon must settle to zero, got %s", got)
	}
}

func TestComboProbability(t *testing.T) {
	cases := []struct {
		bt   bet.BetType
		f    bet.Formula
		want float64
	}{
		{bet.FirstOrOneBK, bet.Position1, 1.0 / 90},
		{bet.FirstOrOneBK, bet.Directe, 5.0 / 90},
		{bet.TwoSure, bet.Directe, 20.0 / 8010},
		{bet.TwoSure, bet.Turbo2, 1.0 / 4005},
		{bet.NAP, bet.NAP3, 60.0 / 704880},
		{bet.AnagramSimple, bet.AnagramDoubleChance, 20.0 / 8010},
	}
	for _, c := range cases {
		if got := ComboProbability(c.bt, c.f); math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("%s/%s: got %g want %g", c.bt, c.f, got, c.want)
		}
	}
}

func TestHitRateMatchesOdds(t *testing.T) {
	r := core.NewPCG64WithSeed(2024)
	cp := &coupon.Coupon{BetType: bet.FirstOrOneBK, Formula: bet.Directe, Numbers: []int{45}, Stake: "10"}
	const n = 50000
	hits := 0
	for i := 0; i < n; i++ {
		hits += Hits(cp, New(r).Win)
	}
	rate := float64(hits) / n
	if math.Abs(rate-5.0/90) > 0.006 {
		t.Fatalf("hit rate %f far from %f", rate, 5.0/90)
	}
}

func TestExpectedPayout(t *testing.T) {
	cp := &coupon.Coupon{BetType: bet.FirstOrOneBK, Formula: bet.Directe, Numbers: []int{7}, Stake: "100"}
	if got := ExpectedPayout(cp); math.Abs(got-1400*5.0/90) > 1e-9 {
		t.Fatalf("got %f", got)
	}
	dn := &coupon.Coupon{BetType: bet.DoubleNumber, Formula: bet.Turbo2, Prises: "1"}
	if Combos(dn) != 28 {
		t.Fatalf("double number has 28 pairs")
	}
	if got := ExpectedPayout(dn); math.Abs(got-30000*28.0/4005) > 1e-9 {
		t.Fatalf("got %f", got)
	}
}
