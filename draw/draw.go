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

// Package draw 產生 5/90 開獎結果並依開獎結算投注單。
//
// 一期開獎包含兩組有序結果：Win（正式開獎）與 Machine（機器號），
// 雙重機會公式的獎金由兩組結果各自判定後按 60/40 加總。
package draw

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/dioloto/bet"
	"github.com/zintix-labs/dioloto/coupon"
	"github.com/zintix-labs/dioloto/sdk/core"
	"gonum.org/v1/gonum/stat/combin"
)

// Size 每組開出的號碼數
const Size = 5

// Result 一組有序開獎號碼
type Result [Size]int

// Draw 一期開獎
type Draw struct {
	Win     Result `json:"win"`
	Machine Result `json:"machine"`
}

// New 以 r 不放回抽出 Win 與 Machine 兩組結果
func New(r core.RAND) Draw {
	var d Draw
	copy(d.Win[:], core.Distinct(r, Size, bet.MinNumber, bet.MaxNumber))
	copy(d.Machine[:], core.Distinct(r, Size, bet.MinNumber, bet.MaxNumber))
	return d
}

func (r Result) String() string {
	return fmt.Sprintf("%d-%d-%d-%d-%d", r[0], r[1], r[2], r[3], r[4])
}

// window 判定範圍：Directe 看全部 5 個，TurboK 只看前 K 個
func window(f bet.Formula) int {
	switch f.Base() {
	case bet.Turbo2:
		return 2
	case bet.Turbo3:
		return 3
	case bet.Turbo4:
		return 4
	}
	return Size
}

// position PositionK 的 K，其他公式回傳 0
func position(f bet.Formula) int {
	switch f.Base() {
	case bet.Position1:
		return 1
	case bet.Position2:
		return 2
	case bet.Position3:
		return 3
	case bet.Position4:
		return 4
	case bet.Position5:
		return 5
	}
	return 0
}

// Played 投注單實際下注的號碼：固定號碼的型態回傳固定列表
func Played(c *coupon.Coupon) []int {
	switch c.BetType {
	case bet.DoubleNumber:
		return bet.DoubleNumbers
	case bet.AnagramSimple:
		return bet.AnagramNumbers
	}
	return c.Numbers
}

func matched(nums []int, res []int) int {
	n := 0
	for _, v := range nums {
		for _, w := range res {
			if v == w {
				n++
				break
			}
		}
	}
	return n
}

// Hits 計算投注單在一組結果中的中獎組合數
func Hits(c *coupon.Coupon, res Result) int {
	nums := Played(c)
	f := c.Formula
	switch c.BetType {
	case bet.FirstOrOneBK:
		if k := position(f); k > 0 {
			return matched(nums, res[k-1:k])
		}
		return matched(nums, res[:])
	case bet.TwoSure, bet.Permutations, bet.DoubleNumber:
		m := matched(nums, res[:window(f)])
		if m < 2 {
			return 0
		}
		return combin.Binomial(m, 2)
	case bet.AnagramSimple:
		n := 0
		for _, p := range bet.AnagramPairs() {
			if matched(p[:], res[:]) == 2 {
				n++
			}
		}
		return n
	case bet.NAP:
		k := bet.NAPSize(f)
		m := matched(nums, res[:])
		if k == 0 || m < k {
			return 0
		}
		return combin.Binomial(m, k)
	}
	return 0
}

// Settle 結算投注單在此期開獎的獎金。
//
// 每個中獎組合支付一次報價的基礎獎金；雙重機會公式的 Win 部分以 Win 結果判定，
// Machine 部分以 Machine 結果判定。無法報價的投注單結算為 0。
func Settle(c *coupon.Coupon, d Draw) decimal.Decimal {
	g, err := bet.Compute(c.Request(len(c.Numbers)))
	if err != nil {
		return decimal.Zero
	}
	return Pay(c, g, d).Total()
}

// Payout 單期結算明細
type Payout struct {
	Win     decimal.Decimal // 由 Win 結果判定的部分
	Machine decimal.Decimal // 由 Machine 結果判定的部分（僅雙重機會）
	Hits    int             // 中獎組合數（兩組結果合計）
}

func (p Payout) Total() decimal.Decimal {
	return p.Win.Add(p.Machine)
}

// Pay 以已算好的報價 g 結算，模擬時每期不必重算報價。
func Pay(c *coupon.Coupon, g bet.Gain, d Draw) Payout {
	hw := Hits(c, d.Win)
	if !g.DoubleChance {
		return Payout{Win: g.Base.Mul(decimal.NewFromInt(int64(hw))), Machine: decimal.Zero, Hits: hw}
	}
	hm := Hits(c, d.Machine)
	return Payout{
		Win:     g.Win.Mul(decimal.NewFromInt(int64(hw))),
		Machine: g.Machine.Mul(decimal.NewFromInt(int64(hm))),
		Hits:    hw + hm,
	}
}

// ComboProbability 單一組合中獎的理論機率
//
// j 個指定號碼全部落在有序 5/90 結果前 w 個位置的機率為 C(90-j, w-j) / C(90, w)。
func ComboProbability(bt bet.BetType, f bet.Formula) float64 {
	span := bet.MaxNumber - bet.MinNumber + 1
	if bt == bet.FirstOrOneBK && position(f) > 0 {
		return 1 / float64(span)
	}
	j := comboSize(bt, f)
	w := window(f)
	if bt == bet.FirstOrOneBK || bt == bet.NAP || bt == bet.AnagramSimple {
		w = Size
	}
	if j == 0 || j > w {
		return 0
	}
	return float64(combin.Binomial(span-j, w-j)) / float64(combin.Binomial(span, w))
}

func comboSize(bt bet.BetType, f bet.Formula) int {
	switch bt {
	case bet.FirstOrOneBK:
		return 1
	case bet.TwoSure, bet.Permutations, bet.DoubleNumber, bet.AnagramSimple:
		return 2
	case bet.NAP:
		return bet.NAPSize(f)
	}
	return 0
}

// Combos 投注單包含的組合數；FirstOrOneBK 每個號碼各算一組
func Combos(c *coupon.Coupon) int {
	nums := Played(c)
	switch c.BetType {
	case bet.FirstOrOneBK:
		return len(nums)
	case bet.AnagramSimple:
		return len(bet.AnagramPairs())
	case bet.NAP:
		k := bet.NAPSize(c.Formula)
		if k == 0 || len(nums) < k {
			return 0
		}
		return combin.Binomial(len(nums), k)
	default:
		if len(nums) < 2 {
			return 0
		}
		return combin.Binomial(len(nums), 2)
	}
}

// ExpectedPayout 理論期望獎金 = 基礎獎金 × 組合數 × 單組中獎機率。
// 雙重機會兩組結果同分佈，60/40 加總後期望值不變。
func ExpectedPayout(c *coupon.Coupon) float64 {
	g, err := bet.Compute(c.Request(len(c.Numbers)))
	if err != nil {
		return 0
	}
	base, _ := g.Base.Float64()
	return base * float64(Combos(c)) * ComboProbability(c.BetType, c.Formula)
}
