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

package bet

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/dioloto/errs"
)

// MinStake 直接注金玩法的最低注金（XOF）
const MinStake = 10

var (
	ErrIncomplete  = errs.NewLog("coupon incomplete")
	ErrUnsupported = errs.NewFatal("unsupported bet combination")
)

// Rule 一個 (BetType, Formula, 球數) 組合的計價規則。
//
//	PerPrise == false：獎金 = 注金 × Multiplier，注金需 >= MinStake
//	PerPrise == true ：獎金 = 注數 × Multiplier，注金由注數推得
type Rule struct {
	PerPrise   bool  `json:"per_prise"`
	Multiplier int64 `json:"multiplier"`
}

var firstMult = map[Formula]int64{
	Directe:   14,
	Position1: 60,
	Position2: 20,
	Position3: 18,
	Position4: 17,
	Position5: 16,
}

var twoSureMult = map[Formula]int64{
	Directe: 300,
	Turbo2:  3000,
	Turbo3:  800,
	Turbo4:  500,
}

// Permutations 與 DoubleNumber 共用
var pairPriseMult = map[Formula]int64{
	Directe: 3000,
	Turbo2:  30000,
	Turbo3:  10000,
	Turbo4:  5000,
}

const anagramPriseMult = 3000

// RuleFor 查表取得計價規則；組合不存在時回傳 ErrUnsupported。
func RuleFor(bt BetType, f Formula, ballCount int) (Rule, error) {
	if !Allowed(bt, f) {
		return Rule{}, ErrUnsupported.Withf("bet_type=%s formula=%s", bt, f)
	}
	base := f.Base()
	var (
		m  int64
		ok bool
	)
	switch bt {
	case FirstOrOneBK:
		m, ok = firstMult[base]
		return Rule{Multiplier: m}, okOrUnsupported(ok, bt, f, ballCount)
	case TwoSure:
		m, ok = twoSureMult[base]
		return Rule{Multiplier: m}, okOrUnsupported(ok, bt, f, ballCount)
	case Permutations, DoubleNumber:
		m, ok = pairPriseMult[base]
		return Rule{PerPrise: true, Multiplier: m}, okOrUnsupported(ok, bt, f, ballCount)
	case AnagramSimple:
		return Rule{PerPrise: true, Multiplier: anagramPriseMult}, nil
	case NAP:
		return napRule(base, ballCount)
	}
	return Rule{}, ErrUnsupported.Withf("bet_type=%s", bt)
}

// NAP 依 (公式, 球數) 路由：球數等於 k 走注金，球數大於 k 走注數。
func napRule(base Formula, balls int) (Rule, error) {
	switch {
	case base == NAP3 && balls == 3:
		return Rule{Multiplier: 3000}, nil
	case base == NAP3 && (balls == 4 || balls == 5):
		return Rule{PerPrise: true, Multiplier: 30000}, nil
	case base == NAP4 && balls == 4:
		return Rule{Multiplier: 8000}, nil
	case base == NAP4 && balls == 5:
		return Rule{PerPrise: true, Multiplier: 80000}, nil
	case base == NAP5 && balls == 5:
		return Rule{Multiplier: 50000}, nil
	}
	return Rule{}, ErrUnsupported.Withf("bet_type=NAP formula=%s balls=%d", base, balls)
}

func okOrUnsupported(ok bool, bt BetType, f Formula, balls int) error {
	if ok {
		return nil
	}
	return ErrUnsupported.Withf("bet_type=%s formula=%s balls=%d", bt, f, balls)
}

// NeedsMinStake NAP 的注金路徑：NAPk（含雙重機會）且球數 == k
func NeedsMinStake(f Formula, ballCount int) bool {
	r, err := napRule(f.Base(), ballCount)
	return err == nil && !r.PerPrise && isNAPFormula(f)
}

// NeedsPrises NAP 的注數路徑：NAP3 配 4/5 球、NAP4 配 5 球（含雙重機會）
func NeedsPrises(f Formula, ballCount int) bool {
	r, err := napRule(f.Base(), ballCount)
	return err == nil && r.PerPrise && isNAPFormula(f)
}

func isNAPFormula(f Formula) bool {
	switch f.Base() {
	case NAP3, NAP4, NAP5:
		return true
	}
	return false
}

// MaxAmount 注金/注數輸入的絕對上限（與場次設定無關）。
const MaxAmount = 1_000_000_000_000

const maxAmountLen = 32

var maxAmount = decimal.NewFromInt(MaxAmount)

// parseAmount 解析注金/注數輸入；空字串、非數字、指數寫法或超過 MaxAmount 回傳 ok=false。
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxAmountLen || strings.ContainsAny(s, "eE") {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.Abs().GreaterThan(maxAmount) {
		return decimal.Zero, false
	}
	return d, true
}

// parsePrises 注數需為正整數，其餘一律視為 0。
func parsePrises(s string) decimal.Decimal {
	d, ok := parseAmount(s)
	if !ok || !d.IsPositive() || !d.IsInteger() {
		return decimal.Zero
	}
	return d
}
