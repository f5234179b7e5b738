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
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/combin"
)

// PermutationStakePerPrise 多號排列每注金額（球數 -> XOF），即 10 × C(n,2)。
var PermutationStakePerPrise = map[int]int64{
	3: 30, 4: 60, 5: 100, 6: 150, 7: 210, 8: 280, 9: 360, 10: 450, 11: 550, 12: 660,
	13: 780, 14: 910, 15: 1050, 16: 1200, 17: 1360, 18: 1530, 19: 1710, 20: 1900,
}

const (
	MinPermutationBalls = 3
	MaxPermutationBalls = 20
)

// ShowPrisesField 表單是否需要「注數」欄位。
func ShowPrisesField(bt BetType, f Formula, ballCount int) bool {
	switch bt {
	case AnagramSimple, DoubleNumber, Permutations:
		return true
	case NAP:
		return !NeedsMinStake(f, ballCount)
	default:
		return false
	}
}

// Combos 一張投注單實際包含的組合數（每個組合以最低注金 10 計價）。
//
//	NAPk 配 b 球：C(b,k)
//	Permutations：C(b,2)
//	DoubleNumber：C(8,2) = 28
//	AnagramSimple：35 組
//	其餘直接注金玩法：1
func Combos(bt BetType, f Formula, ballCount int) (int, error) {
	switch bt {
	case FirstOrOneBK, TwoSure:
		return 1, nil
	case NAP:
		if _, err := napRule(f.Base(), ballCount); err != nil {
			return 0, err
		}
		return combin.Binomial(ballCount, napSize(f)), nil
	case Permutations:
		if ballCount < MinPermutationBalls || ballCount > MaxPermutationBalls {
			return 0, ErrUnsupported.Withf("permutation balls=%d", ballCount)
		}
		return combin.Binomial(ballCount, 2), nil
	case DoubleNumber:
		return combin.Binomial(len(DoubleNumbers), 2), nil
	case AnagramSimple:
		return len(AnagramNumbers) / 2, nil
	}
	return 0, ErrUnsupported.Withf("bet_type=%s", bt)
}

// UnitCost 注數玩法每一注的金額。
func UnitCost(bt BetType, f Formula, ballCount int) (decimal.Decimal, error) {
	if bt == Permutations {
		c, ok := PermutationStakePerPrise[ballCount]
		if !ok {
			return decimal.Zero, ErrUnsupported.Withf("permutation balls=%d", ballCount)
		}
		return decimal.NewFromInt(c), nil
	}
	n, err := Combos(bt, f, ballCount)
	if err != nil {
		return decimal.Zero, err
	}
	return minStake.Mul(decimal.NewFromInt(int64(n))), nil
}

// ChargedStake 實際扣款金額：注金玩法即注金；注數玩法為 注數 × 每注金額。
func ChargedStake(req Request) (decimal.Decimal, error) {
	rule, err := RuleFor(req.BetType, req.Formula, req.Balls)
	if err != nil {
		return decimal.Zero, err
	}
	if !rule.PerPrise {
		amount, ok := parseAmount(req.Stake)
		if !ok || amount.LessThan(minStake) {
			return decimal.Zero, ErrIncomplete.Withf("stake below %d", MinStake)
		}
		return amount, nil
	}
	prises := parsePrises(req.Prises)
	if !prises.IsPositive() {
		return decimal.Zero, ErrIncomplete.With("prises required")
	}
	unit, err := UnitCost(req.BetType, req.Formula, req.Balls)
	if err != nil {
		return decimal.Zero, err
	}
	return prises.Mul(unit), nil
}

func napSize(f Formula) int {
	switch f.Base() {
	case NAP3:
		return 3
	case NAP4:
		return 4
	case NAP5:
		return 5
	}
	return 0
}

// NAPSize NAPk 公式的 k；非 NAP 公式回傳 0。
func NAPSize(f Formula) int {
	return napSize(f)
}
