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

import "github.com/shopspring/decimal"

// DefaultMaxNumbers 一般（非 NAP、非注數）投注型態的選號上限。
const DefaultMaxNumbers = 5

// Limits 檢核用的可調整限制，通常由遊戲設定提供。
//
// MaxNumbers 依投注型態覆寫選號上限；未設定的型態使用 DefaultMaxNumbers。
// MaxStake 為 0 表示不限制。
type Limits struct {
	MaxNumbers map[BetType]int
	MinStake   decimal.Decimal
	MaxStake   decimal.Decimal
}

// DefaultLimits 最低注金 10、選號上限 5、不限最高注金。
func DefaultLimits() Limits {
	return Limits{MinStake: minStake}
}

func (l Limits) maxNumbers(bt BetType) int {
	if n, ok := l.MaxNumbers[bt]; ok && n > 0 {
		return n
	}
	return DefaultMaxNumbers
}

func (l Limits) minStake() decimal.Decimal {
	if l.MinStake.IsPositive() {
		return l.MinStake
	}
	return minStake
}

// Validator 判斷投注單是否足以送出。無狀態，可併發使用。
type Validator struct {
	limits Limits
}

func NewValidator(l Limits) *Validator {
	return &Validator{limits: l}
}

var defaultValidator = NewValidator(DefaultLimits())

// ValidateCoupon 以預設限制檢核投注單。
func ValidateCoupon(req Request) bool {
	return defaultValidator.Validate(req)
}

// Validate 檢核規則：
//   - 非注數型態：注金需 >= 最低注金（且不超過 MaxStake）
//   - DoubleNumber / AnagramSimple / Permutations：注數 > 0
//   - NAP：依 (公式, 球數) 決定需要最低注金或注數，且選號數 == 球數
//   - 其他：選號數介於 [MinNumbers, 上限]
//
// 有帶公式時，公式必須屬於該投注型態；手選號碼需在 [0,90] 且不重複。
func (v *Validator) Validate(req Request) bool {
	bt := req.BetType
	if !bt.Valid() {
		return false
	}
	if req.Formula != NoFormula && !Allowed(bt, req.Formula) {
		return false
	}
	if bt.ManualNumbers() && !wellFormed(req.Numbers) {
		return false
	}

	amount, ok := parseAmount(req.Stake)
	prises := parsePrises(req.Prises)

	if !bt.IsPriseBased() && !v.stakeInRange(amount, ok) {
		return false
	}

	switch bt {
	case NAP:
		switch {
		case NeedsMinStake(req.Formula, req.Balls):
			if !v.stakeInRange(amount, ok) {
				return false
			}
		case NeedsPrises(req.Formula, req.Balls):
			if !prises.IsPositive() {
				return false
			}
		default:
			return false
		}
		return len(req.Numbers) == req.Balls
	case DoubleNumber, AnagramSimple, Permutations:
		return prises.IsPositive()
	}

	n := len(req.Numbers)
	return n >= req.MinNumbers && n <= v.limits.maxNumbers(bt)
}

// OverMaxStake 直接注金玩法的注金超過 MaxStake。
// 注數玩法、無法計價的組合或未設上限時回傳 false。
func (v *Validator) OverMaxStake(req Request) bool {
	if !v.limits.MaxStake.IsPositive() {
		return false
	}
	rule, err := RuleFor(req.BetType, req.Formula, req.Balls)
	if err != nil || rule.PerPrise {
		return false
	}
	amount, ok := parseAmount(req.Stake)
	return ok && amount.GreaterThan(v.limits.MaxStake)
}

func (v *Validator) stakeInRange(amount decimal.Decimal, ok bool) bool {
	if !ok || amount.LessThan(v.limits.minStake()) {
		return false
	}
	if v.limits.MaxStake.IsPositive() && amount.GreaterThan(v.limits.MaxStake) {
		return false
	}
	return true
}

func wellFormed(numbers []int) bool {
	seen := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		if n < 0 || n > 90 {
			return false
		}
		if _, dup := seen[n]; dup {
			return false
		}
		seen[n] = struct{}{}
	}
	return true
}
