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
)

var (
	winShare     = decimal.RequireFromString("0.6")
	machineShare = decimal.RequireFromString("0.4")
	minStake     = decimal.NewFromInt(MinStake)
)

// Gain 計算後的可能獎金。
//
// 一般公式只有 Base；雙重機會公式另外把 Base 拆成 Win（60%）與 Machine（40%），
// 兩者各自四捨五入到小數 2 位。
type Gain struct {
	Base         decimal.Decimal
	Win          decimal.Decimal
	Machine      decimal.Decimal
	DoubleChance bool
}

// Split 以 60/40 拆分雙重機會獎金（half away from zero，小數 2 位）。
func Split(base decimal.Decimal) (win, machine decimal.Decimal) {
	return base.Mul(winShare).Round(2), base.Mul(machineShare).Round(2)
}

func newGain(base decimal.Decimal, doubleChance bool) Gain {
	g := Gain{Base: base.Round(2), DoubleChance: doubleChance}
	if doubleChance {
		g.Win, g.Machine = Split(base)
	}
	return g
}

// String 顯示格式："1400.00" 或 "900.00 (Win) / 600.00 (Machine)"
func (g Gain) String() string {
	if g.DoubleChance {
		return g.Win.StringFixed(2) + " (Win) / " + g.Machine.StringFixed(2) + " (Machine)"
	}
	return g.Base.StringFixed(2)
}

// Request 一次定價/檢核的輸入。Stake 與 Prises 保留字串形式，對應表單上的即時輸入。
type Request struct {
	BetType    BetType `json:"bet_type"`
	Formula    Formula `json:"formula"`
	Stake      string  `json:"stake"`
	Prises     string  `json:"prises"`
	Numbers    []int   `json:"numbers"`
	MinNumbers int     `json:"min_numbers"`
	Balls      int     `json:"balls"`
}

// Compute 計算可能獎金。
//
// 回傳錯誤分兩種：
//   - ErrIncomplete（errs.Log）：投注單尚未填完（注金不足、選號不足、注數為 0），表單應持續等待輸入
//   - ErrUnsupported（errs.Fatal）：公式與投注型態/球數不相容，屬於呼叫端的合約錯誤
func Compute(req Request) (Gain, error) {
	rule, err := RuleFor(req.BetType, req.Formula, req.Balls)
	if err != nil {
		return Gain{}, err
	}

	amount, ok := parseAmount(req.Stake)
	if (!ok || !amount.IsPositive()) && !req.BetType.IsPriseBased() {
		return Gain{}, ErrIncomplete.With("stake required")
	}
	if req.BetType.ManualNumbers() && len(req.Numbers) < req.MinNumbers {
		return Gain{}, ErrIncomplete.Withf("numbers %d < %d", len(req.Numbers), req.MinNumbers)
	}

	mult := decimal.NewFromInt(rule.Multiplier)
	var base decimal.Decimal
	if rule.PerPrise {
		base = parsePrises(req.Prises).Mul(mult)
	} else {
		if !ok || amount.LessThan(minStake) {
			return Gain{}, ErrIncomplete.Withf("stake below %d", MinStake)
		}
		base = amount.Mul(mult)
	}
	// 注數為 0 的雙重機會也回傳哨兵，不顯示 0.00 (Win) / 0.00 (Machine)
	if !base.IsPositive() {
		return Gain{}, ErrIncomplete.With("prises required")
	}
	return newGain(base, req.Formula.IsDoubleChance()), nil
}

// CalculateGains 表單用的包裝：無法計算時回傳空字串（不是 0），呼叫端應視為「尚無答案」。
func CalculateGains(bt BetType, f Formula, stake string, numbers []int, minNumbersRequired int, ballCount int, prises string) string {
	g, err := Compute(Request{
		BetType:    bt,
		Formula:    f,
		Stake:      stake,
		Prises:     prises,
		Numbers:    numbers,
		MinNumbers: minNumbersRequired,
		Balls:      ballCount,
	})
	if err != nil {
		return ""
	}
	return g.String()
}
