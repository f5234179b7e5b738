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

package coupon

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Gains 由顯示字串還原的獎金
type Gains struct {
	Value        decimal.Decimal `json:"value"`
	Win          decimal.Decimal `json:"win"`
	Machine      decimal.Decimal `json:"machine"`
	DoubleChance bool            `json:"double_chance"`
}

var (
	reSplit  = regexp.MustCompile(`([\d.]+)\s*\(Win\)\s*/\s*([\d.]+)\s*\(Machine\)`)
	reLoose  = regexp.MustCompile(`([\d.]+)\s*/\s*([\d.]+)`)
	reNumber = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)
)

// ParseGains 將 "1400.00" 或 "600.00 (Win) / 400.00 (Machine)" 還原成數值。
//
// 雙重機會時先比對完整格式，再退回 "a / b"；都不符合時 Win / Machine 為 0。
// 單一金額只取字串開頭的數字，無法解析時為 0。
func ParseGains(s string, doubleChance bool) Gains {
	if !doubleChance {
		return Gains{Value: leadingNumber(s)}
	}
	g := Gains{DoubleChance: true}
	m := reSplit.FindStringSubmatch(s)
	if m == nil {
		m = reLoose.FindStringSubmatch(s)
	}
	if m != nil {
		g.Win = leadingNumber(m[1])
		g.Machine = leadingNumber(m[2])
	}
	g.Value = g.Win.Add(g.Machine)
	return g
}

func leadingNumber(s string) decimal.Decimal {
	m := reNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(trimDot(m))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// "12." 對 decimal 不是合法輸入
func trimDot(s string) string {
	if n := len(s); n > 0 && s[n-1] == '.' {
		return s[:n-1]
	}
	return s
}
