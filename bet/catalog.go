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

import "slices"

// Options 某投注型態可用的公式（固定顯示順序）與選號數量範圍
type Options struct {
	Formulas   []Formula `json:"formulas"`
	MinNumbers int       `json:"min_numbers"`
	MaxNumbers int       `json:"max_numbers"`
}

// formulaRow 描述一個投注型態的公式表。
// numbers < 0 代表選號數量等於球數。
type formulaRow struct {
	base    []Formula
	dc      []Formula
	numbers int
}

const byBalls = -1

var formulaTable = map[BetType]formulaRow{
	FirstOrOneBK: {
		base:    []Formula{Directe, Position1, Position2, Position3, Position4, Position5},
		dc:      []Formula{DirecteDoubleChance},
		numbers: 1,
	},
	NAP: {
		base:    []Formula{NAP3, NAP4, NAP5},
		dc:      []Formula{NAP3DoubleChance, NAP4DoubleChance, NAP5DoubleChance},
		numbers: byBalls,
	},
	TwoSure: {
		base:    []Formula{Directe, Turbo2, Turbo3, Turbo4},
		dc:      []Formula{DirecteDoubleChance, Turbo2DoubleChance, Turbo3DoubleChance, Turbo4DoubleChance},
		numbers: 2,
	},
	Permutations: {
		base:    []Formula{Directe, Turbo2, Turbo3, Turbo4},
		dc:      []Formula{DirecteDoubleChance, Turbo2DoubleChance, Turbo3DoubleChance, Turbo4DoubleChance},
		numbers: byBalls,
	},
	DoubleNumber: {
		base:    []Formula{Directe, Turbo2, Turbo3, Turbo4},
		dc:      []Formula{DirecteDoubleChance, Turbo2DoubleChance, Turbo3DoubleChance, Turbo4DoubleChance},
		numbers: 8,
	},
	AnagramSimple: {
		base:    []Formula{Directe},
		dc:      []Formula{AnagramDoubleChance},
		numbers: 0,
	},
}

// Formulas 回傳投注型態可用的公式與選號數量範圍。
//
// hasDoubleChance 由遊戲設定注入（哪些場次支援雙重機會不屬於引擎）。
// 未知的投注型態回傳空列表與 min=max=1。
func Formulas(bt BetType, hasDoubleChance bool, ballCount int) Options {
	row, ok := formulaTable[bt]
	if !ok {
		return Options{Formulas: []Formula{}, MinNumbers: 1, MaxNumbers: 1}
	}
	fs := make([]Formula, 0, len(row.base)+len(row.dc))
	fs = append(fs, row.base...)
	if hasDoubleChance {
		fs = append(fs, row.dc...)
	}
	n := row.numbers
	if n == byBalls {
		n = ballCount
	}
	return Options{Formulas: fs, MinNumbers: n, MaxNumbers: n}
}

// Allowed 公式是否屬於該投注型態（含雙重機會變體，不看場次是否支援）。
func Allowed(bt BetType, f Formula) bool {
	row, ok := formulaTable[bt]
	if !ok {
		return false
	}
	return slices.Contains(row.base, f) || slices.Contains(row.dc, f)
}
