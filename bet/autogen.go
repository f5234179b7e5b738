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
	"slices"

	"github.com/zintix-labs/dioloto/sdk/core"
)

const (
	MinNumber = 1
	MaxNumber = 90
)

// DoubleNumbers DoubleNumber 玩法固定的 8 個重號
var DoubleNumbers = []int{11, 22, 33, 44, 55, 66, 77, 88}

// AnagramNumbers AnagramSimple 玩法固定的 35 組顛倒號，兩兩一組依序排列
var AnagramNumbers = []int{
	1, 10, 2, 20, 3, 30, 4, 40, 5, 50, 6, 60, 7, 70, 8, 80, 9, 90,
	12, 21, 13, 31, 14, 41, 15, 51, 16, 61, 17, 71, 18, 81,
	23, 32, 24, 42, 25, 52, 26, 62, 27, 72, 28, 82,
	34, 43, 35, 53, 36, 63, 37, 73, 38, 83,
	45, 54, 46, 64, 47, 74, 48, 84,
	56, 65, 57, 75, 58, 85,
	67, 76, 68, 86,
	78, 87,
}

// AnagramPairs 以 [2]int 形式回傳 AnagramNumbers
func AnagramPairs() [][2]int {
	out := make([][2]int, 0, len(AnagramNumbers)/2)
	for i := 0; i+1 < len(AnagramNumbers); i += 2 {
		out = append(out, [2]int{AnagramNumbers[i], AnagramNumbers[i+1]})
	}
	return out
}

// AutoNumbers 自動選號。
//
//	DoubleNumber / AnagramSimple：固定號碼（非亂數）
//	NAP / Permutations（ballCount > 0）：ballCount 個 [1,90] 不重複亂數
//	其他：minNumbersRequired 個 [1,90] 不重複亂數
//
// r 為 nil 時使用一個以 crypto/rand 播種的 PCG64；每次呼叫彼此獨立，不要求可重現。
func AutoNumbers(r core.RAND, bt BetType, minNumbersRequired int, ballCount int) []int {
	switch bt {
	case DoubleNumber:
		return slices.Clone(DoubleNumbers)
	case AnagramSimple:
		return slices.Clone(AnagramNumbers)
	}
	if r == nil {
		r = core.NewPCG64()
	}
	n := minNumbersRequired
	if (bt == NAP || bt == Permutations) && ballCount > 0 {
		n = ballCount
	}
	out := core.Distinct(r, n, MinNumber, MaxNumber)
	if out == nil {
		return []int{}
	}
	return out
}
