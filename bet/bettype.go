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

// Package bet 是 Dio Loto 5/90 投注的定價引擎。
//
// 引擎全部是純函數：給定投注型態（BetType）、公式（Formula）、球數、注金或注數（prises）與選號，
//  1. 列出可用公式與選號數量限制（Formulas）
//  2. 判斷投注單是否可送出（ValidateCoupon / Validator）
//  3. 計算可能獎金，雙重機會（DoubleChance）公式以 60/40 拆成 Win / Machine（Compute / CalculateGains）
//  4. 為自動選號的玩法產生號碼（AutoNumbers）
//
// 沒有任何共享可變狀態，可在多個請求間併發呼叫；亂數來源由呼叫端注入。
package bet

import (
	"strings"

	"github.com/zintix-labs/dioloto/errs"
)

// BetType 投注型態（封閉列舉）
type BetType uint8

const (
	UnknownBetType BetType = iota
	FirstOrOneBK           // 單號（First / 1BK）
	NAP                    // NAP3/4/5：選中的號碼需全部開出
	TwoSure                // 二中二（Two sure）
	Permutations           // 多號排列，所有兩兩組合
	DoubleNumber           // 固定 8 個重號 11..88
	AnagramSimple          // 固定 35 組顛倒號
)

var betTypeNames = [...]string{
	UnknownBetType: "",
	FirstOrOneBK:   "FirstouonBK",
	NAP:            "NAP",
	TwoSure:        "Twosurs",
	Permutations:   "Permutations",
	DoubleNumber:   "DoubleNumber",
	AnagramSimple:  "Annagrammesimple",
}

var betTypeByName = map[string]BetType{
	"firstouonbk":      FirstOrOneBK,
	"firstorone1bk":    FirstOrOneBK,
	"nap":              NAP,
	"twosurs":          TwoSure,
	"twosûrs":          TwoSure,
	"twosure":          TwoSure,
	"permutations":     Permutations,
	"doublenumber":     DoubleNumber,
	"annagrammesimple": AnagramSimple,
	"anagramsimple":    AnagramSimple,
}

// ErrUnknownBetType 無法辨識的投注型態字串
var ErrUnknownBetType = errs.NewWarn("unknown bet type")

// BetTypes 回傳所有投注型態（穩定順序）
func BetTypes() []BetType {
	return []BetType{FirstOrOneBK, NAP, TwoSure, Permutations, DoubleNumber, AnagramSimple}
}

func (b BetType) String() string {
	if int(b) < len(betTypeNames) {
		return betTypeNames[b]
	}
	return ""
}

func (b BetType) Valid() bool {
	return b > UnknownBetType && int(b) < len(betTypeNames)
}

// IsPriseBased 以注數計價的型態：注金不由玩家直接輸入。
// NAP 是混合型，實際走注金或注數由 (Formula, 球數) 決定，見 NeedsMinStake / NeedsPrises。
func (b BetType) IsPriseBased() bool {
	switch b {
	case NAP, Permutations, DoubleNumber, AnagramSimple:
		return true
	default:
		return false
	}
}

// ManualNumbers 是否需要玩家手動選號（DoubleNumber / AnagramSimple 固定號碼，Permutations 由球數決定）
func (b BetType) ManualNumbers() bool {
	switch b {
	case DoubleNumber, AnagramSimple, Permutations:
		return false
	default:
		return b.Valid()
	}
}

// ParseBetType 解析投注型態，不分大小寫。
func ParseBetType(s string) (BetType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if bt, ok := betTypeByName[key]; ok {
		return bt, nil
	}
	return UnknownBetType, ErrUnknownBetType.With(s)
}

func (b BetType) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, ErrUnknownBetType.Withf("%d", uint8(b))
	}
	return []byte(b.String()), nil
}

func (b *BetType) UnmarshalText(text []byte) error {
	bt, err := ParseBetType(string(text))
	if err != nil {
		return err
	}
	*b = bt
	return nil
}
