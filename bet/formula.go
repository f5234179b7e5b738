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

	"github.com/zintix-labs/dioloto/errs"
)

// Formula 投注公式（封閉列舉）。公式只在其所屬的 BetType 下合法，見 Formulas。
type Formula uint8

const (
	NoFormula Formula = iota
	Directe
	Position1
	Position2
	Position3
	Position4
	Position5
	NAP3
	NAP4
	NAP5
	Turbo2
	Turbo3
	Turbo4
	DirecteDoubleChance
	NAP3DoubleChance
	NAP4DoubleChance
	NAP5DoubleChance
	Turbo2DoubleChance
	Turbo3DoubleChance
	Turbo4DoubleChance
	AnagramDoubleChance
)

var formulaNames = [...]string{
	NoFormula:           "",
	Directe:             "Directe",
	Position1:           "Position1",
	Position2:           "Position2",
	Position3:           "Position3",
	Position4:           "Position4",
	Position5:           "Position5",
	NAP3:                "NAP3",
	NAP4:                "NAP4",
	NAP5:                "NAP5",
	Turbo2:              "Turbo2",
	Turbo3:              "Turbo3",
	Turbo4:              "Turbo4",
	DirecteDoubleChance: "DirecteDoubleChance",
	NAP3DoubleChance:    "NAP3DoubleChance",
	NAP4DoubleChance:    "NAP4DoubleChance",
	NAP5DoubleChance:    "NAP5DoubleChance",
	Turbo2DoubleChance:  "Turbo2DoubleChance",
	Turbo3DoubleChance:  "Turbo3DoubleChance",
	Turbo4DoubleChance:  "Turbo4DoubleChance",
	AnagramDoubleChance: "AnnagrammesimpleDoubleChance",
}

// 雙重機會公式 -> 基礎公式
var dcBase = map[Formula]Formula{
	DirecteDoubleChance: Directe,
	NAP3DoubleChance:    NAP3,
	NAP4DoubleChance:    NAP4,
	NAP5DoubleChance:    NAP5,
	Turbo2DoubleChance:  Turbo2,
	Turbo3DoubleChance:  Turbo3,
	Turbo4DoubleChance:  Turbo4,
	AnagramDoubleChance: Directe,
}

var formulaByName map[string]Formula

func init() {
	formulaByName = make(map[string]Formula, len(formulaNames))
	for i, n := range formulaNames {
		if n != "" {
			formulaByName[strings.ToLower(n)] = Formula(i)
		}
	}
}

var ErrUnknownFormula = errs.NewWarn("unknown formula")

func (f Formula) String() string {
	if int(f) < len(formulaNames) {
		return formulaNames[f]
	}
	return ""
}

func (f Formula) Valid() bool {
	return f > NoFormula && int(f) < len(formulaNames)
}

// IsDoubleChance 公式名稱以 DoubleChance 結尾
func (f Formula) IsDoubleChance() bool {
	_, ok := dcBase[f]
	return ok
}

// Base 去掉 DoubleChance 後的基礎公式；非雙重機會公式回傳自己。
func (f Formula) Base() Formula {
	if b, ok := dcBase[f]; ok {
		return b
	}
	return f
}

// ParseFormula 解析公式名稱，不分大小寫。
func ParseFormula(s string) (Formula, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if f, ok := formulaByName[key]; ok {
		return f, nil
	}
	return NoFormula, ErrUnknownFormula.With(s)
}

// MarshalText 未選公式輸出空字串。
func (f Formula) MarshalText() ([]byte, error) {
	if f == NoFormula {
		return []byte{}, nil
	}
	if !f.Valid() {
		return nil, ErrUnknownFormula.Withf("%d", uint8(f))
	}
	return []byte(f.String()), nil
}

func (f *Formula) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*f = NoFormula
		return nil
	}
	v, err := ParseFormula(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
