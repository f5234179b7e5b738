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

// Package coupon 組合投注單並向定價引擎報價。
package coupon

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/dioloto/bet"
)

// Coupon 一張投注單。引擎只讀取，不會修改。
type Coupon struct {
	Game    string      `json:"game,omitempty"`
	BetType bet.BetType `json:"bet_type"`
	Formula bet.Formula `json:"formula"`
	Balls   int         `json:"balls,omitempty"`
	Numbers []int       `json:"numbers,omitempty"`
	Stake   string      `json:"stake,omitempty"`
	Prises  string      `json:"prises,omitempty"`
}

// Quote 報價結果
type Quote struct {
	Gains        string          `json:"gains"`
	Display      string          `json:"display"`
	Base         decimal.Decimal `json:"base"`
	Win          decimal.Decimal `json:"win"`
	Machine      decimal.Decimal `json:"machine"`
	DoubleChance bool            `json:"double_chance"`
	Valid        bool            `json:"valid"`
	Charged      decimal.Decimal `json:"charged"`
	ShowPrises   bool            `json:"show_prises"`
	Options      bet.Options     `json:"options"`
	Reason       string          `json:"reason,omitempty"`
}

// Options 依場次是否支援雙重機會，回傳這張單可用的公式表。
func (c *Coupon) Options(hasDoubleChance bool) bet.Options {
	return bet.Formulas(c.BetType, hasDoubleChance, c.Balls)
}

// Request 轉成引擎的請求；minNumbers 取自公式表。
func (c *Coupon) Request(minNumbers int) bet.Request {
	return bet.Request{
		BetType:    c.BetType,
		Formula:    c.Formula,
		Stake:      c.Stake,
		Prises:     c.Prises,
		Numbers:    c.Numbers,
		MinNumbers: minNumbers,
		Balls:      c.Balls,
	}
}

// Price 計算報價。v 為 nil 時使用預設限制。
//
// 場次不支援雙重機會卻送來雙重機會公式，或注金超過場次上限時視為無效，不計算獎金。
func Price(c *Coupon, hasDoubleChance bool, v *bet.Validator) Quote {
	opts := c.Options(hasDoubleChance)
	req := c.Request(opts.MinNumbers)
	q := Quote{
		Options:    opts,
		ShowPrises: bet.ShowPrisesField(c.BetType, c.Formula, c.Balls),
	}
	if c.Formula.IsDoubleChance() && !hasDoubleChance {
		q.Reason = "double chance not offered for this game"
		return q
	}

	if v != nil && v.OverMaxStake(req) {
		q.Reason = "stake above game maximum"
		return q
	}

	g, err := bet.Compute(req)
	if err != nil {
		q.Reason = err.Error()
		return q
	}
	q.Gains = g.String()
	q.Display = Display(q.Gains)
	q.Base = g.Base
	q.Win, q.Machine = g.Win, g.Machine
	q.DoubleChance = g.DoubleChance

	if v == nil {
		q.Valid = bet.ValidateCoupon(req)
	} else {
		q.Valid = v.Validate(req)
	}
	if charged, err := bet.ChargedStake(req); err == nil {
		q.Charged = charged
	}
	return q
}

// Display 在獎金字串後加上幣別；空字串顯示為 0 XOF。
func Display(gains string) string {
	if strings.TrimSpace(gains) == "" {
		return "0 " + Currency
	}
	return gains + " " + Currency
}

// Currency 顯示用幣別（西非法郎）
const Currency = "XOF"

// TicketPayload 下注時送往票務後台的欄位。
type TicketPayload struct {
	Game     string          `json:"nomJeu"`
	DrawTime string          `json:"heureJeu"`
	BetType  string          `json:"typeJeu"`
	Numbers  []int           `json:"numerosJoues"`
	Formula  string          `json:"formule"`
	Stake    decimal.Decimal `json:"mise"`
	Gains    string          `json:"gains"`
}

// Payload 以報價結果組出票務欄位；報價無效時回傳 false。
func (c *Coupon) Payload(q Quote, drawTime string) (TicketPayload, bool) {
	if !q.Valid || q.Gains == "" {
		return TicketPayload{}, false
	}
	nums := c.Numbers
	switch c.BetType {
	case bet.DoubleNumber, bet.AnagramSimple:
		nums = bet.AutoNumbers(nil, c.BetType, q.Options.MinNumbers, c.Balls)
	}
	return TicketPayload{
		Game:     c.Game,
		DrawTime: drawTime,
		BetType:  c.BetType.String(),
		Numbers:  nums,
		Formula:  c.Formula.String(),
		Stake:    q.Charged,
		Gains:    q.Gains,
	}, true
}

// JoinNumbers 以 "-" 串接號碼，例如 "5-17"。
func JoinNumbers(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}
