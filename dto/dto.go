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

package dto

import (
	"github.com/zintix-labs/dioloto/bet"
	"github.com/zintix-labs/dioloto/coupon"
	"github.com/zintix-labs/dioloto/errs"
	"github.com/zintix-labs/dioloto/setting"
	"github.com/zintix-labs/dioloto/stats"
)

// GameList GET /v1/games
type GameList struct {
	Games []setting.Summary `json:"games"`
}

// FormulaList GET /v1/formulas
type FormulaList struct {
	Game    string      `json:"game"`
	BetType bet.BetType `json:"bet_type"`
	Balls   int         `json:"balls,omitempty"`
	bet.Options
}

// QuoteResult GET|POST /v1/quote
type QuoteResult struct {
	Game    string                `json:"game"`
	Numbers string                `json:"numbers"`
	Gains   coupon.Gains          `json:"parsed"`
	Quote   coupon.Quote          `json:"quote"`
	Ticket  *coupon.TicketPayload `json:"ticket,omitempty"` // 報價有效時才附上
}

// AutoPickResult GET /v1/autopick
type AutoPickResult struct {
	BetType bet.BetType `json:"bet_type"`
	Numbers []int       `json:"numbers"`
	Joined  string      `json:"joined"`
	Seed    int64       `json:"seed"`
}

// SimResult POST /v1/sim
type SimResult struct {
	Seed      int64                   `json:"seed"`
	Label     string                  `json:"coupon"`
	Stats     *stats.StatReport       `json:"stats"`
	Estimator *stats.EstimatorPlayers `json:"est,omitempty"`
	UsedTime  int64                   `json:"used_ms"`
}

// NewQuoteResult 組出報價回應；drawTime 取自場次設定。
func NewQuoteResult(c *coupon.Coupon, q coupon.Quote, drawTime string) (QuoteResult, error) {
	if c == nil {
		return QuoteResult{}, errs.NewWarn("coupon is nil")
	}
	res := QuoteResult{
		Game:    c.Game,
		Numbers: coupon.JoinNumbers(c.Numbers),
		Gains:   coupon.ParseGains(q.Gains, q.DoubleChance),
		Quote:   q,
	}
	if tp, ok := c.Payload(q, drawTime); ok {
		res.Ticket = &tp
	}
	return res, nil
}
