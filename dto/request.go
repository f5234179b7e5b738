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
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/zintix-labs/dioloto/bet"
	"github.com/zintix-labs/dioloto/coupon"
	"github.com/zintix-labs/dioloto/errs"
)

// POST body 上限（1MiB）
const maxBody = 1 << 20

// CouponRequest 投注單的對外格式。
//
// bet_type / formula 使用對外名稱（FirstouonBK、Twosurs、Turbo2DoubleChance ...），大小寫不拘。
// stake / prises 以字串保留使用者輸入，交給引擎嚴格解析。
type CouponRequest struct {
	Game    string `json:"game"`
	BetType string `json:"bet_type"`
	Formula string `json:"formula"`
	Balls   int    `json:"balls,omitempty"`
	Numbers []int  `json:"numbers,omitempty"`
	Stake   string `json:"stake,omitempty"`
	Prises  string `json:"prises,omitempty"`
}

// SimRequest 模擬請求，只接受 POST。
//
// players > 0 時改跑玩家模擬：每位玩家帶 init_bets 注本金，最多玩 rounds 期。
type SimRequest struct {
	CouponRequest
	Rounds   int    `json:"rounds"`
	Workers  int    `json:"workers,omitempty"`
	Seed     *int64 `json:"seed,omitempty"`
	Players  int    `json:"players,omitempty"`
	InitBets int    `json:"init_bets,omitempty"`
}

// FormulasRequest GET /v1/formulas
type FormulasRequest struct {
	Game    string
	BetType bet.BetType
	Balls   int
}

// AutoPickRequest GET /v1/autopick
type AutoPickRequest struct {
	BetType bet.BetType
	Min     int
	Balls   int
	Seed    *int64
}

// DecodeCouponRequest 把 HTTP 請求解碼成 CouponRequest。
//
// 支援：
//   - GET：從 query string 讀取（game/bet_type/formula/balls/numbers/stake/prises）。
//     numbers 可用 "-"、"," 或空白分隔，例如 numbers=5-17。
//   - POST：JSON body，開啟 DisallowUnknownFields，body 上限 1MiB。
//
// 這裡只做解碼與型別轉換，合法性交給引擎判斷。
func DecodeCouponRequest(r *http.Request) (*CouponRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req := &CouponRequest{
			Game:    q.Get("game"),
			BetType: q.Get("bet_type"),
			Formula: q.Get("formula"),
			Stake:   q.Get("stake"),
			Prises:  q.Get("prises"),
		}
		balls, err := queryInt(q, "balls")
		if err != nil {
			return nil, err
		}
		req.Balls = balls
		if s := q.Get("numbers"); s != "" {
			nums, err := ParseNumbers(s)
			if err != nil {
				return nil, err
			}
			req.Numbers = nums
		}
		return req, nil

	case http.MethodPost:
		req := new(CouponRequest)
		if err := decodeJSON(r, req); err != nil {
			return nil, err
		}
		return req, nil

	default:
		return nil, errs.NewWarn("method not allowed")
	}
}

// DecodeSimRequest 解碼 POST /v1/sim 的 JSON body。
func DecodeSimRequest(r *http.Request) (*SimRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	if r.Method != http.MethodPost {
		return nil, errs.NewWarn("method not allowed")
	}
	req := new(SimRequest)
	if err := decodeJSON(r, req); err != nil {
		return nil, err
	}
	return req, nil
}

// DecodeFormulasRequest 解碼 GET /v1/formulas?game=&bet_type=&balls=
func DecodeFormulasRequest(r *http.Request) (*FormulasRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	q := r.URL.Query()
	game := q.Get("game")
	if game == "" {
		return nil, errs.NewWarn("game is required")
	}
	bt, err := queryBetType(q)
	if err != nil {
		return nil, err
	}
	balls, err := queryInt(q, "balls")
	if err != nil {
		return nil, err
	}
	return &FormulasRequest{Game: game, BetType: bt, Balls: balls}, nil
}

// DecodeAutoPickRequest 解碼 GET /v1/autopick?bet_type=&min=&balls=&seed=
func DecodeAutoPickRequest(r *http.Request) (*AutoPickRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	q := r.URL.Query()
	bt, err := queryBetType(q)
	if err != nil {
		return nil, err
	}
	req := &AutoPickRequest{BetType: bt}
	if req.Min, err = queryInt(q, "min"); err != nil {
		return nil, err
	}
	if req.Balls, err = queryInt(q, "balls"); err != nil {
		return nil, err
	}
	if s := q.Get("seed"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errs.NewWarn("seed must be int64")
		}
		req.Seed = &v
	}
	return req, nil
}

// Coupon 轉成引擎的投注單
func (cr *CouponRequest) Coupon() (*coupon.Coupon, error) {
	if cr.Game == "" {
		return nil, errs.NewWarn("game is required")
	}
	bt, err := bet.ParseBetType(cr.BetType)
	if err != nil {
		return nil, err
	}
	f, err := bet.ParseFormula(cr.Formula)
	if err != nil {
		return nil, err
	}
	if cr.Balls < 0 || cr.Balls > bet.MaxNumber {
		return nil, errs.NewWarn("balls out of range").Withf("%d", cr.Balls)
	}
	return &coupon.Coupon{
		Game:    cr.Game,
		BetType: bt,
		Formula: f,
		Balls:   cr.Balls,
		Numbers: cr.Numbers,
		Stake:   cr.Stake,
		Prises:  cr.Prises,
	}, nil
}

// ParseNumbers 解析 "5-17"、"5,17"、"5 17" 這類號碼字串。
func ParseNumbers(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == ',' || r == ' '
	})
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errs.NewWarn("invalid number").With(f)
		}
		out = append(out, n)
	}
	return out, nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.NewWarn("invalid json").With(err.Error())
	}
	return nil
}

func queryInt(q url.Values, key string) (int, error) {
	s := q.Get(key)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.NewWarn(key + " must be integer")
	}
	return v, nil
}

func queryBetType(q url.Values) (bet.BetType, error) {
	s := q.Get("bet_type")
	if s == "" {
		return bet.UnknownBetType, errs.NewWarn("bet_type is required")
	}
	return bet.ParseBetType(s)
}
