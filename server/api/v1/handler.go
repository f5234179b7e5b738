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

// Package v1 提供 /v1 定價實驗室 API。
package v1

import (
	"log/slog"
	"net/http"

	"github.com/zintix-labs/dioloto"
	"github.com/zintix-labs/dioloto/coupon"
	"github.com/zintix-labs/dioloto/dto"
	"github.com/zintix-labs/dioloto/errs"
	"github.com/zintix-labs/dioloto/sdk/core"
	"github.com/zintix-labs/dioloto/server/httperr"
	"github.com/zintix-labs/dioloto/server/svrcfg"
)

// Handler /v1 的所有端點共用同一個已凍結的 Dioloto。
type Handler struct {
	lab *dioloto.Dioloto
	log *slog.Logger
	cfg *svrcfg.SvrCfg
}

func NewHandler(sCfg *svrcfg.SvrCfg) (*Handler, error) {
	if sCfg == nil {
		return nil, errs.NewFatal("server config is required")
	}
	if err := sCfg.Valid(); err != nil {
		return nil, err
	}
	if _, err := sCfg.Lab.Summary(); err != nil {
		return nil, errs.Wrap(err, "build v1 handler error")
	}
	return &Handler{lab: sCfg.Lab, log: sCfg.Log, cfg: sCfg}, nil
}

// Games GET /v1/games
func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	sum, err := h.lab.Summary()
	if err != nil {
		h.fail(w, "games", err)
		return
	}
	httperr.JSON(w, dto.GameList{Games: sum})
}

// Formulas GET /v1/formulas?game=&bet_type=&balls=
func (h *Handler) Formulas(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeFormulasRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	opts, err := h.lab.Formulas(req.Game, req.BetType, req.Balls)
	if err != nil {
		h.fail(w, "formulas", err)
		return
	}
	httperr.JSON(w, dto.FormulaList{Game: req.Game, BetType: req.BetType, Balls: req.Balls, Options: opts})
}

// Quote GET|POST /v1/quote
//
// 投注單不完整或不可下注時仍回 200，valid=false 並附上 reason；
// 只有格式錯誤、未知場次、未開放玩法才回 4xx。
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeCouponRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	c, err := req.Coupon()
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	q, err := h.lab.Quote(c)
	if err != nil {
		h.fail(w, "quote", err)
		return
	}
	gs, err := h.lab.Game(c.Game)
	if err != nil {
		h.fail(w, "quote", err)
		return
	}
	res, err := dto.NewQuoteResult(c, q, gs.DrawTime)
	if err != nil {
		h.fail(w, "quote", err)
		return
	}
	httperr.JSON(w, res)
}

// AutoPick GET /v1/autopick?bet_type=&min=&balls=&seed=
func (h *Handler) AutoPick(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeAutoPickRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	seed := core.RandomSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	nums, err := h.lab.AutoPickWithSeed(req.BetType, req.Min, req.Balls, seed)
	if err != nil {
		h.fail(w, "autopick", err)
		return
	}
	httperr.JSON(w, dto.AutoPickResult{
		BetType: req.BetType,
		Numbers: nums,
		Joined:  coupon.JoinNumbers(nums),
		Seed:    seed,
	})
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	httperr.Log(h.log, msg, err)
	httperr.Errs(w, err)
}
