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

package v1

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/dioloto/dto"
	"github.com/zintix-labs/dioloto/errs"
	"github.com/zintix-labs/dioloto/sdk/core"
	"github.com/zintix-labs/dioloto/server/httperr"
)

// Sim POST /v1/sim
//
// players 為 0 時跑 rounds × workers 期的整體模擬；否則每位玩家最多 rounds 期。
// 模擬本身不可中斷，逾時後回 504，背景計算在上限內自然結束。
func (h *Handler) Sim(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeSimRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	if err := h.checkSim(req); err != nil {
		httperr.Errs(w, err)
		return
	}
	c, err := req.Coupon()
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	if req.Seed == nil {
		v := core.RandomSeed()
		req.Seed = &v
	}
	sim, err := h.lab.NewSimulatorWithSeed(c, *req.Seed)
	if err != nil {
		h.fail(w, "build simulator", errs.Wrap(err, "build simulator err: "+c.Game))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.SimTimeout)
	defer cancel()

	done := make(chan simOutcome, 1)
	go func() {
		var out simOutcome
		res := &out.res
		res.Seed, res.Label = sim.InitSeed(), sim.Label()
		if req.Players > 0 {
			st, est, used, err := sim.SimPlayers(req.Workers, req.Players, req.InitBets, req.Rounds, false)
			res.Stats, res.Estimator, res.UsedTime, out.err = st, est, used.Milliseconds(), err
		} else {
			st, used, err := sim.SimMP(req.Rounds, req.Workers, false)
			res.Stats, res.UsedTime, out.err = st, used.Milliseconds(), err
		}
		done <- out
	}()

	select {
	case <-ctx.Done():
		h.fail(w, "simulate", errs.Wrap(ctx.Err(), "simulate err: "+c.Game))
	case out := <-done:
		if out.err != nil {
			h.fail(w, "simulate", errs.Wrap(out.err, "simulate err: "+c.Game))
			return
		}
		h.log.Debug("sim done",
			slog.String("game", c.Game),
			slog.String("coupon", out.res.Label),
			slog.Int64("seed", out.res.Seed),
			slog.Int64("used_ms", out.res.UsedTime),
		)
		httperr.JSON(w, out.res)
	}
}

type simOutcome struct {
	res dto.SimResult
	err error
}

// checkSim 套用伺服器端的資源上限；workers 缺省為 1。
func (h *Handler) checkSim(req *dto.SimRequest) error {
	if req.Workers == 0 {
		req.Workers = 1
	}
	if req.Workers < 1 || req.Workers > h.cfg.MaxWorkers {
		return errs.NewWarn("workers out of range").Withf("1..%d", h.cfg.MaxWorkers)
	}
	if req.Rounds < 1 || req.Rounds > h.cfg.MaxRounds {
		return errs.NewWarn("rounds out of range").Withf("1..%d", h.cfg.MaxRounds)
	}
	if req.Players < 0 || req.Players > h.cfg.MaxPlayers {
		return errs.NewWarn("players out of range").Withf("0..%d", h.cfg.MaxPlayers)
	}
	if req.Players > 0 && req.InitBets < 1 {
		return errs.NewWarn("init_bets must be at least 1")
	}
	return nil
}
