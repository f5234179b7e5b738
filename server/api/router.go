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

package api

import (
	"log/slog"
	"net/http"

	v1 "github.com/zintix-labs/dioloto/server/api/v1"
	"github.com/zintix-labs/dioloto/server/httperr"
	"github.com/zintix-labs/dioloto/server/netsvr"
	"github.com/zintix-labs/dioloto/server/netsvr/middleware"
	"github.com/zintix-labs/dioloto/server/svrcfg"
)

// Routes 對外公開的路由清單，GET / 會原樣回傳。
var Routes = []string{
	"GET /healthz",
	"GET /v1/games",
	"GET /v1/formulas?game=&bet_type=&balls=",
	"GET /v1/quote?game=&bet_type=&formula=&balls=&numbers=&stake=&prises=",
	"POST /v1/quote",
	"GET /v1/autopick?bet_type=&min=&balls=&seed=",
	"POST /v1/sim",
}

// RegisterRoutes 註冊 middleware 與全部路由。middleware 必須先於路由註冊。
func RegisterRoutes(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg) error {
	h, err := v1.NewHandler(sCfg)
	if err != nil {
		return err
	}
	registerMiddleware(svr, sCfg.Log)
	registerIndex(svr)
	registerV1API(svr, h)
	return nil
}

func registerMiddleware(svr netsvr.NetRouter, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover(log))
	svr.Use(middleware.Compression)
}

func registerIndex(svr netsvr.NetRouter) {
	svr.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httperr.JSON(w, map[string]any{"service": "dioloto", "routes": Routes})
	})
	svr.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func registerV1API(svr netsvr.NetRouter, h *v1.Handler) {
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/games", h.Games)
		vOne.Get("/formulas", h.Formulas)
		vOne.Get("/quote", h.Quote)
		vOne.Post("/quote", h.Quote)
		vOne.Get("/autopick", h.AutoPick)
		vOne.Post("/sim", h.Sim)
	})
}
