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

// Package server 組裝並啟動 dioloto 定價實驗室。
package server

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zintix-labs/dioloto/errs"
	"github.com/zintix-labs/dioloto/server/api"
	"github.com/zintix-labs/dioloto/server/app"
	"github.com/zintix-labs/dioloto/server/netsvr"
	"github.com/zintix-labs/dioloto/server/svrcfg"
)

const writeSlack = 5 * time.Second

// Run 以內建的 ChiAdapter 組裝並啟動 server，阻塞直到停止。
//
// 所有依賴都由 SvrCfg 注入，這裡不讀檔案或環境變數。
// 模擬請求可能跑很久，WriteTimeout 取 SimTimeout 再多留 5 秒。
func Run(sCfg *svrcfg.SvrCfg) error {
	if err := sCfg.Valid(); err != nil {
		// logger 可能不可用，直接寫 stderr
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	svr := netsvr.NewChiServer(sCfg.Addr, netsvr.Options{WriteTimeout: sCfg.SimTimeout + writeSlack})
	return RunWithSvr(sCfg, svr)
}

// RunWithSvr 與 Run 相同，但使用呼叫端注入的 NetSvr。
// 注入 ChiAdapter 時要求 Ready()。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if err := sCfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if svr == nil {
		err := errs.NewFatal("svr is required")
		sCfg.Log.Error(err.Error())
		return err
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		err := errs.NewFatal("chi server is not ready")
		sCfg.Log.Error(err.Error())
		return err
	}
	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		sCfg.Log.Error("register routes failed", slog.Any("err", err))
		return err
	}

	a := app.NewWith(sCfg.Log, svr)
	sCfg.Log.Info("[dioloto] listening", slog.String("addr", sCfg.Addr), slog.Int("games", len(sCfg.Lab.Codes())))
	if err := a.Run(); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	return nil
}
