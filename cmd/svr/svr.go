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

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/zintix-labs/dioloto"
	"github.com/zintix-labs/dioloto/configs"
	"github.com/zintix-labs/dioloto/sdk/core"
	"github.com/zintix-labs/dioloto/server"
	"github.com/zintix-labs/dioloto/server/logger"
	"github.com/zintix-labs/dioloto/server/svrcfg"
)

// 定價實驗室入口：載入內嵌場次設定後提供 /v1 API。
// 這不是售票後台，沒有帳號、下注與開獎紀錄。
func main() {
	sCfg, closeLog, err := loadConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	err = server.Run(sCfg)
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

type config struct {
	addr       string
	logMode    string
	maxRounds  int
	maxWorkers int
	maxPlayers int
	simTimeout time.Duration
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, func(), error) {
	cfg := new(config)
	flag.StringVar(&cfg.addr, "addr", ":5808", "listen address")
	flag.StringVar(&cfg.logMode, "log", "dev", "log mode: dev|prod|silence")
	flag.IntVar(&cfg.maxRounds, "max-rounds", 1_000_000, "max draws per worker for /v1/sim")
	flag.IntVar(&cfg.maxWorkers, "max-workers", 8, "max workers for /v1/sim")
	flag.IntVar(&cfg.maxPlayers, "max-players", 100_000, "max players for /v1/sim")
	flag.DurationVar(&cfg.simTimeout, "sim-timeout", 30*time.Second, "timeout for /v1/sim")
	flag.Parse()

	mode, err := logger.ParseMode(cfg.logMode)
	if err != nil {
		return nil, nil, err
	}
	log, ah := logger.NewAsync(4096, mode)

	lab, err := dioloto.NewAuto(core.Default(), dioloto.Configs(configs.FS))
	if err != nil {
		ah.Close()
		return nil, nil, err
	}
	sCfg := &svrcfg.SvrCfg{
		Log:        log,
		Addr:       cfg.addr,
		Lab:        lab,
		MaxRounds:  cfg.maxRounds,
		MaxWorkers: cfg.maxWorkers,
		MaxPlayers: cfg.maxPlayers,
		SimTimeout: cfg.simTimeout,
	}
	return sCfg, ah.Close, nil
}
