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

package svrcfg

import (
	"log/slog"
	"time"

	"github.com/zintix-labs/dioloto"
	"github.com/zintix-labs/dioloto/errs"
	"github.com/zintix-labs/dioloto/server/logger"
)

const (
	defaultAddr       = ":5808"
	defaultMaxRounds  = 1_000_000
	defaultMaxWorkers = 8
	defaultMaxPlayers = 100_000
	defaultSimTimeout = 30 * time.Second
)

// SvrCfg 組裝 server 所需的依賴與上限。零值欄位在 Valid 時補上預設值。
type SvrCfg struct {
	Log  *slog.Logger
	Addr string
	Lab  *dioloto.Dioloto

	MaxRounds  int           // 單次模擬每個 worker 的期數上限
	MaxWorkers int           // 單次模擬 worker 上限
	MaxPlayers int           // 玩家模擬人數上限
	SimTimeout time.Duration // 模擬請求的寫出逾時
}

func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		// 保持安靜、合法
		sc.Log = logger.NewDefaultLogger(logger.ModeSilence)
	}
	if sc.Lab == nil {
		return errs.NewFatal("dioloto lab is required")
	}
	if sc.Addr == "" {
		sc.Addr = defaultAddr
	}
	if sc.MaxRounds <= 0 {
		sc.MaxRounds = defaultMaxRounds
	}
	if sc.MaxWorkers <= 0 {
		sc.MaxWorkers = defaultMaxWorkers
	}
	// 資源管理：worker 最多 64
	sc.MaxWorkers = min(64, sc.MaxWorkers)
	if sc.MaxPlayers <= 0 {
		sc.MaxPlayers = defaultMaxPlayers
	}
	if sc.SimTimeout <= 0 {
		sc.SimTimeout = defaultSimTimeout
	}
	return nil
}
