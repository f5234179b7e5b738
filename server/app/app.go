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

// Package app 統一啟動與關閉多個 Component。
package app

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"
)

const defaultShutdownTimeout = 5 * time.Second

// App 啟動所有 Component，收到 SIGINT/SIGTERM、ctx 結束或任一元件停止時依序關閉全部元件。
type App struct {
	comps   []Component
	log     *slog.Logger
	timeout time.Duration
}

// New 建立 App；log 為 nil 時關閉錯誤只回傳不記錄。
func New(log *slog.Logger) *App {
	return &App{log: log, timeout: defaultShutdownTimeout}
}

// NewWith New 加上直接註冊元件
func NewWith(log *slog.Logger, comps ...Component) *App {
	a := New(log)
	for _, c := range comps {
		a.Register(c)
	}
	return a
}

func (a *App) Register(c Component) {
	a.comps = append(a.comps, c)
}

// SetShutdownTimeout 設定優雅關閉的總時限
func (a *App) SetShutdownTimeout(d time.Duration) {
	if d > 0 {
		a.timeout = d
	}
}

// Run 等同 RunContext(context.Background())
func (a *App) Run() error {
	return a.RunContext(context.Background())
}

// RunContext 阻塞直到收到終止信號、ctx 結束或任一元件的 Run 返回。
//   - 信號或 ctx 結束：關閉後回傳 nil。
//   - 元件先返回：關閉後回傳該元件的錯誤（可能為 nil）。
func (a *App) RunContext(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) {
			errCh <- c.Run()
		}(c)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}
	if err := a.shutdown(); err != nil && a.log != nil {
		a.log.Warn("app shutdown", slog.Any("err", err))
	}
	return runErr
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	var all []error
	for _, c := range a.comps {
		if err := c.Shutdown(ctx); err != nil {
			all = append(all, err)
		}
	}
	return errors.Join(all...)
}
