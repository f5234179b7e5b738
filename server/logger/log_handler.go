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

// Package logger 組裝 dioloto 服務使用的 slog logger。
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/dioloto/errs"
)

// LogMode 輸出模式
type LogMode uint8

const (
	ModeDev     LogMode = iota // text, stderr, debug
	ModeProd                   // json, stdout, info
	ModeSilence                // 全部丟棄
)

var modeNames = map[string]LogMode{
	"dev":     ModeDev,
	"prod":    ModeProd,
	"silence": ModeSilence,
}

// ParseMode 解析 -log 旗標的值（dev/prod/silence）。
func ParseMode(s string) (LogMode, error) {
	m, ok := modeNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return ModeDev, errs.NewWarn("unknown log mode").With(s)
	}
	return m, nil
}

// NewDefaultLogger 依模式建立同步 logger，所有紀錄帶上 svc=dioloto。
func NewDefaultLogger(mode LogMode) *slog.Logger {
	return slog.New(buildHandler(mode)).With(slog.String("svc", "dioloto"))
}

// NewLogger 包裝呼叫端自行組好的 Handler；nil 時退回 dev 模式。
func NewLogger(h slog.Handler) *slog.Logger {
	if h == nil {
		h = buildHandler(ModeDev)
	}
	return slog.New(h)
}

// NewAsync 依模式建立非阻塞 logger，同時回傳 handler 以便關閉時 drain。
func NewAsync(buf int, mode LogMode) (*slog.Logger, *AsyncHandler) {
	ah := NewAsyncHandler(buildHandler(mode), buf)
	return slog.New(ah).With(slog.String("svc", "dioloto")), ah
}

// AsyncHandler 把任一 slog.Handler 改成非阻塞寫出。
//
// Handle 只負責 enqueue；背景 goroutine 逐筆交給 next。
// 佇列滿或 Close 之後的紀錄直接丟棄並計數，請求路徑不會被 I/O 拖慢。
// slog.Logger 會忽略 Handle 的 error，需要處理 I/O error 時請包在 next 內。
type AsyncHandler struct {
	next slog.Handler
	d    *asyncDispatcher
}

type asyncDispatcher struct {
	ch        chan asyncItem
	closed    chan struct{}
	once      sync.Once
	wg        sync.WaitGroup
	dropCount atomic.Uint64
}

type asyncItem struct {
	ctx     context.Context
	rec     slog.Record
	handler slog.Handler
}

// NewAsyncHandler buf 為佇列長度，<= 0 時使用 1024。
func NewAsyncHandler(next slog.Handler, buf int) *AsyncHandler {
	if next == nil {
		next = buildHandler(ModeDev)
	}
	if buf <= 0 {
		buf = 1024
	}
	d := &asyncDispatcher{
		ch:     make(chan asyncItem, buf),
		closed: make(chan struct{}),
	}
	d.wg.Add(1)
	go d.worker()
	return &AsyncHandler{next: next, d: d}
}

func (h *AsyncHandler) Ready() bool {
	return h != nil && h.d != nil
}

// Dropped 因佇列滿或已關閉而丟棄的筆數
func (h *AsyncHandler) Dropped() uint64 {
	if !h.Ready() {
		return 0
	}
	return h.d.dropCount.Load()
}

// Close 停止接收並把佇列內的紀錄寫完。可重複呼叫。
func (h *AsyncHandler) Close() {
	if !h.Ready() {
		return
	}
	h.d.once.Do(func() { close(h.d.closed) })
	h.d.wg.Wait()
}

func (d *asyncDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case it := <-d.ch:
			it.write()
		case <-d.closed:
			for {
				select {
				case it := <-d.ch:
					it.write()
				default:
					return
				}
			}
		}
	}
}

func (it asyncItem) write() {
	if it.handler != nil {
		_ = it.handler.Handle(it.ctx, it.rec)
	}
}

func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Ready() {
		return nil
	}
	select {
	case <-h.d.closed:
		h.d.dropCount.Add(1)
		return nil
	default:
	}
	// Record 跨 goroutine 前要 Clone
	it := asyncItem{ctx: ctx, rec: r.Clone(), handler: h.next}
	select {
	case h.d.ch <- it:
	default:
		h.d.dropCount.Add(1)
	}
	return nil
}

func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{next: h.next.WithAttrs(attrs), d: h.d}
}

func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{next: h.next.WithGroup(name), d: h.d}
}

func buildHandler(mode LogMode) slog.Handler {
	switch mode {
	case ModeProd:
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	case ModeSilence:
		return slog.NewTextHandler(io.Discard, nil)
	default:
		return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}
