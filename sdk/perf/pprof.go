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

// Package perf 以 runtime/pprof 包住一段模擬，輸出 profile 檔。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/zintix-labs/dioloto/errs"
)

// DefaultDir pprof 檔案預設寫入路徑
const DefaultDir = "build/profiling"

type Mode string

const (
	ModeNone   Mode = ""
	ModeCPU    Mode = "cpu"
	ModeHeap   Mode = "heap"
	ModeAllocs Mode = "allocs"
)

// ParseMode 解析 -p 旗標：''、cpu、heap、allocs。
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeNone, ModeCPU, ModeHeap, ModeAllocs:
		return m, nil
	}
	return ModeNone, errs.NewWarn("unknown pprof mode").With(s)
}

// Run 依 mode 執行 exe 並寫出 <dir>/<mode>.pprof；ModeNone 只執行 exe。
//
// cpu 在 exe 期間取樣，可作為 PGO 的 default.pgo；
// heap 在 exe 結束後先 GC 再拍 in-use 快照；
// allocs 寫出累積配置，搭配 -alloc_space / -alloc_objects 查看。
func Run(dir string, mode Mode, exe func() error) error {
	if mode == ModeNone {
		return exe()
	}
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrap(err, "create pprof dir failed")
	}
	f, err := os.Create(filepath.Join(dir, string(mode)+".pprof"))
	if err != nil {
		return errs.Wrap(err, "create pprof file failed")
	}
	defer f.Close()

	switch mode {
	case ModeCPU:
		if err := pprof.StartCPUProfile(f); err != nil {
			return errs.Wrap(err, "start cpu profile failed")
		}
		defer pprof.StopCPUProfile()
		return exe()
	case ModeHeap:
		if err := exe(); err != nil {
			return err
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return errs.Wrap(err, "write heap profile failed")
		}
		return nil
	case ModeAllocs:
		if err := exe(); err != nil {
			return err
		}
		if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
			return errs.Wrap(err, "write allocs profile failed")
		}
		return nil
	}
	return errs.NewWarn("unknown pprof mode").With(string(mode))
}
