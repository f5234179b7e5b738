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

package perf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseMode(t *testing.T) {
	for _, s := range []string{"", "cpu", "HEAP", " allocs "} {
		if _, err := ParseMode(s); err != nil {
			t.Fatalf("ParseMode(%q): %v", s, err)
		}
	}
	if _, err := ParseMode("block"); err == nil {
		t.Fatalf("unknown mode must fail")
	}
}

func TestRunWritesProfile(t *testing.T) {
	for _, m := range []Mode{ModeCPU, ModeHeap, ModeAllocs} {
		dir := t.TempDir()
		ran := false
		if err := Run(dir, m, func() error { ran = true; return nil }); err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		if !ran {
			t.Fatalf("%s: exe not called", m)
		}
		st, err := os.Stat(filepath.Join(dir, string(m)+".pprof"))
		if err != nil || st.Size() == 0 {
			t.Fatalf("%s: profile not written: %v", m, err)
		}
	}
}

func TestRunNonePassesError(t *testing.T) {
	boom := errors.New("boom")
	dir := t.TempDir()
	if err := Run(dir, ModeNone, func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("ModeNone must not write files")
	}
}
