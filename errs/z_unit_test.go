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

package errs

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestSentinelWithStillMatches(t *testing.T) {
	sentinel := NewLog("coupon incomplete")
	err := sentinel.With("stake below minimum")
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected errors.Is to match sentinel")
	}
	if sentinel.Extra != "" {
		t.Fatalf("sentinel must not be modified, got extra %q", sentinel.Extra)
	}
	if !strings.Contains(err.Error(), "stake below minimum") {
		t.Fatalf("extra missing from message: %s", err.Error())
	}
	if errors.Is(err, NewFatal("coupon incomplete")) {
		t.Fatalf("different level must not match")
	}
}

func TestWrapLevel(t *testing.T) {
	w := Wrap(io.EOF, "read config")
	if w.ErrLv != Fatal {
		t.Fatalf("expected fatal for foreign cause, got %s", w.ErrLv)
	}
	if !errors.Is(w, io.EOF) {
		t.Fatalf("expected unwrap to io.EOF")
	}
	w2 := Wrap(NewWarn("bad input"), "decode")
	if Level(w2) != Warn {
		t.Fatalf("expected warn to be kept, got %s", Level(w2))
	}
	if Level(io.EOF) != None {
		t.Fatalf("expected none for plain error")
	}
}
