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

package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseMode(t *testing.T) {
	cases := map[string]LogMode{"dev": ModeDev, "PROD": ModeProd, " silence ": ModeSilence}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("loud"); err == nil {
		t.Fatalf("unknown mode must fail")
	}
}

func TestAsyncHandlerDrainsOnClose(t *testing.T) {
	buf := new(bytes.Buffer)
	ah := NewAsyncHandler(slog.NewTextHandler(buf, nil), 16)
	log := slog.New(ah).With(slog.String("game", "togo9"))
	log.Info("quote", slog.String("gains", "1400.00"))
	ah.Close()
	out := buf.String()
	if !strings.Contains(out, "game=togo9") || !strings.Contains(out, "gains=1400.00") {
		t.Fatalf("unexpected log output %q", out)
	}

	log.Info("after close")
	if ah.Dropped() != 1 {
		t.Fatalf("expected one dropped record, got %d", ah.Dropped())
	}
	ah.Close()
}

func TestAsyncHandlerNotReady(t *testing.T) {
	var ah *AsyncHandler
	if ah.Ready() || ah.Dropped() != 0 {
		t.Fatalf("nil handler must be not ready")
	}
	ah.Close()
}
