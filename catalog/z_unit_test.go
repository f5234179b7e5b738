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

package catalog

import (
	"errors"
	"testing"
	"testing/fstest"
)

func mapFS(files map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for k, v := range files {
		m[k] = &fstest.MapFile{Data: []byte(v)}
	}
	return m
}

func TestScanAndLookup(t *testing.T) {
	a := mapFS(map[string]string{
		"togo9.yaml": "code: togo9\nname: Togo 9h\ndouble_chance: true\n",
		"README.md":  "ignored",
	})
	b := mapFS(map[string]string{
		"benin.json": `{"code":"benin","name":"Benin Midi"}`,
	})
	c, err := New(a, b)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Scan(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	codes := c.Codes()
	if len(codes) != 2 || codes[0] != "benin" || codes[1] != "togo9" {
		t.Fatalf("unexpected codes %v", codes)
	}
	gs, err := c.GameSetting("TOGO 9H")
	if err != nil || gs.Code != "togo9" || !gs.DoubleChance {
		t.Fatalf("lookup by name failed: %v %+v", err, gs)
	}
	if _, err := c.GameSetting("nowhere"); !errors.Is(err, ErrNoGame) {
		t.Fatalf("expected ErrNoGame, got %v", err)
	}
	if len(c.All()) != 2 {
		t.Fatalf("expected 2 entries")
	}
}

func TestDuplicates(t *testing.T) {
	dupCode := mapFS(map[string]string{
		"a.yaml": "code: x\nname: one\n",
		"b.yaml": "code: x\nname: two\n",
	})
	c, err := New(dupCode)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Scan(); !errors.Is(err, ErrDupCode) {
		t.Fatalf("expected ErrDupCode, got %v", err)
	}

	a := mapFS(map[string]string{"x.yaml": "code: x\n"})
	b := mapFS(map[string]string{"x.yaml": "code: y\n"})
	if _, err := New(a, b); err == nil {
		t.Fatalf("same file name across fs must fail")
	}
}

func TestFlatFS(t *testing.T) {
	nested := fstest.MapFS{"sub/a.yaml": &fstest.MapFile{Data: []byte("code: a\n")}}
	if _, err := New(nested); err == nil {
		t.Fatalf("subdirectories must be rejected")
	}
	if _, err := New(); err == nil {
		t.Fatalf("no fs must be rejected")
	}
}

func TestRegisterRules(t *testing.T) {
	c, err := New(mapFS(map[string]string{"a.yaml": "code: a\n"}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Register(Entry{Code: "a", ConfigName: "../a.yaml"}); err == nil {
		t.Fatalf("path in config name must fail")
	}
	if err := c.Register(Entry{Code: "a", ConfigName: "missing.yaml"}); err == nil {
		t.Fatalf("missing file must fail")
	}
	if err := c.Register(Entry{Code: " A ", ConfigName: "a.yaml"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := c.GetByCode("a"); !ok {
		t.Fatalf("code must be normalized")
	}
	c.Freeze()
	if !c.IsFrozen() {
		t.Fatalf("expected frozen")
	}
	if err := c.Register(Entry{Code: "b", ConfigName: "a.yaml"}); err == nil {
		t.Fatalf("frozen catalog must refuse")
	}
}

func TestScanBadConfig(t *testing.T) {
	c, err := New(mapFS(map[string]string{"bad.yaml": "code: a\nunknown: 1\n"}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Scan(); err == nil {
		t.Fatalf("strict decode must fail the scan")
	}
}
