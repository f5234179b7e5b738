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

// Package catalog 索引設定檔來源，並以場次代碼或名稱查找場次設定。
package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zintix-labs/dioloto/errs"
	"github.com/zintix-labs/dioloto/setting"
)

var (
	ErrDupCode = errs.NewFatal("duplicate game code")
	ErrDupName = errs.NewFatal("duplicate game name")
	ErrNoGame  = errs.NewWarn("game does not exist in catalog")
)

type Entry struct {
	Code       string
	Name       string
	ConfigName string
}

type Catalog struct {
	byCode map[string]Entry
	byName map[string]Entry
	codes  []string            // 用來穩定排序
	unique map[string]struct{} // 一個場次一個檔案，檔名需唯一
	config *multiFS
	frozen bool
}

func New(cfg ...fs.FS) (*Catalog, error) {
	multFS, err := newMultiFS(cfg...)
	if err != nil {
		return nil, errs.Wrap(err, "can not create catalog")
	}
	return &Catalog{
		byCode: map[string]Entry{},
		byName: map[string]Entry{},
		codes:  make([]string, 0, 32),
		unique: map[string]struct{}{},
		config: multFS,
	}, nil
}

// Scan 解析所有來源中的設定檔，以設定內的 code / name 註冊。
func (c *Catalog) Scan() error {
	files := c.config.Names()
	metas := make([]Entry, 0, len(files))
	for _, file := range files {
		gs, err := c.parse(file)
		if err != nil {
			return errs.Wrap(err, fmt.Sprintf("config %s", file))
		}
		metas = append(metas, Entry{Code: gs.Code, Name: gs.Name, ConfigName: file})
	}
	return c.Register(metas...)
}

func (c *Catalog) Register(metas ...Entry) error {
	if c.frozen {
		return errs.NewWarn("can not register when catalog already frozen")
	}
	seenCode := map[string]struct{}{}
	seenName := map[string]struct{}{}
	seenCfg := map[string]struct{}{}
	for i := range metas {
		meta := &metas[i]
		meta.Code = normalize(meta.Code)
		meta.Name = normalize(meta.Name)
		if meta.Code == "" {
			return errs.NewFatal("game code required")
		}
		if err := validFileName(meta.ConfigName); err != nil {
			return err
		}
		if _, ok := c.config.index[meta.ConfigName]; !ok {
			return errs.Fatalf("config file not found: %s", meta.ConfigName)
		}
		if _, ok := c.byCode[meta.Code]; ok {
			return ErrDupCode.With(meta.Code)
		}
		if _, ok := seenCode[meta.Code]; ok {
			return ErrDupCode.With(meta.Code)
		}
		if meta.Name != "" {
			if _, ok := c.byName[meta.Name]; ok {
				return ErrDupName.With(meta.Name)
			}
			if _, ok := seenName[meta.Name]; ok {
				return ErrDupName.With(meta.Name)
			}
			seenName[meta.Name] = struct{}{}
		}
		if _, ok := c.unique[meta.ConfigName]; ok {
			return errs.Fatalf("duplicate config name: %s", meta.ConfigName)
		}
		if _, ok := seenCfg[meta.ConfigName]; ok {
			return errs.Fatalf("duplicate config name: %s", meta.ConfigName)
		}
		seenCode[meta.Code] = struct{}{}
		seenCfg[meta.ConfigName] = struct{}{}
	}
	for _, meta := range metas {
		c.unique[meta.ConfigName] = struct{}{}
		c.byCode[meta.Code] = meta
		if meta.Name != "" {
			c.byName[meta.Name] = meta
		}
		c.codes = append(c.codes, meta.Code)
	}
	sort.Strings(c.codes)
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (c *Catalog) GetByCode(code string) (Entry, bool) {
	m, ok := c.byCode[normalize(code)]
	return m, ok
}

func (c *Catalog) GetByName(name string) (Entry, bool) {
	m, ok := c.byName[normalize(name)]
	return m, ok
}

// Lookup 先以代碼再以名稱查找
func (c *Catalog) Lookup(key string) (Entry, bool) {
	if e, ok := c.GetByCode(key); ok {
		return e, true
	}
	return c.GetByName(key)
}

func (c *Catalog) Codes() []string {
	if len(c.codes) == 0 {
		return nil
	}
	return append([]string(nil), c.codes...)
}

func (c *Catalog) All() []Entry {
	m := make([]Entry, 0, len(c.codes))
	for _, code := range c.codes {
		m = append(m, c.byCode[code])
	}
	return m
}

func (c *Catalog) Freeze() {
	c.frozen = true
}

func (c *Catalog) IsFrozen() bool {
	return c.frozen
}

func validFileName(file string) error {
	if file == "" {
		return errs.NewFatal("empty config filename")
	}
	// 1) 不能包含路徑或類似字元
	if strings.ContainsAny(file, `/\:`) {
		return errs.Fatalf("invalid config filename: %q (must be a basename; no / \\ :)", file)
	}
	// 2) 必須以 .yaml/.yml/.json 結尾（大小寫不敏感）
	if !isConfigFile(file) {
		return errs.Fatalf("invalid config filename: %q (must end with .yaml, .yml, or .json)", file)
	}
	// 3) 不能以 . 開頭
	if strings.HasPrefix(file, ".") {
		return errs.Fatalf("invalid config filename: %q (cannot start with '.')", file)
	}
	return nil
}

func isConfigFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func parseByExt(filename string, raw []byte) (*setting.GameSetting, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return setting.FromYAML(raw)
	case ".json":
		return setting.FromJSON(raw)
	default:
		return nil, errs.Fatalf("unsupported config format: %q", filename)
	}
}

func (c *Catalog) parse(file string) (*setting.GameSetting, error) {
	src, ok := c.config.GetFS(file)
	if !ok {
		return nil, errs.NewWarn("file name does not exist in catalog")
	}
	raw, err := fs.ReadFile(src, file)
	if err != nil {
		return nil, errs.Wrap(err, "catalog read file error")
	}
	return parseByExt(file, raw)
}

// GameSetting 以代碼或名稱讀取並解析場次設定
func (c *Catalog) GameSetting(key string) (*setting.GameSetting, error) {
	e, ok := c.Lookup(key)
	if !ok {
		return nil, ErrNoGame.With(key)
	}
	return c.parse(e.ConfigName)
}

type multiFS struct {
	src   []fs.FS
	index map[string]int // name -> src index
}

func newMultiFS(src ...fs.FS) (*multiFS, error) {
	if len(src) == 0 {
		return nil, errs.NewFatal("no fs provided")
	}
	for i, s := range src {
		if s == nil {
			return nil, errs.Fatalf("fs[%d] is nil", i)
		}
	}

	m := &multiFS{
		src:   src,
		index: make(map[string]int, 64),
	}

	// 建立索引並檢查重複
	for i := 0; i < len(src); i++ {
		err := fs.WalkDir(src[i], ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// 設定目錄必須是平的，只允許根目錄
				if path == "." {
					return nil
				}
				return errs.Fatalf("config FS must be flat (no subdirectories): %q", path)
			}
			// 其他檔案（README 等）略過
			if !isConfigFile(path) {
				return nil
			}
			if prev, ok := m.index[path]; ok {
				return errs.Fatalf("duplicate config %q in fs[%d] and fs[%d]", path, prev, i)
			}
			m.index[path] = i
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *multiFS) GetFS(name string) (fs.FS, bool) {
	if id, ok := m.index[name]; ok {
		return m.src[id], ok
	}
	return nil, false
}

// Names 回傳所有已索引的設定檔名（排序）
func (m *multiFS) Names() []string {
	out := make([]string, 0, len(m.index))
	for name := range m.index {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
