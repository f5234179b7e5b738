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

// Package dioloto 組裝 Dio Loto 定價實驗室的執行入口。
//
// Dioloto 把三個地基組在一起：
//  1. Catalog：場次目錄，每個場次對應一份設定檔（是否支援雙重機會、注金上下限、選號上限）。
//  2. PRNGFactory：亂數工廠，開獎與自動選號都由它建立可重現的亂數來源。
//  3. bet 定價引擎：公式表、驗證、獎金計算，本身無狀態。
//
// 設定檔來源一律以 fs.FS 注入（go:embed 或 os.DirFS），Dioloto 不處理路徑。
// 使用流程分兩階段：先 RegisterAll / Freeze，之後才對外報價與模擬。
package dioloto

import (
	"io/fs"

	"github.com/zintix-labs/dioloto/bet"
	"github.com/zintix-labs/dioloto/catalog"
	"github.com/zintix-labs/dioloto/coupon"
	"github.com/zintix-labs/dioloto/draw"
	"github.com/zintix-labs/dioloto/errs"
	"github.com/zintix-labs/dioloto/sdk/core"
	"github.com/zintix-labs/dioloto/setting"
)

var (
	ErrNotFrozen      = errs.NewFatal("catalog is not frozen yet")
	ErrBetTypeClosed  = errs.NewWarn("bet type not offered for this game")
	ErrInvalidRequest = errs.NewWarn("invalid request")
)

// Configs 把一或多個設定檔來源打包成 New() 需要的參數。
func Configs(cfgs ...fs.FS) []fs.FS {
	return cfgs
}

// Dioloto 定價實驗室
type Dioloto struct {
	cat   *catalog.Catalog
	pf    core.PRNGFactory
	games map[string]*game
	sum   []setting.Summary
}

type game struct {
	gs  *setting.GameSetting
	val *bet.Validator
}

// New 建立 Dioloto，尚未註冊任何場次。
func New(pf core.PRNGFactory, cfgs []fs.FS) (*Dioloto, error) {
	if pf == nil {
		return nil, errs.NewFatal("prng factory required")
	}
	if len(cfgs) == 0 {
		return nil, errs.NewFatal("configs required")
	}
	cat, err := catalog.New(cfgs...)
	if err != nil {
		return nil, err
	}
	return &Dioloto{cat: cat, pf: pf}, nil
}

// NewAuto 掃描全部設定檔、註冊並凍結，直接進入執行階段。
func NewAuto(pf core.PRNGFactory, cfgs []fs.FS) (*Dioloto, error) {
	d, err := New(pf, cfgs)
	if err != nil {
		return nil, err
	}
	if err := d.RegisterAll(); err != nil {
		return nil, err
	}
	if err := d.Freeze(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dioloto) Register(ents ...catalog.Entry) error {
	return d.cat.Register(ents...)
}

// RegisterAll 解析全部設定檔並一次註冊；任一檔案失敗就整批不註冊。
func (d *Dioloto) RegisterAll() error {
	if err := d.cat.Scan(); err != nil {
		return err
	}
	if len(d.cat.Codes()) == 0 {
		return errs.NewFatal("no config files found to register")
	}
	return nil
}

// Freeze 凍結目錄並載入所有場次設定
func (d *Dioloto) Freeze() error {
	codes := d.cat.Codes()
	games := make(map[string]*game, len(codes))
	sum := make([]setting.Summary, 0, len(codes))
	for _, code := range codes {
		gs, err := d.cat.GameSetting(code)
		if err != nil {
			return errs.Wrap(err, "parse game setting failed")
		}
		games[code] = &game{gs: gs, val: bet.NewValidator(gs.Limits())}
		sum = append(sum, gs.Summary())
	}
	d.cat.Freeze()
	d.games = games
	d.sum = sum
	return nil
}

func (d *Dioloto) game(code string) (*game, error) {
	if !d.cat.IsFrozen() {
		return nil, ErrNotFrozen
	}
	e, ok := d.cat.Lookup(code)
	if !ok {
		return nil, catalog.ErrNoGame.With(code)
	}
	return d.games[e.Code], nil
}

// Codes 已註冊場次代碼（排序）
func (d *Dioloto) Codes() []string {
	return d.cat.Codes()
}

// Summary 場次摘要
func (d *Dioloto) Summary() ([]setting.Summary, error) {
	if !d.cat.IsFrozen() {
		return nil, ErrNotFrozen
	}
	return d.sum, nil
}

// Game 取得場次設定
func (d *Dioloto) Game(code string) (*setting.GameSetting, error) {
	g, err := d.game(code)
	if err != nil {
		return nil, err
	}
	return g.gs, nil
}

// Formulas 場次內某投注型態的公式表
func (d *Dioloto) Formulas(code string, bt bet.BetType, balls int) (bet.Options, error) {
	g, err := d.game(code)
	if err != nil {
		return bet.Options{}, err
	}
	if !bt.Valid() {
		return bet.Options{}, bet.ErrUnknownBetType.Withf("%d", uint8(bt))
	}
	if !g.gs.Enabled(bt) {
		return bet.Options{}, ErrBetTypeClosed.With(bt.String())
	}
	return g.gs.Options(bt, balls), nil
}

// Quote 以場次設定（雙重機會、注金上下限、選號上限）為投注單報價。
func (d *Dioloto) Quote(c *coupon.Coupon) (coupon.Quote, error) {
	g, err := d.game(c.Game)
	if err != nil {
		return coupon.Quote{}, err
	}
	if !c.BetType.Valid() {
		return coupon.Quote{}, bet.ErrUnknownBetType.Withf("%d", uint8(c.BetType))
	}
	if !g.gs.Enabled(c.BetType) {
		return coupon.Quote{}, ErrBetTypeClosed.With(c.BetType.String())
	}
	return coupon.Price(c, g.gs.DoubleChance, g.val), nil
}

// AutoPick 自動選號；seed 由 crypto/rand 產生。
func (d *Dioloto) AutoPick(bt bet.BetType, minNumbers, balls int) ([]int, error) {
	return d.AutoPickWithSeed(bt, minNumbers, balls, core.RandomSeed())
}

// AutoPickWithSeed 以指定 seed 自動選號，同 seed 結果相同。
func (d *Dioloto) AutoPickWithSeed(bt bet.BetType, minNumbers, balls int, seed int64) ([]int, error) {
	if !bt.Valid() {
		return nil, bet.ErrUnknownBetType.Withf("%d", uint8(bt))
	}
	if minNumbers < 0 || minNumbers > bet.MaxNumber || balls < 0 || balls > bet.MaxNumber {
		return nil, ErrInvalidRequest.Withf("min=%d balls=%d", minNumbers, balls)
	}
	return bet.AutoNumbers(d.pf.New(seed), bt, minNumbers, balls), nil
}

// Draw 以指定 seed 開出一期
func (d *Dioloto) Draw(seed int64) draw.Draw {
	return draw.New(d.pf.New(seed))
}

// NewSimulator 為場次內一張投注單建立模擬器；seed 由 crypto/rand 產生。
func (d *Dioloto) NewSimulator(c *coupon.Coupon) (*Simulator, error) {
	return d.NewSimulatorWithSeed(c, core.RandomSeed())
}

// NewSimulatorWithSeed 同 NewSimulator，由呼叫端指定初始 seed 以便重現。
func (d *Dioloto) NewSimulatorWithSeed(c *coupon.Coupon, seed int64) (*Simulator, error) {
	q, err := d.Quote(c)
	if err != nil {
		return nil, err
	}
	if !q.Valid {
		reason := q.Reason
		if reason == "" {
			reason = "coupon rejected by game limits"
		}
		return nil, ErrInvalidRequest.With(reason)
	}
	return newSimulatorWithSeed(c, q, d.pf, seed)
}
