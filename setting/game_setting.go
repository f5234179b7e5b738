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

// Package setting 定義場次（遊戲）設定檔與其檢查。
package setting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zintix-labs/dioloto/bet"
	"github.com/zintix-labs/dioloto/errs"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMinStake = bet.MinStake
	DefaultMaxStake = 5000
)

// GameSetting 單一場次設定，例如 togo9、ghana20。
type GameSetting struct {
	Code         string         `yaml:"code"          json:"code"`
	Name         string         `yaml:"name"          json:"name"`
	Country      string         `yaml:"country"       json:"country"`
	DrawTime     string         `yaml:"draw_time"     json:"draw_time"`
	DoubleChance bool           `yaml:"double_chance" json:"double_chance"`
	MinStake     int64          `yaml:"min_stake"     json:"min_stake"`
	MaxStake     int64          `yaml:"max_stake"     json:"max_stake"`
	MaxNumbers   map[string]int `yaml:"max_numbers"   json:"max_numbers"`
	BetTypes     []string       `yaml:"bet_types"     json:"bet_types"`

	enabled []bet.BetType
	caps    map[bet.BetType]int
}

// FromYAML 嚴格解析 YAML（未知欄位即報錯）並初始化。
func FromYAML(data []byte) (*GameSetting, error) {
	gs := &GameSetting{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(gs); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshal yaml")
	}
	if err := gs.init(); err != nil {
		return nil, errs.Wrap(err, "game setting initialized err")
	}
	return gs, nil
}

// FromJSON 嚴格解析 JSON 並初始化。
func FromJSON(data []byte) (*GameSetting, error) {
	gs := &GameSetting{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(gs); err != nil {
		return nil, errs.Wrap(err, "can not unmarshal json byte")
	}
	if err := gs.init(); err != nil {
		return nil, errs.Wrap(err, "game setting initialized err")
	}
	return gs, nil
}

func (gs *GameSetting) init() error {
	gs.Code = strings.ToLower(strings.TrimSpace(gs.Code))
	if gs.MinStake == 0 {
		gs.MinStake = DefaultMinStake
	}
	if gs.MaxStake == 0 {
		gs.MaxStake = DefaultMaxStake
	}

	gs.enabled = gs.enabled[:0]
	if len(gs.BetTypes) == 0 {
		gs.enabled = bet.BetTypes()
	}
	seen := map[bet.BetType]struct{}{}
	for _, name := range gs.BetTypes {
		bt, err := bet.ParseBetType(name)
		if err != nil {
			return errs.Wrap(err, fmt.Sprintf("game: %s bet_types", gs.Code))
		}
		if _, dup := seen[bt]; dup {
			return errs.Fatalf("game: %s duplicate bet type %s", gs.Code, bt)
		}
		seen[bt] = struct{}{}
		gs.enabled = append(gs.enabled, bt)
	}

	gs.caps = make(map[bet.BetType]int, len(gs.MaxNumbers))
	for name, n := range gs.MaxNumbers {
		bt, err := bet.ParseBetType(name)
		if err != nil {
			return errs.Wrap(err, fmt.Sprintf("game: %s max_numbers", gs.Code))
		}
		gs.caps[bt] = n
	}
	return gs.valid()
}

// valid 基本檢查
func (gs *GameSetting) valid() error {
	if gs.Code == "" {
		return errs.NewFatal("game code required")
	}
	if gs.MinStake < bet.MinStake {
		return errs.Fatalf("game: %s err:min_stake %d below %d", gs.Code, gs.MinStake, bet.MinStake)
	}
	if gs.MaxStake < gs.MinStake {
		return errs.Fatalf("game: %s err:max_stake %d below min_stake %d", gs.Code, gs.MaxStake, gs.MinStake)
	}
	for bt, n := range gs.caps {
		if n < 1 || n > bet.MaxNumber {
			return errs.Fatalf("game: %s err:max_numbers[%s]=%d", gs.Code, bt, n)
		}
	}
	if gs.DrawTime != "" {
		if _, err := time.Parse("15:04", gs.DrawTime); err != nil {
			return errs.Fatalf("game: %s err:draw_time %q (want HH:MM)", gs.Code, gs.DrawTime)
		}
	}
	return nil
}

// Enabled 場次是否開放此投注型態
func (gs *GameSetting) Enabled(bt bet.BetType) bool {
	for _, b := range gs.enabled {
		if b == bt {
			return true
		}
	}
	return false
}

// EnabledBetTypes 回傳開放的投注型態（複本）
func (gs *GameSetting) EnabledBetTypes() []bet.BetType {
	return append([]bet.BetType(nil), gs.enabled...)
}

// Limits 轉成驗證器使用的限制
func (gs *GameSetting) Limits() bet.Limits {
	caps := make(map[bet.BetType]int, len(gs.caps))
	for k, v := range gs.caps {
		caps[k] = v
	}
	return bet.Limits{
		MaxNumbers: caps,
		MinStake:   decimal.NewFromInt(gs.MinStake),
		MaxStake:   decimal.NewFromInt(gs.MaxStake),
	}
}

// Options 依場次是否支援雙重機會回傳公式表
func (gs *GameSetting) Options(bt bet.BetType, ballCount int) bet.Options {
	if !gs.Enabled(bt) {
		return bet.Formulas(bet.UnknownBetType, false, ballCount)
	}
	return bet.Formulas(bt, gs.DoubleChance, ballCount)
}

// Summary 對外顯示的場次摘要
type Summary struct {
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	Country      string   `json:"country"`
	DrawTime     string   `json:"draw_time"`
	DoubleChance bool     `json:"double_chance"`
	BetTypes     []string `json:"bet_types"`
}

func (gs *GameSetting) Summary() Summary {
	names := make([]string, len(gs.enabled))
	for i, bt := range gs.enabled {
		names[i] = bt.String()
	}
	return Summary{
		Code:         gs.Code,
		Name:         gs.Name,
		Country:      gs.Country,
		DrawTime:     gs.DrawTime,
		DoubleChance: gs.DoubleChance,
		BetTypes:     names,
	}
}
