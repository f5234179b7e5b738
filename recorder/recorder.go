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

// Package recorder 累積模擬期數的注金、獎金與中獎分佈，完成後輸出統計報告。
package recorder

import (
	"github.com/shopspring/decimal"
	"github.com/zintix-labs/dioloto/errs"
	"github.com/zintix-labs/dioloto/stats"
)

// Recorder 模擬紀錄員
//
// 每期以同一張投注單下注，Record 紀錄該期結算結果，Done 輸出報告。
// 金額以 decimal 累加，贏倍的平方和以 float64 累加。
type Recorder struct {
	Game     string
	Coupon   string
	Stake    decimal.Decimal
	InitBets int
	Basic    *BasicRecord
	Dist     []int
	Player   *PlayerRecord

	stakeF float64
}

// BasicRecord 基本紀錄
type BasicRecord struct {
	TotalBet    decimal.Decimal
	TotalWin    decimal.Decimal
	WinPart     decimal.Decimal
	MachinePart decimal.Decimal
	MultSum     float64
	MultSqSum   float64 // 平方和
	MaxMult     float64
	Combos      int
	NoWin       int
	Rounds      int
}

// PlayerRecord 玩家資金紀錄
type PlayerRecord struct {
	leaveLine   decimal.Decimal
	InitBalance decimal.Decimal
	Balance     decimal.Decimal
	MaxBalance  decimal.Decimal
	MinBalance  decimal.Decimal
	Bust        bool
	Cashout     bool
}

// Round 單期結算結果
type Round struct {
	Win     decimal.Decimal // Win 開獎判定的獎金
	Machine decimal.Decimal // Machine 開獎判定的獎金
	Combos  int             // 中獎組合數
}

// Total 該期總獎金
func (r Round) Total() decimal.Decimal {
	return r.Win.Add(r.Machine)
}

// New 建立紀錄員；stake 為每期實際扣款金額，initBets 為玩家初始資金可下注的期數（0 表示不模擬玩家）。
func New(game, coupon string, stake decimal.Decimal, initBets int) (*Recorder, error) {
	if !stake.IsPositive() {
		return nil, errs.Fatalf("stake must be positive, got %s", stake)
	}
	if initBets < 0 {
		return nil, errs.Fatalf("init bets must not be negative, got %d", initBets)
	}
	sf, _ := stake.Float64()
	return &Recorder{
		Game:     game,
		Coupon:   coupon,
		Stake:    stake,
		InitBets: initBets,
		Basic:    newBasicRecord(),
		Dist:     make([]int, stats.Buckets.Len()),
		Player:   newPlayerRecord(stake, initBets),
		stakeF:   sf,
	}, nil
}

// Merge 合併多個 worker 的紀錄，遊戲與投注單須一致。
func Merge(r []*Recorder) (*Recorder, error) {
	if len(r) == 0 {
		return nil, errs.NewFatal("merge record err : empty input")
	}
	r0 := r[0]
	s, err := New(r0.Game, r0.Coupon, r0.Stake, r0.InitBets)
	if err != nil {
		return nil, err
	}
	for _, v := range r {
		if v.Game != r0.Game || v.Coupon != r0.Coupon {
			return nil, errs.NewFatal("merge record err : different coupon")
		}
		if !v.Stake.Equal(r0.Stake) {
			return nil, errs.NewFatal("merge record err : different stake")
		}
		b := s.Basic
		b.TotalBet = b.TotalBet.Add(v.Basic.TotalBet)
		b.TotalWin = b.TotalWin.Add(v.Basic.TotalWin)
		b.WinPart = b.WinPart.Add(v.Basic.WinPart)
		b.MachinePart = b.MachinePart.Add(v.Basic.MachinePart)
		b.MultSum += v.Basic.MultSum
		b.MultSqSum += v.Basic.MultSqSum
		b.MaxMult = max(b.MaxMult, v.Basic.MaxMult)
		b.Combos += v.Basic.Combos
		b.NoWin += v.Basic.NoWin
		b.Rounds += v.Basic.Rounds
		for i := range v.Dist {
			s.Dist[i] += v.Dist[i]
		}
	}
	return s, nil
}

// Record 紀錄一期
func (s *Recorder) Record(r Round) {
	b := s.Basic
	w := r.Total()
	b.TotalBet = b.TotalBet.Add(s.Stake)
	b.TotalWin = b.TotalWin.Add(w)
	b.WinPart = b.WinPart.Add(r.Win)
	b.MachinePart = b.MachinePart.Add(r.Machine)

	wf, _ := w.Float64()
	m := wf / s.stakeF
	b.MultSum += m
	b.MultSqSum += m * m
	b.MaxMult = max(b.MaxMult, m)
	b.Combos += r.Combos
	if !w.IsPositive() {
		b.NoWin++
	}
	b.Rounds++
	s.Dist[stats.Buckets.Index(m)]++
}

// RecordWithPlayer 在 Record 之外更新玩家資金，回傳玩家是否離場。
func (s *Recorder) RecordWithPlayer(r Round) bool {
	p := s.Player
	if p.Balance.LessThan(s.Stake) {
		return true
	}
	s.Record(r)
	p.Balance = p.Balance.Sub(s.Stake).Add(r.Total())
	if p.Balance.GreaterThan(p.MaxBalance) {
		p.MaxBalance = p.Balance
	}
	if p.Balance.LessThan(p.MinBalance) {
		p.MinBalance = p.Balance
	}
	leave := false
	if p.Balance.LessThan(s.Stake) {
		p.Bust = true
		leave = true
	}
	if p.Balance.GreaterThanOrEqual(p.leaveLine) {
		p.Cashout = true
		leave = true
	}
	return leave
}

// Done 輸出報告；theory 可為 nil。
func (s *Recorder) Done(theory *stats.TheoryReport) *stats.StatReport {
	f := func(d decimal.Decimal) float64 {
		v, _ := d.Float64()
		return v
	}
	b := s.Basic
	report := &stats.StatReport{
		Summary: &stats.SummaryReport{
			Game:        s.Game,
			Coupon:      s.Coupon,
			Stake:       s.stakeF,
			TotalBet:    f(b.TotalBet),
			TotalWin:    f(b.TotalWin),
			WinPart:     f(b.WinPart),
			MachinePart: f(b.MachinePart),
			Combos:      b.Combos,
			NoWinRounds: b.NoWin,
			Rounds:      b.Rounds,
		},
		Mult: &stats.MultReport{
			TotalWinMult:      b.MultSum,
			TotalWinMultSqSum: b.MultSqSum,
			MaxWinMult:        b.MaxMult,
		},
		Dist: &stats.DistReport{
			WinBucket:       stats.Buckets.WinBucketStr(),
			TotalWinCollect: append([]int(nil), s.Dist...),
		},
		Theory: theory,
	}
	if s.InitBets > 0 {
		p := s.Player
		report.Player = &stats.PlayerReport{
			InitBalance: f(p.InitBalance),
			Balance:     f(p.Balance),
			MaxBalance:  f(p.MaxBalance),
			MinBalance:  f(p.MinBalance),
			Bust:        p.Bust,
			Cashout:     p.Cashout,
		}
	}
	report.Done()
	return report
}

func newBasicRecord() *BasicRecord {
	return &BasicRecord{
		TotalBet:    decimal.Zero,
		TotalWin:    decimal.Zero,
		WinPart:     decimal.Zero,
		MachinePart: decimal.Zero,
	}
}

func newPlayerRecord(stake decimal.Decimal, initBets int) *PlayerRecord {
	b := stake.Mul(decimal.NewFromInt(int64(initBets)))
	return &PlayerRecord{
		InitBalance: b,
		Balance:     b,
		MaxBalance:  b,
		MinBalance:  b,
		leaveLine:   b.Mul(decimal.NewFromInt(3)), // 3 倍本金離場
	}
}
