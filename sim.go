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

package dioloto

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/shopspring/decimal"
	"github.com/zintix-labs/dioloto/bet"
	"github.com/zintix-labs/dioloto/coupon"
	"github.com/zintix-labs/dioloto/draw"
	"github.com/zintix-labs/dioloto/errs"
	"github.com/zintix-labs/dioloto/recorder"
	"github.com/zintix-labs/dioloto/sdk/core"
	"github.com/zintix-labs/dioloto/stats"
)

const capPrepare int = 100

// Simulator 以同一張投注單連續下注多期，統計實際 RTP 與中獎率。
type Simulator struct {
	Game      string               // 場次代碼
	Coupon    *coupon.Coupon       // 投注單（只讀）
	quote     coupon.Quote         // 報價
	gain      bet.Gain             // 每期結算重用的獎金
	pf        core.PRNGFactory     // 亂數工廠
	initSeed  int64                // 初始種子
	seedmaker *seedMaker           // worker 種子生成器
	rngs      []core.PRNG          // 併發開獎亂數來源
	rBuf      []*recorder.Recorder // 併發紀錄員
	sBuf      []*stats.StatReport  // 玩家報表(僅 SimPlayers 需要)
}

func newSimulatorWithSeed(c *coupon.Coupon, q coupon.Quote, pf core.PRNGFactory, seed int64) (*Simulator, error) {
	if c.BetType == bet.Permutations && len(c.Numbers) != c.Balls {
		return nil, ErrInvalidRequest.Withf("permutation needs %d numbers, got %d", c.Balls, len(c.Numbers))
	}
	if !q.Charged.IsPositive() {
		return nil, ErrInvalidRequest.With("coupon has no charged stake")
	}
	s := &Simulator{
		Game:      c.Game,
		Coupon:    c,
		quote:     q,
		gain:      bet.Gain{Base: q.Base, Win: q.Win, Machine: q.Machine, DoubleChance: q.DoubleChance},
		pf:        pf,
		initSeed:  seed,
		seedmaker: newSeedMaker(seed),
		rngs:      make([]core.PRNG, 1, capPrepare),
		rBuf:      make([]*recorder.Recorder, 0, capPrepare),
		sBuf:      make([]*stats.StatReport, 0, capPrepare),
	}
	s.rngs[0] = pf.New(seed)
	return s, nil
}

// InitSeed 初始種子，用於重現
func (s *Simulator) InitSeed() int64 {
	return s.initSeed
}

// Label 投注單標籤，例如 "Twosurs/Turbo2 5-17"
func (s *Simulator) Label() string {
	l := s.Coupon.BetType.String() + "/" + s.Coupon.Formula.String()
	if len(s.Coupon.Numbers) > 0 {
		l += " " + coupon.JoinNumbers(s.Coupon.Numbers)
	}
	return l
}

// Theory 理論 RTP 與單組合中獎機率
func (s *Simulator) Theory() *stats.TheoryReport {
	stake, _ := s.quote.Charged.Float64()
	exp := draw.ExpectedPayout(s.Coupon)
	t := &stats.TheoryReport{
		ComboProb:    draw.ComboProbability(s.Coupon.BetType, s.Coupon.Formula),
		ExpectedWins: exp,
	}
	if stake > 0 {
		t.RTP = exp / stake
	}
	return t
}

func (s *Simulator) newRecorder(initBets int) (*recorder.Recorder, error) {
	return recorder.New(s.Game, s.Label(), s.quote.Charged, initBets)
}

func (s *Simulator) play(rng core.RAND) recorder.Round {
	p := draw.Pay(s.Coupon, s.gain, draw.New(rng))
	return recorder.Round{Win: p.Win, Machine: p.Machine, Combos: p.Hits}
}

// Sim 單線模擬：連續開 rounds 期並回傳統計結果與用時
func (s *Simulator) Sim(rounds int, showpb bool) (*stats.StatReport, time.Duration, error) {
	defer s.reset()
	if rounds < 1 {
		return nil, 0, errs.NewWarn("round must > 0")
	}
	r, err := s.newRecorder(0)
	if err != nil {
		return nil, 0, err
	}
	s.rBuf = append(s.rBuf, r)
	rng := s.rngs[0]

	bar := pb.StartNew(rounds)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for i := 0; i < rounds; i++ {
		r.Record(s.play(rng))
		bar.Increment()
	}
	used := time.Since(bar.StartTime())
	bar.Finish()
	return r.Done(s.Theory()), used, nil
}

// SimMP 平行執行 mp 個 worker，總計 rounds*mp 期，合併後回傳統計結果與用時
func (s *Simulator) SimMP(rounds int, mp int, showpb bool) (*stats.StatReport, time.Duration, error) {
	defer s.reset()
	if mp <= 0 {
		return nil, 0, errs.NewWarn("workers must > 0")
	}
	if rounds < 1 {
		return nil, 0, errs.NewWarn("round must > 0")
	}
	s.prepareRNG(mp)
	for len(s.rBuf) < mp {
		r, err := s.newRecorder(0)
		if err != nil {
			return nil, 0, err
		}
		s.rBuf = append(s.rBuf, r)
	}

	wg := new(sync.WaitGroup)
	wg.Add(mp)
	bar := pb.StartNew(rounds * mp)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for i := 0; i < mp; i++ {
		go func(i int) {
			defer wg.Done()
			rng := s.rngs[i]
			rec := s.rBuf[i]
			for range rounds {
				rec.Record(s.play(rng))
				bar.Increment()
			}
		}(i)
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	merged, err := recorder.Merge(s.rBuf)
	if err != nil {
		return nil, 0, err
	}
	return merged.Done(s.Theory()), used, nil
}

// SimPlayers 模擬 players 位玩家，每位帶 initBets 期的資金最多下注 rounds 期，
// 回傳整體報表與玩家體驗評估。
func (s *Simulator) SimPlayers(mp int, players int, initBets int, rounds int, showpb bool) (*stats.StatReport, *stats.EstimatorPlayers, time.Duration, error) {
	defer s.reset()
	if players < 1 || initBets < 1 || rounds < 1 || mp < 1 {
		return nil, nil, 0, errs.NewWarn("invalid param")
	}
	s.prepareRNG(mp)
	s.sBuf = make([]*stats.StatReport, players)
	for len(s.rBuf) < players {
		r, err := s.newRecorder(initBets)
		if err != nil {
			return nil, nil, 0, err
		}
		s.rBuf = append(s.rBuf, r)
	}

	jobs := make(chan *recorder.Recorder, 2048)
	wg := new(sync.WaitGroup)
	wg.Add(mp)
	bar := pb.StartNew(players)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for w := 0; w < mp; w++ {
		go func(rng core.RAND) {
			defer wg.Done()
			for j := range jobs {
				for range rounds {
					if j.RecordWithPlayer(s.play(rng)) {
						break
					}
				}
				bar.Increment()
			}
		}(s.rngs[w])
	}
	for _, j := range s.rBuf {
		jobs <- j
	}
	close(jobs)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	merged, err := recorder.Merge(s.rBuf)
	if err != nil {
		return nil, nil, 0, err
	}
	st := merged.Done(s.Theory())
	for i, r := range s.rBuf {
		s.sBuf[i] = r.Done(nil)
	}
	return st, stats.EstimatorPlayerExp(s.sBuf), used, nil
}

func (s *Simulator) prepareRNG(mp int) {
	for len(s.rngs) < mp {
		s.rngs = append(s.rngs, s.pf.New(s.seedmaker.next()))
	}
}

func (s *Simulator) reset() {
	s.rBuf = s.rBuf[:0]
	s.sBuf = s.sBuf[:0]
}

// Charged 每期扣款金額
func (s *Simulator) Charged() decimal.Decimal {
	return s.quote.Charged
}

const mask63 = uint64(1<<63) - 1

type seedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func newSeedMaker(seed int64) *seedMaker {
	s := &seedMaker{}
	s.state.Store(uint64(seed) & mask63)
	return s
}

// next 以全週期 LCG 推進 state 再用可逆 mix63 打散。
//
// 可能被多個 goroutine 同時呼叫，state 以 CAS 迴圈原子推進。
func (s *seedMaker) next() int64 {
	for {
		old := s.state.Load()
		next := (old*6364136223846793005 + 1442695040888963407) & mask63 // full-period LCG mod 2^63
		if s.state.CompareAndSwap(old, next) {
			return int64(mix63(next))
		}
	}
}

// mix63：只用可逆的 bit 操作與乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
