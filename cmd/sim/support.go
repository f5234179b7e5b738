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

package main

import (
	"flag"
	"os"

	"github.com/zintix-labs/dioloto"
	"github.com/zintix-labs/dioloto/bet"
	"github.com/zintix-labs/dioloto/configs"
	"github.com/zintix-labs/dioloto/coupon"
	"github.com/zintix-labs/dioloto/dto"
	"github.com/zintix-labs/dioloto/errs"
	"github.com/zintix-labs/dioloto/sdk/core"
	"github.com/zintix-labs/dioloto/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *config = new(config)

type config struct {
	game      string
	betType   string
	formula   string
	balls     int
	numbers   string
	stake     string
	prises    string
	auto      bool
	worker    int
	player    int
	bets      int
	rounds    int
	seed      int64
	out       string
	pprofmode string
}

func bindVar() {
	flag.StringVar(&cfg.game, "game", "togo9", "game code, e.g. togo9, ghana20")
	flag.StringVar(&cfg.betType, "bet", "FirstouonBK", "bet type: FirstouonBK|NAP|Twosurs|Permutations|DoubleNumber|Annagrammesimple")
	flag.StringVar(&cfg.formula, "formula", "Directe", "formula, e.g. Directe, Position1, NAP3, Turbo2DoubleChance")
	flag.IntVar(&cfg.balls, "balls", 0, "ball count for NAP / Permutations")
	flag.StringVar(&cfg.numbers, "numbers", "", "played numbers, e.g. 5-17")
	flag.StringVar(&cfg.stake, "stake", "", "stake for direct shapes")
	flag.StringVar(&cfg.prises, "prises", "", "prise count for prise shapes")
	flag.BoolVar(&cfg.auto, "auto", false, "auto-pick numbers with the seed")
	flag.IntVar(&cfg.worker, "worker", 1, "number of workers")
	flag.IntVar(&cfg.player, "player", 1, "number of players")
	flag.IntVar(&cfg.bets, "bets", 200, "initial balance in charged stakes")
	flag.IntVar(&cfg.rounds, "rounds", 1000000, "draws per worker (per player when -player > 1)")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed for random number generator")
	flag.StringVar(&cfg.out, "out", "table", "report format: table|json|yaml")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")

	flag.Parse()

	// 未給或不合法的 seed 改用隨機 seed
	if cfg.seed < 1 {
		cfg.seed = core.RandomSeed()
	}
}

// executeSimulator 依旗標組出投注單並分支到對應的模擬
func executeSimulator() error {
	if err := cfg.valid(); err != nil {
		return err
	}
	lab, err := dioloto.NewAuto(core.Default(), dioloto.Configs(configs.FS))
	if err != nil {
		return err
	}
	c, err := cfg.coupon(lab)
	if err != nil {
		return err
	}
	q, err := lab.Quote(c)
	if err != nil {
		return err
	}
	s, err := lab.NewSimulatorWithSeed(c, cfg.seed)
	if err != nil {
		return err
	}
	render := stats.RenderByName(cfg.out)
	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)
	p.Printf("%s[GAME:%s] [COUPON:%s] [GAINS:%s] [CHARGED:%s] [SEED:%d]%s\n",
		green, c.Game, s.Label(), coupon.Display(q.Gains), q.Charged.StringFixed(2), cfg.seed, reset)

	if cfg.player == 1 {
		p.Printf("%s[WORKERS:%d] [DRAWS:%d]%s\n", green, cfg.worker, cfg.worker*cfg.rounds, reset)
		var st *stats.StatReport
		if cfg.worker == 1 {
			st, _, err = s.Sim(cfg.rounds, true)
		} else {
			st, _, err = s.SimMP(cfg.rounds, cfg.worker, true)
		}
		if err != nil {
			return err
		}
		return st.WriteWith(os.Stdout, render)
	}

	p.Printf("%s[WORKERS:%d] [PLAYERS:%d BALANCE:%d DRAWS:%d]%s\n", green, cfg.worker, cfg.player, cfg.bets, cfg.rounds, reset)
	st, est, _, err := s.SimPlayers(cfg.worker, cfg.player, cfg.bets, cfg.rounds, true)
	if err != nil {
		return err
	}
	if err := st.WriteWith(os.Stdout, render); err != nil {
		return err
	}
	return stats.EstimatorRenderByName(cfg.out).Write(os.Stdout, est)
}

func (cfg *config) coupon(lab *dioloto.Dioloto) (*coupon.Coupon, error) {
	req := &dto.CouponRequest{
		Game:    cfg.game,
		BetType: cfg.betType,
		Formula: cfg.formula,
		Balls:   cfg.balls,
		Stake:   cfg.stake,
		Prises:  cfg.prises,
	}
	nums, err := dto.ParseNumbers(cfg.numbers)
	if err != nil {
		return nil, err
	}
	req.Numbers = nums
	c, err := req.Coupon()
	if err != nil {
		return nil, err
	}
	if cfg.auto {
		opts, err := lab.Formulas(c.Game, c.BetType, c.Balls)
		if err != nil {
			return nil, err
		}
		if c.Numbers, err = lab.AutoPickWithSeed(c.BetType, opts.MinNumbers, c.Balls, cfg.seed); err != nil {
			return nil, err
		}
	}
	// 固定號碼的玩法直接帶入，不需要 -numbers
	if c.BetType == bet.DoubleNumber && len(c.Numbers) == 0 {
		c.Numbers = bet.AutoNumbers(nil, c.BetType, 0, 0)
	}
	return c, nil
}

func (cfg *config) valid() error {
	p := message.NewPrinter(language.English)

	if cfg.worker < 1 {
		return errs.NewWarn("value err : workers must > 0")
	}
	if cfg.player < 1 {
		return errs.NewWarn("value err : player must > 0")
	}
	if cfg.player > 100000 {
		p.Printf("too much players: %d resized to 100k players\n", cfg.player)
		cfg.player = 100000
	}
	if cfg.player > 1 && cfg.bets < 1 {
		return errs.NewWarn("value err : balance must >= 1")
	}
	if cfg.rounds < 1 {
		return errs.NewWarn("value err : rounds must > 0")
	}
	// 每天一期，一位玩家 3650 期已是十年，再長直接看整體模擬即可
	if cfg.player > 1 && cfg.rounds > 3650 {
		p.Printf("too much draws for each player : %d resized to 3,650 draws\n", cfg.rounds)
		cfg.rounds = 3650
	}
	if stats.RenderByName(cfg.out) == nil {
		return errs.NewWarn("value err : unknown output format").With(cfg.out)
	}
	return nil
}
