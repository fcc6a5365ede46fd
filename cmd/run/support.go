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
	"context"
	"flag"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/zintix-labs/casinolab"
	"github.com/zintix-labs/casinolab/demo/demo_configs"
	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/sdk/core"
	"github.com/zintix-labs/casinolab/sdk/perf"
	"github.com/zintix-labs/casinolab/spec"
	"github.com/zintix-labs/casinolab/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type config struct {
	id        spec.GID
	stake     int
	rounds    int
	worker    int
	seed      int64
	format    string
	configDir string
	pprofmode string
	quiet     bool
}

type gidFlag struct{ p *spec.GID }

func (f gidFlag) String() string {
	if f.p == nil {
		return "0"
	}
	return strconv.FormatUint(uint64(*f.p), 10)
}

func (f gidFlag) Set(s string) error {
	u, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return err
	}
	*f.p = spec.GID(u)
	return nil
}

func bindVar() *config {
	cfg := &config{id: 1}
	flag.Var(gidFlag{&cfg.id}, "game", "target game id")
	flag.IntVar(&cfg.stake, "stake", 0, "stake per round (0: first bet option)")
	flag.IntVar(&cfg.rounds, "rounds", 1000000, "rounds per worker")
	flag.IntVar(&cfg.worker, "worker", 1, "number of workers")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed (<1: random)")
	flag.StringVar(&cfg.format, "format", "", "report format: '' (table), json, yaml")
	flag.StringVar(&cfg.configDir, "configs", "", "extra game config dir")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")
	flag.BoolVar(&cfg.quiet, "q", false, "hide progress bar")
	flag.Parse()
	return cfg
}

func (cfg *config) valid() error {
	if cfg.worker < 1 {
		return errs.NewWarn("worker must > 0")
	}
	if cfg.rounds < 1 {
		return errs.NewWarn("rounds must > 0")
	}
	if cfg.format != "" {
		if _, ok := stats.RenderByName(cfg.format); !ok {
			return errs.Warnf("unknown format %q", cfg.format)
		}
	}
	if cfg.seed < 1 {
		cfg.seed = core.NewSeed()
	}
	return nil
}

func (cfg *config) configs() []fs.FS {
	if cfg.configDir == "" {
		return casinolab.Configs(demo_configs.FS)
	}
	return casinolab.Configs(demo_configs.FS, os.DirFS(cfg.configDir))
}

// execute 建立模擬器並輸出報表
func (cfg *config) execute(ctx context.Context, out io.Writer) error {
	if err := cfg.valid(); err != nil {
		return err
	}
	lab, err := casinolab.NewWithSeed(core.Default(), cfg.configs(), cfg.seed)
	if err != nil {
		return err
	}
	sim, err := lab.NewSimulatorWithSeed(cfg.id, cfg.seed)
	if err != nil {
		return err
	}
	gs, _ := lab.Catalog().GameSettingById(cfg.id)
	if cfg.stake == 0 {
		cfg.stake = gs.BetOptions[0]
	}
	if !cfg.quiet {
		sim.Progress = os.Stderr
	}

	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)
	if cfg.format == "" {
		p.Fprintf(out, "%s[GAME:%s] [KIND:%s] [STAKE:%d] [WORKERS:%d] [ROUNDS:%d] [SEED:%d]%s\n",
			green, gs.GameName, gs.Kind, cfg.stake, cfg.worker, cfg.worker*cfg.rounds, cfg.seed, reset)
	}

	var (
		rep  *stats.SimReport
		used time.Duration
	)
	err = perf.Run(perf.DefaultDir, cfg.pprofmode, func() error {
		var err error
		rep, used, err = sim.Run(ctx, cfg.rounds, cfg.stake, cfg.worker)
		return err
	})
	if err != nil {
		return err
	}
	if cfg.format == "" {
		rep.StdOut(out, used)
		return nil
	}
	r, _ := stats.RenderByName(cfg.format)
	return rep.WriteWith(out, r)
}
