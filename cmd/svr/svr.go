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
	"fmt"
	"os"

	"github.com/zintix-labs/casinolab"
	"github.com/zintix-labs/casinolab/auth"
	"github.com/zintix-labs/casinolab/demo"
	"github.com/zintix-labs/casinolab/demo/demo_configs"
	"github.com/zintix-labs/casinolab/sdk/core"
	"github.com/zintix-labs/casinolab/server"
	"github.com/zintix-labs/casinolab/server/logger"
	"github.com/zintix-labs/casinolab/server/svrcfg"
)

// 設定來源優先序：flag > 行程環境變數 > .env > 預設值。
// 沒有設定 CASINOLAB_AUTH_WEBHOOK 時使用示範帳號（demo/demo、guest/guest）。
func main() {
	sCfg, closeLog, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	svr, err := server.New(sCfg)
	if err != nil {
		sCfg.Log.Error("build server", "err", err)
		return
	}
	_ = svr.Run()
}

type config struct {
	EnvFile   string
	Addr      string
	LogMode   string
	PoolSize  int
	ConfigDir string
}

// parseFlags 解析 flag，回傳有明確設定的 flag 名稱
func parseFlags(args []string) (*config, map[string]bool, error) {
	cfg := new(config)
	fset := flag.NewFlagSet("svr", flag.ContinueOnError)
	fset.StringVar(&cfg.EnvFile, "env", ".env", "dotenv file")
	fset.StringVar(&cfg.Addr, "addr", "", "listen address (default :5808)")
	fset.StringVar(&cfg.LogMode, "log-mode", "dev", "log mode: dev|prod|silence")
	fset.IntVar(&cfg.PoolSize, "pool", 3, "machines per slot game (1..16)")
	fset.StringVar(&cfg.ConfigDir, "configs", "", "extra game config dir")
	if err := fset.Parse(args); err != nil {
		return nil, nil, err
	}
	set := map[string]bool{}
	fset.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return cfg, set, nil
}

func loadConfig(args []string) (*svrcfg.SvrCfg, func(), error) {
	cfg, set, err := parseFlags(args)
	if err != nil {
		return nil, nil, err
	}
	env, err := svrcfg.LoadEnv(cfg.EnvFile)
	if err != nil {
		return nil, nil, err
	}
	mode := env.LogMode
	if set["log-mode"] {
		if mode, err = logger.ParseMode(cfg.LogMode); err != nil {
			return nil, nil, err
		}
	}
	if !set["addr"] && env.Addr != "" {
		cfg.Addr = env.Addr
	}
	if !set["pool"] && env.PoolSize > 0 {
		cfg.PoolSize = env.PoolSize
	}
	log, ah := logger.NewAsync(4096, mode)

	cfgs := casinolab.Configs(demo_configs.FS)
	if cfg.ConfigDir != "" {
		cfgs = casinolab.Configs(demo_configs.FS, os.DirFS(cfg.ConfigDir))
	}
	lab, err := casinolab.New(core.Default(), cfgs)
	if err != nil {
		ah.Close()
		return nil, nil, err
	}

	var a auth.Authenticator = demo.Users()
	if env.AuthWebhook != "" {
		wh, err := auth.NewWebhook(env.AuthWebhook)
		if err != nil {
			ah.Close()
			return nil, nil, err
		}
		a = wh
		log.Info("auth webhook enabled", "url", env.AuthWebhook)
	} else {
		log.Warn("auth webhook not set, using demo accounts")
	}

	return &svrcfg.SvrCfg{
		Log:         log,
		Addr:        cfg.Addr,
		PoolSize:    cfg.PoolSize,
		SessionTTL:  env.SessionTTL,
		SessionCap:  env.SessionCap,
		CORSOrigins: env.CORSOrigins,
		Lab:         lab,
		Auth:        a,
	}, ah.Close, nil
}
