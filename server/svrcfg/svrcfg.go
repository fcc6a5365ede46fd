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

// Package svrcfg 服務設定：由 flag 與環境變數（可來自 .env）組成，啟動前統一驗證。
package svrcfg

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/zintix-labs/casinolab"
	"github.com/zintix-labs/casinolab/auth"
	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/server/logger"
)

const (
	EnvAddr        = "CASINOLAB_ADDR"
	EnvAuthWebhook = "CASINOLAB_AUTH_WEBHOOK"
	EnvSessionTTL  = "CASINOLAB_SESSION_TTL"
	EnvSessionCap  = "CASINOLAB_SESSION_CAP"
	EnvLogMode     = "CASINOLAB_LOG_MODE"
	EnvPoolSize    = "CASINOLAB_POOL_SIZE"
	EnvCORSOrigins = "CASINOLAB_CORS_ORIGINS"
)

// SvrCfg 組裝服務所需的一切依賴
type SvrCfg struct {
	Log            *slog.Logger
	Addr           string
	PoolSize       int           // 每款老虎機的機台數，1..16
	SessionTTL     time.Duration // 閒置逾時
	SessionCap     int           // 最多保存的 session 數
	RequestTimeout time.Duration
	CORSOrigins    []string // 空值不啟用 CORS
	Lab            *casinolab.Lab
	Auth           auth.Authenticator
}

// Valid 補預設值並檢查必要依賴
func (sc *SvrCfg) Valid() error {
	if sc.Log == nil {
		sc.Log = logger.NewDefaultLogger(logger.ModeSilence)
	} else if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
		return errs.NewFatal("async log handler is not ready")
	}
	if sc.Lab == nil {
		return errs.NewFatal("lab is required")
	}
	if sc.Auth == nil {
		return errs.NewFatal("authenticator is required")
	}
	if sc.Addr == "" {
		sc.Addr = ":5808"
	}
	sc.PoolSize = min(16, max(1, sc.PoolSize))
	if sc.SessionTTL <= 0 {
		sc.SessionTTL = 30 * time.Minute
	}
	if sc.SessionCap <= 0 {
		sc.SessionCap = 10000
	}
	if sc.RequestTimeout <= 0 {
		sc.RequestTimeout = 5 * time.Second
	}
	return nil
}

// Env 由環境變數取得的設定；未設定的欄位保持零值，由 flag 或 Valid 補預設
type Env struct {
	Addr        string
	AuthWebhook string
	SessionTTL  time.Duration
	SessionCap  int
	LogMode     logger.LogMode
	PoolSize    int
	CORSOrigins []string // 逗號分隔
}

// LoadEnv 讀取 .env 檔（不存在則略過）後再疊上行程環境變數，行程環境變數優先。
// 不會修改行程本身的環境變數。
func LoadEnv(files ...string) (Env, error) {
	vals := map[string]string{}
	for _, f := range files {
		m, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Env{}, errs.Wrapf(err, "read env file %s", f)
		}
		for k, v := range m {
			vals[k] = v
		}
	}
	return ParseEnv(func(k string) (string, bool) {
		if v, ok := os.LookupEnv(k); ok {
			return v, true
		}
		v, ok := vals[k]
		return v, ok
	})
}

// ParseEnv 以 lookup 解析設定，格式錯誤回傳 Fatal
func ParseEnv(lookup func(string) (string, bool)) (Env, error) {
	var e Env
	var err error
	if v, ok := lookup(EnvAddr); ok {
		e.Addr = v
	}
	if v, ok := lookup(EnvAuthWebhook); ok {
		e.AuthWebhook = v
	}
	if v, ok := lookup(EnvSessionTTL); ok && v != "" {
		if e.SessionTTL, err = time.ParseDuration(v); err != nil {
			return Env{}, errs.Wrapf(err, "parse %s", EnvSessionTTL)
		}
	}
	if v, ok := lookup(EnvSessionCap); ok && v != "" {
		if e.SessionCap, err = strconv.Atoi(v); err != nil {
			return Env{}, errs.Wrapf(err, "parse %s", EnvSessionCap)
		}
	}
	if v, ok := lookup(EnvPoolSize); ok && v != "" {
		if e.PoolSize, err = strconv.Atoi(v); err != nil {
			return Env{}, errs.Wrapf(err, "parse %s", EnvPoolSize)
		}
	}
	if v, ok := lookup(EnvCORSOrigins); ok {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				e.CORSOrigins = append(e.CORSOrigins, o)
			}
		}
	}
	if v, ok := lookup(EnvLogMode); ok {
		if e.LogMode, err = logger.ParseMode(v); err != nil {
			return Env{}, err
		}
	}
	return e, nil
}
