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

// Package app 應用程式生命週期：同時啟動多個 Component，收到信號或任一元件結束時統一收尾。
package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zintix-labs/casinolab/errs"
)

const defaultShutdownTimeout = 5 * time.Second

// App 生命週期管理器
type App struct {
	comps   []Component
	onStop  []func()
	log     *slog.Logger
	timeout time.Duration
}

// New 建立 App；log 為 nil 時使用 slog.Default
func New(log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	return &App{log: log, timeout: defaultShutdownTimeout}
}

// NewWith 建立 App 並註冊元件
func NewWith(log *slog.Logger, comps ...Component) *App {
	a := New(log)
	for _, c := range comps {
		a.Register(c)
	}
	return a
}

// Register 註冊元件
func (a *App) Register(c Component) { a.comps = append(a.comps, c) }

// OnStop 所有元件 Shutdown 之後依註冊的反序執行（關閉 runtime、寫完 log 等）
func (a *App) OnStop(fn func()) { a.onStop = append(a.onStop, fn) }

// SetShutdownTimeout 設定優雅關閉期限
func (a *App) SetShutdownTimeout(d time.Duration) {
	if d > 0 {
		a.timeout = d
	}
}

// Run 阻塞直到收到 SIGINT/SIGTERM 或任一元件結束
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext 阻塞直到 ctx 結束或任一元件結束。
// ctx 結束視為正常關閉回傳 nil；元件先結束時回傳其錯誤（可能為 nil）。
func (a *App) RunContext(ctx context.Context) error {
	if len(a.comps) == 0 {
		return errs.NewFatal("app: no component registered")
	}
	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) {
			errCh <- c.Run()
		}(c)
	}

	var err error
	select {
	case <-ctx.Done():
		a.log.Info("app: shutdown requested")
	case err = <-errCh:
		if err != nil {
			a.log.Error("app: component stopped", slog.Any("err", err))
		}
	}
	a.shutdown()
	return err
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	for _, c := range a.comps {
		if err := c.Shutdown(ctx); err != nil {
			a.log.Warn("app: shutdown", slog.Any("err", err))
		}
	}
	for i := len(a.onStop) - 1; i >= 0; i-- {
		a.onStop[i]()
	}
}
