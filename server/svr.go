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

// Package server 把 Lab、session、驗證、指標與路由組裝成可執行的 HTTP 服務。
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/zintix-labs/casinolab"
	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/server/api"
	v1 "github.com/zintix-labs/casinolab/server/api/v1"
	"github.com/zintix-labs/casinolab/server/app"
	"github.com/zintix-labs/casinolab/server/metrics"
	"github.com/zintix-labs/casinolab/server/netsvr"
	"github.com/zintix-labs/casinolab/server/svrcfg"
	"github.com/zintix-labs/casinolab/session"
)

// Server 已組裝完成的服務
//
// 注意：
//   - New 只組裝，不監聽；測試可以直接拿 Handler() 接 httptest。
//   - Run 會阻塞到收到信號，結束時關閉 Casino runtime。
type Server struct {
	cfg     *svrcfg.SvrCfg
	svr     *netsvr.ChiAdapter
	casino  *casinolab.Casino
	store   *session.Store
	metrics *metrics.Metrics
}

// New 驗證設定並組裝服務
func New(sCfg *svrcfg.SvrCfg) (*Server, error) {
	if sCfg == nil {
		return nil, errs.NewFatal("server config is required")
	}
	if err := sCfg.Valid(); err != nil {
		return nil, err
	}
	casino, err := sCfg.Lab.Run(sCfg.PoolSize)
	if err != nil {
		return nil, errs.Wrap(err, "build casino runtime")
	}
	store, err := session.NewStore(sCfg.SessionCap, sCfg.SessionTTL)
	if err != nil {
		casino.Close()
		return nil, err
	}
	m := metrics.New(store.Len)
	if err := m.Register(metrics.NewPoolCollector(casino.Metrics)); err != nil {
		casino.Close()
		return nil, errs.Wrap(err, "register pool collector")
	}
	h, err := v1.NewHandler(v1.Deps{
		Casino:  casino,
		Store:   store,
		Auth:    sCfg.Auth,
		Log:     sCfg.Log,
		Metrics: m,
		Timeout: sCfg.RequestTimeout,
		Now:     time.Now,
	})
	if err != nil {
		casino.Close()
		return nil, err
	}

	svr := netsvr.NewChiServer(sCfg.Addr)
	api.RegisterRoutes(svr, sCfg, m, h)
	return &Server{cfg: sCfg, svr: svr, casino: casino, store: store, metrics: m}, nil
}

// Handler 完整的路由（含 middleware）
func (s *Server) Handler() http.Handler { return s.svr.Handler() }

// Casino runtime
func (s *Server) Casino() *casinolab.Casino { return s.casino }

// Store session 儲存
func (s *Server) Store() *session.Store { return s.store }

// Address 監聽位址
func (s *Server) Address() string { return s.svr.Address() }

// Run 啟動並阻塞到收到 SIGINT/SIGTERM
func (s *Server) Run() error {
	a := app.NewWith(s.cfg.Log, s.svr)
	a.OnStop(s.casino.Close)
	s.cfg.Log.Info("[casinolab] listening", slog.String("addr", s.svr.Address()))
	if err := a.Run(); err != nil {
		s.cfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	return nil
}
