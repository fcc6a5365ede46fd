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

package api

import (
	"net/http"

	v1 "github.com/zintix-labs/casinolab/server/api/v1"
	"github.com/zintix-labs/casinolab/server/metrics"
	"github.com/zintix-labs/casinolab/server/netsvr"
	"github.com/zintix-labs/casinolab/server/netsvr/middleware"
	"github.com/zintix-labs/casinolab/server/svrcfg"
)

// RegisterRoutes 註冊 middleware、健康檢查、指標與 v1 api
func RegisterRoutes(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg, m *metrics.Metrics, h *v1.Handler) {
	registerMiddleware(svr, sCfg, m) // 1. 註冊 middleware
	registerOps(svr, m)              // 2. 健康檢查與指標
	registerV1API(svr, h)            // 3. 註冊 v1 api
}

// 註冊 middleware；Compression 放最內層，指標與 log 看到的是壓縮前的狀態碼
func registerMiddleware(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg, m *metrics.Metrics) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(sCfg.Log))
	svr.Use(middleware.Recover(sCfg.Log))
	if len(sCfg.CORSOrigins) > 0 {
		svr.Use(middleware.CORS(sCfg.CORSOrigins))
	}
	if m != nil {
		svr.Use(m.Middleware)
	}
	svr.Use(middleware.Compression)
}

func registerOps(svr netsvr.NetRouter, m *metrics.Metrics) {
	svr.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if m != nil {
		svr.Handle("/metrics", m.Handler())
	}
}

// 註冊 v1 api
func registerV1API(svr netsvr.NetRouter, h *v1.Handler) {
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Post("/login", h.Login)

		vOne.Get("/session", h.GetSession)
		vOne.Patch("/session", h.PatchSession)
		vOne.Delete("/session", h.Logout)

		vOne.Get("/games", h.Games)
		vOne.Post("/slots/{gid}/spin", h.Spin)
		vOne.Post("/lottery/{gid}/tickets", h.BuyTicket)
		vOne.Post("/lottery/{gid}/draw", h.Draw)
		vOne.Get("/stats", h.Stats)

		vOne.Post("/sim", h.Sim)
	})
}
