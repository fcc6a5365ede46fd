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

// Package metrics 服務端的 Prometheus 指標。
//
// 每個 Metrics 持有自己的 Registry，同一個 process 內可以建立多個服務（測試常見）而不互相衝突。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "casinolab"

var httpLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Metrics HTTP 與遊戲指標
type Metrics struct {
	reg *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	HTTPInFlight  prometheus.Gauge
	Plays         *prometheus.CounterVec // game, kind
	Staked        *prometheus.CounterVec
	Paid          *prometheus.CounterVec
	Draws         *prometheus.CounterVec
	Logins        *prometheus.CounterVec // result
	ActiveSession prometheus.GaugeFunc
}

// New 建立指標並註冊 Go runtime 與 process collector；sessions 回傳目前的 session 數
func New(sessions func() int) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	m := &Metrics{
		reg: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   httpLatencyBuckets,
		}, []string{"method", "route"}),
		HTTPInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests being served.",
		}),
		Plays: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plays_total",
			Help:      "Slot spins and lottery tickets settled.",
		}, []string{"game", "kind"}),
		Staked: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "staked_total",
			Help:      "Total stake accepted.",
		}, []string{"game", "kind"}),
		Paid: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "paid_total",
			Help:      "Total payout credited.",
		}, []string{"game", "kind"}),
		Draws: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lottery_draws_total",
			Help:      "Lottery draws run.",
		}, []string{"game"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
	}
	if sessions != nil {
		m.ActiveSession = f.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessions held in memory.",
		}, func() float64 { return float64(sessions()) })
	}
	return m
}

// Register 註冊額外的 collector（例如機台池）
func (m *Metrics) Register(c prometheus.Collector) error {
	return m.reg.Register(c)
}

// Registry 回傳底層 registry（測試用）
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ObservePlay 記一局
func (m *Metrics) ObservePlay(game, kind string, stake, payout int) {
	m.Plays.WithLabelValues(game, kind).Inc()
	m.Staked.WithLabelValues(game, kind).Add(float64(stake))
	m.Paid.WithLabelValues(game, kind).Add(float64(payout))
}

// Middleware 記錄請求數、延遲與進行中的請求。
// route 以 chi 的路由樣板為準（/v1/slots/{gid}/spin），避免 path 參數撐爆 label。
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.HTTPInFlight.Inc()
		defer m.HTTPInFlight.Dec()

		ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
