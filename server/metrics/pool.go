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

package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zintix-labs/casinolab"
)

// PoolCollector 在每次抓取時讀取機台池快照
type PoolCollector struct {
	src       func() []casinolab.MachinePoolMetrics
	available *prometheus.Desc
	inflight  *prometheus.Desc
	rebuild   *prometheus.Desc
	panics    *prometheus.Desc
	fatals    *prometheus.Desc
}

// NewPoolCollector 以 src 作為快照來源（通常是 Casino.Metrics）
func NewPoolCollector(src func() []casinolab.MachinePoolMetrics) *PoolCollector {
	labels := []string{"game", "game_id"}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "machine_pool", name), help, labels, nil)
	}
	return &PoolCollector{
		src:       src,
		available: desc("available", "Machines ready to borrow."),
		inflight:  desc("inflight", "Machines currently spinning."),
		rebuild:   desc("rebuild_total", "Machines rebuilt after a failure."),
		panics:    desc("panics_total", "Spins that panicked."),
		fatals:    desc("fatals_total", "Spins that returned a fatal error."),
	}
}

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.available
	ch <- c.inflight
	ch <- c.rebuild
	ch <- c.panics
	ch <- c.fatals
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	for _, m := range c.src() {
		lv := []string{m.GameName, strconv.FormatUint(uint64(m.GameID), 10)}
		ch <- prometheus.MustNewConstMetric(c.available, prometheus.GaugeValue, float64(m.Available), lv...)
		ch <- prometheus.MustNewConstMetric(c.inflight, prometheus.GaugeValue, float64(m.Inflight), lv...)
		ch <- prometheus.MustNewConstMetric(c.rebuild, prometheus.CounterValue, float64(m.Rebuild), lv...)
		ch <- prometheus.MustNewConstMetric(c.panics, prometheus.CounterValue, float64(m.Panics), lv...)
		ch <- prometheus.MustNewConstMetric(c.fatals, prometheus.CounterValue, float64(m.Fatals), lv...)
	}
}
