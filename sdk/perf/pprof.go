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

// Package perf 以 pprof 包住一段執行，給模擬器做效能分析或 PGO。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/casinolab/errs"
)

// DefaultDir pprof 檔案寫入路徑
const DefaultDir = "build/profiling"

// Mode 分析種類
const (
	ModeNone   = ""
	ModeCPU    = "cpu"
	ModeHeap   = "heap"
	ModeAllocs = "allocs"
)

// Run 依 mode 執行 exe 並把 profile 寫到 dir/<mode>.pprof。
//
//   - cpu : exe 執行期間的 CPU profile
//   - heap : exe 結束後 GC 一次再拍 in-use 快照
//   - allocs : exe 結束後的累積配置
//
// exe 的錯誤優先回傳。
func Run(dir, mode string, exe func() error) error {
	switch mode {
	case ModeNone:
		return exe()
	case ModeCPU, ModeHeap, ModeAllocs:
	default:
		return errs.Warnf("unknown pprof mode %q", mode)
	}
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrap(err, "create profiling dir")
	}
	f, err := os.Create(filepath.Join(dir, mode+".pprof"))
	if err != nil {
		return errs.Wrapf(err, "create %s.pprof", mode)
	}
	defer f.Close()

	if mode == ModeCPU {
		if err := pprof.StartCPUProfile(f); err != nil {
			return errs.Wrap(err, "start cpu profile")
		}
		err := exe()
		pprof.StopCPUProfile()
		return err
	}

	if err := exe(); err != nil {
		return err
	}
	if mode == ModeHeap {
		// 讓快照貼近最新的存活物件
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return errs.Wrap(err, "write heap profile")
		}
		return nil
	}
	if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
		return errs.Wrap(err, "write allocs profile")
	}
	return nil
}
