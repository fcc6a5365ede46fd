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

package casinolab

import (
	"sync/atomic"

	"github.com/zintix-labs/casinolab/sdk/core"
)

// seedMaker 由 base seed 依序派生子 seed，可被多個 goroutine 同時呼叫。
//
// 序號以原子遞增取得，每次呼叫拿到唯一序號；同一個 base seed 的第 n 次呼叫結果固定。
type seedMaker struct {
	base int64
	n    atomic.Int64
}

func newSeedMaker(seed int64) *seedMaker {
	return &seedMaker{base: seed}
}

func (s *seedMaker) next() int64 {
	return core.DeriveSeed(s.base, int(s.n.Add(1)))
}
