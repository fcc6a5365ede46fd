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

package session

import (
	"context"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/zintix-labs/casinolab/errs"
)

const lockShards = 64

// Store 記憶體內的 Session 儲存，逾時或超過容量即淘汰。
//
// 同一個 id 的 Update 依 id 分片加鎖，同一玩家的遊玩會被序列化；不同玩家之間互不阻塞。
// Load 與 Save 都以深複製進出，呼叫端拿到的 Session 與 Store 內部不共用狀態。
type Store struct {
	lru   *expirable.LRU[string, Session]
	locks [lockShards]sync.Mutex
	ttl   time.Duration
}

// NewStore 建立 Store；size <= 0 或 ttl <= 0 時視為設定錯誤
func NewStore(size int, ttl time.Duration) (*Store, error) {
	if size <= 0 {
		return nil, errs.Fatalf("session store size must > 0, got %d", size)
	}
	if ttl <= 0 {
		return nil, errs.Fatalf("session ttl must > 0, got %s", ttl)
	}
	return &Store{
		lru: expirable.NewLRU[string, Session](size, nil, ttl),
		ttl: ttl,
	}, nil
}

// TTL 閒置逾時
func (st *Store) TTL() time.Duration { return st.ttl }

// Len 目前保存的 Session 數
func (st *Store) Len() int { return st.lru.Len() }

func (st *Store) lock(id string) *sync.Mutex {
	return &st.locks[xxhash.Sum64String(id)%lockShards]
}

// Load 取出 Session 複本；不存在或已逾時回傳 ErrNotFound
func (st *Store) Load(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, errs.WarnWrap(err, "session load")
	}
	s, ok := st.lru.Get(id)
	if !ok {
		return Session{}, errs.Wrapf(ErrNotFound, "id %s", id)
	}
	return s.Clone(), nil
}

// Save 寫入 Session 並重設逾時
func (st *Store) Save(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return errs.WarnWrap(err, "session save")
	}
	if s.ID == "" {
		return errs.NewFatal("session save: empty id")
	}
	st.lru.Add(s.ID, s.Clone())
	return nil
}

// Delete 移除 Session（登出）；不存在回傳 ErrNotFound
func (st *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return errs.WarnWrap(err, "session delete")
	}
	mu := st.lock(id)
	mu.Lock()
	defer mu.Unlock()
	if !st.lru.Remove(id) {
		return errs.Wrapf(ErrNotFound, "id %s", id)
	}
	return nil
}

// Update 在 id 的鎖內完成 Load → fn → Save。
//
// fn 回傳錯誤時不寫回，Store 內的 Session 維持原狀。
func (st *Store) Update(ctx context.Context, id string, fn func(*Session) error) (Session, error) {
	mu := st.lock(id)
	mu.Lock()
	defer mu.Unlock()

	s, err := st.Load(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if err := fn(&s); err != nil {
		return Session{}, err
	}
	if err := st.Save(ctx, s); err != nil {
		return Session{}, err
	}
	return s.Clone(), nil
}

// MergeSave 在 id 的鎖內以 patch 覆寫並寫回
func (st *Store) MergeSave(ctx context.Context, id string, p Patch) (Session, error) {
	return st.Update(ctx, id, func(s *Session) error {
		*s = Merge(*s, p)
		return nil
	})
}
