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
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/sdk/buf"
	"github.com/zintix-labs/casinolab/sdk/lotto"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	st, err := NewStore(16, ttl)
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestNewStoreInvalid(t *testing.T) {
	if _, err := NewStore(0, time.Minute); errs.LevelOf(err) != errs.Fatal {
		t.Fatalf("zero size should be fatal")
	}
	if _, err := NewStore(1, 0); errs.LevelOf(err) != errs.Fatal {
		t.Fatalf("zero ttl should be fatal")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := newTestStore(t, time.Minute)
	ctx := context.Background()
	s := New(User{Name: "amy", ID: "7"}, 1000, time.Unix(100, 0))
	s.Tickets = append(s.Tickets, lotto.Ticket{ID: "ticket_x", Numbers: []int{1, 2, 3, 4, 5, 6}, Stake: 50})
	if err := st.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	got, err := st.Load(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.User != s.User || got.Balance != 1000 || len(got.Tickets) != 1 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	got.Tickets[0].Stake = 999
	again, _ := st.Load(ctx, s.ID)
	if again.Tickets[0].Stake != 50 {
		t.Fatalf("loaded copy must not alias stored session")
	}
}

func TestLoadMissingAndDelete(t *testing.T) {
	st := newTestStore(t, time.Minute)
	ctx := context.Background()
	if _, err := st.Load(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	s := New(User{Name: "a"}, 1, time.Now())
	_ = st.Save(ctx, s)
	if err := st.Delete(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound")
	}
}

func TestExpiry(t *testing.T) {
	st := newTestStore(t, 20*time.Millisecond)
	ctx := context.Background()
	s := New(User{Name: "a"}, 1, time.Now())
	_ = st.Save(ctx, s)
	time.Sleep(80 * time.Millisecond)
	if _, err := st.Load(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired session should be gone, got %v", err)
	}
}

func TestMergePrecedence(t *testing.T) {
	base := New(User{Name: "amy", ID: "1"}, 100, time.Now())
	name := "bella"
	bal := 250
	out := Merge(base, Patch{Name: &name, Balance: &bal})
	if out.User.Name != "bella" || out.User.ID != "1" || out.Balance != 250 {
		t.Fatalf("unexpected merge %+v", out.User)
	}
	if base.User.Name != "amy" || base.Balance != 100 {
		t.Fatalf("merge must not modify base")
	}
	same := Merge(base, Patch{})
	if same.User != base.User || same.Balance != base.Balance || same.ID != base.ID {
		t.Fatalf("empty patch should keep base")
	}
}

func TestUpdateRollsBackOnError(t *testing.T) {
	st := newTestStore(t, time.Minute)
	ctx := context.Background()
	s := New(User{Name: "a"}, 5, time.Now())
	_ = st.Save(ctx, s)
	_, err := st.Update(ctx, s.ID, func(s *Session) error {
		return s.Debit(10)
	})
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
	got, _ := st.Load(ctx, s.ID)
	if got.Balance != 5 {
		t.Fatalf("failed update must not be saved")
	}
}

func TestUpdateSerializesPerSession(t *testing.T) {
	st := newTestStore(t, time.Minute)
	ctx := context.Background()
	s := New(User{Name: "a"}, 10000, time.Now())
	_ = st.Save(ctx, s)
	wg := new(sync.WaitGroup)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = st.Update(ctx, s.ID, func(s *Session) error {
				return s.Debit(1)
			})
		}()
	}
	wg.Wait()
	got, _ := st.Load(ctx, s.ID)
	if got.Balance != 9900 {
		t.Fatalf("lost update: balance %d", got.Balance)
	}
}

func TestApplySpinAndSettle(t *testing.T) {
	now := time.Now()
	s := New(User{Name: "a"}, 100, now)
	if err := s.Debit(10); err != nil {
		t.Fatal(err)
	}
	s.ApplySpin(&buf.SpinResult{GameID: 1, Stake: 10, TotalPayout: 30, JackpotContribution: 200}, 5000, now)
	if s.Balance != 120 || s.Slots.Wins != 1 || s.Jackpots[1] != 5200 {
		t.Fatalf("unexpected after spin: balance %d jackpot %d", s.Balance, s.Jackpots[1])
	}
	s.AddTicket(lotto.Ticket{ID: "t1", Stake: 50}, now)
	s.SettleDraw(lotto.DrawResult{WinningNumbers: []int{1, 2, 3, 4, 5, 6}}, []lotto.TicketResult{{TicketID: "t1", Stake: 50, Payout: 0}}, now)
	if len(s.Tickets) != 0 || s.Lottery.Losses != 1 || s.LastDraw == nil {
		t.Fatalf("settle should clear tickets and record the loss")
	}
	s.AddTicket(lotto.Ticket{ID: "t2", GameID: 3, Stake: 50}, now)
	s.AddTicket(lotto.Ticket{ID: "t3", GameID: 4, Stake: 50}, now)
	if got := s.PendingTickets(3); len(got) != 1 || got[0].ID != "t2" {
		t.Fatalf("unexpected pending tickets %+v", got)
	}
	s.SettleDraw(lotto.DrawResult{}, []lotto.TicketResult{{TicketID: "t2", Stake: 50}}, now)
	if len(s.Tickets) != 1 || s.Tickets[0].ID != "t3" {
		t.Fatalf("settle should keep unscored tickets, got %+v", s.Tickets)
	}
	if err := s.Debit(0); !errors.Is(err, ErrInvalidStake) {
		t.Fatalf("zero stake should be rejected")
	}
}
