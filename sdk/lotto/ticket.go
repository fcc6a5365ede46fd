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

package lotto

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/spec"
)

var (
	ErrTicketSize      = errs.NewWarn("ticket has wrong number count")
	ErrNumberRange     = errs.NewWarn("ticket number out of range")
	ErrDuplicateNumber = errs.NewWarn("ticket numbers must be distinct")
)

// Ticket 一張已購買的彩券，建立後不可變
type Ticket struct {
	ID          string    `json:"id"`
	GameID      spec.GID  `json:"game_id"`
	Numbers     []int     `json:"numbers"`
	Stake       int       `json:"stake"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// NewTicket 驗證號碼後建立彩券；號碼會複製並排序
func NewTicket(numbers []int, stake int, now time.Time, ls *spec.LotterySetting) (Ticket, error) {
	if err := ValidateNumbers(numbers, ls); err != nil {
		return Ticket{}, err
	}
	nums := slices.Clone(numbers)
	slices.Sort(nums)
	return Ticket{
		ID:          "ticket_" + uuid.NewString(),
		Numbers:     nums,
		Stake:       stake,
		PurchasedAt: now,
	}, nil
}

// ValidateNumbers 檢查號碼數量、範圍與是否重複
func ValidateNumbers(numbers []int, ls *spec.LotterySetting) error {
	if len(numbers) != ls.Pick {
		return errs.Wrap(ErrTicketSize, fmt.Sprintf("want %d numbers, got %d", ls.Pick, len(numbers)))
	}
	seen := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		if n < 1 || n > ls.MaxNumber {
			return errs.Wrap(ErrNumberRange, fmt.Sprintf("%d not in 1..%d", n, ls.MaxNumber))
		}
		if _, dup := seen[n]; dup {
			return errs.Wrap(ErrDuplicateNumber, fmt.Sprintf("%d repeated", n))
		}
		seen[n] = struct{}{}
	}
	return nil
}
