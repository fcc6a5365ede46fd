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

package spec

import (
	"fmt"

	"github.com/zintix-labs/casinolab/errs"
)

// GID 遊戲編號
type GID uint

// GameKind 遊戲類型
type GameKind string

const (
	KindSlot    GameKind = "slot"
	KindLottery GameKind = "lottery"
)

// GameSetting 包含啟動一台機台（或一個彩券櫃台）所需的所有高階設定。
// Slot 與 Lottery 依 Kind 擇一填寫。
type GameSetting struct {
	GameName   string          `yaml:"game_name"    json:"game_name"`
	GameID     GID             `yaml:"game_id"      json:"game_id"`
	Kind       GameKind        `yaml:"kind"         json:"kind"`
	BetOptions []int           `yaml:"bet_options"  json:"bet_options"`
	Slot       *SlotSetting    `yaml:"slot"         json:"slot,omitempty"`
	Lottery    *LotterySetting `yaml:"lottery"      json:"lottery,omitempty"`
}

// init 初始化子設定後執行檢查
func (gs *GameSetting) init() error {
	switch gs.Kind {
	case KindSlot:
		if gs.Slot == nil {
			return gs.fatal("kind is slot but slot section is missing")
		}
		if err := gs.Slot.Init(); err != nil {
			return errs.Wrapf(err, "game_name: %s slot setting", gs.GameName)
		}
	case KindLottery:
		if gs.Lottery == nil {
			return gs.fatal("kind is lottery but lottery section is missing")
		}
		if err := gs.Lottery.Init(); err != nil {
			return errs.Wrapf(err, "game_name: %s lottery setting", gs.GameName)
		}
		// 彩券只有單一票價
		if len(gs.BetOptions) == 0 {
			gs.BetOptions = []int{gs.Lottery.TicketPrice}
		}
	default:
		return gs.fatal(fmt.Sprintf("unknown kind %q", gs.Kind))
	}
	return gs.valid()
}

// valid 執行最基本的設定檔檢查
func (gs *GameSetting) valid() error {
	if gs.GameName == "" {
		return errs.NewFatal("game_name is required")
	}
	if len(gs.BetOptions) == 0 {
		return gs.fatal("empty bet_options")
	}
	for _, b := range gs.BetOptions {
		if b < 1 {
			return gs.fatal(fmt.Sprintf("invalid bet option %d", b))
		}
	}
	return nil
}

// AllowBet 回傳 stake 是否為設定中的下注選項
func (gs *GameSetting) AllowBet(stake int) bool {
	for _, b := range gs.BetOptions {
		if b == stake {
			return true
		}
	}
	return false
}

func (gs *GameSetting) fatal(msg string) error {
	return errs.NewFatal(fmt.Sprintf("game_name: %s err:%s", gs.GameName, msg))
}
