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

// SlotSetting 單一可設定的老虎機：圖標表、線表、倍數表、加成。
// 不同外觀（九線寶藏、三線經典）只是不同的設定檔。
type SlotSetting struct {
	ScreenSetting `yaml:",inline"`
	SymbolSetting `yaml:",inline"`
	LineSetting   `yaml:",inline"`
	PaySetting    `yaml:",inline"`
}

// Init 依序初始化各子設定
func (ss *SlotSetting) Init() error {
	if err := ss.ScreenSetting.Init(); err != nil {
		return err
	}
	if err := ss.SymbolSetting.Init(); err != nil {
		return err
	}
	if err := ss.LineSetting.Init(&ss.ScreenSetting); err != nil {
		return err
	}
	return ss.PaySetting.Init(&ss.ScreenSetting)
}
