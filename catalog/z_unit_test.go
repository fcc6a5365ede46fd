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

package catalog

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/zintix-labs/casinolab/demo/demo_configs"
	"github.com/zintix-labs/casinolab/spec"
)

func TestDemoCatalog(t *testing.T) {
	c, err := New(demo_configs.FS)
	if err != nil {
		t.Fatalf("load demo configs: %v", err)
	}
	ids := c.IDs()
	if len(ids) != 3 || ids[0] != 1 || ids[2] != 3 {
		t.Fatalf("unexpected ids %v", ids)
	}
	gs, err := c.GameSettingById(1)
	if err != nil {
		t.Fatalf("get treasure: %v", err)
	}
	if gs.Kind != spec.KindSlot || len(gs.Slot.Lines) != 9 || gs.Slot.TotalWeight != 108 {
		t.Fatalf("unexpected treasure setting: kind=%s lines=%d weight=%d", gs.Kind, len(gs.Slot.Lines), gs.Slot.TotalWeight)
	}
	classic, err := c.GameSettingByName("Classic_Slots")
	if err != nil || len(classic.Slot.Lines) != 3 {
		t.Fatalf("unexpected classic: %v", err)
	}
	lotto, err := c.GameSettingById(3)
	if err != nil || lotto.Kind != spec.KindLottery {
		t.Fatalf("unexpected lottery: %v", err)
	}
	all := c.All()
	if len(all) != 3 || all[2].BetOptions[0] != 50 {
		t.Fatalf("unexpected summaries %+v", all)
	}
}

func TestCatalogNotFound(t *testing.T) {
	c, err := New(demo_configs.FS)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := c.GameSettingById(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogDuplicates(t *testing.T) {
	dupID := fstest.MapFS{
		"a.yaml": {Data: []byte("game_name: a\ngame_id: 1\nkind: lottery\nlottery: {ticket_price: 1, prize_table: {3: 1, 4: 2, 5: 3, 6: 4}}\n")},
		"b.yaml": {Data: []byte("game_name: b\ngame_id: 1\nkind: lottery\nlottery: {ticket_price: 1, prize_table: {3: 1, 4: 2, 5: 3, 6: 4}}\n")},
	}
	if _, err := New(dupID); !errors.Is(err, ErrDupID) {
		t.Fatalf("expected ErrDupID, got %v", err)
	}
	dupName := fstest.MapFS{
		"a.yaml": {Data: []byte("game_name: same\ngame_id: 1\nkind: lottery\nlottery: {ticket_price: 1, prize_table: {3: 1, 4: 2, 5: 3, 6: 4}}\n")},
		"b.json": {Data: []byte(`{"game_name":"SAME","game_id":2,"kind":"lottery","lottery":{"ticket_price":1,"prize_table":{"3":1,"4":2,"5":3,"6":4}}}`)},
	}
	if _, err := New(dupName); !errors.Is(err, ErrDupName) {
		t.Fatalf("expected ErrDupName, got %v", err)
	}
}

func TestCatalogRejects(t *testing.T) {
	nested := fstest.MapFS{"sub/a.yaml": {Data: []byte("x")}}
	if _, err := New(nested); err == nil {
		t.Fatalf("expected flat fs error")
	}
	bad := fstest.MapFS{"a.yaml": {Data: []byte("game_name: a\nkind: slot\nbet_options: [1]\n")}}
	if _, err := New(bad); err == nil {
		t.Fatalf("expected invalid config error")
	}
	empty := fstest.MapFS{"readme.txt": {Data: []byte("x")}}
	if _, err := New(empty); err == nil {
		t.Fatalf("expected no config error")
	}
	if _, err := New(); err == nil {
		t.Fatalf("expected no fs error")
	}
}
