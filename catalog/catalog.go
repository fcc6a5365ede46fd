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

// Package catalog 從一個或多個 fs.FS 載入所有遊戲設定並以遊戲編號索引。
//
// 所有設定在 New 時一次解析與檢查，任何一份不合法即整體失敗。
package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/spec"
)

var (
	ErrDupID    = errs.NewFatal("duplicate game id")
	ErrDupName  = errs.NewFatal("duplicate game name")
	ErrNotFound = errs.NewWarn("game does not exist in catalog")
)

// Summary 對外列出的遊戲資訊
type Summary struct {
	GID        spec.GID      `json:"gid"`
	Name       string        `json:"name"`
	Kind       spec.GameKind `json:"kind"`
	BetOptions []int         `json:"bet_options"`
	ConfigName string        `json:"-"`
}

type Catalog struct {
	byID   map[spec.GID]*spec.GameSetting
	byName map[string]spec.GID
	files  map[spec.GID]string
	ids    []spec.GID // 用來穩定排序
}

// New 掃描所有 fs 的 yaml/json 設定並載入
func New(cfg ...fs.FS) (*Catalog, error) {
	src, err := newMultiFS(cfg...)
	if err != nil {
		return nil, errs.Wrap(err, "can not create catalog")
	}
	c := &Catalog{
		byID:   map[spec.GID]*spec.GameSetting{},
		byName: map[string]spec.GID{},
		files:  map[spec.GID]string{},
	}
	names := make([]string, 0, len(src.index))
	for name := range src.index {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fsys, _ := src.GetFS(name)
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errs.Wrapf(err, "catalog read %s", name)
		}
		gs, err := parseGameSettingByExt(name, raw)
		if err != nil {
			return nil, errs.Wrapf(err, "catalog parse %s", name)
		}
		if err := c.register(name, gs); err != nil {
			return nil, errs.Wrapf(err, "catalog register %s", name)
		}
	}
	if len(c.ids) == 0 {
		return nil, errs.NewFatal("catalog: no game config found")
	}
	return c, nil
}

func (c *Catalog) register(file string, gs *spec.GameSetting) error {
	name := normName(gs.GameName)
	if _, ok := c.byID[gs.GameID]; ok {
		return ErrDupID
	}
	if _, ok := c.byName[name]; ok {
		return ErrDupName
	}
	c.byID[gs.GameID] = gs
	c.byName[name] = gs.GameID
	c.files[gs.GameID] = file
	c.ids = append(c.ids, gs.GameID)
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
	return nil
}

// GameSettingById 取得已初始化的設定（唯讀共用）
func (c *Catalog) GameSettingById(id spec.GID) (*spec.GameSetting, error) {
	gs, ok := c.byID[id]
	if !ok {
		return nil, errs.WarnWrap(ErrNotFound, fmt.Sprintf("gid=%d", id))
	}
	return gs, nil
}

// GameSettingByName 依名稱（不分大小寫）取得設定
func (c *Catalog) GameSettingByName(name string) (*spec.GameSetting, error) {
	id, ok := c.byName[normName(name)]
	if !ok {
		return nil, errs.WarnWrap(ErrNotFound, "name="+name)
	}
	return c.byID[id], nil
}

func (c *Catalog) IDs() []spec.GID {
	return append([]spec.GID(nil), c.ids...)
}

// All 依編號排序列出所有遊戲
func (c *Catalog) All() []Summary {
	out := make([]Summary, 0, len(c.ids))
	for _, id := range c.ids {
		gs := c.byID[id]
		out = append(out, Summary{
			GID:        id,
			Name:       gs.GameName,
			Kind:       gs.Kind,
			BetOptions: gs.BetOptions,
			ConfigName: c.files[id],
		})
	}
	return out
}

func normName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isConfigFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json")
}

func parseGameSettingByExt(filename string, raw []byte) (*spec.GameSetting, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return spec.GetGameSettingByYAML(raw)
	case ".json":
		return spec.GetGameSettingByJSON(raw)
	default:
		return nil, errs.NewFatal(fmt.Sprintf("unsupported config format: %q", filename))
	}
}

type multiFS struct {
	src   []fs.FS
	index map[string]int // name -> src index
}

// newMultiFS 建立檔名索引；設定目錄必須是平的，跨 fs 檔名不可重複
func newMultiFS(src ...fs.FS) (*multiFS, error) {
	if len(src) == 0 {
		return nil, errs.NewFatal("no fs provided")
	}
	m := &multiFS{src: src, index: make(map[string]int, 16)}
	for i, s := range src {
		if s == nil {
			return nil, errs.NewFatal(fmt.Sprintf("fs[%d] is nil", i))
		}
		err := fs.WalkDir(s, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == "." {
					return nil
				}
				return errs.NewFatal(fmt.Sprintf("config FS must be flat (no subdirectories): %q", path))
			}
			if !isConfigFile(path) || strings.HasPrefix(path, ".") {
				return nil
			}
			if prev, ok := m.index[path]; ok {
				return errs.NewFatal(fmt.Sprintf("duplicate config %q in fs[%d] and fs[%d]", path, prev, i))
			}
			m.index[path] = i
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *multiFS) GetFS(name string) (fs.FS, bool) {
	if id, ok := m.index[name]; ok {
		return m.src[id], true
	}
	return nil, false
}
