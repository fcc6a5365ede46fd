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

package stats

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// SimReportRender 報告輸出格式
type SimReportRender interface {
	Write(w io.Writer, r *SimReport) error
}

// Json渲染
type JsonSimReportRender struct{}

func (jr *JsonSimReportRender) Write(w io.Writer, r *SimReport) error {
	return json.NewEncoder(w).Encode(r)
}

// YAML渲染
type YAMLSimReportRender struct{}

func (yr *YAMLSimReportRender) Write(w io.Writer, r *SimReport) error {
	return forceReadableList(w, r)
}

// forceReadableList 最內層的一維陣列輸出成 flow style [a, b, c]，外層維度維持展開
func forceReadableList[T any](w io.Writer, t *T) error {
	var node yaml.Node
	if err := node.Encode(t); err != nil {
		return err
	}
	styleReadableSequences(&node)

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&node)
}

func styleReadableSequences(n *yaml.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
	case yaml.SequenceNode:
		hasChildSeq := false
		for _, c := range n.Content {
			if c != nil && c.Kind == yaml.SequenceNode {
				hasChildSeq = true
			}
			styleReadableSequences(c)
		}
		if !hasChildSeq {
			n.Style = yaml.FlowStyle
		}
	}
}

// RenderByName 依名稱取得渲染器（json / yaml）
func RenderByName(name string) (SimReportRender, bool) {
	switch name {
	case "json":
		return &JsonSimReportRender{}, true
	case "yaml", "yml":
		return &YAMLSimReportRender{}, true
	default:
		return nil, false
	}
}
