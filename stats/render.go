package stats

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// StatReportRender 定義輸出行為
type StatReportRender interface {
	Write(w io.Writer, r *StatReport) error
}

// Json渲染
type JsonStatReportRender struct{}

func (jr *JsonStatReportRender) Write(w io.Writer, r *StatReport) error {
	return json.NewEncoder(w).Encode(r)
}

// YAML渲染：一維陣列輸出成 [a, b, c]
type YAMLStatReportRender struct{}

func (yr *YAMLStatReportRender) Write(w io.Writer, r *StatReport) error {
	return forceReadableList(w, r)
}

// 表格渲染
type TableStatReportRender struct{}

func (tr *TableStatReportRender) Write(w io.Writer, r *StatReport) error {
	_, err := io.WriteString(w, r.Table())
	return err
}

type EstimatorRender interface {
	Write(w io.Writer, e *EstimatorPlayers) error
}

type JsonEstimatorRender struct{}

func (jr *JsonEstimatorRender) Write(w io.Writer, e *EstimatorPlayers) error {
	return json.NewEncoder(w).Encode(e)
}

type YAMLEstimatorRender struct{}

func (yr *YAMLEstimatorRender) Write(w io.Writer, e *EstimatorPlayers) error {
	return forceReadableList(w, e)
}

type TableEstimatorRender struct{}

func (tr *TableEstimatorRender) Write(w io.Writer, e *EstimatorPlayers) error {
	_, err := io.WriteString(w, e.Table())
	return err
}

// RenderByName 依名稱取得報告渲染器：json / yaml / table，未知名稱回傳 nil。
func RenderByName(name string) StatReportRender {
	switch name {
	case "json":
		return &JsonStatReportRender{}
	case "yaml", "yml":
		return &YAMLStatReportRender{}
	case "table", "":
		return &TableStatReportRender{}
	}
	return nil
}

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

// 沒有子 sequence 的 sequence 是最內層一維，改成 flow style；外層維度保持展開。
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

// EstimatorRenderByName 與 RenderByName 相同，用於玩家模擬的估計報告。
func EstimatorRenderByName(name string) EstimatorRender {
	switch name {
	case "json":
		return &JsonEstimatorRender{}
	case "yaml", "yml":
		return &YAMLEstimatorRender{}
	case "table", "":
		return &TableEstimatorRender{}
	}
	return nil
}
