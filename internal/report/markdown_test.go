package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/coamigrate/internal/model"
	"github.com/cleared-dev/coamigrate/internal/source"
)

func TestWriteMarkdown(t *testing.T) {
	subjects, cats := sampleSubjects()

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, GroupByCategory(subjects, cats), DefaultDetailLimit))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# 科目分类分析报告\n"))
	assert.Contains(t, out, "1. **传统方法-完全匹配**：编码和名称都完全一致的标准科目")
	assert.Contains(t, out, "| 其他处理-辅助核算 | 2 | 33.3% |")
	assert.Contains(t, out, "| 其他处理-新增科目 | 0 | 0.0% |")
	assert.Contains(t, out, "**总计**: 6 个科目")
	assert.Contains(t, out, "## 其他处理-辅助核算\n\n共 2 个科目")
	assert.Contains(t, out, "| 1122 | 应收账款 |  |  |  | 资产 | 客户 |")
	assert.NotContains(t, out, "## 其他处理-新增科目\n", "empty categories have no detail section")
	assert.NotContains(t, out, "仅显示前")
}

func TestWriteMarkdown_DetailLimit(t *testing.T) {
	var subjects []model.Subject
	var cats []model.Category
	for i := 0; i < 5; i++ {
		subjects = append(subjects, model.Subject{Code: fmt.Sprintf("20%02d", i), Name: "科目"})
		cats = append(cats, model.CategoryModelSemanticMatch)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, GroupByCategory(subjects, cats), 3))
	out := buf.String()

	assert.Contains(t, out, "| 2002 |")
	assert.NotContains(t, out, "| 2003 |")
	assert.Contains(t, out, "*（仅显示前3个，共5个）*")

	buf.Reset()
	require.NoError(t, WriteMarkdown(&buf, GroupByCategory(subjects, cats), 0))
	assert.Contains(t, buf.String(), "| 2004 |", "0 means no cap")
}

func TestWriteTable(t *testing.T) {
	tbl, err := source.NewTable([]string{"科目代码", "科目名称"}, [][]string{{"1001", "库存|现金"}})
	require.NoError(t, err)
	tbl.SetColumn("匹配方法", []string{string(model.MatchMethodExact)})

	var buf bytes.Buffer
	notes := MethodNotes(MethodStats([]model.MethodDecision{{Method: model.MatchMethodExact}}))
	require.NoError(t, WriteTable(&buf, "默认科目", notes, tbl))
	out := buf.String()

	assert.Contains(t, out, "# 默认科目\n\n数据行数: 1")
	assert.Contains(t, out, "## 匹配方法说明")
	assert.Contains(t, out, "- 传统精确匹配：1 个科目")
	assert.Contains(t, out, "| 科目代码 | 科目名称 | 匹配方法 |\n|------|------|------|\n")
	assert.Contains(t, out, `| 1001 | 库存\|现金 | 传统精确匹配 |`)
}
