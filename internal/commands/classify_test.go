package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/coamigrate/internal/model"
	"github.com/cleared-dev/coamigrate/internal/runlog"
	"github.com/cleared-dev/coamigrate/internal/source"
)

func TestClassify_ComparisonWorkbook(t *testing.T) {
	dir := newWorkspace(t)
	copyTestdata(t, dir, "comparison.csv")

	out, err := runCoamigrate(t, "classify", "--repo", dir, "--input", "input/comparison.csv")
	require.NoError(t, err, out)
	assert.Contains(t, out, "wrote output/科目分类结果.json")

	data, err := os.ReadFile(filepath.Join(dir, "output", "科目分类结果.json"))
	require.NoError(t, err)
	var grouped map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &grouped))

	want := map[model.Category]int{
		model.CategoryTraditionalExactMatch:     1,
		model.CategoryTraditionalCodeMatch:      1,
		model.CategoryTraditionalHierarchyMatch: 2,
		model.CategoryModelSemanticMatch:        1,
		model.CategoryModelSynonymMatch:         0,
		model.CategoryOtherDeleted:              1,
		model.CategoryOtherAdded:                1,
		model.CategoryOtherPendingDiscussion:    2,
		model.CategoryOtherAuxiliaryAccounting:  1,
	}
	for c, n := range want {
		assert.Len(t, grouped[string(c)], n, "category %s", c)
	}
	assert.Equal(t, "1122", grouped[string(model.CategoryOtherAuxiliaryAccounting)][0]["old_code"])

	md, err := os.ReadFile(filepath.Join(dir, "output", "科目分类分析报告.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "**总计**: 10 个科目")
	assert.Contains(t, string(md), "| 其他处理-待讨论 | 2 | 20.0% |")

	tbl, err := source.DefaultRegistry().ReadFile(filepath.Join(dir, "output", "comparison-分类.csv"))
	require.NoError(t, err)
	cats := tbl.Column("分类")
	require.Len(t, cats, 10)
	assert.Equal(t, string(model.CategoryOtherAdded), cats[3])
	assert.Equal(t, string(model.CategoryTraditionalHierarchyMatch), cats[8], "dotted code")
}

func TestClassify_Idempotent(t *testing.T) {
	dir := newWorkspace(t)

	_, err := runCoamigrate(t, "classify", "--repo", dir)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(dir, "output", "科目分类结果.json"))
	require.NoError(t, err)

	_, err = runCoamigrate(t, "classify", "--repo", dir)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(dir, "output", "科目分类结果.json"))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	tbl, err := source.DefaultRegistry().ReadFile(filepath.Join(dir, "output", "default-subjects-分类.csv"))
	require.NoError(t, err)
	count := 0
	for _, h := range tbl.Header {
		if h == "分类" {
			count++
		}
	}
	assert.Equal(t, 1, count, "re-runs never duplicate the column")

	entries, err := runlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "classify", entries[0].Command)
	assert.Equal(t, "input/default-subjects.csv", entries[0].Input)
	assert.NotEqual(t, entries[0].RunID, entries[1].RunID)
}

func TestClassify_AuxiliaryAfterDispositionConfig(t *testing.T) {
	dir := newWorkspace(t)
	path := filepath.Join(dir, "input", "subjects.csv")
	csv := "科目代码,科目名称,操作,辅助核算\n1122,应收账款,删除,客户\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	_, err := runCoamigrate(t, "classify", "--repo", dir, "--input", path)
	require.NoError(t, err)
	tbl, err := source.DefaultRegistry().ReadFile(filepath.Join(dir, "output", "subjects-分类.csv"))
	require.NoError(t, err)
	assert.Equal(t, string(model.CategoryOtherAuxiliaryAccounting), tbl.Column("分类")[0])

	cfgPath := filepath.Join(dir, "coamigrate.yaml")
	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	data = []byte(strings.Replace(string(data), "auxiliary_first: true", "auxiliary_first: false", 1))
	require.NoError(t, os.WriteFile(cfgPath, data, 0o644))

	_, err = runCoamigrate(t, "classify", "--repo", dir, "--input", path)
	require.NoError(t, err)
	tbl, err = source.DefaultRegistry().ReadFile(filepath.Join(dir, "output", "subjects-分类.csv"))
	require.NoError(t, err)
	assert.Equal(t, string(model.CategoryOtherDeleted), tbl.Column("分类")[0])
}

func TestClassify_WithoutConfig(t *testing.T) {
	dir := t.TempDir()
	input, err := filepath.Abs(filepath.Join("..", "..", "testdata", "default-subjects.csv"))
	require.NoError(t, err)

	out, err := runCoamigrate(t, "classify", "--repo", dir, "--input", input)
	require.NoError(t, err, out)

	_, err = os.Stat(filepath.Join(dir, "output", "科目分类分析报告.md"))
	assert.NoError(t, err)
}

func TestClassify_EnvOutputDir(t *testing.T) {
	dir := newWorkspace(t)
	t.Setenv("COAMIGRATE_OUTPUT_DIR", "reports")

	_, err := runCoamigrate(t, "classify", "--repo", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "reports", "科目分类结果.json"))
	assert.NoError(t, err)
}

func TestClassify_MissingInput(t *testing.T) {
	dir := newWorkspace(t)
	_, err := runCoamigrate(t, "classify", "--repo", dir, "--input", "input/missing.xlsx")
	require.Error(t, err)
}

func TestClassify_InputDirectory(t *testing.T) {
	dir := newWorkspace(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "input", "default-subjects.csv")))
	copyTestdata(t, dir, "comparison.csv")

	_, err := runCoamigrate(t, "classify", "--repo", dir, "--input", "input")
	require.NoError(t, err)

	entries, err := runlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "input/comparison.csv", entries[0].Input)
	assert.Equal(t, 10, entries[0].Records)
}

func TestClassify_AutoCommit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	_, err := runCoamigrate(t, "init", dir, "--name", "Test Migration")
	require.NoError(t, err)

	_, err = runCoamigrate(t, "classify", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, gitLog(t, dir, "%s"), "classify: 38 subjects from input/default-subjects.csv")
}

func TestClassify_HandWrittenConfigKeepsAuxiliaryFirst(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "input"), 0o755))
	cfg := "project:\n  name: Hand Written\npaths:\n  input: input/subjects.csv\n  output_dir: output\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "coamigrate.yaml"), []byte(cfg), 0o644))
	csv := "科目代码,科目名称,类别,辅助核算,操作\n1122,应收账款,资产,客户,删除\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "input", "subjects.csv"), []byte(csv), 0o644))

	out, err := runCoamigrate(t, "classify", "--repo", dir)
	require.NoError(t, err, out)

	tbl, err := source.DefaultRegistry().ReadFile(filepath.Join(dir, "output", "subjects-分类.csv"))
	require.NoError(t, err)
	assert.Equal(t, string(model.CategoryOtherAuxiliaryAccounting), tbl.Column("分类")[0])
}
