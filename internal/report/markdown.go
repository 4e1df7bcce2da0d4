package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/coamigrate/internal/model"
	"github.com/cleared-dev/coamigrate/internal/source"
)

// DefaultDetailLimit is the number of subjects listed per category.
const DefaultDetailLimit = 50

var detailHeader = []string{"原编码", "原名称", "新编码", "新名称", "操作", "类别", "辅助核算"}

// WriteMarkdown writes the category report: the category definitions, the
// count table and a detail table per non-empty category. limit caps the
// detail rows per category; 0 or less means no cap.
func WriteMarkdown(w io.Writer, groups []Group, limit int) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# 科目分类分析报告\n\n")
	fmt.Fprintf(bw, "## 分类依据\n\n")
	for i, g := range groups {
		fmt.Fprintf(bw, "%d. **%s**：%s\n", i+1, g.Category, g.Category.Description())
	}
	fmt.Fprintf(bw, "\n")

	sum := Summarize(groups)
	fmt.Fprintf(bw, "## 分类统计\n\n")
	writeRow(bw, []string{"分类", "数量", "占比"})
	writeRule(bw, 3)
	for _, c := range sum.Counts {
		writeRow(bw, []string{string(c.Category), fmt.Sprint(c.Count), c.Share.StringFixed(1) + "%"})
	}
	fmt.Fprintf(bw, "\n**总计**: %d 个科目\n\n", sum.Total)

	for _, g := range groups {
		if len(g.Subjects) == 0 {
			continue
		}
		fmt.Fprintf(bw, "## %s\n\n", g.Category)
		fmt.Fprintf(bw, "共 %d 个科目\n\n", len(g.Subjects))
		writeRow(bw, detailHeader)
		writeRule(bw, len(detailHeader))

		shown := g.Subjects
		if limit > 0 && len(shown) > limit {
			shown = shown[:limit]
		}
		for _, s := range shown {
			writeRow(bw, []string{s.Code, s.Name, s.NewCode, s.NewName, string(s.Operation), string(s.CategoryType), s.Auxiliary})
		}
		if len(shown) < len(g.Subjects) {
			fmt.Fprintf(bw, "\n*（仅显示前%d个，共%d个）*\n", len(shown), len(g.Subjects))
		}
		fmt.Fprintf(bw, "\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing markdown report: %w", err)
	}
	return nil
}

// WriteTable writes a subject sheet as a Markdown document with a title,
// free-form notes and the full data table.
func WriteTable(w io.Writer, title string, notes []string, t *source.Table) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s\n\n", title)
	fmt.Fprintf(bw, "数据行数: %d\n\n", t.Len())
	for _, n := range notes {
		fmt.Fprintf(bw, "%s\n", n)
	}
	if len(notes) > 0 {
		fmt.Fprintf(bw, "\n")
	}

	fmt.Fprintf(bw, "## 数据表\n\n")
	writeRow(bw, t.Header)
	writeRule(bw, len(t.Header))
	for _, row := range t.Rows {
		writeRow(bw, row)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing markdown table: %w", err)
	}
	return nil
}

// MethodNotes describes the match methods at the top of the methods document.
func MethodNotes(stats []MethodCount) []string {
	notes := []string{
		"## 匹配方法说明\n",
		fmt.Sprintf("- **%s**：适用于一级科目，使用完全匹配（编码+名称）或编码匹配", model.MatchMethodExact),
		fmt.Sprintf("- **%s**：适用于二级/多级科目和有辅助核算的科目，需要语义理解或特殊处理", model.MatchMethodSemantic),
		"",
	}
	for _, s := range stats {
		notes = append(notes, fmt.Sprintf("- %s：%d 个科目", s.Method, s.Count))
	}
	return notes
}

func writeRow(w io.Writer, cells []string) {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = escapeCell(c)
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(escaped, " | "))
}

func writeRule(w io.Writer, n int) {
	fmt.Fprintf(w, "|%s\n", strings.Repeat("------|", n))
}

// escapeCell keeps a value inside its table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
