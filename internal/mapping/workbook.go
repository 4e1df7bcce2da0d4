package mapping

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/coamigrate/internal/model"
	"github.com/cleared-dev/coamigrate/internal/statement"
)

// Sheet names of the comparison workbook.
const (
	InfoSheet    = "使用说明"
	MappingSheet = "映射对比表"
)

// Columns of the mapping sheet. A-H describe the source subject, I-P the
// target, Q-U the match, V-Z the review state and AA-AD are for the reviewer.
var Columns = []string{
	"源系统科目编码", "源系统科目名称", "源系统父科目编码", "源系统父科目名称",
	"源系统科目层级", "源系统科目类型", "源系统余额方向", "源系统辅助核算",
	"目标系统科目编码", "目标系统科目名称", "目标系统父科目编码", "目标系统父科目名称",
	"目标系统科目层级", "目标系统科目类型", "目标系统余额方向", "目标系统辅助核算",
	"匹配类型", "匹配方法", "匹配度评分", "匹配置信度", "匹配依据",
	"映射状态", "是否已确认", "是否已修改", "验证结果", "是否存在冲突",
	"用户修改目标编码", "用户修改目标名称", "用户备注", "用户操作",
}

// defaultUserAction pre-fills the 用户操作 column.
const defaultUserAction = "待处理"

// WorkbookOptions describe where the mappings came from.
type WorkbookOptions struct {
	SourceSystem string
	GeneratedAt  time.Time
}

// WriteWorkbook writes the comparison workbook: the instructions sheet
// first, then one mapping per row.
func WriteWorkbook(w io.Writer, mappings []model.Mapping, opts WorkbookOptions) error {
	if opts.SourceSystem == "" {
		opts.SourceSystem = "源系统"
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), InfoSheet); err != nil {
		return fmt.Errorf("naming info sheet: %w", err)
	}
	if _, err := f.NewSheet(MappingSheet); err != nil {
		return fmt.Errorf("creating mapping sheet: %w", err)
	}

	for i, line := range instructions(opts) {
		if err := setRow(f, InfoSheet, i+1, line); err != nil {
			return err
		}
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := setRow(f, MappingSheet, 1, header); err != nil {
		return err
	}
	for i, m := range mappings {
		if err := setRow(f, MappingSheet, i+2, Row(m)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing comparison workbook: %w", err)
	}
	return nil
}

// Row renders a mapping as the cells of one mapping-sheet row. Levels and
// scores are numbers; blank levels stay empty.
func Row(m model.Mapping) []any {
	row := make([]any, 0, len(Columns))
	row = append(row, subjectCells(m.Source)...)
	row = append(row, subjectCells(m.Target)...)
	return append(row,
		m.MatchType,
		m.MatchMethod,
		m.Score.InexactFloat64(),
		string(m.Confidence),
		m.Reason,
		string(m.Status),
		statement.YesNo(m.Confirmed),
		statement.YesNo(m.Modified),
		m.Validation,
		statement.YesNo(m.Conflict),
		"",
		"",
		"",
		defaultUserAction,
	)
}

func subjectCells(s model.Subject) []any {
	var level any = ""
	if s.Level > 0 {
		level = s.Level
	}
	return []any{
		s.Code,
		s.Name,
		s.ParentCode,
		s.ParentName,
		level,
		string(s.CategoryType),
		string(s.Direction),
		s.Auxiliary,
	}
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("addressing %s row %d: %w", sheet, row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func instructions(opts WorkbookOptions) [][]any {
	lines := []string{
		"科目映射对比表 - 使用说明",
		"",
		"一、表格结构说明",
		"1. 源系统科目信息（A-H列）：映射前的源系统科目数据，不可修改",
		"2. 目标系统科目信息（I-P列）：程序匹配后的目标科目，可参考",
		"3. 匹配过程信息（Q-U列）：匹配类型、方法、评分、依据等，不可修改",
		"4. 处理状态信息（V-Z列）：映射状态、确认状态等，不可修改",
		"5. 用户操作区域（AA-AD列）：用户可以修改的区域",
		"",
		"二、用户操作说明",
		"1. 查看映射结果：对比源系统和目标系统的科目信息",
		"2. 查看匹配依据：在'匹配依据'列查看为什么这样匹配",
		"3. 修改映射结果：在'用户修改目标编码'和'用户修改目标名称'列填写修改后的值",
		"4. 添加备注：在'用户备注'列填写说明",
		"5. 确认操作：在'用户操作'列填写：确认/拒绝/待处理/跳过",
		"",
		"三、字段说明",
		"• 匹配类型：完全匹配、编码匹配、层级匹配、语义匹配等",
		"• 匹配方法：直接匹配、大模型语义匹配",
		"• 匹配度评分：0-100分，分数越高匹配度越高",
		"• 匹配置信度：高/中/低，高置信度可自动确认",
		"• 映射状态：待处理、待确认、已确认、已拒绝",
		"",
		"四、注意事项",
		"1. 确认后的映射关系将用于后续导账处理",
		"2. 建议优先处理高置信度的匹配，低置信度需要仔细审核",
		"3. 修改后的数据需要重新运行生成，确保科目类型、方向等属性一致",
		"4. 辅助核算需要单独处理",
		"",
	}
	out := make([][]any, 0, len(lines)+2)
	for _, l := range lines {
		out = append(out, []any{l})
	}
	return append(out,
		[]any{"源系统：", opts.SourceSystem},
		[]any{"生成时间：", opts.GeneratedAt.Format(time.DateTime)},
	)
}
