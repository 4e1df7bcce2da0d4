package source

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cleared-dev/coamigrate/internal/hierarchy"
	"github.com/cleared-dev/coamigrate/internal/model"
)

// ErrNoCodeColumn is returned when a header has no recognisable subject code column.
var ErrNoCodeColumn = errors.New("no subject code column in header")

type field int

const (
	fieldCode field = iota
	fieldName
	fieldParentCode
	fieldParentName
	fieldLevel
	fieldCategoryType
	fieldDirection
	fieldAuxiliary
	fieldOperation
	fieldNewCode
	fieldNewName
	fieldRemark
	fieldHasIssue
	numFields
)

// Column names written by this tool and by the flat subject file.
const (
	ColCode         = "科目代码"
	ColName         = "科目名称"
	ColParentCode   = "父科目编码"
	ColParentName   = "父科目名称"
	ColLevel        = "科目层级"
	ColCategoryType = "类别"
	ColDirection    = "借贷"
	ColAuxiliary    = "辅助核算"
	ColOperation    = "操作"
	ColRemark       = "备注"
	ColHasIssue     = "是否有问题"
)

// Headers of the comparison workbook, where each version spans a code and a name column.
const (
	colCurrentVersion = "当前版本SAAS的默认科目"
	colRevisedVersion = "修改后SAAS的默认科目"
	subHeaderCode     = "编码"
)

var aliasTable = []struct {
	field   field
	headers []string
}{
	{fieldCode, []string{ColCode, "科目编码", "源系统科目编码", "code"}},
	{fieldName, []string{ColName, "源系统科目名称", "name"}},
	{fieldParentCode, []string{ColParentCode, "源系统父科目编码", "parent_code"}},
	{fieldParentName, []string{ColParentName, "源系统父科目名称", "parent_name"}},
	{fieldLevel, []string{ColLevel, "层级", "源系统科目层级", "level"}},
	{fieldCategoryType, []string{ColCategoryType, "科目类型", "源系统科目类型", "category_type"}},
	{fieldDirection, []string{ColDirection, "余额方向", "源系统余额方向", "debit_credit"}},
	{fieldAuxiliary, []string{ColAuxiliary, "辅助", "源系统辅助核算", "auxiliary"}},
	{fieldOperation, []string{ColOperation, "operation"}},
	{fieldNewCode, []string{"新编码", "new_code"}},
	{fieldNewName, []string{"新名称", "new_name"}},
	{fieldRemark, []string{ColRemark, "remark"}},
	{fieldHasIssue, []string{ColHasIssue, "has_issue"}},
}

// aliases maps every accepted header to its field.
var aliases = func() map[string]field {
	m := make(map[string]field)
	for _, a := range aliasTable {
		for _, h := range a.headers {
			m[h] = a.field
		}
	}
	return m
}()

// layout maps subject fields to column indexes (-1 = absent).
type layout struct {
	cols       [numFields]int
	comparison bool
}

func detectLayout(header []string) (layout, error) {
	var l layout
	for i := range l.cols {
		l.cols[i] = -1
	}

	for i, h := range header {
		h = strings.TrimSpace(h)
		switch h {
		case colCurrentVersion:
			l.comparison = true
			l.cols[fieldCode] = i
			l.cols[fieldName] = i + 1
			continue
		case colRevisedVersion:
			l.comparison = true
			l.cols[fieldNewCode] = i
			l.cols[fieldNewName] = i + 1
			continue
		}
		f, ok := aliases[h]
		if !ok {
			f, ok = aliases[strings.ToLower(h)]
		}
		if ok && l.cols[f] < 0 {
			l.cols[f] = i
		}
	}

	if l.cols[fieldCode] < 0 {
		return layout{}, ErrNoCodeColumn
	}
	return l, nil
}

// skip reports whether row is a blank row or the 编码/名称 sub-header of a comparison workbook.
func (l layout) skip(row []string) bool {
	if l.comparison && l.cell(row, fieldCode) == subHeaderCode {
		return true
	}
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (l layout) cell(row []string, f field) string {
	idx := l.cols[f]
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return cleanCell(row[idx])
}

func (l layout) decode(row []string) model.Subject {
	return model.Subject{
		Code:         hierarchy.Normalize(l.cell(row, fieldCode)),
		Name:         l.cell(row, fieldName),
		ParentCode:   hierarchy.Normalize(l.cell(row, fieldParentCode)),
		ParentName:   l.cell(row, fieldParentName),
		Level:        parseLevel(l.cell(row, fieldLevel)),
		CategoryType: model.CategoryType(l.cell(row, fieldCategoryType)),
		Direction:    model.Direction(l.cell(row, fieldDirection)),
		Auxiliary:    l.cell(row, fieldAuxiliary),
		Operation:    model.Operation(l.cell(row, fieldOperation)),
		NewCode:      hierarchy.Normalize(l.cell(row, fieldNewCode)),
		NewName:      l.cell(row, fieldNewName),
		Remark:       l.cell(row, fieldRemark),
		HasIssue:     l.cell(row, fieldHasIssue),
	}
}

// cleanCell trims a cell and blanks the placeholders pandas writes for missing values.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	switch s {
	case "nan", "NaN", "None", "null":
		return ""
	}
	return s
}

// parseLevel returns 0 when the level is blank or not a number.
func parseLevel(s string) int {
	n, err := strconv.Atoi(hierarchy.Normalize(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func trimCells(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
