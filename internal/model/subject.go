package model

import "strings"

// CategoryType is the 类别 column: which element of the accounts a subject belongs to.
type CategoryType string

const (
	CategoryTypeAsset         CategoryType = "资产"
	CategoryTypeLiability     CategoryType = "负债"
	CategoryTypeEquity        CategoryType = "权益"
	CategoryTypeCost          CategoryType = "成本"
	CategoryTypeProfitAndLoss CategoryType = "损益"
)

// CategoryTypes lists the standard category types in chart order.
var CategoryTypes = []CategoryType{
	CategoryTypeAsset,
	CategoryTypeLiability,
	CategoryTypeEquity,
	CategoryTypeCost,
	CategoryTypeProfitAndLoss,
}

// Known reports whether t is one of the five standard category types.
func (t CategoryType) Known() bool {
	switch t {
	case CategoryTypeAsset, CategoryTypeLiability, CategoryTypeEquity, CategoryTypeCost, CategoryTypeProfitAndLoss:
		return true
	}
	return false
}

// Direction is the normal balance side of a subject.
type Direction string

const (
	DirectionDebit  Direction = "借"
	DirectionCredit Direction = "贷"
)

// Operation records what the migration does to a subject relative to the prior version.
type Operation string

const (
	OperationUnspecified Operation = ""
	OperationUnchanged   Operation = "保持不变"
	OperationAdded       Operation = "新增"
	OperationDeleted     Operation = "删除"
)

// IssueNeedsDiscussion is the 是否有问题 value that flags a subject for discussion.
const IssueNeedsDiscussion = "需要讨论"

// Subject is one entry of a chart of accounts (科目).
//
// Blank and missing cells both decode to the zero value; Level 0 means the
// level was not given and is inferred from Code.
type Subject struct {
	Code         string
	Name         string
	ParentCode   string // "" = top-level
	ParentName   string
	Level        int
	CategoryType CategoryType
	Direction    Direction
	Auxiliary    string
	Operation    Operation
	NewCode      string // replacement code in comparison workbooks
	NewName      string
	Remark       string
	HasIssue     string
}

// HasAuxiliary reports whether the subject carries an auxiliary accounting dimension.
func (s Subject) HasAuxiliary() bool {
	return strings.TrimSpace(s.Auxiliary) != ""
}

// Key identifies a subject by code and name, the way review sheets join rows.
func (s Subject) Key() string {
	return s.Code + "_" + s.Name
}
