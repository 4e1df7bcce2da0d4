package model

import "github.com/shopspring/decimal"

// Confidence is the reviewer-facing confidence bucket of a mapping.
type Confidence string

const (
	ConfidenceHigh   Confidence = "高"
	ConfidenceMedium Confidence = "中"
	ConfidenceLow    Confidence = "低"
)

// MappingStatus is the review state of a mapping.
type MappingStatus string

const (
	MappingStatusPending   MappingStatus = "待处理"
	MappingStatusMatched   MappingStatus = "待确认"
	MappingStatusConfirmed MappingStatus = "已确认"
	MappingStatusRejected  MappingStatus = "已拒绝"
)

// UserAction values a reviewer may enter in the comparison workbook.
var UserActions = []string{"确认", "拒绝", "待处理", "跳过"}

// Mapping pairs a source-system subject with its proposed target subject.
type Mapping struct {
	Source      Subject
	Target      Subject
	MatchType   string
	MatchMethod string
	Score       decimal.Decimal // 0-100
	Confidence  Confidence
	Reason      string
	Status      MappingStatus
	Confirmed   bool
	Modified    bool
	Validation  string
	Conflict    bool
}
