// Package mapping builds the source-to-target subject mappings reviewers
// confirm in the comparison workbook.
package mapping

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/coamigrate/internal/classify"
	"github.com/cleared-dev/coamigrate/internal/model"
)

// Match methods as written to the workbook.
const (
	MethodDirect   = "直接匹配"
	MethodSemantic = "大模型语义匹配"
)

// Validation results.
const (
	ValidationPassed    = "通过"
	ValidationUnmatched = "未匹配"
)

// proposal is the fixed scoring of one category.
type proposal struct {
	matchType string
	score     int64
}

var proposals = map[model.Category]proposal{
	model.CategoryTraditionalExactMatch:     {"完全匹配", 100},
	model.CategoryTraditionalCodeMatch:      {"编码匹配", 95},
	model.CategoryTraditionalHierarchyMatch: {"层级匹配", 90},
	model.CategoryModelSemanticMatch:        {"语义匹配（大模型）", 85},
	model.CategoryModelSynonymMatch:         {"同义词匹配（大模型）", 80},
	model.CategoryOtherAuxiliaryAccounting:  {"语义匹配（大模型）", 75},
	model.CategoryOtherAdded:                {"新增科目", 60},
	model.CategoryOtherPendingDiscussion:    {"待讨论", 50},
	model.CategoryOtherDeleted:              {"删除科目", 0},
}

var (
	highConfidence   = decimal.NewFromInt(90)
	mediumConfidence = decimal.NewFromInt(70)
)

// ConfidenceFor buckets a 0-100 score.
func ConfidenceFor(score decimal.Decimal) model.Confidence {
	switch {
	case score.GreaterThanOrEqual(highConfidence):
		return model.ConfidenceHigh
	case score.GreaterThanOrEqual(mediumConfidence):
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

// Propose builds one mapping per subject from its classification. The target
// is the subject's replacement (NewCode/NewName) when it has one, otherwise
// the subject itself. Exact matches start confirmed; everything else waits
// for review. Mappings that send different sources to one target are flagged
// as conflicts.
func Propose(subjects []model.Subject, classes []model.Classification) []model.Mapping {
	out := make([]model.Mapping, 0, len(subjects))
	for i, s := range subjects {
		var c model.Classification
		if i < len(classes) {
			c = classes[i]
		}
		out = append(out, propose(s, c))
	}
	markConflicts(out)
	return out
}

func propose(s model.Subject, c model.Classification) model.Mapping {
	p, ok := proposals[c.Category]
	if !ok {
		p = proposal{matchType: "未分类", score: 0}
	}
	score := decimal.NewFromInt(p.score)

	m := model.Mapping{
		Source:     sourceSide(s),
		Target:     targetSide(s, c.Category),
		MatchType:  p.matchType,
		Score:      score,
		Confidence: ConfidenceFor(score),
		Reason:     reason(c),
		Status:     model.MappingStatusMatched,
		Validation: ValidationPassed,
	}

	switch c.Method {
	case model.MatchMethodExact:
		m.MatchMethod = MethodDirect
	case model.MatchMethodSemantic:
		m.MatchMethod = MethodSemantic
	}

	switch {
	case m.Target.Code == "":
		m.Status = model.MappingStatusPending
		m.Validation = ValidationUnmatched
	case c.Category == model.CategoryTraditionalExactMatch:
		m.Status = model.MappingStatusConfirmed
		m.Confirmed = true
	}
	return m
}

// sourceSide is the subject as it exists in the source system. Added subjects
// have no source side.
func sourceSide(s model.Subject) model.Subject {
	if s.Code == "" {
		return model.Subject{}
	}
	return model.Subject{
		Code:         s.Code,
		Name:         s.Name,
		ParentCode:   s.ParentCode,
		ParentName:   s.ParentName,
		Level:        s.Level,
		CategoryType: s.CategoryType,
		Direction:    s.Direction,
		Auxiliary:    s.Auxiliary,
	}
}

func targetSide(s model.Subject, cat model.Category) model.Subject {
	if cat == model.CategoryOtherDeleted {
		return model.Subject{}
	}
	t := sourceSide(s)
	if s.NewCode != "" {
		t.Code = s.NewCode
		t.Name = s.NewName
	}
	if s.Code == "" {
		t.CategoryType = s.CategoryType
		t.Direction = s.Direction
		t.Auxiliary = s.Auxiliary
	}
	return t
}

// reason explains a mapping: what the category means, how the category is
// handled, then why this subject got its match method.
func reason(c model.Classification) string {
	parts := []string{c.Category.Description(), classify.Guidance(c.Category).Explanation, c.MethodExplanation}
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "；")
}

func markConflicts(ms []model.Mapping) {
	sources := make(map[string]map[string]bool)
	for _, m := range ms {
		if m.Target.Code == "" || m.Source.Code == "" {
			continue
		}
		if sources[m.Target.Code] == nil {
			sources[m.Target.Code] = make(map[string]bool)
		}
		sources[m.Target.Code][m.Source.Code] = true
	}
	for i := range ms {
		if len(sources[ms[i].Target.Code]) > 1 {
			ms[i].Conflict = true
		}
	}
}
