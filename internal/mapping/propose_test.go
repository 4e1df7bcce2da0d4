package mapping

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/coamigrate/internal/classify"
	"github.com/cleared-dev/coamigrate/internal/model"
)

func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		score int64
		want  model.Confidence
	}{
		{100, model.ConfidenceHigh},
		{90, model.ConfidenceHigh},
		{89, model.ConfidenceMedium},
		{70, model.ConfidenceMedium},
		{69, model.ConfidenceLow},
		{0, model.ConfidenceLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfidenceFor(decimal.NewFromInt(tt.score)), "score %d", tt.score)
	}
}

func TestPropose(t *testing.T) {
	subjects := []model.Subject{
		{Code: "1001", Name: "库存现金", NewCode: "1001", NewName: "库存现金", Operation: model.OperationUnchanged, CategoryType: model.CategoryTypeAsset, Direction: model.DirectionDebit, Level: 1},
		{Code: "1002", Name: "银行存款", NewCode: "1002", NewName: "银行存款（人民币）", Operation: model.OperationUnchanged},
		{Code: "1101", Name: "短期投资", Operation: model.OperationDeleted},
		{NewCode: "1132", NewName: "应收利息", Operation: model.OperationAdded, CategoryType: model.CategoryTypeAsset},
		{Code: "1122", Name: "应收账款", Auxiliary: "客户"},
		{Code: "150101", Name: "债券投资", ParentCode: "1501", ParentName: "长期债券投资", Level: 2},
	}
	c := classify.Default()
	ms := Propose(subjects, c.ClassifyAll(subjects))
	require.Len(t, ms, len(subjects))

	exact := ms[0]
	assert.Equal(t, "完全匹配", exact.MatchType)
	assert.Equal(t, MethodDirect, exact.MatchMethod)
	assert.True(t, exact.Score.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, model.ConfidenceHigh, exact.Confidence)
	assert.Equal(t, model.MappingStatusConfirmed, exact.Status)
	assert.True(t, exact.Confirmed)
	assert.Equal(t, "1001", exact.Target.Code)
	assert.Equal(t, model.DirectionDebit, exact.Target.Direction)

	code := ms[1]
	assert.Equal(t, "编码匹配", code.MatchType)
	assert.Equal(t, "银行存款（人民币）", code.Target.Name)
	assert.Equal(t, model.MappingStatusMatched, code.Status)
	assert.False(t, code.Confirmed)
	assert.Equal(t, "编码相同但名称可能不同，使用标准编码体系；编码相同但名称不同，建议使用编码匹配并维护名称映射；一级科目，建议使用完全匹配（编码+名称）或编码匹配", code.Reason)

	deleted := ms[2]
	assert.Empty(t, deleted.Target.Code)
	assert.Equal(t, model.MappingStatusPending, deleted.Status)
	assert.Equal(t, ValidationUnmatched, deleted.Validation)
	assert.Equal(t, model.ConfidenceLow, deleted.Confidence)
	assert.Contains(t, deleted.Reason, classify.Guidance(model.CategoryOtherDeleted).Explanation)

	added := ms[3]
	assert.Empty(t, added.Source.Code)
	assert.Equal(t, "1132", added.Target.Code)
	assert.Equal(t, model.CategoryTypeAsset, added.Target.CategoryType)

	aux := ms[4]
	assert.Equal(t, MethodSemantic, aux.MatchMethod)
	assert.Equal(t, model.ConfidenceMedium, aux.Confidence)
	assert.Contains(t, aux.Reason, "辅助核算")

	hier := ms[5]
	assert.Equal(t, "层级匹配", hier.MatchType)
	assert.Equal(t, "1501", hier.Target.ParentCode)
	assert.Equal(t, 2, hier.Target.Level)

	for _, m := range ms {
		assert.False(t, m.Conflict)
	}
}

func TestPropose_Conflicts(t *testing.T) {
	subjects := []model.Subject{
		{Code: "1001", Name: "现金", NewCode: "1001", NewName: "库存现金", Operation: model.OperationUnchanged},
		{Code: "1009", Name: "零用金", NewCode: "1001", NewName: "库存现金", Operation: model.OperationUnchanged},
		{Code: "1002", Name: "银行存款", NewCode: "1002", NewName: "银行存款", Operation: model.OperationUnchanged},
	}
	ms := Propose(subjects, classify.Default().ClassifyAll(subjects))

	assert.True(t, ms[0].Conflict)
	assert.True(t, ms[1].Conflict)
	assert.False(t, ms[2].Conflict)
}

func TestPropose_MissingClassification(t *testing.T) {
	ms := Propose([]model.Subject{{Code: "1001", Name: "库存现金"}}, nil)
	require.Len(t, ms, 1)
	assert.Equal(t, "未分类", ms[0].MatchType)
	assert.Empty(t, ms[0].MatchMethod)
	assert.Equal(t, "需要智能匹配处理", ms[0].Reason)
}
