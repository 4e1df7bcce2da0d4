package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/coamigrate/internal/model"
)

func TestMatchMethod(t *testing.T) {
	tests := []struct {
		name        string
		subject     model.Subject
		wantMethod  model.MatchMethod
		explanation string
	}{
		{"top-level", model.Subject{Code: "1001"}, model.MatchMethodExact, explainTopLevel},
		{"second level", model.Subject{Code: "150101"}, model.MatchMethodSemantic, explainMultiLevel},
		{"auxiliary top-level", model.Subject{Code: "1122", Auxiliary: "客户"}, model.MatchMethodSemantic, explainAuxiliary},
		{"auxiliary child", model.Subject{Code: "112201", Auxiliary: "客户"}, model.MatchMethodSemantic, explainAuxiliary},
		{"dotted short code", model.Subject{Code: "1.1"}, model.MatchMethodExact, explainTopLevel},
		{"empty", model.Subject{}, model.MatchMethodExact, explainTopLevel},
	}

	c := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.MatchMethod(tt.subject)
			assert.Equal(t, tt.wantMethod, got.Method)
			assert.Equal(t, tt.explanation, got.Explanation)
		})
	}
}

func TestMatchMethod_IgnoresCategoryFields(t *testing.T) {
	c := Default()
	deleted := c.MatchMethod(model.Subject{Code: "1001", Operation: model.OperationDeleted})
	assert.Equal(t, model.MatchMethodExact, deleted.Method)
}

func TestMatchMethods(t *testing.T) {
	got := Default().MatchMethods([]model.Subject{{Code: "1001"}, {Code: "150101"}})
	assert.Equal(t, model.MatchMethodExact, got[0].Method)
	assert.Equal(t, model.MatchMethodSemantic, got[1].Method)
}

func TestGuidance(t *testing.T) {
	assert.Equal(t, model.MatchMethodExact, Guidance(model.CategoryTraditionalHierarchyMatch).Method)
	assert.Equal(t, guidedSemantic, Guidance(model.CategoryOtherDeleted).Method)
	assert.Equal(t, guidedSemantic, Guidance(model.CategoryModelSynonymMatch).Method)
	for _, cat := range model.Categories {
		assert.NotEmpty(t, Guidance(cat).Explanation, "category %q", cat)
	}
}
