package classify

import (
	"strings"

	"github.com/cleared-dev/coamigrate/internal/hierarchy"
	"github.com/cleared-dev/coamigrate/internal/model"
)

const (
	explainAuxiliary  = "有辅助核算，需要大模型匹配并处理辅助核算映射"
	explainMultiLevel = "二级/多级科目，层级和名称可能不完全相同，建议使用大模型进行语义匹配"
	explainTopLevel   = "一级科目，建议使用完全匹配（编码+名称）或编码匹配"
)

// MatchMethod decides between exact and semantic matching for s. It looks
// only at the auxiliary dimension and the code length.
func (c *Classifier) MatchMethod(s model.Subject) model.MethodDecision {
	switch {
	case s.HasAuxiliary():
		return model.MethodDecision{Method: model.MatchMethodSemantic, Explanation: explainAuxiliary}
	case hierarchy.IsMultiLevel(strings.TrimSpace(s.Code), c.topLen):
		return model.MethodDecision{Method: model.MatchMethodSemantic, Explanation: explainMultiLevel}
	default:
		return model.MethodDecision{Method: model.MatchMethodExact, Explanation: explainTopLevel}
	}
}

// MatchMethods returns the match method of every subject, index-aligned with the input.
func (c *Classifier) MatchMethods(subjects []model.Subject) []model.MethodDecision {
	out := make([]model.MethodDecision, len(subjects))
	for i, s := range subjects {
		out[i] = c.MatchMethod(s)
	}
	return out
}
