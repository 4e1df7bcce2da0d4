package classify

import "github.com/cleared-dev/coamigrate/internal/model"

// guidedSemantic is the semantic label the per-category guidance uses.
const guidedSemantic model.MatchMethod = "智能语义匹配"

var guidance = map[model.Category]model.MethodDecision{
	model.CategoryTraditionalExactMatch: {
		Method:      model.MatchMethodExact,
		Explanation: "建议使用完全匹配（编码+名称）或编码匹配",
	},
	model.CategoryTraditionalCodeMatch: {
		Method:      model.MatchMethodExact,
		Explanation: "编码相同但名称不同，建议使用编码匹配并维护名称映射",
	},
	model.CategoryTraditionalHierarchyMatch: {
		Method:      model.MatchMethodExact,
		Explanation: "建议使用层级匹配，处理多级科目结构",
	},
	model.CategoryOtherDeleted: {
		Method:      guidedSemantic,
		Explanation: "本系统已删除，对方系统可能有此科目，需要智能匹配并建议替代方案",
	},
	model.CategoryOtherAdded: {
		Method:      guidedSemantic,
		Explanation: "本系统新增科目，对方系统可能无此科目，需要智能匹配或创建新科目",
	},
	model.CategoryOtherAuxiliaryAccounting: {
		Method:      guidedSemantic,
		Explanation: "有辅助核算，需要额外处理辅助核算映射，建议使用智能匹配",
	},
	model.CategoryOtherPendingDiscussion: {
		Method:      guidedSemantic,
		Explanation: "待讨论科目，需要人工确认，建议使用智能匹配提供候选",
	},
}

// Guidance returns the handling suggested for a whole category. Categories
// without a specific entry get a generic semantic-match suggestion.
func Guidance(c model.Category) model.MethodDecision {
	if g, ok := guidance[c]; ok {
		return g
	}
	return model.MethodDecision{Method: guidedSemantic, Explanation: "需要智能匹配处理"}
}
