package model

// Category is the migration disposition of a subject. The zero value means
// the subject has not been classified.
type Category string

const (
	CategoryTraditionalExactMatch     Category = "传统方法-完全匹配"
	CategoryTraditionalCodeMatch      Category = "传统方法-编码匹配"
	CategoryTraditionalHierarchyMatch Category = "传统方法-层级匹配"
	CategoryModelSemanticMatch        Category = "模型分析-语义匹配"
	CategoryModelSynonymMatch         Category = "模型分析-同义词匹配"
	CategoryOtherDeleted              Category = "其他处理-删除科目"
	CategoryOtherAdded                Category = "其他处理-新增科目"
	CategoryOtherPendingDiscussion    Category = "其他处理-待讨论"
	CategoryOtherAuxiliaryAccounting  Category = "其他处理-辅助核算"
)

// Categories lists every category in report order.
var Categories = []Category{
	CategoryTraditionalExactMatch,
	CategoryTraditionalCodeMatch,
	CategoryTraditionalHierarchyMatch,
	CategoryModelSemanticMatch,
	CategoryModelSynonymMatch,
	CategoryOtherDeleted,
	CategoryOtherAdded,
	CategoryOtherPendingDiscussion,
	CategoryOtherAuxiliaryAccounting,
}

// Description returns the one-line meaning of a category used in reports.
func (c Category) Description() string {
	switch c {
	case CategoryTraditionalExactMatch:
		return "编码和名称都完全一致的标准科目"
	case CategoryTraditionalCodeMatch:
		return "编码相同但名称可能不同，使用标准编码体系"
	case CategoryTraditionalHierarchyMatch:
		return "有明确层级关系的科目"
	case CategoryModelSemanticMatch:
		return "名称相似但编码不同，需要语义理解"
	case CategoryModelSynonymMatch:
		return "可能存在同义词的科目"
	case CategoryOtherDeleted:
		return "已删除的科目，需要特殊处理"
	case CategoryOtherAdded:
		return "新增的科目，需要确认"
	case CategoryOtherPendingDiscussion:
		return "需要讨论的科目"
	case CategoryOtherAuxiliaryAccounting:
		return "有辅助核算的科目，需要特殊处理"
	}
	return ""
}

// MatchMethod is how risky an automated match is for a subject.
type MatchMethod string

const (
	MatchMethodExact    MatchMethod = "传统精确匹配"
	MatchMethodSemantic MatchMethod = "智能语义匹配（大模型）"
)

// MethodDecision is a match method with the rationale shown to reviewers.
type MethodDecision struct {
	Method      MatchMethod
	Explanation string
}

// Classification is the derived result attached to a subject.
type Classification struct {
	Category          Category
	Method            MatchMethod
	MethodExplanation string
}

// Attribution records which financial statements a subject's balance feeds.
// Both flags may be set at once.
type Attribution struct {
	BalanceSheet    bool
	IncomeStatement bool
	Explanation     string
}
