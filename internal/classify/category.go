// Package classify decides, for each chart-of-accounts subject, which
// migration disposition applies and how risky an automated match is.
//
// The two decisions are independent rule sets: Category is the nine-way
// disposition, MatchMethod is the binary exact/semantic choice. They are only
// combined when results are rendered.
package classify

import (
	"strings"

	"github.com/cleared-dev/coamigrate/internal/hierarchy"
	"github.com/cleared-dev/coamigrate/internal/model"
)

// pendingRemark marks a subject as pending discussion when found in its remark.
const pendingRemark = "待讨论"

// Options tune the rule order and the code-length boundary.
type Options struct {
	// AuxiliaryFirst evaluates the auxiliary-accounting rule before the
	// deleted/added/pending rules. When false the auxiliary rule runs fourth.
	AuxiliaryFirst bool
	// TopLevelLength is the longest code still treated as a top-level subject.
	TopLevelLength int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		AuxiliaryFirst: true,
		TopLevelLength: hierarchy.TopLevelLength,
	}
}

// rule returns a category and true when it applies to a subject.
type rule struct {
	name  string
	apply func(s model.Subject) (model.Category, bool)
}

// Classifier applies an ordered rule list; the first matching rule wins.
type Classifier struct {
	rules  []rule
	topLen int
}

// New builds a Classifier from opts.
func New(opts Options) *Classifier {
	if opts.TopLevelLength <= 0 {
		opts.TopLevelLength = hierarchy.TopLevelLength
	}
	c := &Classifier{topLen: opts.TopLevelLength}

	disposition := []rule{
		{name: "deleted", apply: deletedRule},
		{name: "added", apply: addedRule},
		{name: "pending", apply: pendingRule},
	}
	auxiliary := rule{name: "auxiliary", apply: auxiliaryRule}

	if opts.AuxiliaryFirst {
		c.rules = append(c.rules, auxiliary)
		c.rules = append(c.rules, disposition...)
	} else {
		c.rules = append(c.rules, disposition...)
		c.rules = append(c.rules, auxiliary)
	}
	c.rules = append(c.rules,
		rule{name: "unchanged", apply: unchangedRule},
		rule{name: "structure", apply: c.structureRule},
	)
	return c
}

// Default returns a Classifier with DefaultOptions.
func Default() *Classifier {
	return New(DefaultOptions())
}

// RuleNames lists the rules in evaluation order.
func (c *Classifier) RuleNames() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.name
	}
	return names
}

// Category returns the disposition of s. It always returns one of the
// categories in model.Categories.
func (c *Classifier) Category(s model.Subject) model.Category {
	cat, _ := c.Explain(s)
	return cat
}

// Explain returns the category of s together with the name of the rule that decided it.
func (c *Classifier) Explain(s model.Subject) (model.Category, string) {
	for _, r := range c.rules {
		if cat, ok := r.apply(s); ok {
			return cat, r.name
		}
	}
	// structureRule always matches; this is unreachable.
	return model.CategoryModelSemanticMatch, "fallback"
}

// Classify returns both decisions for s.
func (c *Classifier) Classify(s model.Subject) model.Classification {
	method := c.MatchMethod(s)
	return model.Classification{
		Category:          c.Category(s),
		Method:            method.Method,
		MethodExplanation: method.Explanation,
	}
}

// ClassifyAll classifies subjects in order. The result is index-aligned with the input.
func (c *Classifier) ClassifyAll(subjects []model.Subject) []model.Classification {
	out := make([]model.Classification, len(subjects))
	for i, s := range subjects {
		out[i] = c.Classify(s)
	}
	return out
}

// Categories returns the category of every subject, index-aligned with the input.
func (c *Classifier) Categories(subjects []model.Subject) []model.Category {
	out := make([]model.Category, len(subjects))
	for i, s := range subjects {
		out[i] = c.Category(s)
	}
	return out
}

func deletedRule(s model.Subject) (model.Category, bool) {
	return model.CategoryOtherDeleted, s.Operation == model.OperationDeleted
}

func addedRule(s model.Subject) (model.Category, bool) {
	replaced := blank(s.Code) && !blank(s.NewCode)
	return model.CategoryOtherAdded, s.Operation == model.OperationAdded || replaced
}

func pendingRule(s model.Subject) (model.Category, bool) {
	pending := strings.TrimSpace(s.HasIssue) == model.IssueNeedsDiscussion ||
		strings.Contains(s.Remark, pendingRemark)
	return model.CategoryOtherPendingDiscussion, pending
}

func auxiliaryRule(s model.Subject) (model.Category, bool) {
	return model.CategoryOtherAuxiliaryAccounting, s.HasAuxiliary()
}

func unchangedRule(s model.Subject) (model.Category, bool) {
	if s.Operation != model.OperationUnchanged {
		return "", false
	}
	code, newCode := strings.TrimSpace(s.Code), strings.TrimSpace(s.NewCode)
	if code != "" && newCode != "" && code == newCode {
		if strings.TrimSpace(s.Name) == strings.TrimSpace(s.NewName) {
			return model.CategoryTraditionalExactMatch, true
		}
		return model.CategoryTraditionalCodeMatch, true
	}
	return model.CategoryTraditionalExactMatch, true
}

func (c *Classifier) structureRule(s model.Subject) (model.Category, bool) {
	code := strings.TrimSpace(s.Code)
	if hierarchy.HasSeparator(code) || hierarchy.IsMultiLevel(code, c.topLen) {
		return model.CategoryTraditionalHierarchyMatch, true
	}
	return model.CategoryModelSemanticMatch, true
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
