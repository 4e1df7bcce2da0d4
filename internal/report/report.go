// Package report groups classified subjects and renders the category report.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/coamigrate/internal/model"
)

// Group is the subjects of one category, in source order.
type Group struct {
	Category model.Category
	Subjects []model.Subject
}

// GroupByCategory buckets subjects by their category. Every category is
// present, in report order, even when empty. cats must be index-aligned
// with subjects; subjects whose category is not known are dropped.
func GroupByCategory(subjects []model.Subject, cats []model.Category) []Group {
	idx := make(map[model.Category]int, len(model.Categories))
	groups := make([]Group, len(model.Categories))
	for i, c := range model.Categories {
		idx[c] = i
		groups[i].Category = c
	}
	for i, s := range subjects {
		if i >= len(cats) {
			break
		}
		if g, ok := idx[cats[i]]; ok {
			groups[g].Subjects = append(groups[g].Subjects, s)
		}
	}
	return groups
}

// CategoryCount is one line of the summary table.
type CategoryCount struct {
	Category model.Category
	Count    int
	Share    decimal.Decimal // percent of Total
}

// Summary is the per-category count table.
type Summary struct {
	Total  int
	Counts []CategoryCount
}

var hundred = decimal.NewFromInt(100)

// Summarize counts the groups. Shares are percentages rounded to one decimal place.
func Summarize(groups []Group) Summary {
	var sum Summary
	for _, g := range groups {
		sum.Total += len(g.Subjects)
	}
	for _, g := range groups {
		sum.Counts = append(sum.Counts, CategoryCount{
			Category: g.Category,
			Count:    len(g.Subjects),
			Share:    share(len(g.Subjects), sum.Total),
		})
	}
	return sum
}

// Count returns the number of subjects in category c.
func (s Summary) Count(c model.Category) int {
	for _, cc := range s.Counts {
		if cc.Category == c {
			return cc.Count
		}
	}
	return 0
}

func share(n, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(n)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(1)
}

// MethodCount is the number of subjects assigned one match method.
type MethodCount struct {
	Method model.MatchMethod
	Count  int
}

// MethodStats counts decisions per method. The exact and semantic methods
// come first, other methods follow in first-seen order.
func MethodStats(decisions []model.MethodDecision) []MethodCount {
	counts := map[model.MatchMethod]int{}
	order := []model.MatchMethod{model.MatchMethodExact, model.MatchMethodSemantic}
	for _, d := range decisions {
		if _, seen := counts[d.Method]; !seen && d.Method != model.MatchMethodExact && d.Method != model.MatchMethodSemantic {
			order = append(order, d.Method)
		}
		counts[d.Method]++
	}

	out := make([]MethodCount, 0, len(order))
	for _, m := range order {
		out = append(out, MethodCount{Method: m, Count: counts[m]})
	}
	return out
}
