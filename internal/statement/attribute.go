// Package statement attributes chart-of-accounts subjects to the balance
// sheet and the income statement.
package statement

import (
	"strings"

	"github.com/cleared-dev/coamigrate/internal/model"
)

// profitCodes are 本年利润 and 利润分配, which close into equity and carry net profit.
var profitCodes = map[string]bool{
	"3103": true,
	"3104": true,
}

// expensePrefixes mark expense-side profit-and-loss subjects.
var expensePrefixes = []string{"56", "57", "58"}

const (
	explainAsset     = "资产类科目，用于资产负债表"
	explainLiability = "负债类科目，用于资产负债表"
	explainEquity    = "所有者权益类科目，用于资产负债表"
	explainCost      = "成本类科目，通过存货影响资产负债表，通过主营业务成本影响利润表"
	explainRevenue   = "收入类科目，用于利润表"
	explainExpense   = "费用类科目，用于利润表"
	explainPL        = "损益类科目，用于利润表"
	explainProfit    = "利润相关科目，既影响资产负债表（权益）也影响利润表（净利润）"
)

// Attribute decides which statements s feeds. Unknown category types get no flags.
func Attribute(s model.Subject) model.Attribution {
	var a model.Attribution
	code := strings.TrimSpace(s.Code)

	switch s.CategoryType {
	case model.CategoryTypeAsset:
		a.BalanceSheet = true
		a.Explanation = explainAsset
	case model.CategoryTypeLiability:
		a.BalanceSheet = true
		a.Explanation = explainLiability
	case model.CategoryTypeEquity:
		a.BalanceSheet = true
		a.Explanation = explainEquity
	case model.CategoryTypeCost:
		a.BalanceSheet = true
		a.IncomeStatement = true
		a.Explanation = explainCost
	case model.CategoryTypeProfitAndLoss:
		a.IncomeStatement = true
		a.Explanation = profitAndLossExplanation(code, s.Name)
	}

	// Profit subjects close into equity and report net profit.
	if profitCodes[code] || strings.Contains(s.Name, "利润") {
		a.BalanceSheet = true
		a.IncomeStatement = true
		a.Explanation = explainProfit
	}
	return a
}

// AttributeAll attributes every subject, index-aligned with the input.
func AttributeAll(subjects []model.Subject) []model.Attribution {
	out := make([]model.Attribution, len(subjects))
	for i, s := range subjects {
		out[i] = Attribute(s)
	}
	return out
}

func profitAndLossExplanation(code, name string) string {
	switch {
	case strings.Contains(name, "收入"):
		return explainRevenue
	case strings.Contains(name, "费用"), strings.Contains(name, "成本"), hasAnyPrefix(code, expensePrefixes):
		return explainExpense
	default:
		return explainPL
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Stats counts attributions per statement.
type Stats struct {
	Total           int
	BalanceSheet    int
	IncomeStatement int
	Both            int
}

// Summarize counts how many attributions land on each statement.
func Summarize(attrs []model.Attribution) Stats {
	st := Stats{Total: len(attrs)}
	for _, a := range attrs {
		if a.BalanceSheet {
			st.BalanceSheet++
		}
		if a.IncomeStatement {
			st.IncomeStatement++
		}
		if a.BalanceSheet && a.IncomeStatement {
			st.Both++
		}
	}
	return st
}

// YesNo renders a flag the way the review sheets do.
func YesNo(v bool) string {
	if v {
		return "是"
	}
	return "否"
}
