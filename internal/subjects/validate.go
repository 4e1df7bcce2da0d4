package subjects

import (
	"fmt"

	"github.com/cleared-dev/coamigrate/internal/model"
)

// Validation rule names.
const (
	RuleDuplicateCode    = "duplicate_code"
	RuleOrphan           = "orphan"
	RuleUnknownCategory  = "unknown_category_type"
	RuleUnknownDirection = "unknown_direction"
	RuleMissingName      = "missing_name"
)

// ValidationError describes one data-quality finding. Findings are warnings:
// classification still runs on the subjects as given.
type ValidationError struct {
	Row         int // 1-based data row
	Code        string
	Rule        string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("row %d [%s] %s: %s", e.Row, e.Code, e.Rule, e.Description)
}

// Validate checks a chart of accounts. Subjects without a code (additions
// that only carry a new code) are exempt from the code-based checks.
func Validate(subjects []model.Subject) []ValidationError {
	var errs []ValidationError

	svc := NewService(subjects)
	codes := make(map[string]int, len(subjects))
	for i, s := range subjects {
		if s.Code == "" {
			continue
		}
		if first, seen := codes[s.Code]; seen {
			errs = append(errs, ValidationError{
				Row:         i + 1,
				Code:        s.Code,
				Rule:        RuleDuplicateCode,
				Description: fmt.Sprintf("code already used on row %d", first),
			})
			continue
		}
		codes[s.Code] = i + 1
	}

	for i, s := range subjects {
		row := i + 1
		if s.Code != "" {
			if s.Name == "" {
				errs = append(errs, ValidationError{Row: row, Code: s.Code, Rule: RuleMissingName, Description: "subject has no name"})
			}
			if parent := parentOf(s); parent != "" {
				if !svc.Exists(parent) {
					errs = append(errs, ValidationError{
						Row:         row,
						Code:        s.Code,
						Rule:        RuleOrphan,
						Description: fmt.Sprintf("parent %s not in chart", parent),
					})
				}
			}
		}
		if s.CategoryType != "" && !s.CategoryType.Known() {
			errs = append(errs, ValidationError{
				Row:         row,
				Code:        s.Code,
				Rule:        RuleUnknownCategory,
				Description: fmt.Sprintf("category type %q", s.CategoryType),
			})
		}
		if s.Direction != "" && s.Direction != model.DirectionDebit && s.Direction != model.DirectionCredit {
			errs = append(errs, ValidationError{
				Row:         row,
				Code:        s.Code,
				Rule:        RuleUnknownDirection,
				Description: fmt.Sprintf("direction %q", s.Direction),
			})
		}
	}

	return errs
}
