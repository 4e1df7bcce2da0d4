// Package subjects provides lookup, hierarchy filling and data-quality checks
// over a loaded chart of accounts.
package subjects

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cleared-dev/coamigrate/internal/hierarchy"
	"github.com/cleared-dev/coamigrate/internal/model"
	"github.com/cleared-dev/coamigrate/internal/source"
)

// Service provides in-memory lookup over a chart of accounts.
type Service struct {
	subjects []model.Subject
	byCode   map[string]model.Subject
}

// NewService creates a Service from a slice of subjects. On duplicate codes
// the first subject wins the lookup; Validate reports the rest.
func NewService(subjects []model.Subject) *Service {
	byCode := make(map[string]model.Subject, len(subjects))
	for _, s := range subjects {
		if s.Code == "" {
			continue
		}
		if _, ok := byCode[s.Code]; !ok {
			byCode[s.Code] = s
		}
	}
	return &Service{subjects: subjects, byCode: byCode}
}

// Get returns a subject by code.
func (s *Service) Get(code string) (model.Subject, bool) {
	sub, ok := s.byCode[hierarchy.Normalize(code)]
	return sub, ok
}

// Exists reports whether a subject code exists.
func (s *Service) Exists(code string) bool {
	_, ok := s.Get(code)
	return ok
}

// Children returns the direct children of code, in source order.
func (s *Service) Children(code string) []model.Subject {
	code = hierarchy.Normalize(code)
	var result []model.Subject
	for _, sub := range s.subjects {
		if sub.Code != "" && parentOf(sub) == code {
			result = append(result, sub)
		}
	}
	return result
}

// IsLeaf reports whether code has no children in the chart.
func (s *Service) IsLeaf(code string) bool {
	return len(s.Children(code)) == 0
}

// CountByCategoryType counts subjects per standard category type, in the
// order of model.CategoryTypes.
func (s *Service) CountByCategoryType() []int {
	counts := make([]int, len(model.CategoryTypes))
	for i, t := range model.CategoryTypes {
		counts[i] = len(s.ByCategoryType(t))
	}
	return counts
}

// ByCategoryType returns all subjects of the given category type.
func (s *Service) ByCategoryType(t model.CategoryType) []model.Subject {
	var result []model.Subject
	for _, sub := range s.subjects {
		if sub.CategoryType == t {
			result = append(result, sub)
		}
	}
	return result
}

// FillHierarchy returns a copy of the subjects with Level, ParentCode and
// ParentName completed from the codes. Values already present are kept.
func (s *Service) FillHierarchy() []model.Subject {
	out := make([]model.Subject, len(s.subjects))
	for i, sub := range s.subjects {
		if sub.Code != "" {
			if sub.Level == 0 {
				sub.Level = hierarchy.Level(sub.Code)
			}
			if sub.ParentCode == "" {
				sub.ParentCode = hierarchy.Parent(sub.Code)
			}
			if sub.ParentName == "" && sub.ParentCode != "" {
				if p, ok := s.Get(sub.ParentCode); ok {
					sub.ParentName = p.Name
				}
			}
		}
		out[i] = sub
	}
	return out
}

// Save writes the subjects as a flat CSV file, creating parent directories.
func (s *Service) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating subjects dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating subjects file: %w", err)
	}
	defer f.Close()

	t, err := Table(s.subjects)
	if err != nil {
		return err
	}
	if err := source.WriteCSV(f, t); err != nil {
		return fmt.Errorf("writing subjects: %w", err)
	}
	return nil
}

// flatHeader is the column layout of a flat subject file.
var flatHeader = []string{
	source.ColCode,
	source.ColName,
	source.ColParentCode,
	source.ColParentName,
	source.ColLevel,
	source.ColCategoryType,
	source.ColDirection,
	source.ColAuxiliary,
}

// Table renders subjects as a flat subject sheet.
func Table(subjects []model.Subject) (*source.Table, error) {
	rows := make([][]string, len(subjects))
	for i, sub := range subjects {
		level := ""
		if sub.Level > 0 {
			level = strconv.Itoa(sub.Level)
		}
		rows[i] = []string{
			sub.Code,
			sub.Name,
			sub.ParentCode,
			sub.ParentName,
			level,
			string(sub.CategoryType),
			string(sub.Direction),
			sub.Auxiliary,
		}
	}
	t, err := source.NewTable(flatHeader, rows)
	if err != nil {
		return nil, fmt.Errorf("building subject table: %w", err)
	}
	return t, nil
}

func parentOf(sub model.Subject) string {
	if sub.ParentCode != "" {
		return sub.ParentCode
	}
	return hierarchy.Parent(sub.Code)
}
