package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/coamigrate/internal/model"
	"github.com/cleared-dev/coamigrate/internal/report"
)

// Output names of the category report.
const (
	classificationJSON     = "科目分类结果.json"
	classificationMarkdown = "科目分类分析报告.md"
	colCategory            = "分类"
)

func newClassifyCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Sort subjects into migration categories and write the category report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, flags)
			if err != nil {
				return err
			}
			return runClassify(ws)
		},
	}

	flags.register(cmd)
	return cmd
}

func runClassify(ws *workspace) error {
	t, input, err := ws.loadTable()
	if err != nil {
		return err
	}

	cats := ws.classifier().Categories(t.Subjects)
	groups := report.GroupByCategory(t.Subjects, cats)

	values := make([]string, len(cats))
	for i, c := range cats {
		values[i] = string(c)
	}
	t.SetColumn(colCategory, values)

	var outputs []string
	p, err := ws.writeFile(classificationJSON, func(w io.Writer) error {
		return report.WriteGroupedJSON(w, groups)
	})
	if err != nil {
		return err
	}
	outputs = append(outputs, p)

	p, err = ws.writeFile(classificationMarkdown, func(w io.Writer) error {
		return report.WriteMarkdown(w, groups, ws.cfg.Report.DetailLimit)
	})
	if err != nil {
		return err
	}
	outputs = append(outputs, p)

	tables, err := ws.writeTable(stem(input)+"-分类", t, false)
	if err != nil {
		return err
	}
	outputs = append(outputs, tables...)

	sum := report.Summarize(groups)
	for _, c := range sum.Counts {
		if c.Count > 0 {
			ws.logger.Info("category", "name", c.Category, "count", c.Count, "share", c.Share.StringFixed(1))
		}
	}
	ws.logger.Info("classified subjects",
		"total", sum.Total,
		"auxiliary", sum.Count(model.CategoryOtherAuxiliaryAccounting),
	)

	return ws.finish("classify", input, t.Len(), outputs)
}
