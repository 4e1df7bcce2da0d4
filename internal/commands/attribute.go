package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/coamigrate/internal/statement"
)

// Columns appended by the attribute command.
const (
	colBalanceSheet    = "资产负债表"
	colIncomeStatement = "利润表"
	colAttribution     = "报表归属说明"
)

func newAttributeCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "attribute",
		Short: "Mark which financial statements each subject feeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, flags)
			if err != nil {
				return err
			}
			return runAttribute(ws)
		},
	}

	flags.register(cmd)
	return cmd
}

func runAttribute(ws *workspace) error {
	t, input, err := ws.loadTable()
	if err != nil {
		return err
	}

	attrs := statement.AttributeAll(t.Subjects)
	bs := make([]string, len(attrs))
	is := make([]string, len(attrs))
	notes := make([]string, len(attrs))
	for i, a := range attrs {
		bs[i] = statement.YesNo(a.BalanceSheet)
		is[i] = statement.YesNo(a.IncomeStatement)
		notes[i] = a.Explanation
	}
	t.SetColumn(colBalanceSheet, bs)
	t.SetColumn(colIncomeStatement, is)
	t.SetColumn(colAttribution, notes)

	outputs, err := ws.writeTable(stem(input)+"-报表归属", t, true)
	if err != nil {
		return err
	}

	stats := statement.Summarize(attrs)
	ws.logger.Info("attributed subjects",
		"total", stats.Total,
		"balance_sheet", stats.BalanceSheet,
		"income_statement", stats.IncomeStatement,
		"both", stats.Both,
	)
	return ws.finish("attribute", input, t.Len(), outputs)
}
