package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/coamigrate/internal/report"
)

// Columns appended by the methods command.
const (
	colMatchMethod      = "匹配方法"
	colMatchExplanation = "匹配方法说明"
)

func newMethodsCommand() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "methods",
		Short: "Annotate each subject with its matching method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, flags)
			if err != nil {
				return err
			}
			return runMethods(ws)
		},
	}

	flags.register(cmd)
	return cmd
}

func runMethods(ws *workspace) error {
	t, input, err := ws.loadTable()
	if err != nil {
		return err
	}

	decisions := ws.classifier().MatchMethods(t.Subjects)
	methods := make([]string, len(decisions))
	explanations := make([]string, len(decisions))
	for i, d := range decisions {
		methods[i] = string(d.Method)
		explanations[i] = d.Explanation
	}
	t.SetColumn(colMatchMethod, methods)
	t.SetColumn(colMatchExplanation, explanations)

	name := stem(input) + "-匹配方法"
	outputs, err := ws.writeTable(name, t, false)
	if err != nil {
		return err
	}

	stats := report.MethodStats(decisions)
	p, err := ws.writeFile(name+".md", func(w io.Writer) error {
		return report.WriteTable(w, ws.cfg.Project.Standard+" - 默认科目数据（含匹配方法备注）", report.MethodNotes(stats), t)
	})
	if err != nil {
		return err
	}
	outputs = append(outputs, p)

	for _, s := range stats {
		ws.logger.Info("match method", "method", s.Method, "count", s.Count)
	}
	return ws.finish("methods", input, t.Len(), outputs)
}
