package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/coamigrate/internal/source"
	"github.com/cleared-dev/coamigrate/internal/statement"
	"github.com/cleared-dev/coamigrate/internal/subjects"
)

func newConvertCommand() *cobra.Command {
	var flags commonFlags
	var hierarchyCols bool
	var xlsx bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Snapshot the subject source as CSV, JSON and Excel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, flags)
			if err != nil {
				return err
			}
			return runConvert(ws, hierarchyCols, xlsx)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&hierarchyCols, "hierarchy", true, "fill level and parent columns from the codes")
	cmd.Flags().BoolVar(&xlsx, "xlsx", true, "also write an Excel copy")

	return cmd
}

func runConvert(ws *workspace, hierarchyCols, xlsx bool) error {
	t, input, err := ws.loadTable()
	if err != nil {
		return err
	}

	if hierarchyCols {
		fillHierarchyColumns(t)
	}

	outputs, err := ws.writeTable(stem(input), t, xlsx)
	if err != nil {
		return err
	}
	return ws.finish("convert", input, t.Len(), outputs)
}

// colLeaf marks subjects without children in the chart.
const colLeaf = "是否末级"

// fillHierarchyColumns writes level, parent and leaf columns derived from the codes.
func fillHierarchyColumns(t *source.Table) {
	svc := subjects.NewService(t.Subjects)
	filled := svc.FillHierarchy()

	levels := make([]string, len(filled))
	parentCodes := make([]string, len(filled))
	parentNames := make([]string, len(filled))
	leaves := make([]string, len(filled))
	for i, s := range filled {
		if s.Level > 0 {
			levels[i] = strconv.Itoa(s.Level)
		}
		parentCodes[i] = s.ParentCode
		parentNames[i] = s.ParentName
		if s.Code != "" {
			leaves[i] = statement.YesNo(svc.IsLeaf(s.Code))
		}
	}
	t.SetColumn(source.ColLevel, levels)
	t.SetColumn(source.ColParentCode, parentCodes)
	t.SetColumn(source.ColParentName, parentNames)
	t.SetColumn(colLeaf, leaves)
	t.Subjects = filled
}
