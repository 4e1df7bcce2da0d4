package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/coamigrate/internal/mapping"
	"github.com/cleared-dev/coamigrate/internal/model"
	"github.com/cleared-dev/coamigrate/internal/store/postgres"
	"github.com/cleared-dev/coamigrate/internal/subjects"
)

// comparisonWorkbook is the output name of the compare command.
const comparisonWorkbook = "科目映射对比表.xlsx"

// mappingStore is the part of the mapping repository compare uses.
type mappingStore interface {
	EnsureSchema(ctx context.Context) error
	List(ctx context.Context, batch string) ([]model.Mapping, error)
	ReplaceBatch(ctx context.Context, batch string, mappings []model.Mapping) error
}

type compareOptions struct {
	dsn          string
	batch        string
	fromDB       bool
	save         bool
	sourceSystem string
}

func newCompareCommand() *cobra.Command {
	var flags commonFlags
	var opts compareOptions

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Write the mapping comparison workbook for review",
		Long: "Proposes a target for every subject of the input and writes the comparison workbook.\n" +
			"With --from-db the mappings are read from the subject_mapping table instead;\n" +
			"with --save the proposals are stored there under --batch.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, flags)
			if err != nil {
				return err
			}
			if opts.dsn == "" {
				opts.dsn = ws.cfg.Database.DSN
			}

			var store mappingStore
			if opts.fromDB || opts.save {
				if opts.dsn == "" {
					return errors.New("no database configured: pass --dsn or set database.dsn")
				}
				db, err := postgres.OpenDB(cmd.Context(), opts.dsn)
				if err != nil {
					return fmt.Errorf("connecting to database: %w", err)
				}
				defer db.Close()
				store = postgres.NewMappingRepository(db)
			}
			return runCompare(cmd.Context(), ws, store, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "Postgres DSN (default from config or COAMIGRATE_DATABASE_DSN)")
	cmd.Flags().StringVar(&opts.batch, "batch", "default", "mapping batch id in subject_mapping")
	cmd.Flags().BoolVar(&opts.fromDB, "from-db", false, "read mappings from the database instead of the input")
	cmd.Flags().BoolVar(&opts.save, "save", false, "store the proposed mappings in the database")
	cmd.Flags().StringVar(&opts.sourceSystem, "source-system", "", "source system name shown in the workbook")
	cmd.MarkFlagsMutuallyExclusive("from-db", "save")

	return cmd
}

func runCompare(ctx context.Context, ws *workspace, store mappingStore, opts compareOptions) error {
	var (
		mappings []model.Mapping
		input    string
		err      error
	)

	if opts.fromDB {
		mappings, err = store.List(ctx, opts.batch)
		if err != nil {
			return err
		}
		input = "subject_mapping:" + opts.batch
		ws.logger.Info("loaded mappings", "batch", opts.batch, "records", len(mappings))
	} else {
		mappings, input, err = proposeFromInput(ws)
		if err != nil {
			return err
		}
		if opts.save {
			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}
			if err := store.ReplaceBatch(ctx, opts.batch, mappings); err != nil {
				return err
			}
			ws.logger.Info("stored mappings", "batch", opts.batch, "records", len(mappings))
		}
	}

	conflicts := 0
	for _, m := range mappings {
		if m.Conflict {
			conflicts++
		}
	}
	if conflicts > 0 {
		ws.logger.Warn("mappings share a target", "conflicts", conflicts)
	}

	p, err := ws.writeFile(comparisonWorkbook, func(w io.Writer) error {
		return mapping.WriteWorkbook(w, mappings, mapping.WorkbookOptions{
			SourceSystem: opts.sourceSystem,
			GeneratedAt:  time.Now(),
		})
	})
	if err != nil {
		return err
	}
	return ws.finish("compare", input, len(mappings), []string{p})
}

// proposeFromInput classifies the input subjects and proposes their mappings.
func proposeFromInput(ws *workspace) ([]model.Mapping, string, error) {
	t, input, err := ws.loadTable()
	if err != nil {
		return nil, "", err
	}
	filled := subjects.NewService(t.Subjects).FillHierarchy()
	classes := ws.classifier().ClassifyAll(filled)
	return mapping.Propose(filled, classes), input, nil
}
