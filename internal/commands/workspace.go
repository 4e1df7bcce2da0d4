package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/coamigrate/internal/classify"
	"github.com/cleared-dev/coamigrate/internal/config"
	"github.com/cleared-dev/coamigrate/internal/gitops"
	"github.com/cleared-dev/coamigrate/internal/logging"
	"github.com/cleared-dev/coamigrate/internal/model"
	"github.com/cleared-dev/coamigrate/internal/runlog"
	"github.com/cleared-dev/coamigrate/internal/source"
	"github.com/cleared-dev/coamigrate/internal/subjects"
)

// commonFlags are shared by every command that processes a subject file.
type commonFlags struct {
	repo   string
	input  string
	output string
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.repo, "repo", ".", "workspace directory")
	cmd.Flags().StringVar(&f.input, "input", "", "subject file or directory (default from config)")
	cmd.Flags().StringVar(&f.output, "output", "", "output directory (default from config)")
}

// workspace is the resolved context of one command run.
type workspace struct {
	root   string
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	input  string // subject file or directory
	outDir string
}

// openWorkspace loads coamigrate.yaml, falling back to defaults without
// auto-commit when the directory has none. Environment overrides apply on
// top of the file and flags on top of both.
func openWorkspace(cmd *cobra.Command, flags commonFlags) (*workspace, error) {
	root, err := filepath.Abs(flags.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = config.Default(filepath.Base(root))
		cfg.Git.AutoCommit = false
	case err != nil:
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if flags.input != "" {
		cfg.Paths.Input = flags.input
	}
	if flags.output != "" {
		cfg.Paths.OutputDir = flags.output
	}

	return &workspace{
		root: root,
		cfg:  cfg,
		logger: logging.New(logging.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: cmd.ErrOrStderr(),
		}),
		out:    cmd.OutOrStdout(),
		input:  resolve(root, cfg.Paths.Input),
		outDir: resolve(root, cfg.Paths.OutputDir),
	}, nil
}

// resolve makes p absolute relative to root.
func resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// rel returns p relative to the workspace root when it lies inside it.
func (ws *workspace) rel(p string) string {
	r, err := filepath.Rel(ws.root, p)
	if err != nil || strings.HasPrefix(r, "..") {
		return p
	}
	return filepath.ToSlash(r)
}

// classifier builds the category classifier from configuration.
func (ws *workspace) classifier() *classify.Classifier {
	return classify.New(classify.Options{
		AuxiliaryFirst: ws.cfg.Classification.AuxiliaryFirst,
		TopLevelLength: ws.cfg.Classification.TopLevelLength,
	})
}

// inputFile returns the subject file to read. A directory input yields its
// first readable file.
func (ws *workspace) inputFile(reg *source.Registry) (string, error) {
	if ws.input == "" {
		return "", errors.New("no input configured: pass --input or set paths.input")
	}
	info, err := os.Stat(ws.input)
	if err != nil {
		return "", fmt.Errorf("input %s: %w", ws.rel(ws.input), err)
	}
	if !info.IsDir() {
		return ws.input, nil
	}

	files, err := reg.Scan(ws.input)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no subject files in %s", ws.rel(ws.input))
	}
	if len(files) > 1 {
		ws.logger.Warn("several subject files found, using the first", "dir", ws.rel(ws.input), "file", files[0].Name, "count", len(files))
	}
	return files[0].Path, nil
}

// loadTable reads the input subject sheet and logs data-quality findings.
func (ws *workspace) loadTable() (*source.Table, string, error) {
	reg := source.DefaultRegistry()
	path, err := ws.inputFile(reg)
	if err != nil {
		return nil, "", err
	}

	t, err := reg.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	ws.logger.Info("loaded subjects", "input", ws.rel(path), "records", t.Len())

	counts := subjects.NewService(t.Subjects).CountByCategoryType()
	attrs := make([]any, 0, 2*len(counts))
	for i, n := range counts {
		attrs = append(attrs, string(model.CategoryTypes[i]), n)
	}
	ws.logger.Debug("subjects by category type", attrs...)

	for _, v := range subjects.Validate(t.Subjects) {
		ws.logger.Warn("subject data issue", "row", v.Row, "code", v.Code, "rule", v.Rule, "detail", v.Description)
	}
	return t, path, nil
}

// stem is the input file name without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// create opens name in the output directory for writing.
func (ws *workspace) create(name string) (*os.File, string, error) {
	if err := os.MkdirAll(ws.outDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(ws.outDir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("creating %s: %w", name, err)
	}
	return f, path, nil
}

// writeFile writes one output file with fn and returns its path.
func (ws *workspace) writeFile(name string, fn func(io.Writer) error) (string, error) {
	f, path, err := ws.create(name)
	if err != nil {
		return "", err
	}
	if err := fn(f); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	return path, nil
}

// writeTable writes t as <name>.csv and <name>.json, plus <name>.xlsx when asked.
func (ws *workspace) writeTable(name string, t *source.Table, xlsx bool) ([]string, error) {
	var paths []string

	p, err := ws.writeFile(name+".csv", func(w io.Writer) error { return source.WriteCSV(w, t) })
	if err != nil {
		return nil, err
	}
	paths = append(paths, p)

	p, err = ws.writeFile(name+".json", func(w io.Writer) error { return source.WriteJSON(w, t) })
	if err != nil {
		return nil, err
	}
	paths = append(paths, p)

	if xlsx {
		p, err = ws.writeFile(name+".xlsx", func(w io.Writer) error { return source.WriteXLSX(w, t, "") })
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// finish records the run in the run log, commits when configured and
// prints the written files.
func (ws *workspace) finish(command, input string, records int, outputs []string) error {
	entry := runlog.NewEntry(command, ws.rel(input))
	entry.Records = records
	for _, o := range outputs {
		entry.Outputs = append(entry.Outputs, ws.rel(o))
	}
	if err := runlog.Append(ws.root, []runlog.Entry{entry}); err != nil {
		ws.logger.Warn("failed to write run log", "err", err)
	}

	for _, o := range entry.Outputs {
		fmt.Fprintf(ws.out, "wrote %s\n", o)
	}

	if !ws.cfg.Git.AutoCommit || !gitops.IsRepo(ws.root) {
		return nil
	}
	changed, err := gitops.HasChanges(ws.root)
	if err != nil {
		return err
	}
	if !changed {
		ws.logger.Debug("nothing to commit")
		return nil
	}
	msg := fmt.Sprintf("%s: %d subjects from %s", command, records, entry.Input)
	hash, err := gitops.CommitAll(ws.root, msg, ws.cfg.Git.AuthorName, ws.cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("committing outputs: %w", err)
	}
	ws.logger.Info("committed outputs", "commit", hash, "run_id", entry.RunID)
	return nil
}
