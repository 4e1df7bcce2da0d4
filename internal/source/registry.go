package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Reader decodes a subject sheet from one file format.
type Reader interface {
	Read(r io.Reader) (*Table, error)
	Format() string
}

// Registry holds readers by format name.
type Registry struct {
	readers map[string]Reader
}

// FileInfo describes a readable file in an input directory.
type FileInfo struct {
	Name   string
	Path   string
	Format string
	Size   int64
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(rd Reader) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader format: " + key)
	}
	r.readers[key] = rd
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(format)]
}

// ForPath returns the reader matching the file extension of path, or nil.
func (r *Registry) ForPath(path string) Reader {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return r.Get(ext)
}

// ReadFile opens path and decodes it with the reader for its extension.
func (r *Registry) ReadFile(path string) (*Table, error) {
	rd := r.ForPath(path)
	if rd == nil {
		return nil, fmt.Errorf("unsupported subject file %s", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := rd.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// DefaultRegistry returns a registry with all built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(CSVReader{})
	r.Register(XLSXReader{})
	r.Register(JSONReader{})
	return r
}

// Scan returns the files in dir that some registered reader can decode.
// Excel lock files ("~$...") are skipped. A missing dir yields no files.
func (r *Registry) Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		rd := r.ForPath(e.Name())
		if rd == nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name:   e.Name(),
			Path:   filepath.Join(dir, e.Name()),
			Format: rd.Format(),
			Size:   info.Size(),
		})
	}
	return files, nil
}
