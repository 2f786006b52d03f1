// Package importer loads published reference tables into catalog accounts.
// Tables are dropped into <root>/import/ as CSV or XLSX files and moved to
// import/processed/ once imported.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/rgs/internal/accounts"
	"github.com/cleared-dev/rgs/internal/model"
)

// Parser converts a reference table file into raw rows.
type Parser interface {
	Parse(r io.Reader) ([]accounts.RawRow, error)
	Format() string
}

// CSVParser reads reference tables exported as CSV.
type CSVParser struct{}

// Format returns the file extension handled.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads the table.
func (p *CSVParser) Parse(r io.Reader) ([]accounts.RawRow, error) {
	return accounts.ReadRawRows(r)
}

// XLSXParser reads reference tables from the first sheet of a workbook.
type XLSXParser struct{}

// Format returns the file extension handled.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse reads the table.
func (p *XLSXParser) Parse(r io.Reader) ([]accounts.RawRow, error) {
	return accounts.ReadRawRowsXLSX(r)
}

// Registry holds parsers keyed by format.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a table in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// ForFile returns the parser matching a file's extension, or nil.
func (r *Registry) ForFile(name string) Parser {
	return r.Get(strings.TrimPrefix(filepath.Ext(name), "."))
}

// Formats lists the registered formats in sorted order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with the CSV and XLSX parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{})
	r.Register(&XLSXParser{})
	return r
}

// ImportFile parses one reference table and converts it to accounts.
func (r *Registry) ImportFile(path string) ([]model.Account, error) {
	p := r.ForFile(path)
	if p == nil {
		return nil, fmt.Errorf("no parser for %s (supported: %s)", filepath.Base(path), strings.Join(r.Formats(), ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	accts, err := accounts.ConvertRows(rows)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", filepath.Base(path), err)
	}
	return accts, nil
}

// Merge overlays imported accounts on an existing catalog. Accounts with
// a known code replace the existing entry in place; new codes are appended
// in code order.
func Merge(existing, imported []model.Account) []model.Account {
	incoming := make(map[string]model.Account, len(imported))
	for _, a := range imported {
		if _, ok := incoming[a.Code]; !ok {
			incoming[a.Code] = a
		}
	}

	out := make([]model.Account, 0, len(existing)+len(imported))
	for _, a := range existing {
		if repl, ok := incoming[a.Code]; ok {
			a = repl
			delete(incoming, a.Code)
		}
		out = append(out, a)
	}

	added := make([]model.Account, 0, len(incoming))
	for _, a := range incoming {
		added = append(added, a)
	}
	sort.Slice(added, func(i, j int) bool { return added[i].Code < added[j].Code })
	return append(out, added...)
}

// importDir is the subdirectory for reference tables.
const importDir = "import"

// processedDir is the subdirectory for imported tables.
const processedDir = "import/processed"

// Scan returns the files in <repoRoot>/import/ that a parser in the
// registry can read.
func (r *Registry) Scan(repoRoot string) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if r.ForFile(e.Name()) == nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(repoRoot, fileName string) error {
	src := filepath.Join(repoRoot, importDir, fileName)
	dstDir := filepath.Join(repoRoot, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
