package balances

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// DefaultPath is the balances location relative to a project root.
const DefaultPath = "balances.csv"

// Load reads balances.csv from a project root.
func Load(repoRoot string) (map[string]decimal.Decimal, error) {
	return LoadFile(filepath.Join(repoRoot, DefaultPath))
}

// LoadFile reads a balances CSV. A missing file yields no balances, which
// the compiler treats as all zero.
func LoadFile(path string) (map[string]decimal.Decimal, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]decimal.Decimal{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening balances %s: %w", path, err)
	}
	defer f.Close()

	bals, err := ReadBalances(f)
	if err != nil {
		return nil, fmt.Errorf("reading balances %s: %w", path, err)
	}
	return bals, nil
}

// SaveFile writes balances to path, creating its directory.
func SaveFile(path string, balances map[string]decimal.Decimal) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating balances dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating balances file: %w", err)
	}
	defer f.Close()

	if err := WriteBalances(f, balances); err != nil {
		return fmt.Errorf("writing balances: %w", err)
	}
	return nil
}
