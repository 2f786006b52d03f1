package balances

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Missing(t *testing.T) {
	got, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	in := map[string]decimal.Decimal{"11000": dec("12.34"), "21000": dec("-5")}

	require.NoError(t, SaveFile(filepath.Join(dir, DefaultPath), in))

	got, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got["11000"].Equal(dec("12.34")))
	assert.True(t, got["21000"].Equal(dec("-5")))
}

func TestSaveFile_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2026", "balances.csv")
	require.NoError(t, SaveFile(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Header+"\n", string(data))
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balances.csv")
	require.NoError(t, os.WriteFile(path, []byte("code,balance\n11000,x\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
