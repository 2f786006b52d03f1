package accounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/rgs/internal/classify"
	"github.com/cleared-dev/rgs/internal/model"
)

func TestNewService(t *testing.T) {
	chart := DefaultChart()
	svc := NewService(chart)

	assert.Len(t, svc.All(), len(chart))
}

func TestGetExists(t *testing.T) {
	svc := NewService(DefaultChart())

	acct, ok := svc.Get("11100")
	assert.True(t, ok)
	assert.Equal(t, "Bankrekening", acct.Label)

	_, ok = svc.Get("99999")
	assert.False(t, ok)

	assert.True(t, svc.Exists("11100"))
	assert.False(t, svc.Exists("99999"))
}

func TestDuplicateCodeFirstWins(t *testing.T) {
	svc := NewService([]model.Account{
		{Code: "11000", Label: "first", Level: 1},
		{Code: "11000", Label: "second", Level: 1},
	})
	acct, ok := svc.Get("11000")
	require.True(t, ok)
	assert.Equal(t, "first", acct.Label)
	assert.Len(t, svc.All(), 2)
}

func TestByIdentifier(t *testing.T) {
	svc := NewService([]model.Account{
		{Code: "22000", Identifiers: model.Identifiers{RGS: "BSchVoo"}},
		{Code: "21000", Identifiers: model.Identifiers{RGS: "BSchVoo"}},
		{Code: "23000", Identifiers: model.Identifiers{RGS: "BSchCre"}},
		{Code: "24000"},
	})

	got := svc.ByIdentifier("BSchVoo")
	require.Len(t, got, 2)
	assert.Equal(t, "21000", got[0].Code)
	assert.Equal(t, "22000", got[1].Code)

	assert.Empty(t, svc.ByIdentifier("missing"))
	assert.Empty(t, svc.ByIdentifier(""))
}

func TestByClass(t *testing.T) {
	svc := NewService(DefaultChart())
	c := classify.Default()

	var codes []string
	for _, a := range svc.ByClass(c, model.ClassRevenue) {
		codes = append(codes, a.Code)
	}
	assert.Equal(t, []string{"81000", "81100", "81200"}, codes)

	divs := svc.ByClass(c, model.ClassDividend)
	require.Len(t, divs, 1)
	assert.Equal(t, "49000", divs[0].Code)

	assert.Len(t, svc.ByClass(c, model.ClassLiability), 3)
}

func TestApplicableTo(t *testing.T) {
	svc := NewService(DefaultChart())

	has := func(accts []model.Account, code string) bool {
		for _, a := range accts {
			if a.Code == code {
				return true
			}
		}
		return false
	}

	bv := svc.ApplicableTo(model.EntityCorporation)
	assert.True(t, has(bv, "31000"))
	assert.True(t, has(bv, "49000"))
	assert.False(t, has(bv, "32000"))

	zzp := svc.ApplicableTo(model.EntitySoleTrader)
	assert.False(t, has(zzp, "31000"))
	assert.True(t, has(zzp, "32000"))

	assert.Len(t, svc.ApplicableTo("other"), len(DefaultChart()))
}

func TestLoadFromTestdata(t *testing.T) {
	dir := t.TempDir()
	acctDir := filepath.Join(dir, "accounts")
	require.NoError(t, os.MkdirAll(acctDir, 0o755))

	src, err := os.ReadFile("../../testdata/chart-of-accounts.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(acctDir, "chart-of-accounts.csv"), src, 0o644))

	svc, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, svc.All(), 20)
	assert.True(t, svc.Exists("13000"))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	chart := DefaultChart()
	svc := NewService(chart)

	dir := t.TempDir()
	require.NoError(t, svc.Save(dir))

	_, err := os.Stat(filepath.Join(dir, "accounts", "chart-of-accounts.csv"))
	require.NoError(t, err)

	svc2, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, chart, svc2.All())
}

func TestSaveFile_CustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.csv")
	require.NoError(t, NewService(DefaultChart()).SaveFile(path))

	svc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, svc.All(), len(DefaultChart()))
}
