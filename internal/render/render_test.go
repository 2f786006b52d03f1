package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/rgs/internal/audit"
	"github.com/cleared-dev/rgs/internal/classify"
	"github.com/cleared-dev/rgs/internal/code"
	"github.com/cleared-dev/rgs/internal/hierarchy"
	"github.com/cleared-dev/rgs/internal/model"
	"github.com/cleared-dev/rgs/internal/statements"
)

func fixture() (*hierarchy.Forest, statements.Set) {
	accounts := []model.Account{
		{Code: "03000", Label: "Inventaris", Level: 1, Direction: model.DirectionDebit},
		{Code: "03100", Label: "Inventaris aanschafwaarde", Level: 2, Direction: model.DirectionDebit},
		{Code: "31000", Label: "Aandelenkapitaal", Level: 1, Direction: model.DirectionCredit},
		{Code: "41000", Label: "Personeelskosten", Level: 1, Direction: model.DirectionDebit},
		{Code: "81000", Label: "Netto-omzet", Level: 1, Direction: model.DirectionCredit},
	}
	raw := map[string]decimal.Decimal{
		"03100": decimal.NewFromInt(1200),
		"31000": decimal.NewFromInt(1200),
		"41000": decimal.RequireFromString("750.5"),
		"81000": decimal.NewFromInt(500),
	}
	res := hierarchy.NewCompiler(code.PrefixWidths{2, 3, 4, 5}, classify.Default()).Compile(accounts, raw)
	return res.Forest, statements.Default().All(res.Forest)
}

func TestStatement(t *testing.T) {
	_, set := fixture()

	var buf bytes.Buffer
	require.NoError(t, Statement(&buf, set.Income))
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, statements.LabelIncomeStatement, lines[0])
	assert.Contains(t, out, "81000 Netto-omzet")
	assert.Contains(t, out, "750.50")
	assert.Contains(t, out, "-250.50")

	var net string
	for _, l := range lines {
		if strings.HasPrefix(l, statements.LabelNetProfit) {
			net = l
		}
	}
	require.NotEmpty(t, net)
	assert.True(t, strings.HasSuffix(net, "-250.50"))
}

func TestStatement_Indentation(t *testing.T) {
	_, set := fixture()

	var buf bytes.Buffer
	require.NoError(t, Statement(&buf, set.BalanceSheet))

	assert.Contains(t, buf.String(), "\n"+statements.LabelAssets)
	assert.Contains(t, buf.String(), "\n  03000 Inventaris")
	assert.Contains(t, buf.String(), "\n    03100 Inventaris aanschafwaarde")
}

func TestTree(t *testing.T) {
	f, _ := fixture()

	var buf bytes.Buffer
	require.NoError(t, Tree(&buf, f))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "Account"))
	assert.True(t, strings.HasPrefix(lines[1], "03000 Inventaris"))
	assert.True(t, strings.HasPrefix(lines[2], "  03100"))

	fields := strings.Fields(lines[1])
	assert.Equal(t, []string{"0.00", "1200.00"}, fields[len(fields)-2:])
}

func TestFindings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Findings(&buf, nil))
	assert.Equal(t, "no findings\n", buf.String())

	buf.Reset()
	require.NoError(t, Findings(&buf, []audit.Finding{
		{Check: audit.CheckOrphan, Severity: audit.SeverityWarning, Code: "23100", Description: "promoted"},
		{Check: audit.CheckBalanceSheetDiff, Severity: audit.SeverityError, Description: "off by 1.00"},
	}))
	assert.Equal(t, "warning orphan 23100: promoted\nerror balance-sheet-diff: off by 1.00\n", buf.String())
}

func TestTreeNodes(t *testing.T) {
	f, _ := fixture()

	nodes := TreeNodes(f)
	require.Len(t, nodes, 4)
	assert.Equal(t, "03000", nodes[0].Code)
	assert.Equal(t, "0.00", nodes[0].Own)
	assert.Equal(t, "1200.00", nodes[0].Balance)
	require.Len(t, nodes[0].Children, 1)
	assert.Equal(t, 2, nodes[0].Children[0].Level)
}

func TestYAML(t *testing.T) {
	_, set := fixture()
	doc := NewDocument(set, []statements.Kind{statements.KindIncome}, nil)

	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, doc))

	var back Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	require.Contains(t, back.Statements, statements.KindIncome)
	assert.NotContains(t, back.Statements, statements.KindBalance)

	inc := back.Statements[statements.KindIncome]
	assert.Equal(t, "-250.50", inc.Balance)
	assert.Equal(t, statements.LabelRevenue, inc.Children[0].Label)
	assert.Equal(t, "81000", inc.Children[0].Children[0].Code)
	assert.True(t, strings.HasPrefix(buf.String(), "statements:\n  income:\n"))
}

func TestXLSX(t *testing.T) {
	_, set := fixture()

	var buf bytes.Buffer
	require.NoError(t, XLSX(&buf, set, statements.Kinds))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Income", "Balance Sheet", "Cash Flow"}, wb.GetSheetList())

	rows, err := wb.GetRows("Income")
	require.NoError(t, err)
	assert.Equal(t, statements.LabelIncomeStatement, rows[0][0])
	assert.Equal(t, []string{"Code", "Label", "Balance"}, rows[1])
	assert.Equal(t, statements.LabelRevenue, rows[2][1])
	assert.Equal(t, "81000", rows[3][0])
	assert.Equal(t, "  Netto-omzet", rows[3][1])
}

func TestXLSX_UnknownKind(t *testing.T) {
	_, set := fixture()
	var buf bytes.Buffer
	assert.Error(t, XLSX(&buf, set, []statements.Kind{"ledger"}))
}
