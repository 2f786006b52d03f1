package hierarchy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/rgs/internal/model"
)

func TestCompile_SingleChild(t *testing.T) {
	accounts := []model.Account{
		acct("1000", 1, model.DirectionDebit, "B", ""),
		acct("1100", 2, model.DirectionDebit, "BA", ""),
	}
	res := Compile(accounts, map[string]decimal.Decimal{"1100": dec("500")})
	f := res.Forest

	roots := f.RootNodes()
	require.Len(t, roots, 1)
	assert.Equal(t, "1000", roots[0].Account.Code)
	assertDec(t, "500", roots[0].Balance)
	assertDec(t, "0", roots[0].Own)

	kids := f.Children(f.Roots()[0])
	require.Len(t, kids, 1)
	assert.Equal(t, "1100", kids[0].Account.Code)
	assertDec(t, "500", kids[0].Balance)
	assert.Empty(t, kids[0].Children)
}

func fixture() []model.Account {
	return []model.Account{
		acct("00000", 1, model.DirectionDebit, "BIva", ""),
		acct("02000", 2, model.DirectionDebit, "BMva", ""),
		acct("02100", 3, model.DirectionDebit, "BMvaBeg", ""),
		acct("02200", 3, model.DirectionDebit, "BMvaMac", ""),
		acct("10000", 1, model.DirectionDebit, "BVlo", ""),
		acct("11000", 2, model.DirectionDebit, "BLim", ""),
		acct("13000", 2, model.DirectionDebit, "BVorDeb", "BSchVoo"),
		acct("20000", 1, model.DirectionCredit, "BSch", ""),
		acct("22000", 2, model.DirectionCredit, "BSchVoo", ""),
		acct("30000", 1, model.DirectionCredit, "BEiv", ""),
		acct("31000", 2, model.DirectionCredit, "BEivGok", ""),
	}
}

func fixtureBalances() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"02100": dec("1000"),
		"02200": dec("250.50"),
		"02000": dec("10"),
		"11000": dec("400"),
		"13000": dec("-60"),
		"31000": dec("1600.50"),
	}
}

func TestCompile_Aggregates(t *testing.T) {
	res := Compile(fixture(), fixtureBalances())
	f := res.Forest

	get := func(c string) *BalanceNode {
		id, ok := f.Lookup(c)
		require.True(t, ok, "code %s", c)
		return f.Node(id)
	}

	assertDec(t, "1260.50", get("02000").Balance)
	assertDec(t, "1260.50", get("00000").Balance)
	assertDec(t, "400", get("10000").Balance)
	assertDec(t, "0", get("13000").Balance)
	assertDec(t, "60", get("22000").Balance)
	assertDec(t, "60", get("20000").Balance)
	assertDec(t, "1600.50", get("30000").Balance)

	require.Len(t, res.Diagnostics.Flips, 1)
	assert.True(t, res.Diagnostics.Empty())
}

func TestCompile_NodeConsistency(t *testing.T) {
	res := Compile(fixture(), fixtureBalances())
	f := res.Forest

	visited := 0
	f.Walk(func(id NodeID, depth int) bool {
		visited++
		n := f.Node(id)
		sum := n.Own
		for _, k := range f.Children(id) {
			sum = sum.Add(k.Balance)
		}
		assert.True(t, sum.Equal(n.Balance), "node %s: own+children %s != balance %s", n.Account.Code, sum, n.Balance)
		assert.True(t, n.Own.Equal(res.Adjusted[n.Account.Code]), "node %s own balance", n.Account.Code)
		return true
	})
	assert.Equal(t, f.Len(), visited, "every node reachable from a root")
}

func TestCompile_ForestTotal(t *testing.T) {
	res := Compile(fixture(), fixtureBalances())

	sum := decimal.Zero
	for _, v := range res.Adjusted {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(res.Forest.Total()))
	assert.True(t, res.Forest.OwnTotal().Equal(res.Forest.Total()))
}

func TestCompile_OrderIndependent(t *testing.T) {
	accounts := fixture()
	reversed := make([]model.Account, len(accounts))
	for i, a := range accounts {
		reversed[len(accounts)-1-i] = a
	}

	a := Compile(accounts, fixtureBalances())
	b := Compile(reversed, fixtureBalances())
	assert.Equal(t, shape(a.Forest), shape(b.Forest))
}

func TestCompile_Deterministic(t *testing.T) {
	a := Compile(fixture(), fixtureBalances())
	b := Compile(fixture(), fixtureBalances())
	assert.Equal(t, shape(a.Forest), shape(b.Forest))
}

// shape flattens a forest into "depth:code=balance" lines.
func shape(f *Forest) []string {
	var out []string
	f.Walk(func(id NodeID, depth int) bool {
		n := f.Node(id)
		out = append(out, string(rune('0'+depth))+":"+n.Account.Code+"="+n.Balance.String())
		return true
	})
	return out
}

func TestCompile_OrphanPromotedToRoot(t *testing.T) {
	accounts := []model.Account{
		acct("10000", 1, model.DirectionDebit, "", ""),
		acct("23100", 3, model.DirectionCredit, "", ""), // 23000 missing
	}
	res := Compile(accounts, map[string]decimal.Decimal{"23100": dec("5")})

	roots := res.Forest.RootNodes()
	require.Len(t, roots, 2)
	assert.Equal(t, "23100", roots[1].Account.Code)
	assertDec(t, "5", roots[1].Balance)
	assert.Equal(t, []string{"23100"}, res.Diagnostics.Orphans)
}

func TestCompile_MalformedLevelBecomesRoot(t *testing.T) {
	// Level 3 for 1000 yields prefix "10" which reproduces the code itself.
	accounts := []model.Account{acct("1000", 3, model.DirectionDebit, "", "")}
	res := Compile(accounts, nil)
	require.Len(t, res.Forest.Roots(), 1)
	assert.Equal(t, []string{"1000"}, res.Diagnostics.Orphans)
}

func TestCompile_InconsistentLevelsStillAggregate(t *testing.T) {
	// 02000 declares a deeper level than its own child.
	accounts := []model.Account{
		acct("00000", 1, model.DirectionDebit, "", ""),
		acct("02000", 4, model.DirectionDebit, "", ""),
		acct("02100", 3, model.DirectionDebit, "", ""),
	}
	res := Compile(accounts, map[string]decimal.Decimal{"02100": dec("7"), "02000": dec("1")})
	f := res.Forest

	id, ok := f.Lookup("02000")
	require.True(t, ok)
	assertDec(t, "8", f.Node(id).Balance)
	// 02000 at level 4 uses prefix "020" which is the code itself, so it is a root.
	assert.Contains(t, res.Diagnostics.Orphans, "02000")
	assertDec(t, "8", f.Total())
}

func TestCompile_DuplicateCodesKeepFirst(t *testing.T) {
	first := acct("1000", 1, model.DirectionDebit, "", "")
	first.Label = "First"
	second := acct("1000", 1, model.DirectionDebit, "", "")
	second.Label = "Second"

	res := Compile([]model.Account{first, second}, map[string]decimal.Decimal{"1000": dec("3")})
	require.Equal(t, 1, res.Forest.Len())
	assert.Equal(t, "First", res.Forest.RootNodes()[0].Account.Label)
	assert.Equal(t, []string{"1000"}, res.Diagnostics.Duplicates)
	assertDec(t, "3", res.Forest.Total())
}

func TestCompile_UnknownRootReported(t *testing.T) {
	accounts := []model.Account{acct("99000", 1, model.DirectionDebit, "", "")}
	res := Compile(accounts, nil)
	assert.Equal(t, []string{"99000"}, res.Diagnostics.UnknownRoots)
	assert.Equal(t, 1, res.Forest.Len(), "unknown accounts stay in the tree")
}

func TestCompile_EmptyInput(t *testing.T) {
	res := Compile(nil, nil)
	assert.Equal(t, 0, res.Forest.Len())
	assert.Empty(t, res.Forest.Roots())
	assert.True(t, res.Forest.Total().IsZero())
}

func TestCompile_DoesNotMutateInput(t *testing.T) {
	raw := fixtureBalances()
	_ = Compile(fixture(), raw)
	assertDec(t, "-60", raw["13000"])
	_, ok := raw["22000"]
	assert.False(t, ok)
}

func TestWalk_SkipDescendants(t *testing.T) {
	res := Compile(fixture(), fixtureBalances())
	var codes []string
	res.Forest.Walk(func(id NodeID, depth int) bool {
		codes = append(codes, res.Forest.Node(id).Account.Code)
		return depth == 0 && res.Forest.Node(id).Account.Code == "00000"
	})
	assert.Equal(t, []string{"00000", "02000", "10000", "20000", "30000"}, codes)
}

func TestCompiler_Classify(t *testing.T) {
	a := acct("41000", 1, model.DirectionDebit, "WPer", "")
	assert.Equal(t, model.ClassExpense, DefaultCompiler().Classify(a))
	assert.Equal(t, model.ClassUnknown, NewCompiler(nil, nil).Classify(a))
}
