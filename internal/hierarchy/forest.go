package hierarchy

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/rgs/internal/model"
)

// NodeID addresses a node inside its Forest.
type NodeID int

// NoParent marks a forest root.
const NoParent NodeID = -1

// BalanceNode is one account in the compiled hierarchy.
type BalanceNode struct {
	Account model.Account
	// Own is the account's adjusted raw balance.
	Own decimal.Decimal
	// Balance is Own plus the balances of all children.
	Balance  decimal.Decimal
	Parent   NodeID
	Children []NodeID
}

// Forest is an arena of balance nodes addressed by code. Nodes are stored
// in code order; roots and child lists are in code order as well.
type Forest struct {
	nodes  []BalanceNode
	byCode map[string]NodeID
	roots  []NodeID
}

// Len returns the number of nodes.
func (f *Forest) Len() int {
	return len(f.nodes)
}

// Node returns the node for id.
func (f *Forest) Node(id NodeID) *BalanceNode {
	return &f.nodes[id]
}

// Lookup finds a node by account code.
func (f *Forest) Lookup(c string) (NodeID, bool) {
	id, ok := f.byCode[c]
	return id, ok
}

// Roots returns the forest roots.
func (f *Forest) Roots() []NodeID {
	out := make([]NodeID, len(f.roots))
	copy(out, f.roots)
	return out
}

// RootNodes returns the root nodes themselves.
func (f *Forest) RootNodes() []*BalanceNode {
	out := make([]*BalanceNode, len(f.roots))
	for i, id := range f.roots {
		out[i] = &f.nodes[id]
	}
	return out
}

// Children returns the direct children of id.
func (f *Forest) Children(id NodeID) []*BalanceNode {
	kids := f.nodes[id].Children
	out := make([]*BalanceNode, len(kids))
	for i, k := range kids {
		out[i] = &f.nodes[k]
	}
	return out
}

// Walk visits every node depth-first, parents before children. Returning
// false from fn skips the node's descendants.
func (f *Forest) Walk(fn func(id NodeID, depth int) bool) {
	var visit func(id NodeID, depth int)
	visit = func(id NodeID, depth int) {
		if !fn(id, depth) {
			return
		}
		for _, c := range f.nodes[id].Children {
			visit(c, depth+1)
		}
	}
	for _, r := range f.roots {
		visit(r, 0)
	}
}

// Total is the sum of root balances.
func (f *Forest) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range f.roots {
		sum = sum.Add(f.nodes[r].Balance)
	}
	return sum
}

// OwnTotal is the sum of every node's adjusted raw balance.
func (f *Forest) OwnTotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range f.nodes {
		sum = sum.Add(f.nodes[i].Own)
	}
	return sum
}
