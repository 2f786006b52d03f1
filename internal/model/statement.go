package model

import "github.com/shopspring/decimal"

// StatementNode is one line of a financial statement. Sections and leaves
// share the type; Code is empty for lines that do not map to an account.
type StatementNode struct {
	Code     string          `yaml:"code,omitempty" json:"code,omitempty"`
	Label    string          `yaml:"label" json:"label"`
	Balance  decimal.Decimal `yaml:"balance" json:"balance"`
	Children []StatementNode `yaml:"children,omitempty" json:"children,omitempty"`
}

// Child returns the first direct child with the given label.
func (n StatementNode) Child(label string) (StatementNode, bool) {
	for _, c := range n.Children {
		if c.Label == label {
			return c, true
		}
	}
	return StatementNode{}, false
}
