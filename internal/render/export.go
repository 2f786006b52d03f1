package render

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/rgs/internal/audit"
	"github.com/cleared-dev/rgs/internal/hierarchy"
	"github.com/cleared-dev/rgs/internal/model"
	"github.com/cleared-dev/rgs/internal/statements"
)

// Line is a statement line with its balance fixed to two decimals.
type Line struct {
	Code     string `yaml:"code,omitempty" json:"code,omitempty"`
	Label    string `yaml:"label" json:"label"`
	Balance  string `yaml:"balance" json:"balance"`
	Children []Line `yaml:"children,omitempty" json:"children,omitempty"`
}

// Lines converts a statement tree.
func Lines(n model.StatementNode) Line {
	l := Line{Code: n.Code, Label: n.Label, Balance: Amount(n.Balance)}
	for _, c := range n.Children {
		l.Children = append(l.Children, Lines(c))
	}
	return l
}

// TreeNode is one forest node in exported form.
type TreeNode struct {
	Code     string     `yaml:"code" json:"code"`
	Label    string     `yaml:"label" json:"label"`
	Level    int        `yaml:"level" json:"level"`
	Own      string     `yaml:"own" json:"own"`
	Balance  string     `yaml:"balance" json:"balance"`
	Children []TreeNode `yaml:"children,omitempty" json:"children,omitempty"`
}

// TreeNodes converts the forest, roots first.
func TreeNodes(f *hierarchy.Forest) []TreeNode {
	var conv func(id hierarchy.NodeID) TreeNode
	conv = func(id hierarchy.NodeID) TreeNode {
		n := f.Node(id)
		t := TreeNode{
			Code:    n.Account.Code,
			Label:   n.Account.Label,
			Level:   n.Account.Level,
			Own:     Amount(n.Own),
			Balance: Amount(n.Balance),
		}
		for _, c := range n.Children {
			t.Children = append(t.Children, conv(c))
		}
		return t
	}

	out := make([]TreeNode, 0, len(f.Roots()))
	for _, r := range f.Roots() {
		out = append(out, conv(r))
	}
	return out
}

// Document is the YAML export of a report.
type Document struct {
	Statements map[statements.Kind]Line `yaml:"statements"`
	Findings   []audit.Finding          `yaml:"findings,omitempty"`
}

// NewDocument selects the statements of the given kinds.
func NewDocument(set statements.Set, kinds []statements.Kind, findings []audit.Finding) Document {
	doc := Document{Statements: make(map[statements.Kind]Line, len(kinds)), Findings: findings}
	for _, k := range kinds {
		if n, ok := set.ByKind(k); ok {
			doc.Statements[k] = Lines(n)
		}
	}
	return doc
}

// YAML encodes v with two-space indentation.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
