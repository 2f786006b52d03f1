// Package render formats compiled forests, statements and audit findings
// for terminals, YAML and spreadsheets.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/rgs/internal/audit"
	"github.com/cleared-dev/rgs/internal/hierarchy"
	"github.com/cleared-dev/rgs/internal/model"
)

const (
	labelWidth  = 52
	amountWidth = 16
	indent      = "  "
)

// Amount formats a balance with two decimals.
func Amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// row lays out an indented label column followed by right-aligned amounts.
func (s styles) row(depth int, code, label string, st *lipgloss.Style, amounts ...decimal.Decimal) string {
	left := label
	if code != "" {
		left = s.code.Render(code) + " " + label
	}
	left = strings.Repeat(indent, depth) + left
	if pad := labelWidth - lipgloss.Width(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	if st != nil {
		left = st.Render(left)
	}

	var b strings.Builder
	b.WriteString(left)
	for _, a := range amounts {
		col := fmt.Sprintf("%*s", amountWidth, Amount(a))
		if a.IsNegative() {
			col = s.negative.Render(col)
		}
		b.WriteString(col)
	}
	return b.String()
}

// Statement writes one statement as an indented table.
func Statement(w io.Writer, n model.StatementNode) error {
	s := newStyles(w)
	var b strings.Builder
	b.WriteString(s.title.Render(n.Label))
	b.WriteString("\n")

	var walk func(n model.StatementNode, depth int)
	walk = func(n model.StatementNode, depth int) {
		var st *lipgloss.Style
		if n.Code == "" {
			st = &s.section
		}
		b.WriteString(s.row(depth, n.Code, n.Label, st, n.Balance))
		b.WriteString("\n")
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, c := range n.Children {
		walk(c, 0)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Tree writes every node of the forest with its own and aggregated balance.
func Tree(w io.Writer, f *hierarchy.Forest) error {
	s := newStyles(w)
	var b strings.Builder
	header := fmt.Sprintf("%-*s%*s%*s", labelWidth, "Account", amountWidth, "Own", amountWidth, "Balance")
	b.WriteString(s.title.Render(header))
	b.WriteString("\n")

	f.Walk(func(id hierarchy.NodeID, depth int) bool {
		n := f.Node(id)
		var st *lipgloss.Style
		if n.Parent == hierarchy.NoParent {
			st = &s.total
		}
		b.WriteString(s.row(depth, n.Account.Code, n.Account.Label, st, n.Own, n.Balance))
		b.WriteString("\n")
		return true
	})

	_, err := io.WriteString(w, b.String())
	return err
}

// Findings writes one line per audit finding, or a single all-clear line.
func Findings(w io.Writer, findings []audit.Finding) error {
	s := newStyles(w)
	var b strings.Builder
	if len(findings) == 0 {
		b.WriteString(s.dim.Render("no findings"))
		b.WriteString("\n")
	}
	for _, f := range findings {
		sev := s.warnSev.Render(string(f.Severity))
		if f.Severity == audit.SeverityError {
			sev = s.errorSev.Render(string(f.Severity))
		}
		subject := string(f.Check)
		if f.Code != "" {
			subject += " " + s.code.Render(f.Code)
		}
		fmt.Fprintf(&b, "%s %s: %s\n", sev, subject, f.Description)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
