// Package code interprets the fixed-width numeric account codes of the
// chart of accounts. Hierarchy is positional: an ancestor's code is the
// child's code truncated to the ancestor level's significant digits and
// padded back to full width with zeros.
package code

import (
	"strconv"
	"strings"
)

// Numeric returns the integer value of an all-digit code. Codes too long
// to fit an int are not numeric.
func Numeric(c string) (int, bool) {
	if c == "" {
		return 0, false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < '0' || c[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(c)
	if err != nil {
		return 0, false
	}
	return n, true
}

// PrefixWidths holds the number of significant leading digits per level;
// index 0 is level 1.
type PrefixWidths []int

// DefaultPrefixWidths gives one significant digit per level.
func DefaultPrefixWidths() PrefixWidths {
	return PrefixWidths{1, 2, 3, 4, 5}
}

// Width returns the significant digit count of a level. Levels past the
// end of the table extend the last entry by one digit per level.
func (p PrefixWidths) Width(level int) int {
	if level < 1 {
		return 0
	}
	if len(p) == 0 {
		return level
	}
	if level <= len(p) {
		return p[level-1]
	}
	return p[len(p)-1] + level - len(p)
}

// Parent returns the code of the level-indexed parent of an account at the
// given level. Level-1 accounts have no parent. A prefix that does not fit
// inside the code, or that reproduces the code itself, yields no parent.
func Parent(c string, level int, widths PrefixWidths) (string, bool) {
	if level <= 1 {
		return "", false
	}
	w := widths.Width(level - 1)
	if w <= 0 || w >= len(c) {
		return "", false
	}
	p := c[:w] + strings.Repeat("0", len(c)-w)
	if p == c {
		return "", false
	}
	return p, true
}

// StructuralParent derives a parent by trimming trailing zeros, dropping
// one more significant digit and re-padding. Codes with two or fewer
// significant digits have no parent.
//
// Deprecated: diverges from Parent for codes whose digit groups do not
// match their declared level. Kept so audits can flag such accounts.
func StructuralParent(c string) (string, bool) {
	trimmed := strings.TrimRight(c, "0")
	if len(trimmed) <= 2 {
		return "", false
	}
	prefix := trimmed[:len(trimmed)-1]
	return prefix + strings.Repeat("0", len(c)-len(prefix)), true
}
