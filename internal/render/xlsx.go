package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/rgs/internal/model"
	"github.com/cleared-dev/rgs/internal/statements"
)

// sheetNames are kept short; Excel limits sheet names to 31 characters.
var sheetNames = map[statements.Kind]string{
	statements.KindIncome:   "Income",
	statements.KindBalance:  "Balance Sheet",
	statements.KindCashFlow: "Cash Flow",
}

// XLSX writes one worksheet per requested statement.
func XLSX(w io.Writer, set statements.Set, kinds []statements.Kind) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("#,##0.00;-#,##0.00")})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	first := f.GetSheetName(0)
	for i, k := range kinds {
		n, ok := set.ByKind(k)
		if !ok {
			return fmt.Errorf("unknown statement kind %q", k)
		}
		name := sheetNames[k]
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return fmt.Errorf("naming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, n, bold, money); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, root model.StatementNode, bold, money int) error {
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{root.Label}); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A2", &[]interface{}{"Code", "Label", "Balance"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "C2", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	row := 3
	var walk func(n model.StatementNode, depth int) error
	walk = func(n model.StatementNode, depth int) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		label := strings.Repeat("  ", depth) + n.Label
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{n.Code, label, n.Balance.InexactFloat64()}); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
		amount, _ := excelize.CoordinatesToCellName(3, row)
		if err := f.SetCellStyle(sheet, amount, amount, money); err != nil {
			return fmt.Errorf("styling row %d: %w", row, err)
		}
		if n.Code == "" {
			from, _ := excelize.CoordinatesToCellName(1, row)
			to, _ := excelize.CoordinatesToCellName(2, row)
			if err := f.SetCellStyle(sheet, from, to, bold); err != nil {
				return fmt.Errorf("styling row %d: %w", row, err)
			}
		}
		row++
		for _, c := range n.Children {
			if err := walk(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, c := range root.Children {
		if err := walk(c, 0); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "B", "B", 48); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	return f.SetColWidth(sheet, "C", "C", 16)
}

func strPtr(s string) *string {
	return &s
}
