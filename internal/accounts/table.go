package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// columnAliases maps normalized header names to RawRow fields.
var columnAliases = map[string]string{
	"reknr":          "number",
	"rekeningnummer": "number",
	"omschrijving":   "description",
	"nivo":           "level",
	"niveau":         "level",
	"dc":             "direction",
	"d/c":            "direction",
	"omslag":         "flip",
	"rgs-code":       "rgs",
	"rgscode":        "rgs",
	"referentiecode": "rgs",
	"zzp":            "zzp",
	"ez":             "ez",
	"bv":             "bv",
	"svc":            "svc",
	"bra":            "branche",
	"branche":        "branche",
}

// ReadRawRows reads a reference table exported as CSV.
func ReadRawRows(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading reference table CSV: %w", err)
	}
	return rowsFromTable(records)
}

// ReadRawRowsXLSX reads a reference table from the first sheet of a workbook.
func ReadRawRowsXLSX(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return rowsFromTable(records)
}

// rowsFromTable takes the first non-empty record as the header. Columns may
// appear in any order; unknown columns are ignored. RekNr and Nivo are
// required.
func rowsFromTable(records [][]string) ([]RawRow, error) {
	start := 0
	for start < len(records) && blank(records[start]) {
		start++
	}
	if start == len(records) {
		return nil, nil
	}

	cols := make(map[string]int)
	for i, name := range records[start] {
		field, ok := columnAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if _, dup := cols[field]; !dup {
			cols[field] = i
		}
	}
	for _, req := range []string{"number", "level"} {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("reference table header: missing %s column", req)
		}
	}

	var rows []RawRow
	for i, rec := range records[start+1:] {
		if blank(rec) {
			continue
		}
		cell := func(field string) string {
			idx, ok := cols[field]
			if !ok || idx >= len(rec) {
				return ""
			}
			return rec[idx]
		}
		rows = append(rows, RawRow{
			Line:        start + i + 2,
			Number:      cell("number"),
			Description: cell("description"),
			Level:       cell("level"),
			Direction:   cell("direction"),
			Flip:        cell("flip"),
			RGS:         cell("rgs"),
			ZZP:         cell("zzp"),
			EZ:          cell("ez"),
			BV:          cell("bv"),
			SVC:         cell("svc"),
			Branche:     cell("branche"),
		})
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
