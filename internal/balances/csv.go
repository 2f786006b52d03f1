// Package balances reads and writes raw per-account balances: one signed
// amount per account code in the account's natural direction.
package balances

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Header is the CSV header for balances.csv.
const Header = "code,balance"

const (
	numFields  = 2
	colCode    = 0
	colBalance = 1
)

// ErrDuplicateCode is returned when a balance file lists a code twice.
var ErrDuplicateCode = errors.New("duplicate account code")

// ReadBalances reads a balances CSV. Empty balance cells read as zero.
func ReadBalances(r io.Reader) (map[string]decimal.Decimal, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading balances CSV: %w", err)
	}

	out := make(map[string]decimal.Decimal)
	if len(records) == 0 {
		return out, nil
	}

	for i, rec := range records[1:] {
		code, bal, err := UnmarshalBalance(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if _, dup := out[code]; dup {
			return nil, fmt.Errorf("row %d: %w: %s", i+2, ErrDuplicateCode, code)
		}
		out[code] = bal
	}
	return out, nil
}

// WriteBalances writes balances in code order, including the header.
func WriteBalances(w io.Writer, balances map[string]decimal.Decimal) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, code := range Codes(balances) {
		if err := cw.Write(MarshalBalance(code, balances[code])); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalBalance converts one balance to a CSV row. Amounts keep at least
// two decimals and never lose precision.
func MarshalBalance(code string, bal decimal.Decimal) []string {
	row := make([]string, numFields)
	row[colCode] = code
	if bal.Exponent() >= -2 {
		row[colBalance] = bal.StringFixed(2)
	} else {
		row[colBalance] = bal.String()
	}
	return row
}

// UnmarshalBalance converts a CSV row to a code and balance.
func UnmarshalBalance(record []string) (string, decimal.Decimal, error) {
	if len(record) != numFields {
		return "", decimal.Zero, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	code := strings.TrimSpace(record[colCode])
	if code == "" {
		return "", decimal.Zero, errors.New("empty code")
	}

	raw := strings.TrimSpace(record[colBalance])
	if raw == "" {
		return code, decimal.Zero, nil
	}
	bal, err := decimal.NewFromString(raw)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("parsing balance %q: %w", raw, err)
	}
	return code, bal, nil
}

// Codes returns the keys of a balance map in sorted order.
func Codes(balances map[string]decimal.Decimal) []string {
	codes := make([]string, 0, len(balances))
	for c := range balances {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
