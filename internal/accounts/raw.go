package accounts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cleared-dev/rgs/internal/code"
	"github.com/cleared-dev/rgs/internal/model"
)

var (
	// ErrInvalidLevel is returned for a level that is not a positive integer.
	ErrInvalidLevel = errors.New("invalid level")
	// ErrInvalidDirection aliases model.ErrInvalidDirection so callers of
	// this package can match it without importing model.
	ErrInvalidDirection = model.ErrInvalidDirection
)

// RawRow is one row of the reference table as published, before any
// interpretation. Line is the 1-based row number in the source table with
// the header counted, zero when unknown.
type RawRow struct {
	Line        int
	Number      string // RekNr
	Description string // Omschrijving
	Level       string // Nivo
	Direction   string // DC
	Flip        string // Omslag
	RGS         string // RGS-code
	ZZP         string
	EZ          string
	BV          string
	SVC         string
	Branche     string // Bra
}

// ParseError describes a reference-table row that could not be converted.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d column %s: %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e ParseError) Unwrap() error {
	return e.Err
}

// ConvertRows turns reference-table rows into accounts. Rows whose account
// number is not numeric (section headings, notes) are dropped; of rows
// repeating the same number and level the first is kept.
func ConvertRows(rows []RawRow) ([]model.Account, error) {
	type key struct {
		number string
		level  string
	}
	seen := make(map[key]bool, len(rows))

	var accounts []model.Account
	for _, row := range rows {
		number := strings.TrimSpace(row.Number)
		if _, ok := code.Numeric(number); !ok {
			continue
		}
		k := key{number, strings.TrimSpace(row.Level)}
		if seen[k] {
			continue
		}
		seen[k] = true

		level, err := strconv.Atoi(k.level)
		if err != nil || level < 1 {
			return nil, ParseError{Line: row.Line, Column: "Nivo", Value: row.Level, Err: ErrInvalidLevel}
		}
		dir, err := model.ParseDirection(row.Direction)
		if err != nil {
			return nil, ParseError{Line: row.Line, Column: "DC", Value: row.Direction, Err: ErrInvalidDirection}
		}

		accounts = append(accounts, model.Account{
			Code:      number,
			Label:     strings.TrimSpace(row.Description),
			Level:     level,
			Direction: dir,
			Identifiers: model.Identifiers{
				RGS:  strings.TrimSpace(row.RGS),
				Flip: strings.TrimSpace(row.Flip),
			},
			Applicability: model.Applicability{
				ZZP:     Marker(row.ZZP),
				EZ:      Marker(row.EZ),
				BV:      Marker(row.BV),
				SVC:     Marker(row.SVC),
				Branche: Marker(row.Branche),
			},
		})
	}
	return accounts, nil
}

// Marker interprets an applicability cell. J, Ja, Y, Yes, X, 1 and true
// mean applicable, in any case; everything else does not.
func Marker(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "j", "ja", "y", "yes", "x", "1", "true":
		return true
	default:
		return false
	}
}
