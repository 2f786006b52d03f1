package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/rgs/internal/model"
)

// Header is the CSV header for chart-of-accounts.csv.
const Header = "code,label,level,direction,rgs,flip,zzp,ez,bv,svc,branche"

const (
	numFields    = 11
	colCode      = 0
	colLabel     = 1
	colLevel     = 2
	colDirection = 3
	colRGS       = 4
	colFlip      = 5
	colZZP       = 6
	colEZ        = 7
	colBV        = 8
	colSVC       = 9
	colBranche   = 10
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colCode] = acct.Code
	row[colLabel] = acct.Label
	row[colLevel] = strconv.Itoa(acct.Level)
	row[colDirection] = string(acct.Direction)
	row[colRGS] = acct.Identifiers.RGS
	row[colFlip] = acct.Identifiers.Flip
	row[colZZP] = flag(acct.Applicability.ZZP)
	row[colEZ] = flag(acct.Applicability.EZ)
	row[colBV] = flag(acct.Applicability.BV)
	row[colSVC] = flag(acct.Applicability.SVC)
	row[colBranche] = flag(acct.Applicability.Branche)
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	code := strings.TrimSpace(record[colCode])
	if code == "" {
		return model.Account{}, fmt.Errorf("empty code")
	}

	level, err := strconv.Atoi(strings.TrimSpace(record[colLevel]))
	if err != nil || level < 1 {
		return model.Account{}, fmt.Errorf("%w: %q", ErrInvalidLevel, record[colLevel])
	}

	dir, err := model.ParseDirection(record[colDirection])
	if err != nil {
		return model.Account{}, err
	}

	return model.Account{
		Code:      code,
		Label:     record[colLabel],
		Level:     level,
		Direction: dir,
		Identifiers: model.Identifiers{
			RGS:  strings.TrimSpace(record[colRGS]),
			Flip: strings.TrimSpace(record[colFlip]),
		},
		Applicability: model.Applicability{
			ZZP:     Marker(record[colZZP]),
			EZ:      Marker(record[colEZ]),
			BV:      Marker(record[colBV]),
			SVC:     Marker(record[colSVC]),
			Branche: Marker(record[colBranche]),
		},
	}, nil
}

func flag(b bool) string {
	if b {
		return "true"
	}
	return ""
}
