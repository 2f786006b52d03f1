package accounts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/rgs/internal/model"
)

func TestConvertRows(t *testing.T) {
	rows := []RawRow{
		{Line: 2, Number: "", Description: "BALANS"},
		{Line: 3, Number: "11000", Description: " Liquide middelen ", Level: "1", Direction: "D", RGS: "BLim", ZZP: "J", BV: "x"},
		{Line: 4, Number: "11100", Description: "Bank", Level: "2", Direction: "dr", RGS: "BLimBan", Flip: " BSchKol ", EZ: "Yes"},
		{Line: 5, Number: "11100", Description: "Bank again", Level: "2", Direction: "D"},
		{Line: 6, Number: "11100", Description: "Bank other level", Level: "3", Direction: "C"},
		{Line: 7, Number: "1a", Description: "Note", Level: "1"},
		{Line: 8, Number: "21000", Description: "Kredietinstellingen", Level: "1", Direction: "credit", SVC: "1", Branche: "true"},
	}

	got, err := ConvertRows(rows)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, model.Account{
		Code: "11000", Label: "Liquide middelen", Level: 1, Direction: model.DirectionDebit,
		Identifiers:   model.Identifiers{RGS: "BLim"},
		Applicability: model.Applicability{ZZP: true, BV: true},
	}, got[0])

	assert.Equal(t, "Bank", got[1].Label)
	assert.Equal(t, "BSchKol", got[1].Identifiers.Flip)
	assert.True(t, got[1].Applicability.EZ)

	assert.Equal(t, "Bank other level", got[2].Label)
	assert.Equal(t, 3, got[2].Level)

	assert.Equal(t, model.DirectionCredit, got[3].Direction)
	assert.True(t, got[3].Applicability.SVC)
	assert.True(t, got[3].Applicability.Branche)
	assert.False(t, got[3].Identifiers.HasFlip())
}

func TestConvertRows_Errors(t *testing.T) {
	tests := []struct {
		name   string
		row    RawRow
		want   error
		column string
	}{
		{"missing level", RawRow{Line: 9, Number: "11000", Direction: "D"}, ErrInvalidLevel, "Nivo"},
		{"negative level", RawRow{Line: 9, Number: "11000", Level: "-1"}, ErrInvalidLevel, "Nivo"},
		{"bad direction", RawRow{Line: 9, Number: "11000", Level: "1", Direction: "X"}, ErrInvalidDirection, "DC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertRows([]RawRow{tt.row})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))

			var pe ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, 9, pe.Line)
			assert.Equal(t, tt.column, pe.Column)
		})
	}
}

func TestInvalidDirectionMatchesModel(t *testing.T) {
	_, err := ConvertRows([]RawRow{{Number: "1", Level: "1", Direction: "?"}})
	assert.True(t, errors.Is(err, model.ErrInvalidDirection))
}

func TestMarker(t *testing.T) {
	for _, s := range []string{"J", "ja", "Y", "yes", "X", "1", "TRUE", " j "} {
		assert.True(t, Marker(s), s)
	}
	for _, s := range []string{"", "N", "nee", "0", "false", "-"} {
		assert.False(t, Marker(s), s)
	}
}
