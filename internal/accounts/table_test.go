package accounts

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadRawRows_Testdata(t *testing.T) {
	f, err := os.Open("../../testdata/reference-table.csv")
	require.NoError(t, err)
	defer f.Close()

	rows, err := ReadRawRows(f)
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, "BALANS", rows[0].Description)
	assert.Equal(t, 3, rows[1].Line)
	assert.Equal(t, "02000", rows[1].Number)

	accounts, err := ConvertRows(rows)
	require.NoError(t, err)
	require.Len(t, accounts, 7)
	assert.Equal(t, "BSchKol", accounts[3].Identifiers.Flip)
	assert.True(t, accounts[6].Applicability.Branche)
	assert.False(t, accounts[5].Applicability.ZZP)
}

func TestReadRawRows_ColumnOrder(t *testing.T) {
	in := "nivo,Extra,OMSCHRIJVING,reknr\n1,ignored,Bank,11000\n,,,\n2,,Lopende rekening,11100\n"
	rows, err := ReadRawRows(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, RawRow{Line: 2, Number: "11000", Description: "Bank", Level: "1"}, rows[0])
	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "11100", rows[1].Number)
}

func TestReadRawRows_MissingColumn(t *testing.T) {
	_, err := ReadRawRows(strings.NewReader("RekNr,Omschrijving\n11000,Bank\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level")
}

func TestReadRawRows_Empty(t *testing.T) {
	rows, err := ReadRawRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadRawRowsXLSX(t *testing.T) {
	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(0)
	require.NoError(t, wb.SetSheetRow(sheet, "A1", &[]interface{}{"RekNr", "Omschrijving", "Nivo", "DC", "Omslag", "RGS-code", "BV"}))
	require.NoError(t, wb.SetSheetRow(sheet, "A2", &[]interface{}{"11000", "Liquide middelen", "1", "D", "", "BLim", "J"}))
	require.NoError(t, wb.SetSheetRow(sheet, "A3", &[]interface{}{"11100", "Bank", "2", "D", "BSchKol", "BLimBan", ""}))

	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ReadRawRowsXLSX(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	accounts, err := ConvertRows(rows)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "11100", accounts[1].Code)
	assert.Equal(t, "BSchKol", accounts[1].Identifiers.Flip)
	assert.True(t, accounts[0].Applicability.BV)
	assert.False(t, accounts[1].Applicability.BV)
}

func TestReadRawRowsXLSX_NotAWorkbook(t *testing.T) {
	_, err := ReadRawRowsXLSX(strings.NewReader("not a zip"))
	assert.Error(t, err)
}
