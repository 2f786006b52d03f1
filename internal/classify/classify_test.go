package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/rgs/internal/model"
)

func TestClassify_Ranges(t *testing.T) {
	c := New(DefaultDividendMarker, []Range{
		{Start: 0, End: 40000, Class: model.ClassAsset},
		{Start: 40000, End: 80000, Class: model.ClassExpense},
	})

	assert.Equal(t, model.ClassExpense, c.Classify(model.Account{Code: "45000", Label: "Rent"}))
	assert.Equal(t, model.ClassUnknown, c.Classify(model.Account{Code: "99999", Label: "Suspense"}))
	assert.Equal(t, model.ClassAsset, c.Classify(model.Account{Code: "39999", Label: "Edge"}))
	assert.Equal(t, model.ClassExpense, c.Classify(model.Account{Code: "40000", Label: "Edge"}))
}

func TestClassify_DividendLabelWins(t *testing.T) {
	c := Default()

	tests := []struct {
		acct model.Account
		want model.AccountClass
	}{
		{model.Account{Code: "31000", Label: "Dividend payable"}, model.ClassDividend},
		{model.Account{Code: "90000", Label: "DIVIDENDS distributed"}, model.ClassDividend},
		{model.Account{Code: "x", Label: "interim dividend"}, model.ClassDividend},
		{model.Account{Code: "31000", Label: "Share capital"}, model.ClassEquity},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.acct), "Classify(%s %q)", tt.acct.Code, tt.acct.Label)
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	c := New("", []Range{
		{Start: 1000, End: 3000, Class: model.ClassAsset},
		{Start: 2000, End: 4000, Class: model.ClassLiability},
	})
	assert.Equal(t, model.ClassAsset, c.ClassifyCode("2500"))
	assert.Equal(t, model.ClassLiability, c.ClassifyCode("3500"))
}

func TestClassify_EmptyMarkerDisablesLabel(t *testing.T) {
	c := New("", DefaultRanges())
	assert.Equal(t, model.ClassEquity, c.Classify(model.Account{Code: "31000", Label: "Dividend reserve"}))
}

func TestClassify_Defaults(t *testing.T) {
	c := Default()
	tests := []struct {
		code string
		want model.AccountClass
	}{
		{"1000", model.ClassAsset},
		{"02000", model.ClassAsset},
		{"13000", model.ClassAsset},
		{"21000", model.ClassLiability},
		{"32000", model.ClassEquity},
		{"41000", model.ClassExpense},
		{"81000", model.ClassRevenue},
		{"90000", model.ClassUnknown},
		{"BVorDeb", model.ClassUnknown},
		{"", model.ClassUnknown},
		// 2^64 + 45000 must not wrap into the expense range.
		{"18446744073709596616", model.ClassUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.ClassifyCode(tt.code), "ClassifyCode(%q)", tt.code)
	}
}

func TestRangesIsCopy(t *testing.T) {
	src := DefaultRanges()
	c := New(DefaultDividendMarker, src)
	src[0].Class = model.ClassRevenue

	got := c.Ranges()
	assert.Equal(t, model.ClassAsset, got[0].Class)
	got[0].Class = model.ClassRevenue
	assert.Equal(t, model.ClassAsset, c.Ranges()[0].Class)
}
