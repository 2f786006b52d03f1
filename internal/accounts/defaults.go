package accounts

import "github.com/cleared-dev/rgs/internal/model"

var (
	all    = model.Applicability{ZZP: true, EZ: true, BV: true, SVC: true}
	bvOnly = model.Applicability{BV: true}
	noBV   = model.Applicability{ZZP: true, EZ: true, SVC: true}
)

// DefaultChart returns a small five-digit sample chart. Level 1 codes carry
// two significant digits and every further level one more.
func DefaultChart() []model.Account {
	return []model.Account{
		{Code: "02000", Label: "Bedrijfsgebouwen", Level: 1, Direction: model.DirectionDebit, Identifiers: model.Identifiers{RGS: "BMvaBeg"}, Applicability: all},
		{Code: "02100", Label: "Bedrijfsgebouwen aanschafwaarde", Level: 2, Direction: model.DirectionDebit, Identifiers: model.Identifiers{RGS: "BMvaBegVvp"}, Applicability: all},
		{Code: "02200", Label: "Bedrijfsgebouwen cumulatieve afschrijvingen", Level: 2, Direction: model.DirectionDebit, Identifiers: model.Identifiers{RGS: "BMvaBegCae"}, Applicability: all},
		{Code: "03000", Label: "Inventaris", Level: 1, Direction: model.DirectionDebit, Identifiers: model.Identifiers{RGS: "BMvaInv"}, Applicability: all},
		{Code: "11000", Label: "Liquide middelen", Level: 1, Direction: model.DirectionDebit, Identifiers: model.Identifiers{RGS: "BLim"}, Applicability: all},
		{Code: "11100", Label: "Bankrekening", Level: 2, Direction: model.DirectionDebit, Identifiers: model.Identifiers{RGS: "BLimBan", Flip: "BSchKol"}, Applicability: all},
		{Code: "13000", Label: "Handelsdebiteuren", Level: 1, Direction: model.DirectionDebit, Identifiers: model.Identifiers{RGS: "BVorDeb", Flip: "BSchVoo"}, Applicability: all},
		{Code: "14000", Label: "Vooruitbetaalde bedragen", Level: 1, Direction: model.DirectionDebit, Identifiers: model.Identifiers{RGS: "BVorVbk"}, Applicability: all},
		{Code: "21000", Label: "Kortlopende schulden aan kredietinstellingen", Level: 1, Direction: model.DirectionCredit, Identifiers: model.Identifiers{RGS: "BSchKol"}, Applicability: all},
		{Code: "22000", Label: "Vooruitontvangen bedragen", Level: 1, Direction: model.DirectionCredit, Identifiers: model.Identifiers{RGS: "BSchVoo"}, Applicability: all},
		{Code: "23000", Label: "Handelscrediteuren", Level: 1, Direction: model.DirectionCredit, Identifiers: model.Identifiers{RGS: "BSchCre", Flip: "BVorVbk"}, Applicability: all},
		{Code: "31000", Label: "Aandelenkapitaal", Level: 1, Direction: model.DirectionCredit, Identifiers: model.Identifiers{RGS: "BEivGok"}, Applicability: bvOnly},
		{Code: "32000", Label: "Ondernemingsvermogen", Level: 1, Direction: model.DirectionCredit, Identifiers: model.Identifiers{RGS: "BEivOvm"}, Applicability: noBV},
		{Code: "41000", Label: "Personeelskosten", Level: 1, Direction: model.DirectionDebit, Identifiers: model.Identifiers{RGS: "WPer"}, Applicability: all},
		{Code: "42000", Label: "Huisvestingskosten", Level: 1, Direction: model.DirectionDebit, Identifiers: model.Identifiers{RGS: "WBedHui"}, Applicability: all},
		{Code: "43000", Label: "Afschrijvingen", Level: 1, Direction: model.DirectionDebit, Identifiers: model.Identifiers{RGS: "WAfs"}, Applicability: all},
		{Code: "49000", Label: "Uitgekeerd dividend", Level: 1, Direction: model.DirectionDebit, Identifiers: model.Identifiers{RGS: "WDiv"}, Applicability: bvOnly},
		{Code: "81000", Label: "Netto-omzet", Level: 1, Direction: model.DirectionCredit, Identifiers: model.Identifiers{RGS: "WOmz"}, Applicability: all},
		{Code: "81100", Label: "Omzet diensten", Level: 2, Direction: model.DirectionCredit, Identifiers: model.Identifiers{RGS: "WOmzNod"}, Applicability: all},
		{Code: "81200", Label: "Omzet goederen", Level: 2, Direction: model.DirectionCredit, Identifiers: model.Identifiers{RGS: "WOmzNog"}, Applicability: all},
	}
}
