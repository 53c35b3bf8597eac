package payments

import "github.com/shopspring/decimal"

// The platform keeps 35% of every booking as the deposit; the practitioner
// invoices the remaining 65% directly. The ratio is fixed, not configuration.
var (
	depositRate = decimal.NewFromFloat(0.35)
	balanceRate = decimal.NewFromFloat(0.65)
)

type SplitResult struct {
	Deposit decimal.Decimal `json:"deposit"`
	Balance decimal.Decimal `json:"balance"`
}

// Split divides a total into deposit and balance, each rounded to two
// decimals independently. The rounded sides may differ from the total by up
// to a cent; currency granularity makes that acceptable.
func Split(total decimal.Decimal) SplitResult {
	return SplitResult{
		Deposit: total.Mul(depositRate).Round(2),
		Balance: total.Mul(balanceRate).Round(2),
	}
}

// SplitPrice is the float convenience used when pricing booking rows.
func SplitPrice(total float64) (deposit, balance float64) {
	r := Split(decimal.NewFromFloat(total))
	deposit, _ = r.Deposit.Float64()
	balance, _ = r.Balance.Float64()
	return deposit, balance
}
