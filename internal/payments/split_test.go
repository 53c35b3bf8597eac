package payments

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSplit_Ratio(t *testing.T) {
	r := Split(decimal.NewFromInt(100))

	assert.True(t, r.Deposit.Equal(decimal.NewFromInt(35)), "deposit=%s", r.Deposit)
	assert.True(t, r.Balance.Equal(decimal.NewFromInt(65)), "balance=%s", r.Balance)
}

func TestSplit_RoundsEachSideIndependently(t *testing.T) {
	// 99.99 * 0.35 = 34.9965 -> 35.00; 99.99 * 0.65 = 64.9935 -> 64.99
	r := Split(decimal.NewFromFloat(99.99))

	assert.Equal(t, "35", r.Deposit.String())
	assert.Equal(t, "64.99", r.Balance.String())
}

func TestSplit_SumStaysWithinOneCent(t *testing.T) {
	totals := []float64{10, 33.33, 45.50, 99.99, 120.01, 250, 0.01}

	for _, total := range totals {
		d := decimal.NewFromFloat(total)
		r := Split(d)

		diff := r.Deposit.Add(r.Balance).Sub(d).Abs()
		assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.01)),
			"total=%v deposit=%s balance=%s", total, r.Deposit, r.Balance)
	}
}

func TestSplit_Zero(t *testing.T) {
	r := Split(decimal.Zero)
	assert.True(t, r.Deposit.IsZero())
	assert.True(t, r.Balance.IsZero())
}

func TestSplitPrice(t *testing.T) {
	deposit, balance := SplitPrice(80)

	assert.InDelta(t, 28.0, deposit, 1e-9)
	assert.InDelta(t, 52.0, balance, 1e-9)
	assert.LessOrEqual(t, math.Abs(deposit+balance-80), 0.01)
}
