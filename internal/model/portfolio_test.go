package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPortfolioSeedsCash(t *testing.T) {
	pf := NewPortfolio(1000)
	assert.Equal(t, 1000.0, pf.Cash())
	assert.Equal(t, 0.0, pf.Get("AAPL"))
}

func TestDebitRejectsOverdraw(t *testing.T) {
	pf := NewPortfolio(100)

	err := pf.Debit(CashSymbol, 150)
	require.Error(t, err)

	var ife *InsufficientFundsError
	require.ErrorAs(t, err, &ife)
	assert.Equal(t, CashSymbol, ife.Symbol)
	assert.Equal(t, 150.0, ife.Requested)
	assert.Equal(t, 100.0, ife.Available)

	// Failed debit leaves the balance untouched.
	assert.Equal(t, 100.0, pf.Cash())
}

func TestDebitCreditRoundTrip(t *testing.T) {
	pf := NewPortfolio(100)

	require.NoError(t, pf.Credit("AAPL", 2.5))
	require.NoError(t, pf.Debit("AAPL", 1.0))
	assert.Equal(t, 1.5, pf.Get("AAPL"))

	require.Error(t, pf.Credit("AAPL", -1))
	require.Error(t, pf.Debit("AAPL", -1))
}

func TestSnapshotIsIndependent(t *testing.T) {
	pf := NewPortfolio(100)
	require.NoError(t, pf.Credit("AAPL", 3))
	pf.SetBasis("AAPL", 10)

	snap := pf.Snapshot()
	require.NoError(t, snap.Debit("AAPL", 3))
	snap.SetBasis("AAPL", 99)

	assert.Equal(t, 3.0, pf.Get("AAPL"))
	assert.Equal(t, 10.0, pf.Basis("AAPL"))
}

func TestWorthMarksHoldingsAtPrices(t *testing.T) {
	pf := NewPortfolio(100)
	require.NoError(t, pf.Credit("AAPL", 2))
	require.NoError(t, pf.Credit("MSFT", 1))

	worth := pf.Worth(map[string]float64{"AAPL": 50})
	// MSFT has no price and contributes nothing.
	assert.Equal(t, 200.0, worth)
}
