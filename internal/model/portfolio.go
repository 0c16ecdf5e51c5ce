package model

import "fmt"

// CashSymbol is the reserved symbol denoting spendable currency.
// All other symbols denote held quantities of an instrument.
const CashSymbol = "CASH"

// Portfolio maps asset symbol to held quantity. Quantities may be
// fractional and are never negative; an operation that would drive a
// quantity below zero fails without partially applying.
//
// CostBasis tracks the running weighted-average price paid per unit of
// each held symbol, updated on every buy and used to compute realized
// profit on sells. It is persisted alongside the holdings so profit
// survives process restarts.
type Portfolio struct {
	Holdings  map[string]float64 `json:"holdings"`
	CostBasis map[string]float64 `json:"cost_basis"`
}

// NewPortfolio creates a portfolio seeded with an initial cash amount.
func NewPortfolio(initialCash float64) *Portfolio {
	p := &Portfolio{
		Holdings:  make(map[string]float64),
		CostBasis: make(map[string]float64),
	}
	if initialCash > 0 {
		p.Holdings[CashSymbol] = initialCash
	}
	return p
}

// Get returns the held quantity for symbol, 0 if absent. Never fails.
func (p *Portfolio) Get(symbol string) float64 {
	return p.Holdings[symbol]
}

// Cash returns the spendable currency balance.
func (p *Portfolio) Cash() float64 {
	return p.Holdings[CashSymbol]
}

// Credit increases the held quantity for symbol by amount.
func (p *Portfolio) Credit(symbol string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("credit amount must be >= 0, got %g", amount)
	}
	if p.Holdings == nil {
		p.Holdings = make(map[string]float64)
	}
	p.Holdings[symbol] += amount
	return nil
}

// Debit decreases the held quantity for symbol by amount. Fails with
// InsufficientFundsError if amount exceeds the current quantity; no
// partial debit is applied.
func (p *Portfolio) Debit(symbol string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("debit amount must be >= 0, got %g", amount)
	}
	held := p.Holdings[symbol]
	if amount > held {
		return &InsufficientFundsError{Symbol: symbol, Requested: amount, Available: held}
	}
	p.Holdings[symbol] = held - amount
	return nil
}

// Basis returns the weighted-average cost basis for symbol, 0 if unknown.
func (p *Portfolio) Basis(symbol string) float64 {
	return p.CostBasis[symbol]
}

// SetBasis records the weighted-average cost basis for symbol.
func (p *Portfolio) SetBasis(symbol string, basis float64) {
	if p.CostBasis == nil {
		p.CostBasis = make(map[string]float64)
	}
	p.CostBasis[symbol] = basis
}

// Snapshot returns an independent deep copy. Mutating the copy never
// affects the original; backtests run against snapshots, never the live
// portfolio.
func (p *Portfolio) Snapshot() *Portfolio {
	out := &Portfolio{
		Holdings:  make(map[string]float64, len(p.Holdings)),
		CostBasis: make(map[string]float64, len(p.CostBasis)),
	}
	for k, v := range p.Holdings {
		out.Holdings[k] = v
	}
	for k, v := range p.CostBasis {
		out.CostBasis[k] = v
	}
	return out
}

// Worth computes total portfolio value: cash plus each held quantity
// marked at the supplied price. Symbols without a price contribute 0.
func (p *Portfolio) Worth(prices map[string]float64) float64 {
	total := p.Cash()
	for sym, qty := range p.Holdings {
		if sym == CashSymbol {
			continue
		}
		total += qty * prices[sym]
	}
	return total
}
