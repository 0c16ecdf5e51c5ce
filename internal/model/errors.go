package model

import "fmt"

// InsufficientFundsError is returned when a debit (cash or asset side)
// exceeds the available quantity. The attempted amounts are carried so
// a caller can reconstruct the failed intent in its run log.
type InsufficientFundsError struct {
	Symbol    string
	Requested float64
	Available float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: requested %g %s, available %g", e.Requested, e.Symbol, e.Available)
}

// InsufficientHoldingsError is returned when a sell requests more units
// of a symbol than are currently held.
type InsufficientHoldingsError struct {
	Symbol    string
	Requested float64
	Available float64
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("insufficient holdings: requested %g %s, held %g", e.Requested, e.Symbol, e.Available)
}

// InvalidWeightsError is returned when a rebalance target-weight map
// violates the sum constraints.
type InvalidWeightsError struct {
	Sum    float64
	Reason string
}

func (e *InvalidWeightsError) Error() string {
	return fmt.Sprintf("invalid target weights (sum=%g): %s", e.Sum, e.Reason)
}
