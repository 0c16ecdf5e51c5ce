package trade

import (
	"fmt"
	"math"
	"sort"
	"time"

	"quant-bot/internal/model"
)

// relTol absorbs float drift when a computed sell quantity lands a hair
// above the held quantity (e.g. selling exactly the USD value of a
// position priced at the same mark it was bought at).
const relTol = 1e-9

// Executor applies buy/sell/rebalance intents to a portfolio. It is the
// only legal mutator of the portfolio it wraps: each operation either
// applies its full delta (cash side + asset side) and appends a trade
// record, or applies nothing.
//
// An Executor is not safe for concurrent use; the scheduling layer
// guarantees one in-flight mutation per bot.
type Executor struct {
	Portfolio *model.Portfolio
	BotID     string

	trades []model.TradeRecord
}

// NewExecutor wraps a portfolio. The portfolio must not be nil.
func NewExecutor(botID string, pf *model.Portfolio) *Executor {
	return &Executor{Portfolio: pf, BotID: botID}
}

// Trades returns the trades executed so far, in execution order.
func (e *Executor) Trades() []model.TradeRecord {
	return e.trades
}

// Buy converts a USD amount into asset quantity at price and moves it
// from cash into symbol.
//
// quantityUSD == 0 means "spend all": the full current cash balance is
// used and the call never fails on insufficient funds (a zero balance
// is a no-op returning a nil record). An explicit quantityUSD that
// exceeds available cash is rejected with InsufficientFundsError rather
// than clipped, so trade records stay exact.
func (e *Executor) Buy(ts time.Time, symbol string, price, quantityUSD float64) (*model.TradeRecord, error) {
	if price <= 0 {
		return nil, fmt.Errorf("buy %s: price must be > 0, got %g", symbol, price)
	}
	cash := e.Portfolio.Cash()

	usd := quantityUSD
	if usd == 0 {
		usd = cash
		if usd <= 0 {
			return nil, nil
		}
	} else if usd > cash {
		return nil, &model.InsufficientFundsError{Symbol: model.CashSymbol, Requested: usd, Available: cash}
	}

	qty := usd / price
	heldBefore := e.Portfolio.Get(symbol)

	if err := e.Portfolio.Debit(model.CashSymbol, usd); err != nil {
		return nil, err
	}
	if err := e.Portfolio.Credit(symbol, qty); err != nil {
		// Credit only fails on a negative amount, which qty cannot be here.
		return nil, err
	}

	// Running weighted-average cost basis.
	basis := e.Portfolio.Basis(symbol)
	e.Portfolio.SetBasis(symbol, (heldBefore*basis+usd)/(heldBefore+qty))

	rec := model.TradeRecord{
		Timestamp: ts,
		BotID:     e.BotID,
		Symbol:    symbol,
		Side:      model.SideBuy,
		Quantity:  qty,
		Price:     price,
		CashDelta: -usd,
	}
	e.trades = append(e.trades, rec)
	return &rec, nil
}

// Sell converts held quantity of symbol back into cash at price and
// realizes profit against the weighted-average cost basis.
//
// quantityUSD == 0 means "sell all": the entire held quantity is sold
// (a zero position is a no-op returning a nil record). An explicit
// quantityUSD whose implied quantity exceeds the current holding is
// rejected with InsufficientHoldingsError.
func (e *Executor) Sell(ts time.Time, symbol string, price, quantityUSD float64) (*model.TradeRecord, error) {
	if price <= 0 {
		return nil, fmt.Errorf("sell %s: price must be > 0, got %g", symbol, price)
	}
	held := e.Portfolio.Get(symbol)

	var qty float64
	if quantityUSD == 0 {
		qty = held
		if qty <= 0 {
			return nil, nil
		}
	} else {
		qty = quantityUSD / price
		if qty > held {
			if qty-held <= relTol*math.Max(1, held) {
				qty = held
			} else {
				return nil, &model.InsufficientHoldingsError{Symbol: symbol, Requested: qty, Available: held}
			}
		}
	}

	proceeds := qty * price
	profit := proceeds - qty*e.Portfolio.Basis(symbol)

	if err := e.Portfolio.Debit(symbol, qty); err != nil {
		return nil, err
	}
	if err := e.Portfolio.Credit(model.CashSymbol, proceeds); err != nil {
		return nil, err
	}

	rec := model.TradeRecord{
		Timestamp: ts,
		BotID:     e.BotID,
		Symbol:    symbol,
		Side:      model.SideSell,
		Quantity:  qty,
		Price:     price,
		CashDelta: proceeds,
		Profit:    &profit,
	}
	e.trades = append(e.trades, rec)
	return &rec, nil
}

// weightEpsilon is the slack allowed when target weights must sum to 1.
const weightEpsilon = 1e-6

// Rebalance moves the portfolio toward targetWeights, a symbol→fraction
// map. Without an explicit CASH entry the weights must sum to <= 1 and
// cash absorbs the remainder; with one, the full map must sum to 1
// within a small epsilon. Violations fail with InvalidWeightsError
// before any trade executes.
//
// Sells run before buys so freed cash funds the purchases. If
// onlyOverUSD > 0, any symbol whose computed trade size is below that
// threshold is skipped entirely to avoid dust-sized orders.
//
// Symbols held but absent from targetWeights are left untouched.
func (e *Executor) Rebalance(ts time.Time, prices map[string]float64, targetWeights map[string]float64, onlyOverUSD float64) ([]model.TradeRecord, error) {
	sum := 0.0
	cashExplicit := false
	for sym, w := range targetWeights {
		if w < 0 {
			return nil, &model.InvalidWeightsError{Sum: sum, Reason: fmt.Sprintf("weight for %s is negative", sym)}
		}
		if sym == model.CashSymbol {
			cashExplicit = true
		}
		sum += w
	}
	if cashExplicit {
		if math.Abs(sum-1) > weightEpsilon {
			return nil, &model.InvalidWeightsError{Sum: sum, Reason: "explicit CASH weight requires weights summing to 1"}
		}
	} else if sum > 1+weightEpsilon {
		return nil, &model.InvalidWeightsError{Sum: sum, Reason: "weights sum above 1"}
	}

	worth := e.Portfolio.Worth(prices)

	type order struct {
		symbol string
		usd    float64 // positive = buy, negative = sell
	}
	orders := make([]order, 0, len(targetWeights))
	for sym, w := range targetWeights {
		if sym == model.CashSymbol {
			continue
		}
		price := prices[sym]
		if price <= 0 {
			return nil, fmt.Errorf("rebalance: no price for %s", sym)
		}
		currentUSD := e.Portfolio.Get(sym) * price
		delta := worth*w - currentUSD
		if onlyOverUSD > 0 && math.Abs(delta) < onlyOverUSD {
			continue
		}
		if delta != 0 {
			orders = append(orders, order{symbol: sym, usd: delta})
		}
	}

	// Sells first to free cash, then buys; alphabetical within each
	// group so output is reproducible regardless of map iteration.
	sort.Slice(orders, func(i, j int) bool {
		si, sj := orders[i].usd < 0, orders[j].usd < 0
		if si != sj {
			return si
		}
		return orders[i].symbol < orders[j].symbol
	})

	executed := make([]model.TradeRecord, 0, len(orders))
	for _, o := range orders {
		var rec *model.TradeRecord
		var err error
		if o.usd < 0 {
			rec, err = e.Sell(ts, o.symbol, prices[o.symbol], -o.usd)
		} else {
			// Clamp to available cash: the freed-by-sells cash can land a
			// rounding hair short of the computed buy size.
			usd := o.usd
			if cash := e.Portfolio.Cash(); usd > cash {
				usd = cash
			}
			if usd <= 0 {
				continue
			}
			rec, err = e.Buy(ts, o.symbol, prices[o.symbol], usd)
		}
		if err != nil {
			return executed, fmt.Errorf("rebalance %s: %w", o.symbol, err)
		}
		if rec != nil {
			executed = append(executed, *rec)
		}
	}
	return executed, nil
}
