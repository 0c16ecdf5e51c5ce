package bot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"quant-bot/internal/config"
	"quant-bot/internal/data"
	"quant-bot/internal/decision"
	"quant-bot/internal/metrics"
	"quant-bot/internal/model"
	"quant-bot/internal/store"
	"quant-bot/internal/strategy"
	"quant-bot/internal/trade"
)

// Bot runs one trading bot against its live portfolio. Each scheduled
// cycle is an atomic unit: fetch, decide, execute, persist. The
// scheduling layer guarantees no overlapping cycles per bot; distinct
// bots share nothing mutable and may run concurrently.
type Bot struct {
	Cfg      *config.Config
	Provider data.Provider
	Store    store.Store
	Log      *zap.Logger
}

func New(cfg *config.Config, provider data.Provider, st store.Store, log *zap.Logger) *Bot {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bot{Cfg: cfg, Provider: provider, Store: st, Log: log}
}

// RunCycle executes one scheduled cycle. A nil return means the cycle
// completed, including "held, no trade": absent fresh data and failed
// trade attempts both resolve to a hold after being written to the run
// log. A non-nil return is an unrecoverable cycle error (already
// logged) that the external scheduler should surface.
func (b *Bot) RunCycle(ctx context.Context) error {
	bc := b.Cfg.Bot
	log := b.Log.With(zap.String("bot_id", bc.ID), zap.String("symbol", bc.Symbol))

	bars, err := b.Provider.FetchBars(ctx, bc.Symbol, bc.Interval, bc.Period)
	var unavailable *data.DataUnavailableError
	if errors.As(err, &unavailable) {
		metrics.FetchErrors.WithLabelValues(bc.Symbol).Inc()
		metrics.RunCycles.WithLabelValues(bc.ID, "held").Inc()
		log.Info("no data available, holding", zap.Error(err))
		return b.appendRunLog(ctx, "held", err.Error())
	}
	if err != nil {
		metrics.RunCycles.WithLabelValues(bc.ID, "error").Inc()
		log.Error("fetch failed", zap.Error(err))
		if logErr := b.appendRunLog(ctx, "error", err.Error()); logErr != nil {
			return logErr
		}
		return fmt.Errorf("fetch bars: %w", err)
	}

	rows, err := data.Enrich(bars)
	if err != nil {
		metrics.RunCycles.WithLabelValues(bc.ID, "error").Inc()
		log.Error("enrichment failed", zap.Error(err))
		if logErr := b.appendRunLog(ctx, "error", err.Error()); logErr != nil {
			return logErr
		}
		return fmt.Errorf("enrich bars: %w", err)
	}

	if len(rows) == 0 {
		metrics.RunCycles.WithLabelValues(bc.ID, "held").Inc()
		return b.appendRunLog(ctx, "held", "empty bar window")
	}

	sig, err := strategy.Build(b.Cfg.Strategy.Name, b.Cfg.Strategy.Params)
	if err != nil {
		// Config is validated at load; only a hand-edited store entry
		// or code drift gets here.
		metrics.RunCycles.WithLabelValues(bc.ID, "error").Inc()
		if logErr := b.appendRunLog(ctx, "error", err.Error()); logErr != nil {
			return logErr
		}
		return fmt.Errorf("build strategy: %w", err)
	}

	pf, err := b.Store.LoadPortfolio(ctx, bc.ID)
	if err != nil {
		metrics.RunCycles.WithLabelValues(bc.ID, "error").Inc()
		return fmt.Errorf("load portfolio: %w", err)
	}
	if pf == nil {
		pf = model.NewPortfolio(bc.InitialCash)
		log.Info("seeding new portfolio", zap.Float64("initial_cash", bc.InitialCash))
	}

	agg := decision.NewAggregator(bc.Window)
	for _, row := range rows {
		agg.Push(sig.Signal(row))
	}
	intent := agg.Intent()
	last := rows[len(rows)-1]

	log.Info("cycle decision",
		zap.String("intent", string(intent)),
		zap.Float64("signal_mean", agg.Mean()),
		zap.Int("rows", len(rows)),
		zap.Float64("mark", last.Close))

	exec := trade.NewExecutor(bc.ID, pf)
	var rec *model.TradeRecord
	switch intent {
	case decision.IntentBuy:
		rec, err = exec.Buy(last.Timestamp, bc.Symbol, last.Close, 0)
	case decision.IntentSell:
		rec, err = exec.Sell(last.Timestamp, bc.Symbol, last.Close, 0)
	}
	if err != nil {
		// The executor applied nothing; record the failed intent and
		// resolve this cycle to a hold.
		metrics.RunCycles.WithLabelValues(bc.ID, "held").Inc()
		log.Warn("trade attempt failed, holding",
			zap.String("intent", string(intent)),
			zap.Float64("price", last.Close),
			zap.Error(err))
		return b.appendRunLog(ctx, "held", fmt.Sprintf("%s %s at %g failed: %v", intent, bc.Symbol, last.Close, err))
	}

	status := "held"
	detail := fmt.Sprintf("%s, no trade (mean=%.3f)", intent, agg.Mean())
	if rec != nil {
		if err := b.Store.CommitTrade(ctx, bc.ID, pf, *rec); err != nil {
			metrics.RunCycles.WithLabelValues(bc.ID, "error").Inc()
			return fmt.Errorf("commit trade: %w", err)
		}
		metrics.TradesExecuted.WithLabelValues(bc.ID, string(rec.Side)).Inc()
		status = "completed"
		detail = fmt.Sprintf("%s %g %s at %g", rec.Side, rec.Quantity, rec.Symbol, rec.Price)
		log.Info("trade executed",
			zap.String("side", string(rec.Side)),
			zap.Float64("quantity", rec.Quantity),
			zap.Float64("price", rec.Price),
			zap.Float64("cash_delta", rec.CashDelta))
	}

	metrics.PortfolioWorth.WithLabelValues(bc.ID).Set(pf.Worth(map[string]float64{bc.Symbol: last.Close}))
	metrics.RunCycles.WithLabelValues(bc.ID, status).Inc()
	return b.appendRunLog(ctx, status, detail)
}

func (b *Bot) appendRunLog(ctx context.Context, status, detail string) error {
	if err := b.Store.AppendRunLog(ctx, b.Cfg.Bot.ID, status, detail); err != nil {
		b.Log.Error("failed to append run log",
			zap.String("bot_id", b.Cfg.Bot.ID),
			zap.String("status", status),
			zap.Error(err))
		return fmt.Errorf("append run log: %w", err)
	}
	return nil
}
