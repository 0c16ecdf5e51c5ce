package backtest

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"quant-bot/internal/model"
)

// WriteEquityCSV writes the equity curve, one point per row.
func WriteEquityCSV(path string, curve []model.EquityPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"timestamp", "worth"}); err != nil {
		return err
	}
	for _, pt := range curve {
		row := []string{
			fmtTime(pt.Timestamp),
			fmtFloat(pt.Worth),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteTradesCSV writes the trade log, one executed trade per row.
func WriteTradesCSV(path string, trades []model.TradeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"timestamp",
		"symbol",
		"side",
		"quantity",
		"price",
		"cash_delta",
		"profit",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, t := range trades {
		profit := ""
		if t.Profit != nil {
			profit = fmtFloat(*t.Profit)
		}
		row := []string{
			fmtTime(t.Timestamp),
			t.Symbol,
			string(t.Side),
			fmtFloat(t.Quantity),
			fmtFloat(t.Price),
			fmtFloat(t.CashDelta),
			profit,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
