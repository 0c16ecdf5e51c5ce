package store

// Redis key patterns. Keep these stable; the dashboard reads them too.
const (
	keyPortfolio = "bot:%s:portfolio"  // JSON portfolio snapshot
	keyTrades    = "bot:%s:trades"     // list of JSON trade records, append-only
	keyRunLog    = "bot:%s:runlog"     // list of JSON run log entries, newest first
	keyBars      = "bars:%s:%s:%s"     // symbol, interval, period -> JSON cached window
)

// runLogMaxLength caps the retained run log per bot.
const runLogMaxLength = 1000
