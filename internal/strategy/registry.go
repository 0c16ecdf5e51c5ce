package strategy

import (
	"fmt"

	"quant-bot/internal/decision"
)

// Names lists the strategies Build accepts, for the API and CLI.
func Names() []string {
	return []string{"sma-cross", "rsi-reversion", "momentum"}
}

// Build constructs a signaler by name from a loosely-typed params map
// (as decoded from YAML or a hyperparameter combination). Unknown names
// and degenerate parameter values are rejected so a caller can mark the
// combination instead of running a meaningless backtest.
func Build(name string, params map[string]any) (decision.Signaler, error) {
	switch name {
	case "sma-cross":
		fast := int(numParam(params, "fast", 10))
		slow := int(numParam(params, "slow", 30))
		if fast < 1 || slow < 2 {
			return nil, fmt.Errorf("sma-cross: windows must be positive (fast=%d slow=%d)", fast, slow)
		}
		if fast >= slow {
			return nil, fmt.Errorf("sma-cross: fast window %d must be below slow window %d", fast, slow)
		}
		return NewSMACross(fast, slow), nil
	case "rsi-reversion":
		oversold := numParam(params, "oversold", 30)
		overbought := numParam(params, "overbought", 70)
		if oversold >= overbought {
			return nil, fmt.Errorf("rsi-reversion: oversold %g must be below overbought %g", oversold, overbought)
		}
		return NewRSIReversion(oversold, overbought), nil
	case "momentum":
		lookback := int(numParam(params, "lookback", 12))
		if lookback < 1 {
			return nil, fmt.Errorf("momentum: lookback must be >= 1, got %d", lookback)
		}
		return NewMomentum(lookback), nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

func numParam(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case int:
			return float64(x)
		}
	}
	return def
}
