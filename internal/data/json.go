package data

import (
	"encoding/json"
	"os"

	"quant-bot/internal/model"
)

// LoadBarsJSON reads a bars API response from a fixture file. Offline
// backtests and the demo run on these instead of hitting the API.
func LoadBarsJSON(path string) ([]model.Bar, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var resp model.BarsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
