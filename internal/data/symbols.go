package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Symbol describes one tradable instrument known to the dashboard.
type Symbol struct {
	ID       string `json:"id"`       // e.g. "BTC-USD"
	Name     string `json:"name"`     // display name
	Exchange string `json:"exchange"` // e.g. "NASDAQ", "COINBASE"
	Type     string `json:"type"`     // e.g. "EQUITY", "CRYPTO"
}

// SymbolList is the on-disk symbol catalog.
type SymbolList struct {
	UpdatedAt string   `json:"updated_at"` // ISO 8601 timestamp
	Symbols   []Symbol `json:"symbols"`
}

// LoadSymbols loads the symbol catalog from a JSON file.
func LoadSymbols(filePath string) (*SymbolList, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read symbols file: %w", err)
	}
	var list SymbolList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse symbols file: %w", err)
	}
	return &list, nil
}

// SaveSymbols writes the symbol catalog to a JSON file.
func SaveSymbols(list *SymbolList, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal symbols: %w", err)
	}
	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write symbols file: %w", err)
	}
	return nil
}

// DefaultSymbolsPath returns the symbol catalog path, honoring the
// SYMBOLS_FILE environment variable.
func DefaultSymbolsPath() string {
	if path := os.Getenv("SYMBOLS_FILE"); path != "" {
		return path
	}
	return "./data/symbols.json"
}
