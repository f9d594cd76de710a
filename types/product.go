package types

import (
	"github.com/goccy/go-json"

	"github.com/go-cryptoconnect/coinbasepro/util"
)

// Product describes one tradeable market as returned by the products
// endpoint and used throughout the universe and subscription layers.
type Product struct {
	ID              string  `json:"id"`
	BaseCurrency    string  `json:"base_currency"`
	QuoteCurrency   string  `json:"quote_currency"`
	DisplayName     string  `json:"display_name"`
	BaseMinSize     float64 `json:"-"`
	BaseMaxSize     float64 `json:"-"`
	QuoteIncrement  float64 `json:"-"`
	BaseIncrement   float64 `json:"-"`
	MarginEnabled   bool    `json:"margin_enabled"`
	TradingDisabled bool    `json:"trading_disabled"`
}

// productWire mirrors the raw REST representation, where numeric fields
// arrive as strings.
type productWire struct {
	ID              string `json:"id"`
	BaseCurrency    string `json:"base_currency"`
	QuoteCurrency   string `json:"quote_currency"`
	DisplayName     string `json:"display_name"`
	BaseMinSize     string `json:"base_min_size"`
	BaseMaxSize     string `json:"base_max_size"`
	QuoteIncrement  string `json:"quote_increment"`
	BaseIncrement   string `json:"base_increment"`
	MarginEnabled   bool   `json:"margin_enabled"`
	TradingDisabled bool   `json:"trading_disabled"`
}

// UnmarshalJSON parses the REST wire shape, converting string-encoded
// numeric fields to float64.
func (p *Product) UnmarshalJSON(data []byte) error {
	var wire productWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	p.ID = wire.ID
	p.BaseCurrency = wire.BaseCurrency
	p.QuoteCurrency = wire.QuoteCurrency
	p.DisplayName = wire.DisplayName
	p.BaseMinSize = util.MustFloat64(wire.BaseMinSize)
	p.BaseMaxSize = util.MustFloat64(wire.BaseMaxSize)
	p.QuoteIncrement = util.MustFloat64(wire.QuoteIncrement)
	p.BaseIncrement = util.MustFloat64(wire.BaseIncrement)
	p.MarginEnabled = wire.MarginEnabled
	p.TradingDisabled = wire.TradingDisabled

	return nil
}
