package models

import (
	"time"
)

// Quote is a point-in-time market price for an asset, keyed by
// (symbol, valuation_date, source) with replace-on-conflict semantics.
type Quote struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	Symbol        string    `gorm:"uniqueIndex:idx_quote_natural" json:"symbol"`
	ValuationDate time.Time `gorm:"uniqueIndex:idx_quote_natural" json:"valuation_date"`
	Price         float64   `json:"price"`
	Currency      string    `json:"currency"`
	Source        string    `gorm:"uniqueIndex:idx_quote_natural" json:"source"`
}
