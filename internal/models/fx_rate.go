package models

import (
	"time"
)

// FxRate is one stored exchange rate. A newer fetch for the same natural key
// (base, quote, valuation_date, source) replaces the prior row.
type FxRate struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	Base          string    `gorm:"uniqueIndex:idx_fx_natural" json:"base"`
	Quote         string    `gorm:"uniqueIndex:idx_fx_natural" json:"quote"`
	ValuationDate time.Time `gorm:"uniqueIndex:idx_fx_natural" json:"valuation_date"`
	Rate          float64   `json:"rate"`
	Source        string    `gorm:"uniqueIndex:idx_fx_natural" json:"source"`
}
