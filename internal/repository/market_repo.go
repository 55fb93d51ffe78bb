package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"finance-dashboard-backend/internal/models"
)

type MarketDataRepository struct {
	db *gorm.DB
}

func NewMarketDataRepository(db *gorm.DB) *MarketDataRepository {
	return &MarketDataRepository{db: db}
}

// UpsertFxRates replaces rates on their natural key
// (base, quote, valuation_date, source).
func (r *MarketDataRepository) UpsertFxRates(rates []models.FxRate) error {
	if len(rates) == 0 {
		return nil
	}
	for i := range rates {
		rates[i].Base = strings.ToUpper(rates[i].Base)
		rates[i].Quote = strings.ToUpper(rates[i].Quote)
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "base"}, {Name: "quote"}, {Name: "valuation_date"}, {Name: "source"},
		},
		UpdateAll: true,
	}).Create(&rates).Error
}

// GetLatestFxRate returns the most recent stored rate for base/quote ordered by
// valuation date, or nil when none is stored.
func (r *MarketDataRepository) GetLatestFxRate(base, quote string) (*float64, error) {
	var fx models.FxRate
	err := r.db.
		Where("base = ? AND quote = ?", strings.ToUpper(base), strings.ToUpper(quote)).
		Order("valuation_date DESC").
		First(&fx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fx.Rate, nil
}

// LogQuotes replaces quotes on their natural key (symbol, valuation_date, source).
func (r *MarketDataRepository) LogQuotes(quotes []models.Quote) error {
	if len(quotes) == 0 {
		return nil
	}
	for i := range quotes {
		quotes[i].Symbol = strings.ToUpper(quotes[i].Symbol)
		quotes[i].Currency = strings.ToUpper(quotes[i].Currency)
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "symbol"}, {Name: "valuation_date"}, {Name: "source"},
		},
		UpdateAll: true,
	}).Create(&quotes).Error
}
