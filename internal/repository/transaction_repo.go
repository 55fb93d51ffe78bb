package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"finance-dashboard-backend/internal/models"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Expose DB if needed
func (r *TransactionRepository) DB() *gorm.DB {
	return r.db
}

// transactionUpsertColumns lists every column replaced on conflict. The list is
// explicit because created_at must take the incoming value too, and gorm's
// UpdateAll convention skips auto-create timestamp fields.
var transactionUpsertColumns = []string{
	"sheet_name", "account_id", "account_name", "account_holder",
	"transaction_date", "transaction_time", "accounting_date",
	"transaction_currency", "amount_chf", "amount_native", "fx_rate",
	"debit", "credit", "balance", "description", "transaction_number",
	"category", "sub_category", "micro_category",
	"inferred_type", "inferred_counterparty", "notes",
	"raw_payload", "created_at",
}

// UpsertTransactions writes a batch with insert-or-replace semantics keyed on
// the transaction ID. Every column including created_at takes the incoming
// value, so repeated imports converge to the latest normalised view.
func (r *TransactionRepository) UpsertTransactions(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(transactionUpsertColumns),
		}).Create(&transactions).Error
	})
}

// ListTransactions returns the most recent stored transactions.
func (r *TransactionRepository) ListTransactions(limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.
		Order("transaction_date DESC").
		Order("accounting_date DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

// CashSummary aggregates stored cash flows for dashboards.
type CashSummary struct {
	TotalCHF         float64  `json:"total_chf"`
	TransactionCount int64    `json:"transaction_count"`
	DisplayCurrency  string   `json:"display_currency"`
	DisplayTotal     float64  `json:"display_total"`
	FxMissing        bool     `json:"fx_missing"`
	FxRate           *float64 `json:"fx_rate,omitempty"`
}

// CashSummary sums all stored CHF amounts and converts the total to the
// requested display currency using the latest stored CHF rate. A missing rate
// never fails the query: the CHF total is returned under the requested label
// with FxMissing set.
func (r *TransactionRepository) CashSummary(displayCurrency string, rates *MarketDataRepository) (CashSummary, error) {
	var row struct {
		TotalCHF         float64
		TransactionCount int64
	}
	err := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount_chf), 0) AS total_chf, COUNT(*) AS transaction_count").
		Scan(&row).Error
	if err != nil {
		return CashSummary{}, err
	}

	summary := CashSummary{
		TotalCHF:         row.TotalCHF,
		TransactionCount: row.TransactionCount,
	}

	currency := strings.ToUpper(displayCurrency)
	if currency == "" || currency == "CHF" {
		summary.DisplayCurrency = "CHF"
		summary.DisplayTotal = row.TotalCHF
		return summary, nil
	}

	summary.DisplayCurrency = currency
	rate, err := rates.GetLatestFxRate("CHF", currency)
	if err != nil {
		return CashSummary{}, err
	}
	if rate == nil {
		summary.DisplayTotal = row.TotalCHF
		summary.FxMissing = true
		return summary, nil
	}
	summary.DisplayTotal = row.TotalCHF * *rate
	summary.FxRate = rate
	return summary, nil
}
