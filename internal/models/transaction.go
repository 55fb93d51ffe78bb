package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Transaction is the canonical, persisted form of one workbook row after
// classification and normalisation. ID doubles as the upsert key.
type Transaction struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SheetName            string         `gorm:"index" json:"sheet_name"`
	AccountID            string         `json:"account_id"`
	AccountName          string         `json:"account_name"`
	AccountHolder        string         `json:"account_holder"`
	TransactionDate      *time.Time     `gorm:"column:transaction_date;index" json:"transaction_date"`
	TransactionTime      string         `json:"transaction_time"`
	AccountingDate       *time.Time     `json:"accounting_date"`
	TransactionCurrency  string         `json:"transaction_currency"`
	AmountCHF            float64        `gorm:"column:amount_chf" json:"amount_chf"`
	AmountNative         *float64       `json:"amount_native"`
	FxRate               *float64       `json:"fx_rate"`
	Debit                *float64       `json:"debit"`
	Credit               *float64       `json:"credit"`
	Balance              *float64       `json:"balance"`
	Description          string         `json:"description"`
	TransactionNumber    string         `json:"transaction_number"`
	Category             string         `json:"category"`
	SubCategory          string         `json:"sub_category"`
	MicroCategory        string         `json:"micro_category"`
	InferredType         string         `gorm:"index" json:"inferred_type"`
	InferredCounterparty *string        `json:"inferred_counterparty"`
	Notes                *string        `json:"notes"`
	RawPayload           datatypes.JSON `json:"raw_payload"`
	CreatedAt            time.Time      `json:"created_at"`
}
