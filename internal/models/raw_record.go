package models

import (
	"time"

	"github.com/google/uuid"
)

// RawTransactionRecord mirrors one workbook row as read from the source sheet.
// It is never persisted on its own; the verbatim payload travels into the
// normalised transaction's audit column. Fields stay close to the source so the
// original values survive normalisation.
type RawTransactionRecord struct {
	ID                  uuid.UUID
	SheetName           string
	AccountID           string
	AccountName         string
	AccountHolder       string
	TransactionDate     *time.Time
	TransactionTime     string
	AccountingDate      *time.Time
	AmountCHF           *float64
	Debit               *float64
	Credit              *float64
	Balance             *float64
	TransactionCurrency string
	FxRate              *float64
	Description         string
	TransactionNumber   string
	Category            string
	SubCategory         string
	MicroCategory       string
	RawPayload          map[string]any
}

// SignedAmount returns the cash impact of the row in CHF. The explicit
// amount_chf column wins; otherwise credit minus debit, with absent values
// treated as zero.
func (r *RawTransactionRecord) SignedAmount() float64 {
	if r.AmountCHF != nil {
		return *r.AmountCHF
	}
	var debit, credit float64
	if r.Debit != nil {
		debit = *r.Debit
	}
	if r.Credit != nil {
		credit = *r.Credit
	}
	return credit - debit
}
