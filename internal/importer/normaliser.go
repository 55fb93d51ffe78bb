package importer

import (
	"encoding/json"
	"strings"
	"time"

	"finance-dashboard-backend/internal/models"
)

// Normalise combines a raw record and its classification into the canonical
// transaction. It is total: any well-formed raw record normalises without
// error.
func Normalise(record *models.RawTransactionRecord, classification models.ClassificationResult) models.Transaction {
	currency := record.TransactionCurrency
	if currency == "" {
		currency = "CHF"
	}

	amountCHF := record.SignedAmount()

	// Native amount only exists for foreign-currency rows with a usable rate.
	// A zero rate yields an absent value, not a division fault.
	var amountNative *float64
	if !strings.EqualFold(currency, "CHF") && record.FxRate != nil && *record.FxRate != 0 {
		native := amountCHF / *record.FxRate
		amountNative = &native
	}

	payload, _ := json.Marshal(record.RawPayload)

	return models.Transaction{
		ID:                   record.ID,
		SheetName:            record.SheetName,
		AccountID:            record.AccountID,
		AccountName:          record.AccountName,
		AccountHolder:        record.AccountHolder,
		TransactionDate:      record.TransactionDate,
		TransactionTime:      record.TransactionTime,
		AccountingDate:       record.AccountingDate,
		TransactionCurrency:  currency,
		AmountCHF:            amountCHF,
		AmountNative:         amountNative,
		FxRate:               record.FxRate,
		Debit:                record.Debit,
		Credit:               record.Credit,
		Balance:              record.Balance,
		Description:          record.Description,
		TransactionNumber:    record.TransactionNumber,
		Category:             record.Category,
		SubCategory:          record.SubCategory,
		MicroCategory:        record.MicroCategory,
		InferredType:         classification.InferredType,
		InferredCounterparty: classification.InferredCounterparty,
		Notes:                classification.Notes,
		RawPayload:           payload,
		CreatedAt:            time.Now().UTC(),
	}
}
