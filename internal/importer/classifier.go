package importer

import (
	"strings"

	"finance-dashboard-backend/internal/models"
)

// feeKeywords mark bank fees in the UBS exports. French ("frais") shows up in
// both description and category columns.
var feeKeywords = []string{"frais", "fee"}

// classificationRule pairs a predicate with the outcome it produces. Rules run
// in order and the first match wins.
type classificationRule struct {
	name    string
	matches func(*models.RawTransactionRecord) bool
	outcome func(*models.RawTransactionRecord) models.ClassificationResult
}

// Classifier applies the ordered rule chain to raw records. Classification is
// pure and total: every record yields a result and no rule can fail.
type Classifier struct {
	rules []classificationRule
}

func NewClassifier() *Classifier {
	return &Classifier{rules: []classificationRule{
		// Fees come first: by amount sign alone they would look like
		// withdrawals.
		{
			name:    "fee",
			matches: isFee,
			outcome: func(r *models.RawTransactionRecord) models.ClassificationResult {
				return models.ClassificationResult{
					InferredType:         models.TypeFee,
					InferredCounterparty: optional(r.AccountName),
					Notes:                optional("Identified bank fee"),
				}
			},
		},
		{
			name:    "inflow",
			matches: isInflow,
			outcome: func(r *models.RawTransactionRecord) models.ClassificationResult {
				return models.ClassificationResult{
					InferredType:         models.TypeDeposit,
					InferredCounterparty: extractCounterparty(r.Description),
				}
			},
		},
		{
			name:    "outflow",
			matches: isOutflow,
			outcome: func(r *models.RawTransactionRecord) models.ClassificationResult {
				return models.ClassificationResult{
					InferredType:         models.TypeWithdrawal,
					InferredCounterparty: extractCounterparty(r.Description),
				}
			},
		},
	}}
}

// Classify runs the rule chain over one record, falling back to UNKNOWN when no
// rule matches.
func (c *Classifier) Classify(record *models.RawTransactionRecord) models.ClassificationResult {
	for _, rule := range c.rules {
		if rule.matches(record) {
			return rule.outcome(record)
		}
	}
	return models.ClassificationResult{
		InferredType: models.TypeUnknown,
		Notes:        optional("Unable to infer direction"),
	}
}

func isFee(r *models.RawTransactionRecord) bool {
	description := strings.ToLower(r.Description)
	category := strings.ToLower(r.Category)
	for _, keyword := range feeKeywords {
		if strings.Contains(description, keyword) || strings.Contains(category, keyword) {
			return true
		}
	}
	return false
}

func isInflow(r *models.RawTransactionRecord) bool {
	return amountOrZero(r.Credit) > 0 && amountOrZero(r.Debit) == 0
}

func isOutflow(r *models.RawTransactionRecord) bool {
	return amountOrZero(r.Debit) > 0 && amountOrZero(r.Credit) == 0
}

// extractCounterparty takes the description up to the first comma. It is a
// heuristic; consumers must treat the result as advisory.
func extractCounterparty(description string) *string {
	if description == "" {
		return nil
	}
	segment, _, _ := strings.Cut(description, ",")
	return optional(strings.TrimSpace(segment))
}

func amountOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
