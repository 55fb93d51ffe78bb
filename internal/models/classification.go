package models

// Transaction types inferred by the classifier.
const (
	TypeDeposit    = "DEPOSIT"
	TypeWithdrawal = "WITHDRAWAL"
	TypeFee        = "FEE"
	TypeUnknown    = "UNKNOWN"
)

// ClassificationResult is the outcome of running the rule chain over one raw
// record. It is consumed immediately by the normaliser and never stored as its
// own entity.
type ClassificationResult struct {
	InferredType         string
	InferredCounterparty *string
	Notes                *string
}
