package importer

import (
	"fmt"

	"finance-dashboard-backend/internal/models"
)

// BankExcelImporter drives extraction, classification and normalisation over a
// workbook. It performs no I/O beyond reading the source file and never touches
// persisted state.
type BankExcelImporter struct {
	workbookPath string
	classifier   *Classifier
}

func NewBankExcelImporter(workbookPath string) *BankExcelImporter {
	return &BankExcelImporter{
		workbookPath: workbookPath,
		classifier:   NewClassifier(),
	}
}

// Load processes the named sheets in order and returns the normalised
// transactions plus a lookup from transaction ID to verbatim raw payload.
// A missing sheet or unreadable workbook aborts the whole call: no partial
// result is returned.
func (imp *BankExcelImporter) Load(sheetNames []string) ([]models.Transaction, map[string]map[string]any, error) {
	workbook, err := OpenWorkbook(imp.workbookPath)
	if err != nil {
		return nil, nil, err
	}
	defer workbook.Close()

	var transactions []models.Transaction
	rawLookup := make(map[string]map[string]any)

	for _, sheet := range sheetNames {
		records, err := workbook.ExtractSheet(sheet)
		if err != nil {
			return nil, nil, fmt.Errorf("importing sheet %q: %w", sheet, err)
		}
		for i := range records {
			record := &records[i]
			rawLookup[record.ID.String()] = record.RawPayload
			classification := imp.classifier.Classify(record)
			transactions = append(transactions, Normalise(record, classification))
		}
	}
	return transactions, rawLookup, nil
}
