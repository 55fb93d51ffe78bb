package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"finance-dashboard-backend/internal/models"
)

// idNamespace scopes the content-hashed transaction IDs to this application.
var idNamespace = uuid.MustParse("4c7a3f0e-9d21-4b8f-b1d6-2a85c0a4e9d3")

// Workbook reads raw transaction records out of an xlsx export. Reading never
// mutates the source file.
type Workbook struct {
	file *excelize.File
}

// OpenWorkbook opens an xlsx file for extraction.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return &Workbook{file: f}, nil
}

// Close releases the underlying workbook handle.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// ExtractSheet reads one sheet into raw transaction records, one per data row,
// in original row order. The first row is the header. Every original column is
// kept verbatim in the record's payload map, with blank cells as empty strings,
// so the audit trail round-trips through JSON unchanged.
func (w *Workbook) ExtractSheet(sheetName string) ([]models.RawTransactionRecord, error) {
	rows, err := w.file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = CleanString(h)
	}

	records := make([]models.RawTransactionRecord, 0, len(rows)-1)
	seen := make(map[string]int)
	for _, row := range rows[1:] {
		cells := make(map[string]string, len(headers))
		payload := make(map[string]any, len(headers))
		for i, header := range headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			cells[header] = value
			payload[header] = value
		}

		record := models.RawTransactionRecord{
			SheetName:           sheetName,
			AccountID:           CleanString(cells["account_id"]),
			AccountName:         CleanString(cells["account_name"]),
			AccountHolder:       CleanString(cells["account_holder"]),
			TransactionDate:     ParseDate(cells["transac_date"]),
			TransactionTime:     CleanString(cells["transac_hour"]),
			AccountingDate:      ParseDate(cells["accounting_date"]),
			AmountCHF:           ParseDecimal(cells["amount_chf"]),
			Debit:               ParseDecimal(cells["debit"]),
			Credit:              ParseDecimal(cells["credit"]),
			Balance:             ParseDecimal(cells["balance"]),
			TransactionCurrency: CleanString(cells["transac_currency"]),
			FxRate:              ParseDecimal(cells["rate"]),
			Description:         CollapseDescription(cells["descr_1"], cells["descr_2"], cells["descr_3"]),
			TransactionNumber:   CleanString(cells["transac_nbr"]),
			Category:            CleanString(cells["category"]),
			SubCategory:         CleanString(cells["sub_category"]),
			MicroCategory:       CleanString(cells["micro_category"]),
			RawPayload:          payload,
		}
		record.ID = recordIdentity(sheetName, cells, seen)
		records = append(records, record)
	}
	return records, nil
}

// recordIdentity derives a stable ID from the row's discriminating source
// fields so re-importing unchanged data converges on the same stored row.
// Identical rows within one sheet get an occurrence suffix: row order is
// stable across extractions, so duplicates keep distinct, repeatable IDs
// instead of merging. Rows with no usable discriminator fall back to a
// random ID.
func recordIdentity(sheetName string, cells map[string]string, seen map[string]int) uuid.UUID {
	discriminators := []string{
		CleanString(cells["account_id"]),
		CleanString(cells["transac_date"]),
		CleanString(cells["transac_nbr"]),
		CleanString(cells["amount_chf"]),
		CleanString(cells["debit"]),
		CleanString(cells["credit"]),
	}
	empty := true
	for _, d := range discriminators {
		if d != "" {
			empty = false
			break
		}
	}
	if empty {
		return uuid.New()
	}
	seed := sheetName + "\x1f" + strings.Join(discriminators, "\x1f")
	occurrence := seen[seed]
	seen[seed]++
	seed += "\x1f" + strconv.Itoa(occurrence)
	return uuid.NewSHA1(idNamespace, []byte(seed))
}
