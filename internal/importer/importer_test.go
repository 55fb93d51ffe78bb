package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"finance-dashboard-backend/internal/models"
)

var fixtureHeaders = []any{
	"account_id", "account_name", "account_holder",
	"transac_date", "transac_hour", "accounting_date",
	"amount_chf", "debit", "credit", "balance",
	"transac_currency", "rate",
	"descr_1", "descr_2", "descr_3",
	"transac_nbr", "category", "sub_category", "micro_category",
}

func writeFixtureWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheets := map[string][][]any{
		"crypto_transac": {
			fixtureHeaders,
			{"ACC-1", "UBS Private", "J. Doe",
				"03.04.2024", "09:15", "04.04.2024",
				"", "", "1'234,50", "10'000,00",
				"CHF", "",
				"Acme Corp", "invoice 123", "",
				"TX-001", "income", "salary", ""},
			{"ACC-1", "UBS Private", "J. Doe",
				"05.04.2024", "", "05.04.2024",
				"-90.00", "", "", "",
				"USD", "0,90",
				"Kraken", "BTC purchase", "",
				"TX-002", "crypto", "", ""},
		},
		"stocks_transac": {
			fixtureHeaders,
			{"ACC-2", "UBS Custody", "J. Doe",
				"10.04.2024", "", "10.04.2024",
				"", "45,00", "", "",
				"CHF", "",
				"Frais de courtage", "", "",
				"TX-003", "frais", "", ""},
		},
	}

	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))

	path := filepath.Join(t.TempDir(), "transactions.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadEndToEnd(t *testing.T) {
	path := writeFixtureWorkbook(t)

	transactions, rawLookup, err := NewBankExcelImporter(path).Load([]string{"crypto_transac", "stocks_transac"})
	require.NoError(t, err)
	require.Len(t, transactions, 3)
	require.Len(t, rawLookup, 3)

	// Rows stay in sheet order.
	deposit := transactions[0]
	assert.Equal(t, "crypto_transac", deposit.SheetName)
	assert.Equal(t, models.TypeDeposit, deposit.InferredType)
	assert.InDelta(t, 1234.50, deposit.AmountCHF, 1e-9)
	require.NotNil(t, deposit.InferredCounterparty)
	assert.Equal(t, "Acme Corp", *deposit.InferredCounterparty)
	assert.Equal(t, "Acme Corp, invoice 123", deposit.Description)

	usd := transactions[1]
	assert.Equal(t, "USD", usd.TransactionCurrency)
	require.NotNil(t, usd.AmountNative)
	assert.InDelta(t, -100.0, *usd.AmountNative, 1e-9)

	fee := transactions[2]
	assert.Equal(t, "stocks_transac", fee.SheetName)
	assert.Equal(t, models.TypeFee, fee.InferredType)
	assert.InDelta(t, -45.0, fee.AmountCHF, 1e-9)

	// Verbatim payload keeps every column, blanks included.
	payload, ok := rawLookup[deposit.ID.String()]
	require.True(t, ok)
	assert.Equal(t, "1'234,50", payload["credit"])
	assert.Equal(t, "", payload["debit"])
	assert.Len(t, payload, len(fixtureHeaders))
}

func TestLoadIdentityIsStableAcrossRuns(t *testing.T) {
	path := writeFixtureWorkbook(t)
	imp := NewBankExcelImporter(path)

	first, _, err := imp.Load([]string{"crypto_transac"})
	require.NoError(t, err)
	second, _, err := imp.Load([]string{"crypto_transac"})
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestLoadDuplicateRowsKeepDistinctIdentity(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("crypto_transac")
	require.NoError(t, err)
	header := []any{"account_id", "transac_date", "credit", "debit", "descr_1", "transac_nbr"}
	// Two legitimate same-day equal purchases with no reference number.
	duplicate := []any{"ACC-1", "03.04.2024", "", "25,00", "Coop Genève", ""}
	require.NoError(t, f.SetSheetRow("crypto_transac", "A1", &header))
	require.NoError(t, f.SetSheetRow("crypto_transac", "A2", &duplicate))
	require.NoError(t, f.SetSheetRow("crypto_transac", "A3", &duplicate))
	require.NoError(t, f.DeleteSheet("Sheet1"))

	path := filepath.Join(t.TempDir(), "duplicates.xlsx")
	require.NoError(t, f.SaveAs(path))

	imp := NewBankExcelImporter(path)
	transactions, rawLookup, err := imp.Load([]string{"crypto_transac"})
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.NotEqual(t, transactions[0].ID, transactions[1].ID)
	assert.Len(t, rawLookup, 2)

	// Duplicates stay distinct but still re-import to the same IDs.
	again, _, err := imp.Load([]string{"crypto_transac"})
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.Equal(t, transactions[0].ID, again[0].ID)
	assert.Equal(t, transactions[1].ID, again[1].ID)
}

func TestLoadMissingSheetFailsWhole(t *testing.T) {
	path := writeFixtureWorkbook(t)

	transactions, rawLookup, err := NewBankExcelImporter(path).Load([]string{"crypto_transac", "no_such_sheet"})
	require.Error(t, err)
	assert.Nil(t, transactions)
	assert.Nil(t, rawLookup)
}

func TestLoadUnreadableWorkbook(t *testing.T) {
	_, _, err := NewBankExcelImporter(filepath.Join(t.TempDir(), "missing.xlsx")).Load([]string{"crypto_transac"})
	require.Error(t, err)
}
