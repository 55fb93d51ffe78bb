package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"finance-dashboard-backend/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Transaction{},
		&models.FxRate{},
		&models.Quote{},
		&models.Setting{},
	))
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUpsertTransactionsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)

	id := uuid.MustParse("3f0c8e1a-7c2b-5e4d-9a6f-1b2c3d4e5f60")
	firstImport := models.Transaction{
		ID:                  id,
		SheetName:           "crypto_transac",
		TransactionCurrency: "CHF",
		AmountCHF:           120.50,
		Description:         "Acme Corp, invoice 123",
		InferredType:        models.TypeDeposit,
		CreatedAt:           day(2024, time.April, 1),
	}
	require.NoError(t, repo.UpsertTransactions([]models.Transaction{firstImport}))

	// Re-import replaces every mutable field, created_at included.
	secondImport := firstImport
	secondImport.Description = "Acme Corp, invoice 123 (rebooked)"
	secondImport.AmountCHF = 130.00
	secondImport.CreatedAt = day(2024, time.May, 1)
	require.NoError(t, repo.UpsertTransactions([]models.Transaction{secondImport}))

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var stored models.Transaction
	require.NoError(t, db.First(&stored, "id = ?", id).Error)
	assert.Equal(t, "Acme Corp, invoice 123 (rebooked)", stored.Description)
	assert.InDelta(t, 130.00, stored.AmountCHF, 1e-9)
	assert.WithinDuration(t, day(2024, time.May, 1), stored.CreatedAt, time.Second)
}

func TestListTransactionsOrderAndLimit(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)

	older := day(2024, time.March, 1)
	newer := day(2024, time.April, 1)
	require.NoError(t, repo.UpsertTransactions([]models.Transaction{
		{ID: uuid.New(), TransactionDate: &older, TransactionCurrency: "CHF"},
		{ID: uuid.New(), TransactionDate: &newer, TransactionCurrency: "CHF"},
	}))

	listed, err := repo.ListTransactions(1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].TransactionDate)
	assert.WithinDuration(t, newer, *listed[0].TransactionDate, time.Second)
}

func TestCashSummaryCHF(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	marketRepo := NewMarketDataRepository(db)

	require.NoError(t, repo.UpsertTransactions([]models.Transaction{
		{ID: uuid.New(), TransactionCurrency: "CHF", AmountCHF: 120.50},
		{ID: uuid.New(), TransactionCurrency: "CHF", AmountCHF: -45.00},
	}))

	summary, err := repo.CashSummary("chf", marketRepo)
	require.NoError(t, err)
	assert.Equal(t, "CHF", summary.DisplayCurrency)
	assert.InDelta(t, 75.50, summary.TotalCHF, 1e-9)
	assert.InDelta(t, 75.50, summary.DisplayTotal, 1e-9)
	assert.Equal(t, int64(2), summary.TransactionCount)
	assert.False(t, summary.FxMissing)
}

func TestCashSummaryMissingRateDegrades(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	marketRepo := NewMarketDataRepository(db)

	require.NoError(t, repo.UpsertTransactions([]models.Transaction{
		{ID: uuid.New(), TransactionCurrency: "CHF", AmountCHF: 100.0},
	}))

	summary, err := repo.CashSummary("EUR", marketRepo)
	require.NoError(t, err)
	assert.Equal(t, "EUR", summary.DisplayCurrency)
	assert.InDelta(t, 100.0, summary.DisplayTotal, 1e-9)
	assert.True(t, summary.FxMissing)
	assert.Nil(t, summary.FxRate)
}

func TestCashSummaryConvertsWithLatestRate(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	marketRepo := NewMarketDataRepository(db)

	require.NoError(t, repo.UpsertTransactions([]models.Transaction{
		{ID: uuid.New(), TransactionCurrency: "CHF", AmountCHF: 100.0},
	}))
	require.NoError(t, marketRepo.UpsertFxRates([]models.FxRate{
		{Base: "CHF", Quote: "EUR", ValuationDate: day(2024, time.April, 1), Rate: 1.00, Source: "alpha_vantage"},
		{Base: "CHF", Quote: "EUR", ValuationDate: day(2024, time.April, 5), Rate: 1.05, Source: "alpha_vantage"},
	}))

	summary, err := repo.CashSummary("eur", marketRepo)
	require.NoError(t, err)
	assert.False(t, summary.FxMissing)
	assert.InDelta(t, 105.0, summary.DisplayTotal, 1e-9)
	require.NotNil(t, summary.FxRate)
	assert.InDelta(t, 1.05, *summary.FxRate, 1e-9)
}

func TestFxRateReplaceOnNaturalKey(t *testing.T) {
	db := openTestDB(t)
	marketRepo := NewMarketDataRepository(db)

	key := models.FxRate{Base: "chf", Quote: "usd", ValuationDate: day(2024, time.April, 1), Source: "alpha_vantage"}

	first := key
	first.Rate = 1.10
	require.NoError(t, marketRepo.UpsertFxRates([]models.FxRate{first}))

	second := key
	second.Rate = 1.12
	require.NoError(t, marketRepo.UpsertFxRates([]models.FxRate{second}))

	var count int64
	require.NoError(t, db.Model(&models.FxRate{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	rate, err := marketRepo.GetLatestFxRate("CHF", "USD")
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.InDelta(t, 1.12, *rate, 1e-9)
}

func TestLogQuotesReplaceOnNaturalKey(t *testing.T) {
	db := openTestDB(t)
	marketRepo := NewMarketDataRepository(db)

	quote := models.Quote{Symbol: "btc", ValuationDate: day(2024, time.April, 1), Price: 60000, Currency: "usd", Source: "coinranking"}
	require.NoError(t, marketRepo.LogQuotes([]models.Quote{quote}))

	quote.Price = 61000
	require.NoError(t, marketRepo.LogQuotes([]models.Quote{quote}))

	var stored []models.Quote
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "BTC", stored[0].Symbol)
	assert.InDelta(t, 61000, stored[0].Price, 1e-9)
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)
	settingRepo := NewSettingRepository(db)

	value, err := settingRepo.GetSetting("display_currency", "CHF")
	require.NoError(t, err)
	assert.Equal(t, "CHF", value)

	require.NoError(t, settingRepo.SetSetting("display_currency", "EUR"))
	require.NoError(t, settingRepo.SetSetting("display_currency", "USD"))

	value, err = settingRepo.GetSetting("display_currency", "CHF")
	require.NoError(t, err)
	assert.Equal(t, "USD", value)
}
