package portfolio

import (
	"log"

	"finance-dashboard-backend/internal/config"
	"finance-dashboard-backend/internal/importer"
	"finance-dashboard-backend/internal/models"
	"finance-dashboard-backend/internal/repository"
	"finance-dashboard-backend/internal/services/pricing"
)

// PortfolioService coordinates imports, persistence and summarisation.
type PortfolioService struct {
	cfg             config.Config
	transactionRepo *repository.TransactionRepository
	marketRepo      *repository.MarketDataRepository
	priceService    *pricing.PriceService
}

func NewPortfolioService(
	cfg config.Config,
	transactionRepo *repository.TransactionRepository,
	marketRepo *repository.MarketDataRepository,
	priceService *pricing.PriceService,
) *PortfolioService {
	return &PortfolioService{
		cfg:             cfg,
		transactionRepo: transactionRepo,
		marketRepo:      marketRepo,
		priceService:    priceService,
	}
}

// ImportWorkbook imports the configured workbook and persists the normalised
// transactions. Returns the number of transactions written. Repeated runs keep
// the latest normalised view per transaction thanks to the repository's upsert.
func (s *PortfolioService) ImportWorkbook(sheetNames []string) (int, error) {
	imp := importer.NewBankExcelImporter(s.cfg.DataFile)
	transactions, _, err := imp.Load(sheetNames)
	if err != nil {
		return 0, err
	}
	if err := s.transactionRepo.UpsertTransactions(transactions); err != nil {
		return 0, err
	}
	log.Printf("imported %d transactions from %d sheet(s)", len(transactions), len(sheetNames))
	return len(transactions), nil
}

// RecentTransactions returns the most recently dated stored transactions.
func (s *PortfolioService) RecentTransactions(limit int) ([]models.Transaction, error) {
	return s.transactionRepo.ListTransactions(limit)
}

// CashSummary aggregates stored cash flows in the requested display currency.
func (s *PortfolioService) CashSummary(displayCurrency string) (repository.CashSummary, error) {
	return s.transactionRepo.CashSummary(displayCurrency, s.marketRepo)
}

// RefreshFxRate fetches and stores the latest rate for a currency pair. A nil
// result means the market-data provider is unavailable.
func (s *PortfolioService) RefreshFxRate(base, quote string) (*models.FxRate, error) {
	rate, err := s.priceService.FetchLatestFxRate(base, quote)
	if err != nil || rate == nil {
		return nil, err
	}
	if err := s.marketRepo.UpsertFxRates([]models.FxRate{*rate}); err != nil {
		return nil, err
	}
	return rate, nil
}

// RefreshEquityQuote fetches and stores the latest price for a listed security.
func (s *PortfolioService) RefreshEquityQuote(symbol string) (*models.Quote, error) {
	quote, err := s.priceService.FetchEquityQuote(symbol)
	if err != nil || quote == nil {
		return nil, err
	}
	if err := s.marketRepo.LogQuotes([]models.Quote{*quote}); err != nil {
		return nil, err
	}
	return quote, nil
}

// RefreshCryptoQuote fetches and stores the latest price for a crypto asset.
func (s *PortfolioService) RefreshCryptoQuote(assetUUID string) (*models.Quote, error) {
	quote, err := s.priceService.FetchCryptoQuote(assetUUID)
	if err != nil || quote == nil {
		return nil, err
	}
	if err := s.marketRepo.LogQuotes([]models.Quote{*quote}); err != nil {
		return nil, err
	}
	return quote, nil
}
