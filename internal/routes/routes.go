package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"finance-dashboard-backend/internal/config"
	handler "finance-dashboard-backend/internal/handlers"
	"finance-dashboard-backend/internal/repository"
	portfolio "finance-dashboard-backend/internal/services/portfolio"
	"finance-dashboard-backend/internal/services/pricing"
)

func RegisterRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB) {
	transactionRepo := repository.NewTransactionRepository(db)
	marketRepo := repository.NewMarketDataRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	priceService := pricing.NewPriceService(cfg)
	portfolioService := portfolio.NewPortfolioService(cfg, transactionRepo, marketRepo, priceService)

	portfolioHandler := handler.NewPortfolioHandler(portfolioService, settingRepo)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/import", portfolioHandler.ImportWorkbook)
	r.GET("/transactions", portfolioHandler.ListTransactions)
	r.GET("/summary", portfolioHandler.CashSummary)

	r.POST("/fx/refresh", portfolioHandler.RefreshFxRate)

	quotes := r.Group("/quotes")
	{
		quotes.POST("/equity/:symbol", portfolioHandler.RefreshEquityQuote)
		quotes.POST("/crypto/:uuid", portfolioHandler.RefreshCryptoQuote)
	}

	settings := r.Group("/settings")
	{
		settings.GET("/display-currency", portfolioHandler.GetDisplayCurrency)
		settings.PUT("/display-currency", portfolioHandler.SetDisplayCurrency)
	}
}
