package handler

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"finance-dashboard-backend/internal/repository"
	service "finance-dashboard-backend/internal/services/portfolio"
)

var currencyPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

type PortfolioHandler struct {
	service     *service.PortfolioService
	settingRepo *repository.SettingRepository
}

func NewPortfolioHandler(s *service.PortfolioService, settingRepo *repository.SettingRepository) *PortfolioHandler {
	return &PortfolioHandler{service: s, settingRepo: settingRepo}
}

// ImportWorkbook imports the Excel workbook and persists normalised transactions.
func (h *PortfolioHandler) ImportWorkbook(c *gin.Context) {
	sheets := c.QueryArray("sheet_names")
	if len(sheets) == 0 {
		sheets = []string{"crypto_transac", "stocks_transac"}
	}

	imported, err := h.service.ImportWorkbook(sheets)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported, "sheets": sheets})
}

func (h *PortfolioHandler) ListTransactions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "200"))
	if err != nil || limit < 1 || limit > 1000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 1000"})
		return
	}

	transactions, err := h.service.RecentTransactions(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions, "count": len(transactions)})
}

func (h *PortfolioHandler) CashSummary(c *gin.Context) {
	currency := c.DefaultQuery("display_currency", "CHF")
	if !currencyPattern.MatchString(currency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "display_currency must be a 3-letter code"})
		return
	}

	summary, err := h.service.CashSummary(currency)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_chf":          summary.TotalCHF,
		"transaction_count":  summary.TransactionCount,
		"display_currency":   summary.DisplayCurrency,
		"display_total":      summary.DisplayTotal,
		"fx_missing":         summary.FxMissing,
		"fx_rate":            summary.FxRate,
		"requested_currency": strings.ToUpper(currency),
	})
}

func (h *PortfolioHandler) RefreshFxRate(c *gin.Context) {
	base := c.Query("base")
	quote := c.Query("quote")
	if !currencyPattern.MatchString(base) || !currencyPattern.MatchString(quote) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "base and quote must be 3-letter codes"})
		return
	}

	rate, err := h.service.RefreshFxRate(strings.ToUpper(base), strings.ToUpper(quote))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rate == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "FX rate unavailable. Ensure the Alpha Vantage API key is configured."})
		return
	}
	c.JSON(http.StatusOK, rate)
}

func (h *PortfolioHandler) RefreshEquityQuote(c *gin.Context) {
	quote, err := h.service.RefreshEquityQuote(c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if quote == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Equity quote unavailable. Check the Alpha Vantage API key."})
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *PortfolioHandler) RefreshCryptoQuote(c *gin.Context) {
	quote, err := h.service.RefreshCryptoQuote(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if quote == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Crypto quote unavailable. Check the Coinranking API key."})
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *PortfolioHandler) GetDisplayCurrency(c *gin.Context) {
	currency, err := h.settingRepo.GetSetting("display_currency", "CHF")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"display_currency": currency})
}

func (h *PortfolioHandler) SetDisplayCurrency(c *gin.Context) {
	currency := c.Query("currency")
	if !currencyPattern.MatchString(currency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currency must be a 3-letter code"})
		return
	}

	if err := h.settingRepo.SetSetting("display_currency", strings.ToUpper(currency)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"display_currency": strings.ToUpper(currency)})
}
