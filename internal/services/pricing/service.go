package pricing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"finance-dashboard-backend/internal/config"
	"finance-dashboard-backend/internal/models"
)

// PriceService fetches live FX rates and quotes from external providers. A
// missing API key or an unexpected provider payload degrades to a nil result
// rather than an error; only transport and HTTP failures are errors.
type PriceService struct {
	cfg    config.Config
	client *http.Client
}

func NewPriceService(cfg config.Config) *PriceService {
	return &PriceService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchLatestFxRate returns the current rate between two currencies from
// Alpha Vantage, or nil when the service is not configured or the payload is
// not usable.
func (s *PriceService) FetchLatestFxRate(base, quote string) (*models.FxRate, error) {
	if s.cfg.AlphaVantageKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("function", "CURRENCY_EXCHANGE_RATE")
	params.Set("from_currency", strings.ToUpper(base))
	params.Set("to_currency", strings.ToUpper(quote))
	params.Set("apikey", s.cfg.AlphaVantageKey)

	var payload map[string]json.RawMessage
	if err := s.getJSON(s.cfg.AlphaVantageEndpoint+"?"+params.Encode(), nil, &payload); err != nil {
		return nil, err
	}

	// Alpha Vantage answers rate limits and errors with arbitrary shapes
	// (e.g. a "Note" string); anything without the expected section means
	// unavailable, not failure.
	body := stringSection(payload, "Realtime Currency Exchange Rate")
	if body == nil {
		return nil, nil
	}
	rate, err := strconv.ParseFloat(body["5. Exchange Rate"], 64)
	if err != nil {
		return nil, nil
	}
	return &models.FxRate{
		Base:          strings.ToUpper(base),
		Quote:         strings.ToUpper(quote),
		ValuationDate: today(),
		Rate:          rate,
		Source:        "alpha_vantage",
	}, nil
}

// FetchEquityQuote returns the current price of a listed security from
// Alpha Vantage.
func (s *PriceService) FetchEquityQuote(symbol string) (*models.Quote, error) {
	if s.cfg.AlphaVantageKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", s.cfg.AlphaVantageKey)

	var payload map[string]json.RawMessage
	if err := s.getJSON(s.cfg.AlphaVantageEndpoint+"?"+params.Encode(), nil, &payload); err != nil {
		return nil, err
	}

	section := stringSection(payload, "Global Quote")
	if len(section) == 0 {
		return nil, nil
	}
	price, err := strconv.ParseFloat(section["05. price"], 64)
	if err != nil {
		return nil, nil
	}
	currency := section["08. currency"]
	if currency == "" {
		currency = "USD"
	}
	return &models.Quote{
		Symbol:        strings.ToUpper(symbol),
		ValuationDate: today(),
		Price:         price,
		Currency:      strings.ToUpper(currency),
		Source:        "alpha_vantage",
	}, nil
}

type coinrankingResponse struct {
	Data struct {
		Coin struct {
			Symbol string `json:"symbol"`
			Price  string `json:"price"`
		} `json:"coin"`
	} `json:"data"`
}

// FetchCryptoQuote returns the current price of a crypto asset from
// Coinranking. The asset is addressed by its Coinranking UUID.
func (s *PriceService) FetchCryptoQuote(assetUUID string) (*models.Quote, error) {
	if s.cfg.CoinrankingKey == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("https://%s/coin/%s?timePeriod=24h", s.cfg.CoinrankingHost, assetUUID)
	headers := map[string]string{
		"X-RapidAPI-Key":  s.cfg.CoinrankingKey,
		"X-RapidAPI-Host": s.cfg.CoinrankingHost,
	}

	var payload coinrankingResponse
	if err := s.getJSON(endpoint, headers, &payload); err != nil {
		return nil, err
	}
	return cryptoQuote(payload, assetUUID), nil
}

// cryptoQuote maps a Coinranking payload onto a Quote, or nil when the payload
// carries no usable price. A missing coin symbol leaves the asset addressed by
// its UUID and the currency falls back to USD.
func cryptoQuote(payload coinrankingResponse, assetUUID string) *models.Quote {
	coin := payload.Data.Coin
	if coin.Price == "" {
		return nil
	}
	price, err := strconv.ParseFloat(coin.Price, 64)
	if err != nil {
		return nil
	}
	symbol := coin.Symbol
	currency := coin.Symbol
	if symbol == "" {
		symbol = assetUUID
		currency = "USD"
	}
	return &models.Quote{
		Symbol:        strings.ToUpper(symbol),
		ValuationDate: today(),
		Price:         price,
		Currency:      strings.ToUpper(currency),
		Source:        "coinranking",
	}
}

// stringSection decodes one named object of string fields out of a loosely
// shaped provider payload. Missing or mis-shaped sections yield nil.
func stringSection(payload map[string]json.RawMessage, key string) map[string]string {
	raw, ok := payload[key]
	if !ok {
		return nil
	}
	var section map[string]string
	if err := json.Unmarshal(raw, &section); err != nil {
		return nil
	}
	return section
}

func (s *PriceService) getJSON(endpoint string, headers map[string]string, out any) error {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", req.URL.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("calling %s: unexpected status %d", req.URL.Host, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
