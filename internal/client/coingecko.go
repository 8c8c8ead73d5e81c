package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

const (
	coingeckoAPI = "https://api.coingecko.com/api/v3"
	solanaCoinID = "solana"
)

// CoinGeckoClient client for CoinGecko API
type CoinGeckoClient struct {
	baseURL string
	client  *http.Client
}

// NewCoinGeckoClient creates a new CoinGecko client
func NewCoinGeckoClient() *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL: coingeckoAPI,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetSOLRate gets the SOL price in currency (e.g. "usd") formatted with two decimals.
func (c *CoinGeckoClient) GetSOLRate(currency string) (string, error) {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		return "", apperr.New(apperr.InvalidArgument, "empty currency")
	}
	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s", c.baseURL, solanaCoinID, currency)

	resp, err := c.client.Get(url)
	if err != nil {
		return "", apperr.Wrap(apperr.NetworkError, err, "failed to get rate")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperr.New(apperr.HttpError, "failed to get rate: status %d", resp.StatusCode)
	}

	// {"solana":{"usd":142.17}}
	var priceResp map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return "", apperr.Wrap(apperr.JsonParseError, err, "failed to decode rate")
	}

	price, ok := priceResp[solanaCoinID][currency]
	if !ok {
		return "", apperr.New(apperr.JsonParseError, "no %s price for %s", currency, solanaCoinID)
	}

	rate := strconv.FormatFloat(price, 'f', 2, 64)
	return rate, nil
}
