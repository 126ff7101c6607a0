package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anatoliyserebry/cryptowatchlive/internal/service/rate"
	"github.com/anatoliyserebry/cryptowatchlive/pkg/decimalx"
)

// MEXC 现货行情, 加密链条末位; 接口形状与币安REST一致
type MEXC struct {
	baseURL string
	cli     *http.Client
}

func NewMEXC(baseURL string) *MEXC {
	if baseURL == "" {
		baseURL = "https://api.mexc.com"
	}
	return &MEXC{
		baseURL: baseURL,
		cli:     newHTTPClient(),
	}
}

func (m *MEXC) Name() string {
	return "mexc"
}

type mexcTicker struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

type mexcStats struct {
	PriceChangePercent string `json:"priceChangePercent"`
}

func (m *MEXC) Quote(ctx context.Context, base, quote string) (rate.Quote, error) {
	if alias, ok := binanceQuoteAlias[strings.ToUpper(quote)]; ok {
		quote = alias
	}
	sym := strings.ToUpper(base) + strings.ToUpper(quote)

	var ticker mexcTicker
	if err := getJSON(ctx, m.cli, fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", m.baseURL, sym), &ticker); err != nil {
		return rate.Quote{}, err
	}
	price, err := decimalx.Float64FromString(ticker.Price)
	if err != nil {
		return rate.Quote{}, err
	}

	var change *float64
	var stats mexcStats
	if err := getJSON(ctx, m.cli, fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%s", m.baseURL, sym), &stats); err != nil {
		slog.Warn("mexc 24h stats unavailable", "symbol", sym, "error", err)
	} else if ch, err := decimalx.Float64FromString(stats.PriceChangePercent); err == nil {
		change = &ch
	}

	return rate.Quote{Price: price, Change: change}, nil
}
