package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/anatoliyserebry/cryptowatchlive/internal/service/rate"
)

// Yahoo Finance chart接口, 覆盖主流 BTC-USD 式交易对
type Yahoo struct {
	baseURL string
	cli     *http.Client
}

func NewYahoo(baseURL string) *Yahoo {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &Yahoo{
		baseURL: baseURL,
		cli:     newHTTPClient(),
	}
}

func (y *Yahoo) Name() string {
	return "yahoo"
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (y *Yahoo) Quote(ctx context.Context, base, quote string) (rate.Quote, error) {
	sym := fmt.Sprintf("%s-%s", strings.ToUpper(base), strings.ToUpper(quote))

	var resp yahooChartResponse
	if err := getJSON(ctx, y.cli, fmt.Sprintf("%s/v8/finance/chart/%s", y.baseURL, sym), &resp); err != nil {
		return rate.Quote{}, err
	}
	if resp.Chart.Error != nil {
		return rate.Quote{}, fmt.Errorf("yahoo: %s: %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return rate.Quote{}, fmt.Errorf("yahoo: pair %s not found", sym)
	}

	meta := resp.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return rate.Quote{}, fmt.Errorf("yahoo: no market price for %s", sym)
	}
	var change *float64
	if meta.PreviousClose != 0 {
		ch := (meta.RegularMarketPrice - meta.PreviousClose) / meta.PreviousClose * 100
		change = &ch
	}
	return rate.Quote{Price: meta.RegularMarketPrice, Change: change}, nil
}
