package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// CBRDaily cbr-xml-daily.ru 的JSON镜像, ЦБ牌价的二级数据源
type CBRDaily struct {
	baseURL string
	cli     *http.Client
}

func NewCBRDaily(baseURL string) *CBRDaily {
	if baseURL == "" {
		baseURL = "https://www.cbr-xml-daily.ru"
	}
	return &CBRDaily{
		baseURL: baseURL,
		cli:     newHTTPClient(),
	}
}

func (c *CBRDaily) Name() string {
	return "cbr-daily"
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func (c *CBRDaily) Rate(ctx context.Context, base, quote string, date time.Time) (float64, error) {
	endpoint := c.baseURL + "/latest.js"
	if !date.IsZero() {
		endpoint = c.baseURL + "/" + date.Format("2006-01-02")
	}
	params := url.Values{}
	params.Set("base", base)
	params.Set("symbols", quote)

	var resp ratesResponse
	if err := getJSON(ctx, c.cli, endpoint+"?"+params.Encode(), &resp); err != nil {
		return 0, err
	}
	val, ok := resp.Rates[quote]
	if !ok {
		return 0, fmt.Errorf("cbr-daily: no rate for %s/%s", base, quote)
	}
	return val, nil
}
