package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Frankfurter 第三方法币汇率聚合源, 链条末位
type Frankfurter struct {
	baseURL string
	cli     *http.Client
}

func NewFrankfurter(baseURL string) *Frankfurter {
	if baseURL == "" {
		baseURL = "https://api.frankfurter.app"
	}
	return &Frankfurter{
		baseURL: baseURL,
		cli:     newHTTPClient(),
	}
}

func (f *Frankfurter) Name() string {
	return "frankfurter"
}

func (f *Frankfurter) Rate(ctx context.Context, base, quote string, date time.Time) (float64, error) {
	endpoint := f.baseURL + "/latest"
	if !date.IsZero() {
		endpoint = f.baseURL + "/" + date.Format("2006-01-02")
	}
	params := url.Values{}
	params.Set("from", base)
	params.Set("to", quote)

	var resp ratesResponse
	if err := getJSON(ctx, f.cli, endpoint+"?"+params.Encode(), &resp); err != nil {
		return 0, err
	}
	val, ok := resp.Rates[quote]
	if !ok {
		return 0, fmt.Errorf("frankfurter: no rate for %s/%s", base, quote)
	}
	return val, nil
}
