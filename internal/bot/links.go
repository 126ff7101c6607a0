package bot

import (
	"fmt"
	"strings"

	"github.com/anatoliyserebry/cryptowatchlive/internal/service/rate"
)

const (
	binanceTradeURL = "https://www.binance.com/en/trade/%s_%s?type=spot"
	coinbaseURL     = "https://www.coinbase.com/advanced-trade/%s-%s"
	krakenURL       = "https://pro.kraken.com/app/trade/%s-%s"
	xeConverterURL  = "https://www.xe.com/currencyconverter/convert/?Amount=1&From=%s&To=%s"
	wiseURL         = "https://wise.com/transfer/%s-to-%s"
)

var binanceLinkQuoteAlias = map[string]string{
	"USD": "USDT",
}

type Link struct {
	Title string
	URL   string
}

// PairLinks 交易所/换汇工具深链, 附在报价与通知后面
func PairLinks(base, quote string) []Link {
	b, q := strings.ToUpper(base), strings.ToUpper(quote)
	var links []Link

	if !rate.IsFiat(b) || !rate.IsFiat(q) {
		bq := q
		if alias, ok := binanceLinkQuoteAlias[q]; ok {
			bq = alias
		}
		links = append(links,
			Link{Title: "Binance", URL: fmt.Sprintf(binanceTradeURL, b, bq)},
			Link{Title: "Coinbase", URL: fmt.Sprintf(coinbaseURL, b, q)},
			Link{Title: "Kraken", URL: fmt.Sprintf(krakenURL, b, q)},
		)
	}
	if rate.IsFiat(b) || rate.IsFiat(q) {
		links = append(links,
			Link{Title: "XE Converter", URL: fmt.Sprintf(xeConverterURL, b, q)},
			Link{Title: "Wise", URL: fmt.Sprintf(wiseURL, strings.ToLower(b), strings.ToLower(q))},
		)
	}
	return links
}
