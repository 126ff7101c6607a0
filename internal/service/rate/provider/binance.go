package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/anatoliyserebry/cryptowatchlive/internal/service/rate"
	"github.com/anatoliyserebry/cryptowatchlive/pkg/decimalx"
)

// 币安现货不挂USD交易对, 用稳定币代替
var binanceQuoteAlias = map[string]string{
	"USD": "USDT",
}

// Binance 币安现货行情, 加密链条首位
type Binance struct {
	cli     *binance.Client
	timeout time.Duration
}

func NewBinance(cli *binance.Client) *Binance {
	return &Binance{
		cli:     cli,
		timeout: DefaultTimeout,
	}
}

func (b *Binance) Name() string {
	return "binance"
}

func (b *Binance) symbol(base, quote string) string {
	if alias, ok := binanceQuoteAlias[quote]; ok {
		quote = alias
	}
	return fmt.Sprintf("%s%s", strings.ToUpper(base), strings.ToUpper(quote))
}

func (b *Binance) Quote(ctx context.Context, base, quote string) (rate.Quote, error) {
	// SDK默认客户端不带超时, 这里自己封顶, 单个数据源挂起不能拖住整轮
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	sym := b.symbol(base, quote)

	prices, err := b.cli.NewListPricesService().Symbol(sym).Do(ctx)
	if err != nil {
		return rate.Quote{}, err
	}
	if len(prices) == 0 {
		return rate.Quote{}, fmt.Errorf("binance: symbol %s not found", sym)
	}
	price, err := decimalx.Float64FromString(prices[0].Price)
	if err != nil {
		return rate.Quote{}, err
	}

	// 24h统计单独一次调用, 拿不到不算失败
	var change *float64
	stats, err := b.cli.NewListPriceChangeStatsService().Symbol(sym).Do(ctx)
	if err != nil || len(stats) == 0 {
		slog.Warn("binance 24h stats unavailable", "symbol", sym, "error", err)
	} else if ch, err := decimalx.Float64FromString(stats[0].PriceChangePercent); err == nil {
		change = &ch
	}

	return rate.Quote{Price: price, Change: change}, nil
}
