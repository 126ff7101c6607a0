package ioc

import (
	"fmt"

	binancesdk "github.com/adshao/go-binance/v2"
	"github.com/anatoliyserebry/cryptowatchlive/internal/service/rate"
	"github.com/anatoliyserebry/cryptowatchlive/internal/service/rate/provider"
	"github.com/spf13/viper"
)

// InitResolver 按配置的优先级组装两条数据源链.
// endpoints 仅覆盖基础URL, 凭据走 cex.* 配置.
func InitResolver(binanceCli *binancesdk.Client) *rate.Resolver {
	type Config struct {
		FiatChain   []string          `mapstructure:"fiat_chain"`
		CryptoChain []string          `mapstructure:"crypto_chain"`
		Endpoints   map[string]string `mapstructure:"endpoints"`
	}

	cfg := Config{
		FiatChain:   []string{"cbr", "cbr-daily", "frankfurter"},
		CryptoChain: []string{"binance", "coingecko", "yahoo", "mexc"},
	}
	if err := viper.UnmarshalKey("rate", &cfg); err != nil {
		panic(err)
	}

	cache := provider.NewSymbolCache()

	fiatProviders := map[string]rate.FiatProvider{
		"cbr":         provider.NewCBR(cfg.Endpoints["cbr"]),
		"cbr-daily":   provider.NewCBRDaily(cfg.Endpoints["cbr-daily"]),
		"frankfurter": provider.NewFrankfurter(cfg.Endpoints["frankfurter"]),
	}
	cryptoProviders := map[string]rate.CryptoProvider{
		"binance":   provider.NewBinance(binanceCli),
		"coingecko": provider.NewCoinGecko(cfg.Endpoints["coingecko"], cache),
		"yahoo":     provider.NewYahoo(cfg.Endpoints["yahoo"]),
		"mexc":      provider.NewMEXC(cfg.Endpoints["mexc"]),
	}

	var fiat []rate.FiatProvider
	for _, name := range cfg.FiatChain {
		p, ok := fiatProviders[name]
		if !ok {
			panic(fmt.Errorf("unknown fiat provider in rate.fiat_chain: %s", name))
		}
		fiat = append(fiat, p)
	}
	var crypto []rate.CryptoProvider
	for _, name := range cfg.CryptoChain {
		p, ok := cryptoProviders[name]
		if !ok {
			panic(fmt.Errorf("unknown crypto provider in rate.crypto_chain: %s", name))
		}
		crypto = append(crypto, p)
	}

	return rate.NewResolver(fiat, crypto)
}
