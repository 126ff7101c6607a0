package ioc

import (
	"net/http"

	"github.com/adshao/go-binance/v2"
	"github.com/anatoliyserebry/cryptowatchlive/internal/service/rate/provider"
	"github.com/spf13/viper"
)

// InitBinanceCli 只读行情无需凭据, 留空即可.
// SDK默认用不带超时的 http.DefaultClient, 这里显式封顶.
func InitBinanceCli() *binance.Client {
	type Config struct {
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("cex.binance", &cfg); err != nil {
		panic(err)
	}

	cli := binance.NewClient(cfg.ApiKey, cfg.ApiSecret)
	cli.HTTPClient = &http.Client{Timeout: provider.DefaultTimeout}
	return cli
}
