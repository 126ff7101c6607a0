package ioc

import (
	"github.com/anatoliyserebry/cryptowatchlive/internal/service/notification"
	"github.com/spf13/viper"
)

// InitNotifier 配置了webhook则走外部投递通道, 否则落到控制台
func InitNotifier() notification.Notifier {
	type Config struct {
		WebhookURL string `mapstructure:"webhook_url"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("notify", &cfg); err != nil {
		panic(err)
	}

	if cfg.WebhookURL != "" {
		return notification.NewWebhookNotifier(cfg.WebhookURL)
	}
	return notification.NewConsoleNotifier()
}
