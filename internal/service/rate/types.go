package rate

import (
	"context"
	"errors"
	"time"
)

// Quote 当前价格与24小时涨跌幅(百分点)
type Quote struct {
	Price  float64
	Change *float64 // nil: 数据源未提供24h涨跌
}

var (
	ErrUnknownSymbol   = errors.New("unknown crypto symbol")
	ErrNoRateAvailable = errors.New("no rate available")
)

// FiatProvider 法币汇率数据源, date 为零值时返回最新牌价
type FiatProvider interface {
	Name() string
	Rate(ctx context.Context, base, quote string, date time.Time) (float64, error)
}

// CryptoProvider 加密货币现货行情数据源
type CryptoProvider interface {
	Name() string
	Quote(ctx context.Context, base, quote string) (Quote, error)
}

type Service interface {
	Resolve(ctx context.Context, base, quote string) (Quote, error)
}
