package rate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
)

// numeraire 无直接报价时的中间计价资产
const numeraire = "USD"

type Resolver struct {
	fiat   []FiatProvider
	crypto []CryptoProvider
}

func NewResolver(fiat []FiatProvider, crypto []CryptoProvider) *Resolver {
	return &Resolver{
		fiat:   fiat,
		crypto: crypto,
	}
}

func (r *Resolver) Resolve(ctx context.Context, base, quote string) (Quote, error) {
	b, q := strings.ToUpper(base), strings.ToUpper(quote)
	bf, qf := IsFiat(b), IsFiat(q)

	switch {
	case bf && qf:
		return r.resolveFiat(ctx, b, q)
	case !bf && qf:
		return r.resolveCrypto(ctx, b, q)
	case bf && !qf:
		return r.resolveInverted(ctx, b, q)
	default:
		return r.resolveCross(ctx, b, q)
	}
}

// resolveFiat 同一条链取今日与昨日牌价, 合成24h涨跌
func (r *Resolver) resolveFiat(ctx context.Context, base, quote string) (Quote, error) {
	now, err := r.fiatRate(ctx, base, quote, time.Time{})
	if err != nil {
		return Quote{}, err
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	prev, err := r.fiatRate(ctx, base, quote, yesterday)
	if err != nil {
		slog.Warn("no previous-day fiat rate, change unavailable",
			"base", base, "quote", quote, "error", err)
		return Quote{Price: now}, nil
	}

	if prev == 0 {
		return Quote{Price: now}, nil
	}
	change := (now - prev) / prev * 100
	return Quote{Price: now, Change: &change}, nil
}

func (r *Resolver) fiatRate(ctx context.Context, base, quote string, date time.Time) (float64, error) {
	var lastErr error
	for _, p := range r.fiat {
		val, err := p.Rate(ctx, base, quote, date)
		if err != nil {
			slog.Warn("fiat provider failed, trying next",
				"provider", p.Name(), "base", base, "quote", quote, "error", err)
			lastErr = err
			continue
		}
		slog.Debug("fiat rate resolved", "provider", p.Name(), "base", base, "quote", quote, "rate", val)
		return val, nil
	}
	return 0, fmt.Errorf("%w: %s/%s: %v", ErrNoRateAvailable, base, quote, lastErr)
}

func (r *Resolver) resolveCrypto(ctx context.Context, base, quote string) (Quote, error) {
	var (
		lastErr    error
		unknownSym bool
	)
	for _, p := range r.crypto {
		quoteRes, err := p.Quote(ctx, base, quote)
		if err != nil {
			if errors.Is(err, ErrUnknownSymbol) {
				unknownSym = true
			}
			slog.Warn("crypto provider failed, trying next",
				"provider", p.Name(), "base", base, "quote", quote, "error", err)
			lastErr = err
			continue
		}
		slog.Debug("crypto quote resolved", "provider", p.Name(), "base", base, "quote", quote, "price", quoteRes.Price)
		return quoteRes, nil
	}
	if unknownSym {
		return Quote{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, base)
	}
	return Quote{}, fmt.Errorf("%w: %s/%s: %v", ErrNoRateAvailable, base, quote, lastErr)
}

// resolveInverted 法币/加密 = 1 / (加密/法币), 涨跌取反
func (r *Resolver) resolveInverted(ctx context.Context, base, quote string) (Quote, error) {
	direct, err := r.resolveCrypto(ctx, quote, base)
	if err != nil {
		return Quote{}, err
	}
	price := math.Inf(1)
	if direct.Price != 0 {
		price = 1 / direct.Price
	}
	var change *float64
	if direct.Change != nil {
		neg := -*direct.Change
		change = &neg
	}
	return Quote{Price: price, Change: change}, nil
}

// resolveCross 加密/加密: 先试直连交易对, 再经USD推导交叉汇率
func (r *Resolver) resolveCross(ctx context.Context, base, quote string) (Quote, error) {
	direct, err := r.resolveCrypto(ctx, base, quote)
	if err == nil {
		return direct, nil
	}
	slog.Info("no direct pair, deriving cross rate via numeraire",
		"base", base, "quote", quote, "error", err)

	baseLeg, err := r.resolveCrypto(ctx, base, numeraire)
	if err != nil {
		return Quote{}, err
	}
	quoteLeg, err := r.resolveCrypto(ctx, quote, numeraire)
	if err != nil {
		return Quote{}, err
	}

	price := math.Inf(1)
	if quoteLeg.Price != 0 {
		price = baseLeg.Price / quoteLeg.Price
	}
	var change *float64
	if baseLeg.Change != nil && quoteLeg.Change != nil {
		diff := *baseLeg.Change - *quoteLeg.Change
		change = &diff
	}
	return Quote{Price: price, Change: change}, nil
}
