package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/anatoliyserebry/cryptowatchlive/internal/service/rate"
)

// SymbolCache symbol -> CoinGecko 内部id 的映射, 按市值降序加载,
// 重复symbol归属市值最高的资产. 进程内懒加载, 可显式失效重建.
type SymbolCache struct {
	mu    sync.Mutex
	ids   map[string]string
	ready bool
}

func NewSymbolCache() *SymbolCache {
	return &SymbolCache{
		ids: make(map[string]string),
	}
}

func (c *SymbolCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = make(map[string]string)
	c.ready = false
}

func (c *SymbolCache) lookup(ctx context.Context, load func(ctx context.Context) (map[string]string, error), symbol string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		ids, err := load(ctx)
		if err != nil {
			return "", err
		}
		c.ids = ids
		c.ready = true
	}
	id, ok := c.ids[strings.ToUpper(symbol)]
	if !ok {
		return "", fmt.Errorf("%w: %s", rate.ErrUnknownSymbol, symbol)
	}
	return id, nil
}

// CoinGecko simple-price 数据源, 一次调用返回价格与原生24h涨跌
type CoinGecko struct {
	baseURL string
	cli     *http.Client
	cache   *SymbolCache
}

func NewCoinGecko(baseURL string, cache *SymbolCache) *CoinGecko {
	if baseURL == "" {
		baseURL = "https://api.coingecko.com/api/v3"
	}
	return &CoinGecko{
		baseURL: baseURL,
		cli:     newHTTPClient(),
		cache:   cache,
	}
}

func (g *CoinGecko) Name() string {
	return "coingecko"
}

type coinListEntry struct {
	Id     string `json:"id"`
	Symbol string `json:"symbol"`
}

// loadSymbolMap 先取 markets(市值前250), 失败退回全量 coins/list
func (g *CoinGecko) loadSymbolMap(ctx context.Context) (map[string]string, error) {
	mapping := make(map[string]string)

	marketsURL := g.baseURL + "/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=250&page=1"
	var coins []coinListEntry
	if err := getJSON(ctx, g.cli, marketsURL, &coins); err == nil && len(coins) > 0 {
		for _, coin := range coins {
			sym := strings.ToUpper(coin.Symbol)
			if sym == "" || coin.Id == "" {
				continue
			}
			if _, exists := mapping[sym]; !exists {
				mapping[sym] = coin.Id
			}
		}
		return mapping, nil
	}

	listURL := g.baseURL + "/coins/list?include_platform=false"
	if err := getJSON(ctx, g.cli, listURL, &coins); err != nil {
		return nil, err
	}
	for _, coin := range coins {
		sym := strings.ToUpper(coin.Symbol)
		if sym == "" || coin.Id == "" {
			continue
		}
		if _, exists := mapping[sym]; !exists {
			mapping[sym] = coin.Id
		}
	}
	return mapping, nil
}

func (g *CoinGecko) Quote(ctx context.Context, base, quote string) (rate.Quote, error) {
	id, err := g.cache.lookup(ctx, g.loadSymbolMap, base)
	if err != nil {
		return rate.Quote{}, err
	}

	vs := strings.ToLower(quote)
	params := url.Values{}
	params.Set("ids", id)
	params.Set("vs_currencies", vs)
	params.Set("include_24hr_change", "true")

	var resp map[string]map[string]*float64
	if err := getJSON(ctx, g.cli, g.baseURL+"/simple/price?"+params.Encode(), &resp); err != nil {
		return rate.Quote{}, err
	}
	asset, ok := resp[id]
	if !ok {
		return rate.Quote{}, fmt.Errorf("coingecko: asset %s not found", id)
	}
	price := asset[vs]
	if price == nil {
		return rate.Quote{}, fmt.Errorf("coingecko: no %s price for %s", vs, id)
	}
	return rate.Quote{
		Price:  *price,
		Change: asset[vs+"_24h_change"],
	}, nil
}
