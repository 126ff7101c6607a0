package provider

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// CBR 俄罗斯央行每日牌价(XML), 所有汇率以RUB为枢轴
type CBR struct {
	baseURL string
	cli     *http.Client
}

func NewCBR(baseURL string) *CBR {
	if baseURL == "" {
		baseURL = "https://www.cbr.ru/scripts/XML_daily.asp"
	}
	return &CBR{
		baseURL: baseURL,
		cli:     newHTTPClient(),
	}
}

func (c *CBR) Name() string {
	return "cbr"
}

type cbrValCurs struct {
	Valutes []cbrValute `xml:"Valute"`
}

type cbrValute struct {
	CharCode string `xml:"CharCode"`
	Nominal  int    `xml:"Nominal"`
	Value    string `xml:"Value"`
}

func (c *CBR) Rate(ctx context.Context, base, quote string, date time.Time) (float64, error) {
	url := c.baseURL
	if !date.IsZero() {
		url = fmt.Sprintf("%s?date_req=%s", c.baseURL, date.Format("02/01/2006"))
	}

	body, err := getBody(ctx, c.cli, url)
	if err != nil {
		return 0, err
	}

	// ЦБ牌价XML声明为 windows-1251
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "windows-1251") {
			return charmap.Windows1251.NewDecoder().Reader(input), nil
		}
		return input, nil
	}
	var curs cbrValCurs
	if err := dec.Decode(&curs); err != nil {
		return 0, err
	}

	// 牌价含义: 1 Nominal 单位外币 = Value RUB
	toRUB := func(code string) (float64, bool) {
		for _, v := range curs.Valutes {
			if v.CharCode != code {
				continue
			}
			val, err := strconv.ParseFloat(strings.ReplaceAll(v.Value, ",", "."), 64)
			if err != nil || v.Nominal == 0 {
				return 0, false
			}
			return val / float64(v.Nominal), true
		}
		return 0, false
	}

	switch {
	case quote == "RUB":
		if rate, ok := toRUB(base); ok {
			return rate, nil
		}
	case base == "RUB":
		if rate, ok := toRUB(quote); ok {
			if rate == 0 {
				return math.Inf(1), nil
			}
			return 1 / rate, nil
		}
	default:
		baseRUB, okB := toRUB(base)
		quoteRUB, okQ := toRUB(quote)
		if okB && okQ && quoteRUB != 0 {
			return baseRUB / quoteRUB, nil
		}
	}
	return 0, fmt.Errorf("cbr: no fixing for %s/%s", base, quote)
}
