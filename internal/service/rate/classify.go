package rate

import (
	"strings"

	"github.com/anatoliyserebry/cryptowatchlive/internal/entity"
)

// 识别的法币ISO代码, 其余一律按加密资产处理
var fiatCodes = map[string]struct{}{
	"USD": {}, "EUR": {}, "RUB": {}, "UAH": {}, "KZT": {},
	"GBP": {}, "JPY": {}, "CNY": {}, "TRY": {}, "CHF": {},
	"PLN": {}, "CZK": {}, "SEK": {}, "NOK": {}, "DKK": {},
	"AUD": {}, "CAD": {}, "INR": {}, "BRL": {}, "ZAR": {},
}

func IsFiat(code string) bool {
	_, ok := fiatCodes[strings.ToUpper(code)]
	return ok
}

// Classify 判定交易对类型: 双法币 fiat, 双加密 cc, 混合 mixed
func Classify(base, quote string) string {
	bf, qf := IsFiat(base), IsFiat(quote)
	if bf && qf {
		return entity.AssetTypeFiat
	}
	if !bf && !qf {
		return entity.AssetTypeCC
	}
	return entity.AssetTypeMixed
}
