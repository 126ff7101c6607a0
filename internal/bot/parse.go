package bot

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/anatoliyserebry/cryptowatchlive/internal/service/rate"
)

// watch <BASE> <op> <threshold> <QUOTE?>, 小数点接受 '.' 和 ','
var watchRe = regexp.MustCompile(
	`^(?P<base>[A-Za-z]{2,10})\s*(?P<op>>=|<=|>|<)\s*(?P<thresh>[0-9]+(?:[.,][0-9]+)?)\s*(?P<quote>[A-Za-z]{2,10})?$`,
)

type WatchArgs struct {
	Base      string
	Quote     string
	Operator  string
	Threshold float64
}

// ParseWatchArgs 解析watch命令体.
// quote 缺省: 法币base默认RUB, 其余默认USD.
func ParseWatchArgs(body string) (WatchArgs, bool) {
	m := watchRe.FindStringSubmatch(strings.TrimSpace(body))
	if m == nil {
		return WatchArgs{}, false
	}

	base := strings.ToUpper(m[watchRe.SubexpIndex("base")])
	op := m[watchRe.SubexpIndex("op")]
	threshRaw := strings.ReplaceAll(m[watchRe.SubexpIndex("thresh")], ",", ".")
	threshold, err := strconv.ParseFloat(threshRaw, 64)
	if err != nil {
		return WatchArgs{}, false
	}

	quote := strings.ToUpper(m[watchRe.SubexpIndex("quote")])
	if quote == "" {
		if rate.IsFiat(base) {
			quote = "RUB"
		} else {
			quote = "USD"
		}
	}
	return WatchArgs{
		Base:      base,
		Quote:     quote,
		Operator:  op,
		Threshold: threshold,
	}, true
}
