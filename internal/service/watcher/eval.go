package watcher

import (
	"github.com/anatoliyserebry/cryptowatchlive/internal/entity"
)

var ops = map[string]func(price, threshold float64) bool{
	entity.OpGt:  func(p, t float64) bool { return p > t },
	entity.OpLt:  func(p, t float64) bool { return p < t },
	entity.OpGte: func(p, t float64) bool { return p >= t },
	entity.OpLte: func(p, t float64) bool { return p <= t },
}

// Evaluate 运算符在创建订阅时已校验, 未知运算符属数据损坏
func Evaluate(operator string, price, threshold float64) bool {
	return ops[operator](price, threshold)
}

// ValidOperator 扫描前防御损坏行, 未知运算符直接跳过
func ValidOperator(operator string) bool {
	_, ok := ops[operator]
	return ok
}
