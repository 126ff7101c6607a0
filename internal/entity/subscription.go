package entity

import (
	"time"
)

// Subscription 价格阈值订阅
type Subscription struct {
	Id        int64  `gorm:"primaryKey;autoIncrement"`
	OwnerId   int64  `gorm:"index"`
	Base      string
	Quote     string
	AssetType string  // fiat, cc, mixed (冗余存储, 便于审计)
	Operator  string  // '>', '<', '>=', '<='
	Threshold float64
	IsActive  bool  `gorm:"index;default:true"`
	LastEval  *bool // nil: 从未评估过
	CreatedAt time.Time
}

const (
	AssetTypeFiat  = "fiat"
	AssetTypeCC    = "cc"
	AssetTypeMixed = "mixed"
)

const (
	OpGt  = ">"
	OpLt  = "<"
	OpGte = ">="
	OpLte = "<="
)
