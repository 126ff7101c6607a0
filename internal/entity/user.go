package entity

import (
	"time"
)

type User struct {
	Id        int64 `gorm:"primaryKey"`
	OwnerId   int64 `gorm:"uniqueIndex"`
	IsMuted   bool  `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
