package repo

import (
	"github.com/anatoliyserebry/cryptowatchlive/internal/entity"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&entity.User{}, &entity.Subscription{})
}
