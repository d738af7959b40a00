package migrations

import (
	"github.com/Rakhulsr/go-edumarket/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}, &models.Sale{}, &models.Review{}, &models.Favorite{})
}
