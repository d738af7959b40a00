package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User stats are derived from sales, products and reviews; see
// UserRepository.RefreshSellerStats.
type User struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Email         string          `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Role          string          `gorm:"size:20;default:'buyer';not null" json:"role"`
	IsVerified    bool            `gorm:"default:false" json:"is_verified"`
	TotalSales    int             `gorm:"not null;default:0" json:"total_sales"`
	TotalRevenue  decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0" json:"total_revenue"`
	TotalProducts int             `gorm:"not null;default:0" json:"total_products"`
	AverageRating float64         `gorm:"type:decimal(3,2);not null;default:0" json:"average_rating"`
	RatingCount   int             `gorm:"not null;default:0" json:"rating_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = RoleBuyer
	}
	return
}
