package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ProductStatusActive   = "active"
	ProductStatusDraft    = "draft"
	ProductStatusInactive = "inactive"
)

type Product struct {
	ID            string                      `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	AuthorID      string                      `gorm:"size:36;not null;index" json:"author_id"`
	Author        *User                       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title         string                      `gorm:"size:255;not null" json:"title"`
	Description   string                      `gorm:"type:text" json:"description"`
	Price         decimal.Decimal             `gorm:"type:decimal(16,2);not null" json:"price"`
	Category      string                      `gorm:"size:100;index" json:"category"`
	Subject       string                      `gorm:"size:100;index" json:"subject"`
	GradeLevel    datatypes.JSONSlice[string] `json:"grade_level"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	FileURL       string                      `gorm:"type:text" json:"file_url,omitempty"`
	ThumbnailURL  string                      `gorm:"type:text" json:"thumbnail_url,omitempty"`
	Status        string                      `gorm:"size:20;not null;index" json:"status"`
	DownloadCount int                         `gorm:"not null;default:0" json:"download_count"`
	Rating        float64                     `gorm:"type:decimal(3,2);not null;default:0" json:"rating"`
	ReviewCount   int                         `gorm:"not null;default:0" json:"review_count"`
	CreatedAt     time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = ProductStatusDraft
	}
	return
}

// AuthorName is empty when the author was not loaded.
func (p *Product) AuthorName() string {
	if p.Author == nil {
		return ""
	}
	return p.Author.Name
}

func ValidProductStatus(status string) bool {
	switch status {
	case ProductStatusActive, ProductStatusDraft, ProductStatusInactive:
		return true
	}
	return false
}
