package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	SaleStatusPending   = "pending"
	SaleStatusCompleted = "completed"
	SaleStatusCancelled = "cancelled"
	SaleStatusRefunded  = "refunded"
)

const (
	PaymentMethodCreditCard = "credit_card"
	PaymentMethodPix        = "pix"
)

// Checkout stores sales as completed. Pending sales are reserved for an external payment
// flow that records the sale before the provider confirms it.
var saleTransitions = map[string][]string{
	SaleStatusPending:   {SaleStatusCompleted, SaleStatusCancelled},
	SaleStatusCompleted: {SaleStatusRefunded},
}

// Amount is the product price captured when the sale was created.
type Sale struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID     string          `gorm:"size:36;not null;index" json:"product_id"`
	Product       *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	BuyerID       string          `gorm:"size:36;not null;index" json:"buyer_id"`
	Buyer         *User           `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	SellerID      string          `gorm:"size:36;not null;index" json:"seller_id"`
	Seller        *User           `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"amount"`
	Status        string          `gorm:"size:20;not null;index" json:"status"`
	PaymentMethod string          `gorm:"size:50" json:"payment_method"`
	TransactionID string          `gorm:"size:64;not null;uniqueIndex" json:"transaction_id"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.TransactionID == "" {
		s.TransactionID = NewTransactionID()
	}
	return
}

func NewTransactionID() string {
	return "txn_" + uuid.New().String()
}

// CanTransition reports whether a sale may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range saleTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
