package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction income or expense record. Amount is always a non-negative
// magnitude; the sign comes from the type.
type Transaction struct {
	ID            string          `json:"id" gorm:"primaryKey;size:36"`
	UserID        uint            `json:"user_id" gorm:"index;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	TypeID        uint            `json:"type_id" gorm:"index;not null"`
	CategoryID    uint            `json:"category_id" gorm:"index;not null"`
	Date          time.Time       `json:"date" gorm:"type:date;index;not null"`
	Description   string          `json:"description" gorm:"size:255"`
	PaymentMethod string          `json:"payment_method" gorm:"size:50"`
	CreatedAt     time.Time       `json:"created_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate assigns an opaque id.
func (t *Transaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Budget spending allowance for one category of one user
type Budget struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     uint            `json:"user_id" gorm:"index;not null"`
	CategoryID uint            `json:"category_id" gorm:"index;not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Period     string          `json:"period" gorm:"size:20;not null;default:monthly"`
	IsActive   bool            `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `json:"-" gorm:"index"`
}

func (Budget) TableName() string {
	return "budgets"
}
