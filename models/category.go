package models

import (
	"time"

	"fintrack/stats"
)

// TransactionType top-level classification, seeded once from the fixed taxonomy
type TransactionType struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Icon      string    `json:"icon" gorm:"size:50"`
	Color     string    `json:"color" gorm:"size:20;default:#64748b"`
	Sort      int       `json:"sort" gorm:"default:0;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (TransactionType) TableName() string {
	return "transaction_types"
}

// IsExpense reports whether transactions of this type count as spending.
func (t TransactionType) IsExpense() bool {
	return stats.IsExpense(t.Name)
}

// Category sub-classification within a type; name is unique per type
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TypeID    uint      `json:"type_id" gorm:"not null;uniqueIndex:idx_category_type_name"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex:idx_category_type_name"`
	Icon      string    `json:"icon" gorm:"size:50"`
	Color     string    `json:"color" gorm:"size:20;default:#64748b"`
	Sort      int       `json:"sort" gorm:"default:0;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// DefaultType seed row for the type taxonomy
type DefaultType struct {
	Name       string
	Icon       string
	Color      string
	Categories []DefaultCategory
}

// DefaultCategory seed row for a category
type DefaultCategory struct {
	Name  string
	Icon  string
	Color string
}

// GetDefaultTaxonomy returns the types and categories seeded into an empty database.
func GetDefaultTaxonomy() []DefaultType {
	return []DefaultType{
		{Name: stats.TypeRevenue, Icon: "wallet", Color: "#10b981", Categories: []DefaultCategory{
			{"Salaire", "briefcase", "#10b981"},
			{"Prime", "gift", "#3b82f6"},
			{"Freelance", "laptop", "#a855f7"},
			{"Autre revenu", "plus", "#64748b"},
		}},
		{Name: stats.TypeFixedExpense, Icon: "home", Color: "#ef4444", Categories: []DefaultCategory{
			{"Loyer", "home", "#ef4444"},
			{"Assurance", "shield", "#f59e0b"},
			{"Abonnements", "repeat", "#ec4899"},
			{"Energie", "bolt", "#14b8a6"},
		}},
		{Name: stats.TypeVariableExpense, Icon: "cart", Color: "#f59e0b", Categories: []DefaultCategory{
			{"Alimentation", "cart", "#ef4444"},
			{"Transport", "car", "#3b82f6"},
			{"Loisirs", "music", "#ec4899"},
			{"Sante", "heart", "#10b981"},
			{"Shopping", "bag", "#a855f7"},
		}},
		{Name: stats.TypeSavings, Icon: "piggy-bank", Color: "#3b82f6", Categories: []DefaultCategory{
			{"Livret A", "piggy-bank", "#3b82f6"},
			{"Epargne projet", "target", "#14b8a6"},
		}},
		{Name: stats.TypeInvestment, Icon: "chart", Color: "#a855f7", Categories: []DefaultCategory{
			{"Bourse", "chart", "#a855f7"},
			{"Crypto", "coin", "#f59e0b"},
		}},
		{Name: stats.TypeDebt, Icon: "credit-card", Color: "#64748b", Categories: []DefaultCategory{
			{"Credit conso", "credit-card", "#64748b"},
		}},
		{Name: stats.TypeDebtRepayment, Icon: "check", Color: "#14b8a6", Categories: []DefaultCategory{
			{"Remboursement pret", "check", "#14b8a6"},
		}},
	}
}
