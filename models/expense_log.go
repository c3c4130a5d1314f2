// File: /models/expense_log.go
package models

import (
	"time"
)

type ExpenseLog struct {
	ID        string          `json:"id" gorm:"primaryKey;size:191"`
	UserID    string          `json:"user_id" gorm:"not null;index;size:191"`
	Date      string          `json:"date" gorm:"not null;index;size:10"` // YYYY-MM-DD
	Category  ExpenseCategory `json:"category" gorm:"not null;size:50"`
	Cost      float64         `json:"cost" gorm:"not null"`
	Note      string          `json:"note" gorm:"size:500"`
	CreatedAt time.Time       `json:"created_at"`
}
