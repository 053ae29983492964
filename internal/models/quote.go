package models

import "time"

type Quote struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	QuoteText       string `json:"quote_text" gorm:"not null;type:text" validate:"required,max=1000"`
	AuthorName      string `json:"author_name" gorm:"not null;size:100;index" validate:"required,max=100"`
	CreatedByUserID uint   `json:"created_by_user_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CreatedBy User `json:"-" gorm:"foreignKey:CreatedByUserID"`
}

func (Quote) TableName() string {
	return "quotes"
}
