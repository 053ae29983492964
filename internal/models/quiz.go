package models

import "time"

type QuizMode string

const (
	ModeBinary         QuizMode = "Binary"
	ModeMultipleChoice QuizMode = "MultipleChoice"
)

// ParseQuizMode normalizes a mode string to a known QuizMode.
// Unrecognized values fall back to Binary; the engine itself only
// ever sees the closed enum.
func ParseQuizMode(s string) QuizMode {
	if QuizMode(s) == ModeMultipleChoice {
		return ModeMultipleChoice
	}
	return ModeBinary
}

// ShownQuote marks that a quote has been presented to a user. The
// composite unique index is the authoritative guard against duplicate
// pairs under concurrent submissions.
type ShownQuote struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	UserID  uint `json:"user_id" gorm:"not null;uniqueIndex:idx_shown_quotes_user_quote"`
	QuoteID uint `json:"quote_id" gorm:"not null;uniqueIndex:idx_shown_quotes_user_quote"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Quote Quote `json:"-" gorm:"foreignKey:QuoteID"`
}

func (ShownQuote) TableName() string {
	return "shown_quotes"
}

// GameHistory is the append-only log of answered questions. Rows are
// never updated or deleted.
type GameHistory struct {
	ID             uint     `json:"id" gorm:"primaryKey"`
	UserID         uint     `json:"user_id" gorm:"not null;index"`
	QuoteID        uint     `json:"quote_id" gorm:"not null;index"`
	QuizMode       QuizMode `json:"quiz_mode" gorm:"not null;size:20"`
	SelectedAnswer string   `json:"selected_answer" gorm:"not null;size:100"`
	IsCorrect      bool     `json:"is_correct" gorm:"not null"`
	AnsweredAt     time.Time `json:"answered_at" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Quote Quote `json:"-" gorm:"foreignKey:QuoteID"`
}

func (GameHistory) TableName() string {
	return "game_histories"
}
