package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/flatrock-dev/quotequiz-service/internal/models"
)

// EventType represents different types of quiz events
type EventType string

const (
	EventAnswerSubmitted EventType = "quiz.answer_submitted"
)

// QuizEvent is the envelope for all events published by the service.
type QuizEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Data      interface{} `json:"data"`
}

// AnswerSubmittedEvent is emitted once per graded answer, after the
// history append has committed.
type AnswerSubmittedEvent struct {
	UserID     uint            `json:"user_id"`
	QuoteID    uint            `json:"quote_id"`
	QuizMode   models.QuizMode `json:"quiz_mode"`
	IsCorrect  bool            `json:"is_correct"`
	AnsweredAt time.Time       `json:"answered_at"`
}

// NewAnswerSubmittedEvent wraps a just-committed history row in the
// event envelope.
func NewAnswerSubmittedEvent(history *models.GameHistory) *QuizEvent {
	return &QuizEvent{
		ID:        watermill.NewUUID(),
		Type:      EventAnswerSubmitted,
		Timestamp: time.Now().UTC(),
		Source:    "quotequiz-service",
		Data: AnswerSubmittedEvent{
			UserID:     history.UserID,
			QuoteID:    history.QuoteID,
			QuizMode:   history.QuizMode,
			IsCorrect:  history.IsCorrect,
			AnsweredAt: history.AnsweredAt,
		},
	}
}
