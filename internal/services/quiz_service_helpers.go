package services

import (
	"strings"

	"github.com/flatrock-dev/quotequiz-service/internal/models"
)

// formatBinaryQuestion shows either the true author or a random other
// author, 50/50. When no other author exists the true author is always
// shown; that edge policy is deliberate. Caller holds s.mu.
func (s *quizService) formatBinaryQuestion(quote *models.Quote, allQuotes []*models.Quote) *QuizQuestion {
	otherAuthors := distinctOtherAuthors(allQuotes, quote, true)

	showCorrect := len(otherAuthors) == 0 || s.rng.Intn(2) == 0

	displayed := quote.AuthorName
	if !showCorrect {
		displayed = otherAuthors[s.rng.Intn(len(otherAuthors))]
	}

	return &QuizQuestion{
		QuoteID:         quote.ID,
		QuoteText:       quote.QuoteText,
		DisplayedAuthor: displayed,
		Options:         []string{},
		QuizMode:        models.ModeBinary,
	}
}

// formatMultipleChoiceQuestion builds the 3-option shape: the true
// author plus two distinct wrong ones, shuffled. Caller holds s.mu.
func (s *quizService) formatMultipleChoiceQuestion(quote *models.Quote, allQuotes []*models.Quote) (*QuizQuestion, error) {
	otherAuthors := distinctOtherAuthors(allQuotes, quote, false)

	if len(otherAuthors) < 2 {
		return nil, ErrNotEnoughAuthors
	}

	s.rng.Shuffle(len(otherAuthors), func(i, j int) {
		otherAuthors[i], otherAuthors[j] = otherAuthors[j], otherAuthors[i]
	})

	options := []string{quote.AuthorName, otherAuthors[0], otherAuthors[1]}
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &QuizQuestion{
		QuoteID:   quote.ID,
		QuoteText: quote.QuoteText,
		Options:   options,
		QuizMode:  models.ModeMultipleChoice,
	}, nil
}

// gradeAnswer grades case-insensitively. Binary mode is an agreement
// check: the answer is correct exactly when the user's judgement of the
// displayed author claim matches whether the claim was actually true.
func gradeAnswer(quote *models.Quote, req *SubmitAnswerRequest) bool {
	if req.QuizMode == models.ModeBinary {
		userAgreed := strings.EqualFold(req.SelectedAnswer, req.DisplayedAuthor)
		displayedWasCorrect := strings.EqualFold(req.DisplayedAuthor, quote.AuthorName)
		return userAgreed == displayedWasCorrect
	}
	return strings.EqualFold(req.SelectedAnswer, quote.AuthorName)
}

func filterUnseen(quotes []*models.Quote, shownIDs []uint) []*models.Quote {
	shown := make(map[uint]struct{}, len(shownIDs))
	for _, id := range shownIDs {
		shown[id] = struct{}{}
	}

	unseen := make([]*models.Quote, 0, len(quotes))
	for _, q := range quotes {
		if _, ok := shown[q.ID]; !ok {
			unseen = append(unseen, q)
		}
	}
	return unseen
}

// distinctOtherAuthors collects author names different from the
// subject's. Binary mode additionally excludes the subject quote
// itself; multiple-choice considers all quotes.
func distinctOtherAuthors(quotes []*models.Quote, subject *models.Quote, excludeSubjectQuote bool) []string {
	seen := make(map[string]struct{})
	authors := make([]string, 0, len(quotes))
	for _, q := range quotes {
		if excludeSubjectQuote && q.ID == subject.ID {
			continue
		}
		if q.AuthorName == subject.AuthorName {
			continue
		}
		if _, ok := seen[q.AuthorName]; ok {
			continue
		}
		seen[q.AuthorName] = struct{}{}
		authors = append(authors, q.AuthorName)
	}
	return authors
}
