// Package interview selects practice questions and scores free-text answers
// by length.
package interview

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/okian/careerlens/internal/domain/model"
)

// Length buckets and their scores.
const (
	shortAnswerWords  = 10
	mediumAnswerWords = 30

	ShortScore  = 30
	MediumScore = 60
	FullScore   = 85
)

// Feedback messages per bucket.
const (
	ShortFeedback  = "Your answer is too short. Try to elaborate with examples."
	MediumFeedback = "Good start, but could use more technical depth."
	FullFeedback   = "Comprehensive answer! You demonstrated good knowledge of the topic."
)

// QuestionBank resolves the question pool for a career.
type QuestionBank interface {
	Questions(career string) []string
}

// Generator picks questions uniformly at random. It is safe for concurrent use.
type Generator struct {
	bank QuestionBank
	mu   sync.Mutex
	rng  *rand.Rand
}

// NewGenerator draws from bank using src.
func NewGenerator(bank QuestionBank, src rand.Source) *Generator {
	return &Generator{bank: bank, rng: rand.New(src)}
}

// Question returns one question for career.
func (g *Generator) Question(career string) string {
	pool := g.bank.Questions(career)
	if len(pool) == 0 {
		return ""
	}
	g.mu.Lock()
	i := g.rng.Intn(len(pool))
	g.mu.Unlock()
	return pool[i]
}

// Scorer grades answers.
type Scorer struct{}

// NewScorer returns a Scorer.
func NewScorer() *Scorer { return &Scorer{} }

// ScoreAnswer buckets answer by whitespace-separated word count.
func (s *Scorer) ScoreAnswer(question, answer string) (model.InterviewTurn, error) {
	words := len(strings.Fields(answer))
	if words == 0 {
		return model.InterviewTurn{}, model.ErrEmptyInput
	}
	turn := model.InterviewTurn{Question: question, Answer: answer, WordCount: words}
	switch {
	case words < shortAnswerWords:
		turn.Score, turn.Feedback = ShortScore, ShortFeedback
	case words < mediumAnswerWords:
		turn.Score, turn.Feedback = MediumScore, MediumFeedback
	default:
		turn.Score, turn.Feedback = FullScore, FullFeedback
	}
	return turn, nil
}
