// Package catalog holds the read-only prop question reference data.
// A question is a tagged variant: numeric questions carry an integer
// range, choice questions carry an ordered option list. The same
// normalization is used for player answers and admin correct answers,
// so settlement can compare canonical strings.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindNumeric Kind = "numeric"
	KindChoice  Kind = "choice"
)

type NumericDomain struct {
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Suffix string `json:"suffix,omitempty"`
}

type Question struct {
	ID      int             `json:"id"`
	Text    string          `json:"text"`
	Kind    Kind            `json:"type"`
	Cost    decimal.Decimal `json:"cost"`
	Numeric *NumericDomain  `json:"numeric,omitempty"`
	Options []string        `json:"options,omitempty"`
}

// ValidationError identifies which question rejected an answer and why.
type ValidationError struct {
	QuestionID int
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %d: %s", e.QuestionID, e.Reason)
}

// Normalize validates raw against the question's domain and returns
// the canonical answer string. An empty or all-whitespace answer means
// "not answered" and returns ok=false with no error.
func (q Question) Normalize(raw string) (normalized string, ok bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, nil
	}

	switch q.Kind {
	case KindNumeric:
		value, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return "", false, &ValidationError{q.ID, "answer must be a whole number"}
		}
		if value < q.Numeric.Min || value > q.Numeric.Max {
			return "", false, &ValidationError{
				q.ID,
				fmt.Sprintf("answer must be between %d and %d", q.Numeric.Min, q.Numeric.Max),
			}
		}
		return strconv.Itoa(value), true, nil

	case KindChoice:
		for _, opt := range q.Options {
			if raw == opt {
				return raw, true, nil
			}
		}
		return "", false, &ValidationError{q.ID, "answer is not one of the listed options"}

	default:
		return "", false, &ValidationError{q.ID, "unsupported question type"}
	}
}

// Catalog is an immutable, ordered set of questions.
type Catalog struct {
	questions []Question
	byID      map[int]Question
}

func New(questions []Question) *Catalog {
	byID := make(map[int]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return &Catalog{questions: questions, byID: byID}
}

// Questions returns the questions in publication order.
func (c *Catalog) Questions() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

func (c *Catalog) ByID(id int) (Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

func (c *Catalog) Len() int {
	return len(c.questions)
}
