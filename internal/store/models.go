package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/phkadmin/superbowl/internal/grid"
)

const (
	PaymentCash  = "cash"
	PaymentVenmo = "venmo"
)

// Submission is one participant entry: answers plus claimed squares.
// Append-only; never updated or deleted after creation.
type Submission struct {
	ID            int64           `json:"submissionId"`
	FullName      string          `json:"fullName"`
	VenmoHandle   string          `json:"venmoHandle"`
	PhoneNumber   string          `json:"phoneNumber"`
	PaymentMethod string          `json:"paymentMethod"`
	TotalOwed     decimal.Decimal `json:"totalOwed"`
	CreatedAt     time.Time       `json:"createdAt"`
	Answers       map[int]string  `json:"answers"`
	Squares       []grid.Cell     `json:"squares"`
}

// QuarterScore holds one quarter's running totals. Nil means the
// score has not been entered yet, which is distinct from zero.
type QuarterScore struct {
	TeamA *int `json:"teamA"`
	TeamB *int `json:"teamB"`
}

func (qs QuarterScore) Complete() bool {
	return qs.TeamA != nil && qs.TeamB != nil
}

type QuarterScores struct {
	Q1 QuarterScore `json:"q1"`
	Q2 QuarterScore `json:"q2"`
	Q3 QuarterScore `json:"q3"`
	Q4 QuarterScore `json:"q4"`
}

// LabeledQuarter pairs a quarter's label with its score.
type LabeledQuarter struct {
	Label string
	Score QuarterScore
}

// Quarters returns the scores in game order.
func (q QuarterScores) Quarters() []LabeledQuarter {
	return []LabeledQuarter{
		{"q1", q.Q1},
		{"q2", q.Q2},
		{"q3", q.Q3},
		{"q4", q.Q4},
	}
}
