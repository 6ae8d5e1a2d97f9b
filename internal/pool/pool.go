// Package pool is the core of the betting pool: it validates and
// commits submissions (the reserve-then-append saga), and serves every
// read and admin mutation the transport layer exposes. Handlers stay
// thin; the rules live here.
package pool

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phkadmin/superbowl/internal/catalog"
	"github.com/phkadmin/superbowl/internal/grid"
	"github.com/phkadmin/superbowl/internal/identity"
	"github.com/phkadmin/superbowl/internal/results"
	"github.com/phkadmin/superbowl/internal/settle"
	"github.com/phkadmin/superbowl/internal/store"
)

var (
	ErrMissingName          = errors.New("full name is required")
	ErrInvalidPaymentMethod = errors.New("payment method must be cash or venmo")
	ErrBadLast4             = errors.New("please provide exactly 4 digits")
)

const maxQuarterScore = 200

// ScoreError flags one invalid quarter score field.
type ScoreError struct {
	Quarter string
	Team    string
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("invalid score for %s %s", e.Quarter, e.Team)
}

type Pool struct {
	logger  *slog.Logger
	catalog *catalog.Catalog
	board   *grid.Board
	store   *store.Store
}

// New builds the pool service and rebuilds the in-memory board from
// the durable selection log, so availability survives restarts.
func New(logger *slog.Logger, cat *catalog.Catalog, st *store.Store, squaresCost decimal.Decimal, maxPerUser int) (*Pool, error) {
	rowDigits, colDigits, err := st.Digits()
	if err != nil {
		return nil, fmt.Errorf("load board digits: %w", err)
	}
	board := grid.NewBoard(squaresCost, maxPerUser, rowDigits, colDigits)

	subs, err := st.ListSubmissions()
	if err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}
	for _, sub := range subs {
		if len(sub.Squares) == 0 {
			continue
		}
		owner := grid.Owner{Key: identity.Key(sub.FullName), Name: sub.FullName}
		if err := board.Restore(owner, sub.Squares); err != nil {
			return nil, fmt.Errorf("restore squares for submission %d: %w", sub.ID, err)
		}
	}

	return &Pool{logger: logger, catalog: cat, board: board, store: st}, nil
}

func (p *Pool) Questions() []catalog.Question {
	return p.catalog.Questions()
}

func (p *Pool) PublicBoard() grid.PublicBoard {
	return p.board.PublicView()
}

func (p *Pool) RevealedBoard() grid.RevealedBoard {
	return p.board.RevealedView()
}

type SubmitRequest struct {
	FullName         string         `json:"fullName"`
	VenmoHandle      string         `json:"venmoHandle"`
	PhoneNumber      string         `json:"phoneNumber"`
	PaymentMethod    string         `json:"paymentMethod"`
	Answers          map[int]string `json:"answers"`
	SquareSelections []grid.Cell    `json:"squareSelections"`
}

type SubmitResult struct {
	SubmissionID  int64           `json:"submissionId"`
	AnsweredCount int             `json:"answeredCount"`
	SquareCount   int             `json:"squareCount"`
	TotalOwed     decimal.Decimal `json:"totalOwed"`
}

// SubmitEntry validates and commits one entry. Squares are reserved on
// the board first; if the durable append then fails, the reservation
// is released so no cell is ever held without a recorded submission.
func (p *Pool) SubmitEntry(req SubmitRequest) (*SubmitResult, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, ErrMissingName
	}

	paymentMethod := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if paymentMethod != store.PaymentCash && paymentMethod != store.PaymentVenmo {
		return nil, ErrInvalidPaymentMethod
	}

	for questionID := range req.Answers {
		if _, known := p.catalog.ByID(questionID); !known {
			return nil, &catalog.ValidationError{QuestionID: questionID, Reason: "unknown question"}
		}
	}

	answers := make(map[int]string)
	totalOwed := decimal.Zero
	for _, q := range p.catalog.Questions() {
		raw, present := req.Answers[q.ID]
		if !present {
			continue
		}
		normalized, answered, err := q.Normalize(raw)
		if err != nil {
			return nil, err
		}
		if !answered {
			continue
		}
		answers[q.ID] = normalized
		totalOwed = totalOwed.Add(q.Cost)
	}

	cells := dedupeCells(req.SquareSelections)
	totalOwed = totalOwed.Add(p.board.Cost().Mul(decimal.NewFromInt(int64(len(cells)))))

	owner := grid.Owner{Key: identity.Key(fullName), Name: fullName}
	if len(cells) > 0 {
		if err := p.board.Reserve(owner, cells); err != nil {
			return nil, err
		}
	}

	sub := &store.Submission{
		FullName:      fullName,
		VenmoHandle:   strings.TrimSpace(req.VenmoHandle),
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		PaymentMethod: paymentMethod,
		TotalOwed:     totalOwed,
		CreatedAt:     time.Now().UTC(),
		Answers:       answers,
		Squares:       cells,
	}

	id, err := p.store.AppendSubmission(sub)
	if err != nil {
		// Compensate: the reservation must not outlive a failed append.
		if len(cells) > 0 {
			p.board.Release(owner.Key, cells)
		}
		return nil, fmt.Errorf("record submission: %w", err)
	}

	p.logger.Info("submission recorded",
		"submission_id", id,
		"answered", len(answers),
		"squares", len(cells),
		"total_owed", totalOwed.String(),
	)

	return &SubmitResult{
		SubmissionID:  id,
		AnsweredCount: len(answers),
		SquareCount:   len(cells),
		TotalOwed:     totalOwed,
	}, nil
}

// Lookup returns the submission for a phone-number ending. The last-4
// digits are the self-service credential; no admin secret involved.
func (p *Pool) Lookup(last4 string) (*store.Submission, error) {
	cleaned := digitsOnly(strings.TrimSpace(last4))
	if len(cleaned) != 4 {
		return nil, ErrBadLast4
	}
	return p.store.FindByLast4(cleaned)
}

// Results is the public projection: aggregates only, no answer key.
func (p *Pool) Results() (results.Projection, error) {
	subs, err := p.store.ListSubmissions()
	if err != nil {
		return results.Projection{}, err
	}
	return results.Project(p.catalog.Questions(), subs), nil
}

// AdminState bundles everything the admin view needs: the answer key,
// the revealed board, and a freshly computed breakdown.
type AdminState struct {
	CorrectAnswers map[int]string      `json:"correctAnswers"`
	Scores         store.QuarterScores `json:"scores"`
	Board          grid.RevealedBoard  `json:"board"`
	settle.Breakdown
}

func (p *Pool) AdminState() (*AdminState, error) {
	subs, err := p.store.ListSubmissions()
	if err != nil {
		return nil, err
	}
	correct, err := p.store.CorrectAnswers()
	if err != nil {
		return nil, err
	}
	scores, err := p.store.QuarterScores()
	if err != nil {
		return nil, err
	}

	breakdown := settle.Compute(settle.Inputs{
		Questions:      p.catalog.Questions(),
		Submissions:    subs,
		CorrectAnswers: correct,
		Scores:         scores,
		Board:          p.board.Snapshot(),
	})

	return &AdminState{
		CorrectAnswers: correct,
		Scores:         scores,
		Board:          p.board.RevealedView(),
		Breakdown:      breakdown,
	}, nil
}

// SetCorrectAnswers overwrites the answer key. A blank or missing
// answer clears that question. Every entered answer goes through the
// same normalization as player input, so settlement compares canonical
// forms. The whole map is normalized before any write and the writes
// land in one store transaction, so a rejected update leaves the
// stored key exactly as it was. Returns the recomputed admin state.
func (p *Pool) SetCorrectAnswers(answers map[int]string) (*AdminState, error) {
	set := make(map[int]string)
	var clear []int
	for _, q := range p.catalog.Questions() {
		normalized, present, err := q.Normalize(answers[q.ID])
		if err != nil {
			return nil, err
		}
		if !present {
			clear = append(clear, q.ID)
			continue
		}
		set[q.ID] = normalized
	}

	if err := p.store.ReplaceCorrectAnswers(set, clear); err != nil {
		return nil, err
	}
	p.logger.Info("correct answers updated", "entered", len(set))
	return p.AdminState()
}

// SetQuarterScores overwrites all quarter scores, last writer wins.
// Returns the recomputed admin state.
func (p *Pool) SetQuarterScores(scores store.QuarterScores) (*AdminState, error) {
	for _, labeled := range scores.Quarters() {
		if err := checkScore(labeled.Label, "teamA", labeled.Score.TeamA); err != nil {
			return nil, err
		}
		if err := checkScore(labeled.Label, "teamB", labeled.Score.TeamB); err != nil {
			return nil, err
		}
	}
	if err := p.store.SetQuarterScores(scores); err != nil {
		return nil, err
	}
	p.logger.Info("quarter scores updated")
	return p.AdminState()
}

func checkScore(quarter, team string, score *int) error {
	if score == nil {
		return nil
	}
	if *score < 0 || *score > maxQuarterScore {
		return &ScoreError{Quarter: quarter, Team: team}
	}
	return nil
}

func dedupeCells(cells []grid.Cell) []grid.Cell {
	seen := make(map[grid.Cell]bool, len(cells))
	out := make([]grid.Cell, 0, len(cells))
	for _, c := range cells {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, c := range value {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
