// Package settle computes the payout breakdown. Compute is a pure
// function over the catalog, the submission log, the answer key and
// the quarter scores: no store handles, no clocks, no mutation.
// Re-running it with unchanged inputs yields identical output, and the
// engine never distributes more than it collected; anything unmatched
// lands in the house remainder.
package settle

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/phkadmin/superbowl/internal/catalog"
	"github.com/phkadmin/superbowl/internal/grid"
	"github.com/phkadmin/superbowl/internal/identity"
	"github.com/phkadmin/superbowl/internal/store"
)

type Inputs struct {
	Questions      []catalog.Question
	Submissions    []store.Submission
	CorrectAnswers map[int]string
	Scores         store.QuarterScores
	Board          grid.Snapshot
}

type Person struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Color    string `json:"color"`
}

type QuestionRow struct {
	QuestionID    int             `json:"questionId"`
	Text          string          `json:"text"`
	CorrectAnswer string          `json:"correctAnswer,omitempty"`
	Collected     decimal.Decimal `json:"collected"`
	Winners       []string        `json:"winners"`
	SplitAmount   decimal.Decimal `json:"splitAmount"`
}

type QuarterStatus string

const (
	// QuarterPending means a score is missing: not resolved, not won,
	// not forfeited.
	QuarterPending QuarterStatus = "pending"
	// QuarterUnclaimed means the winning cell is unowned; the share
	// accrues to the house.
	QuarterUnclaimed QuarterStatus = "unclaimed"
	QuarterWon       QuarterStatus = "won"
)

type WinningCell struct {
	Row        int `json:"row"`
	Col        int `json:"col"`
	TeamADigit int `json:"teamADigit"`
	TeamBDigit int `json:"teamBDigit"`
}

type QuarterResult struct {
	Label  string          `json:"quarter"`
	TeamA  *int            `json:"teamA"`
	TeamB  *int            `json:"teamB"`
	Status QuarterStatus   `json:"status"`
	Cell   *WinningCell    `json:"cell,omitempty"`
	Winner *Person         `json:"winner,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

type SquaresBreakdown struct {
	Pot          decimal.Decimal `json:"pot"`
	QuarterShare decimal.Decimal `json:"quarterShare"`
	Quarters     []QuarterResult `json:"quarters"`
}

type PersonRow struct {
	Person
	PaidIn decimal.Decimal `json:"paidIn"`
	Owed   decimal.Decimal `json:"owed"`
	Net    decimal.Decimal `json:"net"`
}

type Breakdown struct {
	Questions      []QuestionRow    `json:"questionBreakdown"`
	Squares        SquaresBreakdown `json:"squares"`
	ByPerson       []PersonRow      `json:"byPerson"`
	TotalCollected decimal.Decimal  `json:"totalCollected"`
	TotalOwed      decimal.Decimal  `json:"totalOwed"`
	HouseRemainder decimal.Decimal  `json:"houseRemainder"`
}

// Compute folds the submission log against the current answer key and
// scores. Splits round down to the cent; the sub-cent remainder stays
// with the house, which keeps HouseRemainder non-negative by
// construction.
func Compute(in Inputs) Breakdown {
	ledger := newLedger(in.Submissions)

	questions := make([]QuestionRow, 0, len(in.Questions))
	totalCollected := decimal.Zero
	totalOwed := decimal.Zero

	for _, q := range in.Questions {
		row := computeQuestion(q, in.Submissions, in.CorrectAnswers, ledger)
		totalCollected = totalCollected.Add(row.Collected)
		totalOwed = totalOwed.Add(row.SplitAmount.Mul(decimal.NewFromInt(int64(len(row.Winners)))))
		questions = append(questions, row)
	}

	squares := computeSquares(in.Board, in.Scores, ledger)
	totalCollected = totalCollected.Add(squares.Pot)
	for _, quarter := range squares.Quarters {
		if quarter.Status == QuarterWon {
			totalOwed = totalOwed.Add(quarter.Amount)
		}
	}

	return Breakdown{
		Questions:      questions,
		Squares:        squares,
		ByPerson:       ledger.rollup(),
		TotalCollected: totalCollected,
		TotalOwed:      totalOwed,
		HouseRemainder: totalCollected.Sub(totalOwed),
	}
}

func computeQuestion(q catalog.Question, subs []store.Submission, correct map[int]string, ledger *personLedger) QuestionRow {
	answered := 0
	winnerKeys := make(map[string]bool)
	correctAnswer, haveAnswer := correct[q.ID]

	for _, sub := range subs {
		answer, ok := sub.Answers[q.ID]
		if !ok {
			continue
		}
		answered++
		if haveAnswer && answer == correctAnswer {
			winnerKeys[identity.Key(sub.FullName)] = true
		}
	}

	collected := q.Cost.Mul(decimal.NewFromInt(int64(answered)))

	winners := make([]string, 0, len(winnerKeys))
	for key := range winnerKeys {
		winners = append(winners, ledger.displayName(key))
	}
	sort.Strings(winners)

	split := decimal.Zero
	if len(winners) > 0 {
		split = collected.Div(decimal.NewFromInt(int64(len(winners)))).RoundFloor(2)
		for key := range winnerKeys {
			ledger.credit(key, split)
		}
	}

	return QuestionRow{
		QuestionID:    q.ID,
		Text:          q.Text,
		CorrectAnswer: correctAnswer,
		Collected:     collected,
		Winners:       winners,
		SplitAmount:   split,
	}
}

func computeSquares(board grid.Snapshot, scores store.QuarterScores, ledger *personLedger) SquaresBreakdown {
	pot := board.Cost.Mul(decimal.NewFromInt(int64(board.TakenCount)))
	quarterShare := pot.Div(decimal.NewFromInt(4)).RoundFloor(2)

	quarters := make([]QuarterResult, 0, 4)
	for _, labeled := range scores.Quarters() {
		result := QuarterResult{
			Label:  labeled.Label,
			TeamA:  labeled.Score.TeamA,
			TeamB:  labeled.Score.TeamB,
			Status: QuarterPending,
			Amount: quarterShare,
		}

		if labeled.Score.Complete() {
			aDigit := *labeled.Score.TeamA % 10
			bDigit := *labeled.Score.TeamB % 10
			rowIdx, _ := board.RowDigits.IndexOf(aDigit)
			colIdx, _ := board.ColDigits.IndexOf(bDigit)
			result.Cell = &WinningCell{Row: rowIdx, Col: colIdx, TeamADigit: aDigit, TeamBDigit: bDigit}

			owner, owned := board.Owners[grid.Cell{Row: rowIdx, Col: colIdx}]
			if owned {
				result.Status = QuarterWon
				result.Winner = &Person{
					Name:     owner.Name,
					Initials: identity.Initials(owner.Name),
					Color:    identity.Color(owner.Name),
				}
				ledger.credit(owner.Key, quarterShare)
			} else {
				result.Status = QuarterUnclaimed
			}
		}

		quarters = append(quarters, result)
	}

	return SquaresBreakdown{Pot: pot, QuarterShare: quarterShare, Quarters: quarters}
}

// personLedger accumulates paid-in and owed amounts per normalized
// identity, remembering the first-seen display name for each.
type personLedger struct {
	names  map[string]string
	paidIn map[string]decimal.Decimal
	owed   map[string]decimal.Decimal
}

func newLedger(subs []store.Submission) *personLedger {
	l := &personLedger{
		names:  make(map[string]string),
		paidIn: make(map[string]decimal.Decimal),
		owed:   make(map[string]decimal.Decimal),
	}
	for _, sub := range subs {
		key := identity.Key(sub.FullName)
		if _, seen := l.names[key]; !seen {
			l.names[key] = sub.FullName
		}
		l.paidIn[key] = l.paidInFor(key).Add(sub.TotalOwed)
	}
	return l
}

func (l *personLedger) displayName(key string) string {
	if name, ok := l.names[key]; ok {
		return name
	}
	return key
}

func (l *personLedger) paidInFor(key string) decimal.Decimal {
	if v, ok := l.paidIn[key]; ok {
		return v
	}
	return decimal.Zero
}

func (l *personLedger) credit(key string, amount decimal.Decimal) {
	if v, ok := l.owed[key]; ok {
		l.owed[key] = v.Add(amount)
		return
	}
	l.owed[key] = amount
}

func (l *personLedger) rollup() []PersonRow {
	keys := make([]string, 0, len(l.names))
	for key := range l.names {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]PersonRow, 0, len(keys))
	for _, key := range keys {
		name := l.names[key]
		paidIn := l.paidInFor(key)
		owed := decimal.Zero
		if v, ok := l.owed[key]; ok {
			owed = v
		}
		rows = append(rows, PersonRow{
			Person: Person{
				Name:     name,
				Initials: identity.Initials(name),
				Color:    identity.Color(name),
			},
			PaidIn: paidIn,
			Owed:   owed,
			Net:    owed.Sub(paidIn),
		})
	}
	return rows
}
