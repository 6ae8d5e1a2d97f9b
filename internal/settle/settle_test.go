package settle

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phkadmin/superbowl/internal/catalog"
	"github.com/phkadmin/superbowl/internal/grid"
	"github.com/phkadmin/superbowl/internal/store"
)

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sub(name string, paid string, answers map[int]string) store.Submission {
	return store.Submission{
		FullName:  name,
		TotalOwed: money(paid),
		Answers:   answers,
	}
}

func sequentialDigits() grid.Digits {
	var d grid.Digits
	for i := range d {
		d[i] = i
	}
	return d
}

func emptyBoard() grid.Snapshot {
	return grid.Snapshot{
		Cost:      decimal.NewFromInt(4),
		RowDigits: sequentialDigits(),
		ColDigits: sequentialDigits(),
		Owners:    map[grid.Cell]grid.Owner{},
	}
}

func intPtr(v int) *int { return &v }

var numericQ = catalog.Question{
	ID:      1,
	Text:    "total points",
	Kind:    catalog.KindNumeric,
	Cost:    decimal.NewFromInt(2),
	Numeric: &catalog.NumericDomain{Min: 0, Max: 60},
}

var choiceQ = catalog.Question{
	ID:      2,
	Text:    "coin toss",
	Kind:    catalog.KindChoice,
	Cost:    decimal.NewFromInt(1),
	Options: []string{"Heads", "Tails"},
}

func TestNumericSplitBetweenExactMatches(t *testing.T) {
	in := Inputs{
		Questions: []catalog.Question{numericQ},
		Submissions: []store.Submission{
			sub("Alice A", "2", map[int]string{1: "21"}),
			sub("Bob B", "2", map[int]string{1: "24"}),
			sub("Carol C", "2", map[int]string{1: "21"}),
		},
		CorrectAnswers: map[int]string{1: "21"},
		Board:          emptyBoard(),
	}

	out := Compute(in)

	require.Len(t, out.Questions, 1)
	row := out.Questions[0]
	assert.True(t, row.Collected.Equal(money("6")), "collected %s", row.Collected)
	assert.Equal(t, []string{"Alice A", "Carol C"}, row.Winners)
	assert.True(t, row.SplitAmount.Equal(money("3")), "split %s", row.SplitAmount)
	assert.True(t, out.HouseRemainder.IsZero(), "remainder %s", out.HouseRemainder)
}

func TestNoCorrectAnswerRetainsPot(t *testing.T) {
	in := Inputs{
		Questions: []catalog.Question{choiceQ},
		Submissions: []store.Submission{
			sub("A One", "1", map[int]string{2: "Heads"}),
			sub("B Two", "1", map[int]string{2: "Heads"}),
			sub("C Three", "1", map[int]string{2: "Tails"}),
			sub("D Four", "1", map[int]string{2: "Tails"}),
		},
		CorrectAnswers: map[int]string{},
		Board:          emptyBoard(),
	}

	out := Compute(in)

	row := out.Questions[0]
	assert.True(t, row.Collected.Equal(money("4")))
	assert.Empty(t, row.Winners)
	assert.True(t, row.SplitAmount.IsZero())
	assert.True(t, out.TotalOwed.IsZero())
	assert.True(t, out.HouseRemainder.Equal(money("4")))
}

func TestUnevenSplitRoundsDownRemainderToHouse(t *testing.T) {
	in := Inputs{
		Questions: []catalog.Question{choiceQ},
		Submissions: []store.Submission{
			sub("A One", "1", map[int]string{2: "Heads"}),
			sub("B Two", "1", map[int]string{2: "Heads"}),
			sub("C Three", "1", map[int]string{2: "Heads"}),
			sub("D Four", "1", map[int]string{2: "Tails"}),
		},
		CorrectAnswers: map[int]string{2: "Heads"},
		Board:          emptyBoard(),
	}

	out := Compute(in)

	row := out.Questions[0]
	assert.True(t, row.SplitAmount.Equal(money("1.33")), "split %s", row.SplitAmount)
	assert.True(t, out.TotalOwed.Equal(money("3.99")))
	assert.True(t, out.HouseRemainder.Equal(money("0.01")))
}

func TestSameIdentityCountedOnceAmongWinners(t *testing.T) {
	in := Inputs{
		Questions: []catalog.Question{choiceQ},
		Submissions: []store.Submission{
			sub("Alice A", "1", map[int]string{2: "Heads"}),
			sub("  alice   a ", "1", map[int]string{2: "Heads"}),
		},
		CorrectAnswers: map[int]string{2: "Heads"},
		Board:          emptyBoard(),
	}

	out := Compute(in)

	row := out.Questions[0]
	assert.Equal(t, []string{"Alice A"}, row.Winners)
	assert.True(t, row.SplitAmount.Equal(money("2")))
}

func TestUnownedWinningCellAccruesToHouse(t *testing.T) {
	board := emptyBoard()
	board.TakenCount = 100 // pot = 100 x $4 = $400

	in := Inputs{
		Questions: nil,
		Scores: store.QuarterScores{
			Q1: store.QuarterScore{TeamA: intPtr(7), TeamB: intPtr(14)},
		},
		Board: board,
	}

	out := Compute(in)

	assert.True(t, out.Squares.Pot.Equal(money("400")))
	assert.True(t, out.Squares.QuarterShare.Equal(money("100")))

	q1 := out.Squares.Quarters[0]
	assert.Equal(t, QuarterUnclaimed, q1.Status)
	require.NotNil(t, q1.Cell)
	assert.Equal(t, 7, q1.Cell.Row) // sequential digits: digit == index
	assert.Equal(t, 4, q1.Cell.Col)
	assert.Nil(t, q1.Winner)

	// the unclaimed share is not paid out
	assert.True(t, out.TotalOwed.IsZero())
	assert.True(t, out.HouseRemainder.Equal(money("400")))

	for _, q := range out.Squares.Quarters[1:] {
		assert.Equal(t, QuarterPending, q.Status)
		assert.Nil(t, q.Cell)
	}
}

func TestOwnedWinningCellPaysQuarterShare(t *testing.T) {
	board := emptyBoard()
	board.Owners[grid.Cell{Row: 7, Col: 4}] = grid.Owner{Key: "alice a", Name: "Alice A"}
	board.TakenCount = 1 // pot = $4, share = $1

	in := Inputs{
		Submissions: []store.Submission{
			sub("Alice A", "4", nil),
		},
		Scores: store.QuarterScores{
			Q1: store.QuarterScore{TeamA: intPtr(17), TeamB: intPtr(24)},
		},
		Board: board,
	}

	out := Compute(in)

	q1 := out.Squares.Quarters[0]
	assert.Equal(t, QuarterWon, q1.Status)
	require.NotNil(t, q1.Winner)
	assert.Equal(t, "Alice A", q1.Winner.Name)
	assert.True(t, q1.Amount.Equal(money("1")))

	require.Len(t, out.ByPerson, 1)
	person := out.ByPerson[0]
	assert.True(t, person.PaidIn.Equal(money("4")))
	assert.True(t, person.Owed.Equal(money("1")))
	assert.True(t, person.Net.Equal(money("-3")))
}

func TestPendingQuarterIsDistinctFromUnclaimed(t *testing.T) {
	in := Inputs{
		Scores: store.QuarterScores{
			Q1: store.QuarterScore{TeamA: intPtr(7)}, // teamB missing
		},
		Board: emptyBoard(),
	}

	out := Compute(in)
	assert.Equal(t, QuarterPending, out.Squares.Quarters[0].Status)
	assert.Nil(t, out.Squares.Quarters[0].Cell)
}

func fullInputs() Inputs {
	board := emptyBoard()
	board.Owners[grid.Cell{Row: 1, Col: 2}] = grid.Owner{Key: "bob b", Name: "Bob B"}
	board.TakenCount = 1

	return Inputs{
		Questions: []catalog.Question{numericQ, choiceQ},
		Submissions: []store.Submission{
			sub("Alice A", "3", map[int]string{1: "21", 2: "Heads"}),
			sub("Bob B", "7", map[int]string{1: "30", 2: "Tails"}),
		},
		CorrectAnswers: map[int]string{1: "21", 2: "Tails"},
		Scores: store.QuarterScores{
			Q1: store.QuarterScore{TeamA: intPtr(11), TeamB: intPtr(2)},
		},
		Board: board,
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	in := fullInputs()
	first := Compute(in)
	second := Compute(in)
	assert.Equal(t, first, second)
}

func TestLocalityOfCorrectAnswerChange(t *testing.T) {
	in := fullInputs()
	before := Compute(in)

	in.CorrectAnswers = map[int]string{1: "30", 2: "Tails"}
	after := Compute(in)

	// only question 1's row changed
	assert.NotEqual(t, before.Questions[0], after.Questions[0])
	assert.Equal(t, before.Questions[1], after.Questions[1])
	assert.Equal(t, before.Squares, after.Squares)
	assert.True(t, before.TotalCollected.Equal(after.TotalCollected))
}

func TestConservation(t *testing.T) {
	in := fullInputs()
	out := Compute(in)

	assert.True(t, out.HouseRemainder.Equal(out.TotalCollected.Sub(out.TotalOwed)))
	assert.False(t, out.HouseRemainder.IsNegative())
}
