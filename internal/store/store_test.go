package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phkadmin/superbowl/internal/grid"
)

func testDigits() (grid.Digits, grid.Digits) {
	var row, col grid.Digits
	for i := 0; i < grid.Size; i++ {
		row[i] = i
		col[i] = grid.Size - 1 - i
	}
	return row, col
}

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pool.db")
	s, err := Open(path, testDigits)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func newSubmission(name, phone string, owed string) *Submission {
	amount, _ := decimal.NewFromString(owed)
	return &Submission{
		FullName:      name,
		PhoneNumber:   phone,
		PaymentMethod: PaymentVenmo,
		TotalOwed:     amount,
		CreatedAt:     time.Date(2026, 2, 8, 18, 30, 0, 0, time.UTC),
		Answers:       map[int]string{1: "21", 2: "Patriots"},
		Squares:       []grid.Cell{{Row: 3, Col: 4}},
	}
}

func TestAppendAndListRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)

	id, err := s.AppendSubmission(newSubmission("Ada Lovelace", "555-867-5309", "9.50"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	subs, err := s.ListSubmissions()
	require.NoError(t, err)
	require.Len(t, subs, 1)

	got := subs[0]
	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.Equal(t, PaymentVenmo, got.PaymentMethod)
	assert.True(t, got.TotalOwed.Equal(decimal.RequireFromString("9.50")))
	assert.Equal(t, map[int]string{1: "21", 2: "Patriots"}, got.Answers)
	assert.Equal(t, []grid.Cell{{Row: 3, Col: 4}}, got.Squares)
	assert.Equal(t, 2026, got.CreatedAt.Year())
}

func TestAppendRejectsDuplicateSquare(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.AppendSubmission(newSubmission("First In", "1111", "4"))
	require.NoError(t, err)

	second := newSubmission("Second Paul", "2222", "4")
	_, err = s.AppendSubmission(second)
	require.Error(t, err, "UNIQUE(row,col) must reject the duplicate")

	// the failed transaction left nothing behind
	subs, err := s.ListSubmissions()
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestFindByLast4NewestWins(t *testing.T) {
	s, _ := openTestStore(t)

	older := newSubmission("Old Entry", "(555) 123-9999", "1")
	older.Squares = nil
	_, err := s.AppendSubmission(older)
	require.NoError(t, err)

	newer := newSubmission("New Entry", "555-333-9999", "1")
	newer.Squares = nil
	_, err = s.AppendSubmission(newer)
	require.NoError(t, err)

	found, err := s.FindByLast4("9999")
	require.NoError(t, err)
	assert.Equal(t, "New Entry", found.FullName)

	_, err = s.FindByLast4("0000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceCorrectAnswers(t *testing.T) {
	s, _ := openTestStore(t)

	require.NoError(t, s.ReplaceCorrectAnswers(map[int]string{1: "21", 2: "Patriots"}, nil))
	answers, err := s.CorrectAnswers()
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "21", 2: "Patriots"}, answers)

	// overwrite one, clear the other, in one call
	require.NoError(t, s.ReplaceCorrectAnswers(map[int]string{1: "24"}, []int{2}))
	answers, err = s.CorrectAnswers()
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "24"}, answers)

	// clearing an absent question is a no-op, not an error
	require.NoError(t, s.ReplaceCorrectAnswers(nil, []int{2, 3}))
	answers, err = s.CorrectAnswers()
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "24"}, answers)
}

func TestSubmissionWithoutSquaresListsEmptySlice(t *testing.T) {
	s, _ := openTestStore(t)

	sub := newSubmission("No Squares", "555-000-1234", "3")
	sub.Squares = nil
	_, err := s.AppendSubmission(sub)
	require.NoError(t, err)

	subs, err := s.ListSubmissions()
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.NotNil(t, subs[0].Squares)
	assert.Empty(t, subs[0].Squares)
}

func TestQuarterScoresRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)

	qs, err := s.QuarterScores()
	require.NoError(t, err)
	assert.False(t, qs.Q1.Complete())

	teamA, teamB := 7, 14
	qs.Q1 = QuarterScore{TeamA: &teamA, TeamB: &teamB}
	require.NoError(t, s.SetQuarterScores(qs))

	got, err := s.QuarterScores()
	require.NoError(t, err)
	require.True(t, got.Q1.Complete())
	assert.Equal(t, 7, *got.Q1.TeamA)
	assert.Equal(t, 14, *got.Q1.TeamB)
	assert.False(t, got.Q2.Complete())
}

func TestDigitsPersistAcrossReopen(t *testing.T) {
	s, path := openTestStore(t)

	row1, col1, err := s.Digits()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// a different generator must not reshuffle an existing board
	reopened, err := Open(path, func() (grid.Digits, grid.Digits) {
		t.Fatal("generator must not run for an existing board")
		return grid.Digits{}, grid.Digits{}
	})
	require.NoError(t, err)
	defer reopened.Close()

	row2, col2, err := reopened.Digits()
	require.NoError(t, err)
	assert.Equal(t, row1, row2)
	assert.Equal(t, col1, col2)
}
