// Package store is the durable, append-only record of submissions and
// the admin-maintained settlement inputs, backed by a single-file
// SQLite database.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/phkadmin/superbowl/internal/grid"
)

var ErrNotFound = errors.New("submission not found")

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema and the singleton board row exist. generateDigits runs only
// on first boot; an existing board keeps its committed permutations.
func Open(path string, generateDigits func() (grid.Digits, grid.Digits)) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers anyway; a single connection avoids
	// SQLITE_BUSY on the submission transaction.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS submissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			full_name TEXT NOT NULL,
			venmo_handle TEXT,
			phone_number TEXT,
			payment_method TEXT NOT NULL,
			total_owed TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS answers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			submission_id INTEGER NOT NULL,
			question_id INTEGER NOT NULL,
			answer_text TEXT NOT NULL,
			FOREIGN KEY(submission_id) REFERENCES submissions(id)
		);

		CREATE TABLE IF NOT EXISTS correct_answers (
			question_id INTEGER PRIMARY KEY,
			answer_text TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS square_game (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			row_digits TEXT NOT NULL,
			col_digits TEXT NOT NULL,
			q1_a INTEGER, q1_b INTEGER,
			q2_a INTEGER, q2_b INTEGER,
			q3_a INTEGER, q3_b INTEGER,
			q4_a INTEGER, q4_b INTEGER
		);

		CREATE TABLE IF NOT EXISTS square_selections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			submission_id INTEGER NOT NULL,
			row_idx INTEGER NOT NULL,
			col_idx INTEGER NOT NULL,
			FOREIGN KEY(submission_id) REFERENCES submissions(id),
			UNIQUE(row_idx, col_idx)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureBoardRow(generateDigits); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureBoardRow(generateDigits func() (grid.Digits, grid.Digits)) error {
	var id int
	err := s.db.QueryRow("SELECT id FROM square_game WHERE id = 1").Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	rowDigits, colDigits := generateDigits()
	rowJSON, _ := json.Marshal(rowDigits)
	colJSON, _ := json.Marshal(colDigits)
	_, err = s.db.Exec(
		"INSERT INTO square_game(id, row_digits, col_digits) VALUES (1, ?, ?)",
		string(rowJSON), string(colJSON),
	)
	return err
}

// Digits returns the board's committed row/column permutations.
func (s *Store) Digits() (rowDigits, colDigits grid.Digits, err error) {
	var rowJSON, colJSON string
	err = s.db.QueryRow("SELECT row_digits, col_digits FROM square_game WHERE id = 1").
		Scan(&rowJSON, &colJSON)
	if err != nil {
		return rowDigits, colDigits, err
	}
	if err = json.Unmarshal([]byte(rowJSON), &rowDigits); err != nil {
		return rowDigits, colDigits, err
	}
	err = json.Unmarshal([]byte(colJSON), &colDigits)
	return rowDigits, colDigits, err
}

// AppendSubmission persists a submission with its answers and squares
// in one transaction and returns the assigned id. The UNIQUE(row,col)
// constraint backstops the in-memory allocator.
func (s *Store) AppendSubmission(sub *Submission) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO submissions(full_name, venmo_handle, phone_number, payment_method, total_owed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sub.FullName,
		sub.VenmoHandle,
		sub.PhoneNumber,
		sub.PaymentMethod,
		sub.TotalOwed.String(),
		sub.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for questionID, answer := range sub.Answers {
		_, err = tx.Exec(
			"INSERT INTO answers(submission_id, question_id, answer_text) VALUES (?, ?, ?)",
			id, questionID, answer,
		)
		if err != nil {
			return 0, err
		}
	}

	for _, cell := range sub.Squares {
		_, err = tx.Exec(
			"INSERT INTO square_selections(submission_id, row_idx, col_idx) VALUES (?, ?, ?)",
			id, cell.Row, cell.Col,
		)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListSubmissions returns every submission, oldest first, with answers
// and squares attached.
func (s *Store) ListSubmissions() ([]Submission, error) {
	rows, err := s.db.Query(
		`SELECT id, full_name, venmo_handle, phone_number, payment_method, total_owed, created_at
		 FROM submissions ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []Submission
	index := make(map[int64]int)
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		index[sub.ID] = len(subs)
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	answerRows, err := s.db.Query("SELECT submission_id, question_id, answer_text FROM answers")
	if err != nil {
		return nil, err
	}
	defer answerRows.Close()
	for answerRows.Next() {
		var subID int64
		var questionID int
		var text string
		if err := answerRows.Scan(&subID, &questionID, &text); err != nil {
			return nil, err
		}
		if i, ok := index[subID]; ok {
			subs[i].Answers[questionID] = text
		}
	}
	if err := answerRows.Err(); err != nil {
		return nil, err
	}

	squareRows, err := s.db.Query("SELECT submission_id, row_idx, col_idx FROM square_selections ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer squareRows.Close()
	for squareRows.Next() {
		var subID int64
		var cell grid.Cell
		if err := squareRows.Scan(&subID, &cell.Row, &cell.Col); err != nil {
			return nil, err
		}
		if i, ok := index[subID]; ok {
			subs[i].Squares = append(subs[i].Squares, cell)
		}
	}
	if err := squareRows.Err(); err != nil {
		return nil, err
	}

	return subs, nil
}

// FindByLast4 returns the most recent submission whose phone number
// ends in the given four digits. Newest-wins is the documented
// tie-break for shared phone endings.
func (s *Store) FindByLast4(last4 string) (*Submission, error) {
	subs, err := s.ListSubmissions()
	if err != nil {
		return nil, err
	}
	for i := len(subs) - 1; i >= 0; i-- {
		if strings.HasSuffix(digitsOnly(subs[i].PhoneNumber), last4) {
			return &subs[i], nil
		}
	}
	return nil, ErrNotFound
}

// CorrectAnswers returns the admin-entered answer key.
func (s *Store) CorrectAnswers() (map[int]string, error) {
	rows, err := s.db.Query("SELECT question_id, answer_text FROM correct_answers")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make(map[int]string)
	for rows.Next() {
		var questionID int
		var text string
		if err := rows.Scan(&questionID, &text); err != nil {
			return nil, err
		}
		answers[questionID] = text
	}
	return answers, rows.Err()
}

// ReplaceCorrectAnswers applies an answer-key update in one
// transaction: set entries are recorded or overwritten, clear entries
// are removed (admin submitted a blank). A failure anywhere leaves the
// stored key untouched.
func (s *Store) ReplaceCorrectAnswers(set map[int]string, clear []int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for questionID, answer := range set {
		_, err = tx.Exec(
			`INSERT INTO correct_answers(question_id, answer_text) VALUES (?, ?)
			 ON CONFLICT(question_id) DO UPDATE SET answer_text = excluded.answer_text`,
			questionID, answer,
		)
		if err != nil {
			return err
		}
	}
	for _, questionID := range clear {
		if _, err := tx.Exec("DELETE FROM correct_answers WHERE question_id = ?", questionID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// QuarterScores returns the current quarter scores; unset scores scan
// as nil.
func (s *Store) QuarterScores() (QuarterScores, error) {
	var qs QuarterScores
	err := s.db.QueryRow(
		"SELECT q1_a, q1_b, q2_a, q2_b, q3_a, q3_b, q4_a, q4_b FROM square_game WHERE id = 1",
	).Scan(
		&qs.Q1.TeamA, &qs.Q1.TeamB,
		&qs.Q2.TeamA, &qs.Q2.TeamB,
		&qs.Q3.TeamA, &qs.Q3.TeamB,
		&qs.Q4.TeamA, &qs.Q4.TeamB,
	)
	return qs, err
}

// SetQuarterScores overwrites all eight score slots, last writer wins.
func (s *Store) SetQuarterScores(qs QuarterScores) error {
	_, err := s.db.Exec(
		`UPDATE square_game SET
			q1_a = ?, q1_b = ?,
			q2_a = ?, q2_b = ?,
			q3_a = ?, q3_b = ?,
			q4_a = ?, q4_b = ?
		 WHERE id = 1`,
		qs.Q1.TeamA, qs.Q1.TeamB,
		qs.Q2.TeamA, qs.Q2.TeamB,
		qs.Q3.TeamA, qs.Q3.TeamB,
		qs.Q4.TeamA, qs.Q4.TeamB,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (Submission, error) {
	var sub Submission
	var venmo, phone sql.NullString
	var owed, created string
	err := row.Scan(&sub.ID, &sub.FullName, &venmo, &phone, &sub.PaymentMethod, &owed, &created)
	if err != nil {
		return sub, err
	}
	sub.VenmoHandle = venmo.String
	sub.PhoneNumber = phone.String
	sub.TotalOwed, err = decimal.NewFromString(owed)
	if err != nil {
		return sub, fmt.Errorf("submission %d: bad total_owed %q: %w", sub.ID, owed, err)
	}
	sub.CreatedAt, err = time.Parse(time.RFC3339, created)
	if err != nil {
		return sub, fmt.Errorf("submission %d: bad created_at %q: %w", sub.ID, created, err)
	}
	sub.Answers = make(map[int]string)
	// serializes as [] rather than null for square-less entries
	sub.Squares = []grid.Cell{}
	return sub, nil
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
