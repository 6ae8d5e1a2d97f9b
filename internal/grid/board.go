// Package grid owns the 10x10 squares board: cell ownership, the
// per-user cap, and the secret row/column digit permutations. All
// mutation goes through Reserve/Release under a single mutex, held for
// the whole validate-and-commit, so overlapping reservations serialize
// and exactly one caller wins a contested cell.
package grid

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/phkadmin/superbowl/internal/identity"
)

const Size = 10

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Owner is the participant holding a cell. Key is the normalized
// identity the per-user cap counts against; Name is for display.
type Owner struct {
	Key  string
	Name string
}

type Reason string

const (
	ReasonCellTaken     Reason = "cell_taken"
	ReasonLimitExceeded Reason = "limit_exceeded"
	ReasonInvalidCell   Reason = "invalid_cell"
)

// ReservationError rejects a whole batch. Cells identifies the
// offending coordinates so the caller can refresh and retry.
type ReservationError struct {
	Reason Reason
	Cells  []Cell
	Limit  int
}

func (e *ReservationError) Error() string {
	switch e.Reason {
	case ReasonCellTaken:
		return fmt.Sprintf("squares already taken: %s", formatCells(e.Cells))
	case ReasonLimitExceeded:
		return fmt.Sprintf("you can own at most %d squares", e.Limit)
	case ReasonInvalidCell:
		return fmt.Sprintf("square coordinates must be from 0 to 9: %s", formatCells(e.Cells))
	default:
		return "square reservation rejected"
	}
}

func formatCells(cells []Cell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("%d,%d", c.Row+1, c.Col+1)
	}
	return strings.Join(parts, " ")
}

// Digits is a secret permutation of 0..9 assigned to the board axes.
type Digits [Size]int

// NewDigits draws a uniformly random permutation.
func NewDigits(rng *rand.Rand) Digits {
	var d Digits
	for i := range d {
		d[i] = i
	}
	rng.Shuffle(Size, func(i, j int) { d[i], d[j] = d[j], d[i] })
	return d
}

// IndexOf returns the axis index carrying the given digit.
func (d Digits) IndexOf(digit int) (int, bool) {
	for i, v := range d {
		if v == digit {
			return i, true
		}
	}
	return 0, false
}

type Board struct {
	mu sync.RWMutex

	cost       decimal.Decimal
	maxPerUser int
	rowDigits  Digits
	colDigits  Digits

	owners map[Cell]Owner
	counts map[string]int
}

func NewBoard(cost decimal.Decimal, maxPerUser int, rowDigits, colDigits Digits) *Board {
	return &Board{
		cost:       cost,
		maxPerUser: maxPerUser,
		rowDigits:  rowDigits,
		colDigits:  colDigits,
		owners:     make(map[Cell]Owner),
		counts:     make(map[string]int),
	}
}

func (b *Board) Cost() decimal.Decimal { return b.cost }
func (b *Board) MaxPerUser() int       { return b.maxPerUser }

// Restore re-seats an already-recorded selection, used when rebuilding
// the in-memory board from the durable store at startup.
func (b *Board) Restore(owner Owner, cells []Cell) error {
	return b.Reserve(owner, cells)
}

// Reserve claims a batch of cells for one owner, all-or-nothing. The
// lock spans validation and commit: a cell observed free is still free
// when committed.
func (b *Board) Reserve(owner Owner, cells []Cell) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var invalid []Cell
	for _, c := range cells {
		if c.Row < 0 || c.Row >= Size || c.Col < 0 || c.Col >= Size {
			invalid = append(invalid, c)
		}
	}
	if len(invalid) > 0 {
		return &ReservationError{Reason: ReasonInvalidCell, Cells: invalid}
	}

	var taken []Cell
	for _, c := range cells {
		if _, occupied := b.owners[c]; occupied {
			taken = append(taken, c)
		}
	}
	if len(taken) > 0 {
		return &ReservationError{Reason: ReasonCellTaken, Cells: taken}
	}

	if b.counts[owner.Key]+len(cells) > b.maxPerUser {
		return &ReservationError{Reason: ReasonLimitExceeded, Limit: b.maxPerUser}
	}

	for _, c := range cells {
		b.owners[c] = owner
	}
	b.counts[owner.Key] += len(cells)
	return nil
}

// Release frees cells held by the given owner. It is the compensating
// half of the submit saga: a reservation whose submission failed to
// persist must not linger on the board.
func (b *Board) Release(ownerKey string, cells []Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range cells {
		owner, ok := b.owners[c]
		if !ok || owner.Key != ownerKey {
			continue
		}
		delete(b.owners, c)
		b.counts[ownerKey]--
	}
	if b.counts[ownerKey] <= 0 {
		delete(b.counts, ownerKey)
	}
}

type PublicBoard struct {
	Cost       decimal.Decimal `json:"cost"`
	MaxPerUser int             `json:"maxPerUser"`
	Taken      []Cell          `json:"taken"`
}

// PublicView hides the digit headers and all owner identity: players
// pick cells blind to the eventual digit assignment.
func (b *Board) PublicView() PublicBoard {
	b.mu.RLock()
	defer b.mu.RUnlock()

	taken := make([]Cell, 0, len(b.owners))
	for c := range b.owners {
		taken = append(taken, c)
	}
	sortCells(taken)

	return PublicBoard{Cost: b.cost, MaxPerUser: b.maxPerUser, Taken: taken}
}

type TakenCell struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Color    string `json:"color"`
}

type RevealedBoard struct {
	Cost      decimal.Decimal `json:"cost"`
	RowDigits Digits          `json:"rowDigits"`
	ColDigits Digits          `json:"colDigits"`
	Taken     []TakenCell     `json:"taken"`
}

// RevealedView discloses the digit permutations and cell owners.
func (b *Board) RevealedView() RevealedBoard {
	b.mu.RLock()
	defer b.mu.RUnlock()

	taken := make([]TakenCell, 0, len(b.owners))
	for c, owner := range b.owners {
		taken = append(taken, TakenCell{
			Row:      c.Row,
			Col:      c.Col,
			Name:     owner.Name,
			Initials: identity.Initials(owner.Name),
			Color:    identity.Color(owner.Name),
		})
	}
	sort.Slice(taken, func(i, j int) bool {
		if taken[i].Row != taken[j].Row {
			return taken[i].Row < taken[j].Row
		}
		return taken[i].Col < taken[j].Col
	})

	return RevealedBoard{
		Cost:      b.cost,
		RowDigits: b.rowDigits,
		ColDigits: b.colDigits,
		Taken:     taken,
	}
}

// Snapshot is the settlement engine's read of the board: digits plus a
// copy of the ownership map.
type Snapshot struct {
	Cost       decimal.Decimal
	RowDigits  Digits
	ColDigits  Digits
	Owners     map[Cell]Owner
	TakenCount int
}

func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	owners := make(map[Cell]Owner, len(b.owners))
	for c, o := range b.owners {
		owners[c] = o
	}
	return Snapshot{
		Cost:       b.cost,
		RowDigits:  b.rowDigits,
		ColDigits:  b.colDigits,
		Owners:     owners,
		TakenCount: len(owners),
	}
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
}
