package handlers

import (
	"net/http"

	"github.com/phkadmin/superbowl/pkg/common/response"
)

// PublicBoardHandler serves the board players pick from: taken cells
// only, no digit headers, no owner identity.
func (hr *HandlerRepo) PublicBoardHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, hr.pool.PublicBoard(), false, "")
}

// RevealedBoardHandler serves the post-reveal board: digit
// permutations and per-cell owners.
func (hr *HandlerRepo) RevealedBoardHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, hr.pool.RevealedBoard(), false, "")
}
