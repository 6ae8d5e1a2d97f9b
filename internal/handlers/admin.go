package handlers

import (
	"net/http"

	"github.com/phkadmin/superbowl/internal/store"
	"github.com/phkadmin/superbowl/pkg/common/request"
	"github.com/phkadmin/superbowl/pkg/common/response"
)

const adminHeader = "X-Admin-Password"

// RequireAdmin wraps a handler with the shared-secret gate. The
// credential is re-presented on every call; there are no sessions.
func (hr *HandlerRepo) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !hr.admin.Check(r.Header.Get(adminHeader)) {
			response.JSON(w, http.StatusUnauthorized, nil, true, "unauthorized")
			return
		}
		next(w, r)
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	OK bool `json:"ok"`
}

func (hr *HandlerRepo) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.JSON(w, http.StatusBadRequest, nil, true, err.Error())
		return
	}

	if !hr.admin.Check(req.Password) {
		response.JSON(w, http.StatusUnauthorized, loginResponse{OK: false}, true, "invalid password")
		return
	}
	response.JSON(w, http.StatusOK, loginResponse{OK: true}, false, "")
}

func (hr *HandlerRepo) AdminStateHandler(w http.ResponseWriter, r *http.Request) {
	state, err := hr.pool.AdminState()
	if err != nil {
		hr.writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, state, false, "")
}

type correctAnswersRequest struct {
	Answers map[int]string `json:"answers"`
}

// SetCorrectAnswersHandler overwrites the answer key and returns the
// recomputed payout breakdown.
func (hr *HandlerRepo) SetCorrectAnswersHandler(w http.ResponseWriter, r *http.Request) {
	var req correctAnswersRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.JSON(w, http.StatusBadRequest, nil, true, err.Error())
		return
	}

	state, err := hr.pool.SetCorrectAnswers(req.Answers)
	if err != nil {
		hr.writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, state, false, "correct answers updated")
}

type quarterScoresRequest struct {
	Scores store.QuarterScores `json:"scores"`
}

// SetQuarterScoresHandler overwrites the quarter scores and returns
// the recomputed payout breakdown.
func (hr *HandlerRepo) SetQuarterScoresHandler(w http.ResponseWriter, r *http.Request) {
	var req quarterScoresRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.JSON(w, http.StatusBadRequest, nil, true, err.Error())
		return
	}

	state, err := hr.pool.SetQuarterScores(req.Scores)
	if err != nil {
		hr.writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, state, false, "quarter scores updated")
}
