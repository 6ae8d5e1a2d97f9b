package handlers

import (
	"net/http"

	"github.com/phkadmin/superbowl/internal/pool"
	"github.com/phkadmin/superbowl/pkg/common/request"
	"github.com/phkadmin/superbowl/pkg/common/response"
)

// SubmitEntryHandler accepts a participant's answers and square
// selections as one atomic entry.
func (hr *HandlerRepo) SubmitEntryHandler(w http.ResponseWriter, r *http.Request) {
	var req pool.SubmitRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.JSON(w, http.StatusBadRequest, nil, true, err.Error())
		return
	}

	result, err := hr.pool.SubmitEntry(req)
	if err != nil {
		hr.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, result, false, "submission recorded")
}
