package handlers

import (
	"net/http"

	"github.com/phkadmin/superbowl/pkg/common/request"
	"github.com/phkadmin/superbowl/pkg/common/response"
)

type lookupRequest struct {
	Last4 string `json:"last4"`
}

// LookupHandler is the self-service gate: the last four phone digits
// unlock read-only access to that one submission.
func (hr *HandlerRepo) LookupHandler(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.JSON(w, http.StatusBadRequest, nil, true, err.Error())
		return
	}

	sub, err := hr.pool.Lookup(req.Last4)
	if err != nil {
		hr.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, sub, false, "")
}
