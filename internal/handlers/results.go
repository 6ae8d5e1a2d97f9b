package handlers

import (
	"net/http"

	"github.com/phkadmin/superbowl/pkg/common/response"
)

func (hr *HandlerRepo) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	projection, err := hr.pool.Results()
	if err != nil {
		hr.writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, projection, false, "")
}
