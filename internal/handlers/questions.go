package handlers

import (
	"net/http"

	"github.com/phkadmin/superbowl/internal/catalog"
	"github.com/phkadmin/superbowl/pkg/common/response"
)

type questionListResponse struct {
	Questions []catalog.Question `json:"questions"`
}

func (hr *HandlerRepo) ListQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, questionListResponse{Questions: hr.pool.Questions()}, false, "")
}
