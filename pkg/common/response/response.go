package response

import (
	"encoding/json"
	"net/http"
)

type JsonResponse struct {
	Error   bool   `json:"error"`
	Data    any    `json:"data"`
	Message string `json:"message"`
	// Detail carries structured error context, e.g. the conflicting
	// cells of a rejected square reservation.
	Detail any `json:"detail,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data any, isErr bool, msg string) error {
	return JSONWithDetail(w, status, data, isErr, msg, nil)
}

func JSONWithDetail(w http.ResponseWriter, status int, data any, isErr bool, msg string, detail any) error {
	response := &JsonResponse{
		Error:   isErr,
		Message: msg,
		Detail:  detail,
	}
	if !isErr {
		response.Data = data
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		return err
	}

	return nil
}
