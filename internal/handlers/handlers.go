package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phkadmin/superbowl/internal/auth"
	"github.com/phkadmin/superbowl/internal/catalog"
	"github.com/phkadmin/superbowl/internal/grid"
	"github.com/phkadmin/superbowl/internal/pool"
	"github.com/phkadmin/superbowl/internal/store"
	"github.com/phkadmin/superbowl/pkg/common/response"
)

// HandlerRepo holds all the dependencies required by the handlers:
// the application logger, the pool core service, and the admin gate.
type HandlerRepo struct {
	logger *slog.Logger
	pool   *pool.Pool
	admin  *auth.Admin
}

func NewHandlerRepo(logger *slog.Logger, p *pool.Pool, admin *auth.Admin) *HandlerRepo {
	return &HandlerRepo{
		logger: logger,
		pool:   p,
		admin:  admin,
	}
}

// writeError maps the core's error taxonomy onto HTTP statuses:
// validation 400, conflicts 409 (with the offending cells so the
// caller can refresh and retry), lookup misses 404.
func (hr *HandlerRepo) writeError(w http.ResponseWriter, err error) {
	var validationErr *catalog.ValidationError
	var reservationErr *grid.ReservationError
	var scoreErr *pool.ScoreError

	switch {
	case errors.As(err, &reservationErr):
		status := http.StatusConflict
		if reservationErr.Reason == grid.ReasonInvalidCell {
			status = http.StatusBadRequest
		}
		response.JSONWithDetail(w, status, nil, true, reservationErr.Error(), reservationErr.Cells)

	case errors.As(err, &validationErr), errors.As(err, &scoreErr),
		errors.Is(err, pool.ErrMissingName),
		errors.Is(err, pool.ErrInvalidPaymentMethod),
		errors.Is(err, pool.ErrBadLast4):
		response.JSON(w, http.StatusBadRequest, nil, true, err.Error())

	case errors.Is(err, store.ErrNotFound):
		response.JSON(w, http.StatusNotFound, nil, true, "no submission found for that phone ending")

	default:
		hr.logger.Error("request failed", "error", err.Error())
		response.JSON(w, http.StatusInternalServerError, nil, true, "internal error")
	}
}
