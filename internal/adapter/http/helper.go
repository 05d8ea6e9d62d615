package http

import (
	"errors"
	"net/http"
	"strconv"

	domain "agrifin-backend/internal/domain/application"
	loanDomain "agrifin-backend/internal/domain/loan"
	"agrifin-backend/internal/ml"

	"github.com/labstack/echo/v4"
)

// ActorHeader identifies the authenticated caller; the gateway in front of
// this service sets it after verifying the session.
const ActorHeader = "X-Actor-Id"

// actorID parses the caller identity header; 0 means absent.
func actorID(c echo.Context) uint64 {
	v := c.Request().Header.Get(ActorHeader)
	if v == "" {
		return 0
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// writeDomainError maps the error taxonomy onto HTTP statuses.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ml.ErrModelUnavailable):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "scoring model unavailable"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, loanDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, ml.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
