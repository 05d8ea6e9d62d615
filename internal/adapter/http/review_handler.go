package http

import (
	"net/http"

	domain "agrifin-backend/internal/domain/application"
	ucApplication "agrifin-backend/internal/usecase/application"
	ucPortfolio "agrifin-backend/internal/usecase/portfolio"

	"github.com/labstack/echo/v4"
)

// ReviewHandler serves the MFI officer endpoints: the review queue, status
// transitions, and the portfolio dashboard.
type ReviewHandler struct {
	uc        *ucApplication.Usecase
	portfolio *ucPortfolio.Usecase
}

func NewReviewHandler(uc *ucApplication.Usecase, portfolio *ucPortfolio.Usecase) *ReviewHandler {
	return &ReviewHandler{uc: uc, portfolio: portfolio}
}

func (h *ReviewHandler) ListApplications(c echo.Context) error {
	status := domain.Status(c.QueryParam("status"))
	if status != "" && status != domain.StatusPending && !domain.ValidReviewerStatus(status) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown status filter"})
	}
	dtos, err := h.uc.ListForReview(c.Request().Context(), status)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ReviewHandler) GetApplication(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id, 0)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type updateStatusReq struct {
	Status         string   `json:"status" validate:"required"`
	Note           string   `json:"note"`
	Amount         *float64 `json:"amount"          validate:"omitempty,gt=0,dec2"`
	InterestRate   *float64 `json:"interest_rate"   validate:"omitempty,gt=0,lte=1"`
	DurationMonths *int     `json:"duration_months" validate:"omitempty,gte=1,lte=120"`
}

func (h *ReviewHandler) UpdateStatus(c echo.Context) error {
	reviewerID := actorID(c)
	if reviewerID == 0 {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing " + ActorHeader + " header"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Transition(c.Request().Context(), ucApplication.TransitionInput{
		ApplicationID:  id,
		Target:         domain.Status(req.Status),
		Note:           req.Note,
		ReviewerID:     reviewerID,
		Amount:         req.Amount,
		InterestRate:   req.InterestRate,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type reviewDecisionReq struct {
	Decision       string   `json:"decision" validate:"required,oneof=approve reject"`
	Note           string   `json:"note"`
	Amount         *float64 `json:"amount"          validate:"omitempty,gt=0,dec2"`
	InterestRate   *float64 `json:"interest_rate"   validate:"omitempty,gt=0,lte=1"`
	DurationMonths *int     `json:"duration_months" validate:"omitempty,gte=1,lte=120"`
}

// Review is the approve/reject shortcut the MFI dashboard uses.
func (h *ReviewHandler) Review(c echo.Context) error {
	reviewerID := actorID(c)
	if reviewerID == 0 {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing " + ActorHeader + " header"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	var req reviewDecisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	target := domain.StatusRejected
	if req.Decision == "approve" {
		target = domain.StatusApproved
	}
	dto, err := h.uc.Transition(c.Request().Context(), ucApplication.TransitionInput{
		ApplicationID:  id,
		Target:         target,
		Note:           req.Note,
		ReviewerID:     reviewerID,
		Amount:         req.Amount,
		InterestRate:   req.InterestRate,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReviewHandler) Portfolio(c echo.Context) error {
	s, err := h.portfolio.Summary(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
