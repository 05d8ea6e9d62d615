package http

import (
	"net/http"

	domain "agrifin-backend/internal/domain/application"
	ucApplication "agrifin-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
)

// ApplicationHandler serves the farmer-facing endpoints.
type ApplicationHandler struct{ uc *ucApplication.Usecase }

func NewApplicationHandler(uc *ucApplication.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type submitApplicationReq struct {
	Age             int     `json:"age"                   validate:"required,gte=18,lte=100"`
	AnnualIncome    float64 `json:"annual_income"         validate:"gte=0,dec2"`
	CreditScore     int     `json:"credit_score"          validate:"gte=0"`
	AmountRequested float64 `json:"loan_amount_requested" validate:"required,gt=0,dec2"`
	DurationMonths  int     `json:"loan_duration_months"  validate:"required,gte=1,lte=120"`

	EmploymentStatus string `json:"employment_status"`
	EducationLevel   string `json:"education_level"`
	MaritalStatus    string `json:"marital_status"`
	LoanPurpose      string `json:"loan_purpose"`

	FarmingActivity       string   `json:"farming_crops_or_activity"`
	FarmingLandHectares   *float64 `json:"farming_land_size_hectares"`
	FarmingSeason         string   `json:"farming_season"`
	FarmingEstimatedYield *float64 `json:"farming_estimated_yield"`
	FarmingLivestock      string   `json:"farming_livestock"`
	FarmingNotes          string   `json:"farming_notes"`

	Language string `json:"language" validate:"lang"`
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	userID := actorID(c)
	if userID == 0 {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing " + ActorHeader + " header"})
	}
	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Submit(c.Request().Context(), ucApplication.SubmitInput{
		UserID:                userID,
		Age:                   req.Age,
		AnnualIncome:          req.AnnualIncome,
		CreditScore:           req.CreditScore,
		AmountRequested:       req.AmountRequested,
		DurationMonths:        req.DurationMonths,
		EmploymentStatus:      req.EmploymentStatus,
		EducationLevel:        req.EducationLevel,
		MaritalStatus:         req.MaritalStatus,
		LoanPurpose:           req.LoanPurpose,
		FarmingActivity:       req.FarmingActivity,
		FarmingLandHectares:   req.FarmingLandHectares,
		FarmingSeason:         req.FarmingSeason,
		FarmingEstimatedYield: req.FarmingEstimatedYield,
		FarmingLivestock:      req.FarmingLivestock,
		FarmingNotes:          req.FarmingNotes,
		Language:              req.Language,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) ListMine(c echo.Context) error {
	userID := actorID(c)
	if userID == 0 {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing " + ActorHeader + " header"})
	}
	dtos, err := h.uc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ApplicationHandler) GetMine(c echo.Context) error {
	userID := actorID(c)
	if userID == 0 {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing " + ActorHeader + " header"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id, userID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type uploadDocumentReq struct {
	DocumentType string `json:"document_type" validate:"required,doctype"`
	FileName     string `json:"file_name"     validate:"required"`
	FilePath     string `json:"file_path"`
}

func (h *ApplicationHandler) UploadDocument(c echo.Context) error {
	userID := actorID(c)
	if userID == 0 {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing " + ActorHeader + " header"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application id"})
	}
	var req uploadDocumentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.UpsertDocument(c.Request().Context(), ucApplication.UpsertDocumentInput{
		ApplicationID: id,
		UserID:        userID,
		DocumentType:  domain.DocumentType(req.DocumentType),
		FileName:      req.FileName,
		FilePath:      req.FilePath,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) ListMyLoans(c echo.Context) error {
	userID := actorID(c)
	if userID == 0 {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing " + ActorHeader + " header"})
	}
	dtos, err := h.uc.ListLoans(c.Request().Context(), userID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ApplicationHandler) ListMyRepayments(c echo.Context) error {
	userID := actorID(c)
	if userID == 0 {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing " + ActorHeader + " header"})
	}
	dtos, err := h.uc.ListRepayments(c.Request().Context(), userID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
