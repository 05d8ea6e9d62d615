package http

import (
	"net/http"

	"agrifin-backend/internal/ml"
	ucScoring "agrifin-backend/internal/usecase/scoring"

	"github.com/labstack/echo/v4"
)

// ScoringHandler exposes the models for ad-hoc what-if scoring, without
// persisting anything. Unknown fields are ignored; missing ones fall back
// to the model defaults.
type ScoringHandler struct{ uc *ucScoring.Usecase }

func NewScoringHandler(uc *ucScoring.Usecase) *ScoringHandler {
	return &ScoringHandler{uc: uc}
}

// bindFields reads the free-form feature payload. The response language
// comes from the lang query param, falling back to a "language" field in
// the body.
func bindFields(c echo.Context) (ml.Fields, string, error) {
	fields := ml.Fields{}
	if err := c.Bind(&fields); err != nil {
		return nil, "", err
	}
	lang := c.QueryParam("lang")
	if lang == "" {
		lang = fields.Str("language", "")
	}
	delete(fields, "language")
	return fields, lang, nil
}

func (h *ScoringHandler) Eligibility(c echo.Context) error {
	fields, lang, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	res, err := h.uc.ScoreEligibility(c.Request().Context(), fields, lang)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ScoringHandler) Risk(c echo.Context) error {
	fields, lang, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	res, err := h.uc.ScoreRisk(c.Request().Context(), fields, lang)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ScoringHandler) RecommendAmount(c echo.Context) error {
	fields, lang, err := bindFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	res, err := h.uc.ScoreAmount(c.Request().Context(), fields, lang)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
