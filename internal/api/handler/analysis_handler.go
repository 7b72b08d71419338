package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reflectify/reflectify-api/internal/core/domain"
	"github.com/reflectify/reflectify-api/internal/core/ports"
)

// AnalysisHandler serves the emotion and expense analysis routes.
type AnalysisHandler struct {
	service ports.AnalysisService
}

func NewAnalysisHandler(service ports.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// Emotion analyses a journal entry and stores the result.
//
// @Summary      Analyse a journal entry
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      promptRequest  true  "Journal entry"
// @Success      201   {object}  emotionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/ai/emotion [post]
func (h *AnalysisHandler) Emotion(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req promptRequest
	if err := bindAndValidate(c, &req, domain.ErrPromptRequired); err != nil {
		return err
	}

	res, err := h.service.AnalyzeEmotion(c.Request().Context(), user.ID, req.Prompt)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, emotionResponse{
		Mood:        res.Report.Mood,
		Score:       res.Report.Score,
		Analysis:    res.Report.Analysis,
		MoodChanger: res.Report.MoodChanger,
		Message:     "Emotion analysis saved successfully!",
	})
}

// Expense returns the raw spending analysis text.
//
// @Summary      Analyse spending
// @Tags         ai
// @Accept       json
// @Produce      plain
// @Security     BearerAuth
// @Param        body  body      promptRequest  true  "Spending description"
// @Success      200   {string}  string
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/ai/expense [post]
func (h *AnalysisHandler) Expense(c echo.Context) error {
	var req promptRequest
	if err := bindAndValidate(c, &req, domain.ErrPromptRequired); err != nil {
		return err
	}

	text, err := h.service.AnalyzeExpense(c.Request().Context(), req.Prompt)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, text)
}

// History lists the caller's stored emotion analyses, newest first.
//
// @Summary      Emotion analysis history
// @Tags         ai
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of records (default 50, max 200)"
// @Success      200    {object}  historyResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /api/ai/emotion [get]
func (h *AnalysisHandler) History(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
	}

	records, err := h.service.EmotionHistory(c.Request().Context(), user.ID, limit)
	if err != nil {
		return err
	}
	if records == nil {
		records = []*domain.EmotionRecord{}
	}
	return c.JSON(http.StatusOK, historyResponse{Items: records, Count: len(records)})
}
