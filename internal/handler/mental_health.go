package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/saniya-gs/health-recommendation-system/internal/metrics"
	"github.com/saniya-gs/health-recommendation-system/internal/model"
	"github.com/saniya-gs/health-recommendation-system/internal/predictor"
	q "github.com/saniya-gs/health-recommendation-system/internal/queue"
	"github.com/saniya-gs/health-recommendation-system/internal/repository"
	"github.com/saniya-gs/health-recommendation-system/internal/service"
)

// MentalHealthHandler serves /api/mental-health.
type MentalHealthHandler struct {
	Repo     *repository.MentalHealthRepo
	Assessor predictor.MentalHealthAssessor
	Events   service.EventPublisher
	Log      *zap.Logger
}

func NewMentalHealthHandler(repo *repository.MentalHealthRepo, a predictor.MentalHealthAssessor, events service.EventPublisher, log *zap.Logger) *MentalHealthHandler {
	if repo == nil || a == nil {
		panic("nil dependency passed to NewMentalHealthHandler")
	}
	if events == nil {
		events = service.NopPublisher{}
	}
	return &MentalHealthHandler{Repo: repo, Assessor: a, Events: events, Log: log}
}

// Questions handles GET /api/mental-health/questions.  The question set is
// returned exactly as the assessment service shapes it.
func (h *MentalHealthHandler) Questions(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return unauthenticated(c)
	}
	qs, err := h.Assessor.Questions(c.Request().Context())
	if err != nil {
		h.Log.Error("load questions failed", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "could not load questions")
	}
	return c.JSON(http.StatusOK, qs)
}

type submitQuizReq struct {
	Responses []model.QuizResponse `json:"responses"`
}

// SubmitQuiz handles POST /api/mental-health/submit-quiz: score, get
// recommendations, then store every answer and the assessment together.
func (h *MentalHealthHandler) SubmitQuiz(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}
	var req submitQuizReq
	if err := decodeJSON(c, &req); err != nil {
		return invalidBody(c)
	}
	if req.Responses == nil {
		req.Responses = []model.QuizResponse{}
	}
	ctx := c.Request().Context()

	score, err := h.Assessor.Score(ctx, req.Responses)
	if err != nil {
		metrics.ObservePrediction(metrics.KindQuiz, "error")
		h.Log.Error("quiz scoring failed", zap.Error(err), zap.Uint64("user_id", userID))
		return errorJSON(c, http.StatusInternalServerError, "could not score quiz")
	}
	result, err := h.Assessor.Recommendations(ctx, score)
	if err != nil {
		metrics.ObservePrediction(metrics.KindQuiz, "error")
		h.Log.Error("quiz recommendations failed", zap.Error(err), zap.Uint64("user_id", userID))
		return errorJSON(c, http.StatusInternalServerError, "could not build recommendations")
	}

	risk := result.StringPtr("risk_level")
	id, err := h.Repo.SaveQuiz(ctx, userID, req.Responses, score.Total, risk, result["recommendations"])
	if err != nil {
		metrics.ObservePrediction(metrics.KindQuiz, "error")
		h.Log.Error("save quiz failed", zap.Error(err), zap.Uint64("user_id", userID))
		return errorJSON(c, http.StatusInternalServerError, "DB error while saving mental health results")
	}
	metrics.ObservePrediction(metrics.KindQuiz, "ok")
	riskText := ""
	if risk != nil {
		riskText = *risk
	}
	publishEvent(ctx, h.Events, h.Log, q.EventAssessmentRecorded, userID, id, riskText)

	return c.JSON(http.StatusOK, result)
}

type analyzeTextReq struct {
	Text string `json:"text"`
}

// AnalyzeText handles POST /api/mental-health/analyze-text.  Nothing is
// stored.
func (h *MentalHealthHandler) AnalyzeText(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return unauthenticated(c)
	}
	var req analyzeTextReq
	if err := decodeJSON(c, &req); err != nil {
		return invalidBody(c)
	}
	res, err := h.Assessor.AnalyzeSentiment(c.Request().Context(), req.Text)
	if err != nil {
		metrics.ObservePrediction(metrics.KindSentiment, "error")
		h.Log.Error("sentiment analysis failed", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "could not analyze text")
	}
	metrics.ObservePrediction(metrics.KindSentiment, "ok")
	return c.JSON(http.StatusOK, res)
}

// ListAssessments handles GET /api/mental-health/assessments?limit=N.
func (h *MentalHealthHandler) ListAssessments(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}
	items, err := h.Repo.ListAssessments(c.Request().Context(), userID, listLimit(c))
	if err != nil {
		h.Log.Error("list assessments failed", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"assessments": items})
}
