package router

import (
	"github.com/labstack/echo/v4"

	"github.com/saniya-gs/health-recommendation-system/internal/handler"
)

// RegisterHealth registers the physical-health endpoints.  All require a
// session.
func RegisterHealth(api *echo.Group, h *handler.DiseaseHandler, session echo.MiddlewareFunc) {
	g := api.Group("/health", session)
	g.POST("/predict-disease", h.PredictDisease)
	g.GET("/last-prediction", h.LastPrediction)
	g.GET("/predictions", h.ListPredictions)
}

// RegisterMentalHealth registers the quiz and sentiment endpoints.  The
// question set is identical for every user, so its response is cached
// after the session check has passed.
func RegisterMentalHealth(api *echo.Group, h *handler.MentalHealthHandler, session, cache echo.MiddlewareFunc) {
	g := api.Group("/mental-health", session)
	g.GET("/questions", h.Questions, cache)
	g.POST("/submit-quiz", h.SubmitQuiz)
	g.POST("/analyze-text", h.AnalyzeText)
	g.GET("/assessments", h.ListAssessments)
}

// RegisterFitness registers fitness profile and plan endpoints.
func RegisterFitness(api *echo.Group, h *handler.FitnessHandler, session echo.MiddlewareFunc) {
	g := api.Group("/fitness", session)
	g.POST("/profile", h.CreateProfile)
	g.POST("/recommendations", h.Recommendations)
}
