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

// FitnessHandler serves /api/fitness.
type FitnessHandler struct {
	Repo        *repository.FitnessRepo
	Recommender predictor.FitnessRecommender
	Events      service.EventPublisher
	Log         *zap.Logger
}

func NewFitnessHandler(repo *repository.FitnessRepo, r predictor.FitnessRecommender, events service.EventPublisher, log *zap.Logger) *FitnessHandler {
	if repo == nil || r == nil {
		panic("nil dependency passed to NewFitnessHandler")
	}
	if events == nil {
		events = service.NopPublisher{}
	}
	return &FitnessHandler{Repo: repo, Recommender: r, Events: events, Log: log}
}

type fitnessProfileReq struct {
	Age                 *int     `json:"age"`
	Gender              *string  `json:"gender"`
	Height              *float64 `json:"height"`
	Weight              *float64 `json:"weight"`
	ActivityLevel       *string  `json:"activity_level"`
	FitnessGoals        any      `json:"fitness_goals"`
	MedicalConditions   any      `json:"medical_conditions"`
	DietaryRestrictions any      `json:"dietary_restrictions"`
}

// CreateProfile handles POST /api/fitness/profile.
func (h *FitnessHandler) CreateProfile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}
	var req fitnessProfileReq
	if err := decodeJSON(c, &req); err != nil {
		return invalidBody(c)
	}
	p := &model.FitnessProfile{
		UserID:              userID,
		Age:                 req.Age,
		Gender:              req.Gender,
		Height:              req.Height,
		Weight:              req.Weight,
		ActivityLevel:       req.ActivityLevel,
		FitnessGoals:        textOrJSON(req.FitnessGoals),
		MedicalConditions:   req.MedicalConditions,
		DietaryRestrictions: req.DietaryRestrictions,
	}
	id, err := h.Repo.CreateProfile(c.Request().Context(), p)
	if err != nil {
		h.Log.Error("create fitness profile failed", zap.Error(err), zap.Uint64("user_id", userID))
		return errorJSON(c, http.StatusInternalServerError, "DB error while creating fitness profile")
	}
	return c.JSON(http.StatusOK, echo.Map{"profile_id": id, "message": "Fitness profile created"})
}

// Recommendations handles POST /api/fitness/recommendations.  The body is
// forwarded to the recommender untouched; the returned diet and exercise
// plans are stored against the optional profile_id.
func (h *FitnessHandler) Recommendations(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}
	body := map[string]any{}
	if err := decodeJSON(c, &body); err != nil {
		return invalidBody(c)
	}
	ctx := c.Request().Context()

	recs, err := h.Recommender.Recommend(ctx, body)
	if err != nil {
		metrics.ObservePrediction(metrics.KindFitness, "error")
		h.Log.Error("fitness recommendation failed", zap.Error(err), zap.Uint64("user_id", userID))
		return errorJSON(c, http.StatusInternalServerError, "Error generating recommendations: "+err.Error())
	}

	profileID := profileIDFrom(body)
	diet, routine := buildPlans(recs, userID, profileID)
	if err := h.Repo.SavePlans(ctx, diet, routine); err != nil {
		metrics.ObservePrediction(metrics.KindFitness, "error")
		h.Log.Error("save fitness plans failed", zap.Error(err), zap.Uint64("user_id", userID))
		return errorJSON(c, http.StatusInternalServerError, "DB error while saving fitness recommendations")
	}
	metrics.ObservePrediction(metrics.KindFitness, "ok")
	publishEvent(ctx, h.Events, h.Log, q.EventFitnessPlanGenerated, userID, diet.ID, "")

	return c.JSON(http.StatusOK, recs)
}

// profileIDFrom reads a positive profile_id given as a number or numeric
// string.
func profileIDFrom(body map[string]any) *uint64 {
	n := predictor.Result(body).IntPtr("profile_id")
	if n == nil || *n <= 0 {
		return nil
	}
	id := uint64(*n)
	return &id
}

// buildPlans maps the recommender's diet_plan and exercise_plan objects to
// rows.  Missing objects produce rows with only the default names.
func buildPlans(recs predictor.Result, userID uint64, profileID *uint64) (*model.DietPlan, *model.ExerciseRoutine) {
	dp := recs.Object("diet_plan")
	ep := recs.Object("exercise_plan")

	weeks := model.DefaultDietWeeks
	if n := dp.IntPtr("duration_weeks"); n != nil {
		weeks = *n
	}
	diet := &model.DietPlan{
		UserID:           userID,
		FitnessProfileID: profileID,
		PlanName:         model.DietPlanName,
		PlanType:         model.DietPlanType,
		DailyCalories:    dp.FloatPtr("daily_calories"),
		Macronutrients:   dp["macronutrients"],
		MealPlan:         dp["meal_plan"],
		DurationWeeks:    weeks,
	}
	routine := &model.ExerciseRoutine{
		UserID:           userID,
		FitnessProfileID: profileID,
		RoutineName:      model.ExerciseRoutineName,
		RoutineType:      model.ExerciseRoutineType,
		Exercises:        ep["exercises"],
		DurationMinutes:  ep.IntPtr("duration_minutes"),
		DifficultyLevel:  ep.StringPtr("intensity"),
		FrequencyPerWeek: ep.IntPtr("frequency_per_week"),
	}
	return diet, routine
}
