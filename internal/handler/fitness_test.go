package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saniya-gs/health-recommendation-system/internal/model"
	"github.com/saniya-gs/health-recommendation-system/internal/predictor"
	q "github.com/saniya-gs/health-recommendation-system/internal/queue"
	"github.com/saniya-gs/health-recommendation-system/internal/repository"
)

func newFitnessHandler(t *testing.T, r *fakeRecommender) (*FitnessHandler, sqlmock.Sqlmock, *recordingPublisher) {
	db, mock := newMockDB(t)
	pub := &recordingPublisher{}
	return NewFitnessHandler(repository.NewFitnessRepo(db), r, pub, zap.NewNop()), mock, pub
}

func TestCreateFitnessProfile(t *testing.T) {
	h, mock, _ := newFitnessHandler(t, &fakeRecommender{})
	mock.ExpectExec("INSERT INTO fitness_profiles").
		WithArgs(testUserID, 30, "female", 165.5, nil, "active",
			`["strength","endurance"]`, nil, `["vegan"]`).
		WillReturnResult(sqlmock.NewResult(9, 1))

	c, rec := newCtx(http.MethodPost, "/api/fitness/profile", `{
		"age": 30, "gender": "female", "height": 165.5, "activity_level": "active",
		"fitness_goals": ["strength","endurance"], "dietary_restrictions": ["vegan"]
	}`, testUserID)
	require.NoError(t, h.CreateProfile(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"profile_id":9,"message":"Fitness profile created"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFitnessRecommendationsStorePlans(t *testing.T) {
	r := &fakeRecommender{result: predictor.Result{
		"diet_plan": map[string]any{
			"daily_calories": float64(2000),
			"macronutrients": map[string]any{"protein": float64(150)},
		},
		"exercise_plan": map[string]any{
			"exercises":          []any{"squat"},
			"duration_minutes":   float64(45),
			"intensity":          "high",
			"frequency_per_week": float64(4),
		},
	}}
	h, mock, pub := newFitnessHandler(t, r)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO diet_plans").
		WithArgs(testUserID, 4, model.DietPlanName, model.DietPlanType, 2000.0, `{"protein":150}`, nil, 4).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec("INSERT INTO exercise_routines").
		WithArgs(testUserID, 4, model.ExerciseRoutineName, model.ExerciseRoutineType, `["squat"]`, 45, "high", 4).
		WillReturnResult(sqlmock.NewResult(13, 1))
	mock.ExpectCommit()

	c, rec := newCtx(http.MethodPost, "/api/fitness/recommendations",
		`{"profile_id":"4","goal":"strength"}`, testUserID)
	require.NoError(t, h.Recommendations(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "strength", r.got["goal"])
	require.Len(t, pub.events, 1)
	assert.Equal(t, q.EventFitnessPlanGenerated, pub.events[0].Type)
	assert.Equal(t, uint64(12), pub.events[0].RecordID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFitnessRecommendationsServiceFailure(t *testing.T) {
	h, mock, _ := newFitnessHandler(t, &fakeRecommender{err: errors.New("boom")})

	c, rec := newCtx(http.MethodPost, "/api/fitness/recommendations", `{}`, testUserID)
	require.NoError(t, h.Recommendations(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Error generating recommendations: boom"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFitnessRecommendationsSaveFailure(t *testing.T) {
	h, mock, pub := newFitnessHandler(t, &fakeRecommender{result: predictor.Result{}})
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO diet_plans").WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	c, rec := newCtx(http.MethodPost, "/api/fitness/recommendations", `{"profile_id":77}`, testUserID)
	require.NoError(t, h.Recommendations(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"DB error while saving fitness recommendations"}`, rec.Body.String())
	assert.Empty(t, pub.events)
}

func TestBuildPlansDefaults(t *testing.T) {
	diet, routine := buildPlans(predictor.Result{}, testUserID, nil)

	assert.Equal(t, model.DefaultDietWeeks, diet.DurationWeeks)
	assert.Equal(t, model.DietPlanName, diet.PlanName)
	assert.Nil(t, diet.DailyCalories)
	assert.Nil(t, diet.Macronutrients)
	assert.Nil(t, diet.FitnessProfileID)
	assert.Equal(t, model.ExerciseRoutineType, routine.RoutineType)
	assert.Nil(t, routine.DifficultyLevel)
	assert.Nil(t, routine.Exercises)
}

func TestProfileIDFrom(t *testing.T) {
	assert.Nil(t, profileIDFrom(map[string]any{}))
	assert.Nil(t, profileIDFrom(map[string]any{"profile_id": float64(0)}))
	assert.Nil(t, profileIDFrom(map[string]any{"profile_id": "abc"}))
	require.NotNil(t, profileIDFrom(map[string]any{"profile_id": "8"}))
	assert.Equal(t, uint64(8), *profileIDFrom(map[string]any{"profile_id": float64(8)}))
}
