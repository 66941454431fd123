package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saniya-gs/health-recommendation-system/internal/predictor"
	q "github.com/saniya-gs/health-recommendation-system/internal/queue"
	"github.com/saniya-gs/health-recommendation-system/internal/repository"
)

func newDiseaseHandler(t *testing.T, p *fakeDisease) (*DiseaseHandler, sqlmock.Sqlmock, *recordingPublisher) {
	db, mock := newMockDB(t)
	pub := &recordingPublisher{}
	return NewDiseaseHandler(repository.NewHealthRepo(db), p, pub, zap.NewNop()), mock, pub
}

func TestNormalizeSymptoms(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []string
	}{
		{"list", []any{"fever", "cough"}, []string{"fever", "cough"}},
		{"list with numbers", []any{"fever", float64(3), true}, []string{"fever", "3", "true"}},
		{"comma string", " fever, ,cough ,", []string{"fever", "cough"}},
		{"nil", nil, []string{}},
		{"number", float64(12), []string{}},
		{"object", map[string]any{"a": "b"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeSymptoms(tc.in))
		})
	}
}

func TestPredictDiseaseStoresInputAndResult(t *testing.T) {
	p := &fakeDisease{result: predictor.Result{
		"predicted_disease": "Flu",
		"risk_level":        "high",
		"confidence_score":  0.8,
		"recommendations":   []any{"rest"},
	}}
	h, mock, pub := newDiseaseHandler(t, p)

	mock.ExpectExec("INSERT INTO physical_health_inputs").
		WithArgs(testUserID, 40, "male", nil, nil, 120, nil, nil, nil,
			`["fever","cough"]`, "diabetes", `{"smoker":false}`).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO disease_predictions").
		WithArgs(testUserID, 11, `"Flu"`, "high", 0.8, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(21, 1))

	c, rec := newCtx(http.MethodPost, "/api/health/predict-disease", `{
		"age": 40, "gender": "male", "bp_systolic": 120,
		"symptoms": "fever, cough", "family_history": "diabetes",
		"lifestyle_factors": {"smoker": false}
	}`, testUserID)
	require.NoError(t, h.PredictDisease(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"predicted_disease":"Flu","risk_level":"high","confidence_score":0.8,"recommendations":["rest"]}`,
		rec.Body.String())
	assert.Equal(t, []string{"fever", "cough"}, p.gotArgs)
	require.Len(t, pub.events, 1)
	assert.Equal(t, q.EventDiseasePredicted, pub.events[0].Type)
	assert.Equal(t, uint64(21), pub.events[0].RecordID)
	assert.Equal(t, "high", pub.events[0].RiskLevel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictDiseaseDefaultsRiskAndConfidence(t *testing.T) {
	p := &fakeDisease{result: predictor.Result{"predicted_disease": []any{"A", "B"}}}
	h, mock, _ := newDiseaseHandler(t, p)

	mock.ExpectExec("INSERT INTO physical_health_inputs").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO disease_predictions").
		WithArgs(testUserID, 1, `["A","B"]`, "medium", 0.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	c, rec := newCtx(http.MethodPost, "/api/health/predict-disease", `{"symptoms":["a"]}`, testUserID)
	require.NoError(t, h.PredictDisease(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictDiseaseInputSaveFails(t *testing.T) {
	p := &fakeDisease{}
	h, mock, _ := newDiseaseHandler(t, p)
	mock.ExpectExec("INSERT INTO physical_health_inputs").WillReturnError(errors.New("disk full"))

	c, rec := newCtx(http.MethodPost, "/api/health/predict-disease", `{"symptoms":["a"]}`, testUserID)
	require.NoError(t, h.PredictDisease(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"DB error while saving health input"}`, rec.Body.String())
	assert.False(t, p.called)
}

func TestPredictDiseaseResultError(t *testing.T) {
	p := &fakeDisease{result: predictor.Result{"error": "No symptoms provided"}}
	h, mock, pub := newDiseaseHandler(t, p)
	mock.ExpectExec("INSERT INTO physical_health_inputs").WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := newCtx(http.MethodPost, "/api/health/predict-disease", `{}`, testUserID)
	require.NoError(t, h.PredictDisease(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No symptoms provided"}`, rec.Body.String())
	assert.Empty(t, pub.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictDiseaseNullErrorIsRejection(t *testing.T) {
	p := &fakeDisease{result: predictor.Result{"error": nil, "risk_level": "low"}}
	h, mock, pub := newDiseaseHandler(t, p)
	mock.ExpectExec("INSERT INTO physical_health_inputs").WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := newCtx(http.MethodPost, "/api/health/predict-disease", `{"symptoms":"fever"}`, testUserID)
	require.NoError(t, h.PredictDisease(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":null}`, rec.Body.String())
	assert.Empty(t, pub.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictDiseaseServiceErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"client error", &predictor.ServiceError{Service: "disease", Status: 422, Message: "bad symptoms"}, http.StatusBadRequest},
		{"server error", &predictor.ServiceError{Service: "disease", Status: 503, Message: "down"}, http.StatusInternalServerError},
		{"transport", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, mock, _ := newDiseaseHandler(t, &fakeDisease{err: tc.err})
			mock.ExpectExec("INSERT INTO physical_health_inputs").WillReturnResult(sqlmock.NewResult(1, 1))

			c, rec := newCtx(http.MethodPost, "/api/health/predict-disease", `{"symptoms":"x"}`, testUserID)
			require.NoError(t, h.PredictDisease(c))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestPredictDiseaseInvalidBody(t *testing.T) {
	h, _, _ := newDiseaseHandler(t, &fakeDisease{})
	c, rec := newCtx(http.MethodPost, "/api/health/predict-disease", `{"age":"forty"}`, testUserID)
	require.NoError(t, h.PredictDisease(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
}

func TestPredictDiseaseRequiresUser(t *testing.T) {
	h, _, _ := newDiseaseHandler(t, &fakeDisease{})
	c, rec := newCtx(http.MethodPost, "/api/health/predict-disease", `{}`, 0)
	require.NoError(t, h.PredictDisease(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLastPrediction(t *testing.T) {
	h, mock, _ := newDiseaseHandler(t, &fakeDisease{})
	mock.ExpectQuery("SELECT recommendations FROM disease_predictions").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"recommendations"}).AddRow(`{"risk_level":"low"}`))

	c, rec := newCtx(http.MethodGet, "/api/health/last-prediction", "", testUserID)
	require.NoError(t, h.LastPrediction(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"risk_level":"low"}`, rec.Body.String())
}

func TestLastPredictionNone(t *testing.T) {
	h, mock, _ := newDiseaseHandler(t, &fakeDisease{})
	mock.ExpectQuery("SELECT recommendations FROM disease_predictions").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"recommendations"}))

	c, rec := newCtx(http.MethodGet, "/api/health/last-prediction", "", testUserID)
	require.NoError(t, h.LastPrediction(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"No previous predictions"}`, rec.Body.String())
}

func TestListPredictionsCapsLimit(t *testing.T) {
	h, mock, _ := newDiseaseHandler(t, &fakeDisease{})
	mock.ExpectQuery("FROM disease_predictions").
		WithArgs(testUserID, 100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "health_input_id", "predicted_diseases",
			"risk_level", "confidence_score", "recommendations", "created_at"}))

	c, rec := newCtx(http.MethodGet, "/api/health/predictions?limit=500", "", testUserID)
	require.NoError(t, h.ListPredictions(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"predictions":[]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
