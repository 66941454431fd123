package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/saniya-gs/health-recommendation-system/internal/middleware"
	"github.com/saniya-gs/health-recommendation-system/internal/model"
	"github.com/saniya-gs/health-recommendation-system/internal/predictor"
	q "github.com/saniya-gs/health-recommendation-system/internal/queue"
)

const testUserID uint64 = 5

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// newCtx builds a request context.  userID 0 leaves the request anonymous.
func newCtx(method, target, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewRequestValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set(middleware.ContextUserID, userID)
	}
	return c, rec
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []q.HealthEvent
}

func (r *recordingPublisher) Publish(_ context.Context, ev q.HealthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

type fakeDisease struct {
	result  predictor.Result
	err     error
	called  bool
	gotArgs []string
}

func (f *fakeDisease) PredictDisease(_ context.Context, symptoms []string) (predictor.Result, error) {
	f.called = true
	f.gotArgs = symptoms
	return f.result, f.err
}

type fakeAssessor struct {
	questions any
	score     predictor.Score
	scoreErr  error
	recs      predictor.Result
	sentiment predictor.Result
	gotText   string
	gotScore  predictor.Score

	gotResponses []model.QuizResponse
}

func (f *fakeAssessor) Questions(context.Context) (any, error) { return f.questions, nil }

func (f *fakeAssessor) Score(_ context.Context, responses []model.QuizResponse) (predictor.Score, error) {
	f.gotResponses = responses
	return f.score, f.scoreErr
}

func (f *fakeAssessor) Recommendations(_ context.Context, s predictor.Score) (predictor.Result, error) {
	f.gotScore = s
	return f.recs, nil
}

func (f *fakeAssessor) AnalyzeSentiment(_ context.Context, text string) (predictor.Result, error) {
	f.gotText = text
	return f.sentiment, nil
}

type fakeRecommender struct {
	result predictor.Result
	err    error
	got    map[string]any
}

func (f *fakeRecommender) Recommend(_ context.Context, profile map[string]any) (predictor.Result, error) {
	f.got = profile
	return f.result, f.err
}
