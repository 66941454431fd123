package predictor

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/saniya-gs/health-recommendation-system/internal/model"
)

// MentalHealthClient calls the mental-health assessment service.
type MentalHealthClient struct{ c client }

func NewMentalHealthClient(baseURL string, timeout time.Duration, log *zap.Logger) *MentalHealthClient {
	return &MentalHealthClient{c: newClient("mental-health", baseURL, timeout, log)}
}

// Questions returns the question set exactly as the service shapes it.
func (m *MentalHealthClient) Questions(ctx context.Context) (any, error) {
	var out any
	if err := m.c.do(ctx, http.MethodGet, "/questions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MentalHealthClient) Score(ctx context.Context, responses []model.QuizResponse) (Score, error) {
	if responses == nil {
		responses = []model.QuizResponse{}
	}
	var out Score
	err := m.c.do(ctx, http.MethodPost, "/score", map[string]any{"responses": responses}, &out)
	return out, err
}

func (m *MentalHealthClient) Recommendations(ctx context.Context, score Score) (Result, error) {
	var out Result
	if err := m.c.do(ctx, http.MethodPost, "/recommendations", score, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = Result{}
	}
	return out, nil
}

func (m *MentalHealthClient) AnalyzeSentiment(ctx context.Context, text string) (Result, error) {
	var out Result
	if err := m.c.do(ctx, http.MethodPost, "/sentiment", map[string]string{"text": text}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = Result{}
	}
	return out, nil
}
