package predictor

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// FitnessClient calls the fitness recommendation service.
type FitnessClient struct{ c client }

func NewFitnessClient(baseURL string, timeout time.Duration, log *zap.Logger) *FitnessClient {
	return &FitnessClient{c: newClient("fitness", baseURL, timeout, log)}
}

// Recommend forwards the profile unchanged; the result carries diet_plan and
// exercise_plan objects.
func (f *FitnessClient) Recommend(ctx context.Context, profile map[string]any) (Result, error) {
	if profile == nil {
		profile = map[string]any{}
	}
	var out Result
	if err := f.c.do(ctx, http.MethodPost, "/recommendations", profile, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = Result{}
	}
	return out, nil
}
