package predictor

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DiseaseClient calls the disease prediction service.
type DiseaseClient struct{ c client }

func NewDiseaseClient(baseURL string, timeout time.Duration, log *zap.Logger) *DiseaseClient {
	return &DiseaseClient{c: newClient("disease", baseURL, timeout, log)}
}

// PredictDisease posts the symptom list and returns the prediction with its
// recommendations.  A result carrying an "error" key is returned as is.
func (d *DiseaseClient) PredictDisease(ctx context.Context, symptoms []string) (Result, error) {
	if symptoms == nil {
		symptoms = []string{}
	}
	var out Result
	err := d.c.do(ctx, http.MethodPost, "/predict", map[string]any{"symptoms": symptoms}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = Result{}
	}
	return out, nil
}
