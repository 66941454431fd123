// Package predictor talks to the disease, mental-health and fitness
// prediction services.  The services are opaque: they take plain JSON and
// return plain JSON objects, which callers receive as a Result.
package predictor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/saniya-gs/health-recommendation-system/internal/model"
)

// DiseasePredictor scores a symptom list.
type DiseasePredictor interface {
	PredictDisease(ctx context.Context, symptoms []string) (Result, error)
}

// MentalHealthAssessor runs the mental-health quiz and text sentiment.
type MentalHealthAssessor interface {
	Questions(ctx context.Context) (any, error)
	Score(ctx context.Context, responses []model.QuizResponse) (Score, error)
	Recommendations(ctx context.Context, score Score) (Result, error)
	AnalyzeSentiment(ctx context.Context, text string) (Result, error)
}

// FitnessRecommender builds diet and exercise plans from a profile.
type FitnessRecommender interface {
	Recommend(ctx context.Context, profile map[string]any) (Result, error)
}

// Score is the quiz score computed by the mental-health service.  Total is
// stored; Categories is whatever the service returned and is handed back to
// it unchanged when asking for recommendations.
type Score struct {
	Total      float64         `json:"total_score"`
	Categories json.RawMessage `json:"category_scores"`
}

// ServiceError is returned when a prediction service answers with a
// non-2xx status.
type ServiceError struct {
	Service string
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service: status %d: %s", e.Service, e.Status, e.Message)
}

var (
	_ DiseasePredictor     = (*DiseaseClient)(nil)
	_ MentalHealthAssessor = (*MentalHealthClient)(nil)
	_ FitnessRecommender   = (*FitnessClient)(nil)
)
