package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/saniya-gs/health-recommendation-system/internal/model"
)

// HealthRepo stores physical health inputs and the disease predictions
// derived from them.
type HealthRepo struct {
	db *sql.DB
}

func NewHealthRepo(db *sql.DB) *HealthRepo { return &HealthRepo{db: db} }

// CreateInput inserts a health input and returns its ID.  Symptoms are
// stored as a JSON array (never NULL); lifestyle factors as JSON or NULL.
func (r *HealthRepo) CreateInput(ctx context.Context, in *model.HealthInput) (uint64, error) {
	symptoms := in.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	symptomsJSON, err := jsonColumn(symptoms)
	if err != nil {
		return 0, err
	}
	lifestyle, err := jsonColumn(in.LifestyleFactors)
	if err != nil {
		return 0, err
	}
	const q = `INSERT INTO physical_health_inputs
	           (user_id, age, gender, height, weight, blood_pressure_systolic,
	            blood_pressure_diastolic, cholesterol_level, blood_sugar_level,
	            symptoms, family_history, lifestyle_factors)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		in.UserID, in.Age, in.Gender, in.Height, in.Weight,
		in.BloodPressureSystolic, in.BloodPressureDiastolic,
		in.CholesterolLevel, in.BloodSugarLevel,
		symptomsJSON, in.FamilyHistory, lifestyle)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	in.ID = uint64(id)
	return in.ID, nil
}

// CreatePrediction stores a disease prediction.  Result must hold the full
// service response; it is returned verbatim by LatestResult.
func (r *HealthRepo) CreatePrediction(ctx context.Context, p *model.DiseasePrediction) (uint64, error) {
	predicted, err := json.Marshal(p.PredictedDiseases)
	if err != nil {
		return 0, fmt.Errorf("encode predicted diseases: %w", err)
	}
	const q = `INSERT INTO disease_predictions
	           (user_id, health_input_id, predicted_diseases, risk_level,
	            confidence_score, recommendations)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		p.UserID, p.HealthInputID, string(predicted), p.RiskLevel,
		p.ConfidenceScore, string(p.Result))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	p.ID = uint64(id)
	return p.ID, nil
}

// LatestResult returns the full stored result of the user's most recent
// prediction, or ErrNotFound.
func (r *HealthRepo) LatestResult(ctx context.Context, userID uint64) (json.RawMessage, error) {
	var b []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT recommendations FROM disease_predictions
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		userID).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rawJSON(b), nil
}

// ListPredictions returns up to limit predictions for the user, newest first.
func (r *HealthRepo) ListPredictions(ctx context.Context, userID uint64, limit int) ([]model.DiseasePrediction, error) {
	const q = `SELECT id, health_input_id, predicted_diseases, risk_level,
	                  confidence_score, recommendations, created_at
	           FROM disease_predictions
	           WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.DiseasePrediction{}
	for rows.Next() {
		var (
			p         model.DiseasePrediction
			predicted []byte
			result    []byte
		)
		if err := rows.Scan(&p.ID, &p.HealthInputID, &predicted, &p.RiskLevel,
			&p.ConfidenceScore, &result, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.UserID = userID
		if predicted != nil {
			p.PredictedDiseases = rawJSON(predicted)
		}
		p.Result = rawJSON(result)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
