package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saniya-gs/health-recommendation-system/internal/model"
)

// MentalHealthRepo stores quiz answers and the assessments computed from
// them.
type MentalHealthRepo struct {
	db *sql.DB
}

func NewMentalHealthRepo(db *sql.DB) *MentalHealthRepo { return &MentalHealthRepo{db: db} }

// SaveQuiz writes every response row and the assessment row in a single
// transaction and returns the assessment ID.  recommendations is encoded as
// JSON (NULL when nil).
func (r *MentalHealthRepo) SaveQuiz(ctx context.Context, userID uint64, responses []model.QuizResponse,
	totalScore float64, riskLevel *string, recommendations any) (uint64, error) {
	recs, err := jsonColumn(recommendations)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	for i, resp := range responses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mental_health_responses (user_id, question_id, answer, score)
			 VALUES (?, ?, ?, ?)`,
			userID, resp.QuestionID, resp.Answer, resp.Score); err != nil {
			return 0, fmt.Errorf("insert response %d: %w", i, err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO mental_health_assessments
		 (user_id, total_score, assessment_type, risk_level, recommendations)
		 VALUES (?, ?, ?, ?, ?)`,
		userID, totalScore, model.AssessmentTypeGeneral, riskLevel, recs)
	if err != nil {
		return 0, fmt.Errorf("insert assessment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListAssessments returns up to limit assessments for the user, newest first.
func (r *MentalHealthRepo) ListAssessments(ctx context.Context, userID uint64, limit int) ([]model.Assessment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, total_score, assessment_type, risk_level, recommendations, created_at
		 FROM mental_health_assessments
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Assessment{}
	for rows.Next() {
		var (
			a    model.Assessment
			risk sql.NullString
			recs []byte
		)
		if err := rows.Scan(&a.ID, &a.TotalScore, &a.AssessmentType, &risk, &recs, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.UserID = userID
		if risk.Valid {
			a.RiskLevel = &risk.String
		}
		a.Recommendations = rawJSON(recs)
		out = append(out, a)
	}
	return out, rows.Err()
}
