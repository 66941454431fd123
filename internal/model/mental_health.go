package model

import (
    "encoding/json"
    "time"
)

// QuizResponse is one answered question of the mental-health quiz.  A
// missing or null question_id/answer stays nil and is stored as NULL.
type QuizResponse struct {
    QuestionID  *FlexString `json:"question_id"`
    Answer      *FlexString `json:"answer"`
    AnswerIndex FlexNumber  `json:"answer_index"`
    Score       FlexNumber  `json:"score"`
}

// AssessmentTypeGeneral is the only assessment type the quiz produces.
const AssessmentTypeGeneral = "general"

// Assessment is a row of `mental_health_assessments`.
type Assessment struct {
    ID              uint64          `json:"id"`
    UserID          uint64          `json:"-"`
    TotalScore      float64         `json:"total_score"`
    AssessmentType  string          `json:"assessment_type"`
    RiskLevel       *string         `json:"risk_level"`
    Recommendations json.RawMessage `json:"recommendations"`
    CreatedAt       time.Time       `json:"created_at"`
}
