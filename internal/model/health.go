package model

import (
    "encoding/json"
    "time"
)

// HealthInput is one submission of physical health data in
// `physical_health_inputs`.  Numeric measurements are optional and map to
// NULL when absent.  Symptoms is stored as a JSON array of strings and
// LifestyleFactors as arbitrary JSON (NULL when nil).
type HealthInput struct {
    ID                     uint64
    UserID                 uint64
    Age                    *int
    Gender                 *string
    Height                 *float64
    Weight                 *float64
    BloodPressureSystolic  *int
    BloodPressureDiastolic *int
    CholesterolLevel       *float64
    BloodSugarLevel        *float64
    Symptoms               []string
    FamilyHistory          *string
    LifestyleFactors       any
}

// DiseasePrediction is a stored result of the disease service.  Result is
// the full service response and is what last-prediction returns.
type DiseasePrediction struct {
    ID                uint64          `json:"id"`
    UserID            uint64          `json:"-"`
    HealthInputID     uint64          `json:"health_input_id"`
    PredictedDiseases any             `json:"predicted_diseases"`
    RiskLevel         string          `json:"risk_level"`
    ConfidenceScore   float64         `json:"confidence_score"`
    Result            json.RawMessage `json:"result"`
    CreatedAt         time.Time       `json:"created_at"`
}
