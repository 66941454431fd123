package config

import "time"

// PredictorConfig locates the three prediction backends.
type PredictorConfig struct {
    DiseaseURL string
    MentalURL  string
    FitnessURL string
    Timeout    time.Duration
}

// LoadPredictorConfig reads the *_SERVICE_URL variables.  All three
// services default to one local process on port 8000 under distinct
// prefixes.
func LoadPredictorConfig() PredictorConfig {
    return PredictorConfig{
        DiseaseURL: envStr("DISEASE_SERVICE_URL", "http://localhost:8000/disease"),
        MentalURL:  envStr("MENTAL_HEALTH_SERVICE_URL", "http://localhost:8000/mental-health"),
        FitnessURL: envStr("FITNESS_SERVICE_URL", "http://localhost:8000/fitness"),
        Timeout:    envDur("PREDICTOR_TIMEOUT", 10*time.Second),
    }
}
