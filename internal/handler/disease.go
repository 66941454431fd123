package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/saniya-gs/health-recommendation-system/internal/metrics"
	"github.com/saniya-gs/health-recommendation-system/internal/model"
	"github.com/saniya-gs/health-recommendation-system/internal/predictor"
	q "github.com/saniya-gs/health-recommendation-system/internal/queue"
	"github.com/saniya-gs/health-recommendation-system/internal/repository"
	"github.com/saniya-gs/health-recommendation-system/internal/service"
)

// DiseaseHandler serves the physical-health endpoints under /api/health.
type DiseaseHandler struct {
	Repo      *repository.HealthRepo
	Predictor predictor.DiseasePredictor
	Events    service.EventPublisher
	Log       *zap.Logger
}

func NewDiseaseHandler(repo *repository.HealthRepo, p predictor.DiseasePredictor, events service.EventPublisher, log *zap.Logger) *DiseaseHandler {
	if repo == nil || p == nil {
		panic("nil dependency passed to NewDiseaseHandler")
	}
	if events == nil {
		events = service.NopPublisher{}
	}
	return &DiseaseHandler{Repo: repo, Predictor: p, Events: events, Log: log}
}

type predictDiseaseReq struct {
	Age              *int     `json:"age"`
	Gender           *string  `json:"gender"`
	Height           *float64 `json:"height"`
	Weight           *float64 `json:"weight"`
	BPSystolic       *int     `json:"bp_systolic"`
	BPDiastolic      *int     `json:"bp_diastolic"`
	Cholesterol      *float64 `json:"cholesterol"`
	BloodSugar       *float64 `json:"blood_sugar"`
	Symptoms         any      `json:"symptoms"`
	FamilyHistory    any      `json:"family_history"`
	LifestyleFactors any      `json:"lifestyle_factors"`
}

// normalizeSymptoms accepts a JSON array (elements rendered as text) or a
// comma separated string.  Anything else yields an empty list.
func normalizeSymptoms(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []any:
		for _, s := range t {
			out = append(out, jsonText(s))
		}
	case string:
		for _, s := range strings.Split(t, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// PredictDisease handles POST /api/health/predict-disease.  The input row
// is stored before the service is called so a failed prediction still
// leaves the submitted measurements on record.
func (h *DiseaseHandler) PredictDisease(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}
	var req predictDiseaseReq
	if err := decodeJSON(c, &req); err != nil {
		return invalidBody(c)
	}
	ctx := c.Request().Context()

	in := &model.HealthInput{
		UserID:                 userID,
		Age:                    req.Age,
		Gender:                 req.Gender,
		Height:                 req.Height,
		Weight:                 req.Weight,
		BloodPressureSystolic:  req.BPSystolic,
		BloodPressureDiastolic: req.BPDiastolic,
		CholesterolLevel:       req.Cholesterol,
		BloodSugarLevel:        req.BloodSugar,
		Symptoms:               normalizeSymptoms(req.Symptoms),
		FamilyHistory:          textOrJSON(req.FamilyHistory),
		LifestyleFactors:       req.LifestyleFactors,
	}
	inputID, err := h.Repo.CreateInput(ctx, in)
	if err != nil {
		h.Log.Error("save health input failed", zap.Error(err), zap.Uint64("user_id", userID))
		return errorJSON(c, http.StatusInternalServerError, "DB error while saving health input")
	}

	result, err := h.Predictor.PredictDisease(ctx, in.Symptoms)
	if err != nil {
		metrics.ObservePrediction(metrics.KindDisease, "error")
		var se *predictor.ServiceError
		if errors.As(err, &se) && se.Status >= 400 && se.Status < 500 {
			return errorJSON(c, http.StatusBadRequest, se.Message)
		}
		h.Log.Error("disease prediction failed", zap.Error(err), zap.Uint64("user_id", userID))
		return errorJSON(c, http.StatusInternalServerError, "disease prediction failed")
	}
	if _, ok := result.ErrorMessage(); ok {
		metrics.ObservePrediction(metrics.KindDisease, "rejected")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": result["error"]})
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "could not encode prediction")
	}
	confidence, _ := result.Float("confidence_score")
	p := &model.DiseasePrediction{
		UserID:            userID,
		HealthInputID:     inputID,
		PredictedDiseases: result["predicted_disease"],
		RiskLevel:         result.String("risk_level", "medium"),
		ConfidenceScore:   confidence,
		Result:            raw,
	}
	if _, err := h.Repo.CreatePrediction(ctx, p); err != nil {
		metrics.ObservePrediction(metrics.KindDisease, "error")
		h.Log.Error("save prediction failed", zap.Error(err), zap.Uint64("user_id", userID))
		return errorJSON(c, http.StatusInternalServerError, "DB error while saving prediction")
	}
	metrics.ObservePrediction(metrics.KindDisease, "ok")
	publishEvent(ctx, h.Events, h.Log, q.EventDiseasePredicted, userID, p.ID, p.RiskLevel)

	return c.JSONBlob(http.StatusOK, raw)
}

// LastPrediction handles GET /api/health/last-prediction.
func (h *DiseaseHandler) LastPrediction(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}
	raw, err := h.Repo.LatestResult(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "No previous predictions")
		}
		h.Log.Error("load last prediction failed", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// ListPredictions handles GET /api/health/predictions?limit=N.
func (h *DiseaseHandler) ListPredictions(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}
	items, err := h.Repo.ListPredictions(c.Request().Context(), userID, listLimit(c))
	if err != nil {
		h.Log.Error("list predictions failed", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"predictions": items})
}
