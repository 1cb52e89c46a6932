package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"intellicath/catheter"
	"intellicath/ml"
)

type predictRequest struct {
	UrineOutput       *float64 `json:"urine_output"`
	UrineFlowRate     *float64 `json:"urine_flow_rate"`
	CatheterBagVolume *float64 `json:"catheter_bag_volume"`
	RemainingVolume   *float64 `json:"remaining_volume"`
}

type predictResponse struct {
	Status        string  `json:"status"`
	PredictedTime string  `json:"predicted_time"`
	ActualTime    *string `json:"actual_time"`
}

type actualTimeResponse struct {
	ActualTime *string `json:"actual_time"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handlePredict estimates time-to-full and stores the reading. Storage
// failures are logged and do not affect the response; prediction failures
// are returned to the caller as 500 with the error text.
func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(zap.String("request_id", GetRequestID(r.Context())))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "Request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No data received"})
		return
	}

	// Absent, null, malformed or empty-object bodies all count as no data.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No data received"})
		return
	}

	var req predictRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Error("decode reading", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if req.UrineFlowRate == nil || req.RemainingVolume == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing input values"})
		return
	}

	if err := req.validateTracked(); err != nil {
		logger.Error("incomplete reading", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	reading := catheter.Reading{
		UrineOutput:       *req.UrineOutput,
		UrineFlowRate:     *req.UrineFlowRate,
		CatheterBagVolume: *req.CatheterBagVolume,
		RemainingVolume:   *req.RemainingVolume,
	}
	reading.ActualTime = catheter.CrossingTime(reading.CatheterBagVolume, h.now())

	minutes, err := h.predictor.PredictMinutes(r.Context(), reading.RemainingVolume, reading.UrineFlowRate)
	if err != nil {
		logger.Error("prediction failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	reading.PredictedTime = ml.FormatMinutes(minutes)
	logger.Info("predicted time to full", zap.String("predicted_time", reading.PredictedTime))

	if _, err := h.store.SaveReading(r.Context(), reading); err != nil {
		logger.Error("store reading failed", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, predictResponse{
		Status:        "success",
		PredictedTime: reading.PredictedTime,
		ActualTime:    reading.ActualTime,
	})
}

// validateTracked requires every field the dedup comparison reads.
func (req predictRequest) validateTracked() error {
	if req.CatheterBagVolume == nil {
		return errors.New("catheter_bag_volume is missing")
	}
	if req.UrineOutput == nil {
		return errors.New("urine_output is missing")
	}
	return nil
}
