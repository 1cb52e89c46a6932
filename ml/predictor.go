package ml

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type PredictorConfig struct {
	ModelType  string
	ModelPath  string
	ScalerPath string
}

// Predictor estimates time-to-full from remaining volume and flow rate.
// The model and scaler are read from disk on every call so replaced
// artifacts take effect without a restart.
type Predictor struct {
	config PredictorConfig
	logger *zap.Logger
}

func NewPredictor(config PredictorConfig, logger *zap.Logger) *Predictor {
	if config.ModelType == "" {
		config.ModelType = "decision_tree"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Predictor{config: config, logger: logger}
}

func (p *Predictor) PredictMinutes(ctx context.Context, remainingVolume, flowRate float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	model, err := LoadModel(p.config.ModelType, p.config.ModelPath)
	if err != nil {
		return 0, fmt.Errorf("load model: %w", err)
	}
	scaler, err := LoadScaler(p.config.ScalerPath)
	if err != nil {
		return 0, fmt.Errorf("load scaler: %w", err)
	}

	scaled, err := scaler.Transform(FeatureVector(remainingVolume, flowRate))
	if err != nil {
		return 0, fmt.Errorf("scale features: %w", err)
	}
	minutes, err := model.Predict(scaled)
	if err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}

	p.logger.Debug("prediction",
		zap.Float64("remaining_volume", remainingVolume),
		zap.Float64("urine_flow_rate", flowRate),
		zap.Float64s("scaled", scaled),
		zap.Float64("minutes", minutes))
	return minutes, nil
}

// FeatureVector orders inputs the way the model was trained.
func FeatureVector(remainingVolume, flowRate float64) []float64 {
	return []float64{remainingVolume, flowRate}
}
