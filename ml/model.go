package ml

import "context"

// Regressor predicts a continuous value from a scaled feature vector.
type Regressor interface {
	Predict(features []float64) (float64, error)
	Load(path string) error
}

// Transformer scales raw feature vectors before they reach a Regressor.
type Transformer interface {
	Transform(features []float64) ([]float64, error)
}

// TimePredictor estimates the minutes until the catheter bag is full.
type TimePredictor interface {
	PredictMinutes(ctx context.Context, remainingVolume, flowRate float64) (float64, error)
}
