package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// StandardScaler centers and scales features with parameters fitted at
// training time.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func LoadScaler(path string) (*StandardScaler, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scaler: %w", err)
	}
	var scaler StandardScaler
	if err := json.Unmarshal(payload, &scaler); err != nil {
		return nil, fmt.Errorf("decode scaler %s: %w", path, err)
	}
	if len(scaler.Mean) == 0 {
		return nil, fmt.Errorf("scaler %s has no parameters", path)
	}
	if len(scaler.Mean) != len(scaler.Scale) {
		return nil, fmt.Errorf("scaler %s: mean/scale length mismatch", path)
	}
	return &scaler, nil
}

func (s *StandardScaler) Save(path string) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.Mean) || len(features) != len(s.Scale) {
		return nil, errors.New("features/mean/scale length mismatch")
	}
	result := make([]float64, len(features))
	for i := range features {
		result[i] = StandardizeFeature(features[i], s.Mean[i], s.Scale[i])
	}
	return result, nil
}

// StandardizeFeature only centers the value when scale is zero.
func StandardizeFeature(value, mean, scale float64) float64 {
	if scale == 0 {
		return value - mean
	}
	return (value - mean) / scale
}
