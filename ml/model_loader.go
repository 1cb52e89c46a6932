package ml

import (
	"errors"
	"fmt"
)

var ErrUnsupportedModel = errors.New("unsupported model type")

func LoadModel(modelType, path string) (Regressor, error) {
	switch modelType {
	case "decision_tree":
		model := &DecisionTree{}
		if err := model.Load(path); err != nil {
			return nil, err
		}
		return model, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, modelType)
	}
}
