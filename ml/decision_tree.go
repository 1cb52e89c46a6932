package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DecisionTree is a regression tree exported as a flat node list. Node 0 is
// the root.
type DecisionTree struct {
	nodes []TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	Value      float64 `json:"value"`
	IsLeaf     bool    `json:"is_leaf"`
}

func NewDecisionTree(nodes []TreeNode) *DecisionTree {
	return &DecisionTree{nodes: nodes}
}

func (dt *DecisionTree) Predict(features []float64) (float64, error) {
	if len(dt.nodes) == 0 {
		return 0, errors.New("model not loaded")
	}
	idx := 0
	for steps := 0; steps <= len(dt.nodes); steps++ {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.Value, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(dt.nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
	return 0, errors.New("tree contains a cycle")
}

func (dt *DecisionTree) Save(path string) error {
	if len(dt.nodes) == 0 {
		return errors.New("model not loaded")
	}
	payload, err := json.Marshal(dt.nodes)
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func (dt *DecisionTree) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read model: %w", err)
	}
	var nodes []TreeNode
	if err := json.Unmarshal(payload, &nodes); err != nil {
		return fmt.Errorf("decode model %s: %w", path, err)
	}
	if len(nodes) == 0 {
		return fmt.Errorf("model %s has no nodes", path)
	}
	dt.nodes = nodes
	return nil
}
