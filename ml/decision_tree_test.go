package ml

import (
	"os"
	"path/filepath"
	"testing"
)

func testTree() *DecisionTree {
	return NewDecisionTree([]TreeNode{
		{FeatureIdx: 0, Threshold: 0, LeftChild: 1, RightChild: 2},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, Value: 30, IsLeaf: true},
		{FeatureIdx: 1, Threshold: 0.5, LeftChild: 3, RightChild: 4},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, Value: 120, IsLeaf: true},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, Value: 75.5, IsLeaf: true},
	})
}

func TestDecisionTreePredict(t *testing.T) {
	model := testTree()

	tests := []struct {
		features []float64
		want     float64
	}{
		{[]float64{-0.5, 3}, 30},
		{[]float64{0, 3}, 30},
		{[]float64{0.5, 0.5}, 120},
		{[]float64{0.5, 1}, 75.5},
	}
	for _, tt := range tests {
		got, err := model.Predict(tt.features)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Fatalf("Predict(%v) = %v, want %v", tt.features, got, tt.want)
		}
	}
}

func TestDecisionTreePredictErrors(t *testing.T) {
	if _, err := (&DecisionTree{}).Predict([]float64{1}); err == nil {
		t.Fatal("expected error for empty model")
	}
	if _, err := testTree().Predict([]float64{1}); err == nil {
		t.Fatal("expected error for short feature vector")
	}

	broken := NewDecisionTree([]TreeNode{{FeatureIdx: 0, Threshold: 0, LeftChild: 5, RightChild: 5}})
	if _, err := broken.Predict([]float64{1}); err == nil {
		t.Fatal("expected error for dangling child")
	}

	cyclic := NewDecisionTree([]TreeNode{{FeatureIdx: 0, Threshold: 0, LeftChild: 0, RightChild: 0}})
	if _, err := cyclic.Predict([]float64{1}); err == nil {
		t.Fatal("expected error for cyclic tree")
	}
}

func TestDecisionTreeSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decision_tree.json")
	if err := testTree().Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadModel("decision_tree", path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := loaded.Predict([]float64{0.5, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 75.5 {
		t.Fatalf("expected 75.5, got %v", got)
	}
}

func TestLoadModelErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadModel("random_forest", filepath.Join(dir, "x.json")); err == nil {
		t.Fatal("expected error for unsupported model type")
	}
	if _, err := LoadModel("decision_tree", filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte("[]"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadModel("decision_tree", empty); err == nil {
		t.Fatal("expected error for model without nodes")
	}
}
