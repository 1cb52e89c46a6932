package ml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeArtifacts(t *testing.T) PredictorConfig {
	t.Helper()
	dir := t.TempDir()
	config := PredictorConfig{
		ModelType:  "decision_tree",
		ModelPath:  filepath.Join(dir, "decision_tree.json"),
		ScalerPath: filepath.Join(dir, "scaler.json"),
	}
	if err := testTree().Save(config.ModelPath); err != nil {
		t.Fatalf("save model: %v", err)
	}
	scaler := &StandardScaler{Mean: []float64{400, 5}, Scale: []float64{200, 5}}
	if err := scaler.Save(config.ScalerPath); err != nil {
		t.Fatalf("save scaler: %v", err)
	}
	return config
}

func TestPredictorPredictMinutes(t *testing.T) {
	predictor := NewPredictor(writeArtifacts(t), nil)

	// (500-400)/200 = 0.5, (10-5)/5 = 1
	minutes, err := predictor.PredictMinutes(context.Background(), 500, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != 75.5 {
		t.Fatalf("expected 75.5, got %v", minutes)
	}
	if got := FormatMinutes(minutes); got != "01 hours and 15 minutes" {
		t.Fatalf("unexpected formatted time %q", got)
	}

	minutes, err = predictor.PredictMinutes(context.Background(), 300, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != 30 {
		t.Fatalf("expected 30, got %v", minutes)
	}
}

func TestPredictorReloadsArtifacts(t *testing.T) {
	config := writeArtifacts(t)
	predictor := NewPredictor(config, nil)

	if _, err := predictor.PredictMinutes(context.Background(), 500, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	replacement := NewDecisionTree([]TreeNode{{FeatureIdx: -1, LeftChild: -1, RightChild: -1, Value: 5, IsLeaf: true}})
	if err := replacement.Save(config.ModelPath); err != nil {
		t.Fatalf("save: %v", err)
	}
	minutes, err := predictor.PredictMinutes(context.Background(), 500, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != 5 {
		t.Fatalf("expected replaced model output 5, got %v", minutes)
	}

	if err := os.Remove(config.ScalerPath); err != nil {
		t.Fatal(err)
	}
	if _, err := predictor.PredictMinutes(context.Background(), 500, 10); err == nil {
		t.Fatal("expected error after scaler removal")
	}
}

func TestPredictorUnsupportedModel(t *testing.T) {
	config := writeArtifacts(t)
	config.ModelType = "linear"
	_, err := NewPredictor(config, nil).PredictMinutes(context.Background(), 500, 10)
	if !errors.Is(err, ErrUnsupportedModel) {
		t.Fatalf("expected ErrUnsupportedModel, got %v", err)
	}
}

func TestPredictorCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewPredictor(writeArtifacts(t), nil).PredictMinutes(ctx, 500, 10); err == nil {
		t.Fatal("expected context error")
	}
}
