package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	defaultDatasetDir = "datasets/xray"
	modelFileName     = "classifier_4class.onnx"
	reportSubdir      = "predictions"
)

// Config holds the fixed deployment paths: the dataset root, the model
// artifact and the directory batch reports are written to.
type Config struct {
	DatasetDir string
	ModelPath  string
	ReportDir  string
}

// Load builds the configuration from the environment, falling back to the
// compiled-in defaults. A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	datasetDir := os.Getenv("XRAY_DATASET_DIR")
	if datasetDir == "" {
		datasetDir = defaultDatasetDir
	}

	modelPath := os.Getenv("XRAY_MODEL_PATH")
	if modelPath == "" {
		modelPath = filepath.Join(datasetDir, modelFileName)
	}

	return &Config{
		DatasetDir: datasetDir,
		ModelPath:  modelPath,
		ReportDir:  filepath.Join(datasetDir, reportSubdir),
	}, nil
}
