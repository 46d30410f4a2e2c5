package main

import (
	"log"

	"xray-diagnosis/internal/config"
	"xray-diagnosis/internal/model"
	"xray-diagnosis/internal/pipeline"
	"xray-diagnosis/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Loading model from: %s", cfg.ModelPath)

	classifier, err := model.NewONNXClassifier(cfg.ModelPath, model.Labels)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	defer classifier.Close()

	height, width := classifier.InputSize()
	log.Printf("Model input: %dx%d", width, height)
	log.Printf("Classes: %v", model.Labels)
	log.Printf("Reports directory: %s", cfg.ReportDir)

	reporter := pipeline.NewReporter(classifier, cfg.ReportDir)

	ui.New(classifier, reporter).Run()
}
