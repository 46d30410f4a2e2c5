package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"xray-diagnosis/internal/model"
)

const (
	reportPrefix  = "xray_predictions_"
	timestampForm = "20060102_150405"
)

var reportHeader = []string{"Image", "Prediction", "Confidence"}

// Row is one line of the batch report.
type Row struct {
	Image      string // base name of the source file
	Prediction string
	Confidence string // fixed two-decimal percentage, e.g. "97.35%"
}

// Skip records an image that was left out of the report and why.
type Skip struct {
	Path string
	Err  error
}

// BatchResult is the outcome of one batch run.
type BatchResult struct {
	ReportPath string
	Rows       []Row  // successes, in submission order
	Skipped    []Skip // failures, in submission order; absent from the report
}

// ProgressFunc is invoked after each image, successful or not, with the
// number of images handled so far and the total.
type ProgressFunc func(done, total int)

// SkipFunc is invoked for each image that failed to decode or classify. The
// batch continues regardless.
type SkipFunc func(path string, err error)

// Reporter runs the batch pipeline and writes the CSV report.
type Reporter struct {
	classifier model.Classifier
	reportDir  string
	now        func() time.Time
}

// NewReporter returns a Reporter writing reports under reportDir.
func NewReporter(classifier model.Classifier, reportDir string) *Reporter {
	return &Reporter{
		classifier: classifier,
		reportDir:  reportDir,
		now:        time.Now,
	}
}

// Run classifies every path in order, then writes a timestamped CSV report.
// Images that fail to decode or classify are reported through onSkip and
// omitted from the CSV; they still advance onProgress. The report is written
// exactly once, after all images are processed — header-only if nothing
// succeeded. Either callback may be nil.
func (r *Reporter) Run(paths []string, onProgress ProgressFunc, onSkip SkipFunc) (*BatchResult, error) {
	if len(paths) == 0 {
		return nil, errors.New("no images to process")
	}

	total := len(paths)
	rows := make([]Row, 0, total)
	var skipped []Skip

	for i, path := range paths {
		pred, err := Predict(r.classifier, path)
		if err != nil {
			skipped = append(skipped, Skip{Path: path, Err: err})
			if onSkip != nil {
				onSkip(path, err)
			}
		} else {
			rows = append(rows, Row{
				Image:      filepath.Base(path),
				Prediction: pred.Label,
				Confidence: FormatConfidence(pred.Confidence),
			})
		}
		if onProgress != nil {
			onProgress(i+1, total)
		}
	}

	reportPath, err := r.writeReport(rows)
	if err != nil {
		return nil, err
	}

	return &BatchResult{ReportPath: reportPath, Rows: rows, Skipped: skipped}, nil
}

func (r *Reporter) writeReport(rows []Row) (string, error) {
	if err := os.MkdirAll(r.reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	name := reportPrefix + r.now().Format(timestampForm) + ".csv"
	path := filepath.Join(r.reportDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(reportHeader); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write report header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write([]string{row.Image, row.Prediction, row.Confidence}); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to flush report: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close report: %w", err)
	}
	return path, nil
}
