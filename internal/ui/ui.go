package ui

import (
	"image"
	"image/color"
	"log"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"xray-diagnosis/internal/model"
	"xray-diagnosis/internal/pipeline"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png"}

var headerBlue = color.RGBA{R: 0x19, G: 0x76, B: 0xD2, A: 0xFF}

// listRow is one colored line of the batch result list.
type listRow struct {
	text  string
	color color.Color
}

// App is the desktop shell. It owns the window and widgets and calls the
// injected classifier and reporter; all pipeline logic lives elsewhere.
type App struct {
	fyneApp    fyne.App
	window     fyne.Window
	classifier model.Classifier
	reporter   *pipeline.Reporter

	preview     *canvas.Image
	resultLabel *canvas.Text
	resultConf  *canvas.Text
	resultList  *widget.List
	progress    *widget.ProgressBar

	rows []listRow
}

// New builds the window and wires the two user actions.
func New(classifier model.Classifier, reporter *pipeline.Reporter) *App {
	a := &App{
		fyneApp:    app.New(),
		classifier: classifier,
		reporter:   reporter,
	}

	a.window = a.fyneApp.NewWindow("AI Chest X-ray Diagnosis")
	a.window.Resize(fyne.NewSize(700, 700))
	a.window.SetFixedSize(true)

	a.preview = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 300, 300)))
	a.preview.FillMode = canvas.ImageFillContain
	a.preview.SetMinSize(fyne.NewSize(300, 300))

	a.resultLabel = canvas.NewText("", color.Black)
	a.resultLabel.TextSize = 18
	a.resultLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.resultConf = canvas.NewText("", color.Black)
	a.resultConf.TextSize = 14

	a.resultList = widget.NewList(
		func() int { return len(a.rows) },
		func() fyne.CanvasObject { return canvas.NewText("", color.Black) },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			t := o.(*canvas.Text)
			t.Text = a.rows[i].text
			t.Color = a.rows[i].color
			t.Refresh()
		},
	)

	a.progress = widget.NewProgressBar()

	header := container.NewStack(
		canvas.NewRectangle(headerBlue),
		container.NewCenter(newHeaderText()),
	)
	subheader := canvas.NewText("Automatic X-ray analysis with deep learning", color.Gray{Y: 0x80})
	subheader.TextSize = 14

	top := container.NewVBox(
		header,
		container.NewCenter(subheader),
		container.NewCenter(widget.NewButton("Upload & Predict Single X-ray", a.classifySingle)),
		container.NewCenter(widget.NewButton("Batch Predict X-rays", a.classifyBatch)),
		container.NewCenter(a.preview),
		container.NewCenter(a.resultLabel),
		container.NewCenter(a.resultConf),
	)

	a.window.SetContent(container.NewBorder(top, a.progress, nil, nil, a.resultList))
	return a
}

func newHeaderText() *canvas.Text {
	t := canvas.NewText("AI Chest X-ray Diagnosis", color.White)
	t.TextSize = 24
	t.TextStyle = fyne.TextStyle{Bold: true}
	return t
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	a.window.ShowAndRun()
}

// classifySingle opens the file picker and displays the annotated result.
// Cancelling the picker is a silent no-op; decode or inference failures show
// a modal error and leave the shell usable.
func (a *App) classifySingle() {
	open := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()

		pred, err := pipeline.Predict(a.classifier, path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		annotated, err := pipeline.Annotate(path, pred)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.preview.Image = annotated
		a.preview.Refresh()

		a.resultLabel.Text = "Prediction: " + pred.Label
		a.resultLabel.Color = model.ColorFor(pred.Label)
		a.resultLabel.Refresh()
		a.resultConf.Text = "Confidence: " + pipeline.FormatConfidence(pred.Confidence)
		a.resultConf.Color = model.ColorFor(pred.Label)
		a.resultConf.Refresh()
	}, a.window)

	open.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	open.Show()
}

// classifyBatch opens the folder picker and runs the batch reporter over
// every image in the chosen folder, in lexical name order.
func (a *App) classifyBatch() {
	dialog.ShowFolderOpen(func(folder fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if folder == nil {
			return
		}

		paths, err := listImages(folder)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if len(paths) == 0 {
			dialog.ShowInformation("Batch Prediction", "No images found in the selected folder.", a.window)
			return
		}

		a.runBatch(paths)
	}, a.window)
}

// runBatch drives the reporter synchronously on the event goroutine; the
// render thread keeps repainting the progress bar between images.
func (a *App) runBatch(paths []string) {
	a.rows = a.rows[:0]
	a.resultList.Refresh()
	a.progress.Min = 0
	a.progress.Max = float64(len(paths))
	a.progress.SetValue(0)

	result, err := a.reporter.Run(paths,
		func(done, total int) {
			a.progress.SetValue(float64(done))
		},
		func(path string, err error) {
			// Skipped images surface only by their absence from the list.
			log.Printf("Skipping %s: %v", path, err)
		})
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	for _, row := range result.Rows {
		a.rows = append(a.rows, listRow{
			text:  row.Image + " → " + row.Prediction + " (" + row.Confidence + ")",
			color: model.ColorFor(row.Prediction),
		})
	}
	a.resultList.Refresh()

	dialog.ShowInformation("Batch Prediction",
		"Predictions completed!\nSaved to: "+result.ReportPath, a.window)
}

// listImages returns the paths of all raster images directly inside folder,
// sorted by name. That order is the submission order for the report.
func listImages(folder fyne.ListableURI) ([]string, error) {
	uris, err := folder.List()
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, uri := range uris {
		ext := strings.ToLower(uri.Extension())
		for _, allowed := range imageExtensions {
			if ext == allowed {
				paths = append(paths, uri.Path())
				break
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}
