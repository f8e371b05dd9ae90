package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/camservo"
	"github.com/calvinmclean/camservo/client"
	"github.com/calvinmclean/camservo/controller"
	"github.com/calvinmclean/camservo/protocol"
)

const (
	appID = "io.github.calvinmclean.camservo"

	// maxLogLines is how many acknowledgements are kept in the log view
	maxLogLines = 50
)

// ConnectFunc opens the connection described by cfg and returns where the UI writes
// commands. Output from the servo must be written back to the ServoUI.
type ConnectFunc func(ctx context.Context, cfg client.Config) (io.Writer, error)

// ServoUI is a desktop control panel for the camera servo. It is an io.Writer so
// the servo output can be copied into it, and it keeps the last reported position.
type ServoUI struct {
	mtx      sync.Mutex
	partial  []byte
	position float64
	reported bool
	logLines []string

	onUpdate func()
}

func NewServoUI() *ServoUI {
	return &ServoUI{}
}

// Write consumes lines printed by the servo. Telemetry updates the position and
// everything else is added to the log.
func (ui *ServoUI) Write(p []byte) (int, error) {
	ui.mtx.Lock()
	ui.partial = append(ui.partial, p...)
	changed := false
	for {
		i := bytes.IndexByte(ui.partial, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSpace(string(ui.partial[:i]))
		ui.partial = ui.partial[i+1:]
		if line == "" {
			continue
		}
		ui.handleLine(line)
		changed = true
	}
	onUpdate := ui.onUpdate
	ui.mtx.Unlock()

	if changed && onUpdate != nil {
		onUpdate()
	}
	return len(p), nil
}

func (ui *ServoUI) handleLine(line string) {
	msg, err := protocol.ParseMessage(line)
	if err == nil && msg.Name == camservo.TelemetryPosition {
		ui.position = msg.Degrees()
		ui.reported = true
		return
	}

	ui.logLines = append(ui.logLines, line)
	if len(ui.logLines) > maxLogLines {
		ui.logLines = ui.logLines[len(ui.logLines)-maxLogLines:]
	}
}

// Position returns the last reported position in degrees, and false if the servo has
// not reported yet
func (ui *ServoUI) Position() (float64, bool) {
	ui.mtx.Lock()
	defer ui.mtx.Unlock()
	return ui.position, ui.reported
}

// Log returns the non-telemetry lines received from the servo, oldest first
func (ui *ServoUI) Log() []string {
	ui.mtx.Lock()
	defer ui.mtx.Unlock()
	return append([]string(nil), ui.logLines...)
}

func (ui *ServoUI) positionText() string {
	position, ok := ui.Position()
	if !ok {
		return "--.---°"
	}
	return fmt.Sprintf("%.3f°", position)
}

func createSlider(labelText string, minValue, maxValue, step, defaultValue float64, onSet func(float64)) *fyne.Container {
	valueLabel := widget.NewLabel(fmt.Sprintf("%.1f", defaultValue))

	slider := widget.NewSlider(minValue, maxValue)
	slider.Step = step
	slider.SetValue(defaultValue)
	slider.OnChanged = func(value float64) {
		valueLabel.SetText(fmt.Sprintf("%.1f", value))
	}
	slider.OnChangeEnded = onSet

	return container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel(labelText),
			valueLabel,
		),
		slider,
	)
}

func createLogAccordion() (*widget.Accordion, *widget.Label) {
	logContent := widget.NewLabel("")
	logScroll := container.NewVScroll(logContent)
	logScroll.SetMinSize(fyne.NewSize(300, 100))

	return widget.NewAccordion(
		widget.NewAccordionItem("Logs", logScroll),
	), logContent
}

// Run shows the configuration window and then the control panel once connect
// succeeds. It blocks until the application exits or ctx is done.
func (ui *ServoUI) Run(ctx context.Context, cfg client.Config, connect ConnectFunc) {
	application := app.NewWithID(appID)

	configWindow := NewConfigWindow(application)
	configWindow.OnSubmit = func() error {
		w, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		ui.showControls(application, w)
		return nil
	}
	configWindow.Show(&cfg)

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			application.Quit()
		})
	}()

	application.Run()
}

func (ui *ServoUI) showControls(application fyne.App, w io.Writer) {
	window := application.NewWindow("Camera Servo")

	lastCommandTimer := newTimer()
	lastCommandTimer.Go()
	window.SetOnClosed(lastCommandTimer.Stop)

	c := &controllerWrapper{writer: w, lastCommandTimer: lastCommandTimer}

	positionText := canvas.NewText(ui.positionText(), theme.Color(theme.ColorNameForeground))
	positionText.TextSize = 32
	positionText.TextStyle = fyne.TextStyle{Monospace: true}

	logAccordion, logContent := createLogAccordion()

	ui.mtx.Lock()
	ui.onUpdate = func() {
		text := ui.positionText()
		logText := strings.Join(ui.Log(), "\n")
		fyne.Do(func() {
			positionText.Text = text
			positionText.Refresh()
			logContent.SetText(logText)
		})
	}
	ui.mtx.Unlock()

	targetContainer := createSlider("Target (°)", -90, 90, 0.5, 0, c.SetTarget)
	speedContainer := createSlider("Speed (°/s)", 1, 180, 1, controller.DefaultSpeed, c.SetSpeed)
	invertCheck := widget.NewCheck("Inverted", c.SetInverted)
	debugButton := widget.NewButton("Debug", c.Debug)

	contentContainer := container.NewVBox(
		container.NewHBox(
			container.NewPadded(positionText),
			layout.NewSpacer(),
			container.NewPadded(lastCommandTimer.text),
		),
		targetContainer,
		speedContainer,
		container.NewHBox(invertCheck, layout.NewSpacer(), debugButton),
		logAccordion,
	)

	window.SetContent(contentContainer)
	window.Resize(fyne.NewSize(400, 300))
	window.Show()
}
