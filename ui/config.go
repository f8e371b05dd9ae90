package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/camservo/client"
)

type ConfigWindow struct {
	app fyne.App
	// OnSubmit is called with the saved config. When it returns an error, the error is
	// shown and the window stays open.
	OnSubmit func() error
}

func NewConfigWindow(app fyne.App) *ConfigWindow {
	return &ConfigWindow{
		app: app,
	}
}

// values already in cfg, usually from the environment, are used when there is no saved preference
func (cw *ConfigWindow) loadConfigFromPreferences(cfg *client.Config) {
	prefs := cw.app.Preferences()
	cfg.SerialPort = prefs.StringWithFallback("serialPort", cfg.SerialPort)
	cfg.BaudRate = prefs.StringWithFallback("baudRate", cfg.BaudRate)
	cfg.ConfigFile = prefs.StringWithFallback("configFile", cfg.ConfigFile)
}

func (cw *ConfigWindow) saveConfigToPreferences(cfg *client.Config) {
	prefs := cw.app.Preferences()
	prefs.SetString("serialPort", cfg.SerialPort)
	prefs.SetString("baudRate", cfg.BaudRate)
	prefs.SetString("configFile", cfg.ConfigFile)
}

func (cw *ConfigWindow) Show(cfg *client.Config) {
	window := cw.app.NewWindow("Camera Servo - Configuration")
	window.Resize(fyne.NewSize(400, 200))
	window.SetCloseIntercept(func() {
		// Treat window close as cancel
		window.Close()
		cw.app.Quit()
	})
	window.Show()

	cw.loadConfigFromPreferences(cfg)

	serialPorts, err := client.GetSerialPorts()
	if err != nil && !errors.Is(err, client.ErrNoUSBSerial) {
		showError(cw.app, window, fmt.Errorf("error getting serial ports: %w", err))
		return
	}

	serialPorts = append(serialPorts, client.SerialPortNone)

	serialEntry := widget.NewSelect(serialPorts, nil)
	if cfg.SerialPort == "" {
		cfg.SerialPort = serialPorts[0]
	}
	serialEntry.Bind(binding.BindString(&cfg.SerialPort))

	baudRateEntry := widget.NewEntry()
	baudRateEntry.Bind(binding.BindString(&cfg.BaudRate))

	configFileEntry := widget.NewEntry()
	configFileEntry.SetPlaceHolder("simulator calibration YAML (optional)")
	configFileEntry.Bind(binding.BindString(&cfg.ConfigFile))

	var submitButton *widget.Button
	submitButton = widget.NewButton("Connect", func() {
		cw.saveConfigToPreferences(cfg)

		err := cw.OnSubmit()
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		window.SetCloseIntercept(nil)
		window.Close()
	})
	submitButton.Disable()

	validateForm := func() {
		_, baudErr := cfg.Baud()
		if cfg.SerialPort != "" && baudErr == nil {
			submitButton.Enable()
		} else {
			submitButton.Disable()
		}
	}

	serialEntry.OnChanged = func(_ string) { validateForm() }
	baudRateEntry.OnChanged = func(_ string) { validateForm() }

	validateForm()

	form := container.NewVBox(
		widget.NewCard("Configuration", "", container.NewVBox(
			container.NewGridWithColumns(2,
				widget.NewLabel("Serial Port:"),
				serialEntry,
			),
			container.NewGridWithColumns(2,
				widget.NewLabel("Baud Rate:"),
				baudRateEntry,
			),
			container.NewGridWithColumns(2,
				widget.NewLabel("Config File:"),
				configFileEntry,
			),
		)),
		container.NewHBox(
			widget.NewButton("Cancel", func() {
				window.Close()
				cw.app.Quit()
			}),
			submitButton,
		),
	)

	window.SetContent(form)
}

func showError(app fyne.App, window fyne.Window, err error) {
	d := dialog.NewError(err, window)
	d.SetOnClosed(func() {
		app.Quit()
	})
	d.Show()
}
