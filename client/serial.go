package client

import (
	"errors"
	"fmt"
	"io"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// SerialPortNone selects the simulated device instead of a serial port
const SerialPortNone = "None"

// ErrNoUSBSerial is returned when no USB serial ports are connected
var ErrNoUSBSerial = errors.New("no USB serial ports found")

// GetSerialPorts returns the names of connected USB serial ports
func GetSerialPorts() ([]string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("error listing serial ports: %w", err)
	}

	var names []string
	for _, port := range ports {
		if port.IsUSB {
			names = append(names, port.Name)
		}
	}

	if len(names) == 0 {
		return nil, ErrNoUSBSerial
	}
	return names, nil
}

func openSerial(name string, baud int) (io.ReadWriteCloser, error) {
	port, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("error opening serial port %q: %w", name, err)
	}
	return port, nil
}
