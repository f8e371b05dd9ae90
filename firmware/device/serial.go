//go:build tinygo

package device

import "machine"

// Serial is the USB serial port. Reads are polled so the control loop never blocks.
type Serial struct {
	port machine.Serialer
}

func NewSerial() *Serial {
	return &Serial{port: machine.Serial}
}

func (s *Serial) Buffered() int {
	return s.port.Buffered()
}

func (s *Serial) ReadByte() (byte, error) {
	return s.port.ReadByte()
}

func (s *Serial) Write(b []byte) (int, error) {
	return s.port.Write(b)
}
