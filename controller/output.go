package controller

// PulseOutput is a hardware channel that holds a servo pulse width until it is changed
type PulseOutput interface {
	SetPulseWidth(micros uint32) error
}
