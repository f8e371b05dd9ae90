package camservo

// Command names understood by the camera servo firmware. The same names are used
// for the acknowledgement and telemetry lines it writes back.
const (
	CommandTargetPosition = "camServ_tpos"
	CommandSpeed          = "camServ_spd"
	CommandInvert         = "camServ_inv"
	TelemetryPosition     = "camServ_pos"
)

// DefaultBaudRate is the serial rate used by the firmware and the host tool
const DefaultBaudRate = 115200

// Inversion is the mounting orientation of the servo axis
type Inversion int32

const (
	InversionNormal   Inversion = 0
	InversionInverted Inversion = 1
)

func (i Inversion) String() string {
	switch i {
	case InversionInverted:
		return "Inverted"
	default:
		fallthrough
	case InversionNormal:
		return "Normal"
	}
}

// Valid reports whether i is one of the two values accepted on the wire
func (i Inversion) Valid() bool {
	return i == InversionNormal || i == InversionInverted
}
