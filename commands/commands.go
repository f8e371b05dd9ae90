package commands

import (
	"io"
	"sort"

	"github.com/calvinmclean/camservo"
	"github.com/calvinmclean/camservo/protocol"
)

// Command is a named protocol command handled by the firmware
type Command struct {
	Name        string
	Run         func(Controller, protocol.Command, io.Writer) error
	Description string
}

// Controller is used to control the servo
type Controller interface {
	SetTarget(degrees float64)
	SetSpeed(degreesPerSecond float64)
	SetInverted(inverted bool)
	Debug() error
	Update() error
}

var (
	SetTargetCommand = &Command{
		Name: camservo.CommandTargetPosition,
		Run: func(c Controller, cmd protocol.Command, out io.Writer) error {
			v, ok := cmd.Payload()
			if !ok {
				return nil
			}

			// Acknowledge receipt with the raw value before acting on it
			err := protocol.WriteMessage(out, camservo.CommandTargetPosition, v)
			c.SetTarget(protocol.Decode(v))
			return err
		},
		Description: "Set the target angle. Input: degrees x 1000.",
	}
	SetSpeedCommand = &Command{
		Name: camservo.CommandSpeed,
		Run: func(c Controller, cmd protocol.Command, out io.Writer) error {
			v, ok := cmd.Payload()
			if !ok {
				return nil
			}

			err := protocol.WriteMessage(out, camservo.CommandSpeed, v)
			c.SetSpeed(protocol.Decode(v))
			return err
		},
		Description: "Set the motion speed. Input: degrees per second x 1000.",
	}
	SetInvertCommand = &Command{
		Name: camservo.CommandInvert,
		Run: func(c Controller, cmd protocol.Command, out io.Writer) error {
			v, ok := cmd.Payload()
			if !ok {
				return nil
			}

			inv := camservo.Inversion(v)
			if !inv.Valid() {
				return nil
			}

			c.SetInverted(inv == camservo.InversionInverted)
			return protocol.WriteMessage(out, camservo.CommandInvert, v)
		},
		Description: "Invert the axis. Input: 0 (normal) or 1 (inverted).",
	}
	DebugCommand = &Command{
		Name: "camServ_dbg",
		Run: func(c Controller, _ protocol.Command, _ io.Writer) error {
			return c.Debug()
		},
		Description: "Print the current state.",
	}
	HelpCommand = &Command{
		Name:        "camServ_help",
		Description: "Show all available commands and their descriptions.",
		Run: func(_ Controller, _ protocol.Command, out io.Writer) error {
			_, err := io.WriteString(out, "Available Commands:\n")
			if err != nil {
				return err
			}

			names := make([]string, 0, len(commands))
			for _, cmd := range commands {
				names = append(names, cmd.Name)
			}
			sort.Strings(names)

			for _, name := range names {
				_, err = io.WriteString(out, name+" - "+commandMap[name].Description+"\n")
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
)

var commands = []*Command{
	SetTargetCommand,
	SetSpeedCommand,
	SetInvertCommand,
	DebugCommand,
}

var commandMap = map[string]*Command{}

func init() {
	commandMap[HelpCommand.Name] = HelpCommand
	for _, cmd := range commands {
		commandMap[cmd.Name] = cmd
	}
}

// Handler applies inbound commands to a Controller and writes acknowledgements to out
type Handler struct {
	c   Controller
	out io.Writer
}

// NewHandler creates a Handler
func NewHandler(c Controller, out io.Writer) *Handler {
	if out == nil {
		out = io.Discard
	}
	return &Handler{c: c, out: out}
}

// Handle runs the command matching cmd. Unknown commands and commands without a
// payload are dropped without a reply. The returned error is from writing the reply.
func (h *Handler) Handle(cmd protocol.Command) error {
	command, ok := commandMap[cmd.Name]
	if !ok {
		return nil
	}
	return command.Run(h.c, cmd, h.out)
}
