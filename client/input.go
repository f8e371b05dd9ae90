package client

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/calvinmclean/camservo"
	"github.com/calvinmclean/camservo/protocol"
)

var errEmptyInput = errors.New("empty input")

// ParseInput turns a line typed by a person into a protocol command. It accepts
// "target <degrees>", "speed <degrees/s>", "invert <on|off>", "debug" and "help",
// or a raw protocol command like "camServ_tpos(45000);".
func ParseInput(line string) (protocol.Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return protocol.Command{}, errEmptyInput
	}
	if strings.Contains(line, "(") {
		return protocol.ParseCommand(line)
	}

	fields := strings.Fields(line)
	keyword := strings.ToLower(fields[0])
	args := fields[1:]

	switch keyword {
	case "target", "t":
		v, err := floatArg(keyword, args)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.NewCommand(camservo.CommandTargetPosition, protocol.Encode(v)), nil
	case "speed", "s":
		v, err := floatArg(keyword, args)
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.NewCommand(camservo.CommandSpeed, protocol.Encode(v)), nil
	case "invert", "i":
		if len(args) != 1 {
			return protocol.Command{}, fmt.Errorf("%s: expected one argument", keyword)
		}
		inv := camservo.InversionNormal
		switch strings.ToLower(args[0]) {
		case "1", "on", "true", "yes":
			inv = camservo.InversionInverted
		case "0", "off", "false", "no":
		default:
			return protocol.Command{}, fmt.Errorf("%s: invalid value %q", keyword, args[0])
		}
		return protocol.NewCommand(camservo.CommandInvert, int32(inv)), nil
	case "debug", "d":
		return protocol.NewCommand("camServ_dbg"), nil
	case "help", "h":
		return protocol.NewCommand("camServ_help"), nil
	}

	return protocol.Command{}, fmt.Errorf("unknown input: %q", line)
}

func floatArg(keyword string, args []string) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: expected one argument", keyword)
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q: %w", keyword, args[0], err)
	}
	return v, nil
}
