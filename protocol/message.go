package protocol

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Message is a single outbound line in the form "name:value;"
type Message struct {
	Name  string
	Value int32
}

// AppendMessage appends the wire form of a message, including the trailing newline
func AppendMessage(b []byte, name string, value int32) []byte {
	b = append(b, name...)
	b = append(b, ':')
	b = strconv.AppendInt(b, int64(value), 10)
	return append(b, ';', '\n')
}

// WriteMessage writes "name:value;" followed by a newline
func WriteMessage(w io.Writer, name string, value int32) error {
	var buf [48]byte
	_, err := w.Write(AppendMessage(buf[:0], name, value))
	return err
}

// ParseMessage parses a line written by WriteMessage. Surrounding whitespace is ignored.
func ParseMessage(line string) (Message, error) {
	line = strings.TrimSpace(line)
	if !strings.HasSuffix(line, ";") {
		return Message{}, errors.New("missing terminator: " + line)
	}
	line = strings.TrimSuffix(line, ";")

	name, rawValue, ok := strings.Cut(line, ":")
	if !ok || name == "" {
		return Message{}, errors.New("missing name separator: " + line)
	}

	value, err := strconv.ParseInt(rawValue, 10, 32)
	if err != nil {
		return Message{}, errors.New("invalid value: " + rawValue)
	}

	return Message{Name: name, Value: int32(value)}, nil
}

// Degrees returns the message value decoded from fixed-point
func (m Message) Degrees() float64 {
	return Decode(m.Value)
}
