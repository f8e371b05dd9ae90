package protocol

import (
	"errors"
	"strconv"
	"strings"
)

// MaxArguments is the most arguments a single command can carry
const MaxArguments = 10

// maxLineLength bounds the LineBuffer so a stream with no terminator cannot grow forever
const maxLineLength = 96

// Command is an inbound, tokenized message like "camServ_tpos(45000);".
// Args[0] holds the number of arguments that follow, so the first payload value
// is Args[1].
type Command struct {
	Name string
	Args []int32
}

// Payload returns the first argument after the count
func (c Command) Payload() (int32, bool) {
	return c.Arg(1)
}

// Arg returns the argument at index i, where index 0 is the argument count
func (c Command) Arg(i int) (int32, bool) {
	if i < 0 || i >= len(c.Args) {
		return 0, false
	}
	return c.Args[i], true
}

// String renders the command back into its inbound wire form
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('(')
	for i := 1; i < len(c.Args); i++ {
		if i > 1 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(c.Args[i]), 10))
	}
	b.WriteString(");")
	return b.String()
}

// NewCommand builds a Command with the argument count filled in
func NewCommand(name string, args ...int32) Command {
	all := make([]int32, 0, len(args)+1)
	all = append(all, int32(len(args)))
	all = append(all, args...)
	return Command{Name: name, Args: all}
}

// ParseCommand tokenizes a single line in the form "name(arg1,arg2,...);".
// The terminator and the argument list are optional, so "name;" and "name" are
// commands without arguments.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(line, ";")
	if line == "" {
		return Command{}, errors.New("empty command")
	}

	name, rest, hasArgs := strings.Cut(line, "(")
	name = strings.TrimSpace(name)
	if name == "" {
		return Command{}, errors.New("missing command name: " + line)
	}
	if !hasArgs {
		return NewCommand(name), nil
	}

	rest, ok := strings.CutSuffix(strings.TrimSpace(rest), ")")
	if !ok {
		return Command{}, errors.New("unterminated argument list: " + line)
	}

	var args []int32
	if strings.TrimSpace(rest) != "" {
		for _, field := range strings.Split(rest, ",") {
			if len(args) == MaxArguments {
				return Command{}, errors.New("too many arguments: " + line)
			}
			v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 32)
			if err != nil {
				return Command{}, errors.New("invalid argument: " + field)
			}
			args = append(args, int32(v))
		}
	}

	return NewCommand(name, args...), nil
}

// LineBuffer collects bytes from a serial stream until a complete message is
// available. It never blocks; callers feed it whatever bytes are ready.
type LineBuffer struct {
	buf      []byte
	overflow bool
}

// Feed adds b to the buffer. It returns the completed line and true when b
// terminates a message. Empty lines and lines longer than maxLineLength are dropped.
func (l *LineBuffer) Feed(b byte) (string, bool) {
	switch b {
	case ';', '\n', '\r':
		line := string(l.buf)
		overflow := l.overflow
		l.Reset()
		if overflow || strings.TrimSpace(line) == "" {
			return "", false
		}
		return line, true
	}

	if len(l.buf) >= maxLineLength {
		l.overflow = true
		return "", false
	}
	l.buf = append(l.buf, b)
	return "", false
}

// Reset discards any partial line
func (l *LineBuffer) Reset() {
	l.buf = l.buf[:0]
	l.overflow = false
}
