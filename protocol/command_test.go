package protocol

import (
	"slices"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected Command
		err      bool
	}{
		{"SingleArgument", "camServ_tpos(45000);", Command{"camServ_tpos", []int32{1, 45000}}, false},
		{"NoTerminator", "camServ_spd(30000)", Command{"camServ_spd", []int32{1, 30000}}, false},
		{"MultipleArguments", "cmd(1, -2,3);", Command{"cmd", []int32{3, 1, -2, 3}}, false},
		{"EmptyArguments", "ping();", Command{"ping", []int32{0}}, false},
		{"NoArguments", "ping", Command{"ping", []int32{0}}, false},
		{"Whitespace", "  camServ_inv(1) ; ", Command{"camServ_inv", []int32{1, 1}}, false},
		{"Empty", ";", Command{}, true},
		{"MissingName", "(1);", Command{}, true},
		{"Unterminated", "camServ_tpos(45000;", Command{}, true},
		{"NotANumber", "camServ_tpos(abc);", Command{}, true},
		{"FloatArgument", "camServ_tpos(4.5);", Command{}, true},
		{"TooMany", "cmd(1,2,3,4,5,6,7,8,9,10,11);", Command{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.in)
			if tt.err {
				if err == nil {
					t.Errorf("expected error, got=%v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name != tt.expected.Name || !slices.Equal(got.Args, tt.expected.Args) {
				t.Errorf("expected=%v, got=%v", tt.expected, got)
			}
		})
	}
}

func TestCommandArgs(t *testing.T) {
	cmd := NewCommand("camServ_tpos", 45000)

	if count, _ := cmd.Arg(0); count != 1 {
		t.Errorf("expected count=1, got=%d", count)
	}
	if v, ok := cmd.Payload(); !ok || v != 45000 {
		t.Errorf("expected payload=45000, got=%d ok=%v", v, ok)
	}
	if _, ok := cmd.Arg(2); ok {
		t.Error("expected missing argument")
	}
	if _, ok := NewCommand("camServ_tpos").Payload(); ok {
		t.Error("expected missing payload")
	}
	if s := cmd.String(); s != "camServ_tpos(45000);" {
		t.Errorf("unexpected string: %q", s)
	}
}

func TestLineBuffer(t *testing.T) {
	var lb LineBuffer
	var lines []string
	for _, b := range []byte("camServ_tpos(45000);\r\n\ncamServ_inv(1)\npartial") {
		if line, ok := lb.Feed(b); ok {
			lines = append(lines, line)
		}
	}

	expected := []string{"camServ_tpos(45000)", "camServ_inv(1)"}
	if !slices.Equal(lines, expected) {
		t.Errorf("expected=%q, got=%q", expected, lines)
	}

	t.Run("Overflow", func(t *testing.T) {
		var lb LineBuffer
		for i := 0; i < maxLineLength+10; i++ {
			if _, ok := lb.Feed('a'); ok {
				t.Fatal("unexpected line")
			}
		}
		if _, ok := lb.Feed(';'); ok {
			t.Error("expected overflowed line to be dropped")
		}
		line, ok := lb.Feed('x')
		if ok {
			t.Fatalf("unexpected line %q", line)
		}
		if line, ok := lb.Feed(';'); !ok || line != "x" {
			t.Errorf("expected buffer to recover, got=%q ok=%v", line, ok)
		}
	})
}
