package address

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
)

func TestParse(t *testing.T) {

	tests := []struct {
		input string
		want  uint64
		isErr bool
	}{
		{input: "0", want: 0},
		{input: "0x0", want: 0},
		{input: "4096", want: 4096},
		{input: "0x1000", want: 0x1000},
		{input: "0xFFFFF000", want: 0xffff_f000},
		{input: "0x100000000", want: Ceiling4G},
		{input: "18446744073709551615", want: 1<<64 - 1},
		{input: "0xffffffffffffffff", want: 1<<64 - 1},
		{input: "0x10000000000000000", isErr: true}, // overflow
		{input: "18446744073709551616", isErr: true},
		{input: "", isErr: true},
		{input: "0x", isErr: true},
		{input: "0X10", isErr: true},
		{input: "0x0x10", isErr: true},
		{input: "1000h", isErr: true},
		{input: "abc", isErr: true},
		{input: "+12", isErr: true},
		{input: "-12", isErr: true},
		{input: " 12", isErr: true},
		{input: "1_000", isErr: true},
		{input: "0x1_000", isErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.isErr {
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("expected ParseError, got %v", err)
				}
				if pe.Literal != tt.input {
					t.Errorf("got literal %q want %q", pe.Literal, tt.input)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %#x want %#x", got, tt.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {

	values := []uint64{0, 1, 9, 10, 0xfff, 0x1000, 0x7fff_ffff, Ceiling4G, 1<<63 + 5, 1<<64 - 1}
	for _, v := range values {
		dec := strconv.FormatUint(v, 10)
		if got, err := Parse(dec); err != nil || got != v {
			t.Errorf("decimal %s: got %d, %v", dec, got, err)
		}
		hex := Hex(v)
		if got, err := Parse(hex); err != nil || got != v {
			t.Errorf("hex %s: got %d, %v", hex, got, err)
		}
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	_, err := Parse("0x10000000000000000")
	if !errors.Is(err, strconv.ErrRange) {
		t.Errorf("expected strconv.ErrRange in chain, got %v", err)
	}
	_, err = Parse("zz")
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("expected strconv.ErrSyntax in chain, got %v", err)
	}
}

func TestHex(t *testing.T) {
	if got, want := Hex(0x1_0000_0000), "0x100000000"; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	if got, want := Hex(0), "0x0"; got != want {
		t.Errorf("got %s want %s", got, want)
	}
}
