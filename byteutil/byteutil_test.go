package byteutil

import (
	"errors"
	"math"
	"testing"
	"testing/quick"
)

func TestToUint8(t *testing.T) {
	for i := math.MinInt8; i <= math.MaxInt8; i++ {
		actual := ToUint8(int8(i))
		expected := uint8((i + 256) % 256)
		if actual != expected {
			t.Fatalf("ToUint8(%d) returned %d, expected %d", i, actual, expected)
		}
	}
}

func TestToUint16AndToUint32(t *testing.T) {
	if actual := ToUint16(-1); actual != math.MaxUint16 {
		t.Fatalf("ToUint16(-1) returned %d, expected %d", actual, math.MaxUint16)
	}

	if actual := ToUint16(math.MinInt16); actual != 0x8000 {
		t.Fatalf("ToUint16(MinInt16) returned %#x, expected 0x8000", actual)
	}

	if actual := ToUint32(-1); actual != math.MaxUint32 {
		t.Fatalf("ToUint32(-1) returned %d, expected %d", actual, uint32(math.MaxUint32))
	}

	if actual := ToUint32(math.MinInt32); actual != 0x80000000 {
		t.Fatalf("ToUint32(MinInt32) returned %#x, expected 0x80000000", actual)
	}
}

func TestCompareUnsigned(t *testing.T) {
	var tests = []struct {
		a, b     int8
		expected int
	}{
		{a: -1, b: 1, expected: 1}, // 0xFF vs 0x01
		{a: 1, b: -1, expected: -1},
		{a: -128, b: 127, expected: 1},
		{a: 5, b: 5, expected: 0},
		{a: -1, b: -1, expected: 0},
		{a: 0, b: 1, expected: -1},
	}

	for _, test := range tests {
		actual := CompareUnsigned(test.a, test.b)
		if actual != test.expected {
			t.Fatalf("CompareUnsigned(%d, %d) returned %d, expected %d", test.a, test.b, actual, test.expected)
		}
	}
}

func TestReadUintPinnedByteOrder(t *testing.T) {
	input := []byte{0x01, 0x02, 0x03, 0x04}

	var tests = []struct {
		endianness Endianness
		expected16 uint16
		expected32 uint32
	}{
		{endianness: BigEndian, expected16: 0x0102, expected32: 0x01020304},
		{endianness: LittleEndian, expected16: 0x0201, expected32: 0x04030201},
	}

	for _, test := range tests {
		actual16, err := ReadUint16(input, 0, test.endianness)
		if err != nil {
			t.Fatalf("ReadUint16(%v) returned error: %v", test.endianness, err)
		}
		if actual16 != test.expected16 {
			t.Fatalf("ReadUint16(%v) returned %#x, expected %#x", test.endianness, actual16, test.expected16)
		}

		actual32, err := ReadUint32(input, 0, test.endianness)
		if err != nil {
			t.Fatalf("ReadUint32(%v) returned error: %v", test.endianness, err)
		}
		if actual32 != test.expected32 {
			t.Fatalf("ReadUint32(%v) returned %#x, expected %#x", test.endianness, actual32, test.expected32)
		}
	}
}

func TestReadUintOffset(t *testing.T) {
	input := []byte{0xAA, 0xFF, 0xFF, 0xFF, 0xFE, 0xBB}

	actual, err := ReadUint32(input, 1, BigEndian)
	if err != nil {
		t.Fatal(err)
	}
	if actual != 0xFFFFFFFE {
		t.Fatalf("ReadUint32 at offset 1 returned %#x, expected 0xfffffffe", actual)
	}

	actual16, err := ReadUint16(input, 4, BigEndian)
	if err != nil {
		t.Fatal(err)
	}
	if actual16 != 0xFEBB {
		t.Fatalf("ReadUint16 at offset 4 returned %#x, expected 0xfebb", actual16)
	}
}

func TestReadUintOutOfBounds(t *testing.T) {
	input := []byte{0x01, 0x02, 0x03}

	if _, err := ReadUint32(input, 0, BigEndian); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("ReadUint32 on 3 bytes returned %v, expected ErrOutOfBounds", err)
	}

	if _, err := ReadUint16(input, 2, BigEndian); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("ReadUint16 at last byte returned %v, expected ErrOutOfBounds", err)
	}

	if _, err := ReadUint16(input, -1, BigEndian); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("ReadUint16 at negative offset returned %v, expected ErrOutOfBounds", err)
	}
}

func TestUnsupportedEndianness(t *testing.T) {
	input := make([]byte, 4)

	if _, err := ReadUint16(input, 0, Endianness(7)); !errors.Is(err, ErrUnsupportedEndianness) {
		t.Fatalf("ReadUint16 returned %v, expected ErrUnsupportedEndianness", err)
	}

	if _, err := ReadUint32(input, 0, Endianness(7)); !errors.Is(err, ErrUnsupportedEndianness) {
		t.Fatalf("ReadUint32 returned %v, expected ErrUnsupportedEndianness", err)
	}

	if err := PutUint32(input, 0, 1, Endianness(7)); !errors.Is(err, ErrUnsupportedEndianness) {
		t.Fatalf("PutUint32 returned %v, expected ErrUnsupportedEndianness", err)
	}
}

func TestUint32RoundTrip(t *testing.T) {
	for _, endianness := range []Endianness{BigEndian, LittleEndian} {
		endianness := endianness
		roundTrip := func(v uint32) bool {
			buf := make([]byte, 4)
			if err := PutUint32(buf, 0, v, endianness); err != nil {
				return false
			}
			actual, err := ReadUint32(buf, 0, endianness)
			return err == nil && actual == v
		}

		if err := quick.Check(roundTrip, nil); err != nil {
			t.Fatalf("uint32 round trip (%v) failed: %v", endianness, err)
		}

		for _, v := range []uint32{0, 1, math.MaxInt32, math.MaxInt32 + 1, math.MaxUint32} {
			if !roundTrip(v) {
				t.Fatalf("uint32 round trip (%v) failed for %#x", endianness, v)
			}
		}
	}
}

func TestUint16RoundTrip(t *testing.T) {
	for _, endianness := range []Endianness{BigEndian, LittleEndian} {
		for _, v := range []uint16{0, 1, 0x00FF, 0xFF00, math.MaxUint16} {
			buf := make([]byte, 2)
			if err := PutUint16(buf, 0, v, endianness); err != nil {
				t.Fatal(err)
			}
			actual, err := ReadUint16(buf, 0, endianness)
			if err != nil {
				t.Fatal(err)
			}
			if actual != v {
				t.Fatalf("uint16 round trip (%v) returned %#x, expected %#x", endianness, actual, v)
			}
		}
	}
}

func TestIPv4ToDottedString(t *testing.T) {
	var tests = []struct {
		input    uint32
		expected string
	}{
		{input: 0xC0A80101, expected: "192.168.1.1"},
		{input: 0x7F000001, expected: "127.0.0.1"},
		{input: 0, expected: "0.0.0.0"},
		{input: math.MaxUint32, expected: "255.255.255.255"},
	}

	for _, test := range tests {
		actual := IPv4ToDottedString(test.input)
		if actual != test.expected {
			t.Fatalf("IPv4ToDottedString(%#x) returned %q, expected %q", test.input, actual, test.expected)
		}
	}
}

func TestFormatAddress(t *testing.T) {
	actual, err := FormatAddress([]byte{10, 0, 0, 254})
	if err != nil {
		t.Fatal(err)
	}
	if actual != "10.0.0.254" {
		t.Fatalf("FormatAddress returned %q, expected %q", actual, "10.0.0.254")
	}

	for _, input := range [][]byte{nil, {1, 2, 3}, {1, 2, 3, 4, 5}} {
		if _, err := FormatAddress(input); !errors.Is(err, ErrInvalidAddress) {
			t.Fatalf("FormatAddress(%v) returned %v, expected ErrInvalidAddress", input, err)
		}
	}
}

func TestLatinString(t *testing.T) {
	var tests = []struct {
		input    []byte
		expected string
	}{
		{input: []byte("announce"), expected: "announce"},
		{input: []byte{0xE9, 0x74, 0xE9}, expected: "été"},
		{input: []byte{0xFF}, expected: "ÿ"},
		{input: []byte{}, expected: ""},
	}

	for _, test := range tests {
		actual := LatinString(test.input)
		if actual != test.expected {
			t.Fatalf("LatinString(%v) returned %q, expected %q", test.input, actual, test.expected)
		}
	}
}

func TestLatinBytes(t *testing.T) {
	var tests = []struct {
		input    string
		expected []byte
	}{
		{input: "invalid info hash", expected: []byte("invalid info hash")},
		{input: "été", expected: []byte{0xE9, 0x74, 0xE9}},
		{input: "→", expected: []byte{0x1A}},
	}

	for _, test := range tests {
		actual := LatinBytes(test.input)
		if string(actual) != string(test.expected) {
			t.Fatalf("LatinBytes(%q) returned %v, expected %v", test.input, actual, test.expected)
		}
	}
}
