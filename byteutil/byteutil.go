package byteutil

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Endianness selects how multi-byte integers are combined.
type Endianness int

const (
	BigEndian    Endianness = iota // Byte at the lowest offset is the most significant.
	LittleEndian                   // Byte at the lowest offset is the least significant.
)

func (e Endianness) String() string {
	switch e {
	case BigEndian:
		return "big endian"
	case LittleEndian:
		return "little endian"
	default:
		return "Endianness(" + strconv.Itoa(int(e)) + ")"
	}
}

var (
	ErrUnsupportedEndianness = errors.New("unsupported endianness")
	ErrOutOfBounds           = errors.New("read out of bounds")
	ErrInvalidAddress        = errors.New("invalid ip address")
)

func ToUint8(b int8) uint8 {
	return uint8(b)
}

func ToUint16(s int16) uint16 {
	return uint16(s)
}

func ToUint32(i int32) uint32 {
	return uint32(i)
}

// CompareUnsigned compares the unsigned values of a and b and returns -1, 0 or 1.
func CompareUnsigned(a, b int8) int {
	ua, ub := ToUint8(a), ToUint8(b)
	switch {
	case ua < ub:
		return -1
	case ua > ub:
		return 1
	default:
		return 0
	}
}

func checkBounds(b []byte, offset, width int) error {
	if offset < 0 || offset+width > len(b) {
		return fmt.Errorf("%w: %d bytes at offset %d, buffer has %d", ErrOutOfBounds, width, offset, len(b))
	}
	return nil
}

// ReadUint16 reads 2 bytes starting at offset.
func ReadUint16(b []byte, offset int, e Endianness) (uint16, error) {
	if err := checkBounds(b, offset, 2); err != nil {
		return 0, err
	}

	switch e {
	case BigEndian:
		return uint16(b[offset])<<8 | uint16(b[offset+1]), nil
	case LittleEndian:
		return uint16(b[offset]) | uint16(b[offset+1])<<8, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedEndianness, e)
	}
}

// ReadUint32 reads 4 bytes starting at offset.
func ReadUint32(b []byte, offset int, e Endianness) (uint32, error) {
	if err := checkBounds(b, offset, 4); err != nil {
		return 0, err
	}

	b = b[offset : offset+4]
	switch e {
	case BigEndian:
		return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
	case LittleEndian:
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedEndianness, e)
	}
}

func PutUint16(b []byte, offset int, v uint16, e Endianness) error {
	if err := checkBounds(b, offset, 2); err != nil {
		return err
	}

	switch e {
	case BigEndian:
		b[offset], b[offset+1] = byte(v>>8), byte(v)
	case LittleEndian:
		b[offset], b[offset+1] = byte(v), byte(v>>8)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedEndianness, e)
	}
	return nil
}

func PutUint32(b []byte, offset int, v uint32, e Endianness) error {
	if err := checkBounds(b, offset, 4); err != nil {
		return err
	}

	switch e {
	case BigEndian:
		for i := 0; i < 4; i++ {
			b[offset+i] = byte(v >> (24 - 8*i))
		}
	case LittleEndian:
		for i := 0; i < 4; i++ {
			b[offset+i] = byte(v >> (8 * i))
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedEndianness, e)
	}
	return nil
}

// IPv4ToDottedString formats an address held in a uint32, most significant octet first.
func IPv4ToDottedString(ip uint32) string {
	octets := []string{
		strconv.FormatUint(uint64((ip&0xFF000000)>>24), 10),
		strconv.FormatUint(uint64((ip&0x00FF0000)>>16), 10),
		strconv.FormatUint(uint64((ip&0x0000FF00)>>8), 10),
		strconv.FormatUint(uint64(ip&0x000000FF), 10),
	}
	return strings.Join(octets, ".")
}

// FormatAddress formats a raw 4 byte IPv4 address.
func FormatAddress(ip []byte) (string, error) {
	if len(ip) != net.IPv4len {
		return "", fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAddress, net.IPv4len, len(ip))
	}
	return net.IP(ip).String(), nil
}

// LatinString maps every byte to the code point of the same value.
func LatinString(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// ISO-8859-1 maps all 256 byte values, the decoder has nothing to reject.
		runes := make([]rune, len(b))
		for i, c := range b {
			runes[i] = rune(c)
		}
		return string(runes)
	}
	return string(s)
}

// LatinBytes is the inverse of LatinString. Characters outside ISO-8859-1 become 0x1A.
func LatinBytes(s string) []byte {
	b, err := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return b
}
